package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fslint/internal/logging"
	"fslint/internal/source"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Level:  logging.ErrorLevel,
		Format: logging.JSONFormat,
		Output: io.Discard,
	})
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(t.TempDir(), newTestLogger())
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCachePutGet(t *testing.T) {
	cache := openTestCache(t)

	facts := []byte(`{"path":"a.ts","exports":["a"]}`)
	fp := Fingerprint([]byte("export const a = 1;"))

	if err := cache.Put("a.ts", fp, facts); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get("a.ts", fp)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(got) != string(facts) {
		t.Errorf("Got %s, want %s", got, facts)
	}
}

func TestCacheMissOnFingerprintChange(t *testing.T) {
	cache := openTestCache(t)

	if err := cache.Put("a.ts", Fingerprint([]byte("v1")), []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	_, ok, err := cache.Get("a.ts", Fingerprint([]byte("v2")))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected miss for changed fingerprint")
	}
}

func TestCacheMissOnUnknownPath(t *testing.T) {
	cache := openTestCache(t)

	_, ok, err := cache.Get("never-seen.ts", Fingerprint([]byte("x")))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected miss for unknown path")
	}
}

func TestCachePutReplaces(t *testing.T) {
	cache := openTestCache(t)

	fp2 := Fingerprint([]byte("v2"))
	if err := cache.Put("a.ts", Fingerprint([]byte("v1")), []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put("a.ts", fp2, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}

	got, ok, err := cache.Get("a.ts", fp2)
	if err != nil || !ok {
		t.Fatalf("Expected hit after replace: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Got %s, want {\"v\":2}", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("hello"))
	b := Fingerprint([]byte("hello"))
	c := Fingerprint([]byte("world"))

	if a != b {
		t.Error("Expected identical content to fingerprint identically")
	}
	if a == c {
		t.Error("Expected different content to fingerprint differently")
	}
	if len(a) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(a))
	}
}

func TestCachePrune(t *testing.T) {
	cache := openTestCache(t)

	dir := t.TempDir()
	live := filepath.Join(dir, "live.ts")
	if err := os.WriteFile(live, []byte("export const a = 1;"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := cache.Put(live, "fp", []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put(filepath.Join(dir, "gone.ts"), "fp", []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	removed, err := cache.Prune()
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 pruned entry, got %d", removed)
	}

	if _, ok, _ := cache.Get(live, "fp"); !ok {
		t.Error("Expected live entry to survive pruning")
	}
}

// countingAnalyzer counts delegated analyses.
type countingAnalyzer struct {
	inner source.Analyzer
	calls int
}

func (c *countingAnalyzer) Analyze(ctx context.Context, path string) (*source.FileFacts, error) {
	c.calls++
	return c.inner.Analyze(ctx, path)
}

func (c *countingAnalyzer) AnalyzeSource(ctx context.Context, path string, src []byte) (*source.FileFacts, error) {
	c.calls++
	return c.inner.AnalyzeSource(ctx, path, src)
}

func TestCachingAnalyzer(t *testing.T) {
	cache := openTestCache(t)
	counting := &countingAnalyzer{inner: source.NewScanAnalyzer()}
	a := NewCachingAnalyzer(cache, counting, newTestLogger())

	dir := t.TempDir()
	path := filepath.Join(dir, "mod.ts")
	if err := os.WriteFile(path, []byte("export const a = 1;\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	first, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("First analyze failed: %v", err)
	}
	second, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Second analyze failed: %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("Expected 1 underlying analysis, got %d", counting.calls)
	}
	if !reflect.DeepEqual(first.Exports, second.Exports) {
		t.Errorf("Cached facts differ: %v vs %v", first.Exports, second.Exports)
	}

	// Changing the file invalidates the entry.
	if err := os.WriteFile(path, []byte("export const b = 2;\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}
	third, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Third analyze failed: %v", err)
	}
	if counting.calls != 2 {
		t.Errorf("Expected re-analysis after change, got %d calls", counting.calls)
	}
	if !reflect.DeepEqual(third.Exports, []string{"b"}) {
		t.Errorf("Exports = %v, want [b]", third.Exports)
	}
}
