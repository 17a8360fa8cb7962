package storage

import (
	"context"
	"os"

	"fslint/internal/logging"
	"fslint/internal/source"
)

// CachingAnalyzer wraps a source.Analyzer with the facts cache.
// Cache failures are logged and degrade to a plain analysis; they
// never fail the scan.
type CachingAnalyzer struct {
	cache  *Cache
	next   source.Analyzer
	logger *logging.Logger
}

// NewCachingAnalyzer creates an analyzer that consults the cache
// before delegating to next.
func NewCachingAnalyzer(cache *Cache, next source.Analyzer, logger *logging.Logger) *CachingAnalyzer {
	return &CachingAnalyzer{cache: cache, next: next, logger: logger}
}

// Analyze reads the file once, checks the cache by content
// fingerprint, and falls back to the wrapped analyzer on a miss.
func (a *CachingAnalyzer) Analyze(ctx context.Context, path string) (*source.FileFacts, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(src)
	if data, ok, err := a.cache.Get(path, fingerprint); err != nil {
		a.logger.Warn("Cache lookup failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	} else if ok {
		var facts source.FileFacts
		if err := unmarshalFacts(data, &facts); err == nil {
			return &facts, nil
		}
		a.logger.Warn("Cache entry corrupt, re-analyzing", map[string]interface{}{
			"path": path,
		})
	}

	facts, err := a.next.AnalyzeSource(ctx, path, src)
	if err != nil {
		return nil, err
	}

	if data, err := marshalFacts(facts); err == nil {
		if err := a.cache.Put(path, fingerprint, data); err != nil {
			a.logger.Warn("Cache write failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}

	return facts, nil
}

// AnalyzeSource delegates directly; callers with bytes in hand bypass
// the cache.
func (a *CachingAnalyzer) AnalyzeSource(ctx context.Context, path string, src []byte) (*source.FileFacts, error) {
	return a.next.AnalyzeSource(ctx, path, src)
}
