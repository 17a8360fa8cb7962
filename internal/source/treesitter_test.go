//go:build cgo

package source

import (
	"reflect"
	"testing"
)

func TestTreeSitterAvailable(t *testing.T) {
	if !IsAvailable() {
		t.Error("Expected tree-sitter to be available under CGO")
	}
}

func TestTreeSitterNamedExports(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "mod.ts", `
export const formatName = (n) => n;
export function parseQuery(q) {}
export class Widget {}
const internal = 1;
`)

	want := []string{"formatName", "parseQuery", "Widget"}
	if !reflect.DeepEqual(facts.Exports, want) {
		t.Errorf("Exports = %v, want %v", facts.Exports, want)
	}
	wantConsts := []string{"formatName", "internal"}
	if !reflect.DeepEqual(facts.Constants, wantConsts) {
		t.Errorf("Constants = %v, want %v", facts.Constants, wantConsts)
	}
}

func TestTreeSitterExportClause(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "index.ts", `
export { UserCard } from "./UserCard";
export { formatName as format } from "./utils";
`)

	want := []string{"UserCard", "format"}
	if !reflect.DeepEqual(facts.Exports, want) {
		t.Errorf("Exports = %v, want %v", facts.Exports, want)
	}
}

func TestTreeSitterWildcardExports(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "index.ts", `
export * from "./constants";
export * as utils from "./utils";
`)

	if !reflect.DeepEqual(facts.WildcardExports, []string{"./constants"}) {
		t.Errorf("WildcardExports = %v, want [./constants]", facts.WildcardExports)
	}
	if !reflect.DeepEqual(facts.Exports, []string{"utils"}) {
		t.Errorf("Exports = %v, want [utils]", facts.Exports)
	}
}

func TestTreeSitterDefaultExport(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "Card.tsx", "export default function Card() { return null; }\n")
	if !reflect.DeepEqual(facts.Exports, []string{"Card"}) {
		t.Errorf("Exports = %v, want [Card]", facts.Exports)
	}

	facts = analyzeString(t, a, "value.ts", "export default 42;\n")
	if !reflect.DeepEqual(facts.Exports, []string{"default"}) {
		t.Errorf("Exports = %v, want [default]", facts.Exports)
	}
}

func TestTreeSitterEnums(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "enums.ts", `
export enum Status {
  ACTIVE = "active",
  INACTIVE,
}
enum Mode { FAST, SLOW }
`)

	if len(facts.Enums) != 2 {
		t.Fatalf("Expected 2 enums, got %d: %v", len(facts.Enums), facts.Enums)
	}
	if facts.Enums[0].Name != "Status" {
		t.Errorf("Expected enum Status, got %s", facts.Enums[0].Name)
	}
	if !reflect.DeepEqual(facts.Enums[0].Members, []string{"ACTIVE", "INACTIVE"}) {
		t.Errorf("Status members = %v, want [ACTIVE INACTIVE]", facts.Enums[0].Members)
	}
	if !reflect.DeepEqual(facts.Enums[1].Members, []string{"FAST", "SLOW"}) {
		t.Errorf("Mode members = %v, want [FAST SLOW]", facts.Enums[1].Members)
	}
	if !reflect.DeepEqual(facts.Exports, []string{"Status"}) {
		t.Errorf("Exports = %v, want [Status]", facts.Exports)
	}
}

func TestTreeSitterTSXComponent(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "UserCard.tsx", `
export const UserCard = ({ name }) => {
  return <div>{name}</div>;
};
`)

	if !reflect.DeepEqual(facts.Exports, []string{"UserCard"}) {
		t.Errorf("Exports = %v, want [UserCard]", facts.Exports)
	}
}

func TestTreeSitterUnknownExtension(t *testing.T) {
	a := NewAnalyzer()

	facts := analyzeString(t, a, "styles.css", ".card { color: red; }\n")
	if len(facts.Exports) != 0 || len(facts.Constants) != 0 {
		t.Errorf("Expected empty facts for unsupported extension, got %+v", facts)
	}
}
