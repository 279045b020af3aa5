package walk

import (
	"errors"
	"strings"
	"testing"

	scopestack "github.com/goliatone/go-scopestack"
	"github.com/goliatone/go-scopestack/pkg/activity"
)

func pathStrings(result Result) []string {
	out := make([]string, len(result.Paths))
	for i, p := range result.Paths {
		out[i] = p.String()
	}
	return out
}

func TestExprPaths(t *testing.T) {
	result, err := Expr("a + b * 2")
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	want := []string{
		"binary(+) > ident(a)",
		"binary(+) > binary(*) > ident(b)",
		"binary(+) > binary(*) > int(2)",
	}
	got := pathStrings(result)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %d %q, got %q", i, want[i], got[i])
		}
	}
	if result.Stats.Paths != 3 || result.Stats.MaxDepth != 3 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if result.Language != "expr" {
		t.Fatalf("expected expr language, got %q", result.Language)
	}
}

func TestExprSingleLeaf(t *testing.T) {
	result, err := Expr("answer")
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(result.Paths) != 1 || result.Paths[0].Leaf() != "ident(answer)" || result.Stats.MaxDepth != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExprConditionalAndCall(t *testing.T) {
	result, err := Expr(`ok ? max(x, 1) : "none"`)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	var sawString bool
	for _, p := range result.Paths {
		if p.Nodes[0] != "conditional" {
			t.Fatalf("expected conditional root, got %v", p.Nodes)
		}
		if p.Leaf() == `string("none")` {
			sawString = true
		}
	}
	if !sawString {
		t.Fatalf("expected string leaf in %v", pathStrings(result))
	}
}

func TestExprErrors(t *testing.T) {
	if _, err := Expr("   "); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected empty source error, got %v", err)
	}
	if _, err := Expr("a +"); err == nil || !strings.Contains(err.Error(), "walk: expr parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestWithMaxPathsStopsEarly(t *testing.T) {
	result, err := Expr("a + b + c + d", WithMaxPaths(2))
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(result.Paths) != 2 || result.Stats.Paths != 2 {
		t.Fatalf("expected 2 paths, got %v", pathStrings(result))
	}
}

func TestWithStackOptionsObservesFrames(t *testing.T) {
	capture := &activity.CaptureHook{}
	_, err := Expr("a + b", WithStackOptions(
		scopestack.WithID("walk-test"),
		scopestack.WithActivityHooks(activity.Hooks{capture}),
	))
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	var pushed, released int
	for _, verb := range capture.Verbs() {
		switch verb {
		case activity.VerbFramePushed:
			pushed++
		case activity.VerbFrameReleased:
			released++
		}
	}
	if pushed != 3 || released != 3 {
		t.Fatalf("expected 3 pushes and releases, got %d/%d", pushed, released)
	}
}

func TestCELPaths(t *testing.T) {
	result, err := CEL("a.b && c > 1")
	if err != nil {
		t.Fatalf("cel: %v", err)
	}
	got := pathStrings(result)
	want := []string{
		"call(&&) > select(b) > ident(a)",
		"call(&&) > call(>) > ident(c)",
		"call(&&) > call(>) > literal(1)",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %d %q, got %q", i, want[i], got[i])
		}
	}
	if result.Stats.MaxDepth != 3 {
		t.Fatalf("expected max depth 3, got %d", result.Stats.MaxDepth)
	}
}

func TestCELMacroExpandsToComprehension(t *testing.T) {
	result, err := CEL("items.all(i, i > 0)")
	if err != nil {
		t.Fatalf("cel: %v", err)
	}
	if len(result.Paths) == 0 || !strings.HasPrefix(result.Paths[0].Nodes[0], "comprehension(") {
		t.Fatalf("expected comprehension root, got %v", pathStrings(result))
	}
}

func TestCELErrors(t *testing.T) {
	if _, err := CEL(""); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected empty source error, got %v", err)
	}
	if _, err := CEL("a &&"); err == nil || !strings.Contains(err.Error(), "walk: cel parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestPathHelpers(t *testing.T) {
	var empty Path
	if empty.Leaf() != "" || empty.String() != "" {
		t.Fatalf("expected empty helpers")
	}
}
