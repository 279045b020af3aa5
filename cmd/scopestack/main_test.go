package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	cmd, a := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	a.finish(cmd.ErrOrStderr())
	return out.String(), err
}

func TestPathsCommand(t *testing.T) {
	out, err := run(t, "paths", "a + b")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if !strings.Contains(out, "binary(+) > ident(b)") || !strings.Contains(out, "paths=2 max_depth=2") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPathsCommandCEL(t *testing.T) {
	out, err := run(t, "paths", "--lang", "cel", "x > 1")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if !strings.Contains(out, "call(>) > ident(x)") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPathsCommandUnknownLanguage(t *testing.T) {
	if _, err := run(t, "paths", "--lang", "lisp", "(+ 1 2)"); err == nil {
		t.Fatalf("expected unknown language error")
	}
}

func TestCalcCommand(t *testing.T) {
	out, err := run(t, "calc", "--var", "x=4", "--var", "y = 0.5", "x * y + max(1, 2)")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if strings.TrimSpace(out) != "4" {
		t.Fatalf("expected 4, got %q", out)
	}
}

func TestCalcCommandBadVar(t *testing.T) {
	if _, err := run(t, "calc", "--var", "x", "x"); err == nil {
		t.Fatalf("expected invalid var error")
	}
}

func TestCalcCommandMaxDepthFromEnv(t *testing.T) {
	t.Setenv("SCOPESTACK_MAX_DEPTH", "1")
	if _, err := run(t, "calc", "1 + 2 + 3"); err == nil || !strings.Contains(err.Error(), "too deep") {
		t.Fatalf("expected depth error from env config, got %v", err)
	}
}

func TestQueensCommand(t *testing.T) {
	out, err := run(t, "queens", "--count", "6")
	if err != nil {
		t.Fatalf("queens: %v", err)
	}
	if strings.TrimSpace(out) != "4" {
		t.Fatalf("expected 4, got %q", out)
	}

	out, err = run(t, "queens", "--limit", "1", "4")
	if err != nil {
		t.Fatalf("queens: %v", err)
	}
	if strings.TrimSpace(out) != "[1 3 0 2]" {
		t.Fatalf("expected first 4-queens solution, got %q", out)
	}
}

func TestTraceFlagSummarisesFrameEvents(t *testing.T) {
	out, err := run(t, "--trace", "paths", "a + b")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if !strings.Contains(out, "trace frame.pushed=3") || !strings.Contains(out, "trace frame.released=3") {
		t.Fatalf("expected trace summary, got %s", out)
	}
}

func TestTraceSummaryPrintedOnFailure(t *testing.T) {
	out, err := run(t, "--trace", "calc", "1 + missing")
	if err == nil || !strings.Contains(err.Error(), "unknown variable") {
		t.Fatalf("expected unknown variable error, got %v", err)
	}
	if !strings.Contains(out, "trace frame.pushed=1") || !strings.Contains(out, "trace frame.released=1") {
		t.Fatalf("expected trace summary after failure, got %s", out)
	}
}

func TestRejectsUnknownLogLevel(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "queens", "4"); err == nil {
		t.Fatalf("expected log level error")
	}
}
