package logging

import (
	"testing"

	"github.com/go-logr/zapr"
	scopestack "github.com/goliatone/go-scopestack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		" fatal ": zapcore.FatalLevel,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Fatalf("expected %s for %q, got %s (%v)", want, input, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := NewZap("loud"); err == nil {
		t.Fatalf("expected NewZap to reject unknown level")
	}
}

func TestZapAdapterWritesFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := scopestack.NewStack[int](scopestack.WithID("zap"), scopestack.WithLogger(Zap(zap.New(core))))

	outer := s.Push(1)
	inner := s.Push(2)
	func() {
		defer func() {
			_ = recover()
		}()
		outer.Release()
	}()
	inner.Release()
	outer.Release()

	entries := logs.All()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	violation := entries[2]
	if violation.Level != zapcore.ErrorLevel {
		t.Fatalf("expected violation at error level, got %s", violation.Level)
	}
	fields := entries[0].ContextMap()
	if fields["stack"] != "zap" || fields["op"] != "push" || fields["depth"] != int64(0) {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestZapNilLogger(t *testing.T) {
	if Zap(nil) != nil {
		t.Fatalf("expected nil adapter for nil logger")
	}
}

func TestLogrAdapterWritesFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zapr.NewLogger(zap.New(core))
	s := scopestack.NewBottomless[string](scopestack.WithLogger(Logr(logger)))

	root := s.Push("root")
	root.Release()

	if logs.Len() != 2 {
		t.Fatalf("expected push and release entries, got %d", logs.Len())
	}
	if got := logs.All()[1].ContextMap()["op"]; got != "release" {
		t.Fatalf("expected release op, got %v", got)
	}
}
