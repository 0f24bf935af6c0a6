package logx

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLoggerLevelByString(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"bogus":  zapcore.InfoLevel,
		"":       zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := GetLoggerLevelByString(in); got != want {
			t.Errorf("GetLoggerLevelByString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)
	l.Debugf("hidden %d", 1)
	l.Infof("move %s", "e2e4")
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, `"MESSAGE":"move e2e4"`) {
		t.Errorf("missing message: %s", out)
	}
}

func TestWithTagsEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).With("game", "g1")
	l.Errorf("bad reply %q", "e2")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.ErrorLevel || e.Message != `bad reply "e2"` {
		t.Errorf("entry = %v %q", e.Level, e.Message)
	}
	if e.ContextMap()["game"] != "g1" {
		t.Errorf("context = %v", e.ContextMap())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Infof("nothing %d", 1)
	l.With("k", "v").Error("nothing")
}

func TestNewFromCoreKeepsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewFromCore(core)
	if l.level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", l.level)
	}
	l.Infof("dropped")
	l.With("game", "g1").Errorf("kept %d", 1)

	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "kept 1" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].ContextMap()["game"] != "g1" {
		t.Errorf("context = %v", entries[0].ContextMap())
	}
}
