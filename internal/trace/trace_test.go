package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off":    LevelOff,
		"":       LevelOff,
		"error":  LevelError,
		"PHASE":  LevelPhase,
		"detail": LevelDetail,
		"Debug":  LevelDebug,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeModule) {
		t.Fatalf("phase level must not emit module events")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) {
		t.Fatalf("detail level must emit module events")
	}
	if LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level must not emit node events")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Fatalf("debug level must emit node events")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Name != want {
			t.Fatalf("event %d: got %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "lex", 0)
	Point(tr, ScopeModule, "hidden", "")
	span.WithExtra("tokens", "12").End("ok")

	out := buf.String()
	if !strings.Contains(out, "→ lex") || !strings.Contains(out, "← lex (ok) {tokens=12}") {
		t.Fatalf("unexpected trace output:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("module point leaked at phase level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "function", "main")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["name"] != "function" || ev["detail"] != "main" || ev["kind"] != "point" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestNewByLevel(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level: tracer=%v err=%v", tr, err)
	}

	tr, err = New(Config{Level: LevelError})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(Dumper); !ok {
		t.Fatalf("error level must buffer events, got %T", tr)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "build", 0).End("")
	if buf.Len() == 0 {
		t.Fatalf("stream tracer wrote nothing")
	}
}

func TestResolveFormat(t *testing.T) {
	if ResolveFormat(FormatAuto, "trace.ndjson") != FormatNDJSON {
		t.Fatalf("ndjson extension not detected")
	}
	if ResolveFormat(FormatAuto, "-") != FormatText {
		t.Fatalf("stderr should default to text")
	}
	if ResolveFormat(FormatNDJSON, "-") != FormatNDJSON {
		t.Fatalf("explicit format overridden")
	}
}

func TestSpanDuration(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	span := Begin(r, ScopeDriver, "build", 0)
	time.Sleep(time.Millisecond)
	if d := span.End(""); d <= 0 {
		t.Fatalf("expected positive duration, got %v", d)
	}
	if n := len(r.Snapshot()); n != 2 {
		t.Fatalf("expected begin+end, got %d events", n)
	}
}
