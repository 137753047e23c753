package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"c0/internal/diag"
	"c0/internal/observ"
	"c0/internal/program"
	"c0/internal/project"
	"c0/internal/token"
	"c0/internal/trace"
)

const helloSrc = "void main() { print(1); }\n"

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.c0", "int x = 0x10;")
	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.Tokens) != 5 || res.Tokens[3].Kind != token.HexLit || res.Tokens[3].Value != 16 {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}

	bad := writeSource(t, t.TempDir(), "bad.c0", "int $;")
	res, err = Tokenize(context.Background(), bad, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != diag.LexInvalidInput {
		t.Fatalf("expected invalid input diagnostic, got %v", res.Bag.Items())
	}

	if _, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "missing.c0"), Options{}); !errors.Is(err, diag.ErrStream) {
		t.Fatalf("expected stream error, got %v", err)
	}
}

func TestCompileMissingFile(t *testing.T) {
	res, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope.c0"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOStreamError || items[0].HasPos {
		t.Fatalf("expected one stream error, got %+v", items)
	}
}

func TestCompileSource(t *testing.T) {
	res, err := CompileSource(context.Background(), "mem.c0", []byte("\xef\xbb\xbfvoid main() {\r\n}\r\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed() || res.Program == nil {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, t.TempDir(), "hello.c0", helloSrc)
	opts := Options{Cache: cache}

	first, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Failed() || first.Cached {
		t.Fatalf("first build: failed=%v cached=%v", first.Failed(), first.Cached)
	}

	second, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatalf("second build must come from the cache")
	}
	var a, b bytes.Buffer
	if err := program.WriteListing(&a, first.Program); err != nil {
		t.Fatal(err)
	}
	if err := program.WriteListing(&b, second.Program); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Fatalf("cached program differs:\n%s\nvs\n%s", a.String(), b.String())
	}

	// changed content misses
	writeSource(t, filepath.Dir(path), "hello.c0", "void main() { print(2); }\n")
	third, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatalf("edited source must not hit the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Fatalf("dropped cache must miss")
	}
}

func TestFailedCompileIsNotCached(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, t.TempDir(), "bad.c0", "void main() { x = 1; }")
	for i := 0; i < 2; i++ {
		res, err := Compile(context.Background(), path, Options{Cache: cache})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Failed() || res.Cached {
			t.Fatalf("run %d: failed=%v cached=%v", i, res.Failed(), res.Cached)
		}
	}
}

func TestCacheWriteFailureKeepsBuild(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	// файл на месте каталога progs: Put не сможет создать запись
	progs := filepath.Join(dir, "progs")
	if err := os.RemoveAll(progs); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(progs, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, t.TempDir(), "ok.c0", "void main() { print(1); }")

	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	results, err := CompileFiles(ctx, []string{path}, Options{Cache: cache}, 1)
	if err != nil {
		t.Fatalf("cache write failure aborted the build: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	res := results[0]
	if res.Failed() || res.Program == nil || res.Cached {
		t.Fatalf("failed=%v program=%v cached=%v", res.Failed(), res.Program != nil, res.Cached)
	}

	var sawCache bool
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint && ev.Name == "cache" && strings.HasPrefix(ev.Detail, "write failed") {
			sawCache = true
		}
	}
	if !sawCache {
		t.Fatalf("cache write failure was not traced")
	}
}

func TestCompileFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, body := range []string{helloSrc, "int main() { return; }", helloSrc, "void main() {"} {
		paths = append(paths, writeSource(t, dir, string(rune('a'+i))+".c0", body))
	}

	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	timer := observ.NewTimer()

	results, err := CompileFiles(ctx, paths, Options{Timer: timer}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	wantFailed := []bool{false, true, false, true}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %s, want %s", i, r.Path, paths[i])
		}
		if r.Failed() != wantFailed[i] {
			t.Fatalf("%s: failed=%v", r.Path, r.Failed())
		}
	}

	var sawCompile bool
	for _, ev := range ring.Snapshot() {
		if ev.Name == "compile" && ev.Kind == trace.KindSpanEnd {
			sawCompile = true
			if ev.Detail != "2 failed" {
				t.Fatalf("compile span detail %q", ev.Detail)
			}
		}
	}
	if !sawCompile {
		t.Fatalf("no compile span recorded")
	}
	if !strings.Contains(timer.Summary(), "analyse") {
		t.Fatalf("timer did not record the analyse phase:\n%s", timer.Summary())
	}
}

func TestWriteAndReadArtifact(t *testing.T) {
	res, err := CompileSource(context.Background(), "prog.c0", []byte(helloSrc), Options{})
	if err != nil || res.Failed() {
		t.Fatalf("compile: %v %v", err, res.Bag.Items())
	}
	out := t.TempDir()

	bin, err := WriteArtifact(out, "src/prog.c0", res.Program, project.EmitBinary)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(bin) != "prog.o0" {
		t.Fatalf("binary artifact name %s", bin)
	}
	back, err := ReadArtifact(bin)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Code) != len(res.Program.Code) {
		t.Fatalf("decoded program differs")
	}

	txt, err := WriteArtifact(out, "src/prog.c0", res.Program, project.EmitText)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(txt)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), ".constants:\n") {
		t.Fatalf("listing starts with %q", string(data))
	}
	if _, err := ReadArtifact(txt); err == nil {
		t.Fatalf("a listing is not a binary artifact")
	}
}
