package driver

import (
	"context"
	"fmt"

	"c0/internal/analyser"
	"c0/internal/diag"
	"c0/internal/program"
	"c0/internal/project"
	"c0/internal/source"
	"c0/internal/token"
	"c0/internal/trace"
	"c0/internal/version"
)

// Result is the outcome of compiling one file. Program is nil when the Bag
// holds an error.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Program *program.Program
	Bag     *diag.Bag
	Cached  bool
}

// Failed reports whether compilation produced an error.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors()
}

// Compile runs load → lex → analyse for one file. Compilation errors are
// reported through Result.Bag; the returned error is reserved for I/O
// failures outside the source file (cache).
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeModule, "file:"+path, trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	res := &Result{
		Path:    path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	file, err := loadFile(ctx, res.FileSet, path, opts)
	if err != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOStreamError,
			Message:  err.Error(),
		})
		span.End("load failed")
		return res, nil
	}
	res.File = file

	err = compileFile(ctx, res, opts)
	span.WithExtra("cached", fmt.Sprint(res.Cached)).End(status(res))
	return res, err
}

// CompileSource compiles in-memory text as if it were a file called name.
func CompileSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	res := &Result{
		Path:    name,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	normalized, flags := source.Normalize(content)
	res.File = res.FileSet.Get(res.FileSet.Add(name, normalized, flags|source.FileVirtual))
	err := compileFile(ctx, res, opts)
	return res, err
}

func compileFile(ctx context.Context, res *Result, opts Options) error {
	key := CacheKey(res.File)
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeModule, "cache", "unreadable entry: "+err.Error())
		}
		if ok && payload.Schema == diskCacheSchemaVersion && payload.Program != nil {
			res.Program = payload.Program
			res.Cached = true
			return nil
		}
	}

	tokens, err := lex(ctx, res.File, opts)
	if err != nil {
		res.Bag.Add(diag.FromError(res.File.ID, err))
		return nil
	}

	prog, err := analyse(ctx, res.File, tokens, opts)
	if err != nil {
		res.Bag.Add(diag.FromError(res.File.ID, err))
		return nil
	}
	res.Program = prog

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, &DiskPayload{
			Schema:  diskCacheSchemaVersion,
			Path:    res.File.Path,
			Hash:    project.Digest(res.File.Hash),
			Program: prog,
		}); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeModule, "cache", "write failed: "+err.Error())
		}
	}
	return nil
}

func analyse(ctx context.Context, file *source.File, tokens []token.Token, opts Options) (*program.Program, error) {
	end := opts.Timer.Track("analyse " + file.Path)
	prog, err := analyser.Analyse(tokens, analyser.Options{
		Tracer: trace.FromContext(ctx),
		Name:   file.Path,
	})
	if err != nil {
		end(err.Error())
		return nil, err
	}
	end(fmt.Sprintf("%d functions", len(prog.Functions)-1))
	return prog, nil
}

// CacheKey identifies the artifact of a source file built by this compiler.
func CacheKey(file *source.File) project.Digest {
	return project.Combine(project.Digest(file.Hash), version.Version, fmt.Sprint(program.SchemaVersion))
}

func status(res *Result) string {
	if res.Failed() {
		return "failed"
	}
	return "ok"
}
