package driver

import (
	"context"
	"fmt"

	"c0/internal/diag"
	"c0/internal/lexer"
	"c0/internal/source"
	"c0/internal/token"
	"c0/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and runs the lexer over it. Lexical errors end up in
// the bag; only a failed load is returned as an error.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(opts.maxDiagnostics())
	tokens, err := lex(ctx, file, opts)
	if err != nil {
		bag.Add(diag.FromError(file.ID, err))
	}
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*source.File, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "load", trace.CurrentSpan(ctx).SpanID)
	end := opts.Timer.Track("load " + path)

	id, err := fs.Load(path)
	if err != nil {
		span.End(err.Error())
		end("failed")
		return nil, fmt.Errorf("%v: %w", err, diag.ErrStream)
	}
	file := fs.Get(id)
	span.WithExtra("bytes", fmt.Sprint(len(file.Content))).End("")
	end("")
	return file, nil
}

func lex(ctx context.Context, file *source.File, opts Options) ([]token.Token, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "lex", trace.CurrentSpan(ctx).SpanID)
	end := opts.Timer.Track("lex " + file.Path)

	tokens, err := lexer.New(file, lexer.Options{Tracer: tracer}).AllTokens()
	note := fmt.Sprintf("%d tokens", len(tokens))
	if err != nil {
		note = err.Error()
	}
	span.End(note)
	end(note)
	return tokens, err
}
