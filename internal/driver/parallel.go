package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"c0/internal/trace"
)

// CompileFiles compiles every path concurrently, at most jobs at a time
// (GOMAXPROCS when jobs <= 0). Results keep the order of paths. Compilation
// errors stay in each Result; the error return is for cancellation and cache
// failures.
func CompileFiles(ctx context.Context, paths []string, opts Options, jobs int) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("files", fmt.Sprint(len(paths))).WithExtra("jobs", fmt.Sprint(jobs))
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Compile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	span.End(fmt.Sprintf("%d failed", failed))
	return results, nil
}
