package capacity

import (
	"context"

	"github.com/carbocation/popcapacity/vcfstream"
	"golang.org/x/sync/errgroup"
)

// Run evaluates every record of stream and hands the results to emit in
// stream order, whatever the number of workers. It stops at the first error
// from the stream, the engine, emit, or ctx.
func (e *Engine) Run(ctx context.Context, stream vcfstream.DataStream, emit func(Result) error) error {
	if e.Workers < 2 {
		return e.runSequential(ctx, stream, emit)
	}

	return e.runParallel(ctx, stream, emit)
}

func (e *Engine) runSequential(ctx context.Context, stream vcfstream.DataStream, emit func(Result) error) error {
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec := stream.Read()
		if rec == nil {
			break
		}

		res, err := e.Evaluate(i, rec)
		if err != nil {
			return err
		}

		if err := emit(res); err != nil {
			return err
		}
	}

	return stream.Err()
}

type job struct {
	index int
	rec   *vcfstream.Record
}

func (e *Engine) runParallel(ctx context.Context, stream vcfstream.DataStream, emit func(Result) error) error {
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan job, e.Workers*2)
	results := make(chan Result, e.Workers*2)

	// Feed work. A stream error lets the records already read drain first, as
	// in a sequential run.
	var streamErr error
	g.Go(func() error {
		defer close(jobs)

		for i := 0; ; i++ {
			rec := stream.Read()
			if rec == nil {
				streamErr = stream.Err()
				return nil
			}

			select {
			case jobs <- job{index: i, rec: rec}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	// Workers
	workers, wctx := errgroup.WithContext(ctx)
	for w := 0; w < e.Workers; w++ {
		workers.Go(func() error {
			for j := range jobs {
				if err := wctx.Err(); err != nil {
					return err
				}

				res, err := e.Evaluate(j.index, j.rec)
				if err != nil {
					return err
				}

				select {
				case results <- res:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Re-sequence by stream position
	g.Go(func() error {
		pending := make(map[int]Result)
		next := 0
		for res := range results {
			pending[res.Index] = res

			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				if err := emit(r); err != nil {
					return err
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return streamErr
}
