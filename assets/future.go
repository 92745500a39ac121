package assets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the result of an asynchronous load. It resolves exactly once,
// either with a value or with an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns its future.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Resolved returns a future that already holds v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Failed returns a future that already failed with err.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future resolves or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Poll reports the result without blocking. ok is false while the load is
// still running.
func (f *Future[T]) Poll() (v T, ok bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Pair holds two joined results.
type Pair[T, U any] struct {
	A T
	B U
}

// Join resolves once both a and b have resolved. If either fails the joined
// future fails with the first error observed; the order in which a and b
// complete does not matter.
func Join[T, U any](ctx context.Context, a *Future[T], b *Future[U]) *Future[Pair[T, U]] {
	return Go(ctx, func(ctx context.Context) (Pair[T, U], error) {
		var p Pair[T, U]
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			v, err := a.Wait(gctx)
			p.A = v
			return err
		})
		g.Go(func() error {
			v, err := b.Wait(gctx)
			p.B = v
			return err
		})
		if err := g.Wait(); err != nil {
			return Pair[T, U]{}, err
		}
		return p, nil
	})
}
