package async

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Gather runs f(0), ..., f(n-1) concurrently, with at most limit of them in
// flight (limit <= 0 means GOMAXPROCS), and returns the results in index order.
// The first error wins and no results are returned with it.
func Gather[R any](n, limit int, f func(i int) (R, error)) ([]R, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]R, n)

	var g errgroup.Group
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			r, err := f(i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
