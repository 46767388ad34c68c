package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// Chunk is a contiguous half-open row range [Start, End) handled by one worker.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Partition splits n rows into at most min(jobs, n) contiguous chunks of
// ceil(n/jobs) rows. The last chunk may be smaller and empty ranges are
// dropped, so every returned chunk holds at least one row.
func Partition(n, jobs int) []Chunk {
	if n <= 0 {
		return nil
	}
	if jobs < 1 {
		jobs = 1
	}
	if jobs > n {
		jobs = n // No need for more workers than items
	}

	// Ceiling division
	chunkSize := (n + jobs - 1) / jobs

	chunks := make([]Chunk, 0, jobs)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, End: end})
	}
	return chunks
}

type outcome[T any] struct {
	index int
	value T
	err   error
}

// ForkJoin runs fn once per chunk, each in its own goroutine, and blocks until
// every worker has reported. Results are returned in chunk order.
//
// A panic inside fn is converted to *errors.PanicError. When any worker fails
// the error of the lowest failing chunk is returned together with that chunk's
// index; all workers are still awaited before returning.
func ForkJoin[T any](chunks []Chunk, fn func(Chunk) (T, error)) ([]T, int, error) {
	results := make(chan outcome[T], len(chunks))

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(c Chunk) {
			defer wg.Done()
			var out outcome[T]
			out.index = c.Index
			func() {
				defer errors.Recover(&out.err, "parallel.ForkJoin")
				out.value, out.err = fn(c)
			}()
			results <- out
		}(c)
	}

	// Barrier
	wg.Wait()
	close(results)

	values := make([]T, len(chunks))
	failed := -1
	var firstErr error
	for out := range results {
		if out.err != nil {
			if failed == -1 || out.index < failed {
				failed = out.index
				firstErr = out.err
			}
			continue
		}
		values[out.index] = out.value
	}
	if firstErr != nil {
		return nil, failed, firstErr
	}
	return values, -1, nil
}

// Parallelize divides items across the available CPU cores and executes fn
// in parallel for each range (start, end).
func Parallelize(items int, fn func(start, end int)) {
	chunks := Partition(items, runtime.NumCPU())
	if len(chunks) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(c.Start, c.End)
	}

	// Wait for all workers to finish processing
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds threshold. Below it, fn runs once over the whole range.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
