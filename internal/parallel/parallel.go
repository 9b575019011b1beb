// Package parallel fans element-wise loops out over worker goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultMinChunk is the smallest range worth a goroutine.
const DefaultMinChunk = 4096

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	return WithWorkers(runtime.NumCPU())
}

// WithWorkers returns a config for the given thread-count hint.
// Values below 2 disable parallelism.
func WithWorkers(n int) Config {
	return Config{
		Enabled:      n > 1,
		NumWorkers:   max(n, 1),
		MinChunkSize: DefaultMinChunk,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// ForRange splits [0, n) into contiguous chunks and calls f once per chunk.
// It returns after every chunk has completed.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	_ = ForRangeErr(n, func(start, end int) error {
		f(start, end)
		return nil
	}, cfg)
}

// ForRangeErr is ForRange for chunk functions that can fail. Every chunk
// runs; the first error is returned.
func ForRangeErr(n int, f func(start, end int) error, cfg Config) error {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		return f(0, n)
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	chunkSize := ChunkSize(n, cfg)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error { return f(start, end) })
	}
	return g.Wait()
}

// ChunkSize reports the length of every chunk but the last that ForRange
// would use for n items.
func ChunkSize(n int, cfg Config) int {
	if n <= 0 {
		return 0
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		return n
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
}

// Chunks reports how many chunks ForRange would use for n items.
func Chunks(n int, cfg Config) int {
	size := ChunkSize(n, cfg)
	if size == 0 {
		return 0
	}
	return (n + size - 1) / size
}
