package sg

import (
	"math"
	"sync/atomic"

	"github.com/born-ml/shogun/internal/errors"
)

// Allocator accounts for owned container storage.
type Allocator interface {
	// Reserve admits an allocation of n bytes or returns an ErrOutOfMemory error.
	Reserve(n int64) error
	// Free returns n bytes previously reserved.
	Free(n int64)
}

// AllocStats is a snapshot of a TrackingAllocator.
type AllocStats struct {
	Allocations int64
	Frees       int64
	LiveBytes   int64
	PeakBytes   int64
}

// TrackingAllocator counts live bytes and enforces an optional limit.
type TrackingAllocator struct {
	limit  int64
	live   atomic.Int64
	peak   atomic.Int64
	allocs atomic.Int64
	frees  atomic.Int64
}

// NewTrackingAllocator creates an allocator. limit <= 0 means unlimited.
func NewTrackingAllocator(limit int64) *TrackingAllocator {
	return &TrackingAllocator{limit: max(limit, 0)}
}

// Reserve implements Allocator.
func (a *TrackingAllocator) Reserve(n int64) error {
	for {
		cur := a.live.Load()
		if a.limit > 0 && (n > a.limit || cur > a.limit-n) {
			return errors.NewOutOfMemory(n, a.limit, cur)
		}
		if a.live.CompareAndSwap(cur, cur+n) {
			a.allocs.Add(1)
			for {
				p := a.peak.Load()
				if cur+n <= p || a.peak.CompareAndSwap(p, cur+n) {
					break
				}
			}
			return nil
		}
	}
}

// Free implements Allocator.
func (a *TrackingAllocator) Free(n int64) {
	if a.live.Add(-n) < 0 {
		panic(errors.AssertionFailedf("allocator: freed more bytes than reserved"))
	}
	a.frees.Add(1)
}

// Limit returns the byte limit, 0 when unlimited.
func (a *TrackingAllocator) Limit() int64 { return a.limit }

// Stats returns current counters.
func (a *TrackingAllocator) Stats() AllocStats {
	return AllocStats{
		Allocations: a.allocs.Load(),
		Frees:       a.frees.Load(),
		LiveBytes:   a.live.Load(),
		PeakBytes:   a.peak.Load(),
	}
}

type allocatorHolder struct{ a Allocator }

var defaultAllocator atomic.Pointer[allocatorHolder]

func init() {
	defaultAllocator.Store(&allocatorHolder{a: NewTrackingAllocator(0)})
}

// DefaultAllocator returns the process allocator used when no
// WithAllocator option is given.
func DefaultAllocator() Allocator {
	return defaultAllocator.Load().a
}

// SetDefaultAllocator replaces the process allocator. Storage already
// allocated keeps returning bytes to the allocator it came from.
func SetDefaultAllocator(a Allocator) {
	if a == nil {
		panic(errors.AssertionFailedf("sg: nil allocator"))
	}
	defaultAllocator.Store(&allocatorHolder{a: a})
}

// Option configures container construction.
type Option func(*options)

type options struct {
	alloc Allocator
}

// WithAllocator accounts the new storage against a.
func WithAllocator(a Allocator) Option {
	return func(o *options) { o.alloc = a }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.alloc == nil {
		o.alloc = DefaultAllocator()
	}
	return o
}

// byteSize returns n*size or an out-of-memory error on overflow.
func byteSize[T Element](n int) (int64, error) {
	size := int64(PTypeOf[T]().Size())
	if int64(n) > math.MaxInt64/size {
		return 0, errors.NewOutOfMemory(math.MaxInt64, 0, 0)
	}
	return int64(n) * size, nil
}

// allocate reserves and makes a zeroed slice of n elements.
func allocate[T Element](n int, alloc Allocator) (data []T, bytes int64, err error) {
	if n < 0 {
		return nil, 0, errors.Invalidf("sg: negative length %d", n)
	}
	bytes, err = byteSize[T](n)
	if err != nil {
		return nil, 0, err
	}
	if err := alloc.Reserve(bytes); err != nil {
		return nil, 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			alloc.Free(bytes)
			data, err = nil, errors.NewOutOfMemory(bytes, 0, 0)
		}
	}()
	return make([]T, n), bytes, nil
}
