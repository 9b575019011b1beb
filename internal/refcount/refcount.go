// Package refcount provides the atomic reference counter shared by objects
// and container storage.
package refcount

import (
	"sync/atomic"

	"github.com/born-ml/shogun/internal/errors"
)

// RefCount is a linearizable counter that never goes below zero.
// The zero value is ready to use with a count of 0. RefCount does not act
// on reaching zero; callers destroy their resource when Unref returns 0.
type RefCount struct {
	n atomic.Int64
}

// New creates a counter starting at initial. Negative values panic.
func New(initial int64) *RefCount {
	if initial < 0 {
		panic(errors.AssertionFailedf("refcount: negative initial count %d", initial))
	}
	rc := &RefCount{}
	rc.n.Store(initial)
	return rc
}

// Ref increments the counter and returns the new value.
func (rc *RefCount) Ref() int64 {
	return rc.n.Add(1)
}

// Unref decrements the counter and returns the new value.
// Unref on a zero counter panics: it means an unmatched release.
func (rc *RefCount) Unref() int64 {
	for {
		cur := rc.n.Load()
		if cur <= 0 {
			panic(errors.AssertionFailedf("refcount underflow"))
		}
		if rc.n.CompareAndSwap(cur, cur-1) {
			return cur - 1
		}
	}
}

// TryRef increments the counter only if it is positive and returns the
// post-increment value. It is used to resurrect a handle that may be racing
// with its final release.
func (rc *RefCount) TryRef() (int64, bool) {
	for {
		cur := rc.n.Load()
		if cur <= 0 {
			return cur, false
		}
		if rc.n.CompareAndSwap(cur, cur+1) {
			return cur + 1, true
		}
	}
}

// Count returns the current value.
func (rc *RefCount) Count() int64 {
	return rc.n.Load()
}
