package sg

import (
	"github.com/born-ml/shogun/internal/refcount"
)

// storage is the buffer shared by every alias of a container.
// Exactly one of data and gpu is in use.
type storage[T Element] struct {
	data  []T
	gpu   GPUMemory
	owns  bool
	alloc Allocator // nil for borrowed or GPU storage
	bytes int64
	refs  *refcount.RefCount
}

func newOwnedStorage[T Element](n int, o options) (*storage[T], error) {
	data, bytes, err := allocate[T](n, o.alloc)
	if err != nil {
		return nil, err
	}
	return &storage[T]{data: data, owns: true, alloc: o.alloc, bytes: bytes, refs: refcount.New(1)}, nil
}

// wrapStorage adopts data. Borrowed data never reaches the allocator.
func wrapStorage[T Element](data []T, take bool, o options) (*storage[T], error) {
	st := &storage[T]{data: data, owns: take, refs: refcount.New(1)}
	if take {
		bytes, err := byteSize[T](len(data))
		if err != nil {
			return nil, err
		}
		if err := o.alloc.Reserve(bytes); err != nil {
			return nil, err
		}
		st.alloc, st.bytes = o.alloc, bytes
	}
	return st, nil
}

func gpuStorage[T Element](mem GPUMemory) *storage[T] {
	return &storage[T]{gpu: mem, owns: true, refs: refcount.New(1)}
}

func (s *storage[T]) retain() {
	s.refs.Ref()
}

// release drops one alias; the last one frees owned memory.
func (s *storage[T]) release() {
	if s.refs.Unref() != 0 {
		return
	}
	if s.gpu != nil {
		s.gpu.Release()
		s.gpu = nil
	}
	if s.owns && s.alloc != nil {
		s.alloc.Free(s.bytes)
	}
	s.data = nil
}
