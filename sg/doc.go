// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sg provides the typed, reference-counted containers of the
// library.
//
// # Overview
//
// Vector[T] and Matrix[T] share storage between aliases and release it when
// the last alias is released:
//   - Alias shares storage and bumps the reference count
//   - Clone makes an independent owned copy
//   - Wrap borrows or takes caller memory
//   - Matrices are column-major and Column returns a view
//
// Element access is bounds-checked. Containers whose data lives in GPU
// memory refuse direct access until moved back with linalg.FromGPU.
//
// # Basic Usage
//
//	import "github.com/born-ml/shogun/sg"
//
//	func main() {
//	    v, err := sg.VectorFrom(1.0, 2.0, 3.0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer v.Release()
//
//	    w := v.Alias() // same storage, refcount 2
//	    defer w.Release()
//	}
//
// # Memory accounting
//
// Owned storage is reserved from an Allocator. The default is an unlimited
// TrackingAllocator; core.Init installs one with the configured limit and
// allocations beyond it fail with an out-of-memory error.
package sg
