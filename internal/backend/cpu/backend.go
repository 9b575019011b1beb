// Package cpu implements the plain CPU linear algebra engine with generic Go
// loops. Large element-wise loops fan out over worker goroutines.
package cpu

import (
	"runtime"
	"sync/atomic"

	"github.com/born-ml/shogun/internal/parallel"
	"github.com/born-ml/shogun/internal/sg"
)

// Name is the engine name reported by Name.
const Name = "cpu"

// CPUBackend executes container operations on the CPU.
type CPUBackend struct {
	workers atomic.Int32
}

// New creates a new CPU backend using one worker per CPU.
func New() *CPUBackend {
	cpu := &CPUBackend{}
	cpu.workers.Store(int32(runtime.NumCPU()))
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return Name
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() sg.Device {
	return sg.CPU
}

// SetNumThreads sets the worker count hint. Values below 1 mean 1.
func (cpu *CPUBackend) SetNumThreads(n int) {
	cpu.workers.Store(int32(max(n, 1)))
}

// NumThreads returns the worker count hint.
func (cpu *CPUBackend) NumThreads() int {
	return int(cpu.workers.Load())
}

func (cpu *CPUBackend) parallelConfig() parallel.Config {
	return parallel.WithWorkers(cpu.NumThreads())
}
