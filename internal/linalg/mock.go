package linalg

import (
	"sync"
	"sync/atomic"

	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// MockGPUName is the engine name of MockGPU.
const MockGPUName = "mock-gpu"

// MockGPU simulates a device in process memory. Uploads are copied into
// separate host buffers and operations run the plain CPU engine on them.
type MockGPU struct {
	engine   *cpu.CPUBackend
	uploads  atomic.Int64
	live     atomic.Int64
	released atomic.Bool
}

var _ GPUBackend = (*MockGPU)(nil)

// NewMockGPU creates a MockGPU.
func NewMockGPU() *MockGPU {
	m := &MockGPU{engine: cpu.New()}
	m.engine.SetNumThreads(1)
	return m
}

// Name returns "mock-gpu".
func (m *MockGPU) Name() string { return MockGPUName }

// Device returns sg.GPU.
func (m *MockGPU) Device() sg.Device { return sg.GPU }

// Uploads returns the number of Upload calls that succeeded.
func (m *MockGPU) Uploads() int64 { return m.uploads.Load() }

// Live returns the number of device buffers not yet released.
func (m *MockGPU) Live() int64 { return m.live.Load() }

// Released reports whether Release was called.
func (m *MockGPU) Released() bool { return m.released.Load() }

// Release marks the device as torn down.
func (m *MockGPU) Release() { m.released.Store(true) }

type releaser interface{ Release() }

type mockMemory struct {
	owner *MockGPU
	host  sg.Dense
	once  sync.Once
}

func (mm *mockMemory) Backend() string { return MockGPUName }
func (mm *mockMemory) Len() int        { return mm.host.Len() }
func (mm *mockMemory) PType() sg.PType { return mm.host.PType() }

func (mm *mockMemory) Download(dst any) error {
	return mm.host.CopyTo(dst)
}

func (mm *mockMemory) Release() {
	mm.once.Do(func() {
		if r, ok := mm.host.(releaser); ok {
			r.Release()
		}
		mm.owner.live.Add(-1)
	})
}

// Upload copies a host container into a simulated device buffer.
func (m *MockGPU) Upload(d sg.Dense) (sg.GPUMemory, error) {
	if d.OnGPU() {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "mock-gpu upload: source already on a device")
	}
	host, err := d.CloneDense()
	if err != nil {
		return nil, err
	}
	m.uploads.Add(1)
	m.live.Add(1)
	return &mockMemory{owner: m, host: host}, nil
}

// hosts maps device operands to their simulated buffers.
func (m *MockGPU) hosts(op string, ds ...sg.Dense) ([]sg.Dense, error) {
	out := make([]sg.Dense, len(ds))
	for i, d := range ds {
		mem, ok := d.GPUMemory().(*mockMemory)
		if !ok || mem.owner != m {
			return nil, errors.Wrapf(errors.ErrDeviceMismatch, "mock-gpu %s", op)
		}
		out[i] = mem.host
	}
	return out, nil
}

// Add computes result = alpha*a + beta*b.
func (m *MockGPU) Add(a, b sg.Dense, alpha, beta any, result sg.Dense) error {
	h, err := m.hosts("add", a, b, result)
	if err != nil {
		return err
	}
	return m.engine.Add(h[0], h[1], alpha, beta, h[2])
}

// Dot returns the inner product of a and b.
func (m *MockGPU) Dot(a, b sg.Dense) (any, error) {
	h, err := m.hosts("dot", a, b)
	if err != nil {
		return nil, err
	}
	return m.engine.Dot(h[0], h[1])
}

// ElementProd computes result = a * b element-wise.
func (m *MockGPU) ElementProd(a, b, result sg.Dense) error {
	h, err := m.hosts("element product", a, b, result)
	if err != nil {
		return err
	}
	return m.engine.ElementProd(h[0], h[1], h[2])
}

// Scale computes result = alpha * a.
func (m *MockGPU) Scale(a sg.Dense, alpha any, result sg.Dense) error {
	h, err := m.hosts("scale", a, result)
	if err != nil {
		return err
	}
	return m.engine.Scale(h[0], alpha, h[1])
}

// Sum returns the sum of all elements.
func (m *MockGPU) Sum(a sg.Dense) (any, error) {
	h, err := m.hosts("sum", a)
	if err != nil {
		return nil, err
	}
	return m.engine.Sum(h[0])
}

// Max returns the largest element.
func (m *MockGPU) Max(a sg.Dense) (any, error) {
	h, err := m.hosts("max", a)
	if err != nil {
		return nil, err
	}
	return m.engine.Max(h[0])
}

// Mean returns the arithmetic mean.
func (m *MockGPU) Mean(a sg.Dense) (float64, error) {
	h, err := m.hosts("mean", a)
	if err != nil {
		return 0, err
	}
	return m.engine.Mean(h[0])
}

// SetConst sets every element to value.
func (m *MockGPU) SetConst(result sg.Dense, value any) error {
	h, err := m.hosts("set const", result)
	if err != nil {
		return err
	}
	return m.engine.SetConst(h[0], value)
}

// RangeFill sets result[i] = start + i.
func (m *MockGPU) RangeFill(result sg.Dense, start any) error {
	h, err := m.hosts("range fill", result)
	if err != nil {
		return err
	}
	return m.engine.RangeFill(h[0], start)
}

// MatrixProd computes result = op(a) * op(b).
func (m *MockGPU) MatrixProd(a, b, result sg.Dense, transA, transB bool) error {
	h, err := m.hosts("matrix product", a, b, result)
	if err != nil {
		return err
	}
	return m.engine.MatrixProd(h[0], h[1], h[2], transA, transB)
}

// Identity writes the identity matrix into result.
func (m *MockGPU) Identity(result sg.Dense) error {
	h, err := m.hosts("identity", result)
	if err != nil {
		return err
	}
	return m.engine.Identity(h[0])
}
