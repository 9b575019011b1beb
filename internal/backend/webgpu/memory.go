//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// memory is a float32 storage buffer on the device.
type memory struct {
	backend *Backend
	buffer  *wgpu.Buffer
	n       int
	once    sync.Once
}

var _ sg.GPUMemory = (*memory)(nil)

// byteSize is the buffer size for n float32 values. Zero-length buffers
// cannot be bound so at least one element is allocated.
func byteSize(n int) uint64 {
	return uint64(max(n, 1)) * 4 //nolint:gosec // G115: n is non-negative
}

func (m *memory) Backend() string { return Name }
func (m *memory) Len() int         { return m.n }
func (m *memory) PType() sg.PType  { return sg.Float32 }

func (m *memory) binding() binding {
	return binding{buffer: m.buffer, size: byteSize(m.n)}
}

// Download copies the buffer into dst, which must be a []float32.
func (m *memory) Download(dst any) error {
	out, ok := dst.([]float32)
	if !ok {
		return errors.NewTypeMismatch("download", "", "[]float32", fmt.Sprintf("%T", dst))
	}
	if len(out) < m.n {
		return errors.NewShapeError("download", []int{m.n}, []int{len(out)})
	}
	if m.n == 0 {
		return nil
	}
	raw, err := m.backend.readBuffer(m.buffer, byteSize(m.n))
	if err != nil {
		return err
	}
	for i := range m.n {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return nil
}

// Release frees the device buffer.
func (m *memory) Release() {
	m.once.Do(func() {
		m.buffer.Release()
		m.buffer = nil
	})
}

// Upload copies a float32 CPU container into a new device buffer.
func (b *Backend) Upload(d sg.Dense) (sg.GPUMemory, error) {
	data, err := sg.Elements[float32](d)
	if err != nil {
		if errors.Is(err, errors.ErrTypeMismatch) {
			return nil, errors.NewUnsupportedType("webgpu upload", d.PType())
		}
		return nil, err
	}

	raw := make([]byte, byteSize(len(data)))
	for i, v := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	return &memory{backend: b, buffer: b.createBuffer(raw), n: len(data)}, nil
}

// memoryOf returns the webgpu memory behind d.
func (b *Backend) memoryOf(op string, d sg.Dense) (*memory, error) {
	mem, ok := d.GPUMemory().(*memory)
	if !ok || mem.backend != b {
		return nil, errors.Wrapf(errors.ErrDeviceMismatch, "webgpu %s", op)
	}
	return mem, nil
}
