//go:build windows

package webgpu

import (
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/shogun/internal/errors"
)

// kernelFor returns the cached kernel for name, compiling code on first use.
func (b *Backend) kernelFor(name, code string) *kernel {
	b.mu.RLock()
	k, ok := b.kernels[name]
	b.mu.RUnlock()
	if ok {
		return k
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if k, ok = b.kernels[name]; ok {
		return k
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	k = &kernel{
		shader:   shader,
		pipeline: b.device.CreateComputePipelineSimple(nil, shader, "main"),
	}
	b.kernels[name] = k
	return k
}

// createBuffer creates a storage buffer holding data.
func (b *Backend) createBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer creates a uniform buffer rounded up to 16 bytes.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	alignedSize := (uint64(len(data)) + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), alignedSize), data)
	buffer.Unmap()
	return buffer
}

// readBuffer copies a storage buffer back through a staging buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrap(err, "webgpu: failed to map staging buffer")
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()
	return out, nil
}

// binding is one storage buffer bound to a shader slot.
type binding struct {
	buffer *wgpu.Buffer
	size   uint64
}

// dispatch runs a compute shader over n elements. The storage buffers are
// bound to slots 0.. in order and params to the next slot.
func (b *Backend) dispatch(name, code string, n int, params []byte, buffers ...binding) {
	pipeline := b.kernelFor(name, code).pipeline

	uniform := b.createUniformBuffer(params)
	defer uniform.Release()

	entries := make([]wgpu.BindGroupEntry, 0, len(buffers)+1)
	for i, buf := range buffers {
		//nolint:gosec // G115: slot count is tiny
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf.buffer, 0, buf.size))
	}
	//nolint:gosec // G115: slot count is tiny
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(buffers)), uniform, 0, 16))

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	pass.DispatchWorkgroups(uint32((n+workgroupSize-1)/workgroupSize), 1, 1)
	pass.End()

	b.queue.Submit(encoder.Finish(nil))
}
