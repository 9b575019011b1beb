//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// Backend runs float32 container operations on a WebGPU device.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu      sync.RWMutex
	kernels map[string]*kernel
}

// kernel is a compiled shader and its pipeline.
type kernel struct {
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
}

func (k *kernel) release() {
	k.pipeline.Release()
	k.shader.Release()
}

// New opens the default adapter and device. Any failure, including a
// missing native library, is reported as ErrGPUUnavailable.
func New() (b *Backend, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = errors.Wrapf(errors.ErrGPUUnavailable, "webgpu: native library: %v", r)
		}
	}()

	b = &Backend{kernels: make(map[string]*kernel)}
	b.instance = wgpu.CreateInstance(nil)

	if b.adapter, err = b.instance.RequestAdapter(nil); err != nil {
		b.Release()
		return nil, errors.Wrapf(errors.ErrGPUUnavailable, "webgpu: request adapter: %v", err)
	}
	if b.device, err = b.adapter.RequestDevice(nil); err != nil {
		b.Release()
		return nil, errors.Wrapf(errors.ErrGPUUnavailable, "webgpu: request device: %v", err)
	}
	if b.queue = b.device.GetQueue(); b.queue == nil {
		b.Release()
		return nil, errors.Wrap(errors.ErrGPUUnavailable, "webgpu: device has no queue")
	}
	return b, nil
}

// IsAvailable reports whether an adapter can be obtained.
func IsAvailable() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Release frees the kernels and the device handles in reverse order of
// creation. Memory handed out by Upload must be released first.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, k := range b.kernels {
		k.release()
	}
	b.kernels = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns "webgpu".
func (b *Backend) Name() string { return Name }

// Device returns sg.GPU.
func (b *Backend) Device() sg.Device { return sg.GPU }
