// Package webgpu implements the GPU engine on WebGPU compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Only float32 containers can be uploaded. Add, ElementProd and Scale run on
// the device; the remaining operations report ErrUnsupportedOperation.
// On platforms without the native library New returns ErrGPUUnavailable.
package webgpu

// Name is the engine name reported by Name and by GPU memory handles.
const Name = "webgpu"
