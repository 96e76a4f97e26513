// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/core"
)

// refs is the reference count shared by every object of this package. The
// count starts at one; destroy runs once when it drops to zero.
type refs struct {
	count   atomic.Int32
	destroy func()
}

func (r *refs) init(destroy func()) {
	r.count.Store(1)
	r.destroy = destroy
}

// AddRef adds a reference and returns the new count.
func (r *refs) AddRef() uint32 {
	return uint32(r.count.Add(1))
}

// Release drops a reference and returns the remaining count.
func (r *refs) Release() uint32 {
	n := r.count.Add(-1)
	switch {
	case n == 0:
		if r.destroy != nil {
			r.destroy()
		}
	case n < 0:
		r.count.Store(0)
		gfx.Logger().Warn("haldev: release of destroyed object")
		return 0
	}
	return uint32(n)
}

// Buffer is a HAL buffer with a CPU copy of its contents. The copy pads
// writes to the four byte granularity of queue writes and backs mapping.
type Buffer struct {
	refs
	buffer hal.Buffer
	desc   d3d11.BufferDesc

	mu      sync.Mutex
	shadow  []byte
	mapped  bool
	mapType d3d11.MapType
}

// HAL returns the underlying buffer.
func (b *Buffer) HAL() hal.Buffer { return b.buffer }

// Desc returns the native description the buffer was created with.
func (b *Buffer) Desc() d3d11.BufferDesc { return b.desc }

// Texture is a HAL texture together with its layout.
type Texture struct {
	refs
	texture   hal.Texture
	format    texelFormat
	native    d3d11.DXGIFormat
	dimension gputypes.TextureDimension
	usage     d3d11.UsageCode
	size      hal.Extent3D
	mips      uint32
	samples   uint32
}

// HAL returns the underlying texture.
func (t *Texture) HAL() hal.Texture { return t.texture }

// Format returns the HAL storage format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format.format }

// Size returns the extent of the top mip level.
func (t *Texture) Size() hal.Extent3D { return t.size }

// MipLevels returns the number of mip levels.
func (t *Texture) MipLevels() uint32 { return t.mips }

// layers is the array size of the texture, 1 for volumes.
func (t *Texture) layers() uint32 {
	if t.dimension == gputypes.TextureDimension3D {
		return 1
	}
	return t.size.DepthOrArrayLayers
}

// mipExtent returns the extent of one mip level.
func (t *Texture) mipExtent(mip uint32) hal.Extent3D {
	e := hal.Extent3D{
		Width:              max(t.size.Width>>mip, 1),
		Height:             max(t.size.Height>>mip, 1),
		DepthOrArrayLayers: 1,
	}
	if t.dimension == gputypes.TextureDimension3D {
		e.DepthOrArrayLayers = max(t.size.DepthOrArrayLayers>>mip, 1)
	}
	if t.dimension == gputypes.TextureDimension1D {
		e.Height = 1
	}
	return e
}

// View is a texture view used as shader resource, render target or depth
// stencil. It holds a reference on its texture.
type View struct {
	refs
	view    hal.TextureView
	texture *Texture
	desc    hal.TextureViewDescriptor

	// DepthSlice is the first depth slice of a volume render target.
	DepthSlice uint32
	// DepthReadOnly and StencilReadOnly are set for read-only depth
	// stencil views.
	DepthReadOnly   bool
	StencilReadOnly bool
}

// HAL returns the underlying view.
func (v *View) HAL() hal.TextureView { return v.view }

// Texture returns the viewed texture.
func (v *View) Texture() *Texture { return v.texture }

// Desc returns the HAL view description.
func (v *View) Desc() hal.TextureViewDescriptor { return v.desc }

// Shader is a compiled shader module.
type Shader struct {
	refs
	module hal.ShaderModule
	stage  core.Stage
	// Entry is the entry point name.
	Entry string
}

// HAL returns the underlying shader module.
func (s *Shader) HAL() hal.ShaderModule { return s.module }

// Stage returns the pipeline stage of the module.
func (s *Shader) Stage() core.Stage { return s.stage }

// InputLayout is a validated vertex input layout. Buffers is indexed by
// input slot.
type InputLayout struct {
	refs
	Elements []d3d11.InputElementDesc
	Buffers  []gputypes.VertexBufferLayout
}

// Sampler is a HAL sampler.
type Sampler struct {
	refs
	sampler hal.Sampler
	desc    hal.SamplerDescriptor
}

// HAL returns the underlying sampler.
func (s *Sampler) HAL() hal.Sampler { return s.sampler }

// Desc returns the HAL sampler description.
func (s *Sampler) Desc() hal.SamplerDescriptor { return s.desc }

// RasterizerState holds the primitive state of a pipeline. Topology is
// filled in when the pipeline is built.
type RasterizerState struct {
	refs
	Primitive gputypes.PrimitiveState

	DepthBias           int32
	DepthBiasSlopeScale float32
	DepthBiasClamp      float32
	DepthClip           bool
	Scissor             bool
	Multisample         bool
	Wireframe           bool
}

// DepthStencilState holds the depth and stencil state of a pipeline. The
// format is filled in from the bound depth stencil view.
type DepthStencilState struct {
	refs
	State hal.DepthStencilState
}

// BlendState holds the color target states of a pipeline, one per render
// target slot. Formats are filled in from the bound render targets.
type BlendState struct {
	refs
	Targets         [d3d11.MaxRenderTargets]gputypes.ColorTargetState
	AlphaToCoverage bool
}
