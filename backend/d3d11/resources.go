// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// Buffer is a native buffer registered in the handle manager.
type Buffer struct {
	native Object
	Info   core.BufferInfo
	// Size is the allocated byte size, rounded up for uniform buffers.
	Size uint64
}

// Native returns the native buffer object.
func (b *Buffer) Native() Object { return b.native }

// Destroy releases the native buffer.
func (b *Buffer) Destroy() { b.native.Release() }

// Texture is a native texture and the descriptor it was created from.
type Texture struct {
	native Object
	Info   core.TextureInfo
	// Format is the native resource format, typeless unless a typed format
	// was requested.
	Format DXGIFormat
}

// Native returns the native texture object.
func (t *Texture) Native() Object { return t.native }

// Destroy releases the native texture.
func (t *Texture) Destroy() { t.native.Release() }

// Shader is a compiled shader stage.
type Shader struct {
	native     Object
	Stage      core.Stage
	Reflection core.ShaderReflection
	Hash       CodeHash
	cache      *ShaderCache
	ref        CacheRef
}

// Native returns the native shader object.
func (s *Shader) Native() Object { return s.native }

// Destroy releases the native shader. A vertex shader also drops its
// reference on the cached bytecode.
func (s *Shader) Destroy() {
	s.native.Release()
	if s.ref.Valid() {
		s.cache.Drop(s.ref)
	}
}

// Program links a vertex, optional geometry and pixel shader.
type Program struct {
	vs, gs, ps Object
	Info       core.ProgramInfo
	// VertexHash keys the vertex bytecode in the shader cache.
	VertexHash CodeHash
	cache      *ShaderCache
	ref        CacheRef
}

// Vertex returns the native vertex shader.
func (p *Program) Vertex() Object { return p.vs }

// Geometry returns the native geometry shader, or nil.
func (p *Program) Geometry() Object { return p.gs }

// Pixel returns the native pixel shader.
func (p *Program) Pixel() Object { return p.ps }

// Destroy releases the program's references on its shaders.
func (p *Program) Destroy() {
	p.vs.Release()
	if p.gs != nil {
		p.gs.Release()
	}
	p.ps.Release()
	if p.ref.Valid() {
		p.cache.Drop(p.ref)
	}
}

// PipelineState is a complete graphics pipeline.
type PipelineState struct {
	Topology    PrimitiveTopology
	InputLayout Object
	// Attributes is the attribute-to-slot table, indexed like the program's
	// vertex attributes. Unbound attributes are nil.
	Attributes   []*core.AttributeDesc
	Program      handle.Handle[*Program]
	Rasterizer   Object
	DepthStencil Object
	Blend        Object

	handles *handle.Manager
}

// Destroy releases the native objects and the pipeline's reference on its
// program.
func (p *PipelineState) Destroy() {
	p.InputLayout.Release()
	p.Rasterizer.Release()
	p.DepthStencil.Release()
	p.Blend.Release()
	_, _ = handle.Release(p.handles, p.Program)
}

// ShaderResourceView exposes a texture to shaders.
type ShaderResourceView struct {
	native Object
	// Texture is the viewed texture. It is not retained by the view.
	Texture handle.Handle[*Texture]
	Address ViewAddress
}

// Native returns the native view object.
func (v *ShaderResourceView) Native() Object { return v.native }

// Destroy releases the native view.
func (v *ShaderResourceView) Destroy() { v.native.Release() }

// RenderTargetView is a texture subresource bound as a color target.
type RenderTargetView struct {
	native  Object
	Texture handle.Handle[*Texture]
	Address ViewAddress
	// Width, Height and Depth are the dimensions of the viewed level.
	Width, Height, Depth uint32
}

// Native returns the native view object.
func (v *RenderTargetView) Native() Object { return v.native }

// Destroy releases the native view.
func (v *RenderTargetView) Destroy() { v.native.Release() }

// DepthStencilView is a texture subresource bound for depth testing.
type DepthStencilView struct {
	native               Object
	Texture              handle.Handle[*Texture]
	Address              ViewAddress
	Width, Height, Depth uint32
}

// Native returns the native view object.
func (v *DepthStencilView) Native() Object { return v.native }

// Destroy releases the native view.
func (v *DepthStencilView) Destroy() { v.native.Release() }

// UnorderedAccessView is a read-write view. This backend never creates
// one; the type exists so the view entry points have a handle to return.
type UnorderedAccessView struct {
	native Object
}

// Destroy releases the native view.
func (v *UnorderedAccessView) Destroy() {
	if v.native != nil {
		v.native.Release()
	}
}

// Sampler is a native sampler state.
type Sampler struct {
	native Object
	Info   core.SamplerInfo
}

// Native returns the native sampler object.
func (s *Sampler) Native() Object { return s.native }

// Destroy releases the native sampler.
func (s *Sampler) Destroy() { s.native.Release() }
