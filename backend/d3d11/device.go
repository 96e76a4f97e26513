// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "github.com/gogpu/gfx/core"

// Object is a reference-counted native object. Release destroys the object
// when its count reaches zero.
type Object interface {
	AddRef() uint32
	Release() uint32
}

// Device creates native objects. Methods return an error (usually an
// HRESULT) instead of an object on failure.
//
// Device is itself reference counted; Factory.Clone adds a reference.
type Device interface {
	Object

	CreateBuffer(desc *BufferDesc, initial *SubresourceData) (Object, error)
	CreateTexture1D(desc *Texture1DDesc, initial []SubresourceData) (Object, error)
	CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Object, error)
	CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Object, error)

	CreateVertexShader(code []byte) (Object, error)
	CreateGeometryShader(code []byte) (Object, error)
	CreatePixelShader(code []byte) (Object, error)

	// CreateInputLayout validates elements against the vertex shader
	// bytecode that will consume them.
	CreateInputLayout(elements []InputElementDesc, vertexCode []byte) (Object, error)

	CreateShaderResourceView(res Object, desc *ShaderResourceViewDesc) (Object, error)
	CreateRenderTargetView(res Object, desc *RenderTargetViewDesc) (Object, error)
	CreateDepthStencilView(res Object, desc *DepthStencilViewDesc) (Object, error)

	CreateSamplerState(desc *SamplerDesc) (Object, error)
	CreateRasterizerState(desc *RasterizerDesc) (Object, error)
	CreateDepthStencilState(desc *DepthStencilDesc) (Object, error)
	CreateBlendState(desc *BlendDesc) (Object, error)
}

// DeviceContext is an immediate context used for resource updates and
// CPU mapping.
type DeviceContext interface {
	UpdateSubresource(res Object, subresource uint32, box *Box, data []byte, rowPitch, depthPitch uint32) error
	Map(res Object, subresource uint32, mapType MapType) (MappedSubresource, error)
	Unmap(res Object, subresource uint32)
}

// CapabilityReporter is implemented by devices that can describe their
// limits. Devices without it get DefaultCapabilities.
type CapabilityReporter interface {
	Capabilities() core.Capabilities
}

// DefaultCapabilities are the feature level 11.0 limits.
func DefaultCapabilities() core.Capabilities {
	return core.Capabilities{
		MaxVertexCount:  0,
		MaxIndexCount:   0,
		MaxTextureSize:  16384,
		MaxPatchSize:    32,
		InstanceBase:    true,
		InstanceCall:    true,
		InstanceRate:    true,
		VertexBase:      true,
		SRGBColor:       true,
		ConstantBuffer:  true,
		UnorderedAccess: false,
		SeparateBlend:   false,
		CopyBuffer:      true,
	}
}
