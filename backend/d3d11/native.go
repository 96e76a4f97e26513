// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "fmt"

// DXGIFormat is a native texel format code.
type DXGIFormat uint32

// Native formats used by the mapper.
const (
	FormatUnknown DXGIFormat = 0

	FormatR32G32B32A32Typeless DXGIFormat = 1
	FormatR32G32B32A32Float    DXGIFormat = 2
	FormatR32G32B32A32Uint     DXGIFormat = 3
	FormatR32G32B32A32Sint     DXGIFormat = 4
	FormatR32G32B32Typeless    DXGIFormat = 5
	FormatR32G32B32Float       DXGIFormat = 6
	FormatR32G32B32Uint        DXGIFormat = 7
	FormatR32G32B32Sint        DXGIFormat = 8
	FormatR16G16B16A16Typeless DXGIFormat = 9
	FormatR16G16B16A16Float    DXGIFormat = 10
	FormatR16G16B16A16Unorm    DXGIFormat = 11
	FormatR16G16B16A16Uint     DXGIFormat = 12
	FormatR16G16B16A16Snorm    DXGIFormat = 13
	FormatR16G16B16A16Sint     DXGIFormat = 14
	FormatR32G32Typeless       DXGIFormat = 15
	FormatR32G32Float          DXGIFormat = 16
	FormatR32G32Uint           DXGIFormat = 17
	FormatR32G32Sint           DXGIFormat = 18
	FormatR10G10B10A2Typeless  DXGIFormat = 23
	FormatR10G10B10A2Unorm     DXGIFormat = 24
	FormatR10G10B10A2Uint      DXGIFormat = 25
	FormatR11G11B10Float       DXGIFormat = 26
	FormatR8G8B8A8Typeless     DXGIFormat = 27
	FormatR8G8B8A8Unorm        DXGIFormat = 28
	FormatR8G8B8A8UnormSRGB    DXGIFormat = 29
	FormatR8G8B8A8Uint         DXGIFormat = 30
	FormatR8G8B8A8Snorm        DXGIFormat = 31
	FormatR8G8B8A8Sint         DXGIFormat = 32
	FormatR16G16Typeless       DXGIFormat = 33
	FormatR16G16Float          DXGIFormat = 34
	FormatR16G16Unorm          DXGIFormat = 35
	FormatR16G16Uint           DXGIFormat = 36
	FormatR16G16Snorm          DXGIFormat = 37
	FormatR16G16Sint           DXGIFormat = 38
	FormatR32Typeless          DXGIFormat = 39
	FormatD32Float             DXGIFormat = 40
	FormatR32Float             DXGIFormat = 41
	FormatR32Uint              DXGIFormat = 42
	FormatR32Sint              DXGIFormat = 43
	FormatR24G8Typeless        DXGIFormat = 44
	FormatD24UnormS8Uint       DXGIFormat = 45
	FormatR24UnormX8Typeless   DXGIFormat = 46
	FormatR8G8Typeless         DXGIFormat = 48
	FormatR8G8Unorm            DXGIFormat = 49
	FormatR8G8Uint             DXGIFormat = 50
	FormatR8G8Snorm            DXGIFormat = 51
	FormatR8G8Sint             DXGIFormat = 52
	FormatR16Typeless          DXGIFormat = 53
	FormatR16Float             DXGIFormat = 54
	FormatD16Unorm             DXGIFormat = 55
	FormatR16Unorm             DXGIFormat = 56
	FormatR16Uint              DXGIFormat = 57
	FormatR16Snorm             DXGIFormat = 58
	FormatR16Sint              DXGIFormat = 59
	FormatR8Typeless           DXGIFormat = 60
	FormatR8Unorm              DXGIFormat = 61
	FormatR8Uint               DXGIFormat = 62
	FormatR8Snorm              DXGIFormat = 63
	FormatR8Sint               DXGIFormat = 64
	FormatB5G6R5Unorm          DXGIFormat = 85
	FormatB5G5R5A1Unorm        DXGIFormat = 86
	FormatB8G8R8A8Unorm        DXGIFormat = 87
	FormatB8G8R8A8Typeless     DXGIFormat = 90
	FormatB8G8R8A8UnormSRGB    DXGIFormat = 91
)

// BindFlag is the native set of pipeline bind points.
type BindFlag uint32

// Bind flags.
const (
	BindVertexBuffer    BindFlag = 0x1
	BindIndexBuffer     BindFlag = 0x2
	BindConstantBuffer  BindFlag = 0x4
	BindShaderResource  BindFlag = 0x8
	BindStreamOutput    BindFlag = 0x10
	BindRenderTarget    BindFlag = 0x20
	BindDepthStencil    BindFlag = 0x40
	BindUnorderedAccess BindFlag = 0x80
)

// UsageCode is the native resource usage class.
type UsageCode uint32

// Usage classes.
const (
	UsageDefault   UsageCode = 0
	UsageImmutable UsageCode = 1
	UsageDynamic   UsageCode = 2
	UsageStaging   UsageCode = 3
)

// CPUAccessFlag is the native CPU access mask.
type CPUAccessFlag uint32

// CPU access flags.
const (
	CPUAccessWrite CPUAccessFlag = 0x10000
	CPUAccessRead  CPUAccessFlag = 0x20000
)

// MiscFlag holds miscellaneous resource options.
type MiscFlag uint32

// Resource misc flags.
const (
	MiscGenerateMips MiscFlag = 0x1
	MiscTextureCube  MiscFlag = 0x4
)

// SampleDesc is the multisampling configuration of a 2D texture.
type SampleDesc struct {
	Count   uint32
	Quality uint32
}

// BufferDesc describes a native buffer.
type BufferDesc struct {
	ByteWidth           uint32
	Usage               UsageCode
	BindFlags           BindFlag
	CPUAccessFlags      CPUAccessFlag
	MiscFlags           MiscFlag
	StructureByteStride uint32
}

// SubresourceData is initial data for one subresource.
type SubresourceData struct {
	Data       []byte
	RowPitch   uint32
	SlicePitch uint32
}

// Texture1DDesc describes a native 1D texture or texture array.
type Texture1DDesc struct {
	Width          uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         DXGIFormat
	Usage          UsageCode
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      MiscFlag
}

// Texture2DDesc describes a native 2D texture, texture array or cube.
type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         DXGIFormat
	SampleDesc     SampleDesc
	Usage          UsageCode
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      MiscFlag
}

// Texture3DDesc describes a native volume texture.
type Texture3DDesc struct {
	Width          uint32
	Height         uint32
	Depth          uint32
	MipLevels      uint32
	Format         DXGIFormat
	Usage          UsageCode
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      MiscFlag
}

// SRVDimension is the native shader-resource view dimension.
type SRVDimension uint32

// Shader-resource view dimensions.
const (
	SRVDimensionTexture1D        SRVDimension = 2
	SRVDimensionTexture1DArray   SRVDimension = 3
	SRVDimensionTexture2D        SRVDimension = 4
	SRVDimensionTexture2DArray   SRVDimension = 5
	SRVDimensionTexture2DMS      SRVDimension = 6
	SRVDimensionTexture2DMSArray SRVDimension = 7
	SRVDimensionTexture3D        SRVDimension = 8
	SRVDimensionTextureCube      SRVDimension = 9
	SRVDimensionTextureCubeArray SRVDimension = 10
)

// RTVDimension is the native render-target view dimension.
type RTVDimension uint32

// Render-target view dimensions.
const (
	RTVDimensionTexture1D        RTVDimension = 2
	RTVDimensionTexture1DArray   RTVDimension = 3
	RTVDimensionTexture2D        RTVDimension = 4
	RTVDimensionTexture2DArray   RTVDimension = 5
	RTVDimensionTexture2DMS      RTVDimension = 6
	RTVDimensionTexture2DMSArray RTVDimension = 7
	RTVDimensionTexture3D        RTVDimension = 8
)

// DSVDimension is the native depth-stencil view dimension.
type DSVDimension uint32

// Depth-stencil view dimensions.
const (
	DSVDimensionTexture1D        DSVDimension = 1
	DSVDimensionTexture1DArray   DSVDimension = 2
	DSVDimensionTexture2D        DSVDimension = 3
	DSVDimensionTexture2DArray   DSVDimension = 4
	DSVDimensionTexture2DMS      DSVDimension = 5
	DSVDimensionTexture2DMSArray DSVDimension = 6
)

// DSVFlag marks aspects of a depth-stencil view read-only.
type DSVFlag uint32

// Depth-stencil view flags.
const (
	DSVReadOnlyDepth   DSVFlag = 0x1
	DSVReadOnlyStencil DSVFlag = 0x2
)

// ShaderResourceViewDesc describes a shader-resource view. Fields that do
// not apply to the dimension are zero.
type ShaderResourceViewDesc struct {
	Format          DXGIFormat
	ViewDimension   SRVDimension
	MostDetailedMip uint32
	MipLevels       uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// RenderTargetViewDesc describes a render-target view.
type RenderTargetViewDesc struct {
	Format          DXGIFormat
	ViewDimension   RTVDimension
	MipSlice        uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// DepthStencilViewDesc describes a depth-stencil view.
type DepthStencilViewDesc struct {
	Format          DXGIFormat
	ViewDimension   DSVDimension
	Flags           DSVFlag
	MipSlice        uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// Filter is the native sampler filter code.
type Filter uint32

// Sampler filters. Comparison variants add FilterComparison.
const (
	FilterMinMagMipPoint       Filter = 0x0
	FilterMinMagPointMipLinear Filter = 0x1
	FilterMinMagLinearMipPoint Filter = 0x14
	FilterMinMagMipLinear      Filter = 0x15
	FilterAnisotropic          Filter = 0x55
	FilterComparison           Filter = 0x80
)

// TextureAddressMode is the native wrap mode.
type TextureAddressMode uint32

// Texture address modes.
const (
	AddressWrap   TextureAddressMode = 1
	AddressMirror TextureAddressMode = 2
	AddressClamp  TextureAddressMode = 3
	AddressBorder TextureAddressMode = 4
)

// ComparisonFunc is the native comparison function.
type ComparisonFunc uint32

// Comparison functions.
const (
	ComparisonNever        ComparisonFunc = 1
	ComparisonLess         ComparisonFunc = 2
	ComparisonEqual        ComparisonFunc = 3
	ComparisonLessEqual    ComparisonFunc = 4
	ComparisonGreater      ComparisonFunc = 5
	ComparisonNotEqual     ComparisonFunc = 6
	ComparisonGreaterEqual ComparisonFunc = 7
	ComparisonAlways       ComparisonFunc = 8
)

// SamplerDesc describes a native sampler state.
type SamplerDesc struct {
	Filter         Filter
	AddressU       TextureAddressMode
	AddressV       TextureAddressMode
	AddressW       TextureAddressMode
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc ComparisonFunc
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

// PrimitiveTopology is the native input assembler topology.
type PrimitiveTopology uint32

// Primitive topologies.
const (
	TopologyPointList     PrimitiveTopology = 1
	TopologyLineList      PrimitiveTopology = 2
	TopologyLineStrip     PrimitiveTopology = 3
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
)

// InputClassification selects per-vertex or per-instance stepping.
type InputClassification uint32

// Input classifications.
const (
	InputPerVertexData   InputClassification = 0
	InputPerInstanceData InputClassification = 1
)

// InputElementDesc describes one element of an input layout.
type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               DXGIFormat
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

// FillMode is the native rasterizer fill mode.
type FillMode uint32

// Fill modes.
const (
	FillWireframe FillMode = 2
	FillSolid     FillMode = 3
)

// CullMode is the native cull mode.
type CullMode uint32

// Cull modes.
const (
	CullNone  CullMode = 1
	CullFront CullMode = 2
	CullBack  CullMode = 3
)

// RasterizerDesc describes a native rasterizer state.
type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
}

// DepthWriteMask enables or disables depth writes.
type DepthWriteMask uint32

// Depth write masks.
const (
	DepthWriteMaskZero DepthWriteMask = 0
	DepthWriteMaskAll  DepthWriteMask = 1
)

// StencilOp is the native stencil operation.
type StencilOp uint32

// Stencil operations.
const (
	StencilOpKeep    StencilOp = 1
	StencilOpZero    StencilOp = 2
	StencilOpReplace StencilOp = 3
	StencilOpIncrSat StencilOp = 4
	StencilOpDecrSat StencilOp = 5
	StencilOpInvert  StencilOp = 6
	StencilOpIncr    StencilOp = 7
	StencilOpDecr    StencilOp = 8
)

// DepthStencilOpDesc is the stencil configuration of one facing.
type DepthStencilOpDesc struct {
	StencilFailOp      StencilOp
	StencilDepthFailOp StencilOp
	StencilPassOp      StencilOp
	StencilFunc        ComparisonFunc
}

// DepthStencilDesc describes a native depth-stencil state.
type DepthStencilDesc struct {
	DepthEnable      bool
	DepthWriteMask   DepthWriteMask
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DepthStencilOpDesc
	BackFace         DepthStencilOpDesc
}

// Blend is the native blend factor.
type Blend uint32

// Blend factors.
const (
	BlendZero           Blend = 1
	BlendOne            Blend = 2
	BlendSrcColor       Blend = 3
	BlendInvSrcColor    Blend = 4
	BlendSrcAlpha       Blend = 5
	BlendInvSrcAlpha    Blend = 6
	BlendDestAlpha      Blend = 7
	BlendInvDestAlpha   Blend = 8
	BlendDestColor      Blend = 9
	BlendInvDestColor   Blend = 10
	BlendSrcAlphaSat    Blend = 11
	BlendBlendFactor    Blend = 14
	BlendInvBlendFactor Blend = 15
)

// BlendOp is the native blend equation.
type BlendOp uint32

// Blend operations.
const (
	BlendOpAdd         BlendOp = 1
	BlendOpSubtract    BlendOp = 2
	BlendOpRevSubtract BlendOp = 3
	BlendOpMin         BlendOp = 4
	BlendOpMax         BlendOp = 5
)

// RenderTargetBlendDesc is the blend configuration of one render target.
type RenderTargetBlendDesc struct {
	BlendEnable           bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	RenderTargetWriteMask uint8
}

// MaxRenderTargets is the number of simultaneous render targets.
const MaxRenderTargets = 8

// BlendDesc describes a native blend state.
type BlendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [MaxRenderTargets]RenderTargetBlendDesc
}

// Box is a region of a subresource; right, bottom and back are exclusive.
type Box struct {
	Left, Top, Front    uint32
	Right, Bottom, Back uint32
}

// MapType is the CPU access requested when mapping a subresource.
type MapType uint32

// Map types.
const (
	MapTypeRead         MapType = 1
	MapTypeWrite        MapType = 2
	MapTypeReadWrite    MapType = 3
	MapTypeWriteDiscard MapType = 4
)

// MappedSubresource is CPU-visible memory of a mapped subresource.
type MappedSubresource struct {
	Data       []byte
	RowPitch   uint32
	DepthPitch uint32
}

// HRESULT is a native result code. Failure codes implement error.
type HRESULT uint32

// Result codes reported by devices.
const (
	SOK                   HRESULT = 0
	ENotImpl              HRESULT = 0x80004001
	EFail                 HRESULT = 0x80004005
	EOutOfMemory          HRESULT = 0x8007000E
	EInvalidArg           HRESULT = 0x80070057
	DXGIErrorDeviceRemove HRESULT = 0x887A0005
)

// Failed reports whether hr is a failure code.
func (hr HRESULT) Failed() bool { return hr&0x80000000 != 0 }

func (hr HRESULT) Error() string {
	switch hr {
	case ENotImpl:
		return "d3d11: E_NOTIMPL"
	case EFail:
		return "d3d11: E_FAIL"
	case EOutOfMemory:
		return "d3d11: E_OUTOFMEMORY"
	case EInvalidArg:
		return "d3d11: E_INVALIDARG"
	case DXGIErrorDeviceRemove:
		return "d3d11: DXGI_ERROR_DEVICE_REMOVED"
	default:
		return fmt.Sprintf("d3d11: HRESULT 0x%08X", uint32(hr))
	}
}
