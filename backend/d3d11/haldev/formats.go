// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/backend/d3d11"
)

// texelFormat is the HAL equivalent of a native texel format.
type texelFormat struct {
	format gputypes.TextureFormat
	// size is bytes per texel.
	size uint32
	// view is an extra format views may reinterpret the texture as.
	view gputypes.TextureFormat
}

// textureFormats maps native formats to HAL formats. Typeless formats map
// to their unorm or float member.
var textureFormats = map[d3d11.DXGIFormat]texelFormat{
	d3d11.FormatR32G32B32A32Typeless: {format: gputypes.TextureFormatRGBA32Float, size: 16},
	d3d11.FormatR32G32B32A32Float:    {format: gputypes.TextureFormatRGBA32Float, size: 16},
	d3d11.FormatR32G32B32A32Uint:     {format: gputypes.TextureFormatRGBA32Uint, size: 16},
	d3d11.FormatR32G32B32A32Sint:     {format: gputypes.TextureFormatRGBA32Sint, size: 16},

	d3d11.FormatR16G16B16A16Typeless: {format: gputypes.TextureFormatRGBA16Float, size: 8},
	d3d11.FormatR16G16B16A16Float:    {format: gputypes.TextureFormatRGBA16Float, size: 8},
	d3d11.FormatR16G16B16A16Uint:     {format: gputypes.TextureFormatRGBA16Uint, size: 8},
	d3d11.FormatR16G16B16A16Sint:     {format: gputypes.TextureFormatRGBA16Sint, size: 8},

	d3d11.FormatR32G32Typeless: {format: gputypes.TextureFormatRG32Float, size: 8},
	d3d11.FormatR32G32Float:    {format: gputypes.TextureFormatRG32Float, size: 8},
	d3d11.FormatR32G32Uint:     {format: gputypes.TextureFormatRG32Uint, size: 8},
	d3d11.FormatR32G32Sint:     {format: gputypes.TextureFormatRG32Sint, size: 8},

	d3d11.FormatR10G10B10A2Typeless: {format: gputypes.TextureFormatRGB10A2Unorm, size: 4},
	d3d11.FormatR10G10B10A2Unorm:    {format: gputypes.TextureFormatRGB10A2Unorm, size: 4},
	d3d11.FormatR11G11B10Float:      {format: gputypes.TextureFormatRG11B10Ufloat, size: 4},

	d3d11.FormatR8G8B8A8Typeless:  {format: gputypes.TextureFormatRGBA8Unorm, size: 4, view: gputypes.TextureFormatRGBA8UnormSrgb},
	d3d11.FormatR8G8B8A8Unorm:     {format: gputypes.TextureFormatRGBA8Unorm, size: 4},
	d3d11.FormatR8G8B8A8UnormSRGB: {format: gputypes.TextureFormatRGBA8UnormSrgb, size: 4},
	d3d11.FormatR8G8B8A8Uint:      {format: gputypes.TextureFormatRGBA8Uint, size: 4},
	d3d11.FormatR8G8B8A8Snorm:     {format: gputypes.TextureFormatRGBA8Snorm, size: 4},
	d3d11.FormatR8G8B8A8Sint:      {format: gputypes.TextureFormatRGBA8Sint, size: 4},

	d3d11.FormatR16G16Typeless: {format: gputypes.TextureFormatRG16Float, size: 4},
	d3d11.FormatR16G16Float:    {format: gputypes.TextureFormatRG16Float, size: 4},
	d3d11.FormatR16G16Uint:     {format: gputypes.TextureFormatRG16Uint, size: 4},
	d3d11.FormatR16G16Sint:     {format: gputypes.TextureFormatRG16Sint, size: 4},

	d3d11.FormatR32Typeless: {format: gputypes.TextureFormatR32Float, size: 4},
	d3d11.FormatD32Float:    {format: gputypes.TextureFormatDepth32Float, size: 4},
	d3d11.FormatR32Float:    {format: gputypes.TextureFormatR32Float, size: 4},
	d3d11.FormatR32Uint:     {format: gputypes.TextureFormatR32Uint, size: 4},
	d3d11.FormatR32Sint:     {format: gputypes.TextureFormatR32Sint, size: 4},

	d3d11.FormatR24G8Typeless:      {format: gputypes.TextureFormatDepth24PlusStencil8, size: 4},
	d3d11.FormatD24UnormS8Uint:     {format: gputypes.TextureFormatDepth24PlusStencil8, size: 4},
	d3d11.FormatR24UnormX8Typeless: {format: gputypes.TextureFormatDepth24PlusStencil8, size: 4},

	d3d11.FormatR8G8Typeless: {format: gputypes.TextureFormatRG8Unorm, size: 2},
	d3d11.FormatR8G8Unorm:    {format: gputypes.TextureFormatRG8Unorm, size: 2},
	d3d11.FormatR8G8Uint:     {format: gputypes.TextureFormatRG8Uint, size: 2},
	d3d11.FormatR8G8Snorm:    {format: gputypes.TextureFormatRG8Snorm, size: 2},
	d3d11.FormatR8G8Sint:     {format: gputypes.TextureFormatRG8Sint, size: 2},

	d3d11.FormatR16Typeless: {format: gputypes.TextureFormatR16Float, size: 2},
	d3d11.FormatR16Float:    {format: gputypes.TextureFormatR16Float, size: 2},
	d3d11.FormatD16Unorm:    {format: gputypes.TextureFormatDepth16Unorm, size: 2},
	d3d11.FormatR16Uint:     {format: gputypes.TextureFormatR16Uint, size: 2},
	d3d11.FormatR16Sint:     {format: gputypes.TextureFormatR16Sint, size: 2},

	d3d11.FormatR8Typeless: {format: gputypes.TextureFormatR8Unorm, size: 1},
	d3d11.FormatR8Unorm:    {format: gputypes.TextureFormatR8Unorm, size: 1},
	d3d11.FormatR8Uint:     {format: gputypes.TextureFormatR8Uint, size: 1},
	d3d11.FormatR8Snorm:    {format: gputypes.TextureFormatR8Snorm, size: 1},
	d3d11.FormatR8Sint:     {format: gputypes.TextureFormatR8Sint, size: 1},

	d3d11.FormatB8G8R8A8Typeless:  {format: gputypes.TextureFormatBGRA8Unorm, size: 4, view: gputypes.TextureFormatBGRA8UnormSrgb},
	d3d11.FormatB8G8R8A8Unorm:     {format: gputypes.TextureFormatBGRA8Unorm, size: 4},
	d3d11.FormatB8G8R8A8UnormSRGB: {format: gputypes.TextureFormatBGRA8UnormSrgb, size: 4},
}

// textureFormat resolves the storage format of a texture. Typeless 32 and
// 16 bit single channel formats bound as depth become depth formats.
func textureFormat(f d3d11.DXGIFormat, bind d3d11.BindFlag) (texelFormat, bool) {
	if bind&d3d11.BindDepthStencil != 0 {
		switch f {
		case d3d11.FormatR32Typeless:
			return texelFormat{format: gputypes.TextureFormatDepth32Float, size: 4}, true
		case d3d11.FormatR16Typeless:
			return texelFormat{format: gputypes.TextureFormatDepth16Unorm, size: 2}, true
		}
	}
	tf, ok := textureFormats[f]
	return tf, ok
}

func isDepthFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth24PlusStencil8:
		return true
	}
	return false
}

// vertexFormat is the HAL equivalent of a native vertex element format.
type vertexFormat struct {
	format gputypes.VertexFormat
	size   uint32
}

var vertexFormats = map[d3d11.DXGIFormat]vertexFormat{
	d3d11.FormatR32G32B32A32Float: {gputypes.VertexFormatFloat32x4, 16},
	d3d11.FormatR32G32B32A32Uint:  {gputypes.VertexFormatUint32x4, 16},
	d3d11.FormatR32G32B32A32Sint:  {gputypes.VertexFormatSint32x4, 16},
	d3d11.FormatR32G32B32Float:    {gputypes.VertexFormatFloat32x3, 12},
	d3d11.FormatR32G32B32Uint:     {gputypes.VertexFormatUint32x3, 12},
	d3d11.FormatR32G32B32Sint:     {gputypes.VertexFormatSint32x3, 12},
	d3d11.FormatR32G32Float:       {gputypes.VertexFormatFloat32x2, 8},
	d3d11.FormatR32G32Uint:        {gputypes.VertexFormatUint32x2, 8},
	d3d11.FormatR32G32Sint:        {gputypes.VertexFormatSint32x2, 8},
	d3d11.FormatR32Float:          {gputypes.VertexFormatFloat32, 4},
	d3d11.FormatR32Uint:           {gputypes.VertexFormatUint32, 4},
	d3d11.FormatR32Sint:           {gputypes.VertexFormatSint32, 4},

	d3d11.FormatR16G16B16A16Float: {gputypes.VertexFormatFloat16x4, 8},
	d3d11.FormatR16G16B16A16Unorm: {gputypes.VertexFormatUnorm16x4, 8},
	d3d11.FormatR16G16B16A16Uint:  {gputypes.VertexFormatUint16x4, 8},
	d3d11.FormatR16G16B16A16Snorm: {gputypes.VertexFormatSnorm16x4, 8},
	d3d11.FormatR16G16B16A16Sint:  {gputypes.VertexFormatSint16x4, 8},
	d3d11.FormatR16G16Float:       {gputypes.VertexFormatFloat16x2, 4},
	d3d11.FormatR16G16Unorm:       {gputypes.VertexFormatUnorm16x2, 4},
	d3d11.FormatR16G16Uint:        {gputypes.VertexFormatUint16x2, 4},
	d3d11.FormatR16G16Snorm:       {gputypes.VertexFormatSnorm16x2, 4},
	d3d11.FormatR16G16Sint:        {gputypes.VertexFormatSint16x2, 4},

	d3d11.FormatR8G8B8A8Unorm: {gputypes.VertexFormatUnorm8x4, 4},
	d3d11.FormatR8G8B8A8Uint:  {gputypes.VertexFormatUint8x4, 4},
	d3d11.FormatR8G8B8A8Snorm: {gputypes.VertexFormatSnorm8x4, 4},
	d3d11.FormatR8G8B8A8Sint:  {gputypes.VertexFormatSint8x4, 4},
	d3d11.FormatR8G8Unorm:     {gputypes.VertexFormatUnorm8x2, 2},
	d3d11.FormatR8G8Uint:      {gputypes.VertexFormatUint8x2, 2},
	d3d11.FormatR8G8Snorm:     {gputypes.VertexFormatSnorm8x2, 2},
	d3d11.FormatR8G8Sint:      {gputypes.VertexFormatSint8x2, 2},
}

var compareFunctions = map[d3d11.ComparisonFunc]gputypes.CompareFunction{
	d3d11.ComparisonNever:        gputypes.CompareFunctionNever,
	d3d11.ComparisonLess:         gputypes.CompareFunctionLess,
	d3d11.ComparisonEqual:        gputypes.CompareFunctionEqual,
	d3d11.ComparisonLessEqual:    gputypes.CompareFunctionLessEqual,
	d3d11.ComparisonGreater:      gputypes.CompareFunctionGreater,
	d3d11.ComparisonNotEqual:     gputypes.CompareFunctionNotEqual,
	d3d11.ComparisonGreaterEqual: gputypes.CompareFunctionGreaterEqual,
	d3d11.ComparisonAlways:       gputypes.CompareFunctionAlways,
}

var addressModes = map[d3d11.TextureAddressMode]gputypes.AddressMode{
	d3d11.AddressWrap:   gputypes.AddressModeRepeat,
	d3d11.AddressMirror: gputypes.AddressModeMirrorRepeat,
	d3d11.AddressClamp:  gputypes.AddressModeClampToEdge,
	// Border colors are not available; the nearest match is used.
	d3d11.AddressBorder: gputypes.AddressModeClampToEdge,
}

var blendFactors = map[d3d11.Blend]gputypes.BlendFactor{
	d3d11.BlendZero:           gputypes.BlendFactorZero,
	d3d11.BlendOne:            gputypes.BlendFactorOne,
	d3d11.BlendSrcColor:       gputypes.BlendFactorSrc,
	d3d11.BlendInvSrcColor:    gputypes.BlendFactorOneMinusSrc,
	d3d11.BlendSrcAlpha:       gputypes.BlendFactorSrcAlpha,
	d3d11.BlendInvSrcAlpha:    gputypes.BlendFactorOneMinusSrcAlpha,
	d3d11.BlendDestAlpha:      gputypes.BlendFactorDstAlpha,
	d3d11.BlendInvDestAlpha:   gputypes.BlendFactorOneMinusDstAlpha,
	d3d11.BlendDestColor:      gputypes.BlendFactorDst,
	d3d11.BlendInvDestColor:   gputypes.BlendFactorOneMinusDst,
	d3d11.BlendSrcAlphaSat:    gputypes.BlendFactorSrcAlphaSaturated,
	d3d11.BlendBlendFactor:    gputypes.BlendFactorConstant,
	d3d11.BlendInvBlendFactor: gputypes.BlendFactorOneMinusConstant,
}

var blendOperations = map[d3d11.BlendOp]gputypes.BlendOperation{
	d3d11.BlendOpAdd:         gputypes.BlendOperationAdd,
	d3d11.BlendOpSubtract:    gputypes.BlendOperationSubtract,
	d3d11.BlendOpRevSubtract: gputypes.BlendOperationReverseSubtract,
	d3d11.BlendOpMin:         gputypes.BlendOperationMin,
	d3d11.BlendOpMax:         gputypes.BlendOperationMax,
}

var stencilOperations = map[d3d11.StencilOp]hal.StencilOperation{
	d3d11.StencilOpKeep:    hal.StencilOperationKeep,
	d3d11.StencilOpZero:    hal.StencilOperationZero,
	d3d11.StencilOpReplace: hal.StencilOperationReplace,
	d3d11.StencilOpIncrSat: hal.StencilOperationIncrementClamp,
	d3d11.StencilOpDecrSat: hal.StencilOperationDecrementClamp,
	d3d11.StencilOpInvert:  hal.StencilOperationInvert,
	d3d11.StencilOpIncr:    hal.StencilOperationIncrementWrap,
	d3d11.StencilOpDecr:    hal.StencilOperationDecrementWrap,
}
