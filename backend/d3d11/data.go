// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "github.com/gogpu/gfx/core"

// channelFormats lists the typed variants of a surface indexed by channel.
// FormatUnknown marks an unsupported pair.
type channelFormats [core.Srgb + 1]DXGIFormat

var typedFormats = map[core.SurfaceType]channelFormats{
	core.R5G5B5A1: {core.Unorm: FormatB5G5R5A1Unorm},
	core.R5G6B5:   {core.Unorm: FormatB5G6R5Unorm},
	core.R8: {
		core.Int: FormatR8Sint, core.Uint: FormatR8Uint,
		core.Inorm: FormatR8Snorm, core.Unorm: FormatR8Unorm,
	},
	core.R8G8: {
		core.Int: FormatR8G8Sint, core.Uint: FormatR8G8Uint,
		core.Inorm: FormatR8G8Snorm, core.Unorm: FormatR8G8Unorm,
	},
	core.R8G8B8A8: {
		core.Int: FormatR8G8B8A8Sint, core.Uint: FormatR8G8B8A8Uint,
		core.Inorm: FormatR8G8B8A8Snorm, core.Unorm: FormatR8G8B8A8Unorm,
		core.Srgb: FormatR8G8B8A8UnormSRGB,
	},
	core.B8G8R8A8: {
		core.Unorm: FormatB8G8R8A8Unorm, core.Srgb: FormatB8G8R8A8UnormSRGB,
	},
	core.R10G10B10A2: {core.Uint: FormatR10G10B10A2Uint, core.Unorm: FormatR10G10B10A2Unorm},
	core.R11G11B10:   {core.Float: FormatR11G11B10Float},
	core.R16: {
		core.Int: FormatR16Sint, core.Uint: FormatR16Uint,
		core.Inorm: FormatR16Snorm, core.Unorm: FormatR16Unorm,
		core.Float: FormatR16Float,
	},
	core.R16G16: {
		core.Int: FormatR16G16Sint, core.Uint: FormatR16G16Uint,
		core.Inorm: FormatR16G16Snorm, core.Unorm: FormatR16G16Unorm,
		core.Float: FormatR16G16Float,
	},
	core.R16G16B16A16: {
		core.Int: FormatR16G16B16A16Sint, core.Uint: FormatR16G16B16A16Uint,
		core.Inorm: FormatR16G16B16A16Snorm, core.Unorm: FormatR16G16B16A16Unorm,
		core.Float: FormatR16G16B16A16Float,
	},
	core.R32:          {core.Int: FormatR32Sint, core.Uint: FormatR32Uint, core.Float: FormatR32Float},
	core.R32G32:       {core.Int: FormatR32G32Sint, core.Uint: FormatR32G32Uint, core.Float: FormatR32G32Float},
	core.R32G32B32:    {core.Int: FormatR32G32B32Sint, core.Uint: FormatR32G32B32Uint, core.Float: FormatR32G32B32Float},
	core.R32G32B32A32: {core.Int: FormatR32G32B32A32Sint, core.Uint: FormatR32G32B32A32Uint, core.Float: FormatR32G32B32A32Float},
}

// MapFormat returns the typed native format for f. Depth surfaces ignore
// the channel: with isTarget they map to the depth format used by
// depth-stencil views, otherwise to the color format shaders read.
func MapFormat(f core.Format, isTarget bool) (DXGIFormat, bool) {
	switch f.Surface {
	case core.D16:
		if isTarget {
			return FormatD16Unorm, true
		}
		return FormatR16Unorm, true
	case core.D24, core.D24S8:
		if isTarget {
			return FormatD24UnormS8Uint, true
		}
		return FormatR24UnormX8Typeless, true
	case core.D32:
		if isTarget {
			return FormatD32Float, true
		}
		return FormatR32Float, true
	}

	table, ok := typedFormats[f.Surface]
	if !ok || int(f.Channel) >= len(table) {
		return FormatUnknown, false
	}
	native := table[f.Channel]
	return native, native != FormatUnknown
}

var surfaceFormats = map[core.SurfaceType]DXGIFormat{
	core.R5G5B5A1:     FormatB5G5R5A1Unorm,
	core.R5G6B5:       FormatB5G6R5Unorm,
	core.R8:           FormatR8Typeless,
	core.R8G8:         FormatR8G8Typeless,
	core.R8G8B8A8:     FormatR8G8B8A8Typeless,
	core.B8G8R8A8:     FormatB8G8R8A8Typeless,
	core.R10G10B10A2:  FormatR10G10B10A2Typeless,
	core.R11G11B10:    FormatR11G11B10Float,
	core.R16:          FormatR16Typeless,
	core.R16G16:       FormatR16G16Typeless,
	core.R16G16B16A16: FormatR16G16B16A16Typeless,
	core.R32:          FormatR32Typeless,
	core.R32G32:       FormatR32G32Typeless,
	core.R32G32B32:    FormatR32G32B32Typeless,
	core.R32G32B32A32: FormatR32G32B32A32Typeless,
	core.D16:          FormatR16Typeless,
	core.D24:          FormatR24G8Typeless,
	core.D24S8:        FormatR24G8Typeless,
	core.D32:          FormatR32Typeless,
}

// MapSurface returns the typeless native format family of s, so that views
// of any compatible channel type can be created later.
func MapSurface(s core.SurfaceType) (DXGIFormat, bool) {
	f, ok := surfaceFormats[s]
	return f, ok
}

// MapBind translates abstract bind flags. Transfer flags have no native
// equivalent and are dropped.
func MapBind(b core.Bind) BindFlag {
	var out BindFlag
	if b&core.BindRenderTarget != 0 {
		out |= BindRenderTarget
	}
	if b&core.BindDepthStencil != 0 {
		out |= BindDepthStencil
	}
	if b&core.BindShaderResource != 0 {
		out |= BindShaderResource
	}
	if b&core.BindUnorderedAccess != 0 {
		out |= BindUnorderedAccess
	}
	if b&core.BindVertex != 0 {
		out |= BindVertexBuffer
	}
	if b&core.BindIndex != 0 {
		out |= BindIndexBuffer
	}
	return out
}

// MapUsage returns the native usage class and CPU access flags.
func MapUsage(u core.Usage) (UsageCode, CPUAccessFlag) {
	switch u.Kind {
	case core.UsageConst:
		return UsageImmutable, 0
	case core.UsageDynamic:
		return UsageDynamic, CPUAccessWrite
	case core.UsageCPUOnly:
		var access CPUAccessFlag
		if u.Access&core.MapRead != 0 {
			access |= CPUAccessRead
		}
		if u.Access&core.MapWrite != 0 {
			access |= CPUAccessWrite
		}
		return UsageStaging, access
	default:
		return UsageDefault, 0
	}
}

// MapAntiAlias returns the sample description of an AA mode.
func MapAntiAlias(aa core.AaMode) SampleDesc {
	return SampleDesc{
		Count:   uint32(max(1, aa.Samples)),
		Quality: uint32(aa.Fragments),
	}
}

// FilterOp selects plain or comparison filtering.
type FilterOp uint8

// Filter operations.
const (
	FilterOpProduct FilterOp = iota
	FilterOpComparison
)

// MapFilter returns the native filter of a method.
func MapFilter(method core.FilterMethod, op FilterOp) Filter {
	var f Filter
	switch method {
	case core.FilterScale:
		f = FilterMinMagMipPoint
	case core.FilterMipmap:
		f = FilterMinMagPointMipLinear
	case core.FilterBilinear:
		f = FilterMinMagLinearMipPoint
	case core.FilterTrilinear:
		f = FilterMinMagMipLinear
	case core.FilterAnisotropic:
		f = FilterAnisotropic
	}
	if op == FilterOpComparison {
		f |= FilterComparison
	}
	return f
}

// MapWrap returns the native address mode.
func MapWrap(w core.WrapMode) TextureAddressMode {
	switch w {
	case core.WrapMirror:
		return AddressMirror
	case core.WrapClamp:
		return AddressClamp
	case core.WrapBorder:
		return AddressBorder
	default:
		return AddressWrap
	}
}

// MapFunction returns the native comparison function.
func MapFunction(c core.Comparison) ComparisonFunc {
	switch c {
	case core.Never:
		return ComparisonNever
	case core.Less:
		return ComparisonLess
	case core.LessEqual:
		return ComparisonLessEqual
	case core.Equal:
		return ComparisonEqual
	case core.GreaterEqual:
		return ComparisonGreaterEqual
	case core.Greater:
		return ComparisonGreater
	case core.NotEqual:
		return ComparisonNotEqual
	default:
		return ComparisonAlways
	}
}

// MapDSVFlags returns the native read-only flags of a depth-stencil view.
func MapDSVFlags(f core.DepthStencilFlags) DSVFlag {
	var out DSVFlag
	if f&core.ReadOnlyDepth != 0 {
		out |= DSVReadOnlyDepth
	}
	if f&core.ReadOnlyStencil != 0 {
		out |= DSVReadOnlyStencil
	}
	return out
}

// MapTopology returns the native topology. Every core.Primitive has a
// mapping; ok is false only for values outside the enumeration.
func MapTopology(p core.Primitive) (PrimitiveTopology, bool) {
	switch p {
	case core.PointList:
		return TopologyPointList, true
	case core.LineList:
		return TopologyLineList, true
	case core.LineStrip:
		return TopologyLineStrip, true
	case core.TriangleList:
		return TopologyTriangleList, true
	case core.TriangleStrip:
		return TopologyTriangleStrip, true
	}
	return 0, false
}

// MapRasterizer returns the native rasterizer description.
func MapRasterizer(r core.Rasterizer, scissor bool) RasterizerDesc {
	desc := RasterizerDesc{
		FillMode:              FillSolid,
		CullMode:              CullNone,
		FrontCounterClockwise: r.FrontFace == core.CounterClockwise,
		DepthBias:             r.DepthBias,
		SlopeScaledDepthBias:  r.SlopeScaledDepthBias,
		DepthClipEnable:       true,
		ScissorEnable:         scissor,
		MultisampleEnable:     r.MultiSample,
	}
	if r.Fill == core.FillWireframe {
		desc.FillMode = FillWireframe
	}
	switch r.Cull {
	case core.CullFront:
		desc.CullMode = CullFront
	case core.CullBack:
		desc.CullMode = CullBack
	}
	return desc
}

func mapStencilOp(op core.StencilOp) StencilOp {
	switch op {
	case core.StencilZero:
		return StencilOpZero
	case core.StencilReplace:
		return StencilOpReplace
	case core.StencilIncrementClamp:
		return StencilOpIncrSat
	case core.StencilDecrementClamp:
		return StencilOpDecrSat
	case core.StencilInvert:
		return StencilOpInvert
	case core.StencilIncrementWrap:
		return StencilOpIncr
	case core.StencilDecrementWrap:
		return StencilOpDecr
	default:
		return StencilOpKeep
	}
}

func mapStencilSide(side *core.StencilSide) DepthStencilOpDesc {
	if side == nil {
		return DepthStencilOpDesc{
			StencilFailOp:      StencilOpKeep,
			StencilDepthFailOp: StencilOpKeep,
			StencilPassOp:      StencilOpKeep,
			StencilFunc:        ComparisonAlways,
		}
	}
	return DepthStencilOpDesc{
		StencilFailOp:      mapStencilOp(side.OpFail),
		StencilDepthFailOp: mapStencilOp(side.OpDepthFail),
		StencilPassOp:      mapStencilOp(side.OpPass),
		StencilFunc:        MapFunction(side.Fun),
	}
}

// MapDepthStencil returns the native depth-stencil description. The read
// and write masks are taken from the front side, or from the back side when
// only it is set.
func MapDepthStencil(ds core.DepthStencilInfo) DepthStencilDesc {
	desc := DepthStencilDesc{
		DepthFunc: ComparisonAlways,
		FrontFace: mapStencilSide(ds.Front),
		BackFace:  mapStencilSide(ds.Back),
	}
	if ds.Depth != nil {
		desc.DepthEnable = true
		desc.DepthFunc = MapFunction(ds.Depth.Fun)
		if ds.Depth.Write {
			desc.DepthWriteMask = DepthWriteMaskAll
		}
	}
	side := ds.Front
	if side == nil {
		side = ds.Back
	}
	if side != nil {
		desc.StencilEnable = true
		desc.StencilReadMask = side.ReadMask
		desc.StencilWriteMask = side.WriteMask
	}
	return desc
}

func mapBlendFactor(f core.BlendFactor) Blend {
	switch f {
	case core.BlendZero:
		return BlendZero
	case core.BlendSrcColor:
		return BlendSrcColor
	case core.BlendOneMinusSrcColor:
		return BlendInvSrcColor
	case core.BlendSrcAlpha:
		return BlendSrcAlpha
	case core.BlendOneMinusSrcAlpha:
		return BlendInvSrcAlpha
	case core.BlendDstColor:
		return BlendDestColor
	case core.BlendOneMinusDstColor:
		return BlendInvDestColor
	case core.BlendDstAlpha:
		return BlendDestAlpha
	case core.BlendOneMinusDstAlpha:
		return BlendInvDestAlpha
	case core.BlendSrcAlphaSaturated:
		return BlendSrcAlphaSat
	case core.BlendConstant:
		return BlendBlendFactor
	case core.BlendOneMinusConstant:
		return BlendInvBlendFactor
	default:
		return BlendOne
	}
}

func mapBlendOp(e core.BlendEquation) BlendOp {
	switch e {
	case core.BlendSub:
		return BlendOpSubtract
	case core.BlendRevSub:
		return BlendOpRevSubtract
	case core.BlendMin:
		return BlendOpMin
	case core.BlendMax:
		return BlendOpMax
	default:
		return BlendOpAdd
	}
}

// MapBlend returns the native blend description of up to MaxRenderTargets
// color targets. Extra targets are ignored.
func MapBlend(targets []core.ColorTargetDesc) BlendDesc {
	var desc BlendDesc
	for i := range desc.RenderTarget {
		desc.RenderTarget[i] = RenderTargetBlendDesc{
			SrcBlend:              BlendOne,
			DestBlend:             BlendZero,
			BlendOp:               BlendOpAdd,
			SrcBlendAlpha:         BlendOne,
			DestBlendAlpha:        BlendZero,
			BlendOpAlpha:          BlendOpAdd,
			RenderTargetWriteMask: uint8(core.MaskAll),
		}
	}
	for i, t := range targets {
		if i >= MaxRenderTargets {
			break
		}
		rt := &desc.RenderTarget[i]
		rt.RenderTargetWriteMask = uint8(t.Mask)
		if t.Blend == nil {
			continue
		}
		rt.BlendEnable = true
		rt.SrcBlend = mapBlendFactor(t.Blend.Color.Source)
		rt.DestBlend = mapBlendFactor(t.Blend.Color.Destination)
		rt.BlendOp = mapBlendOp(t.Blend.Color.Equation)
		rt.SrcBlendAlpha = mapBlendFactor(t.Blend.Alpha.Source)
		rt.DestBlendAlpha = mapBlendFactor(t.Blend.Alpha.Destination)
		rt.BlendOpAlpha = mapBlendOp(t.Blend.Alpha.Equation)
	}
	desc.IndependentBlendEnable = len(targets) > 1
	return desc
}
