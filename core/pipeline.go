// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

// Primitive is the primitive topology of a draw.
type Primitive uint8

// Primitive topologies.
const (
	PointList Primitive = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case PointList:
		return "PointList"
	case LineList:
		return "LineList"
	case LineStrip:
		return "LineStrip"
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	default:
		return "Primitive(?)"
	}
}

// AttributeDesc binds one vertex attribute to a vertex buffer slot.
type AttributeDesc struct {
	// Buffer is the vertex buffer slot.
	Buffer uint8
	// Offset is the byte offset inside one element; must be even.
	Offset uint32
	Format Format
	// InstanceRate is 0 for per-vertex data, otherwise the number of
	// instances drawn per element.
	InstanceRate uint8
}

// FrontFace is the winding order of front-facing triangles.
type FrontFace uint8

// Winding orders.
const (
	CounterClockwise FrontFace = iota
	Clockwise
)

// FillMode is how polygons are rasterized.
type FillMode uint8

// Fill modes.
const (
	FillSolid FillMode = iota
	FillWireframe
)

// CullFace selects which triangles are discarded.
type CullFace uint8

// Cull modes.
const (
	CullNothing CullFace = iota
	CullFront
	CullBack
)

// Rasterizer configures primitive rasterization.
type Rasterizer struct {
	FrontFace            FrontFace
	Fill                 FillMode
	Cull                 CullFace
	DepthBias            int32
	SlopeScaledDepthBias float32
	MultiSample          bool
}

// StencilOp is an operation applied to the stencil buffer.
type StencilOp uint8

// Stencil operations.
const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

// DepthTest configures the depth test.
type DepthTest struct {
	Fun   Comparison
	Write bool
}

// StencilSide configures the stencil test for one triangle facing.
type StencilSide struct {
	Fun         Comparison
	ReadMask    uint8
	WriteMask   uint8
	OpFail      StencilOp
	OpDepthFail StencilOp
	OpPass      StencilOp
}

// DepthStencilInfo configures depth and stencil testing. Nil members disable
// the corresponding test.
type DepthStencilInfo struct {
	Depth *DepthTest
	Front *StencilSide
	Back  *StencilSide
}

// BlendFactor is a blend equation operand.
type BlendFactor uint8

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturated
	BlendConstant
	BlendOneMinusConstant
)

// BlendEquation combines the source and destination terms.
type BlendEquation uint8

// Blend equations.
const (
	BlendAdd BlendEquation = iota
	BlendSub
	BlendRevSub
	BlendMin
	BlendMax
)

// BlendChannel is the blend function of the color or alpha channel.
type BlendChannel struct {
	Equation    BlendEquation
	Source      BlendFactor
	Destination BlendFactor
}

// BlendInfo enables blending for one color target.
type BlendInfo struct {
	Color BlendChannel
	Alpha BlendChannel
}

// ColorMask selects the written color components.
type ColorMask uint8

// Color mask bits.
const (
	MaskRed ColorMask = 1 << iota
	MaskGreen
	MaskBlue
	MaskAlpha
	MaskAll = MaskRed | MaskGreen | MaskBlue | MaskAlpha
)

// ColorTargetDesc describes one color output of a pipeline.
type ColorTargetDesc struct {
	Format Format
	Mask   ColorMask
	// Blend is nil when blending is disabled.
	Blend *BlendInfo
}

// PipelineDesc describes a graphics pipeline state.
type PipelineDesc struct {
	Primitive  Primitive
	Rasterizer Rasterizer
	Scissor    bool
	// Attributes is indexed like the program's vertex attributes. A nil
	// entry leaves the attribute unbound.
	Attributes   []*AttributeDesc
	ColorTargets []ColorTargetDesc
	// DepthStencil disables depth and stencil tests when nil.
	DepthStencil *DepthStencilInfo
}

// Capabilities are the limits and features reported by a device.
type Capabilities struct {
	MaxVertexCount  uint32
	MaxIndexCount   uint32
	MaxTextureSize  uint32
	MaxPatchSize    uint32
	InstanceBase    bool
	InstanceCall    bool
	InstanceRate    bool
	VertexBase      bool
	SRGBColor       bool
	ConstantBuffer  bool
	UnorderedAccess bool
	SeparateBlend   bool
	CopyBuffer      bool
}
