// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

// Stage is a programmable pipeline stage.
type Stage uint8

// Shader stages.
const (
	StageVertex Stage = iota
	StageHull
	StageDomain
	StageGeometry
	StagePixel
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageHull:
		return "Hull"
	case StageDomain:
		return "Domain"
	case StageGeometry:
		return "Geometry"
	case StagePixel:
		return "Pixel"
	case StageCompute:
		return "Compute"
	default:
		return "Stage(?)"
	}
}

// StageMask is a set of stages that use a resource.
type StageMask uint8

// Mask returns the single-stage mask for s.
func (s Stage) Mask() StageMask { return 1 << s }

// Has reports whether s is in the mask.
func (m StageMask) Has(s Stage) bool { return m&s.Mask() != 0 }

// BaseType is the scalar type of a shader variable.
type BaseType uint8

// Base types.
const (
	BaseI32 BaseType = iota
	BaseU32
	BaseF32
	BaseF64
	BaseBool
)

// Attribute is a vertex input declared by a vertex shader.
type Attribute struct {
	Name string
	Slot uint8
	Base BaseType
	// Components is the vector width, 1 to 4.
	Components uint8
}

// ConstantBuffer is a uniform block used by a stage.
type ConstantBuffer struct {
	Name   string
	Slot   uint8
	Size   uint32
	Stages StageMask
}

// TextureVar is a sampled texture used by a stage.
type TextureVar struct {
	Name   string
	Slot   uint8
	Stages StageMask
}

// UnorderedVar is a read-write resource used by a stage.
type UnorderedVar struct {
	Name   string
	Slot   uint8
	Stages StageMask
}

// SamplerVar is a sampler used by a stage.
type SamplerVar struct {
	Name   string
	Slot   uint8
	Stages StageMask
}

// Output is a render target written by the pixel stage.
type Output struct {
	Name       string
	Slot       uint8
	Base       BaseType
	Components uint8
}

// ShaderReflection is the metadata a reflector extracts from one shader.
type ShaderReflection struct {
	Attributes      []Attribute
	ConstantBuffers []ConstantBuffer
	Textures        []TextureVar
	Unordereds      []UnorderedVar
	Samplers        []SamplerVar
	Outputs         []Output
	// WritesDepth is set when the pixel stage outputs depth.
	WritesDepth bool
}

// ProgramInfo is the reflection of every stage of a program, concatenated
// in stage order. Names used by more than one stage appear once per stage.
type ProgramInfo struct {
	VertexAttributes []Attribute
	ConstantBuffers  []ConstantBuffer
	Textures         []TextureVar
	Unordereds       []UnorderedVar
	Samplers         []SamplerVar
	Outputs          []Output
	OutputDepth      bool
	// KnowsOutputs is false when the pixel stage outputs were not reflected.
	KnowsOutputs bool
}
