// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

// FilterMethod is the texture filtering method of a sampler.
type FilterMethod uint8

// Filter methods. FilterScale samples the nearest texel of one level;
// FilterMipmap is nearest within a level and linear between levels.
const (
	FilterScale FilterMethod = iota
	FilterMipmap
	FilterBilinear
	FilterTrilinear
	FilterAnisotropic
)

// WrapMode is the addressing behaviour outside [0, 1].
type WrapMode uint8

// Wrap modes.
const (
	WrapTile WrapMode = iota
	WrapMirror
	WrapClamp
	WrapBorder
)

// Comparison is a depth, stencil or sampler comparison function.
type Comparison uint8

// Comparison functions.
const (
	Never Comparison = iota
	Less
	LessEqual
	Equal
	GreaterEqual
	Greater
	NotEqual
	Always
)

// ComparisonPtr returns a pointer to c, for optional comparison fields.
func ComparisonPtr(c Comparison) *Comparison { return &c }

// SamplerInfo describes a sampler state.
type SamplerInfo struct {
	Filter FilterMethod
	// MaxAnisotropy is used only with FilterAnisotropic.
	MaxAnisotropy uint8
	// Wrap holds the U, V and W addressing modes.
	Wrap    [3]WrapMode
	LodBias float32
	// LodRange is the clamped (min, max) level of detail.
	LodRange [2]float32
	// Comparison turns the sampler into a comparison sampler when set.
	Comparison *Comparison
	Border     [4]float32
}

// NewSamplerInfo returns a sampler with the same wrap mode on every axis and
// an unclamped LOD range.
func NewSamplerInfo(filter FilterMethod, wrap WrapMode) SamplerInfo {
	return SamplerInfo{
		Filter:   filter,
		Wrap:     [3]WrapMode{wrap, wrap, wrap},
		LodRange: [2]float32{-1000, 1000},
	}
}
