// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "fmt"

// Level is a mipmap level index.
type Level uint8

// Layer is an array layer (or cube face) index.
type Layer uint16

// LayerPtr returns a pointer to l, for optional layer selectors.
func LayerPtr(l Layer) *Layer { return &l }

// AaMode is the anti-aliasing mode of a 2D texture. The zero value is
// single-sampled.
type AaMode struct {
	// Samples is the number of samples per pixel; 0 and 1 both mean single.
	Samples uint8
	// Fragments is the number of coverage fragments (quality level).
	Fragments uint8
}

// Multi returns an MSAA mode with n samples.
func Multi(n uint8) AaMode { return AaMode{Samples: n} }

// Coverage returns a coverage-sampling mode.
func Coverage(samples, fragments uint8) AaMode {
	return AaMode{Samples: samples, Fragments: fragments}
}

// IsMultisampled reports whether more than one sample is stored per pixel.
func (a AaMode) IsMultisampled() bool { return a.Samples > 1 }

// Kind is the dimensionality of a texture. It is a closed set: D1, D1Array,
// D2, D2Array, D3, Cube and CubeArray.
type Kind interface {
	// Dimensions returns width, height, depth-or-layers and the AA mode.
	Dimensions() (w, h, d uint32, aa AaMode)
	isKind()
}

// D1 is a one-dimensional texture.
type D1 struct{ Width uint32 }

// D1Array is an array of one-dimensional textures.
type D1Array struct {
	Width  uint32
	Layers Layer
}

// D2 is a two-dimensional texture.
type D2 struct {
	Width, Height uint32
	AA            AaMode
}

// D2Array is an array of two-dimensional textures.
type D2Array struct {
	Width, Height uint32
	Layers        Layer
	AA            AaMode
}

// D3 is a volume texture.
type D3 struct{ Width, Height, Depth uint32 }

// Cube is a cube map with square faces.
type Cube struct{ Size uint32 }

// CubeArray is an array of cube maps.
type CubeArray struct {
	Size   uint32
	Layers Layer
}

func (k D1) Dimensions() (w, h, d uint32, aa AaMode) { return k.Width, 1, 1, AaMode{} }
func (k D1Array) Dimensions() (w, h, d uint32, aa AaMode) {
	return k.Width, 1, uint32(k.Layers), AaMode{}
}
func (k D2) Dimensions() (w, h, d uint32, aa AaMode) { return k.Width, k.Height, 1, k.AA }
func (k D2Array) Dimensions() (w, h, d uint32, aa AaMode) {
	return k.Width, k.Height, uint32(k.Layers), k.AA
}
func (k D3) Dimensions() (w, h, d uint32, aa AaMode) { return k.Width, k.Height, k.Depth, AaMode{} }
func (k Cube) Dimensions() (w, h, d uint32, aa AaMode) {
	return k.Size, k.Size, CubeFaces, AaMode{}
}
func (k CubeArray) Dimensions() (w, h, d uint32, aa AaMode) {
	return k.Size, k.Size, CubeFaces * uint32(k.Layers), AaMode{}
}

func (D1) isKind()        {}
func (D1Array) isKind()   {}
func (D2) isKind()        {}
func (D2Array) isKind()   {}
func (D3) isKind()        {}
func (Cube) isKind()      {}
func (CubeArray) isKind() {}

// CubeFaces is the number of faces of a cube map.
const CubeFaces = 6

// LevelDimensions returns the size of the given mip level. Depth only
// shrinks for volume textures; for array kinds it stays the layer count.
func LevelDimensions(k Kind, level Level) (w, h, d uint32) {
	w, h, d, _ = k.Dimensions()
	shrink := func(v uint32) uint32 { return max(1, v>>level) }
	w, h = shrink(w), shrink(h)
	if _, ok := k.(D3); ok {
		d = shrink(d)
	}
	return w, h, d
}

// NumSlices returns the number of native array slices backing k. Cube faces
// count as slices.
func NumSlices(k Kind) uint32 {
	switch k := k.(type) {
	case D1Array:
		return uint32(k.Layers)
	case D2Array:
		return uint32(k.Layers)
	case Cube:
		return CubeFaces
	case CubeArray:
		return CubeFaces * uint32(k.Layers)
	default:
		return 1
	}
}

// KindString names a kind for logs and errors.
func KindString(k Kind) string {
	switch k := k.(type) {
	case D1:
		return fmt.Sprintf("D1(%d)", k.Width)
	case D1Array:
		return fmt.Sprintf("D1Array(%d, %d)", k.Width, k.Layers)
	case D2:
		return fmt.Sprintf("D2(%dx%d, aa=%d)", k.Width, k.Height, k.AA.Samples)
	case D2Array:
		return fmt.Sprintf("D2Array(%dx%d, %d, aa=%d)", k.Width, k.Height, k.Layers, k.AA.Samples)
	case D3:
		return fmt.Sprintf("D3(%dx%dx%d)", k.Width, k.Height, k.Depth)
	case Cube:
		return fmt.Sprintf("Cube(%d)", k.Size)
	case CubeArray:
		return fmt.Sprintf("CubeArray(%d, %d)", k.Size, k.Layers)
	default:
		return "Kind(nil)"
	}
}

// TextureInfo describes a texture to create.
type TextureInfo struct {
	Kind Kind
	// Levels is the number of mip levels; at least 1.
	Levels Level
	Format SurfaceType
	Bind   Bind
	Usage  Usage
}

// CubeFace selects one face of a cube map.
type CubeFace uint8

// Cube faces in native slice order.
const (
	CubePosX CubeFace = iota
	CubeNegX
	CubePosY
	CubeNegY
	CubePosZ
	CubeNegZ
)

// ImageInfo addresses a box inside one mip level of a texture, for updates.
type ImageInfo struct {
	XOffset, YOffset, ZOffset uint32
	Width, Height, Depth      uint32
	Format                    Format
	Level                     Level
}

// ResourceDesc selects the part of a texture exposed to shaders.
type ResourceDesc struct {
	Channel ChannelType
	// Layer selects a single layer (or cube) when non-nil.
	Layer *Layer
	// Min and Max bound the visible mip range, inclusive.
	Min, Max Level
}

// RenderDesc selects the subresource rendered into.
type RenderDesc struct {
	Channel ChannelType
	Level   Level
	Layer   *Layer
}

// DepthStencilFlags marks aspects of a depth-stencil view read-only.
type DepthStencilFlags uint8

// Depth-stencil view flags.
const (
	ReadOnlyDepth DepthStencilFlags = 1 << iota
	ReadOnlyStencil
)

// DepthStencilDesc selects the subresource used for depth testing.
type DepthStencilDesc struct {
	Level Level
	Layer *Layer
	Flags DepthStencilFlags
}
