// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "fmt"

// SurfaceType is the bit layout of a texel, independent of how the bits are
// interpreted.
type SurfaceType uint8

// Surface types.
const (
	R4G4 SurfaceType = iota
	R4G4B4A4
	R5G5B5A1
	R5G6B5
	R8
	R8G8
	R8G8B8A8
	R10G10B10A2
	R11G11B10
	R16
	R16G16
	R16G16B16
	R16G16B16A16
	R32
	R32G32
	R32G32B32
	R32G32B32A32
	B8G8R8A8
	D16
	D24
	D24S8
	D32
)

var surfaceInfo = [...]struct {
	name string
	bits uint8
}{
	R4G4:         {"R4G4", 8},
	R4G4B4A4:     {"R4G4B4A4", 16},
	R5G5B5A1:     {"R5G5B5A1", 16},
	R5G6B5:       {"R5G6B5", 16},
	R8:           {"R8", 8},
	R8G8:         {"R8G8", 16},
	R8G8B8A8:     {"R8G8B8A8", 32},
	R10G10B10A2:  {"R10G10B10A2", 32},
	R11G11B10:    {"R11G11B10", 32},
	R16:          {"R16", 16},
	R16G16:       {"R16G16", 32},
	R16G16B16:    {"R16G16B16", 48},
	R16G16B16A16: {"R16G16B16A16", 64},
	R32:          {"R32", 32},
	R32G32:       {"R32G32", 64},
	R32G32B32:    {"R32G32B32", 96},
	R32G32B32A32: {"R32G32B32A32", 128},
	B8G8R8A8:     {"B8G8R8A8", 32},
	D16:          {"D16", 16},
	D24:          {"D24", 32}, // stored with 8 padding bits
	D24S8:        {"D24S8", 32},
	D32:          {"D32", 32},
}

// TotalBits returns the storage size of one texel in bits.
func (s SurfaceType) TotalBits() uint8 {
	if int(s) >= len(surfaceInfo) {
		return 0
	}
	return surfaceInfo[s].bits
}

// BytesPerTexel returns TotalBits() >> 3.
func (s SurfaceType) BytesPerTexel() uint32 {
	return uint32(s.TotalBits() >> 3)
}

// IsDepth reports whether the surface holds depth (and possibly stencil) data.
func (s SurfaceType) IsDepth() bool {
	return s == D16 || s == D24 || s == D24S8 || s == D32
}

func (s SurfaceType) String() string {
	if int(s) >= len(surfaceInfo) {
		return fmt.Sprintf("SurfaceType(%d)", s)
	}
	return surfaceInfo[s].name
}

// ChannelType is the interpretation of a surface's bits.
type ChannelType uint8

// Channel types.
const (
	Int   ChannelType = iota // signed integer
	Uint                     // unsigned integer
	Inorm                    // signed normalized
	Unorm                    // unsigned normalized
	Float
	Srgb
)

func (c ChannelType) String() string {
	switch c {
	case Int:
		return "Int"
	case Uint:
		return "Uint"
	case Inorm:
		return "Inorm"
	case Unorm:
		return "Unorm"
	case Float:
		return "Float"
	case Srgb:
		return "Srgb"
	default:
		return fmt.Sprintf("ChannelType(%d)", c)
	}
}

// Format is a fully specified texel format.
type Format struct {
	Surface SurfaceType
	Channel ChannelType
}

func (f Format) String() string {
	return f.Surface.String() + "_" + f.Channel.String()
}

// Common formats.
var (
	FormatRGBA8    = Format{R8G8B8A8, Unorm}
	FormatSRGBA8   = Format{R8G8B8A8, Srgb}
	FormatBGRA8    = Format{B8G8R8A8, Unorm}
	FormatDepth    = Format{D24S8, Unorm}
	FormatDepth32F = Format{D32, Float}
)
