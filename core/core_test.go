// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import (
	"errors"
	"testing"
)

func TestSurfaceTypeBits(t *testing.T) {
	tests := []struct {
		surface SurfaceType
		bits    uint8
		bytes   uint32
	}{
		{R4G4, 8, 1},
		{R5G6B5, 16, 2},
		{R8G8B8A8, 32, 4},
		{R16G16B16, 48, 6},
		{R32G32B32A32, 128, 16},
		{D24S8, 32, 4},
		{D16, 16, 2},
	}
	for _, tt := range tests {
		t.Run(tt.surface.String(), func(t *testing.T) {
			if got := tt.surface.TotalBits(); got != tt.bits {
				t.Errorf("TotalBits() = %d, want %d", got, tt.bits)
			}
			if got := tt.surface.BytesPerTexel(); got != tt.bytes {
				t.Errorf("BytesPerTexel() = %d, want %d", got, tt.bytes)
			}
		})
	}
}

func TestSurfaceTypeOutOfRange(t *testing.T) {
	s := SurfaceType(200)
	if s.TotalBits() != 0 {
		t.Errorf("TotalBits() = %d, want 0", s.TotalBits())
	}
	if s.String() != "SurfaceType(200)" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestUsageAllowsMap(t *testing.T) {
	tests := []struct {
		name   string
		usage  Usage
		access MapAccess
		want   bool
	}{
		{"gpu only", GPUOnly, MapRead, false},
		{"const", Const, MapWrite, false},
		{"dynamic write", Dynamic, MapWrite, true},
		{"dynamic read", Dynamic, MapRead, false},
		{"staging read", CPUOnly(MapRead), MapRead, true},
		{"staging read wants write", CPUOnly(MapRead), MapWrite, false},
		{"staging rw", CPUOnly(MapReadWrite), MapReadWrite, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usage.AllowsMap(tt.access); got != tt.want {
				t.Errorf("AllowsMap(%v) = %v, want %v", tt.access, got, tt.want)
			}
		})
	}
}

func TestBindString(t *testing.T) {
	if got := BindNone.String(); got != "None" {
		t.Errorf("BindNone.String() = %q", got)
	}
	if got := (BindRenderTarget | BindShaderResource).String(); got != "RenderTarget|ShaderResource" {
		t.Errorf("String() = %q", got)
	}
	if !(BindVertex | BindIndex).Contains(BindIndex) {
		t.Error("Contains(BindIndex) = false")
	}
}

func TestKindDimensions(t *testing.T) {
	tests := []struct {
		kind    Kind
		w, h, d uint32
		slices  uint32
	}{
		{D1{Width: 64}, 64, 1, 1, 1},
		{D1Array{Width: 64, Layers: 3}, 64, 1, 3, 3},
		{D2{Width: 32, Height: 16}, 32, 16, 1, 1},
		{D2Array{Width: 32, Height: 16, Layers: 4}, 32, 16, 4, 4},
		{D3{Width: 8, Height: 8, Depth: 8}, 8, 8, 8, 1},
		{Cube{Size: 16}, 16, 16, 6, 6},
		{CubeArray{Size: 16, Layers: 2}, 16, 16, 12, 12},
	}
	for _, tt := range tests {
		t.Run(KindString(tt.kind), func(t *testing.T) {
			w, h, d, _ := tt.kind.Dimensions()
			if w != tt.w || h != tt.h || d != tt.d {
				t.Errorf("Dimensions() = (%d, %d, %d), want (%d, %d, %d)", w, h, d, tt.w, tt.h, tt.d)
			}
			if got := NumSlices(tt.kind); got != tt.slices {
				t.Errorf("NumSlices() = %d, want %d", got, tt.slices)
			}
		})
	}
}

func TestLevelDimensions(t *testing.T) {
	w, h, d := LevelDimensions(D2{Width: 256, Height: 64}, 3)
	if w != 32 || h != 8 || d != 1 {
		t.Errorf("D2 level 3 = (%d, %d, %d), want (32, 8, 1)", w, h, d)
	}
	w, h, d = LevelDimensions(D2{Width: 4, Height: 2}, 5)
	if w != 1 || h != 1 || d != 1 {
		t.Errorf("D2 level 5 = (%d, %d, %d), want (1, 1, 1)", w, h, d)
	}
	w, h, d = LevelDimensions(D3{Width: 16, Height: 16, Depth: 8}, 1)
	if w != 8 || h != 8 || d != 4 {
		t.Errorf("D3 level 1 = (%d, %d, %d), want (8, 8, 4)", w, h, d)
	}
	_, _, d = LevelDimensions(D2Array{Width: 16, Height: 16, Layers: 5}, 2)
	if d != 5 {
		t.Errorf("D2Array level 2 depth = %d, want 5", d)
	}
}

func TestAaMode(t *testing.T) {
	if (AaMode{}).IsMultisampled() {
		t.Error("zero AaMode is multisampled")
	}
	if Multi(1).IsMultisampled() {
		t.Error("Multi(1) is multisampled")
	}
	if !Multi(4).IsMultisampled() {
		t.Error("Multi(4) is not multisampled")
	}
	if c := Coverage(4, 8); c.Samples != 4 || c.Fragments != 8 {
		t.Errorf("Coverage(4, 8) = %+v", c)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("device lost")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"unsupported bind", &UnsupportedBindError{Bind: BindRenderTarget}, ErrUnsupportedBind},
		{"texture format", &TextureFormatError{Surface: R4G4}, ErrTextureFormat},
		{"stage", &StageNotSupportedError{Stage: StageHull}, ErrStageNotSupported},
		{"compilation", &CompilationError{Stage: StageVertex, Diagnostic: "bad", Err: cause}, ErrCompilationFailed},
		{"compilation cause", &CompilationError{Stage: StageVertex, Err: cause}, cause},
		{"pipeline", &PipelineError{Reason: InputLayout, Err: cause}, ErrPipelineCreation},
		{"pipeline cause", &PipelineError{Reason: InputLayout, Err: cause}, cause},
		{"cache miss", &PipelineError{Reason: ShaderCacheMiss}, ErrShaderCacheMiss},
		{"bad level", &ViewError{Reason: ViewBadLevel, Level: 3}, ErrBadLevel},
		{"bad layer", &ViewError{Reason: ViewBadLayer, Layer: 7}, ErrBadLayer},
		{"channel", &ViewError{Reason: ViewChannel, Channel: Srgb}, ErrViewChannel},
		{"unsupported", &ViewError{Reason: ViewUnsupported, Err: cause}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}

	if errors.Is(&PipelineError{Reason: MisalignedAttribute}, ErrShaderCacheMiss) {
		t.Error("misaligned attribute matches ErrShaderCacheMiss")
	}
}

func TestViewErrorMessage(t *testing.T) {
	err := &ViewError{Reason: ViewBadLayer, Layer: 9}
	if got := err.Error(); got != "gfx: bad array layer 9" {
		t.Errorf("Error() = %q", got)
	}
	var ve *ViewError
	if !errors.As(error(err), &ve) || ve.Layer != 9 {
		t.Error("errors.As failed")
	}
}
