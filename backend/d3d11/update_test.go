// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

func newUpdateFactory(t *testing.T) (*Factory, *mockContext) {
	t.Helper()
	ctx := newMockContext(256)
	f, _ := newTestFactory(t, WithContext(ctx))
	return f, ctx
}

func mustBuffer(t *testing.T, f *Factory, info core.BufferInfo) handle.Handle[*Buffer] {
	t.Helper()
	h, err := f.CreateBuffer(info, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	return h
}

func TestUpdateWithoutContext(t *testing.T) {
	f, _ := newTestFactory(t)
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Size: 16})
	if err := f.UpdateBuffer(buf, []byte{1}, 0); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("UpdateBuffer() error = %v, want ErrUnsupported", err)
	}
	if _, err := f.MapBuffer(buf, core.MapWrite); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("MapBuffer() error = %v, want ErrUnsupported", err)
	}
}

func TestUpdateBufferDefault(t *testing.T) {
	f, ctx := newUpdateFactory(t)
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Usage: core.GPUOnly, Size: 64})

	if err := f.UpdateBuffer(buf, []byte{1, 2, 3, 4}, 8); err != nil {
		t.Fatalf("UpdateBuffer() error = %v", err)
	}
	if len(ctx.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(ctx.updates))
	}
	box := ctx.updates[0].box
	if box == nil || box.Left != 8 || box.Right != 12 || box.Bottom != 1 || box.Back != 1 {
		t.Errorf("box = %+v, want [8, 12)", box)
	}
}

func TestUpdateBufferUniform(t *testing.T) {
	f, ctx := newUpdateFactory(t)
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleUniform, Usage: core.GPUOnly, Size: 20})

	if err := f.UpdateBuffer(buf, make([]byte, 16), 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("partial uniform update error = %v, want ErrOutOfBounds", err)
	}
	if err := f.UpdateBuffer(buf, make([]byte, 32), 0); err != nil {
		t.Fatalf("whole uniform update error = %v", err)
	}
	if ctx.updates[0].box != nil {
		t.Errorf("uniform update box = %+v, want nil", ctx.updates[0].box)
	}
}

func TestUpdateBufferDynamic(t *testing.T) {
	f, ctx := newUpdateFactory(t)
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Usage: core.Dynamic, Size: 64})

	if err := f.UpdateBuffer(buf, []byte{7, 8}, 4); err != nil {
		t.Fatalf("UpdateBuffer() error = %v", err)
	}
	if len(ctx.maps) != 1 || ctx.maps[0] != MapTypeWriteDiscard {
		t.Errorf("maps = %v, want one write-discard", ctx.maps)
	}
	if ctx.unmaps != 1 {
		t.Errorf("unmaps = %d, want 1", ctx.unmaps)
	}
	b, _ := Resolve(f, buf)
	if got := ctx.memory[b.Native()][4:6]; !bytes.Equal(got, []byte{7, 8}) {
		t.Errorf("memory[4:6] = %v, want [7 8]", got)
	}
	if len(ctx.updates) != 0 {
		t.Error("dynamic update went through UpdateSubresource")
	}
}

func TestUpdateBufferErrors(t *testing.T) {
	f, ctx := newUpdateFactory(t)
	immutable, err := f.CreateBufferConst(make([]byte, 16), 4, core.BufferRoleVertex, core.BindNone)
	if err != nil {
		t.Fatalf("CreateBufferConst() error = %v", err)
	}
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Size: 16})

	if err := f.UpdateBuffer(immutable, []byte{1}, 0); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("immutable update error = %v, want ErrUnsupported", err)
	}
	if err := f.UpdateBuffer(buf, make([]byte, 8), 12); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("overflowing update error = %v, want ErrOutOfBounds", err)
	}
	if err := f.UpdateBuffer(buf, []byte{1}, ^uint64(0)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("wrapping offset error = %v, want ErrOutOfBounds", err)
	}
	if len(ctx.updates) != 0 {
		t.Errorf("rejected updates reached the context: %d", len(ctx.updates))
	}
}

func TestTextureSubresource(t *testing.T) {
	if got := TextureSubresource(2, 3, 5); got != 17 {
		t.Errorf("TextureSubresource(2, 3, 5) = %d, want 17", got)
	}
}

func TestUpdateTexture(t *testing.T) {
	face := core.CubeNegZ
	tests := []struct {
		name  string
		info  core.TextureInfo
		img   core.ImageInfo
		face  *core.CubeFace
		sub   uint32
		row   uint32
		front uint32
		back  uint32
	}{
		{
			name: "2D level 1",
			info: core.TextureInfo{Kind: core.D2{Width: 16, Height: 16}, Levels: 3, Format: core.R8G8B8A8},
			img:  core.ImageInfo{XOffset: 2, YOffset: 2, Width: 4, Height: 4, Level: 1},
			sub:  1, row: 16, front: 0, back: 1,
		},
		{
			name: "2D array layer",
			info: core.TextureInfo{Kind: core.D2Array{Width: 8, Height: 8, Layers: 4}, Levels: 2, Format: core.R32},
			img:  core.ImageInfo{Width: 8, Height: 8, ZOffset: 3},
			sub:  6, row: 32, front: 0, back: 1,
		},
		{
			name: "cube face",
			info: core.TextureInfo{Kind: core.Cube{Size: 8}, Levels: 1, Format: core.R8G8B8A8},
			img:  core.ImageInfo{Width: 8, Height: 8},
			face: &face,
			sub:  5, row: 32, front: 0, back: 1,
		},
		{
			name: "cube array face",
			info: core.TextureInfo{Kind: core.CubeArray{Size: 4, Layers: 2}, Levels: 1, Format: core.R8G8B8A8},
			img:  core.ImageInfo{Width: 4, Height: 4, ZOffset: 1},
			face: &face,
			sub:  11, row: 16, front: 0, back: 1,
		},
		{
			name: "3D box",
			info: core.TextureInfo{Kind: core.D3{Width: 8, Height: 8, Depth: 8}, Levels: 1, Format: core.R8},
			img:  core.ImageInfo{Width: 8, Height: 8, ZOffset: 2, Depth: 3},
			sub:  0, row: 8, front: 2, back: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ctx := newUpdateFactory(t)
			info := tt.info
			info.Usage = core.GPUOnly
			tex := createTestTexture(t, f, info)

			data := make([]byte, 8*8*8*4)
			if err := f.UpdateTexture(tex, tt.img, data, tt.face); err != nil {
				t.Fatalf("UpdateTexture() error = %v", err)
			}
			u := ctx.updates[0]
			if u.subresource != tt.sub || u.rowPitch != tt.row {
				t.Errorf("subresource/row pitch = %d/%d, want %d/%d", u.subresource, u.rowPitch, tt.sub, tt.row)
			}
			if u.box.Front != tt.front || u.box.Back != tt.back {
				t.Errorf("box depth = [%d, %d), want [%d, %d)", u.box.Front, u.box.Back, tt.front, tt.back)
			}
		})
	}
}

func TestUpdateTextureErrors(t *testing.T) {
	f, _ := newUpdateFactory(t)
	plain := createTestTexture(t, f, core.TextureInfo{Kind: core.D2{Width: 8, Height: 8}, Levels: 2, Format: core.R8G8B8A8})
	cube := createTestTexture(t, f, core.TextureInfo{Kind: core.Cube{Size: 8}, Levels: 1, Format: core.R8G8B8A8})
	array := createTestTexture(t, f, core.TextureInfo{Kind: core.D2Array{Width: 8, Height: 8, Layers: 2}, Levels: 1, Format: core.R8})
	vol := createTestTexture(t, f, core.TextureInfo{Kind: core.D3{Width: 4, Height: 4, Depth: 4}, Levels: 1, Format: core.R8})
	immutable, err := f.CreateTextureWithData(core.TextureInfo{
		Kind: core.D2{Width: 1, Height: 1}, Levels: 1, Format: core.R8, Usage: core.Const,
	}, core.Unorm, [][]byte{{0}}, false)
	if err != nil {
		t.Fatalf("CreateTextureWithData() error = %v", err)
	}
	big := make([]byte, 1024)

	tests := []struct {
		name string
		tex  handle.Handle[*Texture]
		img  core.ImageInfo
		data []byte
		want error
	}{
		{"bad level", plain, core.ImageInfo{Width: 1, Height: 1, Level: 2}, big, ErrOutOfBounds},
		{"box past level", plain, core.ImageInfo{XOffset: 2, Width: 4, Height: 4, Level: 1}, big, ErrOutOfBounds},
		{"cube without face", cube, core.ImageInfo{Width: 8, Height: 8}, big, ErrOutOfBounds},
		{"layer past array", array, core.ImageInfo{Width: 8, Height: 8, ZOffset: 2}, big, ErrOutOfBounds},
		{"depth past volume", vol, core.ImageInfo{Width: 4, Height: 4, ZOffset: 2, Depth: 3}, big, ErrOutOfBounds},
		{"short data", plain, core.ImageInfo{Width: 8, Height: 8}, make([]byte, 255), ErrOutOfBounds},
		{"immutable", immutable, core.ImageInfo{Width: 1, Height: 1}, big, core.ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.UpdateTexture(tt.tex, tt.img, tt.data, nil); !errors.Is(err, tt.want) {
				t.Errorf("UpdateTexture() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapBuffer(t *testing.T) {
	tests := []struct {
		name   string
		usage  core.Usage
		access core.MapAccess
		want   MapType
	}{
		{"dynamic write", core.Dynamic, core.MapWrite, MapTypeWriteDiscard},
		{"staging read", core.CPUOnly(core.MapRead), core.MapRead, MapTypeRead},
		{"staging write", core.CPUOnly(core.MapReadWrite), core.MapWrite, MapTypeWrite},
		{"staging read write", core.CPUOnly(core.MapReadWrite), core.MapReadWrite, MapTypeReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ctx := newUpdateFactory(t)
			buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Usage: tt.usage, Size: 64})

			m, err := f.MapBuffer(buf, tt.access)
			if err != nil {
				t.Fatalf("MapBuffer() error = %v", err)
			}
			if ctx.maps[0] != tt.want {
				t.Errorf("map type = %d, want %d", ctx.maps[0], tt.want)
			}
			if len(m.Data) != 64 {
				t.Errorf("len(Data) = %d, want buffer size 64", len(m.Data))
			}
			m.Unmap()
			m.Unmap()
			if ctx.unmaps != 1 {
				t.Errorf("unmaps = %d, want 1", ctx.unmaps)
			}
			if m.Data != nil {
				t.Error("Data still set after Unmap")
			}
		})
	}
}

func TestMapBufferDenied(t *testing.T) {
	tests := []struct {
		name   string
		usage  core.Usage
		access core.MapAccess
	}{
		{"gpu only", core.GPUOnly, core.MapWrite},
		{"dynamic read", core.Dynamic, core.MapRead},
		{"staging read asked write", core.CPUOnly(core.MapRead), core.MapWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ctx := newUpdateFactory(t)
			buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Usage: tt.usage, Size: 64})
			if _, err := f.MapBuffer(buf, tt.access); !errors.Is(err, core.ErrUnsupported) {
				t.Errorf("MapBuffer() error = %v, want ErrUnsupported", err)
			}
			if len(ctx.maps) != 0 {
				t.Error("denied map reached the context")
			}
		})
	}
}

func TestMapBufferNativeFailure(t *testing.T) {
	f, ctx := newUpdateFactory(t)
	ctx.mapErr = DXGIErrorDeviceRemove
	buf := mustBuffer(t, f, core.BufferInfo{Role: core.BufferRoleVertex, Usage: core.Dynamic, Size: 16})
	if _, err := f.MapBuffer(buf, core.MapWrite); !errors.Is(err, DXGIErrorDeviceRemove) {
		t.Errorf("MapBuffer() error = %v, want device removed", err)
	}
}
