// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"bytes"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/core"
)

func newTestFactory(t *testing.T) (*d3d11.Factory, *Device) {
	t.Helper()
	d := newTestDevice(t)
	f, err := d3d11.New(d,
		d3d11.WithReflector(d.Reflector()),
		d3d11.WithContext(d.Context()),
		d3d11.WithStateCache(16),
	)
	if err != nil {
		t.Fatalf("d3d11.New() error = %v", err)
	}
	t.Cleanup(f.Release)
	return f, d
}

func TestFactoryPipeline(t *testing.T) {
	f, _ := newTestFactory(t)

	vs, err := f.CreateShader(core.StageVertex, []byte(testVS))
	if err != nil {
		t.Fatalf("CreateShader(vertex) error = %v", err)
	}
	ps, err := f.CreateShader(core.StagePixel, []byte(testPS))
	if err != nil {
		t.Fatalf("CreateShader(pixel) error = %v", err)
	}
	prog, err := f.CreateProgram(d3d11.SimpleSet{Vertex: vs, Pixel: ps})
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	p, _ := d3d11.Resolve(f, prog)
	if got := len(p.Info.VertexAttributes); got != 2 {
		t.Fatalf("program has %d vertex attributes, want 2", got)
	}
	if len(p.Info.Textures) != 1 || len(p.Info.Samplers) != 1 || len(p.Info.ConstantBuffers) != 1 {
		t.Errorf("program bindings = %+v", p.Info)
	}

	float3 := core.Format{Surface: core.R32G32B32, Channel: core.Float}
	h, err := f.CreatePipelineState(prog, &core.PipelineDesc{
		Primitive:  core.TriangleList,
		Rasterizer: core.Rasterizer{Cull: core.CullBack},
		Attributes: []*core.AttributeDesc{
			{Buffer: 0, Offset: 0, Format: float3},
			{Buffer: 0, Offset: 12, Format: float3},
		},
		ColorTargets: []core.ColorTargetDesc{{Format: core.FormatRGBA8, Mask: core.MaskAll}},
	})
	if err != nil {
		t.Fatalf("CreatePipelineState() error = %v", err)
	}
	state, _ := d3d11.Resolve(f, h)

	layout := state.InputLayout.(*InputLayout)
	if len(layout.Buffers) != 1 || layout.Buffers[0].ArrayStride != 24 {
		t.Errorf("vertex buffers = %+v, want one buffer with stride 24", layout.Buffers)
	}
	if r := state.Rasterizer.(*RasterizerState); r.Primitive.CullMode != gputypes.CullModeBack {
		t.Errorf("CullMode = %v, want back", r.Primitive.CullMode)
	}
	if b := state.Blend.(*BlendState); b.Targets[0].WriteMask != gputypes.ColorWriteMaskAll {
		t.Errorf("WriteMask = %v, want all", b.Targets[0].WriteMask)
	}
	if ds := state.DepthStencil.(*DepthStencilState); ds.State.DepthWriteEnabled {
		t.Error("depth writes enabled without depth state")
	}

	if err := d3d11.Release(f, h); err != nil {
		t.Errorf("Release(pipeline) error = %v", err)
	}
	if err := d3d11.Release(f, prog); err != nil {
		t.Errorf("Release(program) error = %v", err)
	}
}

func TestFactoryCubeViews(t *testing.T) {
	f, _ := newTestFactory(t)

	tex, err := f.CreateTexture(core.TextureInfo{
		Kind:   core.Cube{Size: 16},
		Levels: 1,
		Format: core.R8G8B8A8,
		Bind:   core.BindShaderResource | core.BindRenderTarget,
		Usage:  core.GPUOnly,
	}, nil)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}

	all, err := f.ViewTextureAsShaderResource(tex, core.ResourceDesc{Channel: core.Srgb})
	if err != nil {
		t.Fatalf("ViewTextureAsShaderResource() error = %v", err)
	}
	v, _ := d3d11.Resolve(f, all)
	desc := v.Native().(*View).Desc()
	if desc.Dimension != gputypes.TextureViewDimension2DArray || desc.ArrayLayerCount != 6 ||
		desc.Format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("cube view = %+v, want 6 sRGB layers as 2D array", desc)
	}

	face := core.Layer(core.CubeNegY)
	rt, err := f.ViewTextureAsRenderTarget(tex, core.RenderDesc{Channel: core.Unorm, Layer: &face})
	if err != nil {
		t.Fatalf("ViewTextureAsRenderTarget() error = %v", err)
	}
	r, _ := d3d11.Resolve(f, rt)
	desc = r.Native().(*View).Desc()
	if desc.BaseArrayLayer != 3 || desc.ArrayLayerCount != 1 || desc.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("face view = %+v, want layer 3 in RGBA8Unorm", desc)
	}
}

func TestFactoryBufferUpdates(t *testing.T) {
	f, _ := newTestFactory(t)

	uniform, err := f.CreateBuffer(core.BufferInfo{
		Role:  core.BufferRoleUniform,
		Usage: core.Dynamic,
		Size:  20,
	}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer(uniform) error = %v", err)
	}
	data := bytes.Repeat([]byte{7}, 32)
	if err := f.UpdateBuffer(uniform, data, 0); err != nil {
		t.Fatalf("UpdateBuffer(dynamic) error = %v", err)
	}
	buf, _ := d3d11.Resolve(f, uniform)
	if got := buf.Native().(*Buffer).shadow; !bytes.Equal(got, data) {
		t.Errorf("uniform contents = %v, want %v", got, data)
	}

	readback, err := f.CreateBuffer(core.BufferInfo{
		Usage: core.CPUOnly(core.MapReadWrite),
		Size:  8,
	}, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("CreateBuffer(staging) error = %v", err)
	}
	m, err := f.MapBuffer(readback, core.MapReadWrite)
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	if !bytes.Equal(m.Data, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("mapped = %v, want initial data", m.Data)
	}
	m.Data[7] = 0
	m.Unmap()

	m, err = f.MapBuffer(readback, core.MapRead)
	if err != nil {
		t.Fatalf("second MapBuffer() error = %v", err)
	}
	if m.Data[7] != 0 {
		t.Errorf("data[7] = %d after write back, want 0", m.Data[7])
	}
	m.Unmap()
}
