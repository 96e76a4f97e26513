// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gfx/core"
)

const testVS = `
// Camera uniform shared with the pixel stage.
struct Camera {
    view_proj: mat4x4<f32>,
    tint: vec3<f32>,
    scale: f32,
}

@group(0) @binding(0) var<uniform> camera: Camera;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) shade: f32,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.view_proj * vec4<f32>(in.position * camera.scale, 1.0);
    out.shade = max(dot(in.normal, vec3<f32>(0.0, 0.0, 1.0)), 0.0);
    return out;
}
`

const testPS = `
@group(0) @binding(1) var albedo: texture_2d<f32>;
@group(0) @binding(2) var albedo_sampler: sampler;

@fragment
fn fs_main(@location(0) shade: f32, @builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let c = textureSample(albedo, albedo_sampler, pos.xy / 256.0);
    return vec4<f32>(c.rgb * shade, c.a);
}
`

func TestReflectVertex(t *testing.T) {
	refl, err := Reflector{}.Reflect(core.StageVertex, []byte(testVS))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}

	wantAttrs := []core.Attribute{
		{Name: "position", Slot: 0, Base: core.BaseF32, Components: 3},
		{Name: "normal", Slot: 1, Base: core.BaseF32, Components: 3},
	}
	if !reflect.DeepEqual(refl.Attributes, wantAttrs) {
		t.Errorf("Attributes = %+v, want %+v", refl.Attributes, wantAttrs)
	}

	wantCB := []core.ConstantBuffer{
		{Name: "camera", Slot: 0, Size: 80, Stages: core.StageVertex.Mask()},
	}
	if !reflect.DeepEqual(refl.ConstantBuffers, wantCB) {
		t.Errorf("ConstantBuffers = %+v, want %+v", refl.ConstantBuffers, wantCB)
	}
}

func TestReflectPixel(t *testing.T) {
	refl, err := Reflector{}.Reflect(core.StagePixel, []byte(testPS))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}

	wantOut := []core.Output{{Name: "out", Slot: 0, Base: core.BaseF32, Components: 4}}
	if !reflect.DeepEqual(refl.Outputs, wantOut) {
		t.Errorf("Outputs = %+v, want %+v", refl.Outputs, wantOut)
	}
	if refl.WritesDepth {
		t.Error("WritesDepth = true, want false")
	}
	mask := core.StagePixel.Mask()
	if want := []core.TextureVar{{Name: "albedo", Slot: 1, Stages: mask}}; !reflect.DeepEqual(refl.Textures, want) {
		t.Errorf("Textures = %+v, want %+v", refl.Textures, want)
	}
	if want := []core.SamplerVar{{Name: "albedo_sampler", Slot: 2, Stages: mask}}; !reflect.DeepEqual(refl.Samplers, want) {
		t.Errorf("Samplers = %+v, want %+v", refl.Samplers, want)
	}
}

func TestReflectStructOutputs(t *testing.T) {
	src := `
struct FragOut {
    @location(1) normal: vec4u,
    @location(0) color: vec4f,
    @builtin(frag_depth) depth: f32,
}

@group(1) @binding(3) var<storage, read_write> counters: array<u32>;
@group(1) @binding(4) var<storage, read> lights: array<vec4<f32>>;
@group(1) @binding(5) var output_image: texture_storage_2d<rgba8unorm, write>;

@fragment fn main(@builtin(position) pos: vec4<f32>) -> FragOut {
    var o: FragOut;
    let i = u32(pos.x);
    counters[i] = counters[i] + 1u;
    o.color = lights[i];
    textureStore(output_image, vec2<i32>(pos.xy), o.color);
    o.normal = vec4u(1u);
    o.depth = 0.5;
    return o;
}
`
	refl, err := Reflector{}.Reflect(core.StagePixel, []byte(src))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	wantOut := []core.Output{
		{Name: "color", Slot: 0, Base: core.BaseF32, Components: 4},
		{Name: "normal", Slot: 1, Base: core.BaseU32, Components: 4},
	}
	if !reflect.DeepEqual(refl.Outputs, wantOut) {
		t.Errorf("Outputs = %+v, want %+v", refl.Outputs, wantOut)
	}
	if !refl.WritesDepth {
		t.Error("WritesDepth = false, want true")
	}
	if len(refl.Unordereds) != 2 || refl.Unordereds[0].Name != "counters" || refl.Unordereds[1].Name != "output_image" {
		t.Errorf("Unordereds = %+v, want counters and output_image", refl.Unordereds)
	}
	if len(refl.Textures) != 1 || refl.Textures[0].Name != "lights" {
		t.Errorf("Textures = %+v, want lights", refl.Textures)
	}
}

func TestReflectTypeAlias(t *testing.T) {
	src := `
alias Pos = vec3<f32>;

@vertex
fn vs_main(@location(0) pos: Pos) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 1.0);
}
`
	refl, err := Reflector{}.Reflect(core.StageVertex, []byte(src))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	want := []core.Attribute{{Name: "pos", Slot: 0, Base: core.BaseF32, Components: 3}}
	if !reflect.DeepEqual(refl.Attributes, want) {
		t.Errorf("Attributes = %+v, want %+v", refl.Attributes, want)
	}
}

func TestReflectPerEntryPoint(t *testing.T) {
	src := `
struct Globals {
    tint: vec4<f32>,
}

@group(0) @binding(0) var<uniform> globals: Globals;
@group(0) @binding(1) var color_tex: texture_2d<f32>;
@group(0) @binding(2) var color_sampler: sampler;
@group(0) @binding(3) var<uniform> transform: mat4x4<f32>;

fn shade(uv: vec2<f32>) -> vec4<f32> {
    return textureSample(color_tex, color_sampler, uv) * globals.tint;
}

@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return transform * vec4<f32>(pos, 0.0, 1.0);
}

@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    return shade(pos.xy / 64.0);
}
`
	vs, err := Reflector{}.Reflect(core.StageVertex, []byte(src))
	if err != nil {
		t.Fatalf("Reflect(vertex) error = %v", err)
	}
	vmask := core.StageVertex.Mask()
	if want := []core.ConstantBuffer{{Name: "transform", Slot: 3, Size: 64, Stages: vmask}}; !reflect.DeepEqual(vs.ConstantBuffers, want) {
		t.Errorf("vertex ConstantBuffers = %+v, want %+v", vs.ConstantBuffers, want)
	}
	if len(vs.Textures) != 0 || len(vs.Samplers) != 0 {
		t.Errorf("vertex stage lists fragment resources: %+v %+v", vs.Textures, vs.Samplers)
	}

	ps, err := Reflector{}.Reflect(core.StagePixel, []byte(src))
	if err != nil {
		t.Fatalf("Reflect(pixel) error = %v", err)
	}
	pmask := core.StagePixel.Mask()
	if want := []core.ConstantBuffer{{Name: "globals", Slot: 0, Size: 16, Stages: pmask}}; !reflect.DeepEqual(ps.ConstantBuffers, want) {
		t.Errorf("pixel ConstantBuffers = %+v, want %+v", ps.ConstantBuffers, want)
	}
	if want := []core.TextureVar{{Name: "color_tex", Slot: 1, Stages: pmask}}; !reflect.DeepEqual(ps.Textures, want) {
		t.Errorf("pixel Textures = %+v, want %+v", ps.Textures, want)
	}
	if want := []core.SamplerVar{{Name: "color_sampler", Slot: 2, Stages: pmask}}; !reflect.DeepEqual(ps.Samplers, want) {
		t.Errorf("pixel Samplers = %+v, want %+v", ps.Samplers, want)
	}
}

func TestReflectDirectVertexInputs(t *testing.T) {
	src := `
@vertex
fn main(@builtin(vertex_index) id: u32, @location(2) uv: vec2<f32>, @location(0) pos: vec4f, @location(1) bone: vec4<i32>) -> @builtin(position) vec4<f32> {
    return pos;
}
`
	refl, err := Reflector{}.Reflect(core.StageVertex, []byte(src))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	want := []core.Attribute{
		{Name: "pos", Slot: 0, Base: core.BaseF32, Components: 4},
		{Name: "bone", Slot: 1, Base: core.BaseI32, Components: 4},
		{Name: "uv", Slot: 2, Base: core.BaseF32, Components: 2},
	}
	if !reflect.DeepEqual(refl.Attributes, want) {
		t.Errorf("Attributes = %+v, want %+v", refl.Attributes, want)
	}
}

func TestReflectErrors(t *testing.T) {
	tests := []struct {
		name  string
		stage core.Stage
		src   string
	}{
		{"no vertex entry", core.StageVertex, testPS},
		{"no fragment entry", core.StagePixel, testVS},
		{"geometry", core.StageGeometry, testVS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reflector{}.Reflect(tt.stage, []byte(tt.src))
			if !errors.Is(err, ErrNoEntryPoint) {
				t.Errorf("Reflect() error = %v, want ErrNoEntryPoint", err)
			}
		})
	}

	_, err := Reflector{}.Reflect(core.StageVertex, []byte(`
@vertex fn main(@location(0) m: mat2x2<f32>) -> @builtin(position) vec4<f32> { return vec4<f32>(); }
`))
	if err == nil {
		t.Error("Reflect() accepted a matrix vertex input")
	}
	if _, err := (Reflector{}).Reflect(core.StageVertex, []byte("@vertex fn main( -> {")); err == nil {
		t.Error("Reflect() accepted malformed source")
	}
}

func TestReflectUniformSizes(t *testing.T) {
	src := `
struct Light {
    dir: vec3<f32>,
    color: vec4<f32>,
}
struct Scene {
    lights: array<Light, 4>,
    count: u32,
    ambient: vec2<f32>,
}

@group(0) @binding(0) var<uniform> scene: Scene;
@group(0) @binding(1) var<uniform> light: Light;
@group(0) @binding(2) var<uniform> model: mat3x3<f32>;
@group(0) @binding(3) var<uniform> gain: f32;

@vertex
fn main(@location(0) pos: vec4<f32>) -> @builtin(position) vec4<f32> {
    let n = f32(scene.count) + light.color.x + model[0].x + gain;
    return pos * n;
}
`
	refl, err := Reflector{}.Reflect(core.StageVertex, []byte(src))
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	want := map[string]uint32{"scene": 144, "light": 32, "model": 48, "gain": 4}
	if len(refl.ConstantBuffers) != len(want) {
		t.Fatalf("ConstantBuffers = %+v, want %d entries", refl.ConstantBuffers, len(want))
	}
	for i, cb := range refl.ConstantBuffers {
		if cb.Slot != uint8(i) {
			t.Errorf("ConstantBuffers[%d].Slot = %d, want %d", i, cb.Slot, i)
		}
		if cb.Size != want[cb.Name] {
			t.Errorf("size of %s = %d, want %d", cb.Name, cb.Size, want[cb.Name])
		}
	}
}
