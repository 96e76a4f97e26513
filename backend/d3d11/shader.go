// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"errors"
	"fmt"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// Reflector extracts bound resources and vertex attributes from shader
// bytecode.
type Reflector interface {
	Reflect(stage core.Stage, code []byte) (core.ShaderReflection, error)
}

// NopReflector reports no resources for any shader.
type NopReflector struct{}

// Reflect returns an empty reflection.
func (NopReflector) Reflect(core.Stage, []byte) (core.ShaderReflection, error) {
	return core.ShaderReflection{}, nil
}

// CreateShader compiles one stage. Only vertex, geometry and pixel stages
// are supported. Vertex bytecode is retained in the shader cache for input
// layout creation.
func (f *Factory) CreateShader(stage core.Stage, code []byte) (handle.Handle[*Shader], error) {
	var none handle.Handle[*Shader]

	var (
		native Object
		err    error
	)
	switch stage {
	case core.StageVertex:
		native, err = f.device.CreateVertexShader(code)
	case core.StageGeometry:
		native, err = f.device.CreateGeometryShader(code)
	case core.StagePixel:
		native, err = f.device.CreatePixelShader(code)
	default:
		return none, &core.StageNotSupportedError{Stage: stage}
	}
	if err != nil {
		if errors.Is(err, ENotImpl) {
			return none, &core.StageNotSupportedError{Stage: stage}
		}
		logNativeFailure("d3d11: shader creation failed", err, "stage", stage)
		return none, &core.CompilationError{Stage: stage, Diagnostic: err.Error(), Err: err}
	}

	hash := f.share.shaders.Hash(code)
	refl, err := f.reflector.Reflect(stage, code)
	if err != nil {
		native.Release()
		return none, &core.CompilationError{Stage: stage, Diagnostic: "reflection: " + err.Error(), Err: err}
	}
	var ref CacheRef
	if stage == core.StageVertex {
		ref = f.share.shaders.Insert(hash, code)
	}

	gfx.Logger().Debug("d3d11: create shader", "stage", stage, "hash", hash, "bytes", len(code))

	return handle.Register(f.share.handles, &Shader{
		native:     native,
		Stage:      stage,
		Reflection: refl,
		Hash:       hash,
		cache:      f.share.shaders,
		ref:        ref,
	}), nil
}

// ShaderSet is the set of stages linked into a program: SimpleSet or
// GeometrySet.
type ShaderSet interface {
	isShaderSet()
}

// SimpleSet is a vertex and a pixel shader.
type SimpleSet struct {
	Vertex handle.Handle[*Shader]
	Pixel  handle.Handle[*Shader]
}

// GeometrySet is a vertex, a geometry and a pixel shader.
type GeometrySet struct {
	Vertex   handle.Handle[*Shader]
	Geometry handle.Handle[*Shader]
	Pixel    handle.Handle[*Shader]
}

func (SimpleSet) isShaderSet()   {}
func (GeometrySet) isShaderSet() {}

// populateInfo appends the reflection of one stage to info. Resources are
// not merged across stages.
func populateInfo(info *core.ProgramInfo, stage core.Stage, r core.ShaderReflection) {
	mask := stage.Mask()
	if stage == core.StageVertex {
		info.VertexAttributes = append(info.VertexAttributes, r.Attributes...)
	}
	for _, cb := range r.ConstantBuffers {
		cb.Stages = mask
		info.ConstantBuffers = append(info.ConstantBuffers, cb)
	}
	for _, t := range r.Textures {
		t.Stages = mask
		info.Textures = append(info.Textures, t)
	}
	for _, u := range r.Unordereds {
		u.Stages = mask
		info.Unordereds = append(info.Unordereds, u)
	}
	for _, s := range r.Samplers {
		s.Stages = mask
		info.Samplers = append(info.Samplers, s)
	}
	if stage == core.StagePixel {
		info.Outputs = append(info.Outputs, r.Outputs...)
		info.OutputDepth = r.WritesDepth
		info.KnowsOutputs = true
	}
}

func (f *Factory) programStage(h handle.Handle[*Shader], want core.Stage) (*Shader, error) {
	s, err := Resolve(f, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v shader: %w", core.ErrProgramCreation, want, err)
	}
	if s.Stage != want {
		return nil, fmt.Errorf("%w: %v shader given as %v stage", core.ErrProgramCreation, s.Stage, want)
	}
	return s, nil
}

// CreateProgram links a shader set. Each native shader gains a reference,
// so shaders may be released while programs using them are alive.
func (f *Factory) CreateProgram(set ShaderSet) (handle.Handle[*Program], error) {
	var none handle.Handle[*Program]

	var (
		vh, gh, ph  handle.Handle[*Shader]
		hasGeometry bool
	)
	switch s := set.(type) {
	case SimpleSet:
		vh, ph = s.Vertex, s.Pixel
	case GeometrySet:
		vh, gh, ph = s.Vertex, s.Geometry, s.Pixel
		hasGeometry = true
	default:
		return none, fmt.Errorf("%w: unknown shader set %T", core.ErrProgramCreation, set)
	}

	vs, err := f.programStage(vh, core.StageVertex)
	if err != nil {
		return none, err
	}
	var gs *Shader
	if hasGeometry {
		if gs, err = f.programStage(gh, core.StageGeometry); err != nil {
			return none, err
		}
	}
	ps, err := f.programStage(ph, core.StagePixel)
	if err != nil {
		return none, err
	}

	var info core.ProgramInfo
	populateInfo(&info, core.StageVertex, vs.Reflection)
	if gs != nil {
		populateInfo(&info, core.StageGeometry, gs.Reflection)
	}
	populateInfo(&info, core.StagePixel, ps.Reflection)

	prog := &Program{
		vs:         vs.native,
		ps:         ps.native,
		Info:       info,
		VertexHash: vs.Hash,
		cache:      f.share.shaders,
	}
	vs.native.AddRef()
	if gs != nil {
		prog.gs = gs.native
		gs.native.AddRef()
	}
	ps.native.AddRef()
	var cached bool
	prog.ref, cached = f.share.shaders.Retain(vs.Hash)
	if !cached {
		gfx.Logger().Warn("d3d11: program vertex bytecode not cached", "hash", vs.Hash)
	}

	return handle.Register(f.share.handles, prog), nil
}
