// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// inputElements zips the program's vertex attributes with the pipeline's
// attribute bindings. Attributes without a binding are skipped.
func inputElements(attrs []core.Attribute, bindings []*core.AttributeDesc) ([]InputElementDesc, error) {
	elements := make([]InputElementDesc, 0, len(attrs))
	for i, attr := range attrs {
		if i >= len(bindings) || bindings[i] == nil {
			continue
		}
		b := bindings[i]
		if b.Offset&1 != 0 {
			return nil, &core.PipelineError{Reason: core.MisalignedAttribute, Attribute: attr.Name}
		}
		format, ok := MapFormat(b.Format, false)
		if !ok {
			return nil, &core.PipelineError{Reason: core.UnmappedFormat, Attribute: attr.Name}
		}
		class := InputPerVertexData
		if b.InstanceRate != 0 {
			class = InputPerInstanceData
		}
		elements = append(elements, InputElementDesc{
			SemanticName:         attr.Name,
			SemanticIndex:        0,
			Format:               format,
			InputSlot:            uint32(b.Buffer),
			AlignedByteOffset:    b.Offset,
			InputSlotClass:       class,
			InstanceDataStepRate: uint32(b.InstanceRate),
		})
	}
	return elements, nil
}

// CreatePipelineState builds the input layout and render states of a
// pipeline for program. The program's vertex bytecode must still be in the
// shader cache.
func (f *Factory) CreatePipelineState(program handle.Handle[*Program], desc *core.PipelineDesc) (handle.Handle[*PipelineState], error) {
	var none handle.Handle[*PipelineState]

	prog, err := Resolve(f, program)
	if err != nil {
		return none, &core.PipelineError{Reason: core.StaleProgram, Err: err}
	}

	elements, err := inputElements(prog.Info.VertexAttributes, desc.Attributes)
	if err != nil {
		return none, err
	}

	code, ok := f.share.shaders.Lookup(prog.VertexHash)
	if !ok {
		gfx.Logger().Error("d3d11: program outlived its vertex bytecode", "hash", prog.VertexHash)
		return none, &core.PipelineError{Reason: core.ShaderCacheMiss}
	}

	layout, err := f.device.CreateInputLayout(elements, code)
	if err != nil {
		logNativeFailure("d3d11: input layout creation failed", err, "elements", len(elements))
		return none, &core.PipelineError{Reason: core.InputLayout, Err: err}
	}

	topology, ok := MapTopology(desc.Primitive)
	if !ok {
		layout.Release()
		return none, &core.PipelineError{Reason: core.UnknownTopology}
	}

	created := []Object{layout}
	fail := func(err error) (handle.Handle[*PipelineState], error) {
		for _, o := range created {
			o.Release()
		}
		logNativeFailure("d3d11: render state creation failed", err)
		return none, &core.PipelineError{Reason: core.RenderState, Err: err}
	}

	rs, err := f.states.Rasterizer(f.device, desc.Rasterizer, desc.Scissor)
	if err != nil {
		return fail(err)
	}
	created = append(created, rs)

	dsInfo := core.DepthStencilInfo{}
	if desc.DepthStencil != nil {
		dsInfo = *desc.DepthStencil
	}
	ds, err := f.states.DepthStencil(f.device, dsInfo)
	if err != nil {
		return fail(err)
	}
	created = append(created, ds)

	bs, err := f.states.Blend(f.device, desc.ColorTargets)
	if err != nil {
		return fail(err)
	}

	if err := handle.Retain(f.share.handles, program); err != nil {
		created = append(created, bs)
		for _, o := range created {
			o.Release()
		}
		return none, &core.PipelineError{Reason: core.StaleProgram, Err: err}
	}

	attrs := make([]*core.AttributeDesc, len(desc.Attributes))
	for i, a := range desc.Attributes {
		if a != nil {
			c := *a
			attrs[i] = &c
		}
	}

	gfx.Logger().Debug("d3d11: create pipeline state",
		"topology", desc.Primitive, "elements", len(elements), "targets", len(desc.ColorTargets))

	return handle.Register(f.share.handles, &PipelineState{
		Topology:     topology,
		InputLayout:  layout,
		Attributes:   attrs,
		Program:      program,
		Rasterizer:   rs,
		DepthStencil: ds,
		Blend:        bs,
		handles:      f.share.handles,
	}), nil
}
