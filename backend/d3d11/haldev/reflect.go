// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/gfx/core"
)

// ErrNoEntryPoint is returned when WGSL source lacks the entry point of the
// requested stage.
var ErrNoEntryPoint = errors.New("haldev: no entry point for stage")

// Reflector reads stage interfaces and resource bindings from WGSL source.
// It implements d3d11.Reflector for shaders compiled by Device.
type Reflector struct{}

// Reflect lowers source with naga and reports what the entry point of
// stage uses. Only resources reachable from that entry point are listed.
// Resources take the binding number as their slot; groups are not
// distinguished.
func (Reflector) Reflect(stage core.Stage, code []byte) (core.ShaderReflection, error) {
	var refl core.ShaderReflection
	m, err := parseModule(code)
	if err != nil {
		return refl, err
	}
	ep, err := findEntry(m, stage)
	if err != nil {
		return refl, err
	}
	fn := &ep.Function

	switch stage {
	case core.StageVertex:
		for _, v := range locations(m, fn.Arguments) {
			base, n, ok := scalarShape(m.Types[v.typ].Inner)
			if !ok {
				return refl, fmt.Errorf("haldev: vertex input %q has unsupported type %s", v.name, typeName(m, v.typ))
			}
			refl.Attributes = append(refl.Attributes, core.Attribute{
				Name: v.name, Slot: uint8(v.location), Base: base, Components: n,
			})
		}
	case core.StagePixel:
		if fn.Result != nil {
			result := []ir.FunctionArgument{{Name: "out", Type: fn.Result.Type, Binding: fn.Result.Binding}}
			for _, v := range locations(m, result) {
				base, n, _ := scalarShape(m.Types[v.typ].Inner)
				refl.Outputs = append(refl.Outputs, core.Output{
					Name: v.name, Slot: uint8(v.location), Base: base, Components: n,
				})
			}
			refl.WritesDepth = writesDepth(m, fn.Result)
		}
	}

	mask := stage.Mask()
	for _, g := range usedBindings(m, fn) {
		slot := uint8(g.Binding.Binding)
		switch resourceClass(m, g) {
		case classConstant:
			refl.ConstantBuffers = append(refl.ConstantBuffers, core.ConstantBuffer{
				Name: g.Name, Slot: slot, Size: ir.TypeSize(m, g.Type), Stages: mask,
			})
		case classTexture:
			refl.Textures = append(refl.Textures, core.TextureVar{Name: g.Name, Slot: slot, Stages: mask})
		case classUnordered:
			refl.Unordereds = append(refl.Unordereds, core.UnorderedVar{Name: g.Name, Slot: slot, Stages: mask})
		case classSampler:
			refl.Samplers = append(refl.Samplers, core.SamplerVar{Name: g.Name, Slot: slot, Stages: mask})
		}
	}
	return refl, nil
}

// parseModule parses and lowers WGSL source.
func parseModule(code []byte) (*ir.Module, error) {
	source := string(code)
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("haldev: %w", err)
	}
	m, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("haldev: lower shader: %w", err)
	}
	return m, nil
}

// findEntry returns the first entry point of stage.
func findEntry(m *ir.Module, stage core.Stage) (*ir.EntryPoint, error) {
	var want ir.ShaderStage
	switch stage {
	case core.StageVertex:
		want = ir.StageVertex
	case core.StagePixel:
		want = ir.StageFragment
	default:
		return nil, fmt.Errorf("%w %s", ErrNoEntryPoint, stage)
	}
	for i := range m.EntryPoints {
		if m.EntryPoints[i].Stage == want {
			return &m.EntryPoints[i], nil
		}
	}
	return nil, fmt.Errorf("%w %s", ErrNoEntryPoint, stage)
}

// located is a value with a @location binding.
type located struct {
	name     string
	typ      ir.TypeHandle
	location uint32
}

// locations flattens args and the members of struct typed args into
// located values sorted by location.
func locations(m *ir.Module, args []ir.FunctionArgument) []located {
	var out []located
	for _, arg := range args {
		if loc, ok := locationOf(arg.Binding); ok {
			out = append(out, located{name: arg.Name, typ: arg.Type, location: loc})
			continue
		}
		st, ok := m.Types[arg.Type].Inner.(ir.StructType)
		if !ok {
			continue
		}
		for _, member := range st.Members {
			if loc, ok := locationOf(member.Binding); ok {
				out = append(out, located{name: member.Name, typ: member.Type, location: loc})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].location < out[j].location })
	return out
}

func locationOf(b *ir.Binding) (uint32, bool) {
	if b == nil {
		return 0, false
	}
	loc, ok := (*b).(ir.LocationBinding)
	return loc.Location, ok
}

func isFragDepth(b *ir.Binding) bool {
	if b == nil {
		return false
	}
	bb, ok := (*b).(ir.BuiltinBinding)
	return ok && bb.Builtin == ir.BuiltinFragDepth
}

func writesDepth(m *ir.Module, result *ir.FunctionResult) bool {
	if isFragDepth(result.Binding) {
		return true
	}
	if st, ok := m.Types[result.Type].Inner.(ir.StructType); ok {
		for _, member := range st.Members {
			if isFragDepth(member.Binding) {
				return true
			}
		}
	}
	return false
}

// usedBindings returns the bound global variables referenced by fn and the
// functions it calls, ordered by group and binding.
func usedBindings(m *ir.Module, fn *ir.Function) []ir.GlobalVariable {
	seen := make(map[ir.GlobalVariableHandle]bool)
	visited := make(map[ir.FunctionHandle]bool)

	var visit func(fn *ir.Function)
	visit = func(fn *ir.Function) {
		for _, e := range fn.Expressions {
			switch k := e.Kind.(type) {
			case ir.ExprGlobalVariable:
				seen[k.Variable] = true
			case ir.ExprCallResult:
				callee(m, k.Function, visited, visit)
			}
		}
		walkCalls(fn.Body, func(h ir.FunctionHandle) { callee(m, h, visited, visit) })
	}
	visit(fn)

	var out []ir.GlobalVariable
	for h := range seen {
		if g := m.GlobalVariables[h]; g.Binding != nil {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Binding, out[j].Binding
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Binding < b.Binding
	})
	return out
}

func callee(m *ir.Module, h ir.FunctionHandle, visited map[ir.FunctionHandle]bool, visit func(*ir.Function)) {
	if visited[h] || int(h) >= len(m.Functions) {
		return
	}
	visited[h] = true
	visit(&m.Functions[h])
}

// walkCalls reports every function called from block, including nested
// blocks.
func walkCalls(block ir.Block, call func(ir.FunctionHandle)) {
	for _, s := range block {
		switch k := s.Kind.(type) {
		case ir.StmtCall:
			call(k.Function)
		case ir.StmtBlock:
			walkCalls(k.Block, call)
		case ir.StmtIf:
			walkCalls(k.Accept, call)
			walkCalls(k.Reject, call)
		case ir.StmtSwitch:
			for _, c := range k.Cases {
				walkCalls(c.Body, call)
			}
		case ir.StmtLoop:
			walkCalls(k.Body, call)
			walkCalls(k.Continuing, call)
		}
	}
}

type bindingClass int

const (
	classNone bindingClass = iota
	classConstant
	classTexture
	classUnordered
	classSampler
)

// resourceClass maps a bound global to the view kind it needs.
func resourceClass(m *ir.Module, g ir.GlobalVariable) bindingClass {
	switch g.Space {
	case ir.SpaceUniform:
		return classConstant
	case ir.SpaceStorage:
		if g.Access == ir.StorageRead {
			return classTexture
		}
		return classUnordered
	case ir.SpaceHandle:
	default:
		return classNone
	}

	inner := m.Types[g.Type].Inner
	if arr, ok := inner.(ir.BindingArrayType); ok {
		inner = m.Types[arr.Base].Inner
	}
	switch t := inner.(type) {
	case ir.SamplerType:
		return classSampler
	case ir.ImageType:
		if t.Class == ir.ImageClassStorage && t.StorageAccess != ir.StorageAccessRead {
			return classUnordered
		}
		return classTexture
	}
	return classNone
}

// scalarShape returns the base type and width of a scalar or vector type.
func scalarShape(inner ir.TypeInner) (core.BaseType, uint8, bool) {
	var (
		scalar ir.ScalarType
		width  uint8 = 1
	)
	switch t := inner.(type) {
	case ir.ScalarType:
		scalar = t
	case ir.VectorType:
		scalar, width = t.Scalar, uint8(t.Size)
	default:
		return 0, 0, false
	}
	switch scalar.Kind {
	case ir.ScalarFloat:
		return core.BaseF32, width, true
	case ir.ScalarSint:
		return core.BaseI32, width, true
	case ir.ScalarUint:
		return core.BaseU32, width, true
	case ir.ScalarBool:
		return core.BaseBool, width, true
	}
	return 0, 0, false
}

func typeName(m *ir.Module, h ir.TypeHandle) string {
	t := m.Types[h]
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("%T", t.Inner)
}
