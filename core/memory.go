// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "strings"

// Bind is the set of pipeline stages a resource may be bound to.
type Bind uint8

// Bind flags.
const (
	BindRenderTarget Bind = 1 << iota
	BindDepthStencil
	BindShaderResource
	BindUnorderedAccess
	BindTransferSrc
	BindTransferDst
	BindVertex
	BindIndex
)

// BindNone requests no binds beyond those implied by a buffer's role.
const BindNone Bind = 0

// Contains reports whether every flag in o is set in b.
func (b Bind) Contains(o Bind) bool { return b&o == o }

func (b Bind) String() string {
	if b == 0 {
		return "None"
	}
	names := []struct {
		f Bind
		n string
	}{
		{BindRenderTarget, "RenderTarget"},
		{BindDepthStencil, "DepthStencil"},
		{BindShaderResource, "ShaderResource"},
		{BindUnorderedAccess, "UnorderedAccess"},
		{BindTransferSrc, "TransferSrc"},
		{BindTransferDst, "TransferDst"},
		{BindVertex, "Vertex"},
		{BindIndex, "Index"},
	}
	var parts []string
	for _, n := range names {
		if b&n.f != 0 {
			parts = append(parts, n.n)
		}
	}
	return strings.Join(parts, "|")
}

// MapAccess is the CPU access allowed on a mapped resource.
type MapAccess uint8

// Map access flags.
const (
	MapRead MapAccess = 1 << iota
	MapWrite
	MapReadWrite = MapRead | MapWrite
)

// UsageKind classifies how a resource is updated over its lifetime.
type UsageKind uint8

// Usage kinds.
const (
	// UsageGPUOnly resources are written by the GPU and by explicit updates.
	UsageGPUOnly UsageKind = iota
	// UsageConst resources are initialized once at creation.
	UsageConst
	// UsageDynamic resources are rewritten by the CPU frequently.
	UsageDynamic
	// UsageCPUOnly resources are staging copies with the given Access.
	UsageCPUOnly
)

// Usage describes the update pattern of a resource.
type Usage struct {
	Kind UsageKind
	// Access is only meaningful for UsageCPUOnly.
	Access MapAccess
}

// Usage presets.
var (
	GPUOnly = Usage{Kind: UsageGPUOnly}
	Const   = Usage{Kind: UsageConst}
	Dynamic = Usage{Kind: UsageDynamic}
)

// CPUOnly returns a staging usage with the given CPU access.
func CPUOnly(access MapAccess) Usage { return Usage{Kind: UsageCPUOnly, Access: access} }

// AllowsMap reports whether a resource with this usage may be mapped with
// the requested access.
func (u Usage) AllowsMap(access MapAccess) bool {
	switch u.Kind {
	case UsageDynamic:
		return access == MapWrite
	case UsageCPUOnly:
		return u.Access&access == access
	default:
		return false
	}
}

// BufferRole is the primary purpose of a buffer.
type BufferRole uint8

// Buffer roles.
const (
	BufferRoleVertex BufferRole = iota
	BufferRoleIndex
	BufferRoleUniform
)

func (r BufferRole) String() string {
	switch r {
	case BufferRoleVertex:
		return "Vertex"
	case BufferRoleIndex:
		return "Index"
	case BufferRoleUniform:
		return "Uniform"
	default:
		return "BufferRole(?)"
	}
}

// BufferInfo describes a buffer to create.
type BufferInfo struct {
	Role  BufferRole
	Usage Usage
	Bind  Bind
	// Size is the requested byte size.
	Size uint64
	// Stride is the element size in bytes. Index buffers require 2 or 4.
	Stride uint32
}
