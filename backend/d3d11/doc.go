// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 creates GPU resources on a Direct3D 11 style device.
//
// A [Factory] translates the descriptions in package core into native
// descriptors, creates the native objects through a [Device] and registers
// them in a [handle.Manager] shared by the factory and its clones.
//
// # Resources
//
// Buffers, textures, shaders, programs, pipeline states, samplers and
// resource views are created with the Create* and View* methods. Every
// method returns a typed handle:
//
//	buf, err := f.CreateBufferConst(vertices, 16, core.BufferRoleVertex, core.BindVertex)
//	tex, err := f.CreateTexture(core.TextureInfo{
//	    Kind:   core.D2{Width: 256, Height: 256},
//	    Levels: 1,
//	    Format: core.R8G8B8A8,
//	    Bind:   core.BindShaderResource,
//	    Usage:  core.GPUOnly,
//	}, nil)
//
// Handles are released with [Release]. The native object is destroyed with
// the last reference; programs keep their shaders alive and pipeline states
// keep their program alive.
//
// # Shader cache
//
// Vertex shader bytecode is kept in a [ShaderCache] keyed by a keyed
// BLAKE2b hash. Pipeline creation reads the bytecode back to validate the
// input layout, so a pipeline can only be built while its program is alive.
//
// # Native devices
//
// [Device] and [DeviceContext] are small interfaces over the native API.
// Package haldev implements them on a gogpu/wgpu HAL device.
//
// # Logging
//
// The package logs through [gfx.Logger]. Native failures are logged at
// error level with the native result code.
package d3d11
