// Package gfx is the root of a GPU resource factory for Go.
//
// # Overview
//
// gfx turns hardware-agnostic resource descriptions (buffers, textures,
// shaders, pipeline states, views and samplers) into objects of a native
// graphics device, and tracks their lifetimes behind typed, reference
// counted handles.
//
// # Packages
//
//   - core: the abstract model (formats, usages, texture kinds, pipeline
//     descriptions, shader reflection) and its error types
//   - handle: the generic handle manager that owns native objects
//   - backend/d3d11: the resource factory for a D3D11-style device, with
//     its format mapper, view resolver and shader cache
//   - backend/d3d11/haldev: a d3d11 device built on a gogpu/wgpu HAL device
//   - backend: the HAL driver registry and Open, which builds a factory on a
//     registered driver
//
// # Quick Start
//
//	f, err := backend.Open("", d3d11.WithStateCache(64))
//	if err != nil {
//	    return err
//	}
//	defer f.Release()
//
//	tex, err := f.CreateTexture(core.TextureInfo{
//	    Kind:   core.D2{Width: 512, Height: 512},
//	    Levels: 1,
//	    Format: core.R8G8B8A8,
//	    Bind:   core.BindShaderResource | core.BindRenderTarget,
//	    Usage:  core.GPUOnly,
//	}, nil)
//
// To run on a HAL device owned elsewhere, wrap it with haldev.New and pass
// the device to d3d11.New.
//
// # Logging
//
// gfx is silent by default. SetLogger routes the log output of every
// package to a slog.Logger.
package gfx
