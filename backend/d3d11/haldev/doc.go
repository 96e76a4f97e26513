// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package haldev runs the d3d11 resource factory on a gogpu/wgpu HAL
// device.
//
// Device implements d3d11.Device and Context implements
// d3d11.DeviceContext. Shader bytecode handed to the factory is WGSL
// source: vertex and pixel shaders are compiled to SPIR-V with naga, and
// Reflector reads their inputs, outputs and bindings. Input layouts are
// checked against the vertex shader by matching semantic names to WGSL
// input names.
//
// The HAL bakes render state into pipelines, so rasterizer, depth stencil
// and blend states become translated descriptions (RasterizerState,
// DepthStencilState and BlendState) that a pipeline builder completes
// with the bound formats.
//
// Usage:
//
//	dev, err := haldev.New(halDevice, halQueue)
//	if err != nil {
//	    return err
//	}
//	f, err := d3d11.New(dev,
//	    d3d11.WithReflector(dev.Reflector()),
//	    d3d11.WithContext(dev.Context()),
//	)
//
// A device shared by a gogpu application is wrapped with FromProvider.
package haldev
