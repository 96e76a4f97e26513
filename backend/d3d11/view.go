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

// ViewClass is the kind of texture view being resolved.
type ViewClass uint8

// View classes.
const (
	ShaderResource ViewClass = iota
	RenderTarget
	DepthStencil
)

func (c ViewClass) String() string {
	switch c {
	case ShaderResource:
		return "SRV"
	case RenderTarget:
		return "RTV"
	case DepthStencil:
		return "DSV"
	default:
		return "ViewClass(?)"
	}
}

// ViewDimension is the resolved dimensionality of a texture view.
type ViewDimension uint8

// View dimensions.
const (
	ViewTexture1D ViewDimension = iota
	ViewTexture1DArray
	ViewTexture2D
	ViewTexture2DArray
	ViewTexture2DMS
	ViewTexture2DMSArray
	ViewTexture3D
)

func (d ViewDimension) String() string {
	switch d {
	case ViewTexture1D:
		return "1D"
	case ViewTexture1DArray:
		return "1D-array"
	case ViewTexture2D:
		return "2D"
	case ViewTexture2DArray:
		return "2D-array"
	case ViewTexture2DMS:
		return "2D-MS"
	case ViewTexture2DMSArray:
		return "2D-MS-array"
	case ViewTexture3D:
		return "3D"
	default:
		return "ViewDimension(?)"
	}
}

// ViewAddress is the dimension and subresource range of a view.
type ViewAddress struct {
	Dimension ViewDimension
	// FirstLevel is the most detailed mip (SRV) or the mip slice (RTV, DSV).
	FirstLevel uint32
	// Levels is the number of visible mips; 0 for multisampled views.
	Levels uint32
	// FirstSlice and Slices select array slices, cube faces or, for
	// volume render targets, depth slices.
	FirstSlice uint32
	Slices     uint32
}

// ViewRange is the mip selection of a view. Render-target and depth-stencil
// views use Min == Max.
type ViewRange struct {
	Min, Max core.Level
}

func badLevel(l core.Level) error { return &core.ViewError{Reason: core.ViewBadLevel, Level: l} }
func badLayer(l core.Layer) error { return &core.ViewError{Reason: core.ViewBadLayer, Layer: l} }
func unsupportedView(err error) error {
	return &core.ViewError{Reason: core.ViewUnsupported, Err: err}
}

// ResolveView computes the dimension and addressing of a view of class on a
// texture of the given kind and level count.
//
// Cube and cube-array textures resolve to 2D-array views over their faces.
// A layer selector on a non-array kind fails with BadLayer; a depth-stencil
// view of a volume texture is always unsupported.
func ResolveView(kind core.Kind, levels core.Level, class ViewClass, layer *core.Layer, r ViewRange) (ViewAddress, error) {
	if kind == nil {
		return ViewAddress{}, unsupportedView(errors.New("nil texture kind"))
	}
	if _, ok := kind.(core.D3); ok && class == DepthStencil {
		return ViewAddress{}, unsupportedView(errors.New("depth-stencil view of a volume texture"))
	}

	_, _, _, aa := kind.Dimensions()
	ms := aa.IsMultisampled()

	var addr ViewAddress
	switch {
	case r.Max < r.Min:
		return addr, badLevel(r.Max)
	case r.Max >= levels:
		return addr, badLevel(r.Max)
	case ms && r.Max != 0:
		return addr, badLevel(r.Max)
	}
	if !ms {
		addr.FirstLevel = uint32(r.Min)
		addr.Levels = uint32(r.Max-r.Min) + 1
	}

	single := func(dim ViewDimension, count uint32) (ViewAddress, error) {
		addr.Dimension = dim
		if layer == nil {
			addr.FirstSlice, addr.Slices = 0, count
			return addr, nil
		}
		if uint32(*layer) >= count {
			return ViewAddress{}, badLayer(*layer)
		}
		addr.FirstSlice, addr.Slices = uint32(*layer), 1
		return addr, nil
	}
	noLayer := func(dim ViewDimension) (ViewAddress, error) {
		if layer != nil {
			return ViewAddress{}, badLayer(*layer)
		}
		addr.Dimension = dim
		addr.FirstSlice, addr.Slices = 0, 1
		return addr, nil
	}

	switch k := kind.(type) {
	case core.D1:
		return noLayer(ViewTexture1D)
	case core.D1Array:
		return single(ViewTexture1DArray, uint32(k.Layers))
	case core.D2:
		if ms {
			return noLayer(ViewTexture2DMS)
		}
		return noLayer(ViewTexture2D)
	case core.D2Array:
		if ms {
			return single(ViewTexture2DMSArray, uint32(k.Layers))
		}
		return single(ViewTexture2DArray, uint32(k.Layers))
	case core.D3:
		_, _, depth := core.LevelDimensions(k, r.Min)
		if class == ShaderResource {
			addr.Dimension = ViewTexture3D
			if layer != nil {
				return ViewAddress{}, badLayer(*layer)
			}
			addr.FirstSlice, addr.Slices = 0, depth
			return addr, nil
		}
		return single(ViewTexture3D, depth)
	case core.Cube:
		return single(ViewTexture2DArray, core.CubeFaces)
	case core.CubeArray:
		addr.Dimension = ViewTexture2DArray
		if layer == nil {
			addr.FirstSlice, addr.Slices = 0, core.CubeFaces*uint32(k.Layers)
			return addr, nil
		}
		if *layer >= k.Layers {
			return ViewAddress{}, badLayer(*layer)
		}
		addr.FirstSlice, addr.Slices = core.CubeFaces*uint32(*layer), core.CubeFaces
		return addr, nil
	default:
		return ViewAddress{}, unsupportedView(fmt.Errorf("texture kind %T", kind))
	}
}

// SRVDesc returns the native shader-resource view description of addr.
func SRVDesc(format DXGIFormat, addr ViewAddress) ShaderResourceViewDesc {
	desc := ShaderResourceViewDesc{
		Format:          format,
		MostDetailedMip: addr.FirstLevel,
		MipLevels:       addr.Levels,
	}
	switch addr.Dimension {
	case ViewTexture1D:
		desc.ViewDimension = SRVDimensionTexture1D
	case ViewTexture1DArray:
		desc.ViewDimension = SRVDimensionTexture1DArray
	case ViewTexture2D:
		desc.ViewDimension = SRVDimensionTexture2D
	case ViewTexture2DArray:
		desc.ViewDimension = SRVDimensionTexture2DArray
	case ViewTexture2DMS:
		desc.ViewDimension = SRVDimensionTexture2DMS
	case ViewTexture2DMSArray:
		desc.ViewDimension = SRVDimensionTexture2DMSArray
	case ViewTexture3D:
		desc.ViewDimension = SRVDimensionTexture3D
	}
	if isArray(addr.Dimension) {
		desc.FirstArraySlice = addr.FirstSlice
		desc.ArraySize = addr.Slices
	}
	return desc
}

// RTVDesc returns the native render-target view description of addr.
func RTVDesc(format DXGIFormat, addr ViewAddress) RenderTargetViewDesc {
	desc := RenderTargetViewDesc{
		Format:   format,
		MipSlice: addr.FirstLevel,
	}
	switch addr.Dimension {
	case ViewTexture1D:
		desc.ViewDimension = RTVDimensionTexture1D
	case ViewTexture1DArray:
		desc.ViewDimension = RTVDimensionTexture1DArray
	case ViewTexture2D:
		desc.ViewDimension = RTVDimensionTexture2D
	case ViewTexture2DArray:
		desc.ViewDimension = RTVDimensionTexture2DArray
	case ViewTexture2DMS:
		desc.ViewDimension = RTVDimensionTexture2DMS
	case ViewTexture2DMSArray:
		desc.ViewDimension = RTVDimensionTexture2DMSArray
	case ViewTexture3D:
		desc.ViewDimension = RTVDimensionTexture3D
	}
	if isArray(addr.Dimension) || addr.Dimension == ViewTexture3D {
		desc.FirstArraySlice = addr.FirstSlice
		desc.ArraySize = addr.Slices
	}
	return desc
}

// DSVDesc returns the native depth-stencil view description of addr. addr
// must not be a volume view.
func DSVDesc(format DXGIFormat, flags DSVFlag, addr ViewAddress) DepthStencilViewDesc {
	desc := DepthStencilViewDesc{
		Format:   format,
		Flags:    flags,
		MipSlice: addr.FirstLevel,
	}
	switch addr.Dimension {
	case ViewTexture1D:
		desc.ViewDimension = DSVDimensionTexture1D
	case ViewTexture1DArray:
		desc.ViewDimension = DSVDimensionTexture1DArray
	case ViewTexture2D:
		desc.ViewDimension = DSVDimensionTexture2D
	case ViewTexture2DArray:
		desc.ViewDimension = DSVDimensionTexture2DArray
	case ViewTexture2DMS:
		desc.ViewDimension = DSVDimensionTexture2DMS
	case ViewTexture2DMSArray:
		desc.ViewDimension = DSVDimensionTexture2DMSArray
	}
	if isArray(addr.Dimension) {
		desc.FirstArraySlice = addr.FirstSlice
		desc.ArraySize = addr.Slices
	}
	return desc
}

func isArray(d ViewDimension) bool {
	return d == ViewTexture1DArray || d == ViewTexture2DArray || d == ViewTexture2DMSArray
}

func channelError(c core.ChannelType) error {
	return &core.ViewError{Reason: core.ViewChannel, Channel: c}
}

// ViewTextureAsShaderResource creates a shader-resource view of the mip
// range desc.Min..desc.Max.
func (f *Factory) ViewTextureAsShaderResource(h handle.Handle[*Texture], desc core.ResourceDesc) (handle.Handle[*ShaderResourceView], error) {
	var none handle.Handle[*ShaderResourceView]

	tex, err := Resolve(f, h)
	if err != nil {
		return none, unsupportedView(err)
	}
	addr, err := ResolveView(tex.Info.Kind, tex.Info.Levels, ShaderResource, desc.Layer, ViewRange{desc.Min, desc.Max})
	if err != nil {
		return none, err
	}
	format, ok := MapFormat(core.Format{Surface: tex.Info.Format, Channel: desc.Channel}, false)
	if !ok {
		return none, channelError(desc.Channel)
	}

	native, err := f.device.CreateShaderResourceView(tex.native, ptr(SRVDesc(format, addr)))
	if err != nil {
		logNativeFailure("d3d11: shader resource view creation failed", err, "dimension", addr.Dimension)
		return none, unsupportedView(err)
	}

	gfx.Logger().Debug("d3d11: create SRV", "texture", h, "dimension", addr.Dimension,
		"first_slice", addr.FirstSlice, "slices", addr.Slices)

	return handle.Register(f.share.handles, &ShaderResourceView{native: native, Texture: h, Address: addr}), nil
}

// ViewTextureAsRenderTarget creates a render-target view of one mip level.
func (f *Factory) ViewTextureAsRenderTarget(h handle.Handle[*Texture], desc core.RenderDesc) (handle.Handle[*RenderTargetView], error) {
	var none handle.Handle[*RenderTargetView]

	tex, err := Resolve(f, h)
	if err != nil {
		return none, unsupportedView(err)
	}
	addr, err := ResolveView(tex.Info.Kind, tex.Info.Levels, RenderTarget, desc.Layer, ViewRange{desc.Level, desc.Level})
	if err != nil {
		return none, err
	}
	format, ok := MapFormat(core.Format{Surface: tex.Info.Format, Channel: desc.Channel}, true)
	if !ok {
		return none, channelError(desc.Channel)
	}

	native, err := f.device.CreateRenderTargetView(tex.native, ptr(RTVDesc(format, addr)))
	if err != nil {
		logNativeFailure("d3d11: render target view creation failed", err, "dimension", addr.Dimension)
		return none, unsupportedView(err)
	}

	w, hh, d := core.LevelDimensions(tex.Info.Kind, desc.Level)
	return handle.Register(f.share.handles, &RenderTargetView{
		native:  native,
		Texture: h,
		Address: addr,
		Width:   w,
		Height:  hh,
		Depth:   d,
	}), nil
}

// ViewTextureAsDepthStencil creates a depth-stencil view of one mip level.
// Volume textures cannot be viewed as depth-stencil.
func (f *Factory) ViewTextureAsDepthStencil(h handle.Handle[*Texture], desc core.DepthStencilDesc) (handle.Handle[*DepthStencilView], error) {
	var none handle.Handle[*DepthStencilView]

	tex, err := Resolve(f, h)
	if err != nil {
		return none, unsupportedView(err)
	}
	addr, err := ResolveView(tex.Info.Kind, tex.Info.Levels, DepthStencil, desc.Layer, ViewRange{desc.Level, desc.Level})
	if err != nil {
		return none, err
	}
	// The channel is irrelevant for depth formats.
	format, ok := MapFormat(core.Format{Surface: tex.Info.Format, Channel: core.Uint}, true)
	if !ok {
		return none, channelError(core.Uint)
	}

	native, err := f.device.CreateDepthStencilView(tex.native, ptr(DSVDesc(format, MapDSVFlags(desc.Flags), addr)))
	if err != nil {
		logNativeFailure("d3d11: depth stencil view creation failed", err, "dimension", addr.Dimension)
		return none, unsupportedView(err)
	}

	w, hh, d := core.LevelDimensions(tex.Info.Kind, desc.Level)
	return handle.Register(f.share.handles, &DepthStencilView{
		native:  native,
		Texture: h,
		Address: addr,
		Width:   w,
		Height:  hh,
		Depth:   d,
	}), nil
}

// ViewBufferAsShaderResource is not supported by this backend.
func (f *Factory) ViewBufferAsShaderResource(handle.Handle[*Buffer]) (handle.Handle[*ShaderResourceView], error) {
	return handle.Handle[*ShaderResourceView]{}, unsupportedView(errors.New("buffer shader resource views"))
}

// ViewBufferAsUnorderedAccess is not supported by this backend.
func (f *Factory) ViewBufferAsUnorderedAccess(handle.Handle[*Buffer]) (handle.Handle[*UnorderedAccessView], error) {
	return handle.Handle[*UnorderedAccessView]{}, unsupportedView(errors.New("buffer unordered access views"))
}

// ViewTextureAsUnorderedAccess is not supported by this backend.
func (f *Factory) ViewTextureAsUnorderedAccess(handle.Handle[*Texture]) (handle.Handle[*UnorderedAccessView], error) {
	return handle.Handle[*UnorderedAccessView]{}, unsupportedView(errors.New("texture unordered access views"))
}

func ptr[T any](v T) *T { return &v }
