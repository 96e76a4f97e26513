// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/core"
)

// ErrNoHAL is returned by FromProvider when the provider does not expose
// HAL objects.
var ErrNoHAL = errors.New("haldev: provider does not expose HAL device and queue")

// appendAligned places an input element right after the previous one.
const appendAligned = 0xFFFFFFFF

// Option configures a Device.
type Option func(*Device)

// WithLimits sets the limits reported as capabilities. The default is
// gputypes.DefaultLimits.
func WithLimits(limits gputypes.Limits) Option {
	return func(d *Device) { d.limits = limits }
}

// WithOnRelease registers fn to run when the last reference to the device
// is released. Use it to destroy a device the caller owns.
func WithOnRelease(fn func()) Option {
	return func(d *Device) { d.onRelease = fn }
}

// Device implements d3d11.Device on top of a HAL device. Shader bytecode
// is WGSL source; it is compiled with naga. Geometry shaders are not
// available.
//
// Device does not own the HAL device unless WithOnRelease says so.
type Device struct {
	refs
	device    hal.Device
	queue     hal.Queue
	limits    gputypes.Limits
	onRelease func()
	reflector Reflector
	context   *Context
}

// New wraps a HAL device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("haldev: nil device or queue")
	}
	d := &Device{
		device: device,
		queue:  queue,
		limits: gputypes.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.init(func() {
		if d.onRelease != nil {
			d.onRelease()
		}
	})
	d.context = &Context{device: device, queue: queue}

	gfx.Logger().Debug("haldev: device created", "max_texture", d.limits.MaxTextureDimension2D)
	return d, nil
}

// FromProvider wraps the HAL device of a gpucontext provider such as a
// gogpu application. The provider must implement HalDevice() any and
// HalQueue() any.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return New(device, queue, opts...)
}

// HAL returns the wrapped device.
func (d *Device) HAL() hal.Device { return d.device }

// Context returns the immediate context of the device.
func (d *Device) Context() *Context { return d.context }

// Reflector returns a reflector for shaders this device compiles.
func (d *Device) Reflector() Reflector { return d.reflector }

// Capabilities reports the feature level 11.0 set, limited by the HAL
// texture size limit. Storage bindings are always available.
func (d *Device) Capabilities() core.Capabilities {
	caps := d3d11.DefaultCapabilities()
	if d.limits.MaxTextureDimension2D != 0 {
		caps.MaxTextureSize = d.limits.MaxTextureDimension2D
	}
	caps.UnorderedAccess = true
	return caps
}

// halFailure reports a HAL error as a device failure.
func halFailure(op string, err error) error {
	return fmt.Errorf("haldev: %s: %w: %w", op, d3d11.EFail, err)
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("haldev: %s: %w", fmt.Sprintf(format, args...), d3d11.EInvalidArg)
}

func alignUp4(v uint32) uint32 { return (v + 3) &^ 3 }

func bufferUsage(desc *d3d11.BufferDesc) gputypes.BufferUsage {
	if desc.Usage == d3d11.UsageStaging {
		if desc.CPUAccessFlags&d3d11.CPUAccessRead != 0 {
			return gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst
		}
		return gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst
	}
	usage := gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst
	if desc.BindFlags&d3d11.BindVertexBuffer != 0 {
		usage |= gputypes.BufferUsageVertex
	}
	if desc.BindFlags&d3d11.BindIndexBuffer != 0 {
		usage |= gputypes.BufferUsageIndex
	}
	if desc.BindFlags&d3d11.BindConstantBuffer != 0 {
		usage |= gputypes.BufferUsageUniform
	}
	if desc.BindFlags&(d3d11.BindShaderResource|d3d11.BindUnorderedAccess) != 0 {
		usage |= gputypes.BufferUsageStorage
	}
	return usage
}

// CreateBuffer creates a buffer. Initial data is uploaded through the
// queue.
func (d *Device) CreateBuffer(desc *d3d11.BufferDesc, initial *d3d11.SubresourceData) (d3d11.Object, error) {
	if desc.ByteWidth == 0 {
		return nil, invalidArg("zero sized buffer")
	}
	if desc.Usage == d3d11.UsageImmutable && (initial == nil || len(initial.Data) == 0) {
		return nil, invalidArg("immutable buffer without data")
	}
	if desc.BindFlags&d3d11.BindStreamOutput != 0 {
		return nil, fmt.Errorf("haldev: stream output buffers: %w", d3d11.ENotImpl)
	}

	size := alignUp4(desc.ByteWidth)
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gfx-buffer",
		Size:  uint64(size),
		Usage: bufferUsage(desc),
	})
	if err != nil {
		return nil, halFailure("create buffer", err)
	}

	b := &Buffer{buffer: buf, desc: *desc, shadow: make([]byte, size)}
	b.init(func() { d.device.DestroyBuffer(buf) })
	if initial != nil && len(initial.Data) > 0 {
		n := copy(b.shadow[:desc.ByteWidth], initial.Data)
		if err := d.queue.WriteBuffer(buf, 0, b.shadow[:alignUp4(uint32(n))]); err != nil {
			b.Release()
			return nil, halFailure("write buffer", err)
		}
	}
	return b, nil
}

func textureUsage(bind d3d11.BindFlag, samples uint32) gputypes.TextureUsage {
	var usage gputypes.TextureUsage
	if samples <= 1 {
		usage = gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	}
	if bind&d3d11.BindShaderResource != 0 {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if bind&(d3d11.BindRenderTarget|d3d11.BindDepthStencil) != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if bind&d3d11.BindUnorderedAccess != 0 {
		usage |= gputypes.TextureUsageStorageBinding
	}
	return usage
}

// fullMipCount is the length of the mip chain down to 1x1x1.
func fullMipCount(w, h, depth uint32) uint32 {
	n := uint32(1)
	for s := max(w, h, depth); s > 1; s >>= 1 {
		n++
	}
	return n
}

// textureShape is the dimension independent part of a texture description.
type textureShape struct {
	dimension gputypes.TextureDimension
	size      hal.Extent3D
	mips      uint32
	samples   uint32
	format    d3d11.DXGIFormat
	usage     d3d11.UsageCode
	bind      d3d11.BindFlag
}

func (d *Device) createTexture(ts textureShape, initial []d3d11.SubresourceData) (d3d11.Object, error) {
	tf, ok := textureFormat(ts.format, ts.bind)
	if !ok {
		return nil, invalidArg("format %d has no HAL equivalent", ts.format)
	}
	if ts.size.Width == 0 || ts.size.Height == 0 || ts.size.DepthOrArrayLayers == 0 {
		return nil, invalidArg("zero sized texture")
	}
	if ts.usage == d3d11.UsageImmutable && len(initial) == 0 {
		return nil, invalidArg("immutable texture without data")
	}
	if ts.mips == 0 {
		depth := uint32(1)
		if ts.dimension == gputypes.TextureDimension3D {
			depth = ts.size.DepthOrArrayLayers
		}
		ts.mips = fullMipCount(ts.size.Width, ts.size.Height, depth)
	}
	ts.samples = max(ts.samples, 1)

	desc := &hal.TextureDescriptor{
		Label:         "gfx-texture",
		Size:          ts.size,
		MipLevelCount: ts.mips,
		SampleCount:   ts.samples,
		Dimension:     ts.dimension,
		Format:        tf.format,
		Usage:         textureUsage(ts.bind, ts.samples),
	}
	if tf.view != gputypes.TextureFormatUndefined {
		desc.ViewFormats = []gputypes.TextureFormat{tf.view}
	}
	tex, err := d.device.CreateTexture(desc)
	if err != nil {
		return nil, halFailure("create texture", err)
	}

	t := &Texture{
		texture:   tex,
		format:    tf,
		native:    ts.format,
		dimension: ts.dimension,
		usage:     ts.usage,
		size:      ts.size,
		mips:      ts.mips,
		samples:   ts.samples,
	}
	t.init(func() { d.device.DestroyTexture(tex) })

	for i, sub := range initial {
		if len(sub.Data) == 0 {
			continue
		}
		if err := d.context.writeTexture(t, uint32(i), nil, sub.Data, sub.RowPitch, sub.SlicePitch); err != nil {
			t.Release()
			return nil, err
		}
	}

	gfx.Logger().Debug("haldev: create texture",
		"dimension", ts.dimension, "width", ts.size.Width, "height", ts.size.Height,
		"layers", ts.size.DepthOrArrayLayers, "mips", ts.mips, "format", tf.format)
	return t, nil
}

// CreateTexture1D creates a 1D texture or texture array.
func (d *Device) CreateTexture1D(desc *d3d11.Texture1DDesc, initial []d3d11.SubresourceData) (d3d11.Object, error) {
	return d.createTexture(textureShape{
		dimension: gputypes.TextureDimension1D,
		size:      hal.Extent3D{Width: desc.Width, Height: 1, DepthOrArrayLayers: max(desc.ArraySize, 1)},
		mips:      desc.MipLevels,
		format:    desc.Format,
		usage:     desc.Usage,
		bind:      desc.BindFlags,
	}, initial)
}

// CreateTexture2D creates a 2D texture, texture array or cube.
func (d *Device) CreateTexture2D(desc *d3d11.Texture2DDesc, initial []d3d11.SubresourceData) (d3d11.Object, error) {
	return d.createTexture(textureShape{
		dimension: gputypes.TextureDimension2D,
		size:      hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: max(desc.ArraySize, 1)},
		mips:      desc.MipLevels,
		samples:   desc.SampleDesc.Count,
		format:    desc.Format,
		usage:     desc.Usage,
		bind:      desc.BindFlags,
	}, initial)
}

// CreateTexture3D creates a volume texture.
func (d *Device) CreateTexture3D(desc *d3d11.Texture3DDesc, initial []d3d11.SubresourceData) (d3d11.Object, error) {
	return d.createTexture(textureShape{
		dimension: gputypes.TextureDimension3D,
		size:      hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: desc.Depth},
		mips:      desc.MipLevels,
		format:    desc.Format,
		usage:     desc.Usage,
		bind:      desc.BindFlags,
	}, initial)
}

// compileShader compiles WGSL to SPIR-V and creates a shader module.
func (d *Device) compileShader(stage core.Stage, code []byte) (d3d11.Object, error) {
	m, err := parseModule(code)
	if err != nil {
		return nil, err
	}
	ep, err := findEntry(m, stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, d3d11.EInvalidArg)
	}

	spirv, err := compileSPIRV(string(code))
	if err != nil {
		return nil, err
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gfx-" + strings.ToLower(stage.String()),
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, halFailure("create shader module", err)
	}

	s := &Shader{module: module, stage: stage, Entry: ep.Name}
	s.init(func() { d.device.DestroyShaderModule(module) })
	return s, nil
}

// compileSPIRV compiles WGSL source to little-endian SPIR-V words.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("haldev: compile shader: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateVertexShader compiles a WGSL module with a @vertex entry point.
func (d *Device) CreateVertexShader(code []byte) (d3d11.Object, error) {
	return d.compileShader(core.StageVertex, code)
}

// CreateGeometryShader always fails with ENotImpl.
func (d *Device) CreateGeometryShader([]byte) (d3d11.Object, error) {
	return nil, fmt.Errorf("haldev: geometry shaders: %w", d3d11.ENotImpl)
}

// CreatePixelShader compiles a WGSL module with a @fragment entry point.
func (d *Device) CreatePixelShader(code []byte) (d3d11.Object, error) {
	return d.compileShader(core.StagePixel, code)
}

// CreateInputLayout checks elements against the vertex inputs of
// vertexCode and builds one vertex buffer layout per input slot. Element
// semantic names match input names case-insensitively; a semantic index
// above zero is appended to the name. Every vertex input must be fed.
func (d *Device) CreateInputLayout(elements []d3d11.InputElementDesc, vertexCode []byte) (d3d11.Object, error) {
	refl, err := d.reflector.Reflect(core.StageVertex, vertexCode)
	if err != nil {
		return nil, fmt.Errorf("haldev: input layout: %w: %w", d3d11.EInvalidArg, err)
	}
	inputs := make(map[string]core.Attribute, len(refl.Attributes))
	for _, a := range refl.Attributes {
		inputs[strings.ToLower(a.Name)] = a
	}

	var (
		buffers []gputypes.VertexBufferLayout
		ends    []uint64
		fed     = make(map[string]bool, len(elements))
	)
	for _, e := range elements {
		name := strings.ToLower(e.SemanticName)
		if e.SemanticIndex > 0 {
			name = fmt.Sprintf("%s%d", name, e.SemanticIndex)
		}
		attr, ok := inputs[name]
		if !ok {
			return nil, invalidArg("semantic %s%d is not a vertex input", e.SemanticName, e.SemanticIndex)
		}
		if fed[name] {
			return nil, invalidArg("semantic %s%d bound twice", e.SemanticName, e.SemanticIndex)
		}
		fed[name] = true

		vf, ok := vertexFormats[e.Format]
		if !ok {
			return nil, invalidArg("format %d is not a vertex format", e.Format)
		}
		for int(e.InputSlot) >= len(buffers) {
			buffers = append(buffers, gputypes.VertexBufferLayout{StepMode: gputypes.VertexStepModeVertex})
			ends = append(ends, 0)
		}
		slot := &buffers[e.InputSlot]
		if e.InputSlotClass == d3d11.InputPerInstanceData {
			slot.StepMode = gputypes.VertexStepModeInstance
		}
		offset := uint64(e.AlignedByteOffset)
		if e.AlignedByteOffset == appendAligned {
			offset = ends[e.InputSlot]
		}
		slot.Attributes = append(slot.Attributes, gputypes.VertexAttribute{
			Format:         vf.format,
			Offset:         offset,
			ShaderLocation: uint32(attr.Slot),
		})
		ends[e.InputSlot] = max(ends[e.InputSlot], offset+uint64(vf.size))
		slot.ArrayStride = ends[e.InputSlot]
	}
	for name := range inputs {
		if !fed[name] {
			return nil, invalidArg("vertex input %s is not fed", name)
		}
	}

	l := &InputLayout{Elements: append([]d3d11.InputElementDesc(nil), elements...), Buffers: buffers}
	l.init(nil)
	return l, nil
}

func (d *Device) createView(res d3d11.Object, desc hal.TextureViewDescriptor, configure func(*View)) (*View, error) {
	tex, ok := res.(*Texture)
	if !ok {
		return nil, invalidArg("view of %T", res)
	}
	if desc.MipLevelCount == 0 || desc.BaseMipLevel+desc.MipLevelCount > tex.mips {
		return nil, invalidArg("mip range %d+%d of %d", desc.BaseMipLevel, desc.MipLevelCount, tex.mips)
	}
	if tex.dimension != gputypes.TextureDimension3D &&
		(desc.ArrayLayerCount == 0 || desc.BaseArrayLayer+desc.ArrayLayerCount > tex.layers()) {
		return nil, invalidArg("layer range %d+%d of %d", desc.BaseArrayLayer, desc.ArrayLayerCount, tex.layers())
	}
	if desc.Aspect == 0 {
		desc.Aspect = gputypes.TextureAspectAll
	}

	hv, err := d.device.CreateTextureView(tex.texture, &desc)
	if err != nil {
		return nil, halFailure("create texture view", err)
	}
	tex.AddRef()
	v := &View{view: hv, texture: tex, desc: desc}
	if configure != nil {
		configure(v)
	}
	v.init(func() {
		d.device.DestroyTextureView(hv)
		tex.Release()
	})
	return v, nil
}

// viewFormat resolves the format of a view of tex. Depth textures are
// viewed in their own format.
func viewFormat(tex *Texture, f d3d11.DXGIFormat) (gputypes.TextureFormat, error) {
	if f == d3d11.FormatUnknown || isDepthFormat(tex.format.format) {
		return tex.format.format, nil
	}
	tf, ok := textureFormats[f]
	if !ok {
		return gputypes.TextureFormatUndefined, invalidArg("view format %d", f)
	}
	if tf.format != tex.format.format && tf.format != tex.format.view {
		return gputypes.TextureFormatUndefined, invalidArg("view format %v is incompatible with %v", tf.format, tex.format.format)
	}
	return tf.format, nil
}

// remaining resolves the D3D "all remaining" count.
func remaining(count, first, total uint32) uint32 {
	if count == ^uint32(0) {
		return total - min(first, total)
	}
	return count
}

// CreateShaderResourceView creates a sampled view of a texture. 1D arrays
// are not available.
func (d *Device) CreateShaderResourceView(res d3d11.Object, desc *d3d11.ShaderResourceViewDesc) (d3d11.Object, error) {
	tex, ok := res.(*Texture)
	if !ok {
		return nil, fmt.Errorf("haldev: shader resource view of %T: %w", res, d3d11.ENotImpl)
	}
	format, err := viewFormat(tex, desc.Format)
	if err != nil {
		return nil, err
	}

	hd := hal.TextureViewDescriptor{
		Label:           "gfx-srv",
		Format:          format,
		BaseMipLevel:    desc.MostDetailedMip,
		MipLevelCount:   remaining(desc.MipLevels, desc.MostDetailedMip, tex.mips),
		BaseArrayLayer:  desc.FirstArraySlice,
		ArrayLayerCount: max(desc.ArraySize, 1),
		Aspect:          gputypes.TextureAspectAll,
	}
	if isDepthFormat(format) {
		hd.Aspect = gputypes.TextureAspectDepthOnly
	}
	switch desc.ViewDimension {
	case d3d11.SRVDimensionTexture1D:
		hd.Dimension = gputypes.TextureViewDimension1D
	case d3d11.SRVDimensionTexture2D, d3d11.SRVDimensionTexture2DMS:
		hd.Dimension = gputypes.TextureViewDimension2D
		hd.ArrayLayerCount = 1
	case d3d11.SRVDimensionTexture2DArray, d3d11.SRVDimensionTexture2DMSArray:
		hd.Dimension = gputypes.TextureViewDimension2DArray
	case d3d11.SRVDimensionTexture3D:
		hd.Dimension = gputypes.TextureViewDimension3D
		hd.BaseArrayLayer, hd.ArrayLayerCount = 0, 1
	case d3d11.SRVDimensionTextureCube:
		hd.Dimension = gputypes.TextureViewDimensionCube
		hd.ArrayLayerCount = 6
	case d3d11.SRVDimensionTextureCubeArray:
		hd.Dimension = gputypes.TextureViewDimensionCubeArray
		hd.ArrayLayerCount = 6 * max(desc.ArraySize, 1)
	case d3d11.SRVDimensionTexture1DArray:
		return nil, fmt.Errorf("haldev: 1D array views: %w", d3d11.ENotImpl)
	default:
		return nil, invalidArg("view dimension %d", desc.ViewDimension)
	}
	if desc.ViewDimension == d3d11.SRVDimensionTexture2DMS || desc.ViewDimension == d3d11.SRVDimensionTexture2DMSArray {
		hd.MipLevelCount = 1
	}
	return d.createView(tex, hd, nil)
}

// CreateRenderTargetView creates a single-mip render target view. Volume
// targets record their first depth slice for the render pass.
func (d *Device) CreateRenderTargetView(res d3d11.Object, desc *d3d11.RenderTargetViewDesc) (d3d11.Object, error) {
	tex, ok := res.(*Texture)
	if !ok {
		return nil, fmt.Errorf("haldev: render target view of %T: %w", res, d3d11.ENotImpl)
	}
	format, err := viewFormat(tex, desc.Format)
	if err != nil {
		return nil, err
	}

	hd := hal.TextureViewDescriptor{
		Label:           "gfx-rtv",
		Format:          format,
		BaseMipLevel:    desc.MipSlice,
		MipLevelCount:   1,
		BaseArrayLayer:  desc.FirstArraySlice,
		ArrayLayerCount: 1,
	}
	var slice uint32
	switch desc.ViewDimension {
	case d3d11.RTVDimensionTexture1D:
		hd.Dimension = gputypes.TextureViewDimension1D
	case d3d11.RTVDimensionTexture2D, d3d11.RTVDimensionTexture2DMS:
		hd.Dimension = gputypes.TextureViewDimension2D
	case d3d11.RTVDimensionTexture2DArray, d3d11.RTVDimensionTexture2DMSArray:
		hd.Dimension = gputypes.TextureViewDimension2DArray
		hd.ArrayLayerCount = max(desc.ArraySize, 1)
	case d3d11.RTVDimensionTexture3D:
		hd.Dimension = gputypes.TextureViewDimension3D
		slice = desc.FirstArraySlice
		hd.BaseArrayLayer = 0
		if depth := tex.mipExtent(min(desc.MipSlice, tex.mips-1)).DepthOrArrayLayers; slice >= depth {
			return nil, invalidArg("depth slice %d of %d", slice, depth)
		}
	case d3d11.RTVDimensionTexture1DArray:
		return nil, fmt.Errorf("haldev: 1D array views: %w", d3d11.ENotImpl)
	default:
		return nil, invalidArg("view dimension %d", desc.ViewDimension)
	}
	return d.createView(tex, hd, func(v *View) { v.DepthSlice = slice })
}

// CreateDepthStencilView creates a depth stencil view. 1D depth textures
// are not available.
func (d *Device) CreateDepthStencilView(res d3d11.Object, desc *d3d11.DepthStencilViewDesc) (d3d11.Object, error) {
	tex, ok := res.(*Texture)
	if !ok {
		return nil, fmt.Errorf("haldev: depth stencil view of %T: %w", res, d3d11.ENotImpl)
	}
	if !isDepthFormat(tex.format.format) {
		return nil, invalidArg("depth stencil view of %v", tex.format.format)
	}

	hd := hal.TextureViewDescriptor{
		Label:           "gfx-dsv",
		Format:          tex.format.format,
		BaseMipLevel:    desc.MipSlice,
		MipLevelCount:   1,
		BaseArrayLayer:  desc.FirstArraySlice,
		ArrayLayerCount: 1,
		Aspect:          gputypes.TextureAspectAll,
	}
	switch desc.ViewDimension {
	case d3d11.DSVDimensionTexture2D, d3d11.DSVDimensionTexture2DMS:
		hd.Dimension = gputypes.TextureViewDimension2D
	case d3d11.DSVDimensionTexture2DArray, d3d11.DSVDimensionTexture2DMSArray:
		hd.Dimension = gputypes.TextureViewDimension2DArray
		hd.ArrayLayerCount = max(desc.ArraySize, 1)
	case d3d11.DSVDimensionTexture1D, d3d11.DSVDimensionTexture1DArray:
		return nil, fmt.Errorf("haldev: 1D depth views: %w", d3d11.ENotImpl)
	default:
		return nil, invalidArg("view dimension %d", desc.ViewDimension)
	}
	return d.createView(tex, hd, func(v *View) {
		v.DepthReadOnly = desc.Flags&d3d11.DSVReadOnlyDepth != 0
		v.StencilReadOnly = desc.Flags&d3d11.DSVReadOnlyStencil != 0
	})
}

// maxLOD is the largest LOD clamp the HAL accepts.
const maxLOD = 32

func filterMode(linear bool) gputypes.FilterMode {
	if linear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// CreateSamplerState creates a sampler. Border address modes clamp to the
// edge and the LOD bias is ignored.
func (d *Device) CreateSamplerState(desc *d3d11.SamplerDesc) (d3d11.Object, error) {
	var modes [3]gputypes.AddressMode
	for i, m := range []d3d11.TextureAddressMode{desc.AddressU, desc.AddressV, desc.AddressW} {
		mode, ok := addressModes[m]
		if !ok {
			return nil, invalidArg("address mode %d", m)
		}
		modes[i] = mode
	}

	f := desc.Filter &^ d3d11.FilterComparison
	aniso := f&d3d11.FilterAnisotropic == d3d11.FilterAnisotropic
	hd := hal.SamplerDescriptor{
		Label:        "gfx-sampler",
		AddressModeU: modes[0],
		AddressModeV: modes[1],
		AddressModeW: modes[2],
		MagFilter:    filterMode(aniso || f&0x4 != 0),
		MinFilter:    filterMode(aniso || f&0x10 != 0),
		MipmapFilter: filterMode(aniso || f&0x1 != 0),
		LodMinClamp:  max(desc.MinLOD, 0),
		LodMaxClamp:  min(desc.MaxLOD, maxLOD),
		Anisotropy:   1,
	}
	if aniso {
		hd.Anisotropy = uint16(min(max(desc.MaxAnisotropy, 1), 16))
	}
	if desc.Filter&d3d11.FilterComparison != 0 {
		cmp, ok := compareFunctions[desc.ComparisonFunc]
		if !ok {
			return nil, invalidArg("comparison %d", desc.ComparisonFunc)
		}
		hd.Compare = cmp
	}

	hs, err := d.device.CreateSampler(&hd)
	if err != nil {
		return nil, halFailure("create sampler", err)
	}
	s := &Sampler{sampler: hs, desc: hd}
	s.init(func() { d.device.DestroySampler(hs) })
	return s, nil
}

// CreateRasterizerState translates a rasterizer description. Wireframe
// fill has no HAL equivalent and is only recorded.
func (d *Device) CreateRasterizerState(desc *d3d11.RasterizerDesc) (d3d11.Object, error) {
	r := &RasterizerState{
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCW,
		},
		DepthBias:           desc.DepthBias,
		DepthBiasSlopeScale: desc.SlopeScaledDepthBias,
		DepthBiasClamp:      desc.DepthBiasClamp,
		DepthClip:           desc.DepthClipEnable,
		Scissor:             desc.ScissorEnable,
		Multisample:         desc.MultisampleEnable,
		Wireframe:           desc.FillMode == d3d11.FillWireframe,
	}
	if desc.FrontCounterClockwise {
		r.Primitive.FrontFace = gputypes.FrontFaceCCW
	}
	switch desc.CullMode {
	case d3d11.CullNone:
		r.Primitive.CullMode = gputypes.CullModeNone
	case d3d11.CullFront:
		r.Primitive.CullMode = gputypes.CullModeFront
	case d3d11.CullBack:
		r.Primitive.CullMode = gputypes.CullModeBack
	default:
		return nil, invalidArg("cull mode %d", desc.CullMode)
	}
	if desc.FillMode != d3d11.FillSolid && desc.FillMode != d3d11.FillWireframe {
		return nil, invalidArg("fill mode %d", desc.FillMode)
	}
	if r.Wireframe {
		gfx.Logger().Warn("haldev: wireframe fill is not supported, drawing solid")
	}
	r.init(nil)
	return r, nil
}

func stencilFace(enabled bool, f d3d11.DepthStencilOpDesc) (hal.StencilFaceState, error) {
	if !enabled {
		return hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}, nil
	}
	cmp, ok := compareFunctions[f.StencilFunc]
	fail, ok1 := stencilOperations[f.StencilFailOp]
	depthFail, ok2 := stencilOperations[f.StencilDepthFailOp]
	pass, ok3 := stencilOperations[f.StencilPassOp]
	if !ok || !ok1 || !ok2 || !ok3 {
		return hal.StencilFaceState{}, invalidArg("stencil face %+v", f)
	}
	return hal.StencilFaceState{Compare: cmp, FailOp: fail, DepthFailOp: depthFail, PassOp: pass}, nil
}

// CreateDepthStencilState translates a depth stencil description.
func (d *Device) CreateDepthStencilState(desc *d3d11.DepthStencilDesc) (d3d11.Object, error) {
	state := hal.DepthStencilState{
		Format:       gputypes.TextureFormatUndefined,
		DepthCompare: gputypes.CompareFunctionAlways,
	}
	if desc.DepthEnable {
		cmp, ok := compareFunctions[desc.DepthFunc]
		if !ok {
			return nil, invalidArg("depth function %d", desc.DepthFunc)
		}
		state.DepthCompare = cmp
		state.DepthWriteEnabled = desc.DepthWriteMask == d3d11.DepthWriteMaskAll
	}

	var err error
	if state.StencilFront, err = stencilFace(desc.StencilEnable, desc.FrontFace); err != nil {
		return nil, err
	}
	if state.StencilBack, err = stencilFace(desc.StencilEnable, desc.BackFace); err != nil {
		return nil, err
	}
	if desc.StencilEnable {
		state.StencilReadMask = uint32(desc.StencilReadMask)
		state.StencilWriteMask = uint32(desc.StencilWriteMask)
	}

	s := &DepthStencilState{State: state}
	s.init(nil)
	return s, nil
}

func blendComponent(src, dst d3d11.Blend, op d3d11.BlendOp) (gputypes.BlendComponent, bool) {
	s, ok1 := blendFactors[src]
	t, ok2 := blendFactors[dst]
	o, ok3 := blendOperations[op]
	return gputypes.BlendComponent{SrcFactor: s, DstFactor: t, Operation: o}, ok1 && ok2 && ok3
}

// CreateBlendState translates a blend description into color target
// states. Without independent blending every target uses the first one.
func (d *Device) CreateBlendState(desc *d3d11.BlendDesc) (d3d11.Object, error) {
	b := &BlendState{AlphaToCoverage: desc.AlphaToCoverageEnable}
	for i := range b.Targets {
		rt := desc.RenderTarget[0]
		if desc.IndependentBlendEnable {
			rt = desc.RenderTarget[i]
		}
		target := gputypes.ColorTargetState{
			Format:    gputypes.TextureFormatUndefined,
			WriteMask: gputypes.ColorWriteMask(rt.RenderTargetWriteMask),
		}
		if rt.BlendEnable {
			color, ok1 := blendComponent(rt.SrcBlend, rt.DestBlend, rt.BlendOp)
			alpha, ok2 := blendComponent(rt.SrcBlendAlpha, rt.DestBlendAlpha, rt.BlendOpAlpha)
			if !ok1 || !ok2 {
				return nil, invalidArg("blend target %d", i)
			}
			target.Blend = &gputypes.BlendState{Color: color, Alpha: alpha}
		}
		b.Targets[i] = target
	}
	b.init(nil)
	return b, nil
}

var _ d3d11.Device = (*Device)(nil)
var _ d3d11.CapabilityReporter = (*Device)(nil)
