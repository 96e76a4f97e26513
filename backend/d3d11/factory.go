// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// Share is the state shared by a factory and its clones: the handle
// manager, the shader cache and the device capabilities.
type Share struct {
	handles *handle.Manager
	shaders *ShaderCache
	caps    core.Capabilities
}

// NewShare creates an empty store. hashKey keys the shader content hash; nil
// selects the default key.
func NewShare(caps core.Capabilities, hashKey []byte) (*Share, error) {
	shaders, err := NewShaderCache(hashKey)
	if err != nil {
		return nil, err
	}
	return &Share{
		handles: handle.NewManager(),
		shaders: shaders,
		caps:    caps,
	}, nil
}

// Handles returns the handle manager.
func (s *Share) Handles() *handle.Manager { return s.handles }

// Shaders returns the vertex bytecode cache.
func (s *Share) Shaders() *ShaderCache { return s.shaders }

// Capabilities returns the device capabilities.
func (s *Share) Capabilities() core.Capabilities { return s.caps }

// Factory creates native resources and registers them in a shared store.
//
// A Factory is not internally locked and assumes exclusive use of its
// device during each call. Clones share the store, which serializes its own
// mutations.
type Factory struct {
	device    Device
	context   DeviceContext
	share     *Share
	typed     bool
	reflector Reflector
	states    StateTranslator
}

// New creates a factory on dev. The factory takes over the caller's
// reference to dev; Release gives it back.
func New(dev Device, opts ...Option) (*Factory, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	share := o.share
	if share == nil {
		caps := DefaultCapabilities()
		if r, ok := dev.(CapabilityReporter); ok {
			caps = r.Capabilities()
		}
		var err error
		share, err = NewShare(caps, o.hashKey)
		if err != nil {
			return nil, err
		}
	}

	return &Factory{
		device:    dev,
		context:   o.context,
		share:     share,
		typed:     o.typed,
		reflector: o.reflector,
		states:    o.states,
	}, nil
}

// Clone returns a factory on the same device and store. The device gains a
// reference, released by the clone's Release.
func (f *Factory) Clone() *Factory {
	f.device.AddRef()
	c := *f
	return &c
}

// Release drops the factory's device reference. Registered resources stay
// alive until released through the handle manager.
func (f *Factory) Release() {
	f.device.Release()
}

// Device returns the native device.
func (f *Factory) Device() Device { return f.device }

// Share returns the store shared with clones.
func (f *Factory) Share() *Share { return f.share }

// Handles returns the shared handle manager.
func (f *Factory) Handles() *handle.Manager { return f.share.handles }

// Capabilities returns the device capabilities.
func (f *Factory) Capabilities() core.Capabilities { return f.share.caps }

// Resolve returns the object behind h.
func Resolve[T any](f *Factory, h handle.Handle[T]) (T, error) {
	return handle.Get(f.share.handles, h)
}

// Release drops a reference to h. The native object is destroyed with the
// last reference.
func Release[T any](f *Factory, h handle.Handle[T]) error {
	_, err := handle.Release(f.share.handles, h)
	return err
}

func logNativeFailure(msg string, err error, attrs ...any) {
	var hr HRESULT
	if errors.As(err, &hr) {
		attrs = append(attrs, slog.String("hr", fmt.Sprintf("0x%08X", uint32(hr))))
	}
	attrs = append(attrs, slog.Any("err", err))
	gfx.Logger().Error(msg, attrs...)
}

// uniformAlignment is the size granularity of constant buffers.
const uniformAlignment = 16

// CreateBuffer creates a buffer, optionally initialized with data.
func (f *Factory) CreateBuffer(info core.BufferInfo, data []byte) (handle.Handle[*Buffer], error) {
	var none handle.Handle[*Buffer]

	if bad := info.Bind & (core.BindRenderTarget | core.BindDepthStencil); bad != 0 {
		return none, &core.UnsupportedBindError{Bind: bad}
	}

	bind := MapBind(info.Bind)
	size := info.Size
	switch info.Role {
	case core.BufferRoleVertex:
		bind |= BindVertexBuffer
	case core.BufferRoleIndex:
		if info.Stride != 2 && info.Stride != 4 {
			return none, fmt.Errorf("%w: index stride %d, want 2 or 4", core.ErrBufferOther, info.Stride)
		}
		bind |= BindIndexBuffer
	case core.BufferRoleUniform:
		bind |= BindConstantBuffer
		size = (size + uniformAlignment - 1) &^ (uniformAlignment - 1)
		if size < info.Size {
			panic(fmt.Sprintf("d3d11: uniform buffer size %d overflows when rounded", info.Size))
		}
	}
	if size > math.MaxUint32 {
		return none, fmt.Errorf("%w: size %d exceeds 4 GiB", core.ErrBufferOther, size)
	}
	if uint64(len(data)) > size {
		return none, fmt.Errorf("%w: %d bytes of data for a %d byte buffer", core.ErrBufferOther, len(data), size)
	}

	usage, cpu := MapUsage(info.Usage)
	desc := BufferDesc{
		ByteWidth:           uint32(size),
		Usage:               usage,
		BindFlags:           bind,
		CPUAccessFlags:      cpu,
		StructureByteStride: info.Stride,
	}
	var initial *SubresourceData
	if data != nil {
		initial = &SubresourceData{Data: data}
	}

	gfx.Logger().Debug("d3d11: create buffer",
		"role", info.Role, "size", size, "bind", uint32(bind), "usage", uint32(usage))

	native, err := f.device.CreateBuffer(&desc, initial)
	if err != nil {
		logNativeFailure("d3d11: buffer creation failed", err, "size", size)
		return none, fmt.Errorf("%w: %w", core.ErrBufferOther, err)
	}

	return handle.Register(f.share.handles, &Buffer{native: native, Info: info, Size: size}), nil
}

// CreateBufferConst creates an immutable buffer holding data.
func (f *Factory) CreateBufferConst(data []byte, stride uint32, role core.BufferRole, bind core.Bind) (handle.Handle[*Buffer], error) {
	return f.CreateBuffer(core.BufferInfo{
		Role:   role,
		Usage:  core.Const,
		Bind:   bind,
		Size:   uint64(len(data)),
		Stride: stride,
	}, data)
}

// CreateTexture creates an uninitialized texture. hint selects the channel
// type of a typed format; it is honored only with WithTypedFormats and for
// textures without depth-stencil binding.
func (f *Factory) CreateTexture(info core.TextureInfo, hint *core.ChannelType) (handle.Handle[*Texture], error) {
	return f.createTexture(info, hint, f.typed, nil, false)
}

// CreateTextureWithData creates a texture initialized from data. data holds
// one entry per subresource, ordered level-major within each slice (index
// level + slice*Levels). With mipmap the native texture is created able to
// generate its mip chain; the caller must request render-target and
// shader-resource binding for that.
func (f *Factory) CreateTextureWithData(info core.TextureInfo, channel core.ChannelType, data [][]byte, mipmap bool) (handle.Handle[*Texture], error) {
	return f.createTexture(info, &channel, f.typed, data, mipmap)
}

// createTexture maps info.Format to its typed variant for hint when typed is
// set, and to the typeless format otherwise.
func (f *Factory) createTexture(info core.TextureInfo, hint *core.ChannelType, typed bool, data [][]byte, mipmap bool) (handle.Handle[*Texture], error) {
	var none handle.Handle[*Texture]

	if info.Kind == nil {
		return none, fmt.Errorf("%w: nil kind", core.ErrTextureKind)
	}
	if info.Levels == 0 {
		return none, fmt.Errorf("%w: texture needs at least one mip level", core.ErrTextureKind)
	}

	if !typed || info.Bind&core.BindDepthStencil != 0 {
		hint = nil
	}
	var (
		format DXGIFormat
		ok     bool
	)
	if hint != nil {
		format, ok = MapFormat(core.Format{Surface: info.Format, Channel: *hint}, true)
	} else {
		format, ok = MapSurface(info.Format)
	}
	if !ok {
		return none, &core.TextureFormatError{Surface: info.Format, Channel: hint}
	}

	usage, cpu := MapUsage(info.Usage)
	bind := MapBind(info.Bind)
	var misc MiscFlag
	if mipmap {
		misc |= MiscGenerateMips
	}

	initial, err := subresources(info, data)
	if err != nil {
		return none, err
	}

	gfx.Logger().Debug("d3d11: create texture",
		"kind", core.KindString(info.Kind), "levels", info.Levels, "format", uint32(format))

	levels := uint32(info.Levels)
	w, h, d, aa := info.Kind.Dimensions()
	var native Object
	switch info.Kind.(type) {
	case core.D1, core.D1Array:
		native, err = f.device.CreateTexture1D(&Texture1DDesc{
			Width:          w,
			MipLevels:      levels,
			ArraySize:      d,
			Format:         format,
			Usage:          usage,
			BindFlags:      bind,
			CPUAccessFlags: cpu,
			MiscFlags:      misc,
		}, initial)
	case core.D2, core.D2Array, core.Cube, core.CubeArray:
		switch info.Kind.(type) {
		case core.Cube, core.CubeArray:
			misc |= MiscTextureCube
		}
		native, err = f.device.CreateTexture2D(&Texture2DDesc{
			Width:          w,
			Height:         h,
			MipLevels:      levels,
			ArraySize:      d,
			Format:         format,
			SampleDesc:     MapAntiAlias(aa),
			Usage:          usage,
			BindFlags:      bind,
			CPUAccessFlags: cpu,
			MiscFlags:      misc,
		}, initial)
	case core.D3:
		native, err = f.device.CreateTexture3D(&Texture3DDesc{
			Width:          w,
			Height:         h,
			Depth:          d,
			MipLevels:      levels,
			Format:         format,
			Usage:          usage,
			BindFlags:      bind,
			CPUAccessFlags: cpu,
			MiscFlags:      misc,
		}, initial)
	default:
		return none, fmt.Errorf("%w: %T", core.ErrTextureKind, info.Kind)
	}
	if err != nil {
		logNativeFailure("d3d11: texture creation failed", err, "kind", core.KindString(info.Kind))
		return none, fmt.Errorf("%w: %w", core.ErrTextureKind, err)
	}

	return handle.Register(f.share.handles, &Texture{native: native, Info: info, Format: format}), nil
}

// subresources builds the initial data of a texture with pitches derived
// from each level's dimensions.
func subresources(info core.TextureInfo, data [][]byte) ([]SubresourceData, error) {
	if data == nil {
		return nil, nil
	}
	levels := int(info.Levels)
	total := levels * int(core.NumSlices(info.Kind))
	if len(data) > total {
		return nil, fmt.Errorf("%w: %d subresources of data for a texture with %d",
			core.ErrTextureKind, len(data), total)
	}

	bpp := info.Format.BytesPerTexel()
	out := make([]SubresourceData, len(data))
	for i, d := range data {
		w, h, _ := core.LevelDimensions(info.Kind, core.Level(i%levels))
		out[i] = SubresourceData{
			Data:       d,
			RowPitch:   w * bpp,
			SlicePitch: w * h * bpp,
		}
	}
	return out, nil
}
