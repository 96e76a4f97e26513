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

// ErrOutOfBounds is returned when an update or mapping addresses memory
// outside the resource.
var ErrOutOfBounds = errors.New("d3d11: region out of bounds")

func (f *Factory) requireContext(op string) error {
	if f.context == nil {
		gfx.Logger().Warn("d3d11: operation needs a device context", "op", op)
		return fmt.Errorf("%w: %s without a device context", core.ErrUnsupported, op)
	}
	return nil
}

// UpdateBuffer writes data into a buffer at offset. Constant buffers can
// only be replaced whole. Dynamic buffers are written through a discarding
// map, so bytes outside the written range are undefined afterwards.
func (f *Factory) UpdateBuffer(h handle.Handle[*Buffer], data []byte, offset uint64) error {
	if err := f.requireContext("buffer update"); err != nil {
		return err
	}
	buf, err := Resolve(f, h)
	if err != nil {
		return err
	}
	end := offset + uint64(len(data))
	if end < offset || end > buf.Size {
		return fmt.Errorf("%w: [%d, %d) in a %d byte buffer", ErrOutOfBounds, offset, end, buf.Size)
	}

	switch buf.Info.Usage.Kind {
	case core.UsageConst:
		return fmt.Errorf("%w: immutable buffer update", core.ErrUnsupported)
	case core.UsageDynamic:
		m, err := f.context.Map(buf.native, 0, MapTypeWriteDiscard)
		if err != nil {
			return err
		}
		if uint64(len(m.Data)) < end {
			f.context.Unmap(buf.native, 0)
			return fmt.Errorf("%w: mapped %d bytes, need %d", ErrOutOfBounds, len(m.Data), end)
		}
		copy(m.Data[offset:], data)
		f.context.Unmap(buf.native, 0)
		return nil
	}

	var box *Box
	if buf.Info.Role == core.BufferRoleUniform {
		if offset != 0 || uint64(len(data)) != buf.Size {
			return fmt.Errorf("%w: constant buffers must be updated whole", ErrOutOfBounds)
		}
	} else {
		box = &Box{
			Left:   uint32(offset),
			Right:  uint32(end),
			Top:    0,
			Bottom: 1,
			Front:  0,
			Back:   1,
		}
	}
	return f.context.UpdateSubresource(buf.native, 0, box, data, 0, 0)
}

// TextureSubresource returns the native subresource index of a mip level in
// an array slice.
func TextureSubresource(level core.Level, slice, levels uint32) uint32 {
	return uint32(level) + slice*levels
}

// UpdateTexture writes a box of texels into one mip level. For array kinds
// img.ZOffset selects the layer; for cube kinds face selects the face
// within it.
func (f *Factory) UpdateTexture(h handle.Handle[*Texture], img core.ImageInfo, data []byte, face *core.CubeFace) error {
	if err := f.requireContext("texture update"); err != nil {
		return err
	}
	tex, err := Resolve(f, h)
	if err != nil {
		return err
	}
	if tex.Info.Usage.Kind == core.UsageConst {
		return fmt.Errorf("%w: immutable texture update", core.ErrUnsupported)
	}
	if img.Level >= tex.Info.Levels {
		return fmt.Errorf("%w: level %d of %d", ErrOutOfBounds, img.Level, tex.Info.Levels)
	}

	w, hgt, d := core.LevelDimensions(tex.Info.Kind, img.Level)
	box := Box{
		Left:   img.XOffset,
		Top:    img.YOffset,
		Front:  img.ZOffset,
		Right:  img.XOffset + img.Width,
		Bottom: img.YOffset + img.Height,
		Back:   img.ZOffset + max(1, img.Depth),
	}
	if box.Right > w || box.Bottom > hgt {
		return fmt.Errorf("%w: box %+v in a %dx%d level", ErrOutOfBounds, box, w, hgt)
	}

	var slice uint32
	switch tex.Info.Kind.(type) {
	case core.D3:
		if box.Back > d {
			return fmt.Errorf("%w: depth %d of %d", ErrOutOfBounds, box.Back, d)
		}
	case core.Cube, core.CubeArray:
		if face == nil {
			return fmt.Errorf("%w: cube update without a face", ErrOutOfBounds)
		}
		slice = img.ZOffset*core.CubeFaces + uint32(*face)
		box.Front, box.Back = 0, 1
	default:
		slice = img.ZOffset
		box.Front, box.Back = 0, 1
	}
	if slice >= core.NumSlices(tex.Info.Kind) {
		return fmt.Errorf("%w: slice %d", ErrOutOfBounds, slice)
	}

	bpp := tex.Info.Format.BytesPerTexel()
	rowPitch := img.Width * bpp
	depthPitch := img.Height * rowPitch
	if need := depthPitch * (box.Back - box.Front); uint32(len(data)) < need {
		return fmt.Errorf("%w: %d bytes of data, need %d", ErrOutOfBounds, len(data), need)
	}

	sub := TextureSubresource(img.Level, slice, uint32(tex.Info.Levels))
	return f.context.UpdateSubresource(tex.native, sub, &box, data, rowPitch, depthPitch)
}

// Mapping is CPU access to a mapped buffer. Data is valid until Unmap.
type Mapping struct {
	Data []byte

	context DeviceContext
	native  Object
	mapped  bool
}

// Unmap ends the mapping. Calling it again has no effect.
func (m *Mapping) Unmap() {
	if !m.mapped {
		return
	}
	m.mapped = false
	m.Data = nil
	m.context.Unmap(m.native, 0)
}

// MapBuffer maps a buffer for CPU access. The buffer's usage must allow the
// requested access: dynamic buffers can be written, staging buffers read or
// written according to their usage.
func (f *Factory) MapBuffer(h handle.Handle[*Buffer], access core.MapAccess) (*Mapping, error) {
	if err := f.requireContext("buffer map"); err != nil {
		return nil, err
	}
	buf, err := Resolve(f, h)
	if err != nil {
		return nil, err
	}
	if !buf.Info.Usage.AllowsMap(access) {
		return nil, fmt.Errorf("%w: buffer usage does not allow map access %d", core.ErrUnsupported, access)
	}

	var mt MapType
	switch {
	case buf.Info.Usage.Kind == core.UsageDynamic:
		mt = MapTypeWriteDiscard
	case access == core.MapReadWrite:
		mt = MapTypeReadWrite
	case access == core.MapRead:
		mt = MapTypeRead
	default:
		mt = MapTypeWrite
	}

	ms, err := f.context.Map(buf.native, 0, mt)
	if err != nil {
		logNativeFailure("d3d11: buffer map failed", err)
		return nil, err
	}
	data := ms.Data
	if uint64(len(data)) > buf.Size {
		data = data[:buf.Size]
	}
	return &Mapping{Data: data, context: f.context, native: buf.native, mapped: true}, nil
}
