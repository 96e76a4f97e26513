// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package haldev

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend/d3d11"
)

// Context implements d3d11.DeviceContext with queue writes. Buffers are
// mapped through their CPU copy: reads fill it from the GPU and writes are
// uploaded on Unmap. Textures cannot be mapped.
type Context struct {
	device hal.Device
	queue  hal.Queue
}

// UpdateSubresource writes data into a buffer range or a texture region.
// A nil box covers the whole subresource.
func (c *Context) UpdateSubresource(res d3d11.Object, subresource uint32, box *d3d11.Box, data []byte, rowPitch, depthPitch uint32) error {
	switch r := res.(type) {
	case *Buffer:
		if subresource != 0 {
			return invalidArg("buffer subresource %d", subresource)
		}
		return c.writeBuffer(r, box, data)
	case *Texture:
		return c.writeTexture(r, subresource, box, data, rowPitch, depthPitch)
	default:
		return invalidArg("update of %T", res)
	}
}

func (c *Context) writeBuffer(b *Buffer, box *d3d11.Box, data []byte) error {
	start, end := uint32(0), b.desc.ByteWidth
	if box != nil {
		start, end = box.Left, box.Right
	}
	if start > end || end > b.desc.ByteWidth {
		return invalidArg("buffer range [%d, %d) of %d", start, end, b.desc.ByteWidth)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mapped {
		return invalidArg("update of mapped buffer")
	}
	n := copy(b.shadow[start:end], data)
	return c.flush(b, start, start+uint32(n))
}

// flush uploads the four byte aligned span covering [start, end) from the
// CPU copy. Caller must hold b.mu.
func (c *Context) flush(b *Buffer, start, end uint32) error {
	if end <= start {
		return nil
	}
	from := start &^ 3
	to := alignUp4(end)
	if err := c.queue.WriteBuffer(b.buffer, uint64(from), b.shadow[from:to]); err != nil {
		return halFailure("write buffer", err)
	}
	return nil
}

// readBack copies the GPU contents of a mappable buffer into its CPU copy.
// Caller must hold b.mu.
func (c *Context) readBack(b *Buffer) error {
	size := uint64(len(b.shadow))
	mapping, err := c.device.MapBuffer(b.buffer, 0, size)
	if err != nil {
		return halFailure("map buffer", err)
	}
	copy(b.shadow, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := c.device.UnmapBuffer(b.buffer); err != nil {
		return halFailure("unmap buffer", err)
	}
	return nil
}

// writeTexture uploads one subresource. Subresources are numbered mip
// first: mip + layer*mips.
func (c *Context) writeTexture(t *Texture, subresource uint32, box *d3d11.Box, data []byte, rowPitch, depthPitch uint32) error {
	mip := subresource % t.mips
	layer := subresource / t.mips
	if layer >= t.layers() {
		return invalidArg("subresource %d of %d", subresource, t.mips*t.layers())
	}
	if t.samples > 1 {
		return invalidArg("update of multisampled texture")
	}

	extent := t.mipExtent(mip)
	origin := hal.Origin3D{Z: layer}
	region := extent
	if box != nil {
		if box.Right > extent.Width || box.Bottom > extent.Height || box.Back > extent.DepthOrArrayLayers ||
			box.Left >= box.Right || box.Top >= box.Bottom || box.Front >= box.Back {
			return invalidArg("box %+v outside mip %d", *box, mip)
		}
		origin.X, origin.Y = box.Left, box.Top
		if t.dimension == gputypes.TextureDimension3D {
			origin.Z = box.Front
		}
		region = hal.Extent3D{
			Width:              box.Right - box.Left,
			Height:             box.Bottom - box.Top,
			DepthOrArrayLayers: box.Back - box.Front,
		}
	}

	if rowPitch == 0 {
		rowPitch = region.Width * t.format.size
	}
	rows := region.Height
	if depthPitch != 0 && rowPitch != 0 {
		rows = depthPitch / rowPitch
	}
	need := uint64(rowPitch)*uint64(rows)*uint64(region.DepthOrArrayLayers-1) +
		uint64(rowPitch)*uint64(region.Height-1) + uint64(region.Width*t.format.size)
	if uint64(len(data)) < need {
		return invalidArg("%d bytes for a %dx%dx%d region", len(data), region.Width, region.Height, region.DepthOrArrayLayers)
	}

	err := c.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: mip,
			Origin:   origin,
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  rowPitch,
			RowsPerImage: rows,
		},
		&region,
	)
	if err != nil {
		return halFailure("write texture", err)
	}
	return nil
}

// Map maps a buffer. Read maps copy the GPU contents into the CPU copy
// first; they need a staging buffer with read access.
func (c *Context) Map(res d3d11.Object, subresource uint32, mapType d3d11.MapType) (d3d11.MappedSubresource, error) {
	b, ok := res.(*Buffer)
	if !ok {
		return d3d11.MappedSubresource{}, fmt.Errorf("haldev: map of %T: %w", res, d3d11.ENotImpl)
	}
	if subresource != 0 {
		return d3d11.MappedSubresource{}, invalidArg("buffer subresource %d", subresource)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mapped {
		return d3d11.MappedSubresource{}, invalidArg("buffer already mapped")
	}

	switch mapType {
	case d3d11.MapTypeRead, d3d11.MapTypeReadWrite:
		if b.desc.CPUAccessFlags&d3d11.CPUAccessRead == 0 {
			return d3d11.MappedSubresource{}, invalidArg("read map without read access")
		}
		if err := c.readBack(b); err != nil {
			return d3d11.MappedSubresource{}, err
		}
	case d3d11.MapTypeWrite, d3d11.MapTypeWriteDiscard:
		if b.desc.CPUAccessFlags&d3d11.CPUAccessWrite == 0 {
			return d3d11.MappedSubresource{}, invalidArg("write map without write access")
		}
	default:
		return d3d11.MappedSubresource{}, invalidArg("map type %d", mapType)
	}

	b.mapped = true
	b.mapType = mapType
	size := b.desc.ByteWidth
	return d3d11.MappedSubresource{Data: b.shadow[:size], RowPitch: size, DepthPitch: size}, nil
}

// Unmap ends a mapping and uploads written data.
func (c *Context) Unmap(res d3d11.Object, subresource uint32) {
	b, ok := res.(*Buffer)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mapped {
		gfx.Logger().Warn("haldev: unmap of buffer that is not mapped")
		return
	}
	b.mapped = false
	if b.mapType == d3d11.MapTypeRead {
		return
	}
	if err := c.flush(b, 0, b.desc.ByteWidth); err != nil {
		gfx.Logger().Error("haldev: upload on unmap failed", "err", err)
	}
}

var _ d3d11.DeviceContext = (*Context)(nil)
