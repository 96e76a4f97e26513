// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// ImageOptions controls CreateTextureFromImage.
type ImageOptions struct {
	// Usage defaults to core.Const.
	Usage *core.Usage
	// Bind is added to shader-resource binding.
	Bind core.Bind
	// SRGB creates the texture with the typed sRGB format, with or without
	// WithTypedFormats. Otherwise the format follows the factory's setting.
	SRGB bool
	// Mipmaps builds the full mip chain on the CPU.
	Mipmaps bool
}

// CreateTextureFromImage uploads img as an RGBA8 D2 texture. Images larger
// than the device's maximum texture size are scaled down first.
func (f *Factory) CreateTextureFromImage(img image.Image, opts ImageOptions) (handle.Handle[*Texture], error) {
	b := img.Bounds()
	if b.Empty() {
		return handle.Handle[*Texture]{}, fmt.Errorf("%w: empty image", core.ErrTextureKind)
	}

	w, h := fitSize(b.Dx(), b.Dy(), int(f.share.caps.MaxTextureSize))
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(base, base.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(base, base.Bounds(), img, b, xdraw.Src, nil)
	}

	levels := []*image.RGBA{base}
	if opts.Mipmaps {
		levels = mipChain(base)
	}
	data := make([][]byte, len(levels))
	for i, l := range levels {
		data[i] = l.Pix
	}

	usage := core.Const
	if opts.Usage != nil {
		usage = *opts.Usage
	}
	channel := core.Unorm
	if opts.SRGB {
		channel = core.Srgb
	}
	info := core.TextureInfo{
		Kind:   core.D2{Width: uint32(w), Height: uint32(h)},
		Levels: core.Level(len(levels)),
		Format: core.R8G8B8A8,
		Bind:   core.BindShaderResource | opts.Bind,
		Usage:  usage,
	}
	return f.createTexture(info, &channel, f.typed || opts.SRGB, data, false)
}

// fitSize scales (w, h) down to fit limit on both axes, keeping the aspect
// ratio. A limit of 0 means no limit.
func fitSize(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// mipChain returns base followed by successively halved levels down to 1x1.
func mipChain(base *image.RGBA) []*image.RGBA {
	chain := []*image.RGBA{base}
	for cur := base; cur.Bounds().Dx() > 1 || cur.Bounds().Dy() > 1; {
		w := max(1, cur.Bounds().Dx()/2)
		h := max(1, cur.Bounds().Dy()/2)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(next, next.Bounds(), cur, cur.Bounds(), xdraw.Src, nil)
		chain = append(chain, next)
		cur = next
	}
	return chain
}
