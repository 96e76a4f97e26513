// Command gfxprobe runs the d3d11 resource factory on a HAL device and
// prints how texture views resolve for every texture kind.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/backend/d3d11/haldev"
	"github.com/gogpu/gfx/core"
)

type probeKind struct {
	name   string
	kind   core.Kind
	levels core.Level
}

var kinds = []probeKind{
	{"1D", core.D1{Width: 256}, 9},
	{"1D array", core.D1Array{Width: 256, Layers: 4}, 9},
	{"2D", core.D2{Width: 256, Height: 256}, 9},
	{"2D MSAA", core.D2{Width: 256, Height: 256, AA: core.Multi(4)}, 1},
	{"2D array", core.D2Array{Width: 256, Height: 256, Layers: 4}, 9},
	{"3D", core.D3{Width: 64, Height: 64, Depth: 16}, 7},
	{"cube", core.Cube{Size: 64}, 7},
	{"cube array", core.CubeArray{Size: 64, Layers: 2}, 7},
}

func main() {
	var (
		configPath = flag.String("config", "", "factory config file (TOML)")
		driver     = flag.String("driver", "", "HAL driver (default: best available)")
		imagePath  = flag.String("image", "", "image to upload as a texture")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := run(os.Stdout, *driver, *configPath, *imagePath, *verbose); err != nil {
		log.Fatalf("gfxprobe: %v", err)
	}
}

func run(w io.Writer, driver, configPath, imagePath string, verbose bool) error {
	var cfg d3d11.Config
	if configPath != "" {
		var err error
		if cfg, err = d3d11.LoadConfig(configPath); err != nil {
			return err
		}
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	f, err := backend.Open(driver, cfg.Options()...)
	if err != nil {
		return err
	}
	defer f.Release()

	caps := f.Capabilities()
	fmt.Fprintf(w, "max texture size %d, unordered access %v\n\n", caps.MaxTextureSize, caps.UnorderedAccess)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tVIEW\tDIMENSION\tLEVELS\tSLICES\tDEVICE")
	for _, k := range kinds {
		for _, class := range []d3d11.ViewClass{d3d11.ShaderResource, d3d11.RenderTarget, d3d11.DepthStencil} {
			fmt.Fprintln(tw, probeRow(f, k, class))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if imagePath != "" {
		return uploadImage(w, f, imagePath)
	}
	return nil
}

// probeRow resolves the full view of one class and, when it resolves,
// creates it on the device.
func probeRow(f *d3d11.Factory, k probeKind, class d3d11.ViewClass) string {
	top := k.levels - 1
	if class != d3d11.ShaderResource {
		top = 0
	}
	addr, err := d3d11.ResolveView(k.kind, k.levels, class, nil, d3d11.ViewRange{Min: 0, Max: top})
	if err != nil {
		return fmt.Sprintf("%s\t%s\t-\t-\t-\t%v", k.name, class, err)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d+%d\t%s",
		k.name, class, addr.Dimension, addr.Levels, addr.FirstSlice, addr.Slices, createView(f, k, class))
}

func createView(f *d3d11.Factory, k probeKind, class d3d11.ViewClass) string {
	info := core.TextureInfo{
		Kind:   k.kind,
		Levels: k.levels,
		Format: core.R8G8B8A8,
		Bind:   core.BindShaderResource | core.BindRenderTarget,
		Usage:  core.GPUOnly,
	}
	channel := core.Unorm
	if class == d3d11.DepthStencil {
		info.Format = core.D24S8
		info.Bind = core.BindDepthStencil
	}
	tex, err := f.CreateTexture(info, nil)
	if err != nil {
		return "texture: " + err.Error()
	}
	defer d3d11.Release(f, tex)

	switch class {
	case d3d11.ShaderResource:
		h, err := f.ViewTextureAsShaderResource(tex, core.ResourceDesc{Channel: channel, Max: k.levels - 1})
		if err != nil {
			return err.Error()
		}
		defer d3d11.Release(f, h)
		v, _ := d3d11.Resolve(f, h)
		return describe(v.Native())
	case d3d11.RenderTarget:
		h, err := f.ViewTextureAsRenderTarget(tex, core.RenderDesc{Channel: channel})
		if err != nil {
			return err.Error()
		}
		defer d3d11.Release(f, h)
		v, _ := d3d11.Resolve(f, h)
		return describe(v.Native())
	default:
		h, err := f.ViewTextureAsDepthStencil(tex, core.DepthStencilDesc{})
		if err != nil {
			return err.Error()
		}
		defer d3d11.Release(f, h)
		v, _ := d3d11.Resolve(f, h)
		return describe(v.Native())
	}
}

func describe(native d3d11.Object) string {
	v, ok := native.(*haldev.View)
	if !ok {
		return fmt.Sprintf("%T", native)
	}
	d := v.Desc()
	return fmt.Sprintf("%v %v mips %d+%d layers %d+%d",
		d.Dimension, d.Format, d.BaseMipLevel, d.MipLevelCount, d.BaseArrayLayer, d.ArrayLayerCount)
}

func uploadImage(w io.Writer, f *d3d11.Factory, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	h, err := f.CreateTextureFromImage(img, d3d11.ImageOptions{SRGB: true, Mipmaps: true})
	if err != nil {
		return err
	}
	defer d3d11.Release(f, h)

	tex, _ := d3d11.Resolve(f, h)
	width, height, _, _ := tex.Info.Kind.Dimensions()
	fmt.Fprintf(w, "\n%s (%s %dx%d): %dx%d texture with %d levels\n",
		path, format, img.Bounds().Dx(), img.Bounds().Dy(), width, height, tex.Info.Levels)
	return nil
}
