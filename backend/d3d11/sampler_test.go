// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx/core"
)

func TestSamplerDescFor(t *testing.T) {
	tests := []struct {
		name   string
		info   core.SamplerInfo
		filter Filter
		cmp    ComparisonFunc
		aniso  uint32
	}{
		{
			name:   "trilinear",
			info:   core.NewSamplerInfo(core.FilterTrilinear, core.WrapClamp),
			filter: FilterMinMagMipLinear, cmp: ComparisonAlways,
		},
		{
			name: "anisotropic",
			info: func() core.SamplerInfo {
				s := core.NewSamplerInfo(core.FilterAnisotropic, core.WrapTile)
				s.MaxAnisotropy = 16
				return s
			}(),
			filter: FilterAnisotropic, cmp: ComparisonAlways, aniso: 16,
		},
		{
			name: "anisotropy ignored for bilinear",
			info: func() core.SamplerInfo {
				s := core.NewSamplerInfo(core.FilterBilinear, core.WrapTile)
				s.MaxAnisotropy = 8
				return s
			}(),
			filter: FilterMinMagLinearMipPoint, cmp: ComparisonAlways,
		},
		{
			name: "shadow comparison",
			info: func() core.SamplerInfo {
				s := core.NewSamplerInfo(core.FilterBilinear, core.WrapBorder)
				s.Comparison = core.ComparisonPtr(core.LessEqual)
				return s
			}(),
			filter: FilterMinMagLinearMipPoint | FilterComparison, cmp: ComparisonLessEqual,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := SamplerDescFor(tt.info)
			if desc.Filter != tt.filter || desc.ComparisonFunc != tt.cmp || desc.MaxAnisotropy != tt.aniso {
				t.Errorf("desc = %+v, want filter %#x, cmp %d, aniso %d", desc, tt.filter, tt.cmp, tt.aniso)
			}
			if desc.MinLOD != tt.info.LodRange[0] || desc.MaxLOD != tt.info.LodRange[1] {
				t.Errorf("LOD range = [%v, %v]", desc.MinLOD, desc.MaxLOD)
			}
		})
	}
}

func TestSamplerDescWrapPerAxis(t *testing.T) {
	info := core.SamplerInfo{Wrap: [3]core.WrapMode{core.WrapMirror, core.WrapClamp, core.WrapBorder}}
	desc := SamplerDescFor(info)
	if desc.AddressU != AddressMirror || desc.AddressV != AddressClamp || desc.AddressW != AddressBorder {
		t.Errorf("address modes = %d/%d/%d", desc.AddressU, desc.AddressV, desc.AddressW)
	}
}

func TestCreateSampler(t *testing.T) {
	f, dev := newTestFactory(t)
	info := core.NewSamplerInfo(core.FilterScale, core.WrapTile)
	info.Border = [4]float32{1, 0, 0, 1}

	h, err := f.CreateSampler(info)
	if err != nil {
		t.Fatalf("CreateSampler() error = %v", err)
	}
	if got := dev.last("sampler").desc.(SamplerDesc).BorderColor; got != info.Border {
		t.Errorf("BorderColor = %v, want %v", got, info.Border)
	}
	s, _ := Resolve(f, h)
	if s.Info.Filter != core.FilterScale {
		t.Errorf("Info.Filter = %v", s.Info.Filter)
	}
}

func TestCreateSamplerFailure(t *testing.T) {
	f, dev := newTestFactory(t)
	dev.fail["sampler"] = EOutOfMemory
	_, err := f.CreateSampler(core.NewSamplerInfo(core.FilterScale, core.WrapTile))
	if !errors.Is(err, core.ErrSamplerCreation) || !errors.Is(err, EOutOfMemory) {
		t.Errorf("error = %v, want ErrSamplerCreation wrapping E_OUTOFMEMORY", err)
	}
}
