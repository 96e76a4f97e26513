// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"fmt"

	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/handle"
)

// SamplerDescFor returns the native sampler description of info. A set
// comparison function selects comparison filtering; anisotropy only
// applies to the anisotropic method.
func SamplerDescFor(info core.SamplerInfo) SamplerDesc {
	op := FilterOpProduct
	fn := ComparisonAlways
	if info.Comparison != nil {
		op = FilterOpComparison
		fn = MapFunction(*info.Comparison)
	}
	var aniso uint32
	if info.Filter == core.FilterAnisotropic {
		aniso = uint32(info.MaxAnisotropy)
	}
	return SamplerDesc{
		Filter:         MapFilter(info.Filter, op),
		AddressU:       MapWrap(info.Wrap[0]),
		AddressV:       MapWrap(info.Wrap[1]),
		AddressW:       MapWrap(info.Wrap[2]),
		MipLODBias:     info.LodBias,
		MaxAnisotropy:  aniso,
		ComparisonFunc: fn,
		BorderColor:    info.Border,
		MinLOD:         info.LodRange[0],
		MaxLOD:         info.LodRange[1],
	}
}

// CreateSampler creates a sampler state.
func (f *Factory) CreateSampler(info core.SamplerInfo) (handle.Handle[*Sampler], error) {
	desc := SamplerDescFor(info)
	native, err := f.device.CreateSamplerState(&desc)
	if err != nil {
		logNativeFailure("d3d11: sampler creation failed", err, "filter", uint32(desc.Filter))
		return handle.Handle[*Sampler]{}, fmt.Errorf("%w: %w", core.ErrSamplerCreation, err)
	}
	return handle.Register(f.share.handles, &Sampler{native: native, Info: info}), nil
}
