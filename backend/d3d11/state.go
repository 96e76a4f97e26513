// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"sync"

	"github.com/gogpu/gfx/core"
	"github.com/gogpu/gfx/internal/cache"
)

// StateTranslator turns rasterizer, depth-stencil and blend descriptions
// into native state objects. Each returned object carries one reference
// owned by the caller.
type StateTranslator interface {
	Rasterizer(dev Device, r core.Rasterizer, scissor bool) (Object, error)
	DepthStencil(dev Device, ds core.DepthStencilInfo) (Object, error)
	Blend(dev Device, targets []core.ColorTargetDesc) (Object, error)
}

// NativeStates creates a new native object on every call.
type NativeStates struct{}

// Rasterizer creates a rasterizer state.
func (NativeStates) Rasterizer(dev Device, r core.Rasterizer, scissor bool) (Object, error) {
	desc := MapRasterizer(r, scissor)
	return dev.CreateRasterizerState(&desc)
}

// DepthStencil creates a depth-stencil state.
func (NativeStates) DepthStencil(dev Device, ds core.DepthStencilInfo) (Object, error) {
	desc := MapDepthStencil(ds)
	return dev.CreateDepthStencilState(&desc)
}

// Blend creates a blend state.
func (NativeStates) Blend(dev Device, targets []core.ColorTargetDesc) (Object, error) {
	desc := MapBlend(targets)
	return dev.CreateBlendState(&desc)
}

// CachedStates reuses native state objects with identical native
// descriptions. The cache holds one reference per entry and releases it on
// eviction. A CachedStates must only be used with a single device.
type CachedStates struct {
	// mu keeps an entry alive between lookup and AddRef.
	mu            sync.Mutex
	rasterizers   *cache.Cache[RasterizerDesc, Object]
	depthStencils *cache.Cache[DepthStencilDesc, Object]
	blends        *cache.Cache[BlendDesc, Object]
}

// NewCachedStates creates caches of up to limit objects per state kind.
func NewCachedStates(limit int) *CachedStates {
	return &CachedStates{
		rasterizers:   cache.New[RasterizerDesc, Object](limit, releaseCached[RasterizerDesc]),
		depthStencils: cache.New[DepthStencilDesc, Object](limit, releaseCached[DepthStencilDesc]),
		blends:        cache.New[BlendDesc, Object](limit, releaseCached[BlendDesc]),
	}
}

func releaseCached[K comparable](_ K, o Object) { o.Release() }

// cachedObject returns the object for key, creating and caching it on a
// miss. The caller receives its own reference either way.
func cachedObject[K comparable](mu *sync.Mutex, c *cache.Cache[K, Object], key K, create func() (Object, error)) (Object, error) {
	mu.Lock()
	defer mu.Unlock()

	obj, _, err := c.GetOrCreate(key, create)
	if err != nil {
		return nil, err
	}
	obj.AddRef()
	return obj, nil
}

// Rasterizer returns a cached or new rasterizer state.
func (c *CachedStates) Rasterizer(dev Device, r core.Rasterizer, scissor bool) (Object, error) {
	desc := MapRasterizer(r, scissor)
	return cachedObject(&c.mu, c.rasterizers, desc, func() (Object, error) {
		return dev.CreateRasterizerState(&desc)
	})
}

// DepthStencil returns a cached or new depth-stencil state.
func (c *CachedStates) DepthStencil(dev Device, ds core.DepthStencilInfo) (Object, error) {
	desc := MapDepthStencil(ds)
	return cachedObject(&c.mu, c.depthStencils, desc, func() (Object, error) {
		return dev.CreateDepthStencilState(&desc)
	})
}

// Blend returns a cached or new blend state.
func (c *CachedStates) Blend(dev Device, targets []core.ColorTargetDesc) (Object, error) {
	desc := MapBlend(targets)
	return cachedObject(&c.mu, c.blends, desc, func() (Object, error) {
		return dev.CreateBlendState(&desc)
	})
}

// Len returns the number of cached objects of all kinds.
func (c *CachedStates) Len() int {
	return c.rasterizers.Len() + c.depthStencils.Len() + c.blends.Len()
}

// Stats returns the statistics of the rasterizer, depth-stencil and blend
// caches.
func (c *CachedStates) Stats() [3]cache.Stats {
	return [3]cache.Stats{c.rasterizers.Stats(), c.depthStencils.Stats(), c.blends.Stats()}
}

// Clear releases every cached object.
func (c *CachedStates) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rasterizers.Clear()
	c.depthStencils.Clear()
	c.blends.Clear()
}
