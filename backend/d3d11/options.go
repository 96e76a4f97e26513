// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

// Option configures a Factory during creation.
//
// Example:
//
//	f, err := d3d11.New(dev,
//	    d3d11.WithTypedFormats(true),
//	    d3d11.WithContext(ctx),
//	)
type Option func(*options)

type options struct {
	typed     bool
	reflector Reflector
	states    StateTranslator
	context   DeviceContext
	share     *Share
	hashKey   []byte
}

func defaultOptions() options {
	return options{
		reflector: NopReflector{},
		states:    NativeStates{},
	}
}

// WithTypedFormats creates textures with the typed format selected by the
// channel hint instead of the typeless surface family. Depth-stencil
// textures always use the typeless family.
func WithTypedFormats(enabled bool) Option {
	return func(o *options) {
		o.typed = enabled
	}
}

// WithReflector sets the shader reflection collaborator. The default
// reflects nothing.
func WithReflector(r Reflector) Option {
	return func(o *options) {
		if r != nil {
			o.reflector = r
		}
	}
}

// WithStates sets the render-state translation collaborator.
func WithStates(s StateTranslator) Option {
	return func(o *options) {
		if s != nil {
			o.states = s
		}
	}
}

// WithStateCache caches up to limit native state objects of each kind,
// keyed by their native description. A limit of 0 disables the cache.
func WithStateCache(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.states = NewCachedStates(limit)
		}
	}
}

// WithContext sets the immediate context used by buffer and texture updates
// and by mapping. Without one those operations return core.ErrUnsupported.
func WithContext(ctx DeviceContext) Option {
	return func(o *options) {
		o.context = ctx
	}
}

// WithShare makes the factory register into an existing store instead of
// creating its own.
func WithShare(s *Share) Option {
	return func(o *options) {
		o.share = s
	}
}

// WithHashKey sets the key of the shader content hash. It only applies when
// the factory creates its own store.
func WithHashKey(key []byte) Option {
	return func(o *options) {
		o.hashKey = key
	}
}
