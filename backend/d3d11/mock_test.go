// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"sync"
	"testing"

	"github.com/gogpu/gfx/core"
)

// mockObject is a reference-counted native object owned by a mockDevice.
type mockObject struct {
	dev  *mockDevice
	kind string
	desc any
	refs uint32
}

func (o *mockObject) AddRef() uint32 {
	o.dev.mu.Lock()
	defer o.dev.mu.Unlock()
	o.refs++
	return o.refs
}

func (o *mockObject) Release() uint32 {
	o.dev.mu.Lock()
	defer o.dev.mu.Unlock()
	if o.refs == 0 {
		o.dev.t.Errorf("%s released with no references", o.kind)
		return 0
	}
	o.refs--
	if o.refs == 0 {
		o.dev.live--
	}
	return o.refs
}

// mockDevice records every created object. Setting fail[kind] makes the
// next creations of that kind fail with the given error.
type mockDevice struct {
	t    *testing.T
	mu   sync.Mutex
	refs uint32
	live int
	caps *core.Capabilities

	fail    map[string]error
	created []*mockObject

	lastLayout     []InputElementDesc
	lastLayoutCode []byte
}

func newMockDevice(t *testing.T) *mockDevice {
	t.Helper()
	return &mockDevice{t: t, refs: 1, fail: make(map[string]error)}
}

func (d *mockDevice) AddRef() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refs++
	return d.refs
}

func (d *mockDevice) Release() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refs--
	return d.refs
}

func (d *mockDevice) create(kind string, desc any) (Object, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail[kind]; err != nil {
		return nil, err
	}
	o := &mockObject{dev: d, kind: kind, desc: desc, refs: 1}
	d.created = append(d.created, o)
	d.live++
	return o, nil
}

// last returns the most recent object of kind, or nil.
func (d *mockDevice) last(kind string) *mockObject {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.created) - 1; i >= 0; i-- {
		if d.created[i].kind == kind {
			return d.created[i]
		}
	}
	return nil
}

func (d *mockDevice) count(kind string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, o := range d.created {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (d *mockDevice) liveObjects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

func (d *mockDevice) CreateBuffer(desc *BufferDesc, initial *SubresourceData) (Object, error) {
	return d.create("buffer", *desc)
}

func (d *mockDevice) CreateTexture1D(desc *Texture1DDesc, initial []SubresourceData) (Object, error) {
	return d.create("texture1d", *desc)
}

func (d *mockDevice) CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Object, error) {
	return d.create("texture2d", *desc)
}

func (d *mockDevice) CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Object, error) {
	return d.create("texture3d", *desc)
}

func (d *mockDevice) CreateVertexShader(code []byte) (Object, error) {
	return d.create("vs", code)
}

func (d *mockDevice) CreateGeometryShader(code []byte) (Object, error) {
	return d.create("gs", code)
}

func (d *mockDevice) CreatePixelShader(code []byte) (Object, error) {
	return d.create("ps", code)
}

func (d *mockDevice) CreateInputLayout(elements []InputElementDesc, vertexCode []byte) (Object, error) {
	d.mu.Lock()
	d.lastLayout = append([]InputElementDesc(nil), elements...)
	d.lastLayoutCode = vertexCode
	d.mu.Unlock()
	return d.create("layout", elements)
}

func (d *mockDevice) CreateShaderResourceView(res Object, desc *ShaderResourceViewDesc) (Object, error) {
	return d.create("srv", *desc)
}

func (d *mockDevice) CreateRenderTargetView(res Object, desc *RenderTargetViewDesc) (Object, error) {
	return d.create("rtv", *desc)
}

func (d *mockDevice) CreateDepthStencilView(res Object, desc *DepthStencilViewDesc) (Object, error) {
	return d.create("dsv", *desc)
}

func (d *mockDevice) CreateSamplerState(desc *SamplerDesc) (Object, error) {
	return d.create("sampler", *desc)
}

func (d *mockDevice) CreateRasterizerState(desc *RasterizerDesc) (Object, error) {
	return d.create("rasterizer", *desc)
}

func (d *mockDevice) CreateDepthStencilState(desc *DepthStencilDesc) (Object, error) {
	return d.create("depthstencil", *desc)
}

func (d *mockDevice) CreateBlendState(desc *BlendDesc) (Object, error) {
	return d.create("blend", *desc)
}

// mockCapsDevice reports custom capabilities.
type mockCapsDevice struct {
	*mockDevice
}

func (d mockCapsDevice) Capabilities() core.Capabilities { return *d.caps }

// mockUpdate is one recorded UpdateSubresource call.
type mockUpdate struct {
	res         Object
	subresource uint32
	box         *Box
	data        []byte
	rowPitch    uint32
	depthPitch  uint32
}

// mockContext backs mapped resources with host memory of a fixed size.
type mockContext struct {
	size    int
	mapErr  error
	updates []mockUpdate
	maps    []MapType
	memory  map[Object][]byte
	mapped  map[Object]bool
	unmaps  int
}

func newMockContext(size int) *mockContext {
	return &mockContext{
		size:   size,
		memory: make(map[Object][]byte),
		mapped: make(map[Object]bool),
	}
}

func (c *mockContext) UpdateSubresource(res Object, sub uint32, box *Box, data []byte, rowPitch, depthPitch uint32) error {
	c.updates = append(c.updates, mockUpdate{res, sub, box, append([]byte(nil), data...), rowPitch, depthPitch})
	return nil
}

func (c *mockContext) Map(res Object, sub uint32, mt MapType) (MappedSubresource, error) {
	if c.mapErr != nil {
		return MappedSubresource{}, c.mapErr
	}
	mem, ok := c.memory[res]
	if !ok {
		mem = make([]byte, c.size)
		c.memory[res] = mem
	}
	c.maps = append(c.maps, mt)
	c.mapped[res] = true
	return MappedSubresource{Data: mem, RowPitch: uint32(len(mem))}, nil
}

func (c *mockContext) Unmap(res Object, sub uint32) {
	c.unmaps++
	c.mapped[res] = false
}

func newTestFactory(t *testing.T, opts ...Option) (*Factory, *mockDevice) {
	t.Helper()
	dev := newMockDevice(t)
	f, err := New(dev, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f, dev
}
