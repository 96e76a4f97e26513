package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/core"
)

type failingDriver struct{ name string }

func (d failingDriver) Name() string { return d.name }

func (failingDriver) Open() (OpenDevice, error) {
	return OpenDevice{}, errors.New("no adapter")
}

func TestNoopRegistered(t *testing.T) {
	if !IsRegistered(DriverNoop) {
		t.Fatal("noop driver not registered")
	}
	if !slices.Contains(Available(), DriverNoop) {
		t.Errorf("Available() = %v, want it to contain %q", Available(), DriverNoop)
	}
	if d := Default(); d == nil || d.Name() != DriverNoop {
		t.Errorf("Default() = %v, want noop", d)
	}
}

func TestRegistry(t *testing.T) {
	Register(failingDriver{name: "broken"})
	defer Unregister("broken")

	if Get("broken") == nil {
		t.Error("Get(broken) = nil after Register")
	}
	if names := Available(); !slices.IsSorted(names) {
		t.Errorf("Available() = %v, want sorted", names)
	}

	Unregister("broken")
	if IsRegistered("broken") {
		t.Error("broken still registered after Unregister")
	}
	if Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
}

func TestDefaultFallback(t *testing.T) {
	Unregister(DriverNoop)
	defer Register(NoopDriver{})

	Register(failingDriver{name: "b"})
	Register(failingDriver{name: "a"})
	defer Unregister("a")
	defer Unregister("b")

	if d := Default(); d == nil || d.Name() != "a" {
		t.Errorf("Default() = %v, want a", d)
	}
}

func TestOpen(t *testing.T) {
	f, err := Open("", d3d11.WithStateCache(4))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Release()

	if got := f.Capabilities().MaxTextureSize; got != 8192 {
		t.Errorf("MaxTextureSize = %d, want 8192", got)
	}
	h, err := f.CreateBuffer(core.BufferInfo{Role: core.BufferRoleUniform, Usage: core.Dynamic, Size: 16}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if err := f.UpdateBuffer(h, make([]byte, 16), 0); err != nil {
		t.Errorf("UpdateBuffer() error = %v", err)
	}
}

func TestOpenLimits(t *testing.T) {
	limits := gputypes.DefaultLimits()
	limits.MaxTextureDimension2D = 2048
	Register(NoopDriver{Limits: &limits})
	defer Register(NoopDriver{})

	f, err := Open(DriverNoop)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Release()
	if got := f.Capabilities().MaxTextureSize; got != 2048 {
		t.Errorf("MaxTextureSize = %d, want 2048", got)
	}
}

func TestOpenErrors(t *testing.T) {
	Register(failingDriver{name: "broken"})
	defer Unregister("broken")

	for _, name := range []string{"missing", "broken"} {
		t.Run(name, func(t *testing.T) {
			if _, err := Open(name); !errors.Is(err, ErrBackendNotAvailable) {
				t.Errorf("Open(%q) error = %v, want ErrBackendNotAvailable", name, err)
			}
		})
	}
}
