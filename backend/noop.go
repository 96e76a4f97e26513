package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
)

// Driver name constants.
const (
	// DriverNoop is the name of the wgpu noop HAL driver. It keeps buffer
	// contents in memory and needs no GPU.
	DriverNoop = "noop"
)

// NoopDriver opens devices on the wgpu noop HAL.
type NoopDriver struct {
	// Limits requested from the adapter. The zero value means
	// gputypes.DefaultLimits.
	Limits *gputypes.Limits
}

// init registers the noop driver on package import.
func init() {
	Register(NoopDriver{})
}

// Name returns the driver identifier.
func (NoopDriver) Name() string { return DriverNoop }

// Open opens a noop device.
func (d NoopDriver) Open() (OpenDevice, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return OpenDevice{}, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return OpenDevice{}, errors.New("no adapters")
	}

	limits := gputypes.DefaultLimits()
	if d.Limits != nil {
		limits = *d.Limits
	}
	open, err := adapters[0].Adapter.Open(0, limits)
	if err != nil {
		instance.Destroy()
		return OpenDevice{}, fmt.Errorf("open adapter: %w", err)
	}

	return OpenDevice{
		Device: open.Device,
		Queue:  open.Queue,
		Limits: limits,
		Close: func() {
			open.Device.Destroy()
			instance.Destroy()
		},
	}, nil
}
