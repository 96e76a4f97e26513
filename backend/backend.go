package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend/d3d11"
	"github.com/gogpu/gfx/backend/d3d11/haldev"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered
	// or cannot open a device.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// OpenDevice is an opened HAL device together with the function that
// tears it down.
type OpenDevice struct {
	Device hal.Device
	Queue  hal.Queue

	// Limits the device was opened with. The zero value means
	// gputypes.DefaultLimits.
	Limits gputypes.Limits

	// Close destroys the device and whatever the driver created to reach it.
	Close func()
}

// Driver opens HAL devices for one graphics API.
type Driver interface {
	// Name returns the driver identifier (e.g., "noop").
	Name() string

	// Open opens a device on the first usable adapter.
	Open() (OpenDevice, error)
}

// Open opens a device on the named driver and builds a resource factory on
// it. An empty name selects the default driver. The factory owns the device:
// releasing the factory closes it.
func Open(name string, opts ...d3d11.Option) (*d3d11.Factory, error) {
	drv := Default()
	if name != "" {
		drv = Get(name)
	}
	if drv == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}

	od, err := drv.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendNotAvailable, drv.Name(), err)
	}
	if od.Device == nil || od.Queue == nil {
		return nil, fmt.Errorf("%w: %s: no device", ErrBackendNotAvailable, drv.Name())
	}
	closeDevice := od.Close
	if closeDevice == nil {
		closeDevice = od.Device.Destroy
	}

	devOpts := []haldev.Option{haldev.WithOnRelease(closeDevice)}
	if od.Limits != (gputypes.Limits{}) {
		devOpts = append(devOpts, haldev.WithLimits(od.Limits))
	}
	dev, err := haldev.New(od.Device, od.Queue, devOpts...)
	if err != nil {
		closeDevice()
		return nil, err
	}

	all := append([]d3d11.Option{
		d3d11.WithReflector(dev.Reflector()),
		d3d11.WithContext(dev.Context()),
	}, opts...)
	f, err := d3d11.New(dev, all...)
	if err != nil {
		dev.Release()
		return nil, err
	}
	gfx.Logger().Debug("backend: opened device", "driver", drv.Name())
	return f, nil
}
