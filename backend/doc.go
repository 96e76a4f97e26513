// Package backend selects the HAL driver a resource factory runs on.
//
// Drivers are registered via init() functions and selected at runtime by
// name. The wgpu noop driver is registered on import and needs no GPU, so
// it is always available.
//
// # Driver Selection
//
// Open builds a d3d11 factory on a named driver, or on the default
// (best available) driver when the name is empty:
//
//	f, err := backend.Open("", d3d11.WithStateCache(64))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Release()
//
// The factory owns the device. Releasing the factory destroys it.
//
// # Custom Drivers
//
// A Driver opens a hal.Device and hal.Queue. Register it under its name:
//
//	backend.Register(myDriver{})
//	f, err := backend.Open("mine")
package backend
