// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package core defines the hardware-agnostic resource model shared by every
// gfx backend.
//
// The types here describe what a caller wants (a buffer of a given role, a
// texture of a given kind, a view onto one of its layers) without naming any
// native format code or device flag. Backends such as backend/d3d11 translate
// these descriptors into native objects.
//
// # Formats
//
// A [Format] pairs a [SurfaceType] (bit layout) with a [ChannelType] (how the
// bits are interpreted). Backends decide which pairs they can represent.
//
// # Texture kinds
//
// [Kind] is a closed sum type: [D1], [D1Array], [D2], [D2Array], [D3], [Cube]
// and [CubeArray]. Code that switches over a Kind should handle every variant;
// the unexported marker method keeps the set closed to this package.
//
// # Errors
//
// Creation failures are reported with the sentinel errors declared in
// errors.go, optionally wrapped by a typed error carrying the failing input.
// Use [errors.Is] and [errors.As] to inspect them.
package core
