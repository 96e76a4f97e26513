// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import (
	"errors"
	"fmt"
)

// Buffer creation errors.
var (
	// ErrUnsupportedBind is returned when a buffer requests render-target or
	// depth-stencil binding.
	ErrUnsupportedBind = errors.New("gfx: bind flags not supported for buffers")

	// ErrBufferOther covers invalid index strides and native failures.
	ErrBufferOther = errors.New("gfx: buffer creation failed")
)

// Texture creation errors.
var (
	// ErrTextureFormat is returned when the surface/channel pair has no
	// native representation.
	ErrTextureFormat = errors.New("gfx: texture format not supported")

	// ErrTextureKind is returned when the device rejects a texture of the
	// requested dimensionality.
	ErrTextureKind = errors.New("gfx: texture kind not supported")
)

// Shader and program errors.
var (
	// ErrStageNotSupported is returned for stages the device cannot compile.
	ErrStageNotSupported = errors.New("gfx: shader stage not supported")

	// ErrCompilationFailed is returned when the device rejects shader bytecode.
	ErrCompilationFailed = errors.New("gfx: shader compilation failed")

	// ErrProgramCreation is returned when a program cannot be linked.
	ErrProgramCreation = errors.New("gfx: program creation failed")
)

// Pipeline errors.
var (
	// ErrPipelineCreation is the umbrella error for pipeline failures.
	ErrPipelineCreation = errors.New("gfx: pipeline creation failed")

	// ErrShaderCacheMiss means a program's vertex bytecode is no longer
	// cached. It indicates a bug, not a recoverable condition.
	ErrShaderCacheMiss = errors.New("gfx: vertex shader bytecode missing from cache")
)

// View errors.
var (
	ErrViewChannel = errors.New("gfx: view channel not supported")
	ErrBadLevel    = errors.New("gfx: bad mip level")
	ErrBadLayer    = errors.New("gfx: bad array layer")
	ErrUnsupported = errors.New("gfx: operation not supported")
)

// ErrSamplerCreation is returned when the device rejects a sampler state.
var ErrSamplerCreation = errors.New("gfx: sampler creation failed")

// UnsupportedBindError reports the bind flags rejected for a buffer.
type UnsupportedBindError struct {
	Bind Bind
}

func (e *UnsupportedBindError) Error() string {
	return "gfx: bind flags not supported for buffers: " + e.Bind.String()
}

func (e *UnsupportedBindError) Unwrap() error { return ErrUnsupportedBind }

// TextureFormatError reports a surface/channel pair without a native format.
type TextureFormatError struct {
	Surface SurfaceType
	// Channel is nil when no channel hint was given.
	Channel *ChannelType
}

func (e *TextureFormatError) Error() string {
	if e.Channel == nil {
		return fmt.Sprintf("gfx: texture format not supported: %v", e.Surface)
	}
	return fmt.Sprintf("gfx: texture format not supported: %v with channel %v", e.Surface, *e.Channel)
}

func (e *TextureFormatError) Unwrap() error { return ErrTextureFormat }

// StageNotSupportedError reports a shader stage the device cannot create.
type StageNotSupportedError struct {
	Stage Stage
}

func (e *StageNotSupportedError) Error() string {
	return "gfx: shader stage not supported: " + e.Stage.String()
}

func (e *StageNotSupportedError) Unwrap() error { return ErrStageNotSupported }

// CompilationError carries the device diagnostic of a rejected shader.
type CompilationError struct {
	Stage Stage
	// Diagnostic is the device's message or result code.
	Diagnostic string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("gfx: %v shader compilation failed: %s", e.Stage, e.Diagnostic)
}

func (e *CompilationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCompilationFailed}
	}
	return []error{ErrCompilationFailed, e.Err}
}

// PipelineFailure classifies a pipeline creation error.
type PipelineFailure uint8

// Pipeline failure reasons.
const (
	MisalignedAttribute PipelineFailure = iota
	UnmappedFormat
	ShaderCacheMiss
	InputLayout
	RenderState
	UnknownTopology
	StaleProgram
)

func (r PipelineFailure) String() string {
	switch r {
	case MisalignedAttribute:
		return "misaligned attribute offset"
	case UnmappedFormat:
		return "unmapped attribute format"
	case ShaderCacheMiss:
		return "vertex bytecode not cached"
	case InputLayout:
		return "input layout rejected"
	case RenderState:
		return "render state rejected"
	case UnknownTopology:
		return "unknown primitive topology"
	case StaleProgram:
		return "program handle not valid"
	default:
		return "unknown"
	}
}

// PipelineError reports why a pipeline state could not be created.
type PipelineError struct {
	Reason PipelineFailure
	// Attribute names the offending vertex attribute, if any.
	Attribute string
	Err       error
}

func (e *PipelineError) Error() string {
	msg := "gfx: pipeline creation failed: " + e.Reason.String()
	if e.Attribute != "" {
		msg += " (" + e.Attribute + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PipelineError) Unwrap() []error {
	errs := []error{ErrPipelineCreation}
	if e.Reason == ShaderCacheMiss {
		errs = append(errs, ErrShaderCacheMiss)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ViewFailure classifies a view creation error.
type ViewFailure uint8

// View failure reasons.
const (
	ViewChannel ViewFailure = iota
	ViewBadLevel
	ViewBadLayer
	ViewUnsupported
)

// ViewError reports why a texture view could not be created.
type ViewError struct {
	Reason  ViewFailure
	Channel ChannelType
	Level   Level
	Layer   Layer
	Err     error
}

func (e *ViewError) Error() string {
	var msg string
	switch e.Reason {
	case ViewChannel:
		msg = fmt.Sprintf("gfx: view channel not supported: %v", e.Channel)
	case ViewBadLevel:
		msg = fmt.Sprintf("gfx: bad mip level %d", e.Level)
	case ViewBadLayer:
		msg = fmt.Sprintf("gfx: bad array layer %d", e.Layer)
	default:
		msg = "gfx: view not supported"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ViewError) Unwrap() []error {
	var sentinel error
	switch e.Reason {
	case ViewChannel:
		sentinel = ErrViewChannel
	case ViewBadLevel:
		sentinel = ErrBadLevel
	case ViewBadLayer:
		sentinel = ErrBadLayer
	default:
		sentinel = ErrUnsupported
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}
