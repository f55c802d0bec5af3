package device

import "github.com/go-gl/mathgl/mgl32"

// DeviceBuilderOption is a functional option applied to a device during construction via NewDevice.
type DeviceBuilderOption func(*device)

// WithClearColor sets the color applied by Init and used by Clear.
//
// Parameters:
//   - color: RGBA clear color
//
// Returns:
//   - DeviceBuilderOption: a function that applies the clear color option to a device
func WithClearColor(color mgl32.Vec4) DeviceBuilderOption {
	return func(d *device) {
		d.clearColor = color
	}
}

// WithRecording enables or disables call recording. Recording an OpenGL device is
// useful to trace a single frame.
//
// Parameters:
//   - enabled: true to record calls
//
// Returns:
//   - DeviceBuilderOption: a function that applies the recording option to a device
func WithRecording(enabled bool) DeviceBuilderOption {
	return func(d *device) {
		d.recording = enabled
	}
}

// WithUnresolvedUniform makes the headless backend report InvalidLocation for the given
// uniform names, simulating uniforms the GPU compiler optimized out or that do not exist.
// Has no effect on other backends.
//
// Parameters:
//   - names: full uniform names
//
// Returns:
//   - DeviceBuilderOption: a function that applies the option to a device
func WithUnresolvedUniform(names ...string) DeviceBuilderOption {
	return func(d *device) {
		for _, name := range names {
			d.unresolved[name] = struct{}{}
		}
	}
}
