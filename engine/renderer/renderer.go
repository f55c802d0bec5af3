package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/values"
	"github.com/Carmen-Shannon/oxy-forward/engine/resource"
)

// AmbientName is the engine value holding the ambient light color, read by shaders as
// R_ambient.
const AmbientName = "ambient"

// DefaultAmbient is the ambient light color of a new RenderingEngine.
var DefaultAmbient = mgl32.Vec3{0.1, 0.1, 0.1}

// UniformStructResolver resolves engine-prefixed uniforms of struct types the engine does
// not know. It returns shader.ErrUnresolvableUniform for types it does not handle either.
type UniformStructResolver func(entry shader.UniformEntry, ctx shader.DrawContext) (shader.ResolvedValue, error)

// renderingEngine is the implementation of the RenderingEngine interface.
type renderingEngine struct {
	dev     device.Device
	library resource.Library

	values       *values.Store
	samplerSlots map[string]int32
	nextSlot     int32

	ambientProgram shader.Program
	lightPrograms  map[light.LightType]shader.Program
	programHandles []*resource.Handle[shader.Program]
	ownedPrograms  []shader.Program

	lights       []light.Light
	frameCamera  camera.Camera
	mainCamera   camera.Camera
	structLookup UniformStructResolver
}

// RenderingEngine draws a scene tree with forward shading: one ambient pass, then one
// additive pass per registered light. It is the engine side of uniform resolution and
// the registrar lights and cameras report to while the scene is collected.
// It belongs to the thread that owns the GL context and is not safe for concurrent use.
type RenderingEngine interface {
	shader.EngineSource
	game_object.Registrar

	// Render draws one frame of the tree rooted at root. Panics when there is no camera,
	// before anything is drawn, and when any uniform cannot be resolved.
	//
	// Parameters:
	//   - root: the scene root
	Render(root game_object.GameObject)

	// Lights returns the lights registered for the current frame, in collection order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// SetMainCamera sets the camera used when the scene registers none.
	//
	// Parameters:
	//   - c: the camera, or nil
	SetMainCamera(c camera.Camera)

	// Ambient returns the ambient light color.
	Ambient() mgl32.Vec3

	// SetAmbient sets the ambient light color.
	SetAmbient(color mgl32.Vec3)

	// SetVec3 sets a named engine vector, read by shaders as R_<name>.
	SetVec3(name string, v mgl32.Vec3)

	// SetFloat sets a named engine scalar, read by shaders as R_<name>.
	SetFloat(name string, v float32)

	// Program returns the program used for lights of type lt.
	//
	// Parameters:
	//   - lt: the light type
	//
	// Returns:
	//   - shader.Program: the program, or nil if none is configured
	Program(lt light.LightType) shader.Program

	// AmbientProgram returns the program used by the ambient pass.
	AmbientProgram() shader.Program

	// Resize sets the viewport and the main camera's aspect ratio.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Device returns the device the engine draws with.
	Device() device.Device

	// Release releases the built-in programs the engine loaded.
	Release()
}

var _ RenderingEngine = &renderingEngine{}

// NewRenderingEngine creates a RenderingEngine on dev. Programs not given through options
// are loaded from the built-in forward programs, through the library when one is set.
//
// Parameters:
//   - dev: the device to draw with
//   - options: functional options to configure the engine
//
// Returns:
//   - RenderingEngine: the engine
func NewRenderingEngine(dev device.Device, options ...RenderingEngineBuilderOption) RenderingEngine {
	if dev == nil {
		panic("renderer: rendering engine needs a device")
	}
	r := &renderingEngine{
		dev:    dev,
		values: values.NewStore(),
		samplerSlots: map[string]int32{
			material.Diffuse:   0,
			material.NormalMap: 1,
			material.DispMap:   2,
		},
		nextSlot:      3,
		lightPrograms: make(map[light.LightType]shader.Program),
	}
	r.values.SetVec3(AmbientName, DefaultAmbient)

	for _, option := range options {
		option(r)
	}

	if r.ambientProgram == nil {
		r.ambientProgram = r.loadBuiltin(shader.ProgramForwardAmbient)
	}
	builtin := map[light.LightType]string{
		light.LightTypeDirectional: shader.ProgramForwardDirectional,
		light.LightTypePoint:       shader.ProgramForwardPoint,
		light.LightTypeSpot:        shader.ProgramForwardSpot,
	}
	for lt, name := range builtin {
		if r.lightPrograms[lt] == nil {
			r.lightPrograms[lt] = r.loadBuiltin(name)
		}
	}
	return r
}

func (r *renderingEngine) loadBuiltin(name string) shader.Program {
	if r.library != nil {
		h := r.library.Program(name)
		r.programHandles = append(r.programHandles, h)
		return h.Value()
	}
	p := shader.LoadProgram(r.dev, shader.BuiltinFS(), name)
	r.ownedPrograms = append(r.ownedPrograms, p)
	return p
}

func (r *renderingEngine) Render(root game_object.GameObject) {
	r.lights = r.lights[:0]
	r.frameCamera = nil
	root.CollectAll(r)

	if r.MainCamera() == nil {
		panic(fmt.Sprintf("renderer: %v", shader.ErrMissingCamera))
	}

	r.dev.Clear()
	r.renderPass(root, r.ambientProgram, shader.Pass{Engine: r})

	r.dev.EnableBlend(device.BlendOne, device.BlendOne)
	r.dev.SetDepthMask(false)
	r.dev.SetDepthFunc(device.DepthEqual)

	for _, l := range r.lights {
		if !l.Enabled() {
			continue
		}
		program := r.lightPrograms[l.Type()]
		if program == nil {
			panic(fmt.Sprintf("renderer: no program for %s lights", l.Type()))
		}
		r.renderPass(root, program, shader.Pass{Engine: r, Light: l})
	}

	r.dev.DisableBlend()
	r.dev.SetDepthFunc(device.DepthLess)
	r.dev.SetDepthMask(true)
}

func (r *renderingEngine) renderPass(root game_object.GameObject, program shader.Program, pass shader.Pass) {
	program.Bind()
	if err := root.RenderAll(program, pass); err != nil {
		panic(fmt.Sprintf("renderer: %v", err))
	}
}

func (r *renderingEngine) AddLight(l light.Light) {
	r.lights = append(r.lights, l)
}

func (r *renderingEngine) AddCamera(c camera.Camera) {
	r.frameCamera = c
}

func (r *renderingEngine) Lights() []light.Light {
	out := make([]light.Light, len(r.lights))
	copy(out, r.lights)
	return out
}

func (r *renderingEngine) MainCamera() camera.Camera {
	if r.frameCamera != nil {
		return r.frameCamera
	}
	return r.mainCamera
}

func (r *renderingEngine) SetMainCamera(c camera.Camera) {
	r.mainCamera = c
}

func (r *renderingEngine) Vec3(name string) mgl32.Vec3 {
	return r.values.Vec3(name)
}

func (r *renderingEngine) Float(name string) float32 {
	return r.values.Float(name)
}

func (r *renderingEngine) SetVec3(name string, v mgl32.Vec3) {
	r.values.SetVec3(name, v)
}

func (r *renderingEngine) SetFloat(name string, v float32) {
	r.values.SetFloat(name, v)
}

func (r *renderingEngine) Ambient() mgl32.Vec3 {
	return r.values.Vec3(AmbientName)
}

func (r *renderingEngine) SetAmbient(color mgl32.Vec3) {
	r.values.SetVec3(AmbientName, color)
}

func (r *renderingEngine) SamplerSlot(name string) int32 {
	if slot, ok := r.samplerSlots[name]; ok {
		return slot
	}
	slot := r.nextSlot
	r.samplerSlots[name] = slot
	r.nextSlot++
	return slot
}

func (r *renderingEngine) ResolveUniformStruct(entry shader.UniformEntry, ctx shader.DrawContext) (shader.ResolvedValue, error) {
	if r.structLookup != nil {
		return r.structLookup(entry, ctx)
	}
	return shader.ResolvedValue{}, fmt.Errorf("%w: %s has engine struct type %s", shader.ErrUnresolvableUniform, entry.Name, entry.RootType)
}

func (r *renderingEngine) Program(lt light.LightType) shader.Program {
	return r.lightPrograms[lt]
}

func (r *renderingEngine) AmbientProgram() shader.Program {
	return r.ambientProgram
}

func (r *renderingEngine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.dev.Viewport(int32(width), int32(height))
	if c := r.MainCamera(); c != nil {
		c.SetAspect(float32(width) / float32(height))
	}
}

func (r *renderingEngine) Device() device.Device {
	return r.dev
}

func (r *renderingEngine) Release() {
	for _, h := range r.programHandles {
		h.Release()
	}
	for _, p := range r.ownedPrograms {
		p.Delete()
	}
	r.programHandles = nil
	r.ownedPrograms = nil
}
