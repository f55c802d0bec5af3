package shader

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// program is the implementation of the Program interface.
type program struct {
	name       string
	dev        device.Device
	id         device.ProgramID
	reflection Reflection
	locations  map[string]int32
}

// Program is a compiled vertex and fragment pair together with its reflected interface
// and the location of every uniform leaf.
type Program interface {
	// Name returns the program name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// ID returns the device handle of the linked program.
	//
	// Returns:
	//   - device.ProgramID: the handle
	ID() device.ProgramID

	// Reflection returns the interface recovered from the program source.
	//
	// Returns:
	//   - Reflection: attributes, uniform leaves and structs
	Reflection() Reflection

	// Location returns the location of a uniform leaf.
	//
	// Parameters:
	//   - name: the full leaf name
	//
	// Returns:
	//   - int32: the location, or device.InvalidLocation if the name is not a leaf
	Location(name string) int32

	// Bind makes the program current.
	Bind()

	// UpdateUniforms resolves every uniform leaf for one object in one pass and uploads
	// the values. The program must be bound.
	//
	// Parameters:
	//   - t: the drawn object's transform
	//   - mat: the drawn object's material
	//   - pass: the current pass
	//
	// Returns:
	//   - error: the first resolution error, wrapped with the program name
	UpdateUniforms(t *transform.Transform, mat material.Material, pass Pass) error

	// Delete releases the device program.
	Delete()
}

var _ Program = &program{}

// NewProgram reflects over src, compiles it with attributes bound in reflected slot
// order and queries the location of every uniform leaf. A source that fails to reflect
// or compile, or a leaf the compiled program does not expose, panics with a message
// naming the program and the identifier.
//
// Parameters:
//   - dev: the device to compile on
//   - src: the include-expanded program source
//
// Returns:
//   - Program: the compiled program
func NewProgram(dev device.Device, src Source) Program {
	refl, err := Reflect(src.Vertex, src.Fragment)
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", src.Name, err))
	}

	id, err := dev.CompileProgram(src.Vertex, src.Fragment, refl.AttributeNames())
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", src.Name, err))
	}

	p := &program{
		name:       src.Name,
		dev:        dev,
		id:         id,
		reflection: refl,
		locations:  make(map[string]int32, len(refl.Uniforms)),
	}
	for _, u := range refl.Uniforms {
		loc := dev.UniformLocation(id, u.Name)
		if loc == device.InvalidLocation {
			dev.DeleteProgram(id)
			panic(fmt.Sprintf("shader: %s: %v: uniform %q (%s) has no location", src.Name, ErrReflectionMismatch, u.Name, u.Type))
		}
		p.locations[u.Name] = loc
	}

	log.Printf("[Shader] %s: %d attributes, %d uniforms", src.Name, len(refl.Attributes), len(refl.Uniforms))
	return p
}

// LoadProgram loads the named program from fsys and compiles it with NewProgram.
// Panics if the source cannot be loaded.
//
// Parameters:
//   - dev: the device to compile on
//   - fsys: the file system holding name.vs, name.fs and their includes
//   - name: the program name
//
// Returns:
//   - Program: the compiled program
func LoadProgram(dev device.Device, fsys fs.FS, name string) Program {
	src, err := LoadSource(fsys, name)
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", name, err))
	}
	return NewProgram(dev, src)
}

func (p *program) Name() string {
	return p.name
}

func (p *program) ID() device.ProgramID {
	return p.id
}

func (p *program) Reflection() Reflection {
	return p.reflection
}

func (p *program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return device.InvalidLocation
}

func (p *program) Bind() {
	p.dev.UseProgram(p.id)
}

func (p *program) UpdateUniforms(t *transform.Transform, mat material.Material, pass Pass) error {
	ctx := DrawContext{Transform: t, Material: mat, Pass: pass}
	for _, u := range p.reflection.Uniforms {
		v, err := Resolve(u, ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		p.upload(p.locations[u.Name], v)
	}
	return nil
}

func (p *program) upload(loc int32, v ResolvedValue) {
	switch v.Kind {
	case KindInt:
		p.dev.SetUniformInt(loc, v.Int)
	case KindFloat:
		p.dev.SetUniformFloat(loc, v.Float)
	case KindVec3:
		p.dev.SetUniformVec3(loc, v.Vec3)
	case KindMat4:
		p.dev.SetUniformMat4(loc, v.Mat4)
	case KindSampler:
		v.Texture.Bind(v.Int)
		p.dev.SetUniformInt(loc, v.Int)
	}
}

func (p *program) Delete() {
	p.dev.DeleteProgram(p.id)
}
