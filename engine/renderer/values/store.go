// Package values provides the named float/vector bag shared by materials and the
// rendering engine's global shading constants.
package values

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Store maps names to float32 and mgl32.Vec3 values. Floats and vectors live in
// separate namespaces. Lookups of absent names return the zero value; a Store never
// reports a missing entry as an error.
//
// The zero value is ready to use.
type Store struct {
	floats map[string]float32
	vec3s  map[string]mgl32.Vec3
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// SetFloat stores a float under name, replacing any previous value.
//
// Parameters:
//   - name: the value name
//   - v: the value
func (s *Store) SetFloat(name string, v float32) {
	if s.floats == nil {
		s.floats = make(map[string]float32)
	}
	s.floats[name] = v
}

// SetVec3 stores a vector under name, replacing any previous value.
//
// Parameters:
//   - name: the value name
//   - v: the value
func (s *Store) SetVec3(name string, v mgl32.Vec3) {
	if s.vec3s == nil {
		s.vec3s = make(map[string]mgl32.Vec3)
	}
	s.vec3s[name] = v
}

// Float returns the float stored under name, or 0.
func (s *Store) Float(name string) float32 {
	return s.floats[name]
}

// Vec3 returns the vector stored under name, or the zero vector.
func (s *Store) Vec3(name string) mgl32.Vec3 {
	return s.vec3s[name]
}

// HasFloat reports whether a float was stored under name.
func (s *Store) HasFloat(name string) bool {
	_, ok := s.floats[name]
	return ok
}

// HasVec3 reports whether a vector was stored under name.
func (s *Store) HasVec3(name string) bool {
	_, ok := s.vec3s[name]
	return ok
}

// Names returns every stored name, floats and vectors together, sorted.
func (s *Store) Names() []string {
	names := slices.Collect(maps.Keys(s.floats))
	names = append(names, slices.Collect(maps.Keys(s.vec3s))...)
	slices.Sort(names)
	return slices.Compact(names)
}
