package gfx

import "errors"

// ErrUnresolved is returned when a mesh without a usable geometry or
// material is added to a scene.
var ErrUnresolved = errors.New("gfx: mesh geometry or material not resolved")

// Mesh pairs a shared geometry and material with an object transform.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *MatcapMaterial

	Position Vec3
	Rotation Euler
	Scale    Vec3
	Visible  bool
}

// NewMesh creates a visible mesh with unit scale at the origin.
func NewMesh(g *Geometry, m *MatcapMaterial) *Mesh {
	return &Mesh{
		Geometry: g,
		Material: m,
		Scale:    V3(1, 1, 1),
		Visible:  true,
	}
}

// SetScale sets a uniform scale.
func (m *Mesh) SetScale(s float32) { m.Scale = V3(s, s, s) }

// Matrix returns the local-to-world transform.
func (m *Mesh) Matrix() Mat4 {
	return Mat4Compose(m.Position, m.Rotation, m.Scale)
}

func (m *Mesh) resolved() bool {
	return m != nil && m.Geometry != nil && len(m.Geometry.Positions) > 0 && m.Material.Ready()
}

// Scene is an ordered collection of meshes drawn by a Renderer.
type Scene struct {
	Background Color

	meshes  []*Mesh
	cameras []*PerspectiveCamera
}

// NewScene creates an empty scene with a black background.
func NewScene() *Scene {
	return &Scene{Background: RGB(0, 0, 0)}
}

// Add appends m. Meshes whose geometry or material is missing are rejected
// with ErrUnresolved and the scene is left unchanged.
func (s *Scene) Add(m *Mesh) error {
	if !m.resolved() {
		return ErrUnresolved
	}
	s.meshes = append(s.meshes, m)
	return nil
}

// AddCamera records a camera reference. Cameras are not drawn.
func (s *Scene) AddCamera(c *PerspectiveCamera) {
	if c == nil {
		return
	}
	for _, have := range s.cameras {
		if have == c {
			return
		}
	}
	s.cameras = append(s.cameras, c)
}

// Cameras returns the cameras added to the scene.
func (s *Scene) Cameras() []*PerspectiveCamera { return s.cameras }

// Remove deletes m and reports whether it was present.
func (s *Scene) Remove(m *Mesh) bool {
	for i, have := range s.meshes {
		if have == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return true
		}
	}
	return false
}

// Meshes returns the meshes in draw order. The slice must not be modified.
func (s *Scene) Meshes() []*Mesh { return s.meshes }

// Len returns the number of meshes.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.meshes)
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for _, m := range s.meshes {
		if !m.Visible {
			continue
		}
		fn(m)
	}
}
