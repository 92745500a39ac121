package gfx

// PerspectiveCamera describes the viewing transform.
//
// Aspect is owned by the caller: after changing FOV, Aspect, Near or Far call
// UpdateProjectionMatrix so the renderer picks up the new projection.
type PerspectiveCamera struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position Vec3
	Target   Vec3
	Up       Vec3

	projection Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: V3(0, 0, -1),
		Up:     V3(0, 1, 0),
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near and Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	fov := c.FOV
	if fov == 0 {
		fov = 50
	}
	c.projection = Mat4Perspective(DegToRad(fov), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the projection computed by the last UpdateProjectionMatrix.
func (c *PerspectiveCamera) ProjectionMatrix() Mat4 {
	if c.projection == (Mat4{}) {
		c.UpdateProjectionMatrix()
	}
	return c.projection
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target Vec3) { c.Target = target }

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Axes returns the camera's right, up and backward unit vectors in world space.
func (c *PerspectiveCamera) Axes() (right, up, back Vec3) {
	v := c.ViewMatrix()
	right = V3(v[0], v[4], v[8])
	up = V3(v[1], v[5], v[9])
	back = V3(v[2], v[6], v[10])
	return right, up, back
}
