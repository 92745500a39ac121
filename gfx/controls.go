package gfx

import "github.com/chewxy/math32"

// PointerButton identifies the mouse button or touch that started a drag.
type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonMiddle
	ButtonSecondary
	ButtonTouch
)

type orbitState uint8

const (
	stateNone orbitState = iota
	stateRotate
	stateDolly
	statePan
	stateTouchRotate
	stateTouchDollyPan
)

const polarEpsilon = 1e-6

type activePointer struct {
	id   int
	x, y float32
}

// OrbitControls orbits a camera around Target.
//
// Input methods only accumulate deltas; Update applies them to the camera.
// With damping enabled the deltas decay geometrically every Update so the
// camera eases towards rest instead of stopping abruptly.
type OrbitControls struct {
	Camera *PerspectiveCamera
	Target Vec3

	EnableDamping bool
	DampingFactor float32

	EnableRotate bool
	RotateSpeed  float32
	EnableZoom   bool
	ZoomSpeed    float32
	EnablePan    bool
	PanSpeed     float32

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	sphericalDelta Spherical
	panOffset      Vec3
	scale          float32

	viewW, viewH float32

	state    orbitState
	pointers []activePointer
	lastX    float32
	lastY    float32
	lastDist float32
}

// NewOrbitControls creates controls for cam orbiting the origin.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		DampingFactor: 0.05,
		EnableRotate:  true,
		RotateSpeed:   1,
		EnableZoom:    true,
		ZoomSpeed:     1,
		EnablePan:     true,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		scale:         1,
		viewW:         1,
		viewH:         1,
	}
}

// SetViewport sets the element size in CSS pixels used to convert pointer
// motion into angles and distances.
func (c *OrbitControls) SetViewport(w, h float32) {
	if w > 0 {
		c.viewW = w
	}
	if h > 0 {
		c.viewH = h
	}
}

// Rotate orbits left by theta and up by phi radians.
func (c *OrbitControls) Rotate(theta, phi float32) {
	c.sphericalDelta.Theta -= theta
	c.sphericalDelta.Phi -= phi
}

// Dolly scales the camera distance by factor on the next Update. Factors
// below one move the camera closer.
func (c *OrbitControls) Dolly(factor float32) {
	if factor <= 0 {
		return
	}
	c.scale *= factor
}

// Pan moves the target by dx, dy viewport pixels in screen space.
func (c *OrbitControls) Pan(dx, dy float32) {
	if c.Camera == nil {
		return
	}
	offset := c.Camera.Position.Sub(c.Target)
	dist := Len(offset) * math32.Tan(DegToRad(c.Camera.FOV)/2)
	right, up, _ := c.Camera.Axes()
	c.panOffset = c.panOffset.Add(right.Mul(-2 * dx * dist / c.viewH))
	c.panOffset = c.panOffset.Add(up.Mul(2 * dy * dist / c.viewH))
}

func (c *OrbitControls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

// Wheel handles a scroll step. Negative dy zooms in.
func (c *OrbitControls) Wheel(dy float32) {
	if !c.EnableZoom || dy == 0 {
		return
	}
	if dy < 0 {
		c.Dolly(c.zoomScale())
	} else {
		c.Dolly(1 / c.zoomScale())
	}
}

// PointerDown starts a drag. Touches are tracked by id; one finger rotates,
// two fingers dolly and pan.
func (c *OrbitControls) PointerDown(id int, button PointerButton, x, y float32) {
	for _, p := range c.pointers {
		if p.id == id {
			return
		}
	}
	c.pointers = append(c.pointers, activePointer{id: id, x: x, y: y})

	if button == ButtonTouch {
		switch len(c.pointers) {
		case 1:
			c.state = stateTouchRotate
			c.lastX, c.lastY = x, y
		case 2:
			c.state = stateTouchDollyPan
			c.lastX, c.lastY = c.touchCenter()
			c.lastDist = c.touchDistance()
		default:
			c.state = stateNone
		}
		return
	}

	c.lastX, c.lastY = x, y
	switch button {
	case ButtonPrimary:
		c.state = stateRotate
	case ButtonMiddle:
		c.state = stateDolly
	case ButtonSecondary:
		c.state = statePan
	}
}

// PointerMove continues a drag.
func (c *OrbitControls) PointerMove(id int, x, y float32) {
	idx := -1
	for i, p := range c.pointers {
		if p.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.pointers[idx].x, c.pointers[idx].y = x, y

	switch c.state {
	case stateRotate, stateTouchRotate:
		if !c.EnableRotate {
			break
		}
		dx, dy := (x-c.lastX)*c.RotateSpeed, (y-c.lastY)*c.RotateSpeed
		c.Rotate(2*math32.Pi*dx/c.viewH, 2*math32.Pi*dy/c.viewH)
		c.lastX, c.lastY = x, y
	case stateDolly:
		if !c.EnableZoom {
			break
		}
		dy := y - c.lastY
		if dy > 0 {
			c.Dolly(1 / c.zoomScale())
		} else if dy < 0 {
			c.Dolly(c.zoomScale())
		}
		c.lastX, c.lastY = x, y
	case statePan:
		if !c.EnablePan {
			break
		}
		c.Pan((x-c.lastX)*c.PanSpeed, (y-c.lastY)*c.PanSpeed)
		c.lastX, c.lastY = x, y
	case stateTouchDollyPan:
		if c.EnableZoom {
			dist := c.touchDistance()
			if dist > 0 && c.lastDist > 0 {
				c.Dolly(1 / math32.Pow(dist/c.lastDist, c.ZoomSpeed))
			}
			c.lastDist = dist
		}
		cx, cy := c.touchCenter()
		if c.EnablePan {
			c.Pan((cx-c.lastX)*c.PanSpeed, (cy-c.lastY)*c.PanSpeed)
		}
		c.lastX, c.lastY = cx, cy
	}
}

// PointerUp ends the drag for id.
func (c *OrbitControls) PointerUp(id int) {
	for i, p := range c.pointers {
		if p.id == id {
			c.pointers = append(c.pointers[:i], c.pointers[i+1:]...)
			break
		}
	}
	switch len(c.pointers) {
	case 0:
		c.state = stateNone
	case 1:
		if c.state == stateTouchDollyPan {
			c.state = stateTouchRotate
			c.lastX, c.lastY = c.pointers[0].x, c.pointers[0].y
		}
	}
}

func (c *OrbitControls) touchCenter() (x, y float32) {
	if len(c.pointers) < 2 {
		return c.lastX, c.lastY
	}
	a, b := c.pointers[0], c.pointers[1]
	return (a.x + b.x) / 2, (a.y + b.y) / 2
}

func (c *OrbitControls) touchDistance() float32 {
	if len(c.pointers) < 2 {
		return 0
	}
	a, b := c.pointers[0], c.pointers[1]
	return math32.Hypot(a.x-b.x, a.y-b.y)
}

// Update applies pending input to the camera and reports whether the camera
// moved noticeably. Call it once per frame.
func (c *OrbitControls) Update() bool {
	cam := c.Camera
	if cam == nil {
		return false
	}
	before := cam.Position

	offset := cam.Position.Sub(c.Target)
	s := SphericalFromVec3(offset)

	if c.EnableDamping {
		s.Theta += c.sphericalDelta.Theta * c.DampingFactor
		s.Phi += c.sphericalDelta.Phi * c.DampingFactor
	} else {
		s.Theta += c.sphericalDelta.Theta
		s.Phi += c.sphericalDelta.Phi
	}

	s.Phi = Clamp(s.Phi, c.MinPolarAngle, c.MaxPolarAngle)
	s.Phi = Clamp(s.Phi, polarEpsilon, math32.Pi-polarEpsilon)

	s.Radius = Clamp(s.Radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	cam.Position = c.Target.Add(s.Vec3())
	cam.LookAt(c.Target)

	if c.EnableDamping {
		k := 1 - c.DampingFactor
		c.sphericalDelta.Theta *= k
		c.sphericalDelta.Phi *= k
		c.panOffset = c.panOffset.Mul(k)
	} else {
		c.sphericalDelta = Spherical{}
		c.panOffset = Vec3{}
	}
	c.scale = 1

	d := cam.Position.Sub(before)
	return Dot(d, d) > polarEpsilon
}
