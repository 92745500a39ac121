package gfx

import (
	"image"
	"image/color"
	"testing"
)

func solidMatcap(c Color) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
	return NewTexture(img)
}

func quadScene(side Side, flip bool) (*Scene, *PerspectiveCamera) {
	outline := square(-1, -1, 2)
	if flip {
		outline = reversed(outline)
	}
	tris := Triangulate(outline, nil)
	var pos []Vec3
	for _, tr := range tris {
		for _, i := range tr {
			pos = append(pos, V3(outline[i].X, outline[i].Y, 0))
		}
	}
	if flip {
		for i := 0; i+2 < len(pos); i += 3 {
			pos[i+1], pos[i+2] = pos[i+2], pos[i+1]
		}
	}
	g := NewGeometry(pos, nil, nil)
	g.ComputeVertexNormals()

	mat := NewMatcapMaterial(solidMatcap(RGB(0xFF, 0, 0)))
	mat.Side = side

	s := NewScene()
	if err := s.Add(NewMesh(g, mat)); err != nil {
		panic(err)
	}
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.Position = V3(0, 0, 3)
	cam.LookAt(V3(0, 0, 0))
	return s, cam
}

func TestRenderDrawsFrontFace(t *testing.T) {
	s, cam := quadScene(FrontSide, false)
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	r := NewRenderer()
	r.Render(ImageTarget(img), s, cam)

	tgt := ImageTarget(img)
	if got := tgt.At(16, 16); got != RGB(0xFF, 0, 0) {
		t.Fatalf("center pixel = %+v, want red", got)
	}
	if got := tgt.At(0, 0); got != RGB(0, 0, 0) {
		t.Fatalf("corner pixel = %+v, want background", got)
	}
	if r.Info.Frames != 1 || r.Info.Calls != 1 || r.Info.Triangles != 2 {
		t.Fatalf("info = %+v", r.Info)
	}
}

func TestRenderCullsBackFace(t *testing.T) {
	s, cam := quadScene(FrontSide, true)
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	r := NewRenderer()
	r.Render(ImageTarget(img), s, cam)
	if got := ImageTarget(img).At(16, 16); got != RGB(0, 0, 0) {
		t.Fatalf("back face drawn: %+v", got)
	}

	s, cam = quadScene(DoubleSide, true)
	r.Render(ImageTarget(img), s, cam)
	if got := ImageTarget(img).At(16, 16); got != RGB(0xFF, 0, 0) {
		t.Fatalf("double-sided face not drawn: %+v", got)
	}
}

func TestRenderDropsGeometryBehindCamera(t *testing.T) {
	s, cam := quadScene(DoubleSide, false)
	cam.Position = V3(0, 0, -3)
	cam.LookAt(V3(0, 0, -6))
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	r := NewRenderer()
	r.Render(ImageTarget(img), s, cam)
	if r.Info.Triangles != 0 {
		t.Fatalf("triangles = %d, want 0", r.Info.Triangles)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	s, cam := quadScene(FrontSide, false)
	back := s.Meshes()[0]

	front := NewMesh(back.Geometry, NewMatcapMaterial(solidMatcap(RGB(0, 0xFF, 0))))
	front.Position = V3(0, 0, 1)
	front.SetScale(0.25)
	// Added first, still wins because it is closer.
	s.meshes = append([]*Mesh{front}, s.meshes...)

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	NewRenderer().Render(ImageTarget(img), s, cam)
	if got := ImageTarget(img).At(16, 16); got != RGB(0, 0xFF, 0) {
		t.Fatalf("center = %+v, want green", got)
	}
}

func TestDrawingBufferSize(t *testing.T) {
	r := NewRenderer()
	r.SetSize(801, 600)
	r.SetPixelRatio(1.5)
	w, h := r.DrawingBufferSize()
	if w != 1201 || h != 900 {
		t.Fatalf("drawing buffer = %dx%d", w, h)
	}
}

func TestSceneRejectsUnresolved(t *testing.T) {
	s := NewScene()
	g := NewTorusGeometry(0.5, 0.2, 8, 8)
	if err := s.Add(NewMesh(g, nil)); err != ErrUnresolved {
		t.Fatalf("nil material: err = %v", err)
	}
	if err := s.Add(NewMesh(nil, NewMatcapMaterial(solidMatcap(RGB(1, 1, 1))))); err != ErrUnresolved {
		t.Fatalf("nil geometry: err = %v", err)
	}
	if err := s.Add(NewMesh(g, NewMatcapMaterial(nil))); err != ErrUnresolved {
		t.Fatalf("nil matcap: err = %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d", s.Len())
	}
}
