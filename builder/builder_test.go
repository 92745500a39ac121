package builder

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textscene/gfx"
	"textscene/typeface"
)

type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

type recording struct {
	src  Rand
	seen []float64
}

func (r *recording) Float64() float64 {
	v := r.src.Float64()
	r.seen = append(r.seen, v)
	return v
}

func testMatcap() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.White)
	return img
}

func testFont(t *testing.T) *typeface.Font {
	t.Helper()
	f, err := typeface.Builtin("lmsans10bold")
	require.NoError(t, err)
	return f
}

func TestBuildPopulatesScene(t *testing.T) {
	scene := gfx.NewScene()
	rng := &recording{src: rand.New(rand.NewPCG(1, 2))}

	res, err := Build(scene, testFont(t), testMatcap(), rng)
	require.NoError(t, err)

	assert.Equal(t, TorusCount+1, scene.Len())
	assert.Equal(t, TorusCount+1, res.Meshes())
	assert.Len(t, rng.seen, TorusCount*6)
	assert.Same(t, res.Text, scene.Meshes()[0])

	for _, m := range scene.Meshes() {
		assert.Same(t, res.Material, m.Material, m.Name)
	}
	for i, m := range res.Tori {
		assert.Same(t, res.TorusGeometry, m.Geometry)
		for _, c := range []float32{m.Position.X, m.Position.Y, m.Position.Z} {
			assert.GreaterOrEqual(t, c, float32(-Spread/2))
			assert.Less(t, c, float32(Spread/2))
		}
		for _, a := range []float32{m.Rotation.X, m.Rotation.Y} {
			assert.GreaterOrEqual(t, float64(a), 0.0)
			assert.Less(t, float64(a), math.Pi)
		}
		assert.Zero(t, m.Rotation.Z)

		u := rng.seen[i*6+5]
		want := float32(math.Min(u+ScaleOffset, ScaleMax))
		assert.Equal(t, gfx.V3(want, want, want), m.Scale)
		if u >= ScaleMax-ScaleOffset {
			assert.Equal(t, float32(ScaleMax), m.Scale.X)
		}
	}
}

func TestBuildTextIsCentered(t *testing.T) {
	scene := gfx.NewScene()
	res, err := Build(scene, testFont(t), testMatcap(), rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	box := res.TextGeometry.BoundingBox()
	c := box.Center()
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)
	assert.InDelta(t, 0, c.Z, 1e-4)
	// depth plus a bevel on either side
	assert.InDelta(t, TextDepth+2*BevelThickness, box.Size().Z, 1e-4)
	assert.Equal(t, gfx.Vec3{}, res.Text.Position)
}

func TestBuildExtremeDraws(t *testing.T) {
	scene := gfx.NewScene()
	rng := &scripted{vals: []float64{0, 0.9999999999999999, 0.5, 0.9999999999999999, 0, 0.2499999}}

	res, err := Build(scene, testFont(t), testMatcap(), rng)
	require.NoError(t, err)

	m := res.Tori[0]
	assert.Equal(t, float32(-Spread/2), m.Position.X)
	assert.Less(t, m.Position.Y, float32(Spread/2))
	assert.Zero(t, m.Position.Z)
	assert.Less(t, float64(m.Rotation.X), math.Pi)
	assert.Zero(t, m.Rotation.Y)
	assert.InDelta(t, 0.4999999, m.Scale.X, 1e-6)
	assert.Less(t, m.Scale.X, float32(ScaleMax))
}

func TestBuildScaleCap(t *testing.T) {
	for _, u := range []float64{0.25, 0.3, 0.75, 0.9999999} {
		assert.Equal(t, float32(ScaleMax), scale(u), "u=%v", u)
	}
	assert.Equal(t, float32(ScaleOffset), scale(0))
}

func TestBuildErrorsLeaveSceneEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	font := testFont(t)

	cases := map[string]func(s *gfx.Scene) error{
		"nil font": func(s *gfx.Scene) error {
			_, err := Build(s, nil, testMatcap(), rng)
			return err
		},
		"nil matcap": func(s *gfx.Scene) error {
			_, err := Build(s, font, nil, rng)
			return err
		},
		"empty matcap": func(s *gfx.Scene) error {
			_, err := Build(s, font, image.NewRGBA(image.Rect(0, 0, 0, 0)), rng)
			return err
		},
		"nil rng": func(s *gfx.Scene) error {
			_, err := Build(s, font, testMatcap(), nil)
			return err
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			s := gfx.NewScene()
			assert.Error(t, fn(s))
			assert.Zero(t, s.Len())
		})
	}
}

func TestBuildNilScene(t *testing.T) {
	_, err := Build(nil, testFont(t), testMatcap(), rand.New(rand.NewPCG(7, 8)))
	assert.Error(t, err)
}
