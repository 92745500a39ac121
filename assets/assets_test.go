package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fontDoc = `{"glyphs": {"I": {"ha": 400, "o": "m 0 0 l 300 0 l 300 700 l 0 700 z"}},
 "familyName": "Tiny", "resolution": 1000,
 "boundingBox": {"xMin": 0, "yMin": -200, "xMax": 400, "yMax": 900}}`

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"fonts/tiny.json":           {Data: []byte(fontDoc)},
		"fonts/broken.json":         {Data: []byte(`{`)},
		"fonts/tiny.woff":           {Data: []byte(`x`)},
		"textures/matcaps/4.png":    {Data: pngBytes(t, 8, 8, color.RGBA{R: 200, A: 255})},
		"textures/matcaps/wide.png": {Data: pngBytes(t, 12, 6, color.RGBA{G: 200, A: 255})},
		"textures/broken.png":       {Data: []byte("not a png")},
	}
}

func TestFuturePollAndWait(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 42, nil
	})

	_, ok, err := f.Poll()
	assert.False(t, ok)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, ok, err = f.Poll()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestJoinIgnoresCompletionOrder(t *testing.T) {
	for _, fontFirst := range []bool{true, false} {
		gateFont := make(chan struct{})
		gateImage := make(chan struct{})
		a := Go(context.Background(), func(context.Context) (string, error) { <-gateFont; return "font", nil })
		b := Go(context.Background(), func(context.Context) (int, error) { <-gateImage; return 7, nil })
		j := Join(context.Background(), a, b)

		if fontFirst {
			close(gateFont)
		} else {
			close(gateImage)
		}
		time.Sleep(5 * time.Millisecond)
		_, ok, _ := j.Poll()
		assert.False(t, ok, "join resolved with one input pending")

		if fontFirst {
			close(gateImage)
		} else {
			close(gateFont)
		}
		p, err := j.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Pair[string, int]{A: "font", B: 7}, p)
	}
}

func TestJoinFails(t *testing.T) {
	boom := errors.New("boom")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	never := Go(ctx, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	j := Join(context.Background(), Failed[string](boom), never)
	_, err := j.Wait(context.Background())
	assert.ErrorIs(t, err, boom)

	p, err := Join(context.Background(), Resolved("x"), Resolved(1)).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", p.A)
}

func TestLoadFont(t *testing.T) {
	s := NewSource(testFS(t), nil)
	ctx := context.Background()

	f, err := s.LoadFont(ctx, "fonts/tiny.json").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", f.FamilyName)

	f, err = s.LoadFont(ctx, "/fonts/../fonts/tiny.json").Wait(ctx)
	require.NoError(t, err)
	assert.NotNil(t, f)

	f, err = s.LoadFont(ctx, "builtin:lmroman10regular").Wait(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, f.FamilyName)
}

func TestLoadFontErrors(t *testing.T) {
	s := NewSource(testFS(t), nil)
	ctx := context.Background()

	for _, name := range []string{"fonts/missing.json", "fonts/broken.json", "fonts/tiny.woff", "builtin:nope"} {
		_, err := s.LoadFont(ctx, name).Wait(ctx)
		var le *LoadError
		require.ErrorAs(t, err, &le, name)
		assert.Equal(t, KindFont, le.Kind)
		assert.Equal(t, name, le.Path)
	}

	_, err := s.LoadFont(ctx, "fonts/missing.json").Wait(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadImage(t *testing.T) {
	s := NewSource(testFS(t), nil)
	ctx := context.Background()

	img, err := s.LoadImage(ctx, "textures/matcaps/4.png").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	r, _, _, _ := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(200*0x101), r)

	img, err = s.LoadImage(ctx, "textures/matcaps/wide.png").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds(), "cropped to a square")

	s.MatcapSize = 16
	img, err = s.LoadImage(ctx, "textures/matcaps/4.png").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	img, err = s.LoadImage(ctx, "builtin:matcap").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestLoadImageErrors(t *testing.T) {
	s := NewSource(testFS(t), nil)
	ctx := context.Background()
	for _, name := range []string{"textures/missing.png", "textures/broken.png", "builtin:other"} {
		_, err := s.LoadImage(ctx, name).Wait(ctx)
		var le *LoadError
		require.ErrorAs(t, err, &le, name)
		assert.Equal(t, KindImage, le.Kind)
	}

	_, err := NewSource(nil, nil).LoadImage(ctx, "x.png").Wait(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestGenerateMatcap(t *testing.T) {
	img := GenerateMatcap(DefaultMatcapOptions(64))
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	// Lit from the top left: that side is brighter than the bottom right.
	lum := func(x, y int) int {
		c := img.RGBAAt(x, y)
		return int(c.R) + int(c.G) + int(c.B)
	}
	assert.Greater(t, lum(20, 20), lum(44, 44))
	assert.Equal(t, uint8(0xFF), img.RGBAAt(0, 0).A)
}
