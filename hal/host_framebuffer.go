package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

func (f *hostFramebuffer) Width() int     { return f.Image().Bounds().Dx() }
func (f *hostFramebuffer) Height() int    { return f.Image().Bounds().Dy() }
func (f *hostFramebuffer) Present() error { return nil }

func (f *hostFramebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

// Resize replaces the backing image when the size changes. Contents are not
// preserved.
func (f *hostFramebuffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	f.img = image.NewRGBA(image.Rect(0, 0, w, h))
}
