// Package assets loads the scene's external inputs (a font and a matcap
// image) asynchronously from a filesystem.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"textscene/typeface"
)

// BuiltinPrefix selects assets compiled into the binary instead of files.
const BuiltinPrefix = "builtin:"

// BuiltinMatcap is the name of the generated matcap image.
const BuiltinMatcap = "matcap"

var errUnsupported = errors.New("unsupported format")

// Source reads assets from FS.
type Source struct {
	FS fs.FS

	// MatcapSize, when positive, resamples loaded images to a square of
	// this many pixels.
	MatcapSize int

	log *slog.Logger
}

// NewSource creates a source over fsys. fsys may be nil when only builtin
// assets are used.
func NewSource(fsys fs.FS, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{FS: fsys, log: logger.With("component", "assets")}
}

// LoadFont reads a font in the background. Paths ending in .json are typeface
// JSON documents; .ttf, .otf and .ttc are OpenType files.
func (s *Source) LoadFont(ctx context.Context, name string) *Future[*typeface.Font] {
	return Go(ctx, func(ctx context.Context) (*typeface.Font, error) {
		f, err := s.ReadFont(ctx, name)
		if err != nil {
			s.log.Debug("font load failed", "path", name, "err", err)
			return nil, err
		}
		s.log.Debug("font loaded", "path", name, "family", f.FamilyName)
		return f, nil
	})
}

// LoadImage reads an image in the background.
func (s *Source) LoadImage(ctx context.Context, name string) *Future[image.Image] {
	return Go(ctx, func(ctx context.Context) (image.Image, error) {
		img, err := s.ReadImage(ctx, name)
		if err != nil {
			s.log.Debug("image load failed", "path", name, "err", err)
			return nil, err
		}
		s.log.Debug("image loaded", "path", name, "size", img.Bounds().Size())
		return img, nil
	})
}

// ReadFont is the synchronous form of LoadFont.
func (s *Source) ReadFont(ctx context.Context, name string) (*typeface.Font, error) {
	fail := func(err error) (*typeface.Font, error) {
		return nil, &LoadError{Kind: KindFont, Path: name, Err: err}
	}
	if builtin, ok := strings.CutPrefix(name, BuiltinPrefix); ok {
		f, err := typeface.Builtin(builtin)
		if err != nil {
			return fail(err)
		}
		return f, nil
	}

	data, err := s.read(ctx, name)
	if err != nil {
		return fail(err)
	}
	var f *typeface.Font
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		f, err = typeface.ParseJSON(bytes.NewReader(data))
	case ".ttf", ".otf", ".ttc":
		f, err = typeface.ParseOpenType(data)
	default:
		err = fmt.Errorf("%w %q", errUnsupported, path.Ext(name))
	}
	if err != nil {
		return fail(err)
	}
	return f, nil
}

// ReadImage is the synchronous form of LoadImage.
func (s *Source) ReadImage(ctx context.Context, name string) (image.Image, error) {
	fail := func(err error) (image.Image, error) {
		return nil, &LoadError{Kind: KindImage, Path: name, Err: err}
	}
	if builtin, ok := strings.CutPrefix(name, BuiltinPrefix); ok {
		if builtin != BuiltinMatcap {
			return fail(fmt.Errorf("unknown builtin image %q", builtin))
		}
		size := s.MatcapSize
		if size <= 0 {
			size = DefaultMatcapSize
		}
		return GenerateMatcap(DefaultMatcapOptions(size)), nil
	}

	data, err := s.read(ctx, name)
	if err != nil {
		return fail(err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fail(err)
	}
	return NormalizeMatcap(img, s.MatcapSize), nil
}

func (s *Source) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FS == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(s.FS, strings.TrimPrefix(path.Clean("/"+name), "/"))
}

// NormalizeMatcap crops img to its centered square and, when size is
// positive, resamples it to size×size. The result always starts at (0, 0).
func NormalizeMatcap(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(out, out.Bounds(), img, image.Pt(x0, y0), draw.Src)
	if size > 0 && size != side {
		out = transform.Resize(out, size, size, transform.Linear)
	}
	return out
}
