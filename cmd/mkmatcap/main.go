// Command mkmatcap writes a procedurally shaded matcap image.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/colornames"

	"textscene/assets"
	"textscene/gfx"
)

func main() {
	def := assets.DefaultMatcapOptions(assets.DefaultMatcapSize)
	var (
		outPath   = flag.String("out", "matcap.png", "Output image (.png, .jpg or .bmp).")
		size      = flag.Int("size", assets.DefaultMatcapSize, "Image width and height in pixels.")
		base      = flag.String("base", "lightsteelblue", "Lit color (CSS name).")
		shadow    = flag.String("shadow", "midnightblue", "Unlit color (CSS name).")
		highlight = flag.String("highlight", "white", "Specular color (CSS name).")
		light     = flag.String("light", "-0.5,0.6,0.8", "Light direction x,y,z in view space.")
		shininess = flag.Float64("shininess", float64(def.Shininess), "Specular exponent.")
	)
	flag.Parse()

	o := assets.MatcapOptions{Size: *size, Shininess: float32(*shininess)}
	var err error
	if o.Base, err = namedColor(*base); err != nil {
		fatalf("base: %v", err)
	}
	if o.Shadow, err = namedColor(*shadow); err != nil {
		fatalf("shadow: %v", err)
	}
	if o.Highlight, err = namedColor(*highlight); err != nil {
		fatalf("highlight: %v", err)
	}
	if o.Light, err = parseVec3(*light); err != nil {
		fatalf("light: %v", err)
	}
	if err := run(*outPath, o); err != nil {
		fatalf("error: %v", err)
	}
}

func run(outPath string, o assets.MatcapOptions) error {
	if o.Size <= 0 {
		return fmt.Errorf("invalid size %d", o.Size)
	}
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(outPath))
	}
	return imgio.Save(outPath, assets.GenerateMatcap(o), enc)
}

func namedColor(name string) (color.RGBA, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

func parseVec3(s string) (gfx.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return gfx.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return gfx.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return gfx.V3(v[0], v[1], v[2]), nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
