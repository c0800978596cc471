// Package preview rasterises a bake result into a PNG for eyeballing
// colliders, navmesh pieces and routes.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/automoto/tilemesh/bake"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/fonts"
	"github.com/automoto/tilemesh/shared/gamemath"
)

// Options controls Render. DefaultOptions reads cfg.Preview.
type Options struct {
	Scale        float64 // Output pixels per world pixel
	OutlineWidth float64 // Navmesh outline stroke in output pixels, 0 = none

	Background color.RGBA
	Collider   color.RGBA
	Navmesh    color.RGBA
	Outline    color.RGBA
	Route      color.RGBA

	Path    []gamemath.Point // Optional route in world pixels
	Label   string           // Drawn top-left when the label font is loaded
	Caption string           // Drawn bottom-left in the small label font
}

// DefaultOptions returns options from the preview configuration.
func DefaultOptions() Options {
	return Options{
		Scale:        cfg.Preview.Scale,
		OutlineWidth: cfg.Preview.OutlineWidth,
		Background:   cfg.Preview.BackgroundColor,
		Collider:     cfg.Preview.ColliderColor,
		Navmesh:      cfg.Preview.NavmeshColor,
		Outline:      cfg.Preview.OutlineColor,
		Route:        cfg.Preview.RouteColor,
	}
}

// Render draws res over a mapWidth x mapHeight world. Colliders and navmesh
// polygons are filled as one path each, so shared edges leave no seams.
func Render(res *bake.Result, mapWidth, mapHeight float64, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	w := int(math.Ceil(mapWidth * opts.Scale))
	h := int(math.Ceil(mapHeight * opts.Scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)
	fill := func(polys []gamemath.Polygon, c color.RGBA) {
		if len(polys) == 0 {
			return
		}
		r.Reset(w, h)
		for _, poly := range polys {
			addPolygon(r, poly, opts.Scale)
		}
		r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	fill(res.Colliders, opts.Collider)
	fill(res.Navmesh, opts.Navmesh)

	if opts.OutlineWidth > 0 && len(res.Navmesh) > 0 {
		r.Reset(w, h)
		for _, poly := range res.Navmesh {
			for i, a := range poly {
				addStroke(r, a, poly.At(i+1), opts.Scale, opts.OutlineWidth)
			}
		}
		r.Draw(img, img.Bounds(), image.NewUniform(opts.Outline), image.Point{})
	}

	if len(opts.Path) > 1 {
		r.Reset(w, h)
		width := max(2, opts.OutlineWidth*2)
		for i := 1; i < len(opts.Path); i++ {
			addStroke(r, opts.Path[i-1], opts.Path[i], opts.Scale, width)
		}
		r.Draw(img, img.Bounds(), image.NewUniform(opts.Route), image.Point{})
	}

	if opts.Label != "" && fonts.Loaded(fonts.Label) {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(cfg.White),
			Face: fonts.Label.Get(),
			Dot:  fixed.P(4, 14),
		}
		d.DrawString(opts.Label)
	}
	if opts.Caption != "" && fonts.Loaded(fonts.LabelSmall) {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(cfg.White),
			Face: fonts.LabelSmall.Get(),
			Dot:  fixed.P(4, h-4),
		}
		d.DrawString(opts.Caption)
	}

	return img
}

func addPolygon(r *vector.Rasterizer, poly gamemath.Polygon, scale float64) {
	if len(poly) < 3 {
		return
	}
	r.MoveTo(float32(poly[0].X*scale), float32(poly[0].Y*scale))
	for _, p := range poly[1:] {
		r.LineTo(float32(p.X*scale), float32(p.Y*scale))
	}
	r.ClosePath()
}

// addStroke adds the segment a-b as a quad width output pixels wide. The
// quad is wound to match the fills so overlapping strokes stay solid.
func addStroke(r *vector.Rasterizer, a, b gamemath.Point, scale, width float64) {
	a, b = a.Scale(scale, scale), b.Scale(scale, scale)
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return
	}
	n := gamemath.Pt(-d.Y/length*width/2, d.X/length*width/2)
	quad := gamemath.Polygon{a.Sub(n), b.Sub(n), b.Add(n), a.Add(n)}
	addPolygon(r, quad, 1)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
