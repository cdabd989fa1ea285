package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"golang.org/x/image/vector"

	"github.com/soocke/face-annotator-go/domain/face"
)

// Style controls how face outlines are stroked.
type Style struct {
	StrokeWidth  float32
	CornerRadius float32
	Color        color.RGBA
}

// DefaultStyle is a 5px red stroke with 2px rounded corners.
func DefaultStyle() Style {
	return Style{StrokeWidth: 5, CornerRadius: 2, Color: color.RGBA{R: 0xff, A: 0xff}}
}

// Result is an annotated copy together with the outlines drawn onto it.
type Result struct {
	Image    *image.RGBA
	Outlines []image.Rectangle
}

// Render copies src into a new RGBA of identical size and strokes one rounded
// rectangle per region at (X, Y)-(X+Width, Y+Height). src is never modified.
// Outlines are sorted so the output does not depend on map iteration order.
func Render(src image.Image, regions face.Regions, style Style) Result {
	if src == nil {
		return Result{}
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	outlines := make([]image.Rectangle, 0, len(regions))
	for _, r := range regions {
		outlines = append(outlines, r.Rect())
	}
	sort.Slice(outlines, func(i, j int) bool {
		a, c := outlines[i], outlines[j]
		if a.Min.Y != c.Min.Y {
			return a.Min.Y < c.Min.Y
		}
		if a.Min.X != c.Min.X {
			return a.Min.X < c.Min.X
		}
		if a.Max.Y != c.Max.Y {
			return a.Max.Y < c.Max.Y
		}
		return a.Max.X < c.Max.X
	})
	if len(outlines) == 0 || dst.Bounds().Empty() {
		return Result{Image: dst, Outlines: outlines}
	}

	w := style.StrokeWidth
	if w <= 0 {
		w = DefaultStyle().StrokeWidth
	}
	col := style.Color
	if col.A == 0 {
		col = DefaultStyle().Color
	}
	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over
	half := w / 2
	for _, o := range outlines {
		x0, y0 := float32(o.Min.X), float32(o.Min.Y)
		x1, y1 := float32(o.Max.X), float32(o.Max.Y)
		// Stroke is centered on the outline: an outer contour grown by half the
		// width and an inner contour, wound the other way, shrunk by it.
		roundedRect(z, x0-half, y0-half, x1+half, y1+half, style.CornerRadius+half, false)
		if x1-x0 > w && y1-y0 > w {
			inner := style.CornerRadius - half
			if inner < 0 {
				inner = 0
			}
			roundedRect(z, x0+half, y0+half, x1-half, y1-half, inner, true)
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
	return Result{Image: dst, Outlines: outlines}
}

// kappa approximates a quarter circle with a cubic Bézier.
const kappa = 0.5522847

// roundedRect appends a closed rounded rectangle path. reverse flips the winding.
func roundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32, reverse bool) {
	if max := (x1 - x0) / 2; r > max {
		r = max
	}
	if max := (y1 - y0) / 2; r > max {
		r = max
	}
	if r < 0 {
		r = 0
	}
	k := r * kappa
	if !reverse {
		z.MoveTo(x0+r, y0)
		z.LineTo(x1-r, y0)
		z.CubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
		z.LineTo(x1, y1-r)
		z.CubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
		z.LineTo(x0+r, y1)
		z.CubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
		z.LineTo(x0, y0+r)
		z.CubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
		z.ClosePath()
		return
	}
	z.MoveTo(x0+r, y0)
	z.CubeTo(x0+r-k, y0, x0, y0+r-k, x0, y0+r)
	z.LineTo(x0, y1-r)
	z.CubeTo(x0, y1-r+k, x0+r-k, y1, x0+r, y1)
	z.LineTo(x1-r, y1)
	z.CubeTo(x1-r+k, y1, x1, y1-r+k, x1, y1-r)
	z.LineTo(x1, y0+r)
	z.CubeTo(x1, y0+r-k, x1-r+k, y0, x1-r, y0)
	z.ClosePath()
}
