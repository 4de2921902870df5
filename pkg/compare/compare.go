// Package compare scores how alike two cut shapes look by rasterizing them and
// comparing coverage pixel by pixel.
package compare

import (
	"image"
	"image/draw"
	"math"

	"jcuts/pkg/cfg"
	"jcuts/pkg/geometry"
	"jcuts/pkg/shape"

	"github.com/chewxy/math32"
	"github.com/jbeda/geom"
	"golang.org/x/image/vector"
)

// Bounds returns the bounding box of all points of the polygons. It is the zero
// Rect when there are no points.
func Bounds(polygons ...geometry.Polyline) geom.Rect {
	var r geom.Rect
	first := true
	for _, poly := range polygons {
		for _, p := range poly {
			c := geom.Coord{X: p.X, Y: p.Y}
			if first {
				r = geom.Rect{Min: c, Max: c}
				first = false
				continue
			}
			r.ExpandToContainCoord(c)
		}
	}
	return r
}

// Rasterize fills the polygons into an alpha mask covering bounds, with scale
// pixels per unit. Pixels outside every polygon are transparent. When the mask
// would be wider or taller than cfg.MaxRasterSize, the scale is lowered to fit.
func Rasterize(polygons []geometry.Polyline, bounds geom.Rect, scale float64) *image.Alpha {
	if !finite(bounds.Width()) || !finite(bounds.Height()) {
		return image.NewAlpha(image.Rect(0, 0, 1, 1))
	}
	s := float32(fitScale(bounds, scale))
	w := pixels(float32(bounds.Width()), s)
	h := pixels(float32(bounds.Height()), s)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Src
	for _, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		for i, p := range poly {
			x := float32(p.X-bounds.Min.X) * s
			y := float32(p.Y-bounds.Min.Y) * s
			if i == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}
		ras.ClosePath()
	}
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// fitScale lowers scale so that neither side of bounds spans more than
// cfg.MaxRasterSize pixels.
func fitScale(bounds geom.Rect, scale float64) float64 {
	limit := float64(cfg.MaxRasterSize)
	for _, length := range []float64{bounds.Width(), bounds.Height()} {
		if length*scale > limit {
			scale = limit / length
		}
	}
	return scale
}

// pixels is the number of pixels covering length at scale s. It uses the same
// float32 product as the vertex coordinates, so the far edge is always inside.
func pixels(length, s float32) int {
	n := int(math32.Ceil(length * s))
	if n < 1 {
		return 1
	}
	if n > cfg.MaxRasterSize {
		return cfg.MaxRasterSize
	}
	return n
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// DiffPolygon returns the similarity of two polygons, from 0 for shapes that do not
// overlap at all to 1 for identical ones. Both polygons are drawn in the same
// frame at cfg.RasterScale, so position and size matter. Two empty polygons have
// a similarity of 0.
func DiffPolygon(a, b geometry.Polyline) float64 {
	return diffAt(a, b, cfg.RasterScale)
}

func diffAt(a, b geometry.Polyline, scale float64) float64 {
	bounds := Bounds(a, b)
	ma := Rasterize([]geometry.Polyline{a}, bounds, scale)
	mb := Rasterize([]geometry.Polyline{b}, bounds, scale)
	return similarity(ma, mb)
}

// similarity is 1 - Σ|a-b| / Σ(a+b) over the alpha values of two masks of the same size.
func similarity(a, b *image.Alpha) float64 {
	var diff, total uint64
	for i, pa := range a.Pix {
		pb := b.Pix[i]
		if pa > pb {
			diff += uint64(pa - pb)
		} else {
			diff += uint64(pb - pa)
		}
		total += uint64(pa) + uint64(pb)
	}
	if total == 0 {
		return 0
	}
	return 1 - float64(diff)/float64(total)
}

// DiffShape compares two saved shapes. The shape recorded on the larger paper is
// mapped onto the smaller one's basis first, so shapes cut at different sizes or
// positions compare by form alone. The basis radius is drawn cfg.CompareRadius
// pixels long.
func DiffShape(a, b shape.Shape) float64 {
	if b.Base.Radius < a.Base.Radius {
		a, b = b, a
	}
	return diffAt(a.Polygon, shape.Map(b.Polygon, b.Base, a.Base), cfg.CompareRadius/a.Base.Radius)
}
