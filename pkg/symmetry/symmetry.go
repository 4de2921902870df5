// Package symmetry unfolds the paper of one wedge into the whole N-fold artwork.
package symmetry

import (
	"math"

	"jcuts/pkg/geometry"
	"jcuts/pkg/shape"
)

// FoldAngle returns the angle, in radians, of the fold line shared by the cut
// wedge and its mirror image. The wedge is centered on the upward axis with Y
// pointing down.
func FoldAngle(edgeCount int) float64 {
	return -math.Pi/2 + math.Pi/float64(edgeCount)/2
}

// Expand returns the 2N copies of a wedge polygon that make up the unfolded
// paper: the polygon and its mirror image across the fold line, each rotated
// into all N positions around center. The first two results are the polygon
// itself and its mirror.
func Expand(edgeCount int, center geometry.Point, polygon geometry.Polyline) []geometry.Polyline {
	if edgeCount <= 0 {
		return nil
	}
	mirror := geometry.ReflectAbout(FoldAngle(edgeCount), center).TransformPolyline(polygon)
	// reverse to keep the input polygon's winding
	for i, j := 0, len(mirror)-1; i < j; i, j = i+1, j-1 {
		mirror[i], mirror[j] = mirror[j], mirror[i]
	}

	out := make([]geometry.Polyline, 0, 2*edgeCount)
	out = append(out, polygon.Clone(), mirror)
	for i := 1; i < edgeCount; i++ {
		m := geometry.RotateAbout(float64(i)*2*math.Pi/float64(edgeCount), center)
		out = append(out, m.TransformPolyline(polygon), m.TransformPolyline(mirror))
	}
	return out
}

// ExpandShape unfolds a saved shape around its own basis.
func ExpandShape(s shape.Shape) []geometry.Polyline {
	return Expand(s.EdgeCount, s.Base.Center, s.Polygon)
}
