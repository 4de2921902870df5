package geometry

import "math"

// Segment returns the i-th segment of the polygon, wrapping around to the first point.
func (poly Polyline) Segment(i int) LineSegment {
	return LineSegment{A: poly[i], B: poly[(i+1)%len(poly)]}
}

// Contains reports whether p is inside the closed polygon, using the crossing
// number of a horizontal ray cast to the right of p. Points on the upper end of an
// edge's y span are not counted, so shared vertices count once.
func (poly Polyline) Contains(p Point) bool {
	crossings := 0
	for i := range poly {
		p1 := poly[i]
		p2 := poly[(i+1)%len(poly)]
		if p1.Y == p2.Y {
			continue
		}
		if p.Y < math.Min(p1.Y, p2.Y) || p.Y >= math.Max(p1.Y, p2.Y) {
			continue
		}
		x := (p.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
		if x > p.X {
			crossings++
		}
	}
	return crossings%2 == 1
}

// OnBoundary reports whether p is within tolerance of any edge of the closed polygon.
func (poly Polyline) OnBoundary(p Point, tolerance float64) bool {
	for i := range poly {
		if poly.Segment(i).Distance(p) <= tolerance {
			return true
		}
	}
	return false
}

// SignedArea returns the area of the closed polygon. With Y pointing down, polygons
// that run counter-clockwise on screen have a positive area.
func (poly Polyline) SignedArea() float64 {
	sum := 0.0
	for i := range poly {
		sum += poly[i].CrossProductZ(poly[(i+1)%len(poly)])
	}
	return -sum / 2
}

// Perimeter returns the length of the closed polygon.
func (poly Polyline) Perimeter() float64 {
	total := 0.0
	for i := range poly {
		total += poly.Segment(i).Length()
	}
	return total
}

// SelfIntersects reports whether any two non-adjacent segments of the open polyline cross.
func (line Polyline) SelfIntersects() bool {
	for i := 1; i < len(line); i++ {
		a := LineSegment{A: line[i-1], B: line[i]}
		for j := i + 2; j < len(line); j++ {
			if a.Intersects(LineSegment{A: line[j-1], B: line[j]}) {
				return true
			}
		}
	}
	return false
}

func (line Polyline) Clone() Polyline {
	if line == nil {
		return nil
	}
	return append(Polyline(nil), line...)
}
