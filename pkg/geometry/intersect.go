package geometry

// SegmentIntersect returns the point where segment p1-p2 strictly crosses segment p3-p4.
// Parallel or disjoint segments, and segments that only touch at an endpoint, do not
// intersect. The result does not depend on the order of the two segments.
func SegmentIntersect(p1, p2, p3, p4 Point) (Point, bool) {
	d1 := p2.Minus(p1)
	d2 := p4.Minus(p3)
	denom := d1.CrossProductZ(d2)
	if denom == 0 {
		return Point{}, false
	}

	w := p3.Minus(p1)
	t := w.CrossProductZ(d2) / denom
	u := w.CrossProductZ(d1) / denom
	if !(0 < t && t < 1 && 0 < u && u < 1) {
		return Point{}, false
	}

	// Average the point as seen from both segments. Swapping the segments swaps
	// t and u exactly, so this keeps the result symmetric.
	a := p1.Add(d1.Scale(t))
	b := p3.Add(d2.Scale(u))
	return a.Add(b).Scale(0.5), true
}

// Intersects reports whether the two segments strictly cross.
func (s LineSegment) Intersects(other LineSegment) bool {
	_, ok := SegmentIntersect(s.A, s.B, other.A, other.B)
	return ok
}
