package geometry

// Simplify removes jitter from an open polyline. An interior point is dropped when it
// lies closer than epsilon to the line through the last kept point and the next
// point. The first and last points are always kept.
func (points Polyline) Simplify(epsilon float64) Polyline {
	if len(points) <= 2 {
		return points.Clone()
	}

	simplified := Polyline{points[0]}
	last := points[0]
	for i := 1; i < len(points)-1; i++ {
		p := points[i]
		next := points[i+1]
		if LineDeviation(p, last, next) < epsilon {
			continue
		}
		simplified = append(simplified, p)
		last = p
	}
	return append(simplified, points[len(points)-1])
}
