package geometry

import (
	"math"

	json "github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// Point is a 2D coordinate. Y increases downward, as on a canvas.
type Point struct {
	X float64
	Y float64
}

type Vector2 = Point

type LineSegment struct {
	A Point
	B Point
}

// Polyline is an ordered sequence of points. Depending on context it is an open
// stroke or a closed polygon whose last point connects back to the first.
type Polyline []Point

func (a Vector2) Minus(b Vector2) Vector2 {
	return Vector2{
		X: a.X - b.X,
		Y: a.Y - b.Y,
	}
}

func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{
		X: a.X + b.X,
		Y: a.Y + b.Y,
	}
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (a Vector2) CrossProductZ(b Vector2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (a Vector2) Dot(b Vector2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Scale returns the point scaled by the given factor f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// MarshalJSON encodes the point as a two element array, [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return xerrors.Errorf("point: %w", err)
	}
	if len(xy) != 2 {
		return xerrors.Errorf("point: expected [x, y], got %d values", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (s LineSegment) Length() float64 {
	return s.A.Distance(s.B)
}

// Distance returns the distance between a point and a line segment.
func (s LineSegment) Distance(p Point) float64 {
	AB := s.B.Minus(s.A)
	AP := p.Minus(s.A)
	lengthSquared := AB.Dot(AB)
	if lengthSquared == 0 {
		return AP.Magnitude()
	}

	// Project onto the segment, clamping to the endpoints.
	t := AP.Dot(AB) / lengthSquared
	if t <= 0 {
		return AP.Magnitude()
	}
	if t >= 1 {
		return p.Distance(s.B)
	}
	return math.Abs(AP.CrossProductZ(AB)) / math.Sqrt(lengthSquared)
}

// LineDeviation returns the perpendicular distance from p to the infinite line
// through a and b. If a and b coincide it is the distance from p to a.
func LineDeviation(p, a, b Point) float64 {
	ab := b.Minus(a)
	length := ab.Magnitude()
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(p.Minus(a).CrossProductZ(ab)) / length
}

// Angle returns the angle of p around center, in radians.
func Angle(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// Rotate rotates p around center by angle radians.
func Rotate(p, center Point, angle float64) Point {
	return RotateAbout(angle, center).Apply(p)
}

// RegularPolygon returns the vertices of a regular polygon with the given number of
// sides, ordered by increasing angle starting at startAngle (radians).
func RegularPolygon(sides int, center Point, radius, startAngle float64) Polyline {
	points := make(Polyline, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range points {
		a := startAngle + float64(i)*step
		points[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return points
}
