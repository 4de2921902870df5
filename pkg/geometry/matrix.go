package geometry

import "math"

// Matrix is a 2D affine transform in SVG order:
//
//	⎡ A  C  E ⎤
//	⎢ B  D  F ⎥
//	⎣ 0  0  1 ⎦
type Matrix struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

var Identity = Matrix{
	A: 1, C: 0, E: 0,
	B: 0, D: 1, F: 0,
}

func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, C: 0, E: x,
		B: 0, D: 1, F: y,
	}
}

func ScaleBy(f float64) Matrix {
	return Matrix{
		A: f, C: 0, E: 0,
		B: 0, D: f, F: 0,
	}
}

// RotateAbout rotates by angle radians around center.
func RotateAbout(angle float64, center Point) Matrix {
	//  ⎡ cos(θ)  −sin(θ)  −x⋅cos(θ)+y⋅sin(θ)+x ⎤
	//  ⎢ sin(θ)   cos(θ)  −x⋅sin(θ)−y⋅cos(θ)+y |
	//  ⎣   0        0               1          ⎦
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	x, y := center.X, center.Y
	return Matrix{
		A: cos, C: -sin, E: -x*cos + y*sin + x,
		B: sin, D: cos, F: -x*sin - y*cos + y,
	}
}

// ReflectAbout mirrors across the line through center at axisAngle radians.
func ReflectAbout(axisAngle float64, center Point) Matrix {
	cos := math.Cos(2 * axisAngle)
	sin := math.Sin(2 * axisAngle)
	reflect := Matrix{
		A: cos, C: sin, E: 0,
		B: sin, D: -cos, F: 0,
	}
	return Translate(center.X, center.Y).
		Multiply(reflect).
		Multiply(Translate(-center.X, -center.Y))
}

func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

func (m Matrix) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformPolyline returns a transformed copy of the polyline.
func (m Matrix) TransformPolyline(line Polyline) Polyline {
	out := make(Polyline, len(line))
	for i, p := range line {
		out[i] = m.Apply(p)
	}
	return out
}
