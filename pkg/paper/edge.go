package paper

import (
	"fmt"

	"jcuts/pkg/geometry"
)

// Label tells what an outline edge of the paper is made of.
type Label int

const (
	// AdhesionA and AdhesionB are the two fold lines joining the wedge's outer
	// vertices to its center. The paper stays glued to its neighbours along them.
	AdhesionA Label = iota
	AdhesionB
	// Boundary is the outer edge of the uncut paper.
	Boundary
	// Scar is an edge left behind by a cut.
	Scar
)

func (l Label) String() string {
	switch l {
	case AdhesionA:
		return "adhesionA"
	case AdhesionB:
		return "adhesionB"
	case Boundary:
		return "boundary"
	case Scar:
		return "scar"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

func (l Label) IsAdhesion() bool {
	return l == AdhesionA || l == AdhesionB
}

// Edge is a directed, labeled piece of the paper's outline.
type Edge struct {
	From  geometry.Point
	To    geometry.Point
	Label Label
}

func (e Edge) Segment() geometry.LineSegment {
	return geometry.LineSegment{A: e.From, B: e.To}
}

func (e Edge) Length() float64 {
	return e.From.Distance(e.To)
}

func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From, Label: e.Label}
}

// Loop is a closed outline: each edge ends where the next one starts, and the last
// edge ends where the first one starts.
type Loop []Edge

// Polygon returns the start point of every edge.
func (l Loop) Polygon() geometry.Polyline {
	if len(l) == 0 {
		return nil
	}
	poly := make(geometry.Polyline, len(l))
	for i, e := range l {
		poly[i] = e.From
	}
	return poly
}

func (l Loop) Length() float64 {
	total := 0.0
	for _, e := range l {
		total += e.Length()
	}
	return total
}

// LabelLength returns the total length of the edges with the given label.
func (l Loop) LabelLength(label Label) float64 {
	total := 0.0
	for _, e := range l {
		if e.Label == label {
			total += e.Length()
		}
	}
	return total
}

// AdhesionLength returns the total length of the fold line edges.
func (l Loop) AdhesionLength() float64 {
	return l.LabelLength(AdhesionA) + l.LabelLength(AdhesionB)
}

func (l Loop) Has(label Label) bool {
	for _, e := range l {
		if e.Label == label {
			return true
		}
	}
	return false
}

// Attached reports whether the loop still holds both fold lines.
func (l Loop) Attached() bool {
	return l.Has(AdhesionA) && l.Has(AdhesionB)
}

// Connected reports whether every edge ends exactly where the next one starts.
func (l Loop) Connected() bool {
	for i, e := range l {
		if e.To != l[(i+1)%len(l)].From {
			return false
		}
	}
	return true
}

func (l Loop) SignedArea() float64 {
	return l.Polygon().SignedArea()
}

func (l Loop) Clone() Loop {
	if l == nil {
		return nil
	}
	return append(Loop(nil), l...)
}
