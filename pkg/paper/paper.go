// Package paper models the paper left in one wedge of a folded sheet, and cuts it.
//
// The paper's outline is a Loop of labeled edges. A fresh sheet is the triangle
// between two neighbouring vertices of a regular 2N-gon and its center: two fold
// lines (AdhesionA, AdhesionB) and the outer Boundary. Every successful cut splits
// the outline along the stroke; the piece still glued to the folds stays, and
// the other piece is kept as the cut-off until the next cut.
package paper

import (
	"math"

	"jcuts/pkg/cfg"
	"jcuts/pkg/geometry"
	"jcuts/pkg/shape"
	"jcuts/pkg/svgpath"

	"golang.org/x/xerrors"
)

// Paper owns the outline of the remaining paper and the most recently cut-off piece.
// It is not safe for concurrent use.
type Paper struct {
	edgeCount int
	center    geometry.Point
	radius    float64

	model  Loop
	cutOff Loop
}

// New returns an uncut paper. It panics on an invalid base; use ValidateBase for
// untrusted input.
func New(edgeCount int, center geometry.Point, radius float64) *Paper {
	p := &Paper{}
	p.Rebuild(edgeCount, center, radius)
	return p
}

// ValidateBase reports whether a paper can be built with these parameters.
func ValidateBase(edgeCount int, center geometry.Point, radius float64) error {
	if edgeCount < cfg.MinEdgeCount {
		return xerrors.Errorf("edge count %d is below the minimum of %d", edgeCount, cfg.MinEdgeCount)
	}
	if edgeCount > cfg.MaxEdgeCount {
		return xerrors.Errorf("edge count %d is above the maximum of %d", edgeCount, cfg.MaxEdgeCount)
	}
	return shape.Basis{Center: center, Radius: radius}.Validate()
}

// Rebuild resets the paper to an uncut wedge, discarding all cuts.
func (p *Paper) Rebuild(edgeCount int, center geometry.Point, radius float64) {
	if err := ValidateBase(edgeCount, center, radius); err != nil {
		panic("paper: " + err.Error())
	}
	p.edgeCount = edgeCount
	p.center = center
	p.radius = radius
	p.model = wedge(edgeCount, center, radius)
	p.cutOff = nil
}

// wedgeStartAngle puts the wedge's bisector on the upward axis.
func wedgeStartAngle(edgeCount int) float64 {
	return -math.Pi/2 - math.Pi/float64(edgeCount)/2
}

//	start           next
//	 +-------------+
//	  \           /
//	   \         /
//	    \       /
//	     \     /
//	      \   /
//	       \ /
//	        +
//	      center
func wedge(edgeCount int, center geometry.Point, radius float64) Loop {
	m := geometry.RegularPolygon(edgeCount*2, center, radius, wedgeStartAngle(edgeCount))
	start, next := m[0], m[1]
	return Loop{
		{From: start, To: center, Label: AdhesionA},
		{From: center, To: next, Label: AdhesionB},
		{From: next, To: start, Label: Boundary},
	}
}

func (p *Paper) EdgeCount() int {
	return p.edgeCount
}

func (p *Paper) Center() geometry.Point {
	return p.center
}

func (p *Paper) Radius() float64 {
	return p.radius
}

func (p *Paper) Basis() shape.Basis {
	return shape.Basis{Center: p.center, Radius: p.radius}
}

// Model returns a copy of the current outline.
func (p *Paper) Model() Loop {
	return p.model.Clone()
}

// Polygon returns the current outline as a closed polygon.
func (p *Paper) Polygon() geometry.Polyline {
	return p.model.Polygon()
}

// CutOff returns a copy of the piece removed by the last cut; it is empty before
// the first cut.
func (p *Paper) CutOff() Loop {
	return p.cutOff.Clone()
}

func (p *Paper) CutOffPolygon() geometry.Polyline {
	return p.cutOff.Polygon()
}

// Serialize returns the position independent record of the current outline.
func (p *Paper) Serialize() shape.Shape {
	return shape.Shape{
		EdgeCount: p.edgeCount,
		Base:      p.Basis(),
		Polygon:   p.Polygon(),
	}
}

// Deserialize replaces the paper with a saved shape. Edge labels are recovered by
// matching edges against the fold lines and the outer boundary of the shape's
// base wedge. On error the paper is left as it was.
func (p *Paper) Deserialize(s shape.Shape) error {
	if err := s.Validate(cfg.MinEdgeCount, cfg.MaxEdgeCount); err != nil {
		return xerrors.Errorf("deserialize: %w", err)
	}

	base := wedge(s.EdgeCount, s.Base.Center, s.Base.Radius)
	tolerance := cfg.LabelTolerance * s.Base.Radius
	label := func(from, to geometry.Point) Label {
		for _, e := range base {
			seg := e.Segment()
			if seg.Distance(from) <= tolerance && seg.Distance(to) <= tolerance {
				return e.Label
			}
		}
		return Scar
	}

	model := make(Loop, len(s.Polygon))
	for i, from := range s.Polygon {
		to := s.Polygon[(i+1)%len(s.Polygon)]
		model[i] = Edge{From: from, To: to, Label: label(from, to)}
	}

	p.edgeCount = s.EdgeCount
	p.center = s.Base.Center
	p.radius = s.Base.Radius
	p.model = model
	p.cutOff = nil
	return nil
}

// FullPath returns the SVG path of the whole uncut sheet.
func (p *Paper) FullPath() string {
	m := geometry.RegularPolygon(p.edgeCount*2, p.center, p.radius, wedgeStartAngle(p.edgeCount))
	return svgpath.ToString([]*svgpath.SubPath{svgpath.FromPolyline(m, true)})
}

// ModelPath returns the SVG path of the current outline.
func (p *Paper) ModelPath() string {
	return svgpath.ToString([]*svgpath.SubPath{svgpath.FromPolyline(p.Polygon(), true)})
}
