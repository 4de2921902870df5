package paper

import (
	"math"

	"jcuts/pkg/cfg"
	"jcuts/pkg/geometry"

	"golang.org/x/xerrors"
)

// Cut describes an applied cut.
type Cut struct {
	// Stroke is the simplified stroke that was applied.
	Stroke geometry.Polyline
	// Scar runs from Enter to Exit along the stroke.
	Scar Loop
	// Enter and Exit are where the stroke crosses the old outline, on the old
	// outline's edges EnterEdge and ExitEdge.
	Enter, Exit         geometry.Point
	EnterEdge, ExitEdge int
	// Kept is the new outline, Discarded the piece that fell off.
	Kept, Discarded Loop
}

// crossing is a point where the stroke crosses the outline.
type crossing struct {
	// hop is the index of the stroke point the crossing hop leads to.
	hop  int
	edge int
	at   geometry.Point
}

// Cut applies a stroke to the paper. When the stroke enters the paper and leaves it
// again, the outline is split along the stroke and the piece still attached to the
// folds is kept. Otherwise the returned error is one of ErrInvalidPath,
// ErrEndpointInsidePaper, ErrSelfIntersectingPath, ErrNoBoundaryCrossing or
// ErrIncompleteCrossing, and the paper is unchanged.
func (p *Paper) Cut(path geometry.Polyline) (*Cut, error) {
	stroke, err := prepareStroke(path, p.model.Polygon())
	if err != nil {
		logger().Debug("stroke rejected", "reason", err)
		return nil, err
	}

	enter, ok := scan(stroke, p.model)
	if !ok {
		logger().Debug("stroke rejected", "reason", ErrNoBoundaryCrossing)
		return nil, ErrNoBoundaryCrossing
	}
	scar, exit, ok := trace(stroke, p.model, enter)
	if !ok {
		logger().Debug("stroke rejected", "reason", ErrIncompleteCrossing,
			"enterEdge", enter.edge, "scarEdges", len(scar))
		return nil, ErrIncompleteCrossing
	}
	if !scarInside(scar, p.model.Polygon()) {
		logger().Debug("stroke rejected", "reason", ErrIncompleteCrossing,
			"enterEdge", enter.edge, "exitEdge", exit.edge, "scarEdges", len(scar))
		return nil, xerrors.Errorf("scar leaves the paper: %w", ErrIncompleteCrossing)
	}

	a, b := split(p.model, enter, exit, scar)
	kept, discarded := choose(a, b)
	p.model = kept
	p.cutOff = discarded

	logger().Info("cut applied",
		"enterEdge", enter.edge, "exitEdge", exit.edge,
		"scarEdges", len(scar), "keptEdges", len(kept), "discardedEdges", len(discarded))

	return &Cut{
		Stroke:    stroke,
		Scar:      scar,
		Enter:     enter.at,
		Exit:      exit.at,
		EnterEdge: enter.edge,
		ExitEdge:  exit.edge,
		Kept:      kept.Clone(),
		Discarded: discarded.Clone(),
	}, nil
}

// TryCut applies a stroke and reports whether it changed the paper.
func (p *Paper) TryCut(path geometry.Polyline) bool {
	_, err := p.Cut(path)
	return err == nil
}

// nearestCrossing returns the crossing of the hop from start to end with the
// outline that lies closest to start. The edge at index skip is not tested.
// A hop through an outline vertex crosses the outline when the vertex's two
// neighbours lie on opposite sides of the hop, and is reported on the edge that
// leaves the vertex.
func nearestCrossing(start, end geometry.Point, outline Loop, skip int) (int, geometry.Point, bool) {
	best := math.Inf(1)
	edge := -1
	var at geometry.Point
	consider := func(j int, q geometry.Point) {
		d := start.Distance(q)
		if d <= cfg.CrossingTolerance {
			return
		}
		if d < best {
			best, edge, at = d, j, q
		}
	}
	for j, e := range outline {
		prev := outline[(j+len(outline)-1)%len(outline)]
		if crossesVertex(start, end, prev.From, e.From, e.To) {
			consider(j, e.From)
		}
		if j == skip {
			continue
		}
		if q, ok := geometry.SegmentIntersect(start, end, e.From, e.To); ok {
			consider(j, q)
		}
	}
	return edge, at, edge >= 0
}

// crossesVertex reports whether the hop from start to end passes through v, strictly
// between its endpoints, with prev and next on opposite sides of it.
func crossesVertex(start, end, prev, v, next geometry.Point) bool {
	d := end.Minus(start)
	length := d.Magnitude()
	if length == 0 {
		return false
	}
	if math.Abs(d.CrossProductZ(v.Minus(start)))/length > cfg.OnEdgeTolerance {
		return false
	}
	t := d.Dot(v.Minus(start)) / (length * length)
	if t <= 0 || t >= 1 {
		return false
	}
	return d.CrossProductZ(prev.Minus(start))*d.CrossProductZ(next.Minus(start)) < 0
}

// scarInside reports whether every scar edge runs through the old outline. A stroke
// that touches the outline at a hop endpoint and leaves again is not seen as a
// crossing, and the scar it leaves behind runs outside.
func scarInside(scar Loop, outline geometry.Polyline) bool {
	for _, e := range scar {
		mid := e.From.Add(e.To).Scale(0.5)
		if !outline.Contains(mid) && !outline.OnBoundary(mid, cfg.OnEdgeTolerance) {
			return false
		}
	}
	return true
}

// scan walks the stroke until it first crosses the outline.
func scan(stroke geometry.Polyline, outline Loop) (crossing, bool) {
	for i := 1; i < len(stroke); i++ {
		if j, at, ok := nearestCrossing(stroke[i-1], stroke[i], outline, -1); ok {
			return crossing{hop: i, edge: j, at: at}, true
		}
	}
	return crossing{}, false
}

// trace follows the stroke from where it entered the paper, collecting scar edges,
// until it crosses the outline again.
func trace(stroke geometry.Polyline, outline Loop, enter crossing) (Loop, crossing, bool) {
	var scar Loop
	start := enter.at
	for i := enter.hop; i < len(stroke); i++ {
		next := stroke[i]

		// A straight hop cannot cross the entry edge a second time.
		skip := -1
		if i == enter.hop {
			skip = enter.edge
		}
		if k, at, ok := nearestCrossing(start, next, outline, skip); ok {
			scar = append(scar, Edge{From: start, To: at, Label: Scar})
			return scar, crossing{hop: i, edge: k, at: at}, true
		}

		scar = append(scar, Edge{From: start, To: next, Label: Scar})
		start = next
	}
	return scar, crossing{}, false
}

// loopBuilder assembles a loop, dropping edges of zero length.
type loopBuilder Loop

func (b *loopBuilder) add(from, to geometry.Point, label Label) {
	if from == to {
		return
	}
	*b = append(*b, Edge{From: from, To: to, Label: label})
}

func (b *loopBuilder) addEdges(edges ...Edge) {
	for _, e := range edges {
		b.add(e.From, e.To, e.Label)
	}
}

// addRange adds the outline's edges from index first up to, but not including, stop,
// wrapping around the end of the outline.
func (b *loopBuilder) addRange(outline Loop, first, stop int) {
	for i := first % len(outline); i != stop; i = (i + 1) % len(outline) {
		b.addEdges(outline[i])
	}
}

func reversed(scar Loop) Loop {
	r := make(Loop, len(scar))
	for i, e := range scar {
		r[len(scar)-1-i] = e.Reverse()
	}
	return r
}

// split cuts the outline into the two loops on either side of the scar. Both loops
// run in the same direction as the outline.
func split(outline Loop, enter, exit crossing, scar Loop) (Loop, Loop) {
	var a, b loopBuilder
	j, k := enter.edge, exit.edge
	p0, p1 := enter.at, exit.at
	back := reversed(scar)

	if j != k {
		ej, ek := outline[j], outline[k]

		a.add(p0, ej.To, ej.Label)
		a.addRange(outline, j+1, k)
		a.add(ek.From, p1, ek.Label)
		a.addEdges(back...)

		b.addEdges(scar...)
		b.add(p1, ek.To, ek.Label)
		b.addRange(outline, k+1, j)
		b.add(ej.From, p0, ej.Label)
		return Loop(a), Loop(b)
	}

	// Both crossings are on the same edge. The scar bites a piece out of it.
	e := outline[j]
	if e.From.Distance(p0) < e.From.Distance(p1) {
		// e.From, p0, p1, e.To
		a.add(p1, e.To, e.Label)
		a.addRange(outline, j+1, j)
		a.add(e.From, p0, e.Label)
		a.addEdges(scar...)

		b.add(p0, p1, e.Label)
		b.addEdges(back...)
	} else {
		// e.From, p1, p0, e.To
		a.add(p0, e.To, e.Label)
		a.addRange(outline, j+1, j)
		a.add(e.From, p1, e.Label)
		a.addEdges(back...)

		b.add(p1, p0, e.Label)
		b.addEdges(scar...)
	}
	return Loop(a), Loop(b)
}

// choose picks the loop that stays. A loop that lost either fold line has come
// loose and falls away. If that does not decide it, the loop with more fold line
// length stays, and ties go to a.
func choose(a, b Loop) (kept, discarded Loop) {
	if a.Attached() != b.Attached() {
		if a.Attached() {
			return a, b
		}
		return b, a
	}
	if a.AdhesionLength() >= b.AdhesionLength() {
		return a, b
	}
	return b, a
}
