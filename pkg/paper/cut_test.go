package paper

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"jcuts/pkg/geometry"

	"github.com/google/go-cmp/cmp"
)

// vStroke bites a V out of the outer boundary of a 6-fold paper of radius 100.
var vStroke = geometry.Polyline{{X: -50, Y: -120}, {X: 0, Y: -80}, {X: 50, Y: -120}}

// exactSquare is an outline with integer vertices, so crossings through them are
// not subject to rounding.
var exactSquare = Loop{
	{From: geometry.Point{X: -10, Y: -10}, To: geometry.Point{X: 0, Y: 0}, Label: AdhesionA},
	{From: geometry.Point{X: 0, Y: 0}, To: geometry.Point{X: 10, Y: -10}, Label: AdhesionB},
	{From: geometry.Point{X: 10, Y: -10}, To: geometry.Point{X: -10, Y: -10}, Label: Boundary},
}

// checkConservation verifies that a cut only adds the scar, twice, and that the two
// pieces cover the old outline.
func checkConservation(t *testing.T, before Loop, c *Cut) {
	t.Helper()
	scar := c.Scar.Length()
	if got, want := c.Kept.Length()+c.Discarded.Length()-2*scar, before.Length(); math.Abs(got-want) > 1e-6 {
		t.Errorf("lengths do not add up: got %f, want %f", got, want)
	}
	if got, want := c.Kept.SignedArea()+c.Discarded.SignedArea(), before.SignedArea(); math.Abs(got-want) > 1e-6 {
		t.Errorf("areas do not add up: got %f, want %f", got, want)
	}
	for name, l := range map[string]Loop{"kept": c.Kept, "discarded": c.Discarded} {
		if !l.Connected() {
			t.Errorf("%s loop is not connected: %v", name, l)
		}
		if !(l.SignedArea() > 0) {
			t.Errorf("%s loop has non-positive area %f", name, l.SignedArea())
		}
	}
}

func TestCutV(t *testing.T) {
	tests := []struct {
		name   string
		stroke geometry.Polyline
	}{
		{"left to right", vStroke},
		{"right to left", geometry.Polyline{{X: 50, Y: -120}, {X: 0, Y: -80}, {X: -50, Y: -120}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := New(6, origin, 100)
			before := p.Model()

			c, err := p.Cut(test.stroke)
			if err != nil {
				t.Fatalf("cut failed: %s", err)
			}
			checkConservation(t, before, c)

			if c.EnterEdge != 2 || c.ExitEdge != 2 {
				t.Errorf("expected both crossings on the boundary, got edges %d and %d", c.EnterEdge, c.ExitEdge)
			}
			if len(c.Scar) != 2 {
				t.Errorf("expected 2 scar edges, got %d", len(c.Scar))
			}
			if !c.Kept.Attached() {
				t.Errorf("kept piece lost a fold line: %v", c.Kept)
			}
			if math.Abs(c.Kept.AdhesionLength()-200) > 1e-9 {
				t.Errorf("kept adhesion length = %f, want 200", c.Kept.AdhesionLength())
			}
			if c.Discarded.Has(AdhesionA) || c.Discarded.Has(AdhesionB) {
				t.Errorf("discarded piece has a fold line: %v", c.Discarded)
			}
			if len(c.Kept) != 6 || len(c.Discarded) != 3 {
				t.Errorf("got %d kept and %d discarded edges, want 6 and 3", len(c.Kept), len(c.Discarded))
			}

			if diff := cmp.Diff(c.Kept, p.Model()); diff != "" {
				t.Errorf("paper does not hold the kept piece: %s", diff)
			}
			if diff := cmp.Diff(c.Discarded, p.CutOff()); diff != "" {
				t.Errorf("paper does not hold the discarded piece: %s", diff)
			}

			// the notch's tip is now a vertex of the outline
			found := false
			for _, pt := range p.Polygon() {
				if pt == (geometry.Point{X: 0, Y: -80}) {
					found = true
				}
			}
			if !found {
				t.Errorf("notch tip missing from %v", p.Polygon())
			}
		})
	}
}

func TestCutTip(t *testing.T) {
	tests := []struct {
		name        string
		stroke      geometry.Polyline
		enter, exit int
	}{
		{"left to right", geometry.Polyline{{X: -50, Y: -20}, {X: 50, Y: -20}}, 0, 1},
		{"right to left", geometry.Polyline{{X: 50, Y: -20}, {X: -50, Y: -20}}, 1, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := New(6, origin, 100)
			before := p.Model()

			c, err := p.Cut(test.stroke)
			if err != nil {
				t.Fatalf("cut failed: %s", err)
			}
			checkConservation(t, before, c)

			if c.EnterEdge != test.enter || c.ExitEdge != test.exit {
				t.Errorf("got crossing edges %d and %d, want %d and %d", c.EnterEdge, c.ExitEdge, test.enter, test.exit)
			}
			// Both pieces keep a bit of each fold line; the one with more of them stays.
			if !c.Kept.Attached() || !c.Discarded.Attached() {
				t.Errorf("expected both pieces to be attached")
			}
			if !c.Kept.Has(Boundary) || c.Discarded.Has(Boundary) {
				t.Errorf("expected the outer piece to stay")
			}
			if !(c.Kept.AdhesionLength() > c.Discarded.AdhesionLength()) {
				t.Errorf("kept adhesion %f is not longer than discarded %f", c.Kept.AdhesionLength(), c.Discarded.AdhesionLength())
			}
			if p.Polygon().Contains(origin) || p.Polygon().OnBoundary(origin, 1e-9) {
				t.Errorf("the center is still part of the paper")
			}
		})
	}
}

func TestCutCorner(t *testing.T) {
	tests := []struct {
		name        string
		stroke      geometry.Polyline
		enter, exit int
	}{
		{"from the fold", geometry.Polyline{{X: -40, Y: -80}, {X: -10, Y: -110}}, 0, 2},
		{"from the boundary", geometry.Polyline{{X: -10, Y: -110}, {X: -40, Y: -80}}, 2, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := New(6, origin, 100)
			before := p.Model()

			c, err := p.Cut(test.stroke)
			if err != nil {
				t.Fatalf("cut failed: %s", err)
			}
			checkConservation(t, before, c)

			if c.EnterEdge != test.enter || c.ExitEdge != test.exit {
				t.Errorf("got crossing edges %d and %d, want %d and %d", c.EnterEdge, c.ExitEdge, test.enter, test.exit)
			}
			if !c.Kept.Attached() {
				t.Errorf("kept piece is not attached: %v", c.Kept)
			}
			if c.Discarded.Has(AdhesionB) {
				t.Errorf("corner piece should only touch fold line A: %v", c.Discarded)
			}
			if len(c.Discarded) != 3 {
				t.Errorf("corner piece has %d edges, want 3", len(c.Discarded))
			}
			if !(c.Discarded.SignedArea() < c.Kept.SignedArea()) {
				t.Errorf("the corner should be the small piece")
			}
		})
	}
}

func TestCutThroughNotchTip(t *testing.T) {
	p := New(6, origin, 100)
	if _, err := p.Cut(vStroke); err != nil {
		t.Fatalf("setup cut failed: %s", err)
	}
	before := p.Model()
	outside := geometry.Point{X: 55, Y: -45}

	// enters the paper exactly through the notch's tip
	c, err := p.Cut(geometry.Polyline{{X: 0, Y: -100}, {X: 0, Y: -50}, {X: 60, Y: -50}, {X: 60, Y: -40}, {X: 5, Y: -40}, {X: 5, Y: 10}})
	if err != nil {
		t.Fatalf("cut failed: %s", err)
	}
	checkConservation(t, before, c)

	if c.Enter != (geometry.Point{X: 0, Y: -80}) {
		t.Errorf("entered at %v, want the notch tip", c.Enter)
	}
	if !(p.Model().SignedArea() < before.SignedArea()) {
		t.Errorf("cut grew the paper from %f to %f", before.SignedArea(), p.Model().SignedArea())
	}
	if p.Polygon().Contains(outside) {
		t.Errorf("%v is part of the paper", outside)
	}
}

func TestCutThroughApex(t *testing.T) {
	p := New(6, origin, 100)
	p.model = exactSquare.Clone()
	before := p.Model()

	c, err := p.Cut(geometry.Polyline{{X: 0, Y: -20}, {X: 0, Y: 20}})
	if err != nil {
		t.Fatalf("cut failed: %s", err)
	}
	checkConservation(t, before, c)

	if c.EnterEdge != 2 || c.ExitEdge != 1 {
		t.Errorf("got crossing edges %d and %d, want 2 and 1", c.EnterEdge, c.ExitEdge)
	}
	if c.Exit != origin {
		t.Errorf("left at %v, want the apex", c.Exit)
	}
	if !c.Kept.Has(AdhesionA) || c.Kept.Has(AdhesionB) {
		t.Errorf("expected the half on fold line A to stay: %v", c.Kept)
	}
}

func TestCutSimplifiesStroke(t *testing.T) {
	p := New(6, origin, 100)
	c, err := p.Cut(geometry.Polyline{{X: -50, Y: -20}, {X: 0, Y: -20.1}, {X: 50, Y: -20}})
	if err != nil {
		t.Fatalf("cut failed: %s", err)
	}
	if len(c.Stroke) != 2 {
		t.Errorf("expected the jitter point to be dropped, got %v", c.Stroke)
	}
	if len(c.Scar) != 1 {
		t.Errorf("expected a single scar edge, got %d", len(c.Scar))
	}
}

func TestCutErrors(t *testing.T) {
	tests := []struct {
		name  string
		model Loop
		path  geometry.Polyline
		want  error
	}{
		{"empty", nil, nil, ErrInvalidPath},
		{"one point", nil, geometry.Polyline{{X: 200, Y: 200}}, ErrInvalidPath},
		{"start inside", nil, geometry.Polyline{{X: 0, Y: -50}, {X: 0, Y: -150}}, ErrEndpointInsidePaper},
		{"end inside", nil, geometry.Polyline{{X: 0, Y: -150}, {X: 0, Y: -50}}, ErrEndpointInsidePaper},
		{"end on fold", nil, geometry.Polyline{{X: 0, Y: -150}, {X: 0, Y: 0}}, ErrEndpointInsidePaper},
		{"self intersecting", nil, geometry.Polyline{{X: -60, Y: -60}, {X: 60, Y: -60}, {X: 60, Y: -40}, {X: -60, Y: -120}}, ErrSelfIntersectingPath},
		{"below the center", nil, geometry.Polyline{{X: -50, Y: 10}, {X: 50, Y: 10}}, ErrNoBoundaryCrossing},
		{"past the corner", nil, geometry.Polyline{{X: -50, Y: -50}, {X: 0, Y: -150}}, ErrNoBoundaryCrossing},
		{"leaves at a boundary point", exactSquare, geometry.Polyline{{X: 0, Y: -15}, {X: 0, Y: -5}, {X: 5, Y: -5}, {X: 20, Y: 0}, {X: 20, Y: -20}, {X: -5, Y: -20}, {X: -5, Y: 5}}, ErrIncompleteCrossing},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := New(6, origin, 100)
			if test.model != nil {
				p.model = test.model.Clone()
			}
			if _, err := p.Cut(vStroke); test.model == nil && err != nil {
				t.Fatalf("setup cut failed: %s", err)
			}
			model, cutOff := p.Model(), p.CutOff()

			c, err := p.Cut(test.path)
			if !errors.Is(err, test.want) {
				t.Fatalf("got error %v, want %v", err, test.want)
			}
			if c != nil {
				t.Errorf("expected no cut on error")
			}
			if diff := cmp.Diff(model, p.Model()); diff != "" {
				t.Errorf("failed cut changed the outline: %s", diff)
			}
			if diff := cmp.Diff(cutOff, p.CutOff()); diff != "" {
				t.Errorf("failed cut changed the cut-off piece: %s", diff)
			}
		})
	}
}

func TestCenterStartRejected(t *testing.T) {
	for n := 3; n <= 12; n++ {
		p := New(n, origin, 100)
		if p.TryCut(geometry.Polyline{origin, {X: 0, Y: -150}}) {
			t.Errorf("N=%d: a stroke starting at the center was accepted", n)
		}
		_, err := p.Cut(geometry.Polyline{origin, {X: 0, Y: -150}})
		if !errors.Is(err, ErrEndpointInsidePaper) {
			t.Errorf("N=%d: got error %v, want %v", n, err, ErrEndpointInsidePaper)
		}
	}
}

func TestCutNaNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a NaN stroke point")
		}
	}()
	p := New(6, origin, 100)
	p.Cut(geometry.Polyline{{X: math.NaN(), Y: 0}, {X: 0, Y: -150}})
}

func TestSequentialCuts(t *testing.T) {
	strokes := []geometry.Polyline{
		vStroke,
		{{X: -40, Y: -80}, {X: -10, Y: -110}},
		{{X: -50, Y: -20}, {X: 50, Y: -20}},
		{{X: 60, Y: -100}, {X: 10, Y: -60}, {X: 60, Y: -40}},
	}
	for n := 3; n <= 12; n++ {
		p := New(n, origin, 100)
		area := p.Model().SignedArea()
		for i, s := range strokes {
			before := p.Model()
			c, err := p.Cut(s)
			if err != nil {
				if diff := cmp.Diff(before, p.Model()); diff != "" {
					t.Errorf("N=%d stroke %d: failed cut changed the paper", n, i)
				}
				continue
			}
			checkConservation(t, before, c)
			if !p.Model().Connected() {
				t.Errorf("N=%d stroke %d: outline is not connected", n, i)
			}
			if a := p.Model().SignedArea(); !(a > 0 && a < area+1e-9) {
				t.Errorf("N=%d stroke %d: area %f is out of range", n, i, a)
			}
			area = p.Model().SignedArea()
		}
	}
}

func TestTryCut(t *testing.T) {
	p := New(6, origin, 100)
	if !p.TryCut(vStroke) {
		t.Errorf("expected the V cut to succeed")
	}
	if p.TryCut(geometry.Polyline{{X: -50, Y: 10}, {X: 50, Y: 10}}) {
		t.Errorf("expected a stroke below the center to fail")
	}

	p.Rebuild(6, origin, 100)
	if diff := cmp.Diff(New(6, origin, 100).Model(), p.Model(), approx); diff != "" {
		t.Errorf("rebuild did not restore the paper: %s", diff)
	}
	if len(p.CutOff()) != 0 {
		t.Errorf("rebuild kept the cut-off piece")
	}
}

func TestCutLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := New(6, origin, 100)
	p.TryCut(geometry.Polyline{{X: -50, Y: 10}, {X: 50, Y: 10}})
	p.TryCut(vStroke)

	out := buf.String()
	if !strings.Contains(out, "stroke rejected") {
		t.Errorf("rejection was not logged: %q", out)
	}
	if !strings.Contains(out, "cut applied") {
		t.Errorf("cut was not logged: %q", out)
	}
}
