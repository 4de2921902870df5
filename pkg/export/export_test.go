package export

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"jcuts/pkg/geometry"
	"jcuts/pkg/paper"
	"jcuts/pkg/symmetry"

	"github.com/google/go-cmp/cmp"
)

var approx = cmp.Comparer(func(x, y float64) bool {
	return math.Abs(x-y) < 0.00001
})

func square(x, y, size float64) geometry.Polyline {
	return geometry.Polyline{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func artwork(t *testing.T) []geometry.Polyline {
	t.Helper()
	p := paper.New(6, geometry.Point{X: 150, Y: 150}, 100)
	if !p.TryCut(geometry.Polyline{{X: 100, Y: 30}, {X: 150, Y: 70}, {X: 200, Y: 30}}) {
		t.Fatalf("setup cut failed")
	}
	return symmetry.ExpandShape(p.Serialize())
}

func TestArtworkRoundTrip(t *testing.T) {
	polygons := artwork(t)
	data, err := Artwork(polygons, 300, 300).Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %s", err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Errorf("missing xml header: %q", data[:20])
	}
	if !bytes.Contains(data, []byte(`width="300mm"`)) {
		t.Errorf("missing width")
	}

	svg, err := ParseSVG(data)
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if svg.XMLName.Local != "svg" {
		t.Errorf("root element is %q", svg.XMLName.Local)
	}
	if diff := cmp.Diff(polygons, svg.Polygons(), approx); diff != "" {
		t.Errorf("round trip changed the artwork: %s", diff)
	}
}

func TestArtworkViewBox(t *testing.T) {
	svg := Artwork([]geometry.Polyline{square(-5, 10, 20), {{X: 0, Y: 15}}}, 0, 0)
	if svg.ViewBox != "-5 10 20 20" {
		t.Errorf("ViewBox = %q", svg.ViewBox)
	}
	if svg.Width != "" || svg.Height != "" {
		t.Errorf("expected no size, got %q x %q", svg.Width, svg.Height)
	}
	if len(svg.Children) != 1 {
		t.Errorf("expected the degenerate polygon to be dropped, got %d paths", len(svg.Children))
	}
}

func TestParseSVGErrors(t *testing.T) {
	if _, err := ParseSVG([]byte("<svg")); err == nil {
		t.Errorf("expected an xml error")
	}
	if _, err := ParseSVG([]byte(`<svg><path d="M 0 0 C 1 1 2 2 3 3"/></svg>`)); err == nil {
		t.Errorf("expected a path error")
	}
}

func TestSortLoops(t *testing.T) {
	loops := []geometry.Polyline{
		square(100, 100, 10),
		square(0, 0, 10),
		square(50, 50, 10),
		{{X: 25, Y: 5}, {X: 20, Y: 5}, {X: 20, Y: 0}, {X: 25, Y: 0}},
	}
	sorted := SortLoops(loops, geometry.Point{X: -1, Y: -1})

	want := []geometry.Polyline{
		square(0, 0, 10),
		// entered from its corner nearest to (0, 0)
		square(20, 0, 5),
		square(50, 50, 10),
		square(100, 100, 10),
	}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Errorf("incorrect order: %s", diff)
	}
}

func TestSortLoopsVisitsEachOnce(t *testing.T) {
	polygons := artwork(t)
	sorted := SortLoops(polygons, geometry.Point{})
	if len(sorted) != len(polygons) {
		t.Fatalf("got %d loops, want %d", len(sorted), len(polygons))
	}

	// each sorted loop is a rotation of a distinct input loop
	used := make([]bool, len(polygons))
	for i, loop := range sorted {
		found := false
		for j, poly := range polygons {
			if used[j] || len(poly) != len(loop) {
				continue
			}
			for k := range poly {
				if cmp.Equal(rotate(poly, k), loop) {
					used[j], found = true, true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			t.Errorf("sorted loop %d does not match an input loop", i)
		}
	}
}

func TestSortLoopsShared(t *testing.T) {
	// loops sharing a vertex are both kept
	a := geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	b := geometry.Polyline{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}
	sorted := SortLoops([]geometry.Polyline{b, a, nil}, geometry.Point{})
	want := []geometry.Polyline{a, {{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Errorf("incorrect order: %s", diff)
	}
}

func TestGCode(t *testing.T) {
	var buf bytes.Buffer
	loops := []geometry.Polyline{square(0, 0, 10), square(20, 0, 10)}
	if err := GCode(&buf, loops); err != nil {
		t.Fatalf("gcode failed: %s", err)
	}
	out := buf.String()

	if got := strings.Count(out, "(pen down)"); got != len(loops) {
		t.Errorf("got %d pen downs, want %d", got, len(loops))
	}
	for _, want := range []string{
		"G21 (metric)",
		"G0 X20.00 Y0.00",
		"G1 X10.00 Y-10.00 F1500.00",
		"M5 (stop cutter)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	// the first loop starts at home, so there is no travel move to it
	if strings.Contains(out, "G0 X0.00 Y0.00\n") {
		t.Errorf("unexpected travel move to the first loop")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

func TestGCodeWriteError(t *testing.T) {
	if err := GCode(failingWriter{}, nil); err != bytes.ErrTooLarge {
		t.Errorf("got error %v, want %v", err, bytes.ErrTooLarge)
	}
}

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	if err := Preview(&buf, []geometry.Polyline{square(0, 0, 10), square(20, 0, 10)}); err != nil {
		t.Fatalf("preview failed: %s", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 10 {
		t.Errorf("unexpected size %v", b)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0 {
		t.Errorf("inside pixel is not black")
	}
	if r, _, _, _ := img.At(15, 5).RGBA(); r != 0xffff {
		t.Errorf("gap pixel is not white")
	}
}
