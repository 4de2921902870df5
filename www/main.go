//go:build js && wasm

package main

import (
	"syscall/js"

	"jcuts/pkg/cfg"
	"jcuts/pkg/compare"
	"jcuts/pkg/geometry"
	"jcuts/pkg/paper"
	"jcuts/pkg/shape"
	"jcuts/pkg/symmetry"
)

// papers holds the papers created from JavaScript, by handle.
var papers []*paper.Paper

func main() {
	js.Global().Set("jcutsCreatePaper", js.FuncOf(jcutsCreatePaper))
	js.Global().Set("jcutsCut", js.FuncOf(jcutsCut))
	js.Global().Set("jcutsPolygon", js.FuncOf(jcutsPolygon))
	js.Global().Set("jcutsCutOffPolygon", js.FuncOf(jcutsCutOffPolygon))
	js.Global().Set("jcutsExpand", js.FuncOf(jcutsExpand))
	js.Global().Set("jcutsDiffShape", js.FuncOf(jcutsDiffShape))
	js.Global().Set("jcutsShape", js.FuncOf(jcutsShape))
	<-make(chan any)
}

func errorValue(err string) any {
	return map[string]any{"error": err}
}

func lookup(v js.Value) (*paper.Paper, bool) {
	id := v.Int()
	if id < 0 || id >= len(papers) {
		return nil, false
	}
	return papers[id], true
}

func toPoints(v js.Value) geometry.Polyline {
	line := make(geometry.Polyline, v.Length())
	for i := range line {
		p := v.Index(i)
		line[i] = geometry.Point{X: p.Index(0).Float(), Y: p.Index(1).Float()}
	}
	return line
}

func fromPoints(line geometry.Polyline) []any {
	out := make([]any, len(line))
	for i, p := range line {
		out[i] = []any{p.X, p.Y}
	}
	return out
}

// jcutsCreatePaper(edgeCount, x, y, radius) returns the handle of a new paper.
func jcutsCreatePaper(this js.Value, args []js.Value) any {
	n := args[0].Int()
	center := geometry.Point{X: args[1].Float(), Y: args[2].Float()}
	radius := args[3].Float()
	if err := paper.ValidateBase(n, center, radius); err != nil {
		return errorValue(err.Error())
	}
	papers = append(papers, paper.New(n, center, radius))
	return len(papers) - 1
}

// jcutsCut(handle, [[x, y], ...]) applies a stroke.
func jcutsCut(this js.Value, args []js.Value) any {
	p, ok := lookup(args[0])
	if !ok {
		return errorValue("unknown paper")
	}
	stroke := toPoints(args[1])
	for _, pt := range stroke {
		if pt.IsNaN() {
			return errorValue("stroke point is NaN")
		}
	}
	if _, err := p.Cut(stroke); err != nil {
		return map[string]any{"ok": false, "error": err.Error()}
	}
	return map[string]any{"ok": true}
}

func jcutsPolygon(this js.Value, args []js.Value) any {
	p, ok := lookup(args[0])
	if !ok {
		return errorValue("unknown paper")
	}
	return fromPoints(p.Polygon())
}

func jcutsCutOffPolygon(this js.Value, args []js.Value) any {
	p, ok := lookup(args[0])
	if !ok {
		return errorValue("unknown paper")
	}
	return fromPoints(p.CutOffPolygon())
}

// jcutsExpand(handle) returns all 2N pieces of the unfolded paper.
func jcutsExpand(this js.Value, args []js.Value) any {
	p, ok := lookup(args[0])
	if !ok {
		return errorValue("unknown paper")
	}
	polygons := symmetry.ExpandShape(p.Serialize())
	out := make([]any, len(polygons))
	for i, poly := range polygons {
		out[i] = fromPoints(poly)
	}
	return out
}

// jcutsShape(handle) returns the paper's shape record as JSON.
func jcutsShape(this js.Value, args []js.Value) any {
	p, ok := lookup(args[0])
	if !ok {
		return errorValue("unknown paper")
	}
	data, err := p.Serialize().Marshal()
	if err != nil {
		return errorValue(err.Error())
	}
	return string(data)
}

// jcutsDiffShape(a, b) compares two shape records given as JSON.
func jcutsDiffShape(this js.Value, args []js.Value) any {
	var shapes [2]shape.Shape
	for i := range shapes {
		s, err := shape.Unmarshal([]byte(args[i].String()))
		if err != nil {
			return errorValue(err.Error())
		}
		if err := s.Validate(cfg.MinEdgeCount, cfg.MaxEdgeCount); err != nil {
			return errorValue(err.Error())
		}
		shapes[i] = s
	}
	return compare.DiffShape(shapes[0], shapes[1])
}
