// Package svgpath reads and writes the straight line subset of SVG path data used
// for strokes and paper outlines.
//
// Supported commands are M, L, H, V and Z in both absolute and relative form.
// Curves and arcs are rejected: strokes are polylines.
package svgpath

import (
	"strconv"
	"strings"

	"jcuts/pkg/geometry"

	"golang.org/x/xerrors"
)

type SubPath struct {
	X, Y   float64
	DrawTo []*DrawTo
}

type Command string

const (
	LineTo    Command = "L"
	ClosePath Command = "Z"
)

// DrawTo is one drawing command. X and Y are absolute; for ClosePath they repeat the
// sub path's start point.
type DrawTo struct {
	Command Command
	X, Y    float64
}

// Parse parses path data into sub paths.
func Parse(path string) ([]*SubPath, error) {
	p := &parser{scanner: scanner{data: path}}
	if err := p.parse(); err != nil {
		return p.subPaths, xerrors.Errorf("svg path at offset %d: %w", p.index, err)
	}
	return p.subPaths, nil
}

// ParsePolyline parses path data holding a single sub path and returns the points it
// visits.
func ParsePolyline(path string) (geometry.Polyline, error) {
	subPaths, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if len(subPaths) != 1 {
		return nil, xerrors.Errorf("expected one sub path, got %d", len(subPaths))
	}
	return subPaths[0].Polyline(), nil
}

type parser struct {
	scanner
	subPaths []*SubPath
	group    *SubPath
	x, y     float64
}

func (p *parser) parse() error {
	p.whitespace()
	for p.peek() != 0 {
		c := p.next()
		relative := 'a' <= c && c <= 'z'
		var err error
		switch c {
		case 'M', 'm':
			err = p.moveTo(relative)
		case 'L', 'l':
			err = p.lineTo(relative)
		case 'H', 'h':
			err = p.axisLineTo(relative, true)
		case 'V', 'v':
			err = p.axisLineTo(relative, false)
		case 'Z', 'z':
			err = p.closePath()
		case 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
			err = xerrors.Errorf("curve command %q is not supported", string(c))
		default:
			err = xerrors.Errorf("unexpected %q", string(c))
		}
		if err != nil {
			return err
		}
		p.whitespace()
	}
	return nil
}

func (p *parser) moveTo(relative bool) error {
	p.whitespace()
	x, y, err := p.pair()
	if err != nil {
		return err
	}
	if relative {
		x += p.x
		y += p.y
	}
	p.x, p.y = x, y
	p.group = &SubPath{X: x, Y: y}
	p.subPaths = append(p.subPaths, p.group)

	// further pairs are implicit line to commands
	return p.pairs(relative, false)
}

func (p *parser) lineTo(relative bool) error {
	p.whitespace()
	return p.pairs(relative, true)
}

// pairs reads a sequence of coordinate pairs as line to commands. At least one pair
// is required when required is set.
func (p *parser) pairs(relative, required bool) error {
	for {
		saved := p.index
		if !required {
			p.commaWhitespace()
		}
		x, y, err := p.pair()
		if err != nil {
			if required {
				return err
			}
			p.index = saved
			return nil
		}
		required = false
		if relative {
			x += p.x
			y += p.y
		}
		p.line(x, y)
	}
}

func (p *parser) axisLineTo(relative, horizontal bool) error {
	p.whitespace()
	required := true
	for {
		saved := p.index
		if !required {
			p.commaWhitespace()
		}
		n, err := p.number()
		if err != nil {
			if required {
				return err
			}
			p.index = saved
			return nil
		}
		required = false

		x, y := p.x, p.y
		switch {
		case horizontal && relative:
			x += n
		case horizontal:
			x = n
		case relative:
			y += n
		default:
			y = n
		}
		p.line(x, y)
	}
}

func (p *parser) line(x, y float64) {
	if p.group == nil {
		// drawing after a close path continues from the closed sub path's start
		p.group = &SubPath{X: p.x, Y: p.y}
		p.subPaths = append(p.subPaths, p.group)
	}
	p.group.DrawTo = append(p.group.DrawTo, &DrawTo{Command: LineTo, X: x, Y: y})
	p.x, p.y = x, y
}

func (p *parser) closePath() error {
	if p.group == nil {
		return xerrors.New("close path without a current sub path")
	}
	p.group.DrawTo = append(p.group.DrawTo, &DrawTo{Command: ClosePath, X: p.group.X, Y: p.group.Y})
	p.x, p.y = p.group.X, p.group.Y
	p.group = nil
	return nil
}

func (path *SubPath) StartPoint() geometry.Point {
	return geometry.Point{X: path.X, Y: path.Y}
}

func (path *SubPath) EndPoint() geometry.Point {
	if len(path.DrawTo) > 0 {
		last := path.DrawTo[len(path.DrawTo)-1]
		return geometry.Point{X: last.X, Y: last.Y}
	}
	return path.StartPoint()
}

// Closed reports whether the sub path ends with a close path command.
func (path *SubPath) Closed() bool {
	return len(path.DrawTo) > 0 && path.DrawTo[len(path.DrawTo)-1].Command == ClosePath
}

// Polyline returns every point the sub path visits, starting with its start point.
// A closed sub path ends with its start point again.
func (path *SubPath) Polyline() geometry.Polyline {
	line := make(geometry.Polyline, 0, len(path.DrawTo)+1)
	line = append(line, path.StartPoint())
	for _, d := range path.DrawTo {
		line = append(line, geometry.Point{X: d.X, Y: d.Y})
	}
	return line
}

// Ring returns the points of a closed sub path without repeating the start point.
func (path *SubPath) Ring() geometry.Polyline {
	line := path.Polyline()
	if len(line) > 1 && line[len(line)-1] == line[0] {
		line = line[:len(line)-1]
	}
	return line
}

// FromPolyline builds a sub path through the points of line. When closed is set the
// sub path returns to its start with a close path command.
func FromPolyline(line geometry.Polyline, closed bool) *SubPath {
	if len(line) == 0 {
		return &SubPath{}
	}
	path := &SubPath{X: line[0].X, Y: line[0].Y}
	for _, pt := range line[1:] {
		path.DrawTo = append(path.DrawTo, &DrawTo{Command: LineTo, X: pt.X, Y: pt.Y})
	}
	if closed {
		path.DrawTo = append(path.DrawTo, &DrawTo{Command: ClosePath, X: path.X, Y: path.Y})
	}
	return path
}

// Reverse returns the sub path walked backwards. A closed sub path stays closed.
func (path *SubPath) Reverse() *SubPath {
	if path.Closed() {
		ring := path.Ring()
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
		return FromPolyline(ring, true)
	}
	line := path.Polyline()
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
	return FromPolyline(line, false)
}

// ToString writes sub paths as absolute path data, one command letter per point.
func ToString(groups []*SubPath) string {
	var buf strings.Builder
	for i, group := range groups {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString("M " + formatNumber(group.X) + " " + formatNumber(group.Y))
		for _, d := range group.DrawTo {
			switch d.Command {
			case LineTo:
				buf.WriteString(" L " + formatNumber(d.X) + " " + formatNumber(d.Y))
			case ClosePath:
				buf.WriteString(" Z")
			}
		}
	}
	return buf.String()
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
