// Package shape holds the position independent record of a cut result, and the
// transform that replays it on a canvas of another size.
package shape

import (
	"io"
	"math"

	"jcuts/pkg/geometry"

	json "github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// Basis is the frame a polygon was recorded in: the wedge center and the paper radius.
type Basis struct {
	Center geometry.Point `json:"center"`
	Radius float64        `json:"radius"`
}

// Shape describes the paper left in one wedge of an N-fold cut.
type Shape struct {
	EdgeCount int               `json:"edgeCount"`
	Base      Basis             `json:"base"`
	Polygon   geometry.Polyline `json:"polygon"`
}

func (b Basis) Validate() error {
	if b.Center.IsNaN() {
		return xerrors.New("basis center is NaN")
	}
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return xerrors.Errorf("basis radius must be positive, got %g", b.Radius)
	}
	return nil
}

// Validate checks that the shape can be loaded into a paper with between minEdges
// and maxEdges wedges.
func (s Shape) Validate(minEdges, maxEdges int) error {
	if s.EdgeCount < minEdges {
		return xerrors.Errorf("edge count %d is below the minimum of %d", s.EdgeCount, minEdges)
	}
	if s.EdgeCount > maxEdges {
		return xerrors.Errorf("edge count %d is above the maximum of %d", s.EdgeCount, maxEdges)
	}
	if err := s.Base.Validate(); err != nil {
		return err
	}
	if len(s.Polygon) < 3 {
		return xerrors.Errorf("polygon needs at least 3 points, got %d", len(s.Polygon))
	}
	for i, p := range s.Polygon {
		if p.IsNaN() {
			return xerrors.Errorf("polygon point %d is NaN", i)
		}
	}
	return nil
}

// Map moves a polygon from one basis to another. Each point keeps its angle around
// the center while its distance from the center is scaled by the ratio of the radii.
func Map(polygon geometry.Polyline, from, to Basis) geometry.Polyline {
	scale := to.Radius / from.Radius
	m := geometry.Translate(to.Center.X, to.Center.Y).
		Multiply(geometry.ScaleBy(scale)).
		Multiply(geometry.Translate(-from.Center.X, -from.Center.Y))
	return m.TransformPolyline(polygon)
}

// MapTo returns the shape replayed on another basis.
func (s Shape) MapTo(to Basis) Shape {
	return Shape{
		EdgeCount: s.EdgeCount,
		Base:      to,
		Polygon:   Map(s.Polygon, s.Base, to),
	}
}

func Decode(r io.Reader) (Shape, error) {
	var s Shape
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Shape{}, xerrors.Errorf("decoding shape: %w", err)
	}
	return s, nil
}

func Unmarshal(data []byte) (Shape, error) {
	var s Shape
	if err := json.Unmarshal(data, &s); err != nil {
		return Shape{}, xerrors.Errorf("decoding shape: %w", err)
	}
	return s, nil
}

func (s Shape) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func (s Shape) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
