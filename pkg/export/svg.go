// Package export writes cut artwork out as SVG, plotter G-code and PNG previews.
package export

import (
	"encoding/xml"
	"strconv"

	"jcuts/pkg/compare"
	"jcuts/pkg/geometry"
	"jcuts/pkg/svgpath"

	"golang.org/x/xerrors"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// ArtworkStyle is the style of each filled piece of paper.
var ArtworkStyle = "fill:#000000;fill-opacity:1;stroke:none"

type SVGNode struct {
	XMLName  xml.Name
	Width    string     `xml:"width,attr,omitempty"`
	Height   string     `xml:"height,attr,omitempty"`
	ViewBox  string     `xml:"viewBox,attr,omitempty"`
	Version  string     `xml:"version,attr,omitempty"`
	ID       string     `xml:"id,attr,omitempty"`
	Style    string     `xml:"style,attr,omitempty"`
	D        string     `xml:"d,attr,omitempty"`
	Children []*SVGNode `xml:",any"`

	Path []*svgpath.SubPath `xml:"-"`
}

// Artwork lays out the polygons as one filled path each. The view box is the
// polygons' bounding box; width and height, in mm, are left out when zero.
func Artwork(polygons []geometry.Polyline, width, height float64) *SVGNode {
	root := &SVGNode{
		XMLName: xml.Name{Space: svgNamespace, Local: "svg"},
		Version: "1.1",
	}
	if width > 0 && height > 0 {
		root.Width = formatNumber(width) + "mm"
		root.Height = formatNumber(height) + "mm"
	}
	b := compare.Bounds(polygons...)
	root.ViewBox = formatNumber(b.Min.X) + " " + formatNumber(b.Min.Y) + " " +
		formatNumber(b.Width()) + " " + formatNumber(b.Height())

	for i, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		root.Children = append(root.Children, &SVGNode{
			XMLName: xml.Name{Space: svgNamespace, Local: "path"},
			ID:      "piece" + strconv.Itoa(i),
			Style:   ArtworkStyle,
			Path:    []*svgpath.SubPath{svgpath.FromPolyline(poly, true)},
		})
	}
	return root
}

// ParseSVG reads a document written by Marshal back, recovering each path's sub paths.
func ParseSVG(data []byte) (*SVGNode, error) {
	var svg SVGNode
	if err := xml.Unmarshal(data, &svg); err != nil {
		return nil, xerrors.Errorf("parsing svg: %w", err)
	}
	if err := svg.parsePaths(); err != nil {
		return nil, err
	}
	return &svg, nil
}

func (n *SVGNode) parsePaths() error {
	for _, child := range n.Children {
		if child.D != "" {
			path, err := svgpath.Parse(child.D)
			if err != nil {
				return xerrors.Errorf("path %q: %w", child.ID, err)
			}
			child.Path = path
		}
		if err := child.parsePaths(); err != nil {
			return err
		}
	}
	return nil
}

// Polygons returns the closed sub paths of all paths in the document, in order.
func (n *SVGNode) Polygons() []geometry.Polyline {
	var polygons []geometry.Polyline
	for _, child := range n.Children {
		for _, path := range child.Path {
			if path.Closed() {
				polygons = append(polygons, path.Ring())
			}
		}
		polygons = append(polygons, child.Polygons()...)
	}
	return polygons
}

func (n *SVGNode) Marshal() ([]byte, error) {
	n.serializePaths()
	n.XMLName.Space = svgNamespace
	data, err := xml.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, xerrors.Errorf("marshal svg: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

func (n *SVGNode) serializePaths() {
	for _, child := range n.Children {
		if child.Path != nil {
			child.D = svgpath.ToString(child.Path)
		}
		// the namespace at the root is enough
		child.XMLName.Space = ""
		child.serializePaths()
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
