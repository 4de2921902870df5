package export

import (
	"math"

	"jcuts/pkg/compare"
	"jcuts/pkg/geometry"

	"github.com/asim/quadtree"
)

var zeroPoint = quadtree.NewPoint(0, 0, nil)

// vertexRefs maps a loop index to the indexes of its vertices at one location.
type vertexRefs map[int][]int

// loopTree indexes the vertices of closed loops so the loop nearest to a point can
// be found quickly.
type loopTree struct {
	quadTree *quadtree.QuadTree
	loops    []geometry.Polyline
	center   geometry.Point
	width    float64
	height   float64
}

func newLoopTree(loops []geometry.Polyline, margin float64) *loopTree {
	b := compare.Bounds(loops...)
	halfWidth := b.Width()/2 + margin
	halfHeight := b.Height()/2 + margin
	center := geometry.Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(center.X, center.Y, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))

	t := &loopTree{
		quadTree: quadtree.New(aabb, 0, nil),
		loops:    loops,
		center:   center,
		width:    halfWidth * 2,
		height:   halfHeight * 2,
	}
	for i, loop := range loops {
		for j, p := range loop {
			t.addVertex(p, i, j)
		}
	}
	return t
}

// at returns the stored point exactly at p, if any.
func (t *loopTree) at(p geometry.Point) *quadtree.Point {
	point := quadtree.NewPoint(p.X, p.Y, nil)
	points := t.quadTree.KNearest(quadtree.NewAABB(point, zeroPoint), 1, nil)
	if len(points) > 0 {
		x, y := points[0].Coordinates()
		if x == p.X && y == p.Y {
			return points[0]
		}
	}
	return nil
}

func (t *loopTree) addVertex(p geometry.Point, loop, vertex int) {
	if existing := t.at(p); existing != nil {
		refs := existing.Data().(vertexRefs)
		refs[loop] = append(refs[loop], vertex)
		return
	}
	t.quadTree.Insert(quadtree.NewPoint(p.X, p.Y, vertexRefs{loop: {vertex}}))
}

// remove drops every vertex of a loop from the index.
func (t *loopTree) remove(loop int) {
	for _, p := range t.loops[loop] {
		point := t.at(p)
		if point == nil {
			continue
		}
		refs := point.Data().(vertexRefs)
		delete(refs, loop)
		if len(refs) == 0 {
			t.quadTree.Remove(point)
		}
	}
}

// nearest returns the loop and vertex closest to p. Ties go to the lower loop index
// and then the lower vertex index. The search box grows until it holds a vertex
// no farther away than the box's half size.
func (t *loopTree) nearest(p geometry.Point) (loop, vertex int, ok bool) {
	limit := p.Distance(t.center) + t.width + t.height
	for r := math.Max(t.width, t.height) / 64; ; r *= 2 {
		aabb := quadtree.NewAABB(
			quadtree.NewPoint(p.X, p.Y, nil),
			quadtree.NewPoint(r, r, nil))

		best := math.Inf(1)
		for _, point := range t.quadTree.Search(aabb) {
			x, y := point.Coordinates()
			d := p.Distance(geometry.Point{X: x, Y: y})
			for l, vertices := range point.Data().(vertexRefs) {
				for _, v := range vertices {
					if d < best || (d == best && (l < loop || (l == loop && v < vertex))) {
						best, loop, vertex, ok = d, l, v, true
					}
				}
			}
		}
		if (ok && best <= r) || r > limit {
			return loop, vertex, ok
		}
	}
}
