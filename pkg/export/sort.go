package export

import (
	"jcuts/pkg/geometry"
)

// SortLoops orders closed loops to keep pen-up travel short: starting at origin, the
// loop with the nearest vertex is cut next, starting from that vertex. Since a
// loop ends where it starts, the search continues from there. Every loop is
// returned once, rotated to its new start; loops with no points are dropped.
func SortLoops(loops []geometry.Polyline, origin geometry.Point) []geometry.Polyline {
	tree := newLoopTree(loops, 10)
	sorted := make([]geometry.Polyline, 0, len(loops))

	at := origin
	for {
		loop, vertex, ok := tree.nearest(at)
		if !ok {
			break
		}
		tree.remove(loop)

		rotated := rotate(loops[loop], vertex)
		sorted = append(sorted, rotated)
		at = rotated[0]
	}
	return sorted
}

// rotate returns a copy of loop that starts at index start.
func rotate(loop geometry.Polyline, start int) geometry.Polyline {
	out := make(geometry.Polyline, 0, len(loop))
	out = append(out, loop[start:]...)
	return append(out, loop[:start]...)
}
