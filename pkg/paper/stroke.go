package paper

import (
	"jcuts/pkg/cfg"
	"jcuts/pkg/geometry"

	"golang.org/x/xerrors"
)

// prepareStroke checks a raw stroke against the current outline and removes its
// jitter. The stroke must start and end off the paper and must not cross itself.
func prepareStroke(path geometry.Polyline, outline geometry.Polyline) (geometry.Polyline, error) {
	if len(path) < 2 {
		return nil, xerrors.Errorf("%d points: %w", len(path), ErrInvalidPath)
	}
	for _, pt := range path {
		if pt.IsNaN() {
			panic("paper: stroke point is NaN")
		}
	}

	// The crossing test skips the top end of each edge, which would let a stroke
	// start on the wedge's center, so points on the outline count as on the paper.
	onPaper := func(pt geometry.Point) bool {
		return outline.Contains(pt) || outline.OnBoundary(pt, cfg.OnEdgeTolerance)
	}
	first, last := path[0], path[len(path)-1]
	if onPaper(first) {
		return nil, xerrors.Errorf("start %v: %w", first, ErrEndpointInsidePaper)
	}
	if onPaper(last) {
		return nil, xerrors.Errorf("end %v: %w", last, ErrEndpointInsidePaper)
	}

	simplified := path.Simplify(cfg.SimplifyDeviation)
	if simplified.SelfIntersects() {
		return nil, xerrors.Errorf("%d points after simplifying: %w", len(simplified), ErrSelfIntersectingPath)
	}
	return simplified, nil
}
