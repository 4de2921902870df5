package paper

import "golang.org/x/xerrors"

// Reasons a stroke leaves the paper untouched. None of them is fatal; callers
// usually just ignore the stroke.
var (
	ErrInvalidPath          = xerrors.New("stroke needs at least two points")
	ErrEndpointInsidePaper  = xerrors.New("stroke starts or ends on the paper")
	ErrSelfIntersectingPath = xerrors.New("stroke crosses itself")
	ErrNoBoundaryCrossing   = xerrors.New("stroke never crosses the paper's edge")
	ErrIncompleteCrossing   = xerrors.New("stroke enters the paper but never leaves it")
)
