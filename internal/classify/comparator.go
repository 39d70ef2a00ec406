package classify

import "github.com/kinetic-alphabet/pictograph/pkg/core"

// Comparator scores how similar a query pictograph is to a dataset example.
type Comparator interface {
	// Compare returns a similarity in [0,1].
	Compare(query, example core.Pictograph, ctx ComparisonContext) float64
	ReverseRotation(dir core.RotDir) core.RotDir
}

// Syncer is an optional Comparator extension that normalizes a pictograph's
// attributes before classification.
type Syncer interface {
	Sync(p core.Pictograph) core.Pictograph
}

// InvertForDirection flips cw and ccw for opposite-direction pictographs.
// It is its own inverse, and NoRot is never changed.
func InvertForDirection(d core.Direction, r core.RotDir) core.RotDir {
	if d == core.Opp {
		return r.Reversed()
	}
	return r
}
