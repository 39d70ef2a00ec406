package classify

import (
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

const (
	// StrategyDualFloat names results produced by DualFloatStrategy.
	StrategyDualFloat = "dual_float"

	reasonPrefloatDisabled = "prefloat matching disabled"
)

// DualFloatStrategy matches pictographs where both channels float by
// comparing each channel's prefloat attributes against the example channel.
// It matches on nothing else, so it fails outright when the context disables
// prefloat matching.
type DualFloatStrategy struct{}

// Name implements Strategy.
func (DualFloatStrategy) Name() string { return StrategyDualFloat }

// AppliesTo is true iff both channels are floats.
func (DualFloatStrategy) AppliesTo(p core.Pictograph) bool {
	return p.BothAre(core.Float)
}

// Execute implements Strategy.
func (s DualFloatStrategy) Execute(p core.Pictograph, ds *dataset.Dataset, _ Comparator, ctx ComparisonContext) Result {
	if !ctx.PrefloatMatchingEnabled {
		return Failure(reasonPrefloatDisabled, s.Name(), p)
	}
	if _, _, ok := p.Blue.Prefloat(); !ok {
		return Failure(ReasonMissingPrefloat, s.Name(), p)
	}
	if _, _, ok := p.Red.Prefloat(); !ok {
		return Failure(ReasonMissingPrefloat, s.Name(), p)
	}

	var found core.Letter
	ds.Each(func(l core.Letter, ex core.Pictograph) bool {
		if matchesPrefloat(p.Blue, ex.Blue, p.Direction, ctx) &&
			matchesPrefloat(p.Red, ex.Red, p.Direction, ctx) {
			found = l
			return false
		}
		return true
	})

	if found == "" {
		return Failure(ReasonNoStrategyMatch, s.Name(), p)
	}
	return Success(found, 1.0, s.Name(), p)
}

func matchesPrefloat(q, ref core.Motion, dir core.Direction, ctx ComparisonContext) bool {
	mt, rot, ok := q.Prefloat()
	if !ok || !sameLocations(q, ref) || mt != ref.MotionType {
		return false
	}
	want := ref.PropRotDir
	if ctx.DirectionInversionEnabled {
		want = InvertForDirection(dir, want)
	}
	return rot == want
}
