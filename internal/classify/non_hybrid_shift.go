package classify

import (
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// StrategyNonHybridShift names results produced by NonHybridShiftStrategy.
const StrategyNonHybridShift = "non_hybrid_shift"

// NonHybridShiftStrategy handles a float paired with a pro or anti motion.
// The float takes on the partner's motion type as its prefloat type, and a
// rotation derived from its own (or, when it has none, the partner's).
type NonHybridShiftStrategy struct{}

// Name implements Strategy.
func (NonHybridShiftStrategy) Name() string { return StrategyNonHybridShift }

// AppliesTo is true iff exactly one channel floats and the other is pro or anti.
func (NonHybridShiftStrategy) AppliesTo(p core.Pictograph) bool {
	_, ok := floatChannel(p)
	return ok
}

// Execute implements Strategy.
func (s NonHybridShiftStrategy) Execute(p core.Pictograph, ds *dataset.Dataset, _ Comparator, _ ComparisonContext) Result {
	fc, ok := floatChannel(p)
	if !ok {
		return Failure(ReasonNoFloatCandidate, s.Name(), p)
	}

	floatMotion := p.Motion(fc)
	nonFloat := p.Other(fc)

	base := floatMotion.PropRotDir
	if base == core.NoRot {
		base = nonFloat.PropRotDir
	}
	floatMotion = floatMotion.WithPrefloat(nonFloat.MotionType, InvertForDirection(p.Direction, base))
	updated := p.WithMotion(fc, floatMotion)

	preType, preRot, _ := floatMotion.Prefloat()

	var found core.Letter
	ds.Each(func(l core.Letter, ex core.Pictograph) bool {
		refFloat := ex.Motion(fc)
		refNonFloat := ex.Other(fc)

		floatMatches := sameLocations(floatMotion, refFloat) &&
			preRot == refFloat.PropRotDir &&
			preType == refFloat.MotionType
		nonFloatMatches := sameLocations(nonFloat, refNonFloat) &&
			nonFloat.MotionType == refNonFloat.MotionType &&
			nonFloat.PropRotDir == InvertForDirection(p.Direction, refNonFloat.PropRotDir)

		if floatMatches && nonFloatMatches {
			found = l
			return false
		}
		return true
	})

	if found == "" {
		return Failure(ReasonNoStrategyMatch, s.Name(), updated)
	}
	return Success(found, 1.0, s.Name(), updated)
}

// floatChannel returns the channel that floats when exactly one does and the
// other channel is pro or anti.
func floatChannel(p core.Pictograph) (core.Color, bool) {
	isShift := func(t core.MotionType) bool { return t == core.Pro || t == core.Anti }

	switch {
	case p.Blue.MotionType == core.Float && isShift(p.Red.MotionType):
		return core.Blue, true
	case p.Red.MotionType == core.Float && isShift(p.Blue.MotionType):
		return core.Red, true
	}
	return "", false
}
