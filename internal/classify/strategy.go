package classify

import (
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Strategy is a specialized matcher tried before the exhaustive fallback.
type Strategy interface {
	Name() string
	AppliesTo(p core.Pictograph) bool
	Execute(p core.Pictograph, ds *dataset.Dataset, cmp Comparator, ctx ComparisonContext) Result
}

// DefaultStrategies returns the built-in strategies in registration order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		DualFloatStrategy{},
		NonHybridShiftStrategy{},
	}
}

func sameLocations(a, b core.Motion) bool {
	return a.StartLoc == b.StartLoc && a.EndLoc == b.EndLoc
}
