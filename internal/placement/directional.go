package placement

import (
	"github.com/kinetic-alphabet/pictograph/internal/grid"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Adjustment is a pixel offset applied to an arrow glyph.
type Adjustment struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Quad holds an adjustment rotated into each of the four quadrants.
type Quad [4]Adjustment

type rotation func(x, y float64) Quad

// The four fixed rotation rows shared by the motion families.
var (
	rotCW = func(x, y float64) Quad {
		return Quad{{x, y}, {-y, x}, {-x, -y}, {y, -x}}
	}
	rotCCW = func(x, y float64) Quad {
		return Quad{{-y, -x}, {x, -y}, {y, x}, {-x, y}}
	}
	rotStillCW = func(x, y float64) Quad {
		return Quad{{x, -y}, {y, x}, {-x, y}, {-y, -x}}
	}
	rotStillCCW = func(x, y float64) Quad {
		return Quad{{-x, -y}, {y, -x}, {x, y}, {-y, x}}
	}
	rotDashDiamond = func(x, y float64) Quad {
		return Quad{{x, y}, {-y, -x}, {x, -y}, {y, x}}
	}
	rotStaticNoRot = func(x, y float64) Quad {
		return Quad{{x, y}, {-x, -y}, {-y, x}, {y, -x}}
	}
)

// repeat is the identity row used for combinations without a table.
func repeat(x, y float64) Quad {
	a := Adjustment{x, y}
	return Quad{a, a, a, a}
}

func rotationFor(m core.Motion, g core.GridMode) (rotation, bool) {
	switch m.MotionType {
	case core.Pro:
		switch m.PropRotDir {
		case core.CW:
			return rotCW, true
		case core.CCW:
			return rotCCW, true
		}
	case core.Anti:
		switch m.PropRotDir {
		case core.CW:
			return rotCCW, true
		case core.CCW:
			return rotCW, true
		}
	case core.Float:
		if grid.HandpathOf(m.StartLoc, m.EndLoc) == grid.HandpathCCW {
			return rotCCW, true
		}
		return rotCW, true
	case core.Dash:
		switch m.PropRotDir {
		case core.CW:
			return rotStillCW, true
		case core.CCW:
			return rotStillCCW, true
		case core.NoRot:
			if g == core.Box {
				return rotCW, true
			}
			return rotDashDiamond, true
		}
	case core.Static:
		switch m.PropRotDir {
		case core.CW:
			return rotStillCW, true
		case core.CCW:
			return rotStillCCW, true
		case core.NoRot:
			return rotStaticNoRot, true
		}
	}
	return repeat, false
}

// DirectionalTuples rotates base into the four quadrant variants for m on grid
// g. Unknown motion and rotation combinations repeat base four times and
// report false.
func DirectionalTuples(m core.Motion, g core.GridMode, base Adjustment) (Quad, bool) {
	rot, ok := rotationFor(m, g)
	return rot(base.DX, base.DY), ok
}
