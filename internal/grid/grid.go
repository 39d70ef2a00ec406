// Package grid holds the compass geometry of the notation grid: ring order,
// handpath direction between two points, and where an arrow glyph sits for a motion.
package grid

import (
	"math"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Handpath is the shortest rotational sense of a hand moving between two points.
type Handpath string

const (
	HandpathCW  Handpath = "cw"
	HandpathCCW Handpath = "ccw"
)

const diag = math.Sqrt2 / 2

// unit vectors with north up and east right
var compassVectors = map[core.Location]geom.XY{
	core.North:     {X: 0, Y: 1},
	core.NorthEast: {X: diag, Y: diag},
	core.East:      {X: 1, Y: 0},
	core.SouthEast: {X: diag, Y: -diag},
	core.South:     {X: 0, Y: -1},
	core.SouthWest: {X: -diag, Y: -diag},
	core.West:      {X: -1, Y: 0},
	core.NorthWest: {X: -diag, Y: diag},
}

// degenerate vector sums (opposite points) fall under this length
const minSumLength = 1e-9

// Vector returns the unit vector of a compass point.
func Vector(l core.Location) (geom.XY, bool) {
	v, ok := compassVectors[l]
	return v, ok
}

// HandpathOf walks the clockwise ring N,NE,E,SE,S,SW,W,NW. A ring distance of
// up to 4 steps is clockwise, anything further is counter-clockwise.
// Unknown locations default to clockwise.
func HandpathOf(start, end core.Location) Handpath {
	si, ei := start.Index(), end.Index()
	if si < 0 || ei < 0 {
		return HandpathCW
	}
	diff := ((ei-si)%8 + 8) % 8
	if diff <= 4 {
		return HandpathCW
	}
	return HandpathCCW
}

// Nearest returns the compass point whose direction is closest to v.
// The zero vector has no direction and yields false.
func Nearest(v geom.XY) (core.Location, bool) {
	if math.Hypot(v.X, v.Y) < minSumLength {
		return "", false
	}
	best := core.Location("")
	bestDot := math.Inf(-1)
	for _, loc := range core.Locations {
		d := v.Dot(compassVectors[loc])
		if d > bestDot {
			best, bestDot = loc, d
		}
	}
	return best, true
}

// ArrowLocation is the compass point where the arrow of m is drawn.
// Shift motions sit between their start and end points; static and dash
// motions, and shifts between opposite points, sit at the start location.
func ArrowLocation(m core.Motion) core.Location {
	if !m.MotionType.IsShift() {
		return m.StartLoc
	}
	start, okStart := Vector(m.StartLoc)
	end, okEnd := Vector(m.EndLoc)
	if !okStart || !okEnd {
		return m.StartLoc
	}
	if loc, ok := Nearest(start.Add(end)); ok {
		return loc
	}
	return m.StartLoc
}
