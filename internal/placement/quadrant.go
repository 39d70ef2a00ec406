package placement

import "github.com/kinetic-alphabet/pictograph/pkg/core"

var (
	diagonalIndex = map[core.Location]int{
		core.NorthEast: 0, core.SouthEast: 1, core.SouthWest: 2, core.NorthWest: 3,
	}
	cardinalIndex = map[core.Location]int{
		core.North: 0, core.East: 1, core.South: 2, core.West: 3,
	}
)

// QuadrantIndex picks which directional tuple applies to an arrow drawn at
// location. Shift arrows on the diamond grid and still arrows on the box grid
// sit on diagonals; the other two combinations sit on cardinal points.
// Locations outside the expected set give index 0 and false.
func QuadrantIndex(g core.GridMode, m core.Motion, location core.Location) (int, bool) {
	onDiagonal := m.MotionType.IsShift() == (g == core.Diamond)
	table := cardinalIndex
	if onDiagonal {
		table = diagonalIndex
	}
	idx, ok := table[location]
	return idx, ok
}
