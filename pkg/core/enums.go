// pkg/core/enums.go
package core

import (
	"fmt"
	"strings"
)

// MotionType is the kind of movement a prop performs in one beat.
type MotionType string

const (
	Pro    MotionType = "pro"
	Anti   MotionType = "anti"
	Float  MotionType = "float"
	Dash   MotionType = "dash"
	Static MotionType = "static"
)

// MotionTypes lists every motion type in placement file order.
var MotionTypes = []MotionType{Pro, Anti, Float, Dash, Static}

// Valid reports whether m is one of the known motion types.
func (m MotionType) Valid() bool {
	switch m {
	case Pro, Anti, Float, Dash, Static:
		return true
	}
	return false
}

// IsShift reports whether the motion travels between two different locations
// around the grid (pro, anti, float).
func (m MotionType) IsShift() bool {
	switch m {
	case Pro, Anti, Float:
		return true
	}
	return false
}

// ParseMotionType parses a case-insensitive motion type name.
func ParseMotionType(s string) (MotionType, error) {
	m := MotionType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: motion type %q", ErrUnknownValue, s)
	}
	return m, nil
}

// RotDir is the prop rotation direction.
type RotDir string

const (
	CW    RotDir = "cw"
	CCW   RotDir = "ccw"
	NoRot RotDir = "no_rot"
)

// Valid reports whether r is one of the known rotation directions.
func (r RotDir) Valid() bool {
	switch r {
	case CW, CCW, NoRot:
		return true
	}
	return false
}

// Reversed flips cw and ccw. NoRot is returned unchanged.
func (r RotDir) Reversed() RotDir {
	switch r {
	case CW:
		return CCW
	case CCW:
		return CW
	}
	return r
}

// ParseRotDir parses a rotation direction. "norot" and "" are accepted as NoRot.
func ParseRotDir(s string) (RotDir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw":
		return CW, nil
	case "ccw":
		return CCW, nil
	case "no_rot", "norot", "":
		return NoRot, nil
	}
	return "", fmt.Errorf("%w: rotation direction %q", ErrUnknownValue, s)
}

// Location is one of the 8 compass points of the grid.
type Location string

const (
	North     Location = "n"
	NorthEast Location = "ne"
	East      Location = "e"
	SouthEast Location = "se"
	South     Location = "s"
	SouthWest Location = "sw"
	West      Location = "w"
	NorthWest Location = "nw"
)

// Locations is the fixed clockwise ring order starting at north.
var Locations = []Location{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Index returns the position of l in the clockwise ring, or -1 if unknown.
func (l Location) Index() int {
	for i, loc := range Locations {
		if loc == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is a compass point.
func (l Location) Valid() bool {
	return l.Index() >= 0
}

// IsDiagonal reports whether l is an intercardinal point (ne, se, sw, nw).
func (l Location) IsDiagonal() bool {
	switch l {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	}
	return false
}

// ParseLocation parses a compass point name.
func ParseLocation(s string) (Location, error) {
	l := Location(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: location %q", ErrUnknownValue, s)
	}
	return l, nil
}

// Orientation is the facing of a prop relative to the grid center.
type Orientation string

const (
	In      Orientation = "in"
	Out     Orientation = "out"
	Clock   Orientation = "clock"
	Counter Orientation = "counter"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	switch o {
	case In, Out, Clock, Counter:
		return true
	}
	return false
}

// IsRadial reports whether o points along the radius (in or out).
func (o Orientation) IsRadial() bool {
	return o == In || o == Out
}

// ParseOrientation parses an orientation name. Empty text defaults to In.
func ParseOrientation(s string) (Orientation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return In, nil
	}
	o := Orientation(s)
	if !o.Valid() {
		return "", fmt.Errorf("%w: orientation %q", ErrUnknownValue, s)
	}
	return o, nil
}

// Color identifies a motion channel.
type Color string

const (
	Blue Color = "blue"
	Red  Color = "red"
)

// Valid reports whether c is blue or red.
func (c Color) Valid() bool {
	return c == Blue || c == Red
}

// Other returns the opposite channel.
func (c Color) Other() Color {
	if c == Blue {
		return Red
	}
	return Blue
}

// ParseColor parses a channel name.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: color %q", ErrUnknownValue, s)
	}
	return c, nil
}

// Direction says whether both props travel the same way or opposite ways.
type Direction string

const (
	Same Direction = "same"
	Opp  Direction = "opp"
)

// Valid reports whether d is same or opp.
func (d Direction) Valid() bool {
	return d == Same || d == Opp
}

// ParseDirection parses a direction. Empty text defaults to Same.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "same", "":
		return Same, nil
	case "opp":
		return Opp, nil
	}
	return "", fmt.Errorf("%w: direction %q", ErrUnknownValue, s)
}

// GridMode is the coordinate variant selected by compass location.
type GridMode string

const (
	Diamond GridMode = "diamond"
	Box     GridMode = "box"
)

// GridModes lists both grid variants.
var GridModes = []GridMode{Diamond, Box}

// Valid reports whether g is diamond or box.
func (g GridMode) Valid() bool {
	return g == Diamond || g == Box
}

// GridModeFor returns Box for diagonal locations and Diamond otherwise.
func GridModeFor(l Location) GridMode {
	if l.IsDiagonal() {
		return Box
	}
	return Diamond
}
