// pkg/core/pictograph.go
package core

import "fmt"

// Pictograph is a single notated beat: two simultaneous motions and the
// letter that classifies them.
type Pictograph struct {
	Blue       Motion    `json:"blue"`
	Red        Motion    `json:"red"`
	Letter     Letter    `json:"letter,omitempty"`
	Direction  Direction `json:"direction,omitempty"`
	BeatNumber int       `json:"beat_number"`
}

// Motion returns the motion of the given channel.
func (p Pictograph) Motion(c Color) Motion {
	if c == Red {
		return p.Red
	}
	return p.Blue
}

// Other returns the motion of the channel opposite to c.
func (p Pictograph) Other(c Color) Motion {
	return p.Motion(c.Other())
}

// WithMotion returns a copy with the motion of channel c replaced.
func (p Pictograph) WithMotion(c Color, m Motion) Pictograph {
	if c == Red {
		p.Red = m
	} else {
		p.Blue = m
	}
	return p
}

// WithLetter returns a copy with a new letter.
func (p Pictograph) WithLetter(l Letter) Pictograph {
	p.Letter = l
	return p
}

// GridMode is derived from the blue motion's start location.
func (p Pictograph) GridMode() GridMode {
	return p.Blue.GridMode()
}

// BothAre reports whether both channels have motion type t.
func (p Pictograph) BothAre(t MotionType) bool {
	return p.Blue.MotionType == t && p.Red.MotionType == t
}

// Clone returns a deep copy that shares no memory with p.
func (p Pictograph) Clone() Pictograph {
	p.Blue = p.Blue.clone()
	p.Red = p.Red.clone()
	return p
}

// Validate validates both motions and the pictograph-level fields.
func (p Pictograph) Validate() error {
	if err := p.Blue.Validate(); err != nil {
		return fmt.Errorf("blue motion: %w", err)
	}
	if err := p.Red.Validate(); err != nil {
		return fmt.Errorf("red motion: %w", err)
	}
	if p.Direction != "" && !p.Direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrUnknownValue, p.Direction)
	}
	if p.BeatNumber < 0 {
		return ErrNegativeBeat
	}
	return nil
}
