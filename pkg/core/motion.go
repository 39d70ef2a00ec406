// pkg/core/motion.go
package core

import "fmt"

// Motion describes one channel's movement within a beat.
// Motion is a value type; the With* builders return modified copies.
type Motion struct {
	MotionType MotionType  `json:"motion_type"`
	PropRotDir RotDir      `json:"prop_rot_dir"`
	StartLoc   Location    `json:"start_loc"`
	EndLoc     Location    `json:"end_loc"`
	StartOri   Orientation `json:"start_ori"`
	EndOri     Orientation `json:"end_ori"`
	Turns      Turns       `json:"turns"`

	// Prefloat fields record the motion a float stands in for. They are only
	// set when MotionType is Float.
	PrefloatMotionType *MotionType `json:"prefloat_motion_type,omitempty"`
	PrefloatPropRotDir *RotDir     `json:"prefloat_prop_rot_dir,omitempty"`
}

// WithMotionType returns a copy with a new motion type. Prefloat attributes
// are cleared when the new type is not Float.
func (m Motion) WithMotionType(t MotionType) Motion {
	m.MotionType = t
	if t != Float {
		m.PrefloatMotionType = nil
		m.PrefloatPropRotDir = nil
	}
	return m
}

// WithPropRotDir returns a copy with a new rotation direction.
func (m Motion) WithPropRotDir(r RotDir) Motion {
	m.PropRotDir = r
	return m
}

// WithLocations returns a copy with new start and end locations.
func (m Motion) WithLocations(start, end Location) Motion {
	m.StartLoc = start
	m.EndLoc = end
	return m
}

// WithOrientations returns a copy with new start and end orientations.
func (m Motion) WithOrientations(start, end Orientation) Motion {
	m.StartOri = start
	m.EndOri = end
	return m
}

// WithTurns returns a copy with new turns.
func (m Motion) WithTurns(t Turns) Motion {
	m.Turns = t
	return m
}

// WithPrefloat returns a copy carrying prefloat attributes. It is a no-op on
// motions that are not floats.
func (m Motion) WithPrefloat(t MotionType, r RotDir) Motion {
	if m.MotionType != Float {
		return m
	}
	m.PrefloatMotionType = &t
	m.PrefloatPropRotDir = &r
	return m
}

// WithoutPrefloat returns a copy with prefloat attributes cleared.
func (m Motion) WithoutPrefloat() Motion {
	m.PrefloatMotionType = nil
	m.PrefloatPropRotDir = nil
	return m
}

// Prefloat returns the prefloat attributes and whether both are set.
func (m Motion) Prefloat() (MotionType, RotDir, bool) {
	if m.PrefloatMotionType == nil || m.PrefloatPropRotDir == nil {
		return "", "", false
	}
	return *m.PrefloatMotionType, *m.PrefloatPropRotDir, true
}

// GridMode returns Box when the motion starts on a diagonal, Diamond otherwise.
func (m Motion) GridMode() GridMode {
	return GridModeFor(m.StartLoc)
}

// Validate checks every attribute against its closed domain and the prefloat invariant.
func (m Motion) Validate() error {
	if !m.MotionType.Valid() {
		return fmt.Errorf("%w: motion type %q", ErrUnknownValue, m.MotionType)
	}
	if !m.PropRotDir.Valid() {
		return fmt.Errorf("%w: rotation direction %q", ErrUnknownValue, m.PropRotDir)
	}
	if !m.StartLoc.Valid() {
		return fmt.Errorf("%w: start location %q", ErrUnknownValue, m.StartLoc)
	}
	if !m.EndLoc.Valid() {
		return fmt.Errorf("%w: end location %q", ErrUnknownValue, m.EndLoc)
	}
	if m.StartOri != "" && !m.StartOri.Valid() {
		return fmt.Errorf("%w: start orientation %q", ErrUnknownValue, m.StartOri)
	}
	if m.EndOri != "" && !m.EndOri.Valid() {
		return fmt.Errorf("%w: end orientation %q", ErrUnknownValue, m.EndOri)
	}
	if m.MotionType != Float && (m.PrefloatMotionType != nil || m.PrefloatPropRotDir != nil) {
		return ErrPrefloatOnNonFloat
	}
	return nil
}

// clone copies the prefloat pointers so the copy shares no memory with m.
func (m Motion) clone() Motion {
	if m.PrefloatMotionType != nil {
		t := *m.PrefloatMotionType
		m.PrefloatMotionType = &t
	}
	if m.PrefloatPropRotDir != nil {
		r := *m.PrefloatPropRotDir
		m.PrefloatPropRotDir = &r
	}
	return m
}
