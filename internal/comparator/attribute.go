// Package comparator provides the reference attribute comparator used by the
// classification engine.
package comparator

import (
	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Attribute scores two pictographs by the share of per-channel attributes
// that agree. Motion type, rotation and both locations always count;
// orientations count only under strict orientation matching.
type Attribute struct{}

var (
	_ classify.Comparator = Attribute{}
	_ classify.Syncer     = Attribute{}
)

// Compare implements classify.Comparator. Scores below the context tolerance
// are reported as 0.
func (a Attribute) Compare(query, example core.Pictograph, ctx classify.ComparisonContext) float64 {
	dir := relativeDirection(query.Direction, example.Direction)

	matched, total := 0, 0
	for _, c := range []core.Color{core.Blue, core.Red} {
		m, n := a.compareMotion(query.Motion(c), example.Motion(c), dir, ctx)
		matched += m
		total += n
	}
	if total == 0 {
		return 0
	}

	score := float64(matched) / float64(total)
	if score < ctx.ToleranceThreshold {
		return 0
	}
	return score
}

func (a Attribute) compareMotion(q, ex core.Motion, dir core.Direction, ctx classify.ComparisonContext) (matched, total int) {
	check := func(ok bool) {
		total++
		if ok {
			matched++
		}
	}

	motionType, rot := q.MotionType, q.PropRotDir
	if ctx.PrefloatMatchingEnabled && q.MotionType == core.Float && ex.MotionType != core.Float {
		if pt, pr, ok := q.Prefloat(); ok {
			motionType, rot = pt, pr
		}
	}

	want := ex.PropRotDir
	if ctx.DirectionInversionEnabled {
		want = classify.InvertForDirection(dir, want)
	}

	check(motionType == ex.MotionType)
	check(rot == want)
	check(q.StartLoc == ex.StartLoc)
	check(q.EndLoc == ex.EndLoc)
	if ctx.StrictOrientationMatching {
		check(q.StartOri == ex.StartOri)
		check(q.EndOri == ex.EndOri)
	}
	return matched, total
}

// relativeDirection is opp when the two pictographs disagree on direction.
func relativeDirection(a, b core.Direction) core.Direction {
	if a == "" {
		a = core.Same
	}
	if b == "" {
		b = core.Same
	}
	if a == b {
		return core.Same
	}
	return core.Opp
}

// ReverseRotation implements classify.Comparator.
func (Attribute) ReverseRotation(dir core.RotDir) core.RotDir {
	return dir.Reversed()
}

// Sync restores the prefloat invariant on both channels and defaults a
// missing direction to same.
func (Attribute) Sync(p core.Pictograph) core.Pictograph {
	out := p.Clone()
	for _, c := range []core.Color{core.Blue, core.Red} {
		m := out.Motion(c)
		if m.MotionType != core.Float {
			out = out.WithMotion(c, m.WithoutPrefloat())
		}
	}
	if out.Direction == "" {
		out.Direction = core.Same
	}
	return out
}
