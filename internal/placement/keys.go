package placement

import (
	"fmt"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Lead states of a channel relative to its partner.
const (
	Leading  = "leading"
	Trailing = "trailing"
)

// GridModeOf is Box when m starts on a diagonal, Diamond otherwise.
func GridModeOf(m core.Motion) core.GridMode {
	return core.GridModeFor(m.StartLoc)
}

// HasHybridMotions reports whether the two channels have different motion types.
func HasHybridMotions(p core.Pictograph) bool {
	return p.Blue.MotionType != p.Red.MotionType
}

// StartsFromMixedOrientation reports whether the two channels start with different orientations.
func StartsFromMixedOrientation(p core.Pictograph) bool {
	return p.Blue.StartOri != p.Red.StartOri
}

// LeadState is leading when the channel starts where its partner ends and
// trailing when it ends where its partner starts. Without either relation
// blue leads and red trails.
func LeadState(c core.Color, p core.Pictograph) string {
	this, other := p.Motion(c), p.Other(c)
	switch {
	case this.StartLoc == other.EndLoc:
		return Leading
	case this.EndLoc == other.StartLoc:
		return Trailing
	case c == core.Red:
		return Trailing
	}
	return Leading
}

func usesLeadState(l core.Letter) bool {
	return l == "S" || l == "T"
}

// layerSuffix names the orientation layer a motion starts from.
func layerSuffix(m core.Motion) string {
	if m.StartOri.IsRadial() {
		return "from_layer1"
	}
	return "from_layer2"
}

// AttributeKey selects the entry inside a special placement table for the
// arrow of color c.
func AttributeKey(p core.Pictograph, m core.Motion, letter core.Letter, c core.Color) string {
	hybrid := HasHybridMotions(p)

	if StartsFromMixedOrientation(p) {
		switch {
		case usesLeadState(letter):
			return LeadState(c, p)
		case hybrid:
			return fmt.Sprintf("%s_%s", m.MotionType, layerSuffix(m))
		case letter.Type() == core.Type1:
			return string(c)
		}
		return string(m.MotionType)
	}

	switch {
	case usesLeadState(letter):
		return fmt.Sprintf("%s_%s", c, LeadState(c, p))
	case hybrid:
		return string(m.MotionType)
	}
	return string(c)
}

func endLayer(p core.Pictograph) string {
	blue, red := p.Blue.EndOri.IsRadial(), p.Red.EndOri.IsRadial()
	switch {
	case blue && red:
		return "layer1"
	case !blue && !red:
		return "layer2"
	}
	return "layer3"
}

// PlacementKey selects the entry inside a default placement table. Lookups
// fall back to the bare motion type when the layered key is absent.
func PlacementKey(p core.Pictograph, m core.Motion) string {
	return fmt.Sprintf("%s_to_%s", m.MotionType, endLayer(p))
}

// SpecialOriKey names the special placement directory for the starting
// orientation layers of both channels.
func SpecialOriKey(p core.Pictograph) string {
	blue, red := p.Blue.StartOri.IsRadial(), p.Red.StartOri.IsRadial()
	switch {
	case blue && red:
		return "from_layer1"
	case !blue && !red:
		return "from_layer2"
	case blue:
		return "from_layer3_blue1_red2"
	}
	return "from_layer3_blue2_red1"
}

// TurnsTupleKey formats both channels' turns as "(blue, red)".
func TurnsTupleKey(p core.Pictograph) string {
	return fmt.Sprintf("(%s, %s)", p.Blue.Turns, p.Red.Turns)
}

// TurnsKey formats the turns of a single motion.
func TurnsKey(m core.Motion) string {
	return m.Turns.String()
}
