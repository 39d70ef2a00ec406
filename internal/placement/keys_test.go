package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

func mot(t core.MotionType, r core.RotDir, start, end core.Location, ori core.Orientation) core.Motion {
	return core.Motion{
		MotionType: t, PropRotDir: r,
		StartLoc: start, EndLoc: end,
		StartOri: ori, EndOri: ori,
		Turns: core.NumericTurns(1),
	}
}

func TestGridModeOf(t *testing.T) {
	for _, loc := range core.Locations {
		want := core.Diamond
		if loc == core.NorthEast || loc == core.SouthEast || loc == core.SouthWest || loc == core.NorthWest {
			want = core.Box
		}
		assert.Equal(t, want, GridModeOf(core.Motion{StartLoc: loc}), "start=%s", loc)
	}
}

func TestLeadState(t *testing.T) {
	tests := []struct {
		name      string
		blue, red core.Motion
		wantBlue  string
		wantRed   string
	}{
		{
			name:     "blue starts where red ends",
			blue:     mot(core.Pro, core.CW, core.North, core.East, core.In),
			red:      mot(core.Pro, core.CW, core.West, core.North, core.In),
			wantBlue: Leading,
			wantRed:  Trailing,
		},
		{
			name:     "red starts where blue ends",
			blue:     mot(core.Pro, core.CW, core.South, core.West, core.In),
			red:      mot(core.Pro, core.CW, core.West, core.North, core.In),
			wantBlue: Trailing,
			wantRed:  Leading,
		},
		{
			name:     "unrelated channels",
			blue:     mot(core.Pro, core.CW, core.North, core.East, core.In),
			red:      mot(core.Pro, core.CW, core.South, core.West, core.In),
			wantBlue: Leading,
			wantRed:  Trailing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.Pictograph{Blue: tt.blue, Red: tt.red}
			assert.Equal(t, tt.wantBlue, LeadState(core.Blue, p))
			assert.Equal(t, tt.wantRed, LeadState(core.Red, p))
		})
	}
}

func TestAttributeKey(t *testing.T) {
	same := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.In),
		Red:  mot(core.Pro, core.CW, core.South, core.West, core.In),
	}
	hybrid := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.In),
		Red:  mot(core.Anti, core.CW, core.South, core.West, core.In),
	}
	mixedSame := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.In),
		Red:  mot(core.Pro, core.CW, core.South, core.West, core.Clock),
	}
	mixedHybrid := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.Out),
		Red:  mot(core.Dash, core.NoRot, core.South, core.North, core.Counter),
	}

	tests := []struct {
		name   string
		p      core.Pictograph
		color  core.Color
		letter core.Letter
		want   string
	}{
		{"standard lead letter", same, core.Blue, "S", "blue_leading"},
		{"standard lead letter red", same, core.Red, "T", "red_trailing"},
		{"standard hybrid", hybrid, core.Red, "C", "anti"},
		{"standard non hybrid", same, core.Red, "A", "red"},
		{"mixed lead letter", mixedSame, core.Red, "S", "trailing"},
		{"mixed hybrid radial", mixedHybrid, core.Blue, "M", "pro_from_layer1"},
		{"mixed hybrid non radial", mixedHybrid, core.Red, "M", "dash_from_layer2"},
		{"mixed type1", mixedSame, core.Blue, "A", "blue"},
		{"mixed other type", mixedSame, core.Blue, "Φ", "pro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.p.Motion(tt.color)
			assert.Equal(t, tt.want, AttributeKey(tt.p, m, tt.letter, tt.color))
		})
	}
}

func TestLayerKeys(t *testing.T) {
	p := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.In),
		Red:  mot(core.Anti, core.CW, core.South, core.West, core.Out),
	}
	assert.Equal(t, "from_layer1", SpecialOriKey(p))
	assert.Equal(t, "pro_to_layer1", PlacementKey(p, p.Blue))

	p.Red = p.Red.WithOrientations(core.Clock, core.Counter)
	assert.Equal(t, "from_layer3_blue1_red2", SpecialOriKey(p))
	assert.Equal(t, "anti_to_layer3", PlacementKey(p, p.Red))

	p.Blue = p.Blue.WithOrientations(core.Counter, core.Clock)
	assert.Equal(t, "from_layer2", SpecialOriKey(p))
	assert.Equal(t, "pro_to_layer2", PlacementKey(p, p.Blue))

	p.Red = p.Red.WithOrientations(core.In, core.In)
	assert.Equal(t, "from_layer3_blue2_red1", SpecialOriKey(p))
}

func TestTurnsKeys(t *testing.T) {
	p := core.Pictograph{
		Blue: mot(core.Pro, core.CW, core.North, core.East, core.In).WithTurns(core.NumericTurns(1.5)),
		Red:  mot(core.Float, core.NoRot, core.South, core.West, core.In).WithTurns(core.FloatTurns()),
	}
	assert.Equal(t, "(1.5, fl)", TurnsTupleKey(p))
	assert.Equal(t, "1.5", TurnsKey(p.Blue))

	p.Blue = p.Blue.WithTurns(core.NumericTurns(2))
	assert.Equal(t, "2", TurnsKey(p.Blue))
}
