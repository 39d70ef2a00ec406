package convert

import (
	"testing"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/model"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sample() core.Pictograph {
	return core.Pictograph{
		Letter: "A",
		Blue: core.Motion{
			MotionType: core.Pro, PropRotDir: core.CW,
			StartLoc: core.North, EndLoc: core.East,
			StartOri: core.In, EndOri: core.Out,
			Turns: core.NumericTurns(1),
		},
		Red: core.Motion{
			MotionType: core.Float, PropRotDir: core.NoRot,
			StartLoc: core.South, EndLoc: core.West,
			StartOri: core.Clock, EndOri: core.Counter,
			Turns: core.FloatTurns(),
		}.WithPrefloat(core.Anti, core.CCW),
		Direction: core.Opp,
	}
}

func TestExampleRoundTrip(t *testing.T) {
	row := CoreToExample("A", 3, sample())

	assert.Equal(t, "A", row.Letter)
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, "opp", row.Direction)
	assert.Equal(t, "1", row.Blue.Turns)
	assert.Equal(t, "fl", row.Red.Turns)
	require.NotNil(t, row.Red.PrefloatMotionType)
	assert.Equal(t, "anti", *row.Red.PrefloatMotionType)
	assert.Nil(t, row.Blue.PrefloatMotionType)

	back, err := ExampleToCore(row)
	require.NoError(t, err)
	assert.Equal(t, sample(), back)
}

func TestCoreToExample_DefaultsDirection(t *testing.T) {
	p := sample()
	p.Direction = ""
	assert.Equal(t, "same", CoreToExample("A", 0, p).Direction)
}

func TestExampleToCore_RejectsUnknownValues(t *testing.T) {
	row := CoreToExample("A", 0, sample())
	row.Blue.StartLoc = "up"

	_, err := ExampleToCore(row)
	assert.ErrorIs(t, err, core.ErrUnknownValue)
}

func TestExampleToCore_IgnoresPrefloatOnNonFloat(t *testing.T) {
	row := CoreToExample("A", 0, sample())
	pt, pr := "pro", "cw"
	row.Blue.PrefloatMotionType = &pt
	row.Blue.PrefloatPropRotDir = &pr

	// WithPrefloat is a no-op on a pro motion, so the row converts cleanly.
	p, err := ExampleToCore(row)
	require.NoError(t, err)
	_, _, ok := p.Blue.Prefloat()
	assert.False(t, ok)
}

func TestClassificationRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := core.ClassificationRecord{
		Time:       now,
		BeatNumber: 4,
		Query:      sample(),
		Letter:     "A",
		Confidence: 0.95,
		Strategy:   "fallback_exhaustive",
		Warnings:   []string{"dual_float: missing prefloat attributes"},
	}

	row := CoreToClassification(rec)
	assert.JSONEq(t, `["dual_float: missing prefloat attributes"]`, string(row.Warnings))
	assert.Equal(t, "A", row.Letter)

	back := ClassificationToCore(row)
	assert.Equal(t, rec, back)
}

func TestClassificationWarnings_Empty(t *testing.T) {
	row := CoreToClassification(core.ClassificationRecord{Reason: "no matches found"})
	assert.Equal(t, datatypes.JSON("[]"), row.Warnings)
	assert.Nil(t, ClassificationToCore(row).Warnings)
}

func TestClassificationToCore_BadQuery(t *testing.T) {
	rec := ClassificationToCore(model.Classification{Query: datatypes.JSON("not json"), Letter: "B"})
	assert.Equal(t, core.Letter("B"), rec.Letter)
	assert.Equal(t, core.Pictograph{}, rec.Query)
}

func TestPlacementRoundTrip(t *testing.T) {
	rec := core.PlacementRecord{
		ID:         9,
		BeatNumber: 2,
		Letter:     "C",
		Color:      core.Red,
		MotionType: core.Anti,
		GridMode:   core.Diamond,
		Location:   core.SouthWest,
		Quadrant:   2,
		DX:         -1.5,
		DY:         2,
	}

	row := CoreToPlacement(rec)
	assert.Equal(t, "sw", row.Location)
	assert.Equal(t, rec, PlacementToCore(row))
}
