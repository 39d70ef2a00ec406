// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/kinetic-alphabet/pictograph/internal/model"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
	"gorm.io/datatypes"
)

// stringsToJSON converts a []string to datatypes.JSON for DB storage.
func stringsToJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil || len(out) == 0 {
		return nil
	}
	return out
}

func motionToColumns(m core.Motion) model.MotionColumns {
	cols := model.MotionColumns{
		MotionType: string(m.MotionType),
		PropRotDir: string(m.PropRotDir),
		StartLoc:   string(m.StartLoc),
		EndLoc:     string(m.EndLoc),
		StartOri:   string(m.StartOri),
		EndOri:     string(m.EndOri),
		Turns:      m.Turns.String(),
	}
	if t, r, ok := m.Prefloat(); ok {
		ts, rs := string(t), string(r)
		cols.PrefloatMotionType = &ts
		cols.PrefloatPropRotDir = &rs
	}
	return cols
}

func columnsToMotion(c model.MotionColumns) (core.Motion, error) {
	var m core.Motion
	var err error

	if m.MotionType, err = core.ParseMotionType(c.MotionType); err != nil {
		return m, err
	}
	if m.PropRotDir, err = core.ParseRotDir(c.PropRotDir); err != nil {
		return m, err
	}
	if m.StartLoc, err = core.ParseLocation(c.StartLoc); err != nil {
		return m, err
	}
	if m.EndLoc, err = core.ParseLocation(c.EndLoc); err != nil {
		return m, err
	}
	if m.StartOri, err = core.ParseOrientation(c.StartOri); err != nil {
		return m, err
	}
	if m.EndOri, err = core.ParseOrientation(c.EndOri); err != nil {
		return m, err
	}
	if m.Turns, err = core.ParseTurns(c.Turns); err != nil {
		return m, err
	}

	if c.PrefloatMotionType != nil && c.PrefloatPropRotDir != nil {
		pt, err := core.ParseMotionType(*c.PrefloatMotionType)
		if err != nil {
			return m, err
		}
		pr, err := core.ParseRotDir(*c.PrefloatPropRotDir)
		if err != nil {
			return m, err
		}
		m = m.WithPrefloat(pt, pr)
	}
	return m, nil
}

// CoreToExample converts the position-th example of letter to a GORM row.
func CoreToExample(letter core.Letter, position int, p core.Pictograph) model.PictographExample {
	dir := p.Direction
	if dir == "" {
		dir = core.Same
	}
	return model.PictographExample{
		Letter:    string(letter),
		Position:  position,
		Direction: string(dir),
		Blue:      motionToColumns(p.Blue),
		Red:       motionToColumns(p.Red),
	}
}

// ExampleToCore converts a GORM example row back to a validated pictograph.
func ExampleToCore(e model.PictographExample) (core.Pictograph, error) {
	var p core.Pictograph
	var err error

	p.Letter = core.Letter(e.Letter)
	if p.Direction, err = core.ParseDirection(e.Direction); err != nil {
		return p, fmt.Errorf("example %d: %w", e.ID, err)
	}
	if p.Blue, err = columnsToMotion(e.Blue); err != nil {
		return p, fmt.Errorf("example %d blue: %w", e.ID, err)
	}
	if p.Red, err = columnsToMotion(e.Red); err != nil {
		return p, fmt.Errorf("example %d red: %w", e.ID, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("example %d: %w", e.ID, err)
	}
	return p, nil
}

// CoreToClassification converts a core.ClassificationRecord to a GORM model.Classification.
func CoreToClassification(r core.ClassificationRecord) model.Classification {
	query, err := json.Marshal(r.Query)
	if err != nil {
		query = []byte("{}")
	}
	return model.Classification{
		ID:         r.ID,
		Time:       r.Time,
		BeatNumber: r.BeatNumber,
		Query:      datatypes.JSON(query),
		Letter:     string(r.Letter),
		Confidence: r.Confidence,
		Strategy:   r.Strategy,
		Reason:     r.Reason,
		Warnings:   stringsToJSON(r.Warnings),
	}
}

// ClassificationToCore converts a GORM model.Classification to a core.ClassificationRecord.
// An unreadable query column leaves Query zero.
func ClassificationToCore(c model.Classification) core.ClassificationRecord {
	var query core.Pictograph
	if len(c.Query) > 0 {
		_ = json.Unmarshal(c.Query, &query)
	}
	return core.ClassificationRecord{
		ID:         c.ID,
		Time:       c.Time,
		BeatNumber: c.BeatNumber,
		Query:      query,
		Letter:     core.Letter(c.Letter),
		Confidence: c.Confidence,
		Strategy:   c.Strategy,
		Reason:     c.Reason,
		Warnings:   jsonToStrings(c.Warnings),
	}
}

// CoreToPlacement converts a core.PlacementRecord to a GORM model.Placement.
func CoreToPlacement(r core.PlacementRecord) model.Placement {
	return model.Placement{
		ID:         r.ID,
		Time:       r.Time,
		BeatNumber: r.BeatNumber,
		Letter:     string(r.Letter),
		Color:      string(r.Color),
		MotionType: string(r.MotionType),
		GridMode:   string(r.GridMode),
		Location:   string(r.Location),
		Quadrant:   r.Quadrant,
		DX:         r.DX,
		DY:         r.DY,
	}
}

// PlacementToCore converts a GORM model.Placement to a core.PlacementRecord.
func PlacementToCore(p model.Placement) core.PlacementRecord {
	return core.PlacementRecord{
		ID:         p.ID,
		Time:       p.Time,
		BeatNumber: p.BeatNumber,
		Letter:     core.Letter(p.Letter),
		Color:      core.Color(p.Color),
		MotionType: core.MotionType(p.MotionType),
		GridMode:   core.GridMode(p.GridMode),
		Location:   core.Location(p.Location),
		Quadrant:   p.Quadrant,
		DX:         p.DX,
		DY:         p.DY,
	}
}
