// Package placement computes the pixel adjustment of arrow glyphs from
// per-letter special tables, per-motion default tables and fixed rotation rows.
package placement

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kinetic-alphabet/pictograph/internal/grid"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Lookup sources reported on the placement.lookups counter.
const (
	SourceSpecial = "special"
	SourceDefault = "default"
	SourceMiss    = "miss"
)

// Placement is the full outcome of placing one arrow.
type Placement struct {
	Adjustment
	Location core.Location `json:"location"`
	Quadrant int           `json:"quadrant"`
	Source   string        `json:"source"`
}

// Engine computes arrow adjustments. It only reads its tables and is safe
// for concurrent use.
type Engine struct {
	tables *Tables
	logger *slog.Logger

	lookups metric.Int64Counter
}

// NewEngine creates an engine over tables. A nil tables value places every
// arrow at (0,0).
func NewEngine(tables *Tables, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lookups, err := meter().Int64Counter(
		"placement.lookups",
		metric.WithDescription("Total placement lookups by table source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lookups counter: %w", err)
	}

	return &Engine{tables: tables, logger: logger, lookups: lookups}, nil
}

// CalculateAdjustment returns the adjustment for the arrow of motion m drawn at
// location. It never panics; internal failures are logged and yield (0,0).
func (e *Engine) CalculateAdjustment(p core.Pictograph, m core.Motion, letter core.Letter, location core.Location, c core.Color) Adjustment {
	return e.place(p, m, letter, location, c).Adjustment
}

// Place positions the arrow of channel c at its arrow location.
func (e *Engine) Place(p core.Pictograph, c core.Color) Placement {
	m := p.Motion(c)
	return e.place(p, m, p.Letter, grid.ArrowLocation(m), c)
}

// PlaceAt is Place with the arrow drawn at location instead of its computed one.
func (e *Engine) PlaceAt(p core.Pictograph, c core.Color, location core.Location) Placement {
	return e.place(p, p.Motion(c), p.Letter, location, c)
}

func (e *Engine) place(p core.Pictograph, m core.Motion, letter core.Letter, location core.Location, c core.Color) (out Placement) {
	out.Location = location
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Arrow placement failed", "letter", letter, "color", c, "panic", r)
			out = Placement{Location: location, Source: SourceMiss}
		}
	}()

	g := GridModeOf(m)
	base, source := e.baseAdjustment(p, m, letter, c, g)
	out.Source = source

	tuples, ok := DirectionalTuples(m, g, base)
	if !ok {
		e.logger.Warn("No rotation table for motion, using base adjustment",
			"motionType", m.MotionType, "propRotDir", m.PropRotDir, "grid", g)
	}

	idx, ok := QuadrantIndex(g, m, location)
	if !ok {
		e.logger.Debug("Location outside quadrant set, using index 0",
			"location", location, "motionType", m.MotionType, "grid", g)
	}

	out.Quadrant = idx
	out.Adjustment = tuples[idx]
	return out
}

func (e *Engine) baseAdjustment(p core.Pictograph, m core.Motion, letter core.Letter, c core.Color, g core.GridMode) (Adjustment, string) {
	var (
		adj    Adjustment
		source = SourceMiss
	)

	if a, ok := e.tables.Special(g, SpecialOriKey(p), letter, TurnsTupleKey(p), AttributeKey(p, m, letter, c)); ok {
		adj, source = a, SourceSpecial
	} else if a, ok := e.tables.Default(g, m.MotionType, PlacementKey(p, m), TurnsKey(m)); ok {
		adj, source = a, SourceDefault
	} else {
		e.logger.Debug("No placement entry, using (0,0)",
			"letter", letter, "motionType", m.MotionType, "grid", g, "turns", TurnsKey(m))
	}

	e.lookups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", source)))
	return adj, source
}
