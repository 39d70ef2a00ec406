package classify

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// FallbackThreshold is the similarity an example must exceed to be accepted
// by the exhaustive search.
const FallbackThreshold = 0.9

// StrategyFallback names results of the exhaustive similarity search.
const StrategyFallback = "fallback_exhaustive"

const warnRotationSwapped = "prop rotation reversed for fallback search"

// Engine determines the letter of a pictograph. Strategies are tried in
// registration order before an exhaustive similarity search.
type Engine struct {
	strategies []Strategy
	logger     *slog.Logger

	determinations metric.Int64Counter
}

// NewEngine creates an engine with the given strategies, or the default set
// when none are given. Uses the global OTel meter for metrics.
func NewEngine(logger *slog.Logger, strategies ...Strategy) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	counter, err := meter().Int64Counter(
		"classify.determinations",
		metric.WithDescription("Total letter determinations by strategy and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating determinations counter: %w", err)
	}

	return &Engine{
		strategies:     append([]Strategy(nil), strategies...),
		logger:         logger,
		determinations: counter,
	}, nil
}

// Strategies returns the registered strategy names in order.
func (e *Engine) Strategies() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Determine classifies p against ds. It never panics on well-formed input and
// reports every outcome through the returned Result.
func (e *Engine) Determine(p core.Pictograph, ds *dataset.Dataset, cmp Comparator, ctx ComparisonContext) Result {
	res := e.determine(p, ds, cmp, ctx)

	outcome := "found"
	if !res.Found() {
		outcome = "not_found"
	}
	e.determinations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("strategy", res.Strategy()),
		attribute.String("outcome", outcome),
	))

	if letter, ok := res.Letter(); ok {
		e.logger.Debug("letter determined", "letter", letter, "strategy", res.Strategy(), "confidence", res.Confidence())
	} else {
		e.logger.Debug("letter not determined", "strategy", res.Strategy(), "reason", res.Reason())
	}
	return res
}

func (e *Engine) determine(p core.Pictograph, ds *dataset.Dataset, cmp Comparator, ctx ComparisonContext) Result {
	if s, ok := cmp.(Syncer); ok {
		p = s.Sync(p)
	}

	if p.BothAre(core.Static) {
		return Failure(ReasonBothStatic, "", p)
	}
	if ds.Empty() {
		return Failure(ReasonDatasetEmpty, "", p)
	}

	var warnings []string
	for _, s := range e.strategies {
		if !s.AppliesTo(p) {
			continue
		}
		res := s.Execute(p, ds, cmp, ctx)
		if res.Found() {
			return res.withWarnings(warnings...)
		}
		warnings = append(warnings, fmt.Sprintf("%s: %s", s.Name(), res.Reason()))
		warnings = append(warnings, res.Warnings()...)
	}

	return e.fallback(p, ds, cmp, ctx).withWarnings(warnings...)
}

func (e *Engine) fallback(p core.Pictograph, ds *dataset.Dataset, cmp Comparator, ctx ComparisonContext) Result {
	if cmp == nil {
		return Failure(ReasonNoMatches, StrategyFallback, p, "no comparator configured")
	}

	query := p
	var warnings []string
	if ctx.SwapPropRotDir {
		query = p.
			WithMotion(core.Blue, p.Blue.WithPropRotDir(cmp.ReverseRotation(p.Blue.PropRotDir))).
			WithMotion(core.Red, p.Red.WithPropRotDir(cmp.ReverseRotation(p.Red.PropRotDir)))
		warnings = append(warnings, warnRotationSwapped)
	}

	var (
		found      core.Letter
		similarity float64
	)
	ds.Each(func(l core.Letter, ex core.Pictograph) bool {
		score := cmp.Compare(query, ex, ctx)
		if score > FallbackThreshold {
			found, similarity = l, score
			return false
		}
		return true
	})

	if found == "" {
		return Failure(ReasonNoMatches, StrategyFallback, p, warnings...)
	}
	return Success(found, similarity, StrategyFallback, p, warnings...)
}
