package worker

import (
	"fmt"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/cache"
	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/internal/dispatcher"
	"github.com/kinetic-alphabet/pictograph/internal/placement"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Command names understood by the handlers.
const (
	CmdClassify = "classify"
	CmdSubmit   = "submit"
	CmdPlace    = "place"
	CmdValidate = "validate"
	CmdStats    = "stats"
)

// ClassifyResponse is returned by the classify command.
type ClassifyResponse struct {
	Beat       int         `json:"beat"`
	Found      bool        `json:"found"`
	Letter     core.Letter `json:"letter,omitempty"`
	Confidence float64     `json:"confidence"`
	Strategy   string      `json:"strategy,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// PlaceResponse is returned by the place command.
type PlaceResponse struct {
	Beat     int           `json:"beat"`
	Letter   core.Letter   `json:"letter,omitempty"`
	Color    core.Color    `json:"color"`
	Location core.Location `json:"location"`
	Quadrant int           `json:"quadrant"`
	DX       float64       `json:"dx"`
	DY       float64       `json:"dy"`
	Source   string        `json:"source"`
}

// ValidateResponse is returned by the validate command.
type ValidateResponse struct {
	DatasetValid bool              `json:"datasetValid"`
	Examples     int               `json:"examples"`
	Letters      int               `json:"letters"`
	Placement    placement.Summary `json:"placement"`
}

// StatsResponse is returned by the stats command.
type StatsResponse struct {
	Classified    int    `json:"classified"`
	Placed        int    `json:"placed"`
	CacheEntries  int    `json:"cacheEntries"`
	CacheHits     int    `json:"cacheHits"`
	CacheMisses   int    `json:"cacheMisses"`
	Pending       int    `json:"pending"`
	LastWriteTime string `json:"lastWriteTime"`
}

// RegisterHandlers registers all command handlers with the dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Request/response - sync
	d.Register(CmdClassify, m.handleClassify, dispatcher.Logged())
	d.Register(CmdPlace, m.handlePlace, dispatcher.Logged())
	d.Register(CmdValidate, m.handleValidate)
	d.Register(CmdStats, m.handleStats)

	// Bulk classification, results only reach the backend
	d.Register(CmdSubmit, m.handleClassify, dispatcher.Buffered(1000), dispatcher.Blocking(), dispatcher.Logged())
}

func (m *Manager) handleClassify(e dispatcher.Event) (any, error) {
	p, err := m.deps.Parser.ParsePictograph(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to classify pictograph: %w", err)
	}

	res, err := m.classify(p)
	if err != nil {
		return nil, err
	}

	rec := core.ClassificationRecord{
		Time:       e.Timestamp,
		BeatNumber: p.BeatNumber,
		Query:      p,
		Confidence: res.Confidence(),
		Strategy:   res.Strategy(),
		Reason:     res.Reason(),
		Warnings:   res.Warnings(),
	}
	rec.Letter, _ = res.Letter()
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	if err := m.backend.RecordClassification(&rec); err != nil {
		return nil, fmt.Errorf("failed to record classification: %w", err)
	}
	m.classified.Inc()

	return ClassifyResponse{
		Beat:       rec.BeatNumber,
		Found:      res.Found(),
		Letter:     rec.Letter,
		Confidence: rec.Confidence,
		Strategy:   rec.Strategy,
		Reason:     rec.Reason,
		Warnings:   rec.Warnings,
	}, nil
}

// classify runs the classifier through the result cache when one is configured.
func (m *Manager) classify(p core.Pictograph) (classify.Result, error) {
	if m.deps.Classifier == nil {
		return classify.Result{}, fmt.Errorf("%w: classifier", ErrNotConfigured)
	}

	var key string
	if m.deps.Cache != nil {
		k, err := cache.Key(p, m.deps.Context)
		if err != nil {
			m.deps.Logger.Warn("Could not build cache key", "error", err)
		} else if res, ok := m.deps.Cache.Get(k); ok {
			return res, nil
		} else {
			key = k
		}
	}

	res := m.deps.Classifier.Determine(p, m.dataset(), m.deps.Comparator, m.deps.Context)
	if key != "" {
		m.deps.Cache.Set(key, res)
	}
	return res, nil
}

func (m *Manager) handlePlace(e dispatcher.Event) (any, error) {
	if m.deps.Placer == nil {
		return nil, fmt.Errorf("%w: placer", ErrNotConfigured)
	}

	req, err := m.deps.Parser.ParsePlacementRequest(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to place arrow: %w", err)
	}

	p := req.Pictograph
	if p.Letter == "" && m.deps.Classifier != nil {
		res, err := m.classify(p)
		if err != nil {
			return nil, err
		}
		if letter, ok := res.Letter(); ok {
			p = p.WithLetter(letter)
		} else {
			m.deps.Logger.Debug("Placing arrow without letter", "beat", p.BeatNumber, "reason", res.Reason())
		}
	}

	var out placement.Placement
	if req.Location != "" {
		out = m.deps.Placer.PlaceAt(p, req.Color, req.Location)
	} else {
		out = m.deps.Placer.Place(p, req.Color)
	}

	mo := p.Motion(req.Color)
	rec := core.PlacementRecord{
		Time:       e.Timestamp,
		BeatNumber: p.BeatNumber,
		Letter:     p.Letter,
		Color:      req.Color,
		MotionType: mo.MotionType,
		GridMode:   placement.GridModeOf(mo),
		Location:   out.Location,
		Quadrant:   out.Quadrant,
		DX:         out.DX,
		DY:         out.DY,
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	if err := m.backend.RecordPlacement(&rec); err != nil {
		return nil, fmt.Errorf("failed to record placement: %w", err)
	}
	m.placed.Inc()

	return PlaceResponse{
		Beat:     rec.BeatNumber,
		Letter:   rec.Letter,
		Color:    rec.Color,
		Location: rec.Location,
		Quadrant: rec.Quadrant,
		DX:       rec.DX,
		DY:       rec.DY,
		Source:   out.Source,
	}, nil
}

func (m *Manager) handleValidate(dispatcher.Event) (any, error) {
	resp := ValidateResponse{Placement: m.deps.Tables.Summary()}
	if m.deps.Dataset == nil {
		return resp, nil
	}
	resp.DatasetValid = m.deps.Dataset.ValidateDataset()
	if ds := m.dataset(); ds != nil {
		resp.Examples = ds.Len()
		resp.Letters = len(ds.Letters())
	}
	return resp, nil
}

func (m *Manager) handleStats(dispatcher.Event) (any, error) {
	return m.Stats(), nil
}

// Stats reports handler counters, cache use and backend write progress.
func (m *Manager) Stats() StatsResponse {
	resp := StatsResponse{
		Classified:    m.classified.Value(),
		Placed:        m.placed.Value(),
		Pending:       m.Pending(),
		LastWriteTime: m.LastWriteDuration().String(),
	}
	if m.deps.Cache != nil {
		resp.CacheEntries = m.deps.Cache.Len()
		resp.CacheHits, resp.CacheMisses = m.deps.Cache.Stats()
	}
	return resp
}
