package dataset

import "log/slog"

// Provider supplies the reference dataset to the classification engine.
type Provider interface {
	PictographDataset() *Dataset
	ValidateDataset() bool
}

// StaticProvider serves a dataset loaded once at start.
type StaticProvider struct {
	ds     *Dataset
	logger *slog.Logger
}

// NewStaticProvider wraps ds. A nil logger uses slog.Default().
func NewStaticProvider(ds *Dataset, logger *slog.Logger) *StaticProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticProvider{ds: ds, logger: logger}
}

// PictographDataset returns the dataset. Callers must treat it as read-only;
// Dataset itself only hands out copies.
func (p *StaticProvider) PictographDataset() *Dataset {
	return p.ds
}

// ValidateDataset reports whether the dataset passes Validate, logging the reason when it does not.
func (p *StaticProvider) ValidateDataset() bool {
	if err := p.ds.Validate(); err != nil {
		p.logger.Warn("Dataset validation failed", "error", err)
		return false
	}
	return true
}
