// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// ResultsExport is the root JSON structure
type ResultsExport struct {
	GeneratedAt     time.Time            `json:"generatedAt"`
	Summary         SummaryJSON          `json:"summary"`
	Classifications []ClassificationJSON `json:"classifications"`
	Placements      []PlacementJSON      `json:"placements"`
}

// SummaryJSON aggregates the classification outcomes.
type SummaryJSON struct {
	Classified int            `json:"classified"`
	Found      int            `json:"found"`
	Placed     int            `json:"placed"`
	ByStrategy map[string]int `json:"byStrategy"`
	ByLetter   map[string]int `json:"byLetter"`
}

// ClassificationJSON is one classification outcome.
type ClassificationJSON struct {
	ID         uint            `json:"id"`
	Time       time.Time       `json:"time"`
	BeatNumber int             `json:"beatNumber"`
	Letter     string          `json:"letter,omitempty"`
	Confidence float64         `json:"confidence"`
	Strategy   string          `json:"strategy"`
	Reason     string          `json:"reason,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
	Query      core.Pictograph `json:"query"`
}

// PlacementJSON is one arrow placement, with the offset as [dx, dy].
type PlacementJSON struct {
	ID         uint       `json:"id"`
	Time       time.Time  `json:"time"`
	BeatNumber int        `json:"beatNumber"`
	Letter     string     `json:"letter"`
	Color      string     `json:"color"`
	MotionType string     `json:"motionType"`
	GridMode   string     `json:"gridMode"`
	Location   string     `json:"location"`
	Quadrant   int        `json:"quadrant"`
	Offset     [2]float64 `json:"offset"`
}

// exportJSON writes the results to a JSON file, gzipped when configured
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	timestamp := b.started.Format("20060102_150405")
	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("results_%s.json.gz", timestamp)
	} else {
		filename = fmt.Sprintf("results_%s.json", timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() ResultsExport {
	export := ResultsExport{
		GeneratedAt:     time.Now().UTC(),
		Classifications: make([]ClassificationJSON, 0, len(b.classifications)),
		Placements:      make([]PlacementJSON, 0, len(b.placements)),
		Summary: SummaryJSON{
			ByStrategy: make(map[string]int),
			ByLetter:   make(map[string]int),
		},
	}

	for _, r := range b.classifications {
		export.Classifications = append(export.Classifications, ClassificationJSON{
			ID:         r.ID,
			Time:       r.Time,
			BeatNumber: r.BeatNumber,
			Letter:     string(r.Letter),
			Confidence: r.Confidence,
			Strategy:   r.Strategy,
			Reason:     r.Reason,
			Warnings:   r.Warnings,
			Query:      r.Query,
		})
		export.Summary.Classified++
		if r.Letter != "" {
			export.Summary.Found++
			export.Summary.ByLetter[string(r.Letter)]++
			export.Summary.ByStrategy[r.Strategy]++
		}
	}

	for _, r := range b.placements {
		export.Placements = append(export.Placements, PlacementJSON{
			ID:         r.ID,
			Time:       r.Time,
			BeatNumber: r.BeatNumber,
			Letter:     string(r.Letter),
			Color:      string(r.Color),
			MotionType: string(r.MotionType),
			GridMode:   string(r.GridMode),
			Location:   string(r.Location),
			Quadrant:   r.Quadrant,
			Offset:     [2]float64{r.DX, r.DY},
		})
	}
	export.Summary.Placed = len(export.Placements)

	// beat order, ID breaks ties
	sort.SliceStable(export.Classifications, func(i, j int) bool {
		return export.Classifications[i].BeatNumber < export.Classifications[j].BeatNumber
	})
	sort.SliceStable(export.Placements, func(i, j int) bool {
		return export.Placements[i].BeatNumber < export.Placements[j].BeatNumber
	})

	return export
}

func writeJSON(path string, data ResultsExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data ResultsExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
