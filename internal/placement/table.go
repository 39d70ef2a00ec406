package placement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

const specialSuffix = "_placements.json"

// rawTable is the shape shared by every placement file:
// outer key -> inner key -> [dx, dy].
type rawTable map[string]map[string]Adjustment

func (r rawTable) lookup(outer, inner string) (Adjustment, bool) {
	v, ok := r[outer][inner]
	return v, ok
}

func (r rawTable) entries() int {
	n := 0
	for _, inner := range r {
		n += len(inner)
	}
	return n
}

// Options configures LoadTables.
type Options struct {
	// Strict fails the load when any default table is missing or any file is malformed.
	Strict bool
	Logger *slog.Logger
}

// Tables holds every placement table, loaded once and only read afterwards.
type Tables struct {
	defaults map[core.GridMode]map[core.MotionType]rawTable
	special  map[core.GridMode]map[string]map[core.Letter]rawTable
}

// Summary counts what a Tables value holds.
type Summary struct {
	DefaultTables  int `json:"defaultTables"`
	DefaultEntries int `json:"defaultEntries"`
	SpecialTables  int `json:"specialTables"`
}

// DefaultPath is where the default table for a grid mode and motion type lives under root.
func DefaultPath(root string, g core.GridMode, mt core.MotionType) string {
	return filepath.Join(root, "arrow_placement", string(g), "default",
		fmt.Sprintf("default_%s_%s_placements.json", g, mt))
}

// SpecialDir is the directory holding per-letter special tables for a grid mode.
func SpecialDir(root string, g core.GridMode) string {
	return filepath.Join(root, "arrow_placement", string(g), "special")
}

// LoadTables reads every default table for each grid mode and motion type,
// plus any special tables found under root. Without Strict, unreadable files
// are logged and replaced by empty tables.
func LoadTables(root string, opts Options) (*Tables, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tables{
		defaults: make(map[core.GridMode]map[core.MotionType]rawTable),
		special:  make(map[core.GridMode]map[string]map[core.Letter]rawTable),
	}

	var errs []error
	for _, g := range core.GridModes {
		t.defaults[g] = make(map[core.MotionType]rawTable)
		for _, mt := range core.MotionTypes {
			tbl, err := readTable(DefaultPath(root, g, mt))
			if err != nil {
				if opts.Strict {
					errs = append(errs, err)
					continue
				}
				logger.Warn("Placement table unavailable, using empty table", "grid", g, "motionType", mt, "error", err)
				tbl = rawTable{}
			}
			t.defaults[g][mt] = tbl
		}

		if err := t.loadSpecial(root, g, opts.Strict, logger); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	s := t.Summary()
	logger.Info("Placement tables loaded", "root", root, "defaultTables", s.DefaultTables, "specialTables", s.SpecialTables)
	return t, nil
}

// loadSpecial fills t.special[g]. Without strict, unreadable directories and
// files are logged and skipped, leaving the special tables empty or partial.
func (t *Tables) loadSpecial(root string, g core.GridMode, strict bool, logger *slog.Logger) error {
	byOri := make(map[string]map[core.Letter]rawTable)
	t.special[g] = byOri

	var errs []error
	fail := func(err error, path string) {
		if strict {
			errs = append(errs, err)
			return
		}
		logger.Warn("Skipping special placement data", "path", path, "error", err)
	}

	dir := SpecialDir(root, g)
	oriDirs, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		fail(fmt.Errorf("error reading special placement dir %s: %w", dir, err), dir)
		return errors.Join(errs...)
	}

	for _, ori := range oriDirs {
		if !ori.IsDir() {
			continue
		}
		oriDir := filepath.Join(dir, ori.Name())
		files, err := os.ReadDir(oriDir)
		if err != nil {
			fail(fmt.Errorf("error reading special placement dir %s: %w", oriDir, err), oriDir)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), specialSuffix) {
				continue
			}
			path := filepath.Join(dir, ori.Name(), f.Name())
			tbl, err := readTable(path)
			if err != nil {
				fail(err, path)
				continue
			}
			if byOri[ori.Name()] == nil {
				byOri[ori.Name()] = make(map[core.Letter]rawTable)
			}
			byOri[ori.Name()][core.Letter(strings.TrimSuffix(f.Name(), specialSuffix))] = tbl
		}
	}
	return errors.Join(errs...)
}

func readTable(path string) (rawTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading placement table %s: %w", path, err)
	}

	// [2]float64 would take [5] and [1, 2, 3] as pairs; lengths are checked below.
	var raw map[string]map[string][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, err)
	}

	tbl := make(rawTable, len(raw))
	for outer, inner := range raw {
		row := make(map[string]Adjustment, len(inner))
		for key, v := range inner {
			if len(v) != 2 {
				return nil, fmt.Errorf("%w: %s: %s/%s has %d values, want [dx, dy]", ErrMalformedTable, path, outer, key, len(v))
			}
			row[key] = Adjustment{DX: v[0], DY: v[1]}
		}
		tbl[outer] = row
	}
	return tbl, nil
}

// Default looks up the default table entry, trying placementKey first and
// then the bare motion type.
func (t *Tables) Default(g core.GridMode, mt core.MotionType, placementKey, turns string) (Adjustment, bool) {
	if t == nil {
		return Adjustment{}, false
	}
	tbl := t.defaults[g][mt]
	if adj, ok := tbl.lookup(placementKey, turns); ok {
		return adj, true
	}
	return tbl.lookup(string(mt), turns)
}

// Special looks up a per-letter special table entry.
func (t *Tables) Special(g core.GridMode, oriKey string, letter core.Letter, turnsTuple, attrKey string) (Adjustment, bool) {
	if t == nil {
		return Adjustment{}, false
	}
	return t.special[g][oriKey][letter].lookup(turnsTuple, attrKey)
}

// Summary counts the loaded tables. Empty placeholder tables are not counted.
func (t *Tables) Summary() Summary {
	var s Summary
	if t == nil {
		return s
	}
	for _, byType := range t.defaults {
		for _, tbl := range byType {
			if len(tbl) > 0 {
				s.DefaultTables++
			}
			s.DefaultEntries += tbl.entries()
		}
	}
	for _, byOri := range t.special {
		for _, byLetter := range byOri {
			s.SpecialTables += len(byLetter)
		}
	}
	return s
}
