package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

var requiredColumns = []string{
	"letter",
	"blue_motion_type", "blue_prop_rot_dir", "blue_start_loc", "blue_end_loc",
	"red_motion_type", "red_prop_rot_dir", "red_start_loc", "red_end_loc",
}

// LoadCSVFile reads a dataset CSV from disk.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset file: %w", err)
	}
	defer f.Close()

	ds, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// LoadCSV parses a dataset CSV. Rows are kept in file order per letter.
//
// Required columns: letter and <color>_{motion_type,prop_rot_dir,start_loc,end_loc}
// for blue and red. Optional columns: direction, beat_number and
// <color>_{start_ori,end_ori,turns}. Unknown columns are ignored.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	b := NewBuilder()
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		p, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		b.Add(core.Letter(get("letter")), p)
	}

	ds := b.Build()
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

func parseRow(get func(string) string) (core.Pictograph, error) {
	var p core.Pictograph

	if get("letter") == "" {
		return p, fmt.Errorf("%w: empty letter", ErrInvalidExample)
	}

	dir, err := core.ParseDirection(get("direction"))
	if err != nil {
		return p, err
	}
	p.Direction = dir

	if beat := get("beat_number"); beat != "" {
		if _, err := fmt.Sscanf(beat, "%d", &p.BeatNumber); err != nil {
			return p, fmt.Errorf("%w: beat_number %q", ErrInvalidExample, beat)
		}
	}

	if p.Blue, err = parseMotion(get, "blue"); err != nil {
		return p, fmt.Errorf("blue: %w", err)
	}
	if p.Red, err = parseMotion(get, "red"); err != nil {
		return p, fmt.Errorf("red: %w", err)
	}
	return p, p.Validate()
}

func parseMotion(get func(string) string, color string) (core.Motion, error) {
	var m core.Motion
	var err error

	field := func(name string) string { return get(color + "_" + name) }

	if m.MotionType, err = core.ParseMotionType(field("motion_type")); err != nil {
		return m, err
	}
	if m.PropRotDir, err = core.ParseRotDir(field("prop_rot_dir")); err != nil {
		return m, err
	}
	if m.StartLoc, err = core.ParseLocation(field("start_loc")); err != nil {
		return m, err
	}
	if m.EndLoc, err = core.ParseLocation(field("end_loc")); err != nil {
		return m, err
	}
	if m.StartOri, err = core.ParseOrientation(field("start_ori")); err != nil {
		return m, err
	}
	if m.EndOri, err = core.ParseOrientation(field("end_ori")); err != nil {
		return m, err
	}
	if m.Turns, err = core.ParseTurns(field("turns")); err != nil {
		return m, err
	}
	return m, nil
}
