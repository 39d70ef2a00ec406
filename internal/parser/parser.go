// Package parser turns command arguments into core values. It does no I/O
// beyond logging.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kinetic-alphabet/pictograph/internal/util"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// ErrMissingArgs is returned when a command has fewer arguments than it needs.
var ErrMissingArgs = errors.New("parser: missing arguments")

// parseUintFromFloat parses a string that may be an integer ("3") or a
// float ("3.00") into uint64. Spreadsheet exports often write whole numbers
// as floats.
func parseUintFromFloat(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != float64(uint64(f)) {
		return 0, fmt.Errorf("parseUintFromFloat: %q is not a valid uint64", s)
	}
	return uint64(f), nil
}

// PlacementRequest asks for the arrow placement of one channel.
type PlacementRequest struct {
	Pictograph core.Pictograph
	Color      core.Color
	// Location overrides the computed arrow location when set.
	Location core.Location
}

// Parser converts []string command arguments into core values.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParsePictograph parses args[0] as pictograph JSON. An optional args[1]
// overrides the beat number.
func (p *Parser) ParsePictograph(args []string) (core.Pictograph, error) {
	var pic core.Pictograph
	if len(args) < 1 {
		return pic, fmt.Errorf("%w: pictograph", ErrMissingArgs)
	}

	if err := json.Unmarshal([]byte(util.UnquoteArg(args[0])), &pic); err != nil {
		return pic, fmt.Errorf("error unmarshalling pictograph: %w", err)
	}
	if pic.Direction == "" {
		pic.Direction = core.Same
	}

	if len(args) > 1 && util.UnquoteArg(args[1]) != "" {
		beat, err := parseUintFromFloat(util.UnquoteArg(args[1]))
		if err != nil {
			return pic, fmt.Errorf("error parsing beat number: %w", err)
		}
		pic.BeatNumber = int(beat)
	}

	if err := pic.Validate(); err != nil {
		return pic, fmt.Errorf("invalid pictograph: %w", err)
	}

	p.logger.Debug("Parsed pictograph",
		"letter", pic.Letter,
		"blue", pic.Blue.MotionType,
		"red", pic.Red.MotionType,
		"beat", pic.BeatNumber)
	return pic, nil
}

// ParsePlacementRequest parses a pictograph, the arrow color and an optional
// location override.
func (p *Parser) ParsePlacementRequest(args []string) (PlacementRequest, error) {
	var req PlacementRequest
	if len(args) < 2 {
		return req, fmt.Errorf("%w: pictograph and color", ErrMissingArgs)
	}

	pic, err := p.ParsePictograph(args[:1])
	if err != nil {
		return req, err
	}
	req.Pictograph = pic

	req.Color, err = core.ParseColor(util.UnquoteArg(args[1]))
	if err != nil {
		return req, fmt.Errorf("error parsing arrow color: %w", err)
	}

	if len(args) > 2 && util.UnquoteArg(args[2]) != "" {
		req.Location, err = core.ParseLocation(util.UnquoteArg(args[2]))
		if err != nil {
			return req, fmt.Errorf("error parsing arrow location: %w", err)
		}
	}
	return req, nil
}
