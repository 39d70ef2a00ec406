package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/cache"
	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/internal/comparator"
	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/internal/dispatcher"
	"github.com/kinetic-alphabet/pictograph/internal/logging"
	"github.com/kinetic-alphabet/pictograph/internal/monitor"
	"github.com/kinetic-alphabet/pictograph/internal/parser"
	"github.com/kinetic-alphabet/pictograph/internal/placement"
	"github.com/kinetic-alphabet/pictograph/internal/storage"
	"github.com/kinetic-alphabet/pictograph/internal/worker"
)

const (
	maxLineSize  = 1 << 20
	drainTimeout = 30 * time.Second
)

// ErrEmptyLine is returned by decodeLine for lines without a command.
var ErrEmptyLine = errors.New("empty command line")

// response is written for every processed line.
type response struct {
	Line    int    `json:"line"`
	Command string `json:"command,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// run wires the engines, the storage backend and the dispatcher, then feeds
// every line of input through them.
func (a *app) run(ctx context.Context, input, output string) error {
	provider, err := a.loadDataset()
	if err != nil {
		return err
	}
	if !provider.ValidateDataset() {
		a.logger.Warn("Dataset is not valid, classification may miss letters")
	}

	cmpCtx, err := config.GetClassifyConfig()
	if err != nil {
		return err
	}
	classifier, err := classify.NewEngine(a.logger, classify.DefaultStrategies()...)
	if err != nil {
		return err
	}

	pc := config.GetPlacementConfig()
	tables, err := placement.LoadTables(pc.Root, placement.Options{Strict: pc.Strict, Logger: a.logger})
	if err != nil {
		return fmt.Errorf("failed to load placement tables: %w", err)
	}
	summary := tables.Summary()
	a.logger.Info("Loaded placement tables",
		"root", pc.Root,
		"defaultTables", summary.DefaultTables,
		"defaultEntries", summary.DefaultEntries,
		"specialTables", summary.SpecialTables)

	placer, err := placement.NewEngine(tables, a.logger)
	if err != nil {
		return err
	}

	storageCfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(storageCfg, storage.Settings{
		DB:     config.GetDBConfig(),
		Influx: config.GetInfluxConfig(),
		Logger: a.zlog,
	})
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	a.logger.Info("Storage backend initialized", "type", storageCfg.Type)

	var resultCache *cache.ResultCache
	if config.GetBool("cache.enabled") {
		resultCache = cache.NewResultCache()
	}

	d, err := dispatcher.New(logging.NewDispatcherLogger(a.zlog))
	if err != nil {
		_ = backend.Close()
		return err
	}

	wm := worker.NewManager(worker.Dependencies{
		Parser:     parser.NewParser(a.logger),
		Classifier: classifier,
		Placer:     placer,
		Tables:     tables,
		Dataset:    provider,
		Comparator: comparator.Attribute{},
		Context:    cmpCtx,
		Cache:      resultCache,
		Logger:     a.logger,
	}, backend)
	wm.RegisterHandlers(d)
	a.logger.Debug("Registered handlers", "commands", d.Commands())

	in, closeIn, err := openInput(input)
	if err != nil {
		_ = backend.Close()
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(output)
	if err != nil {
		_ = backend.Close()
		return err
	}
	defer closeOut()

	mon := monitor.NewService(monitor.Dependencies{
		Logger:        a.logger,
		WorkerManager: wm,
		StatusPath:    config.GetString("monitor.statusPath"),
		Interval:      config.GetDuration("monitor.interval"),
	})
	if err := mon.Start(); err != nil {
		a.logger.Warn("Status monitor not started", "error", err)
	}

	n, runErr := processLines(ctx, d, in, out)

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := d.Close(drainCtx); err != nil {
		a.logger.Warn("Queued commands not drained", "error", err)
	}
	closeErr := backend.Close()
	mon.Stop()
	if closeErr != nil {
		return fmt.Errorf("failed to close storage backend: %w", closeErr)
	}
	if exp, ok := backend.(storage.Exporter); ok && exp.ExportedFilePath() != "" {
		a.logger.Info("Results exported", "path", exp.ExportedFilePath())
	}

	a.logger.Info("Run complete", "lines", n, "duration", time.Since(a.started))
	return runErr
}

// processLines dispatches every non-blank, non-comment line of r and writes
// one JSON response per line to w. It stops early when ctx is cancelled.
func processLines(ctx context.Context, d *dispatcher.Dispatcher, r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	processed := 0
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		resp := response{Line: lineNo}
		e, err := decodeLine(line, lineNo)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Command = e.Command
			resp.Result, err = d.Dispatch(e)
			if err != nil {
				resp.Error = err.Error()
			}
		}

		if err := enc.Encode(resp); err != nil {
			return processed, fmt.Errorf("failed to write result: %w", err)
		}
		processed++
	}
	if err := scanner.Err(); err != nil {
		return processed, fmt.Errorf("failed to read commands: %w", err)
	}
	return processed, nil
}

// decodeLine parses `["command", arg, ...]`. String arguments are passed
// through unquoted; any other JSON value is passed as its raw text, so a
// pictograph may be given inline as an object.
func decodeLine(line string, lineNo int) (dispatcher.Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return dispatcher.Event{}, fmt.Errorf("error unmarshalling command line: %w", err)
	}
	if len(raw) == 0 {
		return dispatcher.Event{}, ErrEmptyLine
	}

	args := make([]string, len(raw))
	for i, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			args[i] = s
			continue
		}
		args[i] = string(r)
	}
	if args[0] == "" {
		return dispatcher.Event{}, ErrEmptyLine
	}

	return dispatcher.Event{
		Command:   strings.ToLower(args[0]),
		Args:      args[1:],
		Line:      lineNo,
		Timestamp: time.Now(),
	}, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
