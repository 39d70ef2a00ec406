// Command pictograph classifies pictographs and computes arrow placements for
// batches of command lines, recording every result in the configured backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kinetic-alphabet/pictograph/internal/config"
)

// BuildDate can be set at build time via ldflags
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

// AppName prefixes log files and tags GELF messages.
const AppName = "pictograph"

func main() {
	var (
		configDir string
		input     string
		output    string
	)
	flag.StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	flag.StringVar(&input, "in", "-", "command file to run (- for stdin)")
	flag.StringVar(&output, "out", "-", "result file (- for stdout)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [run|import [csv]|version]\n", AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	mode := "run"
	if flag.NArg() > 0 {
		mode = strings.ToLower(flag.Arg(0))
	}
	if mode == "version" {
		fmt.Printf("%s %s (%s)\n", AppName, Version, BuildDate)
		return
	}

	configErr := config.Load(configDir)

	a, err := newApp(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if configErr != nil {
		a.logger.Warn("Failed to load config, using defaults!", "error", configErr)
	} else {
		a.logger.Info("Loaded config", "dir", configDir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch mode {
	case "run":
		err = a.run(ctx, input, output)
	case "import":
		err = a.importDataset(flag.Arg(1))
	default:
		flag.Usage()
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		a.logger.Error("Exiting with error", "mode", mode, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}
