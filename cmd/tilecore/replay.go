package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/logging"
	"github.com/1broseidon/tilecore/internal/script"
)

func runReplay(args []string) int {
	fs := newFlagSet("replay",
		"Usage: tilecore replay [options] <script.yaml>",
		"",
		"Run the steps of a YAML script and check their expectations. By default",
		"the script runs on a fresh in-process engine built from the config plus",
		"the script's screen and config overrides; --remote runs it on the daemon.")
	configPath := fs.StringP("config", "c", "", "Config file providing the base engine options")
	remote := fs.Bool("remote", false, "Run on the daemon instead of a fresh engine")
	socket := fs.String("socket", "", "IPC socket path (with --remote)")
	keepGoing := fs.BoolP("keep-going", "k", false, "Run every step even after a failure")
	asJSON := fs.Bool("json", false, "Print the report as JSON")
	verbose := fs.BoolP("verbose", "v", false, "Log engine commands to stderr")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "replay requires a script path")
		fs.Usage()
		return 2
	}

	s, err := script.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	var exec engine.Executor
	if *remote {
		if s.Screen != nil || s.Config != (script.Overrides{}) {
			logger.Warn("screen and config overrides are ignored with --remote")
		}
		exec = newClient(*socket)
	} else {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		session, err := script.NewSession(s, cfg.Options(), logger.Named("engine"))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		exec = session
	}

	opts := script.RunOptions{KeepGoing: *keepGoing, Logger: logger}
	if !*asJSON {
		opts.OnStep = func(r script.StepResult) { printStep(os.Stdout, r) }
	}
	report, runErr := script.Run(context.Background(), exec, s, opts)

	if *asJSON {
		if err := newPrinter(os.Stdout, true).emitJSON(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		fmt.Fprintf(os.Stdout, "%d steps, %d failed\n", len(report.Steps), report.Failures)
	}
	if runErr != nil {
		logger.Debug("replay failed", zap.Error(runErr))
		return 1
	}
	return 0
}

func printStep(w io.Writer, r script.StepResult) {
	status := "ok"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%-4s %3d %s", status, r.Index, r.Command.Op)
	if r.Command.Window != 0 {
		fmt.Fprintf(w, " window=%d", r.Command.Window)
	}
	switch {
	case r.Failure != nil:
		fmt.Fprintf(w, ": %v", r.Failure)
	case r.Err != nil:
		fmt.Fprintf(w, " (expected: %v)", r.Err)
	}
	fmt.Fprintln(w)
}
