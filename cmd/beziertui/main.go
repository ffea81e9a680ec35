// Command beziertui is a terminal Bezier curve editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"beziertui/internal/config"
	"beziertui/internal/logging"
	"beziertui/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit status. Deferred cleanup has finished by the
// time it returns.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("beziertui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath     = fs.String("config", "", "TOML config file")
		logFile     = fs.String("log", "", "append logs to this file (overrides log.file)")
		logLevel    = fs.String("log-level", "", "log level: debug, info, warn, error (overrides log.level)")
		writeConfig = fs.String("write-config", "", "write the effective config to this file and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *cfgPath == "" && fs.NArg() > 0 {
		*cfgPath = fs.Arg(0)
	}
	fail := func(err error) int {
		fmt.Fprintln(stderr, "beziertui:", err)
		return 1
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fail(err)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fail(err)
	}
	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			return fail(err)
		}
		return 0
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fail(err)
	}
	logger, closer, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		return fail(err)
	}
	defer closer.Close()
	logging.SetLogger(logger)
	logger.Info("starting", "config", *cfgPath, "algorithm", cfg.Curve.Algorithm.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := tea.NewProgram(tui.New(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if *cfgPath != "" {
		w, err := config.NewWatcher(*cfgPath)
		if err != nil {
			logger.Warn("config watch disabled", "err", err)
		} else {
			go func() {
				err := w.Run(ctx, func(c config.Config, err error) {
					p.Send(tui.ConfigMsg{Config: c, Err: err})
				})
				if err != nil {
					logger.Warn("config watch stopped", "err", err)
				}
			}()
		}
	}
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		return fail(err)
	}
	logger.Info("bye")
	return 0
}
