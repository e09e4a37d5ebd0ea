package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/nmpick/internal/app"
	"github.com/atomicstack/nmpick/internal/config"
	"github.com/atomicstack/nmpick/internal/logging"
	"github.com/atomicstack/nmpick/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Environ(), os.Stderr, runApp)
	stop()
	os.Exit(code)
}

// execute runs the root command and maps its outcome to an exit status:
// 0 on success or cancel, 1 on runtime errors, 2 on configuration errors.
func execute(ctx context.Context, args, environ []string, stderr io.Writer, run func(context.Context, config.Config) error) int {
	cmd := newRootCommand(environ, run)
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if config.IsConfigError(err) {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(environ []string, run func(context.Context, config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nmpick [flags]",
		Short: "Browse a project's node_modules and open a file from it",
		Long: `nmpick lists the packages of the workspace's dependency folder (or, in a
monorepo, of the sub-project holding the active file), lets you drill down
to a file, opens it in your editor and prints its path.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &config.Error{Err: fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
	}
	binding := config.Bind(cmd.Flags(), environ)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.Error{Err: err}
	})
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := binding.Config(args)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	}
	return cmd
}

func runApp(ctx context.Context, cfg config.Config) error {
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	traceStartup(cfg)

	if err := app.Run(ctx, cfg.App); err != nil {
		logging.Error(err)
		return err
	}
	return nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
