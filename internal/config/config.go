package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/nmpick/internal/app"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/atomicstack/nmpick/internal/opener"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWorkspace   = "NMPICK_WORKSPACE"
	envActiveFile  = "NMPICK_ACTIVE_FILE"
	envFolder      = "NMPICK_FOLDER"
	envHide        = "NMPICK_HIDE"
	envConcurrency = "NMPICK_CONCURRENCY"
	envCopy        = "NMPICK_COPY"
	envTrace       = "NMPICK_TRACE"
	envLogFile     = "NMPICK_LOG_FILE"
)

// Error marks configuration problems so callers can map them to a distinct
// exit status.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// IsConfigError reports whether err came from flag parsing or validation.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

// Binding holds the flag values registered by Bind.
type Binding struct {
	env         map[string]string
	workspace   *string
	activeFile  *string
	folder      *string
	hide        *[]string
	concurrency *int
	editor      *string
	printOnly   *bool
	copyPath    *bool
	width       *int
	height      *int
	footer      *bool
	plain       *bool
	trace       *bool
	logFile     *string
}

// Bind registers every flag on fs, using environ for defaults.
func Bind(fs *pflag.FlagSet, environ []string) *Binding {
	env := parseEnv(environ)
	return &Binding{
		env:         env,
		workspace:   fs.StringP("workspace", "w", envOrDefault(env, envWorkspace, ""), "workspace root (defaults to the current directory)"),
		activeFile:  fs.StringP("file", "f", envOrDefault(env, envActiveFile, ""), "active file used to pick a monorepo sub-project"),
		folder:      fs.String("folder", envOrDefault(env, envFolder, nodemodules.DefaultFolder), "name of the dependency folder"),
		hide:        fs.StringSlice("hide", envOrList(env, envHide), "glob patterns of entry names to hide (comma separated)"),
		concurrency: fs.Int("concurrency", envOrInt(env, envConcurrency, nodemodules.DefaultConcurrency), "packages expanded in parallel while listing"),
		editor:      fs.StringP("editor", "e", "", "editor command line (defaults to $VISUAL, then $EDITOR)"),
		printOnly:   fs.BoolP("print", "p", false, "only print the chosen path; do not launch an editor"),
		copyPath:    fs.BoolP("copy", "c", envOrBool(env, envCopy, false), "copy the chosen path to the clipboard"),
		width:       fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)"),
		height:      fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)"),
		footer:      fs.Bool("footer", false, "show the key hint row"),
		plain:       fs.Bool("plain", false, "use the line prompt even on a terminal"),
		trace:       fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:     fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Config assembles and validates the configuration from parsed flags.
func (b *Binding) Config(args []string) (Config, error) {
	editor := opener.EditorFromEnv(*b.editor, func(key string) string { return b.env[key] })
	cfg := Config{
		App: app.Config{
			Workspace:   *b.workspace,
			ActiveFile:  *b.activeFile,
			Folder:      strings.TrimSpace(*b.folder),
			Hide:        cleanList(*b.hide),
			Concurrency: *b.concurrency,
			Editor:      editor,
			PrintOnly:   *b.printOnly,
			Copy:        *b.copyPath,
			Width:       *b.width,
			Height:      *b.height,
			ShowFooter:  *b.footer,
			Plain:       *b.plain,
		},
		Logging: Logging{
			FilePath: *b.logFile,
			Trace:    *b.trace,
		},
		Flags: map[string]string{
			"workspace":   *b.workspace,
			"file":        *b.activeFile,
			"folder":      *b.folder,
			"hide":        strings.Join(*b.hide, ","),
			"concurrency": strconv.Itoa(*b.concurrency),
			"editor":      editor,
			"print":       strconv.FormatBool(*b.printOnly),
			"copy":        strconv.FormatBool(*b.copyPath),
			"width":       strconv.Itoa(*b.width),
			"height":      strconv.Itoa(*b.height),
			"footer":      strconv.FormatBool(*b.footer),
			"plain":       strconv.FormatBool(*b.plain),
			"trace":       strconv.FormatBool(*b.trace),
			"logFile":     *b.logFile,
		},
		Args: append([]string(nil), args...),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("nmpick", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	binding := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, &Error{Err: err}
	}
	return binding.Config(fs.Args())
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return &Error{Err: fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)}
	}
	if cfg.App.Height < 0 {
		return &Error{Err: fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)}
	}
	if cfg.App.Concurrency <= 0 {
		return &Error{Err: fmt.Errorf("concurrency must be > 0 (got %d)", cfg.App.Concurrency)}
	}
	if cfg.App.Folder == "" || strings.ContainsRune(cfg.App.Folder, os.PathSeparator) {
		return &Error{Err: fmt.Errorf("folder must be a single directory name (got %q)", cfg.App.Folder)}
	}
	if _, err := nodemodules.CompilePatterns(cfg.App.Hide); err != nil {
		return &Error{Err: err}
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok {
		return nil
	}
	return cleanList(strings.Split(v, ","))
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
