package config

import (
	"reflect"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Folder != "node_modules" {
		t.Fatalf("expected default folder, got %q", cfg.App.Folder)
	}
	if cfg.App.Concurrency != 8 {
		t.Fatalf("expected default concurrency 8, got %d", cfg.App.Concurrency)
	}
	if cfg.App.Editor != "" || cfg.App.PrintOnly || cfg.App.Copy {
		t.Fatalf("unexpected opener defaults %#v", cfg.App)
	}
	if len(cfg.App.Hide) != 0 {
		t.Fatalf("expected no hide patterns, got %v", cfg.App.Hide)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"NMPICK_WORKSPACE=/ws",
		"NMPICK_ACTIVE_FILE=web/src/app.ts",
		"NMPICK_FOLDER=deps",
		"NMPICK_HIDE=.bin, .cache ,",
		"NMPICK_CONCURRENCY=3",
		"NMPICK_COPY=true",
		"NMPICK_TRACE=1",
		"NMPICK_LOG_FILE=/tmp/nmpick.log",
		"EDITOR=vi",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	app := cfg.App
	if app.Workspace != "/ws" || app.ActiveFile != "web/src/app.ts" || app.Folder != "deps" {
		t.Fatalf("unexpected workspace settings %#v", app)
	}
	if !reflect.DeepEqual(app.Hide, []string{".bin", ".cache"}) {
		t.Fatalf("unexpected hide patterns %v", app.Hide)
	}
	if app.Concurrency != 3 || !app.Copy || app.Editor != "vi" {
		t.Fatalf("unexpected values %#v", app)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/nmpick.log" {
		t.Fatalf("unexpected logging %#v", cfg.Logging)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{"NMPICK_FOLDER=deps", "VISUAL=code -w", "EDITOR=vi"}
	args := []string{"--folder", "node_modules", "--editor", "hx", "--hide", "*.map", "--hide", "test", "-p", "--width", "80", "--plain", "extra"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Folder != "node_modules" || cfg.App.Editor != "hx" {
		t.Fatalf("expected flags to win, got %#v", cfg.App)
	}
	if !reflect.DeepEqual(cfg.App.Hide, []string{"*.map", "test"}) {
		t.Fatalf("unexpected hide patterns %v", cfg.App.Hide)
	}
	if !cfg.App.PrintOnly || !cfg.App.Plain || cfg.App.Width != 80 {
		t.Fatalf("unexpected flags %#v", cfg.App)
	}
	if !reflect.DeepEqual(cfg.Args, []string{"extra"}) {
		t.Fatalf("unexpected positional args %v", cfg.Args)
	}
	if cfg.Flags["editor"] != "hx" || cfg.Flags["print"] != "true" {
		t.Fatalf("unexpected flag snapshot %v", cfg.Flags)
	}
}

func TestVisualPreferredOverEditor(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"VISUAL=code -w", "EDITOR=vi"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Editor != "code -w" {
		t.Fatalf("expected VISUAL to win, got %q", cfg.App.Editor)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"negative width":   {"--width", "-1"},
		"negative height":  {"--height", "-2"},
		"zero concurrency": {"--concurrency", "0"},
		"nested folder":    {"--folder", "a/b"},
		"bad glob":         {"--hide", "[oops"},
		"unknown flag":     {"--socket", "x"},
	}
	for name, args := range cases {
		_, err := LoadArgs(args, nil)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !IsConfigError(err) {
			t.Fatalf("%s: expected config error, got %T", name, err)
		}
	}
}

func TestInvalidEnvironmentNumbersFallBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"NMPICK_CONCURRENCY=lots", "NMPICK_COPY=maybe"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Concurrency != 8 || cfg.App.Copy {
		t.Fatalf("expected defaults for unparsable env, got %#v", cfg.App)
	}
}
