package main

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/nmpick/internal/app"
	"github.com/atomicstack/nmpick/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Workspace:   "/ws",
			Folder:      "node_modules",
			Hide:        []string{".bin"},
			Concurrency: 4,
			Width:       80,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"workspace":   "/ws",
			"concurrency": "4",
			"width":       "80",
			"hide":        ".bin",
		},
		Args: []string{"--workspace", "/ws"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["workspace"] != "/ws" {
		t.Fatalf("expected workspace flag /ws, got %v", flagsValue["workspace"])
	}
	if flagsValue["concurrency"] != "4" {
		t.Fatalf("expected concurrency 4, got %v", flagsValue["concurrency"])
	}
	if flagsValue["hide"] != ".bin" {
		t.Fatalf("expected hide .bin, got %v", flagsValue["hide"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if !reflect.DeepEqual(cfgValue.App, cfg.App) {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestExecutePassesParsedConfig(t *testing.T) {
	var got config.Config
	run := func(_ context.Context, cfg config.Config) error {
		got = cfg
		return nil
	}
	var stderr bytes.Buffer
	code := execute(context.Background(), []string{"--folder", "deps", "-p", "--file", "web/a.ts"}, []string{"EDITOR=vi"}, &stderr, run)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if got.App.Folder != "deps" || !got.App.PrintOnly || got.App.ActiveFile != "web/a.ts" || got.App.Editor != "vi" {
		t.Fatalf("unexpected config %#v", got.App)
	}
}

func TestExecuteExitCodes(t *testing.T) {
	ok := func(context.Context, config.Config) error { return nil }
	failing := func(context.Context, config.Config) error { return errors.New("no workspace is open") }

	cases := []struct {
		name string
		args []string
		run  func(context.Context, config.Config) error
		code int
		text string
	}{
		{"unknown flag", []string{"--socket", "x"}, ok, 2, "Configuration error"},
		{"invalid value", []string{"--concurrency", "0"}, ok, 2, "concurrency must be > 0"},
		{"positional args", []string{"extra"}, ok, 2, "unexpected arguments"},
		{"runtime error", nil, failing, 1, "Error: no workspace is open"},
		{"success", nil, ok, 0, ""},
	}
	for _, tc := range cases {
		var stderr bytes.Buffer
		code := execute(context.Background(), tc.args, nil, &stderr, tc.run)
		if code != tc.code {
			t.Fatalf("%s: expected exit %d, got %d", tc.name, tc.code, code)
		}
		if tc.text != "" && !strings.Contains(stderr.String(), tc.text) {
			t.Fatalf("%s: expected %q in stderr, got %q", tc.name, tc.text, stderr.String())
		}
	}
}
