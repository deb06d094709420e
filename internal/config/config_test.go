package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"assistant.name", cfg.Assistant.Name, "Concentra"},
		{"assistant.language", cfg.Assistant.Language, "en"},
		{"assistant.max_attempts", cfg.Assistant.MaxAttempts, 0},
		{"capture.timeout_seconds", cfg.Capture.TimeoutSeconds, 5},
		{"capture.phrase_seconds", cfg.Capture.PhraseSeconds, 5},
		{"capture.calibrate_ms", cfg.Capture.CalibrateMs, 500},
		{"capture.sample_rate", cfg.Capture.SampleRate, 16000},
		{"recognizer.lang", cfg.Recognizer.Lang, "en-US"},
		{"recognizer.key", cfg.Recognizer.Key, ""},
		{"tui.accent_color", cfg.TUI.AccentColor, DefaultAccentColor},
		{"notifications.on_elapsed", cfg.Notifications.OnElapsed, true},
		{"notifications.on_stop", cfg.Notifications.OnStop, true},
		{"notifications.on_error", cfg.Notifications.OnError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults() should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[assistant]
name = "Focus Friend"
language = "de"
max_attempts = 3

[capture]
timeout_seconds = 8
phrase_seconds = 6
calibrate_ms = 250
sample_rate = 44100

[recognizer]
lang = "de-DE"
key = "my-key"

[tui]
accent_color = "#81A1C1"
background = "frames.txt"

[notifications]
url = "https://ntfy.sh/study"
on_elapsed = false
`
		path := filepath.Join(dir, "concentra.toml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			name string
			got  any
			want any
		}{
			{"assistant.name", cfg.Assistant.Name, "Focus Friend"},
			{"assistant.language", cfg.Assistant.Language, "de"},
			{"assistant.max_attempts", cfg.Assistant.MaxAttempts, 3},
			{"capture.timeout_seconds", cfg.Capture.TimeoutSeconds, 8},
			{"capture.phrase_seconds", cfg.Capture.PhraseSeconds, 6},
			{"capture.calibrate_ms", cfg.Capture.CalibrateMs, 250},
			{"capture.sample_rate", cfg.Capture.SampleRate, 44100},
			{"recognizer.lang", cfg.Recognizer.Lang, "de-DE"},
			{"recognizer.key", cfg.Recognizer.Key, "my-key"},
			{"tui.accent_color", cfg.TUI.AccentColor, "#81A1C1"},
			{"tui.background", cfg.TUI.Background, "frames.txt"},
			{"notifications.url", cfg.Notifications.URL, "https://ntfy.sh/study"},
			{"notifications.on_elapsed", cfg.Notifications.OnElapsed, false},
			// untouched keys keep their defaults
			{"notifications.on_stop", cfg.Notifications.OnStop, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if tt.got != tt.want {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			})
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "concentra.toml")
		content := "[assistant]\nnaem = \"typo\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "unknown keys") {
			t.Fatalf("want unknown-keys error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()
		oldWD, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chdir(oldWD) })

		_, err = Load("")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty name", func(c *Config) { c.Assistant.Name = "" }, "assistant.name"},
		{"empty language", func(c *Config) { c.Assistant.Language = "" }, "assistant.language"},
		{"negative attempts", func(c *Config) { c.Assistant.MaxAttempts = -1 }, "assistant.max_attempts"},
		{"zero timeout", func(c *Config) { c.Capture.TimeoutSeconds = 0 }, "capture.timeout_seconds"},
		{"zero phrase", func(c *Config) { c.Capture.PhraseSeconds = 0 }, "capture.phrase_seconds"},
		{"negative calibrate", func(c *Config) { c.Capture.CalibrateMs = -1 }, "capture.calibrate_ms"},
		{"zero sample rate", func(c *Config) { c.Capture.SampleRate = 0 }, "capture.sample_rate"},
		{"empty recognizer lang", func(c *Config) { c.Recognizer.Lang = "" }, "recognizer.lang"},
		{"bad endpoint", func(c *Config) { c.Recognizer.Endpoint = "not a url" }, "recognizer.endpoint"},
		{"bad accent color", func(c *Config) { c.TUI.AccentColor = "blue" }, "tui.accent_color"},
		{"bad notify url", func(c *Config) { c.Notifications.URL = "ftp://x" }, "notifications.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()

	path, err := InitFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "concentra.toml" {
		t.Errorf("path = %s", path)
	}

	// The template must load back cleanly and match the defaults.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template does not validate: %v", err)
	}
	want := Defaults()
	if *cfg != want {
		t.Errorf("template differs from defaults:\n got %+v\nwant %+v", *cfg, want)
	}

	// Second init must refuse to overwrite.
	if _, err := InitFile(dir); err == nil {
		t.Error("expected error on existing concentra.toml")
	}
}
