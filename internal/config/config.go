// Package config parses concentra.toml configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultAccentColor is the default TUI accent color, the button blue from
// the original desktop stylesheet.
const DefaultAccentColor = "#5E81AC"

// ErrNotFound is returned by Load when no concentra.toml exists. Callers run
// on Defaults() in that case; the assistant works without a config file.
var ErrNotFound = errors.New("config: concentra.toml not found")

// hexColorRe matches a 6-digit hex color string like "#5E81AC".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level concentra.toml configuration.
type Config struct {
	Assistant     AssistantConfig     `toml:"assistant"`
	Capture       CaptureConfig       `toml:"capture"`
	Recognizer    RecognizerConfig    `toml:"recognizer"`
	TUI           TUIConfig           `toml:"tui"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// AssistantConfig controls the conversation itself.
type AssistantConfig struct {
	Name        string `toml:"name"`
	Language    string `toml:"language"`     // spoken-prompt language (Google TTS code)
	MaxAttempts int    `toml:"max_attempts"` // duration-collection bound; 0 = unlimited
}

// CaptureConfig controls microphone capture.
type CaptureConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"` // bounded wait for speech onset
	PhraseSeconds  int `toml:"phrase_seconds"`  // maximum utterance length
	CalibrateMs    int `toml:"calibrate_ms"`    // ambient-noise sampling window
	SampleRate     int `toml:"sample_rate"`
}

// RecognizerConfig controls the speech recognition backend.
type RecognizerConfig struct {
	Lang     string `toml:"lang"`     // BCP-47 recognition language
	Key      string `toml:"key"`      // empty = CONCENTRA_SPEECH_KEY, then shared key
	Endpoint string `toml:"endpoint"` // empty = default Web Speech endpoint
}

// TUIConfig controls the terminal shell appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
	Background  string `toml:"background"` // animation frames file; empty = bundled default
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL       string `toml:"url"`
	OnElapsed bool   `toml:"on_elapsed"`
	OnStop    bool   `toml:"on_stop"`
	OnError   bool   `toml:"on_error"`
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Assistant.Name == "" {
		errs = append(errs, fmt.Errorf("assistant.name must not be empty"))
	}
	if c.Assistant.Language == "" {
		errs = append(errs, fmt.Errorf("assistant.language must not be empty"))
	}
	if c.Assistant.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("assistant.max_attempts must be >= 0 (0 = unlimited)"))
	}

	if c.Capture.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("capture.timeout_seconds must be > 0"))
	}
	if c.Capture.PhraseSeconds <= 0 {
		errs = append(errs, fmt.Errorf("capture.phrase_seconds must be > 0"))
	}
	if c.Capture.CalibrateMs < 0 {
		errs = append(errs, fmt.Errorf("capture.calibrate_ms must be >= 0"))
	}
	if c.Capture.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("capture.sample_rate must be > 0"))
	}

	if c.Recognizer.Lang == "" {
		errs = append(errs, fmt.Errorf("recognizer.lang must not be empty"))
	}
	if c.Recognizer.Endpoint != "" {
		u, parseErr := url.ParseRequestURI(c.Recognizer.Endpoint)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("recognizer.endpoint must be a valid http or https URL"))
		}
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. %q)", DefaultAccentColor))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns a Config matching the original application's behavior:
// five-second capture windows, half a second of ambient calibration, English
// prompts, no attempt bound.
func Defaults() Config {
	return Config{
		Assistant: AssistantConfig{
			Name:        "Concentra",
			Language:    "en",
			MaxAttempts: 0,
		},
		Capture: CaptureConfig{
			TimeoutSeconds: 5,
			PhraseSeconds:  5,
			CalibrateMs:    500,
			SampleRate:     16000,
		},
		Recognizer: RecognizerConfig{
			Lang: "en-US",
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Notifications: NotificationsConfig{
			OnElapsed: true,
			OnStop:    true,
			OnError:   false,
		},
	}
}

// Load reads concentra.toml from the given path. If path is empty, it walks
// up from the current working directory looking for concentra.toml and
// returns ErrNotFound when none exists. Unknown keys (likely typos) are
// rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	return &cfg, nil
}

// findConfig walks up from the current directory looking for concentra.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "concentra.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrNotFound, dir)
		}
		dir = parent
	}
}

// InitFile writes a default concentra.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, "concentra.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: concentra.toml already exists at %s", path)
	}

	content := `# concentra.toml: Concentra configuration
# Optional: every key has a working default.

[assistant]
name = "Concentra"
language = "en"   # spoken-prompt language (Google TTS code)
max_attempts = 0  # 0 = keep asking until a valid duration is heard

[capture]
timeout_seconds = 5  # how long to wait for you to start speaking
phrase_seconds = 5   # maximum utterance length
calibrate_ms = 500   # ambient-noise calibration window
sample_rate = 16000

[recognizer]
lang = "en-US"
key = ""      # Web Speech API key (empty = CONCENTRA_SPEECH_KEY, then shared key)
endpoint = "" # override for testing

[tui]
accent_color = "#5E81AC"  # hex color for header/accent elements
background = ""           # animation frames file (empty = bundled default)

[notifications]
url = ""           # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_elapsed = true  # notify when the timer elapses
on_stop = true     # notify when the session is stopped
on_error = false   # notify on capture/service errors
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
