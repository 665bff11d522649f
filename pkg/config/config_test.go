package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
poll_interval: 500ms
track_seconds: 30
list_limit: 5
list_filter: python
no_color: true
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("poll interval wrong: %v", cfg.PollInterval)
	}
	if cfg.TrackSeconds != 30 || cfg.ListLimit != 5 {
		t.Fatalf("numeric overrides wrong: %+v", cfg)
	}
	if cfg.ListFilter != "python" || !cfg.NoColor {
		t.Fatalf("string/bool overrides wrong: %+v", cfg)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"badDuration", "poll_interval: soon", "poll_interval"},
		{"tooFast", "poll_interval: 1ms", "below minimum"},
		{"negativeSeconds", "track_seconds: -5", "track_seconds"},
		{"hugeWindow", "track_seconds: 99999", "track_seconds"},
		{"zeroLimitExplicit", "list_limit: -1", "list_limit"},
		{"notYAML", "{{nope", "parsing config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error for %q", tc.yaml)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seagreen.yaml")
	if err := os.WriteFile(path, []byte("track_seconds: 15\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TrackSeconds != 15 {
		t.Fatalf("expected 15s default window, got %d", cfg.TrackSeconds)
	}
}
