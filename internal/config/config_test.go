package config

import (
	"log/slog"
	"testing"

	"pkt.systems/capline"
)

func TestSettingsMapping(t *testing.T) {
	cfg := Config{FadeText: true, FilterSlurs: true}
	s := cfg.Settings()
	if !s.FadeText || s.Uppercase {
		t.Fatalf("display preferences lost: %+v", s)
	}
	if s.Filter != capline.FilterSlurs {
		t.Fatalf("got filter %v, want FilterSlurs", s.Filter)
	}

	cfg.FilterProfanity = true
	if got := cfg.Settings().Filter; got != capline.FilterProfanity {
		t.Fatalf("profanity must take precedence, got %v", got)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range cases {
		if got := (Config{LogLevel: name}).SlogLevel(); got != want {
			t.Fatalf("%s: got %v, want %v", name, got, want)
		}
	}
}
