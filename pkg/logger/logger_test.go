package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Service: "catalog-api", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "catalog-api" || entry["message"] != "visible" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	var first, second bytes.Buffer
	log := Init(Options{Level: "info", Service: "catalog-api", Output: &first})
	again := Init(Options{Level: "debug", Output: &second})

	log.Info().Msg("hello")
	again.Info().Msg("again")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger")
	}
	if n := bytes.Count(first.Bytes(), []byte("\n")); n != 2 {
		t.Fatalf("expected both events on the first writer, got %d lines", n)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected global level info, got %v", zerolog.GlobalLevel())
	}
}
