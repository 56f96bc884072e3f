package sysutil

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogLevel(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" DEBUG ": zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"Warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
	}
	for in, want := range cases {
		if got := SetLogLevel(in); got != want {
			t.Errorf("SetLogLevel(%q) returned %v, want %v", in, got, want)
		}
		if zerolog.GlobalLevel() != want {
			t.Errorf("SetLogLevel(%q): global level %v, want %v", in, zerolog.GlobalLevel(), want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "10.0.0.7", "127.0.0.1"); got != "10.0.0.7" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty(" ", ""); got != "" {
		t.Fatalf("all blank: got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("no args: got %q", got)
	}
}
