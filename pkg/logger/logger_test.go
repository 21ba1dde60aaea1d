package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitAndGet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})

	log.Debug().Str("component", "test").Msg("hello")
	if !strings.Contains(buf.String(), `"component":"test"`) {
		t.Fatalf("expected structured field in output, got %q", buf.String())
	}

	if Get().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", Get().GetLevel())
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first bytes.Buffer
	Init(Options{Level: "warn", Output: &first})
	second := Init(Options{Level: "trace"})

	if second.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected the first Init to win, got %s", second.GetLevel())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
