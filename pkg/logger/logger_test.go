package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestModule(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf).Module("state")
	log.Info().Uint32("buffer", 3).Msg("scrub")

	out := buf.String()
	for _, want := range []string{`"m":"state"`, `"buffer":3`, `"message":"scrub"`} {
		if !strings.Contains(out, want) {
			t.Errorf("%v is missing in %v", want, out)
		}
	}
}

func TestNop(t *testing.T) {
	// must not panic or write anywhere
	Nop().Module("x").Error().Msg("nothing")
}
