package generation

import (
	"math"
	"strings"
	"testing"
)

func TestDeriveConfidence(t *testing.T) {
	structured := "Los requisitos y los pasos del trámite: acude con tu contacto asignado." +
		strings.Repeat(" detalle", 5)

	cases := []struct {
		name        string
		text        string
		withContext bool
		want        float64
	}{
		{"short text, no context", "ok", false, 0.3},
		{"short text, with context", "ok", true, 0.7},
		{"good length, with context", strings.Repeat("palabra ", 10), true, 0.9},
		{"structured, good length, context", structured, true, 1.0},
		{"structured, good length, no context", structured, false, 0.6},
	}
	for _, tc := range cases {
		if got := DeriveConfidence(tc.text, tc.withContext); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: confidence = %.2f, want %.2f", tc.name, got, tc.want)
		}
	}
}

func TestDeriveConfidenceNeverExceedsOne(t *testing.T) {
	text := "requisitos pasos procedimiento contacto " + strings.Repeat("x", 100)
	if got := DeriveConfidence(text, true); got > 1.0 {
		t.Errorf("confidence = %.2f, want <= 1.0", got)
	}
}

func TestDeriveConfidenceLengthBounds(t *testing.T) {
	long := strings.Repeat("a", 900)
	if got := DeriveConfidence(long, false); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("overlong text confidence = %.2f, want 0.3 (no length bonus)", got)
	}
}
