// Package generation defines the contract for the external text
// generation collaborator and the shared confidence heuristic applied
// to its output.
package generation

import (
	"context"
	"strings"
)

// Result is one generated answer with its derived confidence.
type Result struct {
	Text       string
	Confidence float64
	ModelTag   string
}

// Provider is the generation backend contract.
type Provider interface {
	// IsAvailable reports whether the backend can serve a request
	// right now. Callers treat false as "use the fallback ladder".
	IsAvailable(ctx context.Context) bool

	Generate(ctx context.Context, query string, contextItems []string, userType, department string) (Result, error)
}

// Confidence heuristic weights.
const (
	confidenceSuccess    = 0.3
	confidenceContext    = 0.4
	confidenceGoodLength = 0.2
	confidenceStructured = 0.1

	goodLengthMin = 50
	goodLengthMax = 800
)

var structureMarkers = []string{"requisitos", "pasos", "procedimiento", "contacto"}

// DeriveConfidence scores a successfully generated text. Grounding
// context weighs most, then length, then structural markers.
func DeriveConfidence(text string, contextProvided bool) float64 {
	score := confidenceSuccess

	if contextProvided {
		score += confidenceContext
	}
	if n := len(text); n > goodLengthMin && n < goodLengthMax {
		score += confidenceGoodLength
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, marker := range structureMarkers {
		if strings.Contains(lower, marker) {
			hits++
		}
	}
	if hits >= 2 {
		score += confidenceStructured
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
