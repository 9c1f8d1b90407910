package search

import "testing"

func TestRelevanceIdentical(t *testing.T) {
	inputs := []string{
		"inscripción",
		"horario de la biblioteca central",
		"¿cómo tramito mi constancia de estudios?",
	}
	for _, in := range inputs {
		if got := Relevance(in, in); got != 1.0 {
			t.Errorf("Relevance(%q, %q) = %v, want 1.0", in, in, got)
		}
	}
}

func TestRelevanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"horario biblioteca", "biblioteca central horario de servicio"},
		{"correo institucional", "activación de correo"},
		{"beca", "requisitos para beca de transporte"},
	}
	for _, p := range pairs {
		ab := Relevance(p[0], p[1])
		ba := Relevance(p[1], p[0])
		if ab != ba {
			t.Errorf("Relevance(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestRelevanceEmptyUnion(t *testing.T) {
	if got := Relevance("", ""); got != 0.0 {
		t.Errorf("Relevance of two empty strings = %v, want 0.0", got)
	}
	if got := Relevance("   ", "\t\n"); got != 0.0 {
		t.Errorf("Relevance of whitespace-only strings = %v, want 0.0", got)
	}
}

func TestRelevanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"", "algo"},
		{"hola", "adiós"},
		{"tramite de inscripcion en linea", "inscripcion"},
		{"a b c d", "c d e f"},
	}
	for _, p := range pairs {
		got := Relevance(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Relevance(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestRelevanceCaseInsensitive(t *testing.T) {
	if got := Relevance("Biblioteca Central", "biblioteca central"); got != 1.0 {
		t.Errorf("case-insensitive Relevance = %v, want 1.0", got)
	}
}

func TestRelevanceKnownValue(t *testing.T) {
	// tokens {a,b,c} vs {b,c,d}: intersection 2, union 4
	if got := Relevance("a b c", "b c d"); got != 0.5 {
		t.Errorf("Relevance(\"a b c\", \"b c d\") = %v, want 0.5", got)
	}
}
