package response

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campus-assistant-be/pkg/pipeline/analysis"
)

type stubGenerator struct {
	available bool
	// results are consumed in order, one per Generate call.
	results []stubResult
	calls   int
	// lastContext records the context passed to the most recent call.
	lastContext []string
}

type stubResult struct {
	text       string
	confidence float64
	err        error
}

func (g *stubGenerator) IsAvailable(context.Context) bool { return g.available }

func (g *stubGenerator) Generate(_ context.Context, _ string, contextItems []string, _, _ string) (string, float64, string, error) {
	g.lastContext = contextItems
	if g.calls >= len(g.results) {
		return "", 0, "", errors.New("no stubbed result")
	}
	r := g.results[g.calls]
	g.calls++
	return r.text, r.confidence, "stub-model", r.err
}

func TestRespondUsesConfidentPrimaryGeneration(t *testing.T) {
	gen := &stubGenerator{available: true, results: []stubResult{{text: "respuesta", confidence: 0.85}}}
	s := NewSelector(gen, nil)

	c := s.Respond(context.Background(), "consulta", "student", "", []string{"ctx"}, analysis.Analyze("consulta"))

	if c.Strategy != StrategyGenerated {
		t.Errorf("strategy = %s, want ai_generated", c.Strategy)
	}
	if c.Confidence != 0.85 || c.Text != "respuesta" {
		t.Errorf("candidate = %+v", c)
	}
	if gen.calls != 1 {
		t.Errorf("generate calls = %d, want 1 (no retry above threshold)", gen.calls)
	}
}

func TestRespondRetriesWithCategoryContextOnLowConfidence(t *testing.T) {
	gen := &stubGenerator{available: true, results: []stubResult{
		{text: "débil", confidence: 0.4},
		{text: "mejor", confidence: 0.7},
	}}
	categoryCtx := func(_ context.Context, category, _ string) ([]string, error) {
		if category != string(analysis.TypeServicios) {
			return nil, errors.New("unexpected category " + category)
		}
		return []string{"horarios de biblioteca"}, nil
	}
	s := NewSelector(gen, categoryCtx)

	c := s.Respond(context.Background(), "biblioteca", "student", "", nil, analysis.Analyze("¿A qué hora abre la biblioteca?"))

	if c.Strategy != StrategyAlternative {
		t.Errorf("strategy = %s, want ai_generated_alternative", c.Strategy)
	}
	if c.Text != "mejor" || c.Confidence != 0.7 {
		t.Errorf("candidate = %+v, want the higher-confidence retry", c)
	}
	if len(gen.lastContext) != 1 || gen.lastContext[0] != "horarios de biblioteca" {
		t.Errorf("retry context = %v, want the category context", gen.lastContext)
	}
}

func TestRespondKeepsPrimaryWhenRetryIsWorse(t *testing.T) {
	gen := &stubGenerator{available: true, results: []stubResult{
		{text: "primera", confidence: 0.5},
		{text: "peor", confidence: 0.3},
	}}
	categoryCtx := func(context.Context, string, string) ([]string, error) {
		return []string{"algo"}, nil
	}
	s := NewSelector(gen, categoryCtx)

	c := s.Respond(context.Background(), "consulta", "public", "", nil, analysis.Analyze("consulta"))

	if c.Text != "primera" || c.Strategy != StrategyGenerated {
		t.Errorf("candidate = %+v, want the primary kept", c)
	}
}

func TestRespondWeakPrimaryLosesToTemplateWithoutCategoryContext(t *testing.T) {
	gen := &stubGenerator{available: true, results: []stubResult{{text: "débil", confidence: 0.4}}}
	categoryCtx := func(context.Context, string, string) ([]string, error) {
		return nil, nil
	}
	s := NewSelector(gen, categoryCtx)

	c := s.Respond(context.Background(), "consulta", "public", "", nil, analysis.Analyze("consulta"))

	if c.Strategy != StrategyTemplate {
		t.Errorf("strategy = %s, want template_response", c.Strategy)
	}
	if c.Confidence != 0.7 {
		t.Errorf("confidence = %.2f, want the general template", c.Confidence)
	}
	if gen.calls != 1 {
		t.Errorf("generate calls = %d, want 1 (no retry without context)", gen.calls)
	}
}

func TestRespondFallsBackWithContextWhenUnavailable(t *testing.T) {
	s := NewSelector(&stubGenerator{available: false}, nil)

	item := "La biblioteca magna abre de 8:00 a 20:00 de lunes a viernes."
	c := s.Respond(context.Background(), "biblioteca", "student", "", []string{item}, analysis.Analyze("biblioteca"))

	if c.Strategy != StrategyFallbackContext {
		t.Errorf("strategy = %s, want fallback_with_context", c.Strategy)
	}
	if c.Confidence != fallbackConfidence {
		t.Errorf("confidence = %.2f, want %.2f", c.Confidence, fallbackConfidence)
	}
	if !strings.Contains(c.Text, "biblioteca magna") {
		t.Errorf("fallback text should embed the context excerpt, got %q", c.Text)
	}
}

func TestRespondFallbackTruncatesLongContext(t *testing.T) {
	s := NewSelector(nil, nil)

	long := strings.Repeat("información ", 60)
	c := s.Respond(context.Background(), "consulta", "public", "", []string{long}, analysis.Analyze("consulta"))

	if !strings.Contains(c.Text, "...") {
		t.Errorf("long context should be truncated with an ellipsis, got %q", c.Text)
	}
}

func TestRespondTemplateWhenNoGeneratorAndNoContext(t *testing.T) {
	s := NewSelector(nil, nil)

	a := analysis.Analyze("Necesito mi certificado de estudios")
	if a.QueryType != analysis.TypeTramiteEspecifico {
		t.Fatalf("fixture query type = %s", a.QueryType)
	}

	c := s.Respond(context.Background(), "certificado", "student", "", nil, a)

	if c.Strategy != StrategyTemplate {
		t.Errorf("strategy = %s, want template_response", c.Strategy)
	}
	if c.Confidence != 0.9 {
		t.Errorf("confidence = %.2f, want the tramite template at 0.9", c.Confidence)
	}
}

func TestRespondGenerationErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{available: true, results: []stubResult{{err: errors.New("boom")}}}
	s := NewSelector(gen, nil)

	c := s.Respond(context.Background(), "hola", "public", "", nil, analysis.Analyze("hola"))

	if c.Strategy != StrategyTemplate {
		t.Errorf("strategy = %s, want template_response after generation error", c.Strategy)
	}
	if c.Confidence != 0.8 {
		t.Errorf("confidence = %.2f, want the greeting template at 0.8", c.Confidence)
	}
}

func TestTemplateConfidences(t *testing.T) {
	cases := []struct {
		queryType analysis.QueryType
		want      float64
	}{
		{analysis.TypeTramiteEspecifico, 0.9},
		{analysis.TypeSoporteTecnico, 0.9},
		{analysis.TypeQuejaProblema, 0.9},
		{analysis.TypeInformacionCarrera, 0.8},
		{analysis.TypeServicios, 0.8},
		{analysis.TypeSaludo, 0.8},
		{analysis.TypeConsultaGeneral, 0.7},
		{analysis.QueryType("desconocido"), 0.7},
	}
	for _, tc := range cases {
		c := Template(tc.queryType)
		if c.Confidence != tc.want {
			t.Errorf("Template(%s).Confidence = %.2f, want %.2f", tc.queryType, c.Confidence, tc.want)
		}
		if c.Text == "" {
			t.Errorf("Template(%s) has empty text", tc.queryType)
		}
	}
}
