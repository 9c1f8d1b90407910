package analysis

import (
	"strings"
	"testing"
)

func TestAnalyzeFrustratedUrgentComplaint(t *testing.T) {
	a := Analyze("¡Tengo un problema urgente, necesito ayuda ya!")

	if a.Sentiment != SentimentFrustrated {
		t.Errorf("sentiment = %s, want frustrated", a.Sentiment)
	}
	if a.Urgency != UrgencyHigh {
		t.Errorf("urgency = %s, want high", a.Urgency)
	}
	if a.QueryType != TypeQuejaProblema {
		t.Errorf("query type = %s, want queja_problema", a.QueryType)
	}
	if !a.RequiresEmpathy {
		t.Error("expected RequiresEmpathy for frustrated high-urgency query")
	}
}

func TestAnalyzeCasualGreeting(t *testing.T) {
	a := Analyze("Hola, ¿qué tal?")

	if a.Sentiment != SentimentCasual {
		t.Errorf("sentiment = %s, want casual", a.Sentiment)
	}
	if a.Urgency != UrgencyLow {
		t.Errorf("urgency = %s, want low", a.Urgency)
	}
	if a.QueryType != TypeSaludo {
		t.Errorf("query type = %s, want saludo", a.QueryType)
	}
	if a.Complexity != ComplexityMedium {
		t.Errorf("complexity = %s, want medium (has a question mark)", a.Complexity)
	}
	if a.RequiresEmpathy || a.RequiresDetailedResponse {
		t.Error("greeting should not require empathy or a detailed response")
	}
}

func TestAnalyzeSentimentPrecedence(t *testing.T) {
	// "problema" (frustrated) outranks "hola" (casual) regardless of
	// position in the message.
	a := Analyze("hola, tengo un problema")
	if a.Sentiment != SentimentFrustrated {
		t.Errorf("sentiment = %s, want frustrated to win over casual", a.Sentiment)
	}
}

func TestAnalyzeQueryTypes(t *testing.T) {
	cases := []struct {
		message string
		want    QueryType
	}{
		{"¿Cuáles son los requisitos de titulación?", TypeTramiteEspecifico},
		{"Información sobre la carrera de derecho", TypeInformacionCarrera},
		{"No puedo entrar a la plataforma", TypeSoporteTecnico},
		{"¿A qué hora abre la biblioteca?", TypeServicios},
		{"Quiero presentar una queja", TypeQuejaProblema},
		{"Buenos días", TypeSaludo},
		{"Dame datos del calendario", TypeConsultaGeneral},
	}
	for _, tc := range cases {
		if got := Analyze(tc.message).QueryType; got != tc.want {
			t.Errorf("Analyze(%q).QueryType = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestAnalyzeTypePrecedence(t *testing.T) {
	// tramite_especifico is checked before queja_problema.
	a := Analyze("Tengo un problema con mi certificado")
	if a.QueryType != TypeTramiteEspecifico {
		t.Errorf("query type = %s, want tramite_especifico", a.QueryType)
	}
}

func TestAnalyzeUrgencyLevels(t *testing.T) {
	cases := []struct {
		message string
		want    Urgency
	}{
		{"Es urgente, por favor", UrgencyHigh},
		{"Necesito la constancia pronto", UrgencyMedium},
		{"Me gustaría saber los horarios", UrgencyLow},
	}
	for _, tc := range cases {
		if got := Analyze(tc.message).Urgency; got != tc.want {
			t.Errorf("Analyze(%q).Urgency = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestAnalyzeComplexity(t *testing.T) {
	long := strings.Repeat("palabra ", 31) + "final"
	multiQuestion := "¿Dónde? ¿Cuándo? ¿Cómo lo hago?"

	cases := []struct {
		name    string
		message string
		want    Complexity
	}{
		{"long message", long, ComplexityHigh},
		{"three questions", multiQuestion, ComplexityHigh},
		{"two complexity keywords", "requisitos y documentación de la beca", ComplexityHigh},
		{"single question", "¿Dónde queda la rectoría?", ComplexityMedium},
		{"single keyword", "el procedimiento de inscripción", ComplexityMedium},
		{"short statement", "gracias por todo", ComplexityLow},
	}
	for _, tc := range cases {
		if got := Analyze(tc.message).Complexity; got != tc.want {
			t.Errorf("%s: complexity = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAnalyzeDetailedResponseFlag(t *testing.T) {
	a := Analyze("Quiero iniciar mi titulación")
	if !a.RequiresDetailedResponse {
		t.Error("tramite_especifico should require a detailed response")
	}

	a = Analyze(strings.Repeat("palabra ", 31) + "final")
	if !a.RequiresDetailedResponse {
		t.Error("high complexity should require a detailed response")
	}
}
