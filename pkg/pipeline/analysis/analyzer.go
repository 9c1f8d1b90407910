// Package analysis classifies raw user queries into sentiment, urgency,
// query type and complexity using ordered keyword rule tables. All
// classifiers are case-insensitive substring matchers with a fixed
// precedence, so the result is deterministic for any input.
package analysis

import "strings"

type Sentiment string

const (
	SentimentFrustrated Sentiment = "frustrated"
	SentimentFormal     Sentiment = "formal"
	SentimentCasual     Sentiment = "casual"
	SentimentNeutral    Sentiment = "neutral"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

type QueryType string

const (
	TypeTramiteEspecifico  QueryType = "tramite_especifico"
	TypeInformacionCarrera QueryType = "informacion_carrera"
	TypeSoporteTecnico     QueryType = "soporte_tecnico"
	TypeServicios          QueryType = "servicios"
	TypeQuejaProblema      QueryType = "queja_problema"
	TypeSaludo             QueryType = "saludo"
	TypeConsultaGeneral    QueryType = "consulta_general"
)

type Complexity string

const (
	ComplexityHigh   Complexity = "high"
	ComplexityMedium Complexity = "medium"
	ComplexityLow    Complexity = "low"
)

// Analysis is the fully populated classification of one query. It is
// computed once per request and read-only downstream.
type Analysis struct {
	Sentiment  Sentiment
	Urgency    Urgency
	QueryType  QueryType
	Complexity Complexity

	RequiresEmpathy          bool
	RequiresDetailedResponse bool
}

// sentimentRule / urgencyRule / typeRule keep precedence explicit: the
// tables are evaluated top to bottom and the first match wins.
type sentimentRule struct {
	outcome  Sentiment
	keywords []string
}

type urgencyRule struct {
	outcome  Urgency
	keywords []string
}

type typeRule struct {
	outcome  QueryType
	keywords []string
}

var sentimentRules = []sentimentRule{
	{SentimentFrustrated, []string{"problema", "error", "falla", "no funciona", "molesto", "enojado", "urgente", "ayuda por favor"}},
	{SentimentFormal, []string{"solicito", "requiero", "quisiera", "podría", "información sobre"}},
	{SentimentCasual, []string{"hola", "qué tal", "buenas", "saludos"}},
}

var urgencyRules = []urgencyRule{
	{UrgencyHigh, []string{"urgente", "inmediato", "ya", "ahora", "rápido", "emergency", "emergencia"}},
	{UrgencyMedium, []string{"pronto", "cuanto antes", "necesito", "importante"}},
}

var typeRules = []typeRule{
	{TypeTramiteEspecifico, []string{"inscripción", "titulación", "certificado", "constancia", "revalidación"}},
	{TypeInformacionCarrera, []string{"carrera", "licenciatura", "programa", "estudios"}},
	{TypeSoporteTecnico, []string{"sistema", "plataforma", "correo", "contraseña", "acceso"}},
	{TypeServicios, []string{"biblioteca", "laboratorio", "cafetería", "transporte"}},
	{TypeQuejaProblema, []string{"problema", "queja", "reclamo", "error", "falla"}},
	{TypeSaludo, []string{"hola", "buenos días", "buenas tardes", "qué tal"}},
}

var complexityKeywords = []string{"procedimiento", "requisitos", "documentación", "proceso", "normativa"}

// Complexity thresholds over word count, question marks and complexity
// keyword hits.
const (
	highWordCount   = 30
	mediumWordCount = 15
	highQuestions   = 2 // more than this many '?' is high
)

// Analyze classifies a query. It is total: every input yields a fully
// populated Analysis and there is no error path.
func Analyze(message string) Analysis {
	lower := strings.ToLower(message)

	a := Analysis{
		Sentiment:  classifySentiment(lower),
		Urgency:    classifyUrgency(lower),
		QueryType:  classifyType(lower),
		Complexity: estimateComplexity(message, lower),
	}

	a.RequiresEmpathy = a.Sentiment == SentimentFrustrated || a.Urgency == UrgencyHigh
	a.RequiresDetailedResponse = a.Complexity == ComplexityHigh || a.QueryType == TypeTramiteEspecifico

	return a
}

func classifySentiment(lower string) Sentiment {
	for _, rule := range sentimentRules {
		if matchesAny(lower, rule.keywords) {
			return rule.outcome
		}
	}
	return SentimentNeutral
}

func classifyUrgency(lower string) Urgency {
	for _, rule := range urgencyRules {
		if matchesAny(lower, rule.keywords) {
			return rule.outcome
		}
	}
	return UrgencyLow
}

func classifyType(lower string) QueryType {
	for _, rule := range typeRules {
		if matchesAny(lower, rule.keywords) {
			return rule.outcome
		}
	}
	return TypeConsultaGeneral
}

func estimateComplexity(message, lower string) Complexity {
	wordCount := len(strings.Fields(message))
	questions := strings.Count(message, "?")

	keywordHits := 0
	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
		}
	}

	switch {
	case wordCount > highWordCount || questions > highQuestions || keywordHits > 1:
		return ComplexityHigh
	case wordCount > mediumWordCount || questions >= 1 || keywordHits == 1:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
