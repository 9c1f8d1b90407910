// Package response selects the best answer for a query by trying a
// prioritized chain of strategies: primary generation, an alternative
// generation over a narrower context, a fallback built from retrieved
// context and finally a query-type template. Generation failure never
// propagates; the chain always ends in a candidate.
package response

import (
	"context"
	"fmt"
	"strings"

	"campus-assistant-be/pkg/pipeline/analysis"
)

type Strategy string

const (
	StrategyGenerated       Strategy = "ai_generated"
	StrategyAlternative     Strategy = "ai_generated_alternative"
	StrategyFallbackContext Strategy = "fallback_with_context"
	StrategyTemplate        Strategy = "template_response"
)

// Candidate is a produced answer plus the confidence and provenance
// the downstream validator and escalation engine need.
type Candidate struct {
	Text       string
	ModelTag   string
	Confidence float64
	Strategy   Strategy
}

// Generator is the external text generation collaborator.
type Generator interface {
	IsAvailable(ctx context.Context) bool
	Generate(ctx context.Context, query string, contextItems []string, userType, department string) (text string, confidence float64, modelTag string, err error)
}

// CategoryContextFunc fetches a narrower, category-specific context
// set for the alternative generation attempt.
type CategoryContextFunc func(ctx context.Context, category, userType string) ([]string, error)

const (
	// retryConfidence is the bound under which a second, narrower
	// generation attempt is worth the extra call.
	retryConfidence = 0.6

	fallbackConfidence = 0.6

	contextExcerptLength = 250
)

var templateConfidenceByType = map[analysis.QueryType]float64{
	analysis.TypeTramiteEspecifico:  0.9,
	analysis.TypeSoporteTecnico:     0.9,
	analysis.TypeQuejaProblema:      0.9,
	analysis.TypeInformacionCarrera: 0.8,
	analysis.TypeServicios:          0.8,
	analysis.TypeSaludo:             0.8,
	analysis.TypeConsultaGeneral:    0.7,
}

var templateTextByType = map[analysis.QueryType]string{
	analysis.TypeTramiteEspecifico:  "🎓 Hola, soy Ociel.\n\nPara trámites escolares como inscripciones, titulación, certificados y constancias, la Dirección General de Administración Escolar es la instancia oficial.\n\n📞 Contacto: 311-211-8800 ext. 8530\n📧 Correo: contacto@uan.edu.mx\n\n¿Sobre qué trámite específico necesitas información?",
	analysis.TypeSoporteTecnico:     "💻 Hola, soy Ociel.\n\nPara problemas con el sistema, la plataforma, tu correo institucional o tu contraseña, la Dirección General de Sistemas puede apoyarte.\n\n📞 Contacto: 311-211-8800 ext. 8540\n\nDescríbeme el problema y te oriento con el siguiente paso.",
	analysis.TypeQuejaProblema:      "🏛️ Hola, soy Ociel.\n\nLamento el inconveniente. Para quejas y reportes formales, la Secretaría General da seguimiento a cada caso.\n\n📞 Contacto: 311-211-8800\n📧 Correo: contacto@uan.edu.mx\n\nSi me compartes más detalles, puedo canalizar tu caso con el área correcta.",
	analysis.TypeInformacionCarrera: "🎓 Hola, soy Ociel.\n\nPuedo orientarte sobre la oferta de carreras, licenciaturas y programas de la UAN.\n\n🌐 Portal oficial: https://www.uan.edu.mx\n📞 Información general: 311-211-8800\n\n¿Qué programa te interesa?",
	analysis.TypeServicios:          "📍 Hola, soy Ociel.\n\nLa UAN cuenta con biblioteca, laboratorios, cafetería y transporte universitario, entre otros servicios.\n\n📞 Biblioteca: 311-211-8800 ext. 8600\n\n¿Sobre qué servicio necesitas información?",
	analysis.TypeSaludo:             "👋 ¡Hola! Soy Ociel, el asistente de la Universidad Autónoma de Nayarit.\n\nPuedo ayudarte con trámites, información de carreras, servicios universitarios y soporte técnico.\n\n¿En qué puedo apoyarte hoy? 🐾",
	analysis.TypeConsultaGeneral:    "👋 Hola, soy Ociel.\n\nEstoy configurado para proporcionarte información específica de los servicios registrados en nuestro sistema de gestión institucional.\n\n🔍 **Puedo ayudarte con:**\n• Información sobre servicios específicos registrados\n• Procedimientos detallados de trámites\n• Contactos oficiales de departamentos\n\n¿Sobre qué servicio específico necesitas información?",
}

type Selector struct {
	generator       Generator
	categoryContext CategoryContextFunc
}

func NewSelector(generator Generator, categoryContext CategoryContextFunc) *Selector {
	return &Selector{generator: generator, categoryContext: categoryContext}
}

// Respond walks the strategy chain and returns the winning candidate.
// It never returns an error: every failure path lands on the fallback
// or template strategies.
func (s *Selector) Respond(ctx context.Context, query, userType, department string, contextItems []string, a analysis.Analysis) Candidate {
	if s.generator == nil || !s.generator.IsAvailable(ctx) {
		return s.fallback(contextItems, a)
	}

	text, confidence, modelTag, err := s.generator.Generate(ctx, query, contextItems, userType, department)
	if err != nil {
		return s.fallback(contextItems, a)
	}

	primary := Candidate{Text: text, ModelTag: modelTag, Confidence: confidence, Strategy: StrategyGenerated}
	if primary.Confidence >= retryConfidence {
		return primary
	}

	if alt, ok := s.tryAlternative(ctx, query, userType, a); ok && alt.Confidence > primary.Confidence {
		return alt
	}
	return primary
}

// tryAlternative regenerates over a category-specific context. When
// there is no narrower context to regenerate over, the query-type
// template stands in as the alternative, so a weak generation can
// still lose to a canned answer.
func (s *Selector) tryAlternative(ctx context.Context, query, userType string, a analysis.Analysis) (Candidate, bool) {
	if s.categoryContext == nil {
		return Candidate{}, false
	}

	narrow, err := s.categoryContext(ctx, string(a.QueryType), userType)
	if err != nil || len(narrow) == 0 {
		return Template(a.QueryType), true
	}

	text, confidence, modelTag, err := s.generator.Generate(ctx, query, narrow, userType, "")
	if err != nil {
		return Candidate{}, false
	}
	return Candidate{Text: text, ModelTag: modelTag, Confidence: confidence, Strategy: StrategyAlternative}, true
}

func (s *Selector) fallback(contextItems []string, a analysis.Analysis) Candidate {
	if len(contextItems) > 0 {
		return Candidate{
			Text:       contextFallbackText(contextItems[0]),
			ModelTag:   string(StrategyFallbackContext),
			Confidence: fallbackConfidence,
			Strategy:   StrategyFallbackContext,
		}
	}
	return Template(a.QueryType)
}

// Template returns the canned answer for a query type. Unknown types
// get the general template.
func Template(queryType analysis.QueryType) Candidate {
	text, ok := templateTextByType[queryType]
	if !ok {
		text = templateTextByType[analysis.TypeConsultaGeneral]
	}
	confidence, ok := templateConfidenceByType[queryType]
	if !ok {
		confidence = templateConfidenceByType[analysis.TypeConsultaGeneral]
	}
	return Candidate{
		Text:       text,
		ModelTag:   string(StrategyTemplate),
		Confidence: confidence,
		Strategy:   StrategyTemplate,
	}
}

func contextFallbackText(item string) string {
	excerpt := strings.TrimSpace(item)
	if runes := []rune(excerpt); len(runes) > contextExcerptLength {
		excerpt = strings.TrimSpace(string(runes[:contextExcerptLength])) + "..."
	}
	return fmt.Sprintf("¡Hola! 🐯 Encontré información sobre tu consulta. %s ¿Te gustaría que profundice en algún aspecto específico? Estoy aquí para apoyarte 🐾", excerpt)
}
