// Package suggest produces follow-up material for an answered query:
// suggested next actions and related topics keyed by query type.
package suggest

import (
	"strings"

	"campus-assistant-be/pkg/pipeline/analysis"
)

type Action struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

type RelatedTopic struct {
	Title           string `json:"title"`
	QuerySuggestion string `json:"query_suggestion"`
	Relevance       string `json:"relevance"`
}

const maxRelatedTopics = 5

var actionsByType = map[analysis.QueryType][]Action{
	analysis.TypeTramiteEspecifico: {
		{Type: "contact", Text: "Contactar a SA para información específica", Priority: "high"},
		{Type: "document", Text: "Preparar documentación requerida", Priority: "medium"},
		{Type: "visit", Text: "Agendar cita presencial si es necesario", Priority: "medium"},
		{Type: "web", Text: "Consultar portal de servicios estudiantiles", Priority: "low"},
	},
	analysis.TypeInformacionCarrera: {
		{Type: "web", Text: "Explorar oferta educativa completa en el sitio web", Priority: "high"},
		{Type: "visit", Text: "Visitar las instalaciones de la carrera de interés", Priority: "high"},
		{Type: "contact", Text: "Solicitar orientación vocacional", Priority: "medium"},
		{Type: "event", Text: "Asistir a eventos de difusión académica", Priority: "low"},
	},
	analysis.TypeSoporteTecnico: {
		{Type: "contact", Text: "Contactar a DGS para soporte especializado", Priority: "high"},
		{Type: "self_help", Text: "Verificar credenciales de acceso", Priority: "high"},
		{Type: "document", Text: "Consultar manuales de usuario disponibles", Priority: "medium"},
		{Type: "ticket", Text: "Generar ticket de soporte si el problema persiste", Priority: "low"},
	},
	analysis.TypeQuejaProblema: {
		{Type: "escalation", Text: "Escalación inmediata a autoridades competentes", Priority: "high"},
		{Type: "document", Text: "Documentar detalladamente la situación", Priority: "high"},
		{Type: "contact", Text: "Contactar a Secretaría General para seguimiento", Priority: "medium"},
		{Type: "rights", Text: "Conocer derechos y procedimientos de apelación", Priority: "medium"},
	},
}

var defaultActions = []Action{
	{Type: "contact", Text: "Contactar al departamento correspondiente", Priority: "medium"},
	{Type: "web", Text: "Consultar información en el portal oficial", Priority: "medium"},
	{Type: "chat", Text: "Hacer una pregunta más específica", Priority: "low"},
}

var topicsByType = map[analysis.QueryType][]string{
	analysis.TypeTramiteEspecifico: {
		"Solicitud de Constancias Académicas",
		"Solicitud de Cuenta de Correo Institucional",
		"Registro al EXANI III",
		"Digitalización de Documentos",
	},
	analysis.TypeInformacionCarrera: {
		"Creación de Programas Académicos",
		"Registro de Programa de Posgrado",
		"Asesoría para Evaluación de Programas",
		"Becas SECIHTI",
	},
	analysis.TypeSoporteTecnico: {
		"Activación de Correo Institucional",
		"Solicitud de Microsoft 365",
		"Solicitud de Licencia Canva Pro",
		"Orden de Servicio Técnico",
	},
}

var defaultTopics = []string{
	"Servicios Académicos",
	"Servicios Tecnológicos",
	"Servicios Administrativos",
	"Trámites Institucionales",
}

// Actions returns the suggested next steps for a query type. High
// urgency promotes every contact action to high priority and marks it
// urgent.
func Actions(queryType analysis.QueryType, urgency analysis.Urgency) []Action {
	base, ok := actionsByType[queryType]
	if !ok {
		base = defaultActions
	}

	actions := make([]Action, len(base))
	copy(actions, base)

	if urgency == analysis.UrgencyHigh {
		for i := range actions {
			if actions[i].Type == "contact" {
				actions[i].Priority = "high"
				actions[i].Text += " (URGENTE)"
			}
		}
	}

	return actions
}

// Topics returns up to five related topics for a query type, each with
// a ready-to-send query suggestion.
func Topics(queryType analysis.QueryType) []RelatedTopic {
	titles, ok := topicsByType[queryType]
	if !ok {
		titles = defaultTopics
	}

	topics := make([]RelatedTopic, 0, len(titles))
	for _, title := range titles {
		topics = append(topics, RelatedTopic{
			Title:           title,
			QuerySuggestion: strings.ToLower(title),
			Relevance:       "high",
		})
		if len(topics) == maxRelatedTopics {
			break
		}
	}

	return topics
}
