package suggest

import (
	"strings"
	"testing"

	"campus-assistant-be/pkg/pipeline/analysis"
)

func TestActionsPerQueryType(t *testing.T) {
	actions := Actions(analysis.TypeSoporteTecnico, analysis.UrgencyLow)
	if len(actions) != 4 {
		t.Fatalf("got %d actions, want 4", len(actions))
	}
	if actions[0].Type != "contact" || actions[0].Priority != "high" {
		t.Errorf("first action = %+v", actions[0])
	}
}

func TestActionsDefaultForUnknownType(t *testing.T) {
	actions := Actions(analysis.TypeSaludo, analysis.UrgencyLow)
	if len(actions) != 3 {
		t.Fatalf("got %d actions, want the 3 defaults", len(actions))
	}
	if actions[2].Type != "chat" {
		t.Errorf("last default action = %+v", actions[2])
	}
}

func TestActionsHighUrgencyPromotesContact(t *testing.T) {
	actions := Actions(analysis.TypeQuejaProblema, analysis.UrgencyHigh)

	for _, a := range actions {
		if a.Type != "contact" {
			continue
		}
		if a.Priority != "high" {
			t.Errorf("contact priority = %s, want high", a.Priority)
		}
		if !strings.HasSuffix(a.Text, " (URGENTE)") {
			t.Errorf("contact text = %q, want URGENTE suffix", a.Text)
		}
	}
}

func TestActionsDoesNotMutateTable(t *testing.T) {
	Actions(analysis.TypeTramiteEspecifico, analysis.UrgencyHigh)

	again := Actions(analysis.TypeTramiteEspecifico, analysis.UrgencyLow)
	if strings.Contains(again[0].Text, "URGENTE") {
		t.Error("urgency suffix leaked into the shared action table")
	}
}

func TestTopics(t *testing.T) {
	topics := Topics(analysis.TypeTramiteEspecifico)
	if len(topics) == 0 || len(topics) > 5 {
		t.Fatalf("got %d topics", len(topics))
	}
	first := topics[0]
	if first.Title != "Solicitud de Constancias Académicas" {
		t.Errorf("first topic = %+v", first)
	}
	if first.QuerySuggestion != strings.ToLower(first.Title) {
		t.Errorf("query suggestion = %q", first.QuerySuggestion)
	}
}

func TestTopicsDefaultForUnknownType(t *testing.T) {
	topics := Topics(analysis.TypeConsultaGeneral)
	if len(topics) != 4 {
		t.Fatalf("got %d topics, want the 4 defaults", len(topics))
	}
	if topics[0].Title != "Servicios Académicos" {
		t.Errorf("first default topic = %+v", topics[0])
	}
}
