package escalation

import (
	"testing"

	"campus-assistant-be/pkg/pipeline/analysis"
)

func hasReason(d Decision, reason string) bool {
	for _, r := range d.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

func TestEvaluateConfidentNeutralQueryDoesNotEscalate(t *testing.T) {
	e := NewEngine(Config{})

	a := analysis.Analyze("¿Dónde queda la rectoría?")
	d := e.Evaluate("¿Dónde queda la rectoría?", a, 0.9)

	if d.Escalate {
		t.Fatalf("unexpected escalation, reasons: %v", d.Reasons)
	}
	if d.RecommendedDepartment != "" || d.EstimatedResolution != "" {
		t.Error("non-escalated decision should carry no routing fields")
	}
}

func TestEvaluateUrgentComplaintEscalatesHigh(t *testing.T) {
	e := NewEngine(Config{})

	message := "Quiero quejarme de un trámite, es urgente"
	d := e.Evaluate(message, analysis.Analyze(message), 0.5)

	if !d.Escalate {
		t.Fatal("expected escalation")
	}
	for _, reason := range []string{ReasonComplaint, ReasonHighUrgency, ReasonLowConfidence} {
		if !hasReason(d, reason) {
			t.Errorf("reasons %v should include %s", d.Reasons, reason)
		}
	}
	if d.Priority != PriorityHigh {
		t.Errorf("priority = %s, want high", d.Priority)
	}
	if d.RecommendedDepartment != DepartmentSecretariaGeneral {
		t.Errorf("department = %s, want %s", d.RecommendedDepartment, DepartmentSecretariaGeneral)
	}
	if d.EstimatedResolution != "2-4 horas" {
		t.Errorf("resolution = %q, want 2-4 horas", d.EstimatedResolution)
	}
}

func TestEvaluateLowConfidenceAloneEscalatesMedium(t *testing.T) {
	e := NewEngine(Config{})

	message := "Me interesa la carrera de medicina"
	d := e.Evaluate(message, analysis.Analyze(message), 0.4)

	if !d.Escalate {
		t.Fatal("expected escalation on low confidence")
	}
	if d.Priority != PriorityMedium {
		t.Errorf("priority = %s, want medium", d.Priority)
	}
	if d.RecommendedDepartment != DepartmentSA {
		t.Errorf("department = %s, want %s", d.RecommendedDepartment, DepartmentSA)
	}
	if d.EstimatedResolution != "1-2 días hábiles" {
		t.Errorf("resolution = %q", d.EstimatedResolution)
	}
}

func TestEvaluateSpecializedTopicEscalatesDespiteConfidence(t *testing.T) {
	e := NewEngine(Config{})

	message := "Quiero solicitar una beca deportiva"
	d := e.Evaluate(message, analysis.Analyze(message), 0.95)

	if !d.Escalate {
		t.Fatal("specialized topics should escalate even with high confidence")
	}
	if !hasReason(d, ReasonSpecializedTopic) {
		t.Errorf("reasons = %v, want specialized_topic", d.Reasons)
	}
	// The topic alone flags the query without raising its urgency.
	if d.Priority != PriorityLow {
		t.Errorf("priority = %s, want low", d.Priority)
	}
	if d.EstimatedResolution != "3-5 días hábiles" {
		t.Errorf("resolution = %q, want the low bucket", d.EstimatedResolution)
	}
	if d.RecommendedDepartment != "" {
		t.Errorf("department = %q, want none for a general query", d.RecommendedDepartment)
	}
}

func TestEvaluateComplexQueryNeedsLowConfidenceToo(t *testing.T) {
	e := NewEngine(Config{})

	// High complexity via multiple questions, but confident answer.
	message := "¿Dónde? ¿Cuándo? ¿Cómo entrego los papeles del laboratorio?"
	a := analysis.Analyze(message)
	if a.Complexity != analysis.ComplexityHigh {
		t.Fatalf("fixture complexity = %s, want high", a.Complexity)
	}

	d := e.Evaluate(message, a, 0.9)
	if hasReason(d, ReasonComplexQuery) {
		t.Error("complex_query should not fire when confidence is high")
	}

	d = e.Evaluate(message, a, 0.3)
	if !hasReason(d, ReasonComplexQuery) {
		t.Errorf("reasons = %v, want complex_query at low confidence", d.Reasons)
	}
}

func TestEvaluatePriorityNeverDowngrades(t *testing.T) {
	e := NewEngine(Config{})

	// Frustrated (high) plus specialized topic (no priority of its
	// own): priority must stay high regardless of rule order.
	message := "Tengo un problema con mi revalidación"
	d := e.Evaluate(message, analysis.Analyze(message), 0.9)

	if d.Priority != PriorityHigh {
		t.Errorf("priority = %s, want high", d.Priority)
	}
}

func TestNewEngineDefaultThreshold(t *testing.T) {
	e := NewEngine(Config{})
	if e.config.LowConfidenceThreshold != DefaultLowConfidenceThreshold {
		t.Errorf("threshold = %.2f, want %.2f", e.config.LowConfidenceThreshold, DefaultLowConfidenceThreshold)
	}
}
