// Package escalation decides whether a query needs a human follow-up,
// how urgent that follow-up is and which department should take it.
package escalation

import (
	"strings"

	"campus-assistant-be/pkg/pipeline/analysis"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Reason codes carried on an escalation decision. They are stable
// identifiers consumed by alert handlers, not display strings.
const (
	ReasonLowConfidence    = "low_confidence"
	ReasonUserFrustrated   = "user_frustrated"
	ReasonHighUrgency      = "high_urgency"
	ReasonComplaint        = "complaint"
	ReasonComplexQuery     = "complex_query"
	ReasonSpecializedTopic = "specialized_topic"
)

// Department identifiers for routed escalations.
const (
	DepartmentSA                = "SA"
	DepartmentDGS               = "DGS"
	DepartmentSecretariaGeneral = "SECRETARIA_GENERAL"
	DepartmentGeneral           = "GENERAL"
)

const (
	DefaultLowConfidenceThreshold = 0.6

	// complexQueryConfidence is the bound under which a high-complexity
	// query escalates even when the low-confidence rule did not fire.
	complexQueryConfidence = 0.8
)

// Decision is the outcome of one escalation evaluation. Reasons keeps
// the order in which the rules fired.
type Decision struct {
	Escalate              bool
	Reasons               []string
	Priority              Priority
	RecommendedDepartment string
	EstimatedResolution   string
}

type Config struct {
	// LowConfidenceThreshold is the confidence below which a response
	// alone justifies escalation.
	LowConfidenceThreshold float64
}

// Topics that require specialist review regardless of how confident
// the generated answer is.
var specializedKeywords = []string{"revalidación", "revalidacion", "equivalencia", "traslado", "beca"}

var departmentByType = map[analysis.QueryType]string{
	analysis.TypeTramiteEspecifico:  DepartmentSA,
	analysis.TypeSoporteTecnico:     DepartmentDGS,
	analysis.TypeQuejaProblema:      DepartmentSecretariaGeneral,
	analysis.TypeInformacionCarrera: DepartmentSA,
	analysis.TypeServicios:          DepartmentGeneral,
}

var resolutionByPriority = map[Priority]string{
	PriorityHigh:   "2-4 horas",
	PriorityMedium: "1-2 días hábiles",
	PriorityLow:    "3-5 días hábiles",
}

type Engine struct {
	config Config
}

func NewEngine(config Config) *Engine {
	if config.LowConfidenceThreshold == 0 {
		config.LowConfidenceThreshold = DefaultLowConfidenceThreshold
	}
	return &Engine{config: config}
}

// Evaluate applies the escalation rules to one query. Priority only
// ever moves upward as rules fire, so rule order cannot lower it.
func (e *Engine) Evaluate(message string, a analysis.Analysis, confidence float64) Decision {
	lower := strings.ToLower(message)

	d := Decision{Priority: PriorityLow}

	if confidence < e.config.LowConfidenceThreshold {
		d.addReason(ReasonLowConfidence, PriorityMedium)
	}
	if a.Sentiment == analysis.SentimentFrustrated {
		d.addReason(ReasonUserFrustrated, PriorityHigh)
	}
	if a.Urgency == analysis.UrgencyHigh {
		d.addReason(ReasonHighUrgency, PriorityHigh)
	}
	if a.QueryType == analysis.TypeQuejaProblema {
		d.addReason(ReasonComplaint, PriorityHigh)
	}
	if a.Complexity == analysis.ComplexityHigh && confidence < complexQueryConfidence {
		d.addReason(ReasonComplexQuery, PriorityMedium)
	}
	// A specialized topic flags the query for review but carries no
	// urgency of its own.
	for _, kw := range specializedKeywords {
		if strings.Contains(lower, kw) {
			d.addReason(ReasonSpecializedTopic, PriorityLow)
			break
		}
	}

	if d.Escalate {
		d.RecommendedDepartment = recommendDepartment(a.QueryType)
		d.EstimatedResolution = resolutionByPriority[d.Priority]
	}

	return d
}

func (d *Decision) addReason(reason string, priority Priority) {
	d.Escalate = true
	d.Reasons = append(d.Reasons, reason)
	if rank(priority) > rank(d.Priority) {
		d.Priority = priority
	}
}

// DepartmentFor returns the department that handles queries of the
// given type, or empty when no department owns it.
func DepartmentFor(queryType analysis.QueryType) string {
	return recommendDepartment(queryType)
}

func recommendDepartment(queryType analysis.QueryType) string {
	return departmentByType[queryType]
}

func rank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}
