package dto

import (
	"campus-assistant-be/pkg/pipeline/escalation"
	"campus-assistant-be/pkg/pipeline/suggest"
)

type ProcessRequest struct {
	Message           string `json:"message" validate:"required,min=3,max=1000"`
	UserType          string `json:"user_type" validate:"omitempty,oneof=student employee public"`
	Department        string `json:"department,omitempty"`
	SessionId         string `json:"session_id,omitempty"`
	ContextPreference string `json:"context_preference,omitempty" validate:"omitempty,oneof=concise standard detailed"`
	// ClientIP keys the per-caller rate window. The transport layer
	// fills it in; the console runner uses a local placeholder.
	ClientIP string `json:"-"`
}

type ProcessResponse struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
	ModelTag   string  `json:"model,omitempty"`
	Strategy   string  `json:"strategy"`
	SessionId  string  `json:"session_id"`

	Quality    QualityDTO    `json:"quality"`
	Escalation EscalationDTO `json:"escalation"`

	RelatedTopics    []suggest.RelatedTopic `json:"related_topics"`
	SuggestedActions []suggest.Action       `json:"suggested_actions"`
	Contact          ContactDTO             `json:"contact_info"`

	ResponseTimeMs int64 `json:"response_time_ms"`

	// A rejected admission is a decision, not an error: the response
	// still carries a structured result plus a retry hint.
	RateLimited       bool  `json:"rate_limited,omitempty"`
	RetryAfterSeconds int64 `json:"retry_after_seconds,omitempty"`
}

type QualityDTO struct {
	Completeness    float64         `json:"completeness_score"`
	Accuracy        float64         `json:"accuracy_score"`
	Helpfulness     float64         `json:"helpfulness_score"`
	Structure       float64         `json:"structure_score"`
	Overall         float64         `json:"overall_confidence"`
	Indicators      map[string]bool `json:"quality_indicators"`
	MissingElements []string        `json:"missing_elements,omitempty"`
}

type EscalationDTO struct {
	Escalate              bool                `json:"escalate"`
	Priority              escalation.Priority `json:"priority,omitempty"`
	Reasons               []string            `json:"reasons,omitempty"`
	RecommendedDepartment string              `json:"recommended_department,omitempty"`
	EstimatedResolution   string              `json:"estimated_resolution,omitempty"`
}

type ContactDTO struct {
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Extension  string `json:"extension,omitempty"`
	Email      string `json:"email,omitempty"`
}

type HealthResponse struct {
	GenerationAvailable bool  `json:"generation_available"`
	KnowledgeItems      int64 `json:"knowledge_items"`
	DatabaseHealthy     bool  `json:"database_healthy"`
}
