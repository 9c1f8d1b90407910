package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/constant"
	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/contract"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/generation"
	"campus-assistant-be/pkg/pipeline/analysis"
	"campus-assistant-be/pkg/pipeline/escalation"
	"campus-assistant-be/pkg/pipeline/quality"
	"campus-assistant-be/pkg/pipeline/response"
	"campus-assistant-be/pkg/pipeline/search"
	"campus-assistant-be/pkg/pipeline/suggest"
	"campus-assistant-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IChatService is the query processing pipeline entry point. Process
// always returns a structured result for a valid request; collaborator
// failures degrade the answer, they never surface as errors.
type IChatService interface {
	Process(ctx context.Context, request *dto.ProcessRequest) (*dto.ProcessResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type chatService struct {
	validate     *validator.Validate
	limiter      *ratelimit.Limiter
	knowledge    IKnowledgeService
	departments  contract.DepartmentRepository
	contextCache *memory.ContextCache
	selector     *response.Selector
	generator    generation.Provider
	quality      *quality.Validator
	escalation   *escalation.Engine
	publisher    message.Publisher
	institution  config.InstitutionConfig
	logger       logger.ILogger
}

func NewChatService(
	cfg *config.Config,
	limiter *ratelimit.Limiter,
	knowledge IKnowledgeService,
	departments contract.DepartmentRepository,
	contextCache *memory.ContextCache,
	generator generation.Provider,
	publisher message.Publisher,
	log logger.ILogger,
) IChatService {
	s := &chatService{
		validate:     validator.New(),
		limiter:      limiter,
		knowledge:    knowledge,
		departments:  departments,
		contextCache: contextCache,
		generator:    generator,
		quality: quality.NewValidator(quality.Institution{
			Name:      cfg.Institution.Name,
			ShortName: cfg.Institution.ShortName,
			Domain:    cfg.Institution.Domain,
		}),
		escalation: escalation.NewEngine(escalation.Config{
			LowConfidenceThreshold: cfg.Pipeline.LowConfidenceThreshold,
		}),
		publisher:   publisher,
		institution: cfg.Institution,
		logger:      log,
	}

	var gen response.Generator
	if generator != nil {
		gen = &generatorAdapter{provider: generator}
	}
	s.selector = response.NewSelector(gen, func(ctx context.Context, category, userType string) ([]string, error) {
		if knowledge == nil {
			return nil, nil
		}
		return knowledge.SearchByCategory(ctx, category, userType)
	})

	return s
}

// generatorAdapter flattens generation.Result into the selector's
// return shape.
type generatorAdapter struct {
	provider generation.Provider
}

func (g *generatorAdapter) IsAvailable(ctx context.Context) bool {
	return g.provider.IsAvailable(ctx)
}

func (g *generatorAdapter) Generate(ctx context.Context, query string, contextItems []string, userType, department string) (string, float64, string, error) {
	result, err := g.provider.Generate(ctx, query, contextItems, userType, department)
	if err != nil {
		return "", 0, "", err
	}
	return result.Text, result.Confidence, result.ModelTag, nil
}

func (s *chatService) Process(ctx context.Context, request *dto.ProcessRequest) (*dto.ProcessResponse, error) {
	start := time.Now()

	// Input validation is the one failure rejected before the pipeline.
	// Trimming first keeps whitespace padding from satisfying the
	// length bounds.
	request.Message = strings.TrimSpace(request.Message)
	if err := s.validate.Struct(request); err != nil {
		return nil, err
	}

	if request.SessionId == "" {
		request.SessionId = uuid.NewString()
	}
	if request.UserType == "" {
		request.UserType = constant.UserTypePublic
	}
	if request.ContextPreference == "" {
		request.ContextPreference = constant.ContextPreferenceStandard
	}
	if request.ClientIP == "" {
		request.ClientIP = "local"
	}

	if rejected := s.admit(ctx, request); rejected != nil {
		rejected.ResponseTimeMs = time.Since(start).Milliseconds()
		return rejected, nil
	}

	a := analysis.Analyze(request.Message)

	contextItems := s.gatherContext(ctx, request, a)
	ranked := search.Aggregate(request.Message, contextItems, topKFor(contextItems))
	contents := search.Contents(ranked)

	candidate := s.selector.Respond(ctx, request.Message, request.UserType, request.Department, contents, a)
	report := s.quality.Validate(request.Message, candidate.Text, contents)

	// Escalation judges the weaker of the two confidence signals, so a
	// well-formatted but ungrounded answer still escalates.
	effectiveConfidence := math.Min(candidate.Confidence, report.Overall)
	decision := s.escalation.Evaluate(request.Message, a, effectiveConfidence)

	if decision.Escalate {
		s.publishEscalation(request, decision)
	}

	s.logger.Info("ChatService", "query processed", map[string]interface{}{
		"session_id": request.SessionId,
		"user_type":  request.UserType,
		"query_type": string(a.QueryType),
		"strategy":   string(candidate.Strategy),
		"confidence": candidate.Confidence,
		"escalated":  decision.Escalate,
	})

	return &dto.ProcessResponse{
		Response:   candidate.Text,
		Confidence: candidate.Confidence,
		ModelTag:   candidate.ModelTag,
		Strategy:   string(candidate.Strategy),
		SessionId:  request.SessionId,
		Quality: dto.QualityDTO{
			Completeness:    report.Completeness,
			Accuracy:        report.Accuracy,
			Helpfulness:     report.Helpfulness,
			Structure:       report.Structure,
			Overall:         report.Overall,
			Indicators:      report.Indicators,
			MissingElements: report.MissingElements,
		},
		Escalation: dto.EscalationDTO{
			Escalate:              decision.Escalate,
			Priority:              decision.Priority,
			Reasons:               decision.Reasons,
			RecommendedDepartment: decision.RecommendedDepartment,
			EstimatedResolution:   decision.EstimatedResolution,
		},
		RelatedTopics:    suggest.Topics(a.QueryType),
		SuggestedActions: suggest.Actions(a.QueryType, a.Urgency),
		Contact:          s.resolveContact(ctx, decision, a),
		ResponseTimeMs:   time.Since(start).Milliseconds(),
	}, nil
}

// resolveContact looks up the contact card for the department the
// answer points at. Lookup failures fall back to the institutional
// switchboard so the response always carries a reachable contact.
func (s *chatService) resolveContact(ctx context.Context, decision escalation.Decision, a analysis.Analysis) dto.ContactDTO {
	fallback := dto.ContactDTO{
		Department: escalation.DepartmentGeneral,
		Phone:      s.institution.Phone,
		Email:      s.institution.Email,
	}

	code := decision.RecommendedDepartment
	if code == "" {
		code = escalation.DepartmentFor(a.QueryType)
	}
	if code == "" || s.departments == nil {
		return fallback
	}

	dept, err := s.departments.FindByCode(ctx, code)
	if err != nil {
		s.logger.Warn("ChatService", "department lookup degraded", map[string]interface{}{
			"code":  code,
			"error": err.Error(),
		})
		return fallback
	}
	if dept == nil {
		return fallback
	}

	return dto.ContactDTO{
		Department: dept.Name,
		Phone:      dept.Phone,
		Extension:  dept.Extension,
		Email:      dept.Email,
	}
}

// admit runs the rate limiter. A nil return means the request may
// proceed; otherwise the returned response carries the retry hint.
func (s *chatService) admit(ctx context.Context, request *dto.ProcessRequest) *dto.ProcessResponse {
	if s.limiter == nil {
		return nil
	}

	decision, err := s.limiter.Admit(ctx, request.ClientIP, request.SessionId)
	if err != nil {
		// Fail open: a broken counter store must not block traffic.
		s.logger.Warn("ChatService", "rate limiter degraded", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if decision.Allowed {
		return nil
	}

	return &dto.ProcessResponse{
		Response:          "Has enviado demasiadas consultas en poco tiempo. Espera un momento e intenta de nuevo. 🐾",
		SessionId:         request.SessionId,
		Strategy:          "rate_limited",
		RateLimited:       true,
		RetryAfterSeconds: int64(decision.RetryAfter.Seconds()),
	}
}

func (s *chatService) gatherContext(ctx context.Context, request *dto.ProcessRequest, a analysis.Analysis) []search.ContextItem {
	cacheKey := memory.Key(request.Message, request.UserType, request.Department)
	if s.contextCache != nil {
		if cached, found := s.contextCache.Get(cacheKey); found {
			return cached
		}
	}

	var semantic, pattern []string
	if s.knowledge != nil {
		var err error
		semantic, err = s.knowledge.SearchSemantic(ctx, request.Message, request.UserType, request.Department)
		if err != nil {
			s.logger.Warn("ChatService", "semantic retrieval degraded", map[string]interface{}{
				"error": err.Error(),
			})
			semantic = nil
		}

		pattern, err = s.knowledge.SearchByCategory(ctx, string(a.QueryType), request.UserType)
		if err != nil {
			s.logger.Warn("ChatService", "category retrieval degraded", map[string]interface{}{
				"error": err.Error(),
			})
			pattern = nil
		}
	}

	merged := search.Merge(semantic, pattern)
	if s.contextCache != nil && len(merged) > 0 {
		s.contextCache.Save(cacheKey, merged)
	}
	return merged
}

// topKFor widens the cut when more than one retrieval source
// contributed.
func topKFor(items []search.ContextItem) int {
	origins := make(map[search.Origin]struct{}, 2)
	for _, item := range items {
		origins[item.Origin] = struct{}{}
	}
	if len(origins) > 1 {
		return search.TopKMerged
	}
	return search.TopKStandard
}

func (s *chatService) publishEscalation(request *dto.ProcessRequest, decision escalation.Decision) {
	if s.publisher == nil {
		return
	}

	event := events.NewEscalationRaised(
		request.SessionId,
		request.UserType,
		request.Department,
		string(decision.Priority),
		decision.Reasons,
		decision.RecommendedDepartment,
	)

	payload, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Error("ChatService", "failed to marshal escalation event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(events.TopicEscalationRaised, msg); err != nil {
		// Alerting is best effort, the caller still gets the decision.
		s.logger.Warn("ChatService", "failed to publish escalation event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *chatService) Health(ctx context.Context) *dto.HealthResponse {
	health := &dto.HealthResponse{}

	if s.generator != nil {
		health.GenerationAvailable = s.generator.IsAvailable(ctx)
	}
	if s.knowledge != nil {
		count, err := s.knowledge.Count(ctx)
		if err == nil {
			health.KnowledgeItems = count
			health.DatabaseHealthy = true
		}
	}

	return health
}
