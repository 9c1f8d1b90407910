package service

import (
	"context"
	"fmt"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/contract"
	"campus-assistant-be/pkg/embedding"
)

// IKnowledgeService is the retrieval collaborator: it resolves a query
// into supporting context snippets from the institutional knowledge base.
type IKnowledgeService interface {
	SearchSemantic(ctx context.Context, query, userType, department string) ([]string, error)
	SearchByCategory(ctx context.Context, category, userType string) ([]string, error)
	SearchByDepartment(ctx context.Context, departmentCode, userType string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

const (
	semanticSearchLimit    = 5
	semanticScoreThreshold = 0.35
	embeddingQueryTaskType = "RETRIEVAL_QUERY"
)

type knowledgeService struct {
	itemRepo          contract.KnowledgeItemRepository
	embeddingRepo     contract.KnowledgeEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewKnowledgeService(
	itemRepo contract.KnowledgeItemRepository,
	embeddingRepo contract.KnowledgeEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		itemRepo:          itemRepo,
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *knowledgeService) SearchSemantic(ctx context.Context, query, userType, department string) ([]string, error) {
	resp, err := s.embeddingProvider.Generate(query, embeddingQueryTaskType)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.embeddingRepo.SearchSimilarWithScore(
		ctx,
		resp.Embedding.Values,
		semanticSearchLimit,
		userType,
		department,
		semanticScoreThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	snippets := make([]string, 0, len(scored))
	for _, hit := range scored {
		snippets = append(snippets, hit.Embedding.Document)
	}

	s.logger.Debug("KnowledgeService", "semantic search completed", map[string]interface{}{
		"hits":      len(snippets),
		"user_type": userType,
	})
	return snippets, nil
}

func (s *knowledgeService) SearchByCategory(ctx context.Context, category, userType string) ([]string, error) {
	items, err := s.itemRepo.FindByCategory(ctx, category, userType)
	if err != nil {
		return nil, fmt.Errorf("category search: %w", err)
	}
	return itemSnippets(items), nil
}

func (s *knowledgeService) SearchByDepartment(ctx context.Context, departmentCode, userType string) ([]string, error) {
	items, err := s.itemRepo.FindByDepartment(ctx, departmentCode, userType)
	if err != nil {
		return nil, fmt.Errorf("department search: %w", err)
	}
	return itemSnippets(items), nil
}

func (s *knowledgeService) Count(ctx context.Context) (int64, error) {
	return s.itemRepo.Count(ctx)
}

func itemSnippets(items []*entity.KnowledgeItem) []string {
	snippets := make([]string, 0, len(items))
	for _, item := range items {
		snippets = append(snippets, fmt.Sprintf("**%s**\n\n%s", item.Title, item.Content))
	}
	return snippets
}
