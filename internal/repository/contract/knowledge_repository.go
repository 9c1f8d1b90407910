package contract

import (
	"context"

	"campus-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredKnowledgeEmbedding wraps KnowledgeEmbedding with its similarity score
type ScoredKnowledgeEmbedding struct {
	Embedding  *entity.KnowledgeEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeItemRepository interface {
	Create(ctx context.Context, item *entity.KnowledgeItem) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.KnowledgeItem, error)
	// FindByCategory returns active items in a category visible to the
	// given user type.
	FindByCategory(ctx context.Context, category, userType string) ([]*entity.KnowledgeItem, error)
	FindByDepartment(ctx context.Context, departmentCode, userType string) ([]*entity.KnowledgeItem, error)
	Count(ctx context.Context) (int64, error)
}

type KnowledgeEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.KnowledgeEmbedding, vector []float32) error
	DeleteByKnowledgeItemId(ctx context.Context, knowledgeItemId uuid.UUID) error
	// SearchSimilarWithScore returns embeddings with their similarity
	// scores, filtered by threshold and scoped to the caller's audience.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userType, departmentCode string, threshold float64) ([]*ScoredKnowledgeEmbedding, error)
}
