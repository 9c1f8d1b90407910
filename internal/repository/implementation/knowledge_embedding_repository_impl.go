package implementation

import (
	"context"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/model"
	"campus-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{db: db}
}

func (r *KnowledgeEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.KnowledgeEmbedding, vector []float32) error {
	m := &model.KnowledgeEmbedding{
		Id:              embedding.Id,
		Document:        embedding.Document,
		EmbeddingValue:  pgvector.NewVector(vector),
		KnowledgeItemId: embedding.KnowledgeItemId,
		ChunkIndex:      embedding.ChunkIndex,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	embedding.Id = m.Id
	embedding.CreatedAt = m.CreatedAt
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) DeleteByKnowledgeItemId(ctx context.Context, knowledgeItemId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("knowledge_item_id = ?", knowledgeItemId).
		Delete(&model.KnowledgeEmbedding{}).Error
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *KnowledgeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userType, departmentCode string, threshold float64) ([]*contract.ScoredKnowledgeEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.KnowledgeEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN knowledge_items ON knowledge_items.id = knowledge_embeddings.knowledge_item_id").
		Where("knowledge_items.is_active = ?", true).
		Where("knowledge_items.user_types @> ?", audienceFilter(userType)).
		Where("knowledge_embeddings.deleted_at IS NULL").
		Where("knowledge_items.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold)

	if departmentCode != "" {
		query = query.Where("knowledge_items.department_code = ?", departmentCode)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeEmbedding{
			Embedding: &entity.KnowledgeEmbedding{
				Id:              res.Id,
				Document:        res.Document,
				KnowledgeItemId: res.KnowledgeItemId,
				ChunkIndex:      res.ChunkIndex,
				CreatedAt:       res.CreatedAt,
			},
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
