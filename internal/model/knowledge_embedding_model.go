package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbedding struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document        string          `gorm:"type:text"`
	EmbeddingValue  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	KnowledgeItemId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex      int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

func (KnowledgeEmbedding) TableName() string {
	return "knowledge_embeddings"
}
