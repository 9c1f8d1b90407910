package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeItem struct {
	Id             uuid.UUID
	Title          string
	Content        string
	Category       string
	DepartmentCode string
	UserTypes      []string
	Keywords       []string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type KnowledgeEmbedding struct {
	Id              uuid.UUID
	Document        string
	KnowledgeItemId uuid.UUID
	ChunkIndex      int
	CreatedAt       time.Time
}

type Department struct {
	Id        uuid.UUID
	Code      string
	Name      string
	Phone     string
	Extension string
	Email     string
}
