package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeItem struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Content        string         `gorm:"type:text"`
	Category       string         `gorm:"type:varchar(100);index"`
	DepartmentCode string         `gorm:"type:varchar(50);index"`
	UserTypes      datatypes.JSON `gorm:"type:jsonb"` // audiences allowed to see this item
	Keywords       datatypes.JSON `gorm:"type:jsonb"`
	IsActive       bool           `gorm:"default:true"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeItem) TableName() string {
	return "knowledge_items"
}
