package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/model"
	"campus-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeItemRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeItemRepository(db *gorm.DB) contract.KnowledgeItemRepository {
	return &KnowledgeItemRepositoryImpl{db: db}
}

func (r *KnowledgeItemRepositoryImpl) Create(ctx context.Context, item *entity.KnowledgeItem) error {
	m, err := toKnowledgeItemModel(item)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	e, err := toKnowledgeItemEntity(m)
	if err != nil {
		return err
	}
	*item = *e
	return nil
}

func (r *KnowledgeItemRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.KnowledgeItem, error) {
	var m model.KnowledgeItem
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toKnowledgeItemEntity(&m)
}

func (r *KnowledgeItemRepositoryImpl) FindByCategory(ctx context.Context, category, userType string) ([]*entity.KnowledgeItem, error) {
	var models []*model.KnowledgeItem
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Where("is_active = ?", true).
		Where("user_types @> ?", audienceFilter(userType)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toKnowledgeItemEntities(models)
}

func (r *KnowledgeItemRepositoryImpl) FindByDepartment(ctx context.Context, departmentCode, userType string) ([]*entity.KnowledgeItem, error) {
	var models []*model.KnowledgeItem
	err := r.db.WithContext(ctx).
		Where("department_code = ?", departmentCode).
		Where("is_active = ?", true).
		Where("user_types @> ?", audienceFilter(userType)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toKnowledgeItemEntities(models)
}

func (r *KnowledgeItemRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeItem{}).Count(&count).Error
	return count, err
}

// audienceFilter builds the jsonb containment argument for user type
// scoping: user_types @> '"student"'.
func audienceFilter(userType string) datatypes.JSON {
	return datatypes.JSON(strconv.Quote(userType))
}

func toKnowledgeItemModel(e *entity.KnowledgeItem) (*model.KnowledgeItem, error) {
	userTypes, err := json.Marshal(e.UserTypes)
	if err != nil {
		return nil, err
	}
	keywords, err := json.Marshal(e.Keywords)
	if err != nil {
		return nil, err
	}

	return &model.KnowledgeItem{
		Id:             e.Id,
		Title:          e.Title,
		Content:        e.Content,
		Category:       e.Category,
		DepartmentCode: e.DepartmentCode,
		UserTypes:      datatypes.JSON(userTypes),
		Keywords:       datatypes.JSON(keywords),
		IsActive:       e.IsActive,
	}, nil
}

func toKnowledgeItemEntity(m *model.KnowledgeItem) (*entity.KnowledgeItem, error) {
	var userTypes, keywords []string
	if len(m.UserTypes) > 0 {
		if err := json.Unmarshal(m.UserTypes, &userTypes); err != nil {
			return nil, err
		}
	}
	if len(m.Keywords) > 0 {
		if err := json.Unmarshal(m.Keywords, &keywords); err != nil {
			return nil, err
		}
	}

	return &entity.KnowledgeItem{
		Id:             m.Id,
		Title:          m.Title,
		Content:        m.Content,
		Category:       m.Category,
		DepartmentCode: m.DepartmentCode,
		UserTypes:      userTypes,
		Keywords:       keywords,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func toKnowledgeItemEntities(models []*model.KnowledgeItem) ([]*entity.KnowledgeItem, error) {
	entities := make([]*entity.KnowledgeItem, 0, len(models))
	for _, m := range models {
		e, err := toKnowledgeItemEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
