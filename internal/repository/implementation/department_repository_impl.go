package implementation

import (
	"context"
	"errors"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/model"
	"campus-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepartmentRepositoryImpl struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) contract.DepartmentRepository {
	return &DepartmentRepositoryImpl{db: db}
}

func (r *DepartmentRepositoryImpl) Upsert(ctx context.Context, department *entity.Department) error {
	m := &model.Department{
		Id:        department.Id,
		Code:      department.Code,
		Name:      department.Name,
		Phone:     department.Phone,
		Extension: department.Extension,
		Email:     department.Email,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "extension", "email", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}

	department.Id = m.Id
	return nil
}

func (r *DepartmentRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.Department, error) {
	var m model.Department
	err := r.db.WithContext(ctx).First(&m, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDepartmentEntity(&m), nil
}

func (r *DepartmentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Department, error) {
	var models []*model.Department
	if err := r.db.WithContext(ctx).Order("code").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Department, len(models))
	for i, m := range models {
		entities[i] = toDepartmentEntity(m)
	}
	return entities, nil
}

func toDepartmentEntity(m *model.Department) *entity.Department {
	return &entity.Department{
		Id:        m.Id,
		Code:      m.Code,
		Name:      m.Name,
		Phone:     m.Phone,
		Extension: m.Extension,
		Email:     m.Email,
	}
}
