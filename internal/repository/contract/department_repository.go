package contract

import (
	"context"

	"campus-assistant-be/internal/entity"
)

type DepartmentRepository interface {
	Upsert(ctx context.Context, department *entity.Department) error
	FindByCode(ctx context.Context, code string) (*entity.Department, error)
	FindAll(ctx context.Context) ([]*entity.Department, error)
}
