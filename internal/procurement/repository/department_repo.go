package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// DepartmentRepository persists department master records.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// FindAll lists departments with paging and filters.
func (r *DepartmentRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Department, int64, error) {
	var items []entity.Department
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Department{})

	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*entity.Department, error) {
	var dept entity.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if err != nil {
		return nil, translate(err)
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *entity.Department) error {
	return translate(r.db.WithContext(ctx).Create(dept).Error)
}

func (r *DepartmentRepository) Update(ctx context.Context, dept *entity.Department) error {
	return translate(r.db.WithContext(ctx).Save(dept).Error)
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Department{}).Error)
}
