package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// CategoryRepository persists item categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ItemCategory, int64, error) {
	var items []entity.ItemCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ItemCategory{})

	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.ItemCategory, error) {
	var cat entity.ItemCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cat).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *entity.ItemCategory) error {
	return translate(r.db.WithContext(ctx).Create(cat).Error)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *entity.ItemCategory) error {
	return translate(r.db.WithContext(ctx).Save(cat).Error)
}

// Delete removes a category; the items FK cascades at the storage layer.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ItemCategory{}).Error)
}

// ItemRepository persists catalog items.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{})

	if search := filters["search"]; search != "" {
		query = query.Where("code ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if categoryID := filters["category_id"]; categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if unit := filters["unit_of_measure"]; unit != "" {
		query = query.Where("unit_of_measure = ?", unit)
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("code ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{}).Error)
}
