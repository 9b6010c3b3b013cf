package service

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService manages item categories and catalog items.
type CatalogService struct {
	categories *repository.CategoryRepository
	items      *repository.ItemRepository
}

func NewCatalogService(categories *repository.CategoryRepository, items *repository.ItemRepository) *CatalogService {
	return &CatalogService{categories: categories, items: items}
}

// CreateCategoryRequest carries a new item category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest carries a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (s *CatalogService) ListCategories(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ItemCategory, int64, error) {
	return s.categories.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.ItemCategory, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.ItemCategory, error) {
	cat := &entity.ItemCategory{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*entity.ItemCategory, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes a category together with every item in it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// CreateItemRequest carries a new catalog item.
type CreateItemRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id" binding:"required"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	StandardPrice decimal.Decimal `json:"standard_price"`
}

// UpdateItemRequest carries a partial item update.
type UpdateItemRequest struct {
	Code          *string          `json:"code"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	StandardPrice *decimal.Decimal `json:"standard_price"`
	IsActive      *bool            `json:"is_active"`
}

func (s *CatalogService) ListItems(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Item, int64, error) {
	return s.items.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *CatalogService) CreateItem(ctx context.Context, req *CreateItemRequest) (*entity.Item, error) {
	unit := req.UnitOfMeasure
	if unit == "" {
		unit = entity.UnitPieces
	}
	if !entity.ValidUnits[unit] {
		return nil, &ValidationError{Field: "unit_of_measure", Reason: "must be one of pcs, kg, ltr, m, box"}
	}
	if req.StandardPrice.IsNegative() {
		return nil, &ValidationError{Field: "standard_price", Reason: "must not be negative"}
	}
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, refCheck(err, "category_id", req.CategoryID)
	}

	item := &entity.Item{
		ID:            uuid.New().String()[:32],
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		UnitOfMeasure: unit,
		StandardPrice: req.StandardPrice.Round(2),
		IsActive:      true,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*entity.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		item.Code = *req.Code
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, refCheck(err, "category_id", *req.CategoryID)
		}
		item.CategoryID = *req.CategoryID
	}
	if req.UnitOfMeasure != nil {
		if !entity.ValidUnits[*req.UnitOfMeasure] {
			return nil, &ValidationError{Field: "unit_of_measure", Reason: "must be one of pcs, kg, ltr, m, box"}
		}
		item.UnitOfMeasure = *req.UnitOfMeasure
	}
	if req.StandardPrice != nil {
		if req.StandardPrice.IsNegative() {
			return nil, &ValidationError{Field: "standard_price", Reason: "must not be negative"}
		}
		item.StandardPrice = req.StandardPrice.Round(2)
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	item.Category = nil
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
