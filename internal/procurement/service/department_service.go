package service

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/google/uuid"
)

// DepartmentService manages department master records.
type DepartmentService struct {
	repo *repository.DepartmentRepository
}

func NewDepartmentService(repo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

// CreateDepartmentRequest carries a new department.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description"`
	ManagerID   *string `json:"manager_id"`
}

// UpdateDepartmentRequest carries a partial department update.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

func (s *DepartmentService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Department, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*entity.Department, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, req *CreateDepartmentRequest) (*entity.Department, error) {
	dept := &entity.Department{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Update(ctx context.Context, id string, req *UpdateDepartmentRequest) (*entity.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Code != nil {
		dept.Code = *req.Code
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.ManagerID != nil {
		dept.ManagerID = req.ManagerID
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// Deactivate soft-disables a department; master data is not hard-deleted
// in normal operation.
func (s *DepartmentService) Deactivate(ctx context.Context, id string) (*entity.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dept.IsActive = false
	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
