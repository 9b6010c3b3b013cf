package service

import (
	"context"
	"time"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisitionService manages the purchase requisition lifecycle.
type RequisitionService struct {
	repo        *repository.RequisitionRepository
	departments *repository.DepartmentRepository
	logs        *repository.ActivityLogRepository
	seq         *NumberSequencer
}

func NewRequisitionService(repo *repository.RequisitionRepository, departments *repository.DepartmentRepository, logs *repository.ActivityLogRepository, seq *NumberSequencer) *RequisitionService {
	return &RequisitionService{repo: repo, departments: departments, logs: logs, seq: seq}
}

// CreateRequisitionRequest carries a new requisition. The number is
// generated when not supplied. Dates are YYYY-MM-DD.
type CreateRequisitionRequest struct {
	RequisitionNumber string          `json:"requisition_number"`
	Title             string          `json:"title" binding:"required"`
	Description       string          `json:"description"`
	DepartmentID      string          `json:"department_id" binding:"required"`
	RequestDate       string          `json:"request_date" binding:"required"`
	RequiredDate      string          `json:"required_date" binding:"required"`
	EstimatedTotal    decimal.Decimal `json:"estimated_total"`
}

// UpdateRequisitionRequest carries a partial update of a draft requisition.
type UpdateRequisitionRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	DepartmentID   *string          `json:"department_id"`
	RequestDate    *string          `json:"request_date"`
	RequiredDate   *string          `json:"required_date"`
	EstimatedTotal *decimal.Decimal `json:"estimated_total"`
}

func (s *RequisitionService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequisition, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *RequisitionService) Get(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RequisitionService) Create(ctx context.Context, userID string, req *CreateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	requestDate, err := time.Parse(dateLayout, req.RequestDate)
	if err != nil {
		return nil, &ValidationError{Field: "request_date", Reason: "must be YYYY-MM-DD"}
	}
	requiredDate, err := time.Parse(dateLayout, req.RequiredDate)
	if err != nil {
		return nil, &ValidationError{Field: "required_date", Reason: "must be YYYY-MM-DD"}
	}
	if req.EstimatedTotal.IsNegative() {
		return nil, &ValidationError{Field: "estimated_total", Reason: "must not be negative"}
	}
	if _, err := s.departments.FindByID(ctx, req.DepartmentID); err != nil {
		return nil, refCheck(err, "department_id", req.DepartmentID)
	}

	number := req.RequisitionNumber
	if number == "" {
		number, err = s.seq.Next(ctx, "PR", "purchase_requisitions", "requisition_number")
		if err != nil {
			return nil, err
		}
	}

	requisition := &entity.PurchaseRequisition{
		ID:                uuid.New().String()[:32],
		RequisitionNumber: number,
		Title:             req.Title,
		Description:       req.Description,
		DepartmentID:      req.DepartmentID,
		Status:            entity.RequisitionStatusDraft,
		RequestedBy:       userID,
		RequestDate:       requestDate,
		RequiredDate:      requiredDate,
		EstimatedTotal:    req.EstimatedTotal.Round(2),
	}
	if err := s.repo.Create(ctx, requisition); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityRequisition, requisition.ID, requisition.RequisitionNumber,
		"create", "", entity.RequisitionStatusDraft, "requisition created: "+requisition.Title, userID)

	return requisition, nil
}

func (s *RequisitionService) Update(ctx context.Context, id string, req *UpdateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	requisition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		requisition.Title = *req.Title
	}
	if req.Description != nil {
		requisition.Description = *req.Description
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.FindByID(ctx, *req.DepartmentID); err != nil {
			return nil, refCheck(err, "department_id", *req.DepartmentID)
		}
		requisition.DepartmentID = *req.DepartmentID
	}
	if req.RequestDate != nil {
		d, err := time.Parse(dateLayout, *req.RequestDate)
		if err != nil {
			return nil, &ValidationError{Field: "request_date", Reason: "must be YYYY-MM-DD"}
		}
		requisition.RequestDate = d
	}
	if req.RequiredDate != nil {
		d, err := time.Parse(dateLayout, *req.RequiredDate)
		if err != nil {
			return nil, &ValidationError{Field: "required_date", Reason: "must be YYYY-MM-DD"}
		}
		requisition.RequiredDate = d
	}
	if req.EstimatedTotal != nil {
		if req.EstimatedTotal.IsNegative() {
			return nil, &ValidationError{Field: "estimated_total", Reason: "must not be negative"}
		}
		requisition.EstimatedTotal = req.EstimatedTotal.Round(2)
	}

	requisition.Department = nil
	if err := s.repo.Update(ctx, requisition); err != nil {
		return nil, err
	}
	return requisition, nil
}

// Transition moves a requisition along draft -> submitted -> approved or
// rejected. Anything else is refused.
func (s *RequisitionService) Transition(ctx context.Context, id, target, userID string) (*entity.PurchaseRequisition, error) {
	if !oneOf(target, []string{
		entity.RequisitionStatusDraft,
		entity.RequisitionStatusSubmitted,
		entity.RequisitionStatusApproved,
		entity.RequisitionStatusRejected,
	}) {
		return nil, &ValidationError{Field: "status", Reason: "unknown requisition status"}
	}

	requisition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(entity.ValidRequisitionTransitions, requisition.Status, target) {
		return nil, &TransitionError{From: requisition.Status, To: target}
	}

	from := requisition.Status
	requisition.Status = target
	requisition.Department = nil
	if err := s.repo.Update(ctx, requisition); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityRequisition, requisition.ID, requisition.RequisitionNumber,
		"status_change", from, target, "", userID)

	return requisition, nil
}

// Activity returns the requisition's audit trail, newest first.
func (s *RequisitionService) Activity(ctx context.Context, id string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.logs.FindByEntity(ctx, entity.ActivityRequisition, id, page, pageSize)
}

func (s *RequisitionService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
