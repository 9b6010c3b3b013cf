package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// RequisitionRepository persists purchase requisitions.
type RequisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequisition, int64, error) {
	var items []entity.PurchaseRequisition
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseRequisition{})

	if search := filters["search"]; search != "" {
		query = query.Where("requisition_number ILIKE ? OR title ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if departmentID := filters["department_id"]; departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	if from := filters["request_date_from"]; from != "" {
		query = query.Where("request_date >= ?", from)
	}
	if to := filters["request_date_to"]; to != "" {
		query = query.Where("request_date <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Department").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *RequisitionRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	var req entity.PurchaseRequisition
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *RequisitionRepository) Create(ctx context.Context, req *entity.PurchaseRequisition) error {
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *RequisitionRepository) Update(ctx context.Context, req *entity.PurchaseRequisition) error {
	return translate(r.db.WithContext(ctx).Save(req).Error)
}

// Delete removes a requisition; derived RFQs cascade, traced purchase
// orders keep the record with the reference cleared.
func (r *RequisitionRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PurchaseRequisition{}).Error)
}
