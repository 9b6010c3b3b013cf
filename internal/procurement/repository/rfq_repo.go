package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// RFQRepository persists requests for quotation and their bid analyses.
type RFQRepository struct {
	db *gorm.DB
}

func NewRFQRepository(db *gorm.DB) *RFQRepository {
	return &RFQRepository{db: db}
}

func (r *RFQRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.RequestForQuotation, int64, error) {
	var items []entity.RequestForQuotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RequestForQuotation{})

	if search := filters["search"]; search != "" {
		query = query.Where("rfq_number ILIKE ? OR title ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if requisitionID := filters["purchase_requisition_id"]; requisitionID != "" {
		query = query.Where("requisition_id = ?", requisitionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *RFQRepository) FindByID(ctx context.Context, id string) (*entity.RequestForQuotation, error) {
	var rfq entity.RequestForQuotation
	err := r.db.WithContext(ctx).
		Preload("Quotations").
		Preload("Quotations.Supplier").
		Preload("Analysis").
		Where("id = ?", id).
		First(&rfq).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rfq, nil
}

func (r *RFQRepository) Create(ctx context.Context, rfq *entity.RequestForQuotation) error {
	return translate(r.db.WithContext(ctx).Create(rfq).Error)
}

func (r *RFQRepository) Update(ctx context.Context, rfq *entity.RequestForQuotation) error {
	return translate(r.db.WithContext(ctx).Save(rfq).Error)
}

func (r *RFQRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.RequestForQuotation{}).Error)
}

// FindAnalysis returns the RFQ's bid analysis, ErrNotFound if none exists.
func (r *RFQRepository) FindAnalysis(ctx context.Context, rfqID string) (*entity.BidAnalysis, error) {
	var analysis entity.BidAnalysis
	err := r.db.WithContext(ctx).
		Preload("SelectedSupplier").
		Where("rfq_id = ?", rfqID).
		First(&analysis).Error
	if err != nil {
		return nil, translate(err)
	}
	return &analysis, nil
}

// CreateAnalysis inserts the one-per-RFQ bid analysis; a second insert for
// the same RFQ fails on the unique index.
func (r *RFQRepository) CreateAnalysis(ctx context.Context, analysis *entity.BidAnalysis) error {
	return translate(r.db.WithContext(ctx).Create(analysis).Error)
}

func (r *RFQRepository) UpdateAnalysis(ctx context.Context, analysis *entity.BidAnalysis) error {
	return translate(r.db.WithContext(ctx).Save(analysis).Error)
}
