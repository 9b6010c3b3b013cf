package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// QuotationRepository persists supplier quotations.
type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SupplierQuotation, int64, error) {
	var items []entity.SupplierQuotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SupplierQuotation{})

	if search := filters["search"]; search != "" {
		query = query.Where("quotation_number ILIKE ?", "%"+search+"%")
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if rfqID := filters["rfq_id"]; rfqID != "" {
		query = query.Where("rfq_id = ?", rfqID)
	}
	if supplierID := filters["supplier_id"]; supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Supplier").
		Order("submission_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*entity.SupplierQuotation, error) {
	var quotation entity.SupplierQuotation
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("id = ?", id).
		First(&quotation).Error
	if err != nil {
		return nil, translate(err)
	}
	return &quotation, nil
}

// FindByRFQ returns all quotations submitted against one RFQ.
func (r *QuotationRepository) FindByRFQ(ctx context.Context, rfqID string) ([]entity.SupplierQuotation, error) {
	var quotations []entity.SupplierQuotation
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("rfq_id = ?", rfqID).
		Order("total_amount ASC").
		Find(&quotations).Error
	return quotations, err
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *entity.SupplierQuotation) error {
	return translate(r.db.WithContext(ctx).Create(quotation).Error)
}

func (r *QuotationRepository) Update(ctx context.Context, quotation *entity.SupplierQuotation) error {
	return translate(r.db.WithContext(ctx).Save(quotation).Error)
}

func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SupplierQuotation{}).Error)
}
