package repository

import (
	"context"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"gorm.io/gorm"
)

// PORepository persists purchase orders and their line items.
type PORepository struct {
	db *gorm.DB
}

func NewPORepository(db *gorm.DB) *PORepository {
	return &PORepository{db: db}
}

func (r *PORepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	var items []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if search := filters["search"]; search != "" {
		query = query.Where("po_number ILIKE ?", "%"+search+"%")
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID := filters["supplier_id"]; supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if from := filters["order_date_from"]; from != "" {
		query = query.Where("order_date >= ?", from)
	}
	if to := filters["order_date_to"]; to != "" {
		query = query.Where("order_date <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Supplier").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *PORepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Item").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		return nil, translate(err)
	}
	return &po, nil
}

func (r *PORepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return translate(r.db.WithContext(ctx).Create(po).Error)
}

func (r *PORepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return translate(r.db.WithContext(ctx).Save(po).Error)
}

// Delete removes an order and, through the storage constraint, its items.
func (r *PORepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PurchaseOrder{}).Error)
}

func (r *PORepository) FindItem(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	var item entity.PurchaseOrderItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *PORepository) FindItems(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("purchase_order_id = ?", poID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PORepository) CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *PORepository) UpdateItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

func (r *PORepository) DeleteItem(ctx context.Context, itemID string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&entity.PurchaseOrderItem{}).Error)
}
