package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the binding order issued to a supplier. Its requisition
// and RFQ references are traces only: deleting those upstream records
// clears the pointer and leaves the order intact.
type PurchaseOrder struct {
	ID               string          `json:"id" gorm:"primaryKey;size:32"`
	PONumber         string          `json:"po_number" gorm:"size:50;uniqueIndex;not null"`
	SupplierID       string          `json:"supplier_id" gorm:"size:32;not null;index"`
	RequisitionID    *string         `json:"purchase_requisition_id" gorm:"size:32"`
	RFQID            *string         `json:"rfq_id" gorm:"size:32"`
	Status           string          `json:"status" gorm:"size:20;default:draft"`
	OrderDate        time.Time       `json:"order_date" gorm:"type:date"`
	ExpectedDelivery time.Time       `json:"expected_delivery" gorm:"type:date"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	CreatedBy        string          `json:"created_by" gorm:"size:32"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Supplier    *Supplier            `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Requisition *PurchaseRequisition `json:"purchase_requisition,omitempty" gorm:"foreignKey:RequisitionID;constraint:OnDelete:SET NULL"`
	RFQ         *RequestForQuotation `json:"rfq,omitempty" gorm:"foreignKey:RFQID;constraint:OnDelete:SET NULL"`
	Items       []PurchaseOrderItem  `json:"items,omitempty" gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PO statuses
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusConfirmed = "confirmed"
	POStatusDelivered = "delivered"
	POStatusCancelled = "cancelled"
)

// ValidPOTransitions maps order fulfillment moves. delivered and cancelled
// are terminal.
var ValidPOTransitions = map[string][]string{
	POStatusDraft:     {POStatusSent},
	POStatusSent:      {POStatusConfirmed},
	POStatusConfirmed: {POStatusDelivered, POStatusCancelled},
}

// PurchaseOrderItem is one order line. Quantity and unit price are strictly
// positive; the line total is always quantity x unit_price at 2dp.
type PurchaseOrderItem struct {
	ID              string          `json:"id" gorm:"primaryKey;size:32"`
	PurchaseOrderID string          `json:"purchase_order_id" gorm:"size:32;not null;index"`
	ItemID          string          `json:"item_id" gorm:"size:32;not null;index"`
	Description     string          `json:"description" gorm:"type:text"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2);not null;check:quantity > 0"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null;check:unit_price > 0"`
	LineTotal       decimal.Decimal `json:"line_total" gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time       `json:"created_at"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
