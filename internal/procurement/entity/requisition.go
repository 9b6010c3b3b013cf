package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequisition is the first record of the procurement chain: a
// department's request to buy, carrying an estimate made before any
// supplier pricing exists.
type PurchaseRequisition struct {
	ID                string          `json:"id" gorm:"primaryKey;size:32"`
	RequisitionNumber string          `json:"requisition_number" gorm:"size:50;uniqueIndex;not null"`
	Title             string          `json:"title" gorm:"size:200;not null"`
	Description       string          `json:"description" gorm:"type:text"`
	DepartmentID      string          `json:"department_id" gorm:"size:32;not null;index"`
	Status            string          `json:"status" gorm:"size:20;default:draft"`
	RequestedBy       string          `json:"requested_by" gorm:"size:32"`
	RequestDate       time.Time       `json:"request_date" gorm:"type:date"`
	RequiredDate      time.Time       `json:"required_date" gorm:"type:date"`
	EstimatedTotal    decimal.Decimal `json:"estimated_total" gorm:"type:decimal(12,2);default:0"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Department *Department           `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	RFQs       []RequestForQuotation `json:"rfqs,omitempty" gorm:"foreignKey:RequisitionID;constraint:OnDelete:CASCADE"`
}

func (PurchaseRequisition) TableName() string {
	return "purchase_requisitions"
}

// Requisition statuses
const (
	RequisitionStatusDraft     = "draft"
	RequisitionStatusSubmitted = "submitted"
	RequisitionStatusApproved  = "approved"
	RequisitionStatusRejected  = "rejected"
)

// ValidRequisitionTransitions maps each status to the statuses reachable
// from it. approved and rejected are terminal.
var ValidRequisitionTransitions = map[string][]string{
	RequisitionStatusDraft:     {RequisitionStatusSubmitted},
	RequisitionStatusSubmitted: {RequisitionStatusApproved, RequisitionStatusRejected},
}
