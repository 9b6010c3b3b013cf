package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestForQuotation solicits supplier pricing, optionally derived from an
// approved requisition. It owns its quotations and at most one bid analysis.
type RequestForQuotation struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:32"`
	RFQNumber          string    `json:"rfq_number" gorm:"size:50;uniqueIndex;not null"`
	Title              string    `json:"title" gorm:"size:200;not null"`
	Description        string    `json:"description" gorm:"type:text"`
	RequisitionID      *string   `json:"purchase_requisition_id" gorm:"size:32;index"`
	Status             string    `json:"status" gorm:"size:20;default:draft"`
	CreatedBy          string    `json:"created_by" gorm:"size:32"`
	SubmissionDeadline time.Time `json:"submission_deadline"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Requisition *PurchaseRequisition `json:"purchase_requisition,omitempty" gorm:"foreignKey:RequisitionID"`
	Quotations  []SupplierQuotation  `json:"quotations,omitempty" gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE"`
	Analysis    *BidAnalysis         `json:"analysis,omitempty" gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE"`
}

func (RequestForQuotation) TableName() string {
	return "request_for_quotations"
}

// RFQ statuses
const (
	RFQStatusDraft     = "draft"
	RFQStatusSent      = "sent"
	RFQStatusReceived  = "received"
	RFQStatusEvaluated = "evaluated"
)

// ValidRFQTransitions is the linear RFQ chain. evaluated is terminal.
var ValidRFQTransitions = map[string][]string{
	RFQStatusDraft:    {RFQStatusSent},
	RFQStatusSent:     {RFQStatusReceived},
	RFQStatusReceived: {RFQStatusEvaluated},
}

// SupplierQuotation is one supplier's response to an RFQ. The quotation
// number is the supplier's own reference, unique within its RFQ.
type SupplierQuotation struct {
	ID              string          `json:"id" gorm:"primaryKey;size:32"`
	RFQID           string          `json:"rfq_id" gorm:"size:32;not null;uniqueIndex:idx_rfq_quotation_number"`
	SupplierID      string          `json:"supplier_id" gorm:"size:32;not null;index"`
	QuotationNumber string          `json:"quotation_number" gorm:"size:50;not null;uniqueIndex:idx_rfq_quotation_number"`
	Status          string          `json:"status" gorm:"size:20;default:submitted"`
	SubmissionDate  time.Time       `json:"submission_date"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (SupplierQuotation) TableName() string {
	return "supplier_quotations"
}

// Quotation statuses
const (
	QuotationStatusSubmitted   = "submitted"
	QuotationStatusUnderReview = "under_review"
	QuotationStatusAccepted    = "accepted"
	QuotationStatusRejected    = "rejected"
)

// ValidQuotationTransitions maps quotation review moves. accepted and
// rejected are terminal.
var ValidQuotationTransitions = map[string][]string{
	QuotationStatusSubmitted:   {QuotationStatusUnderReview},
	QuotationStatusUnderReview: {QuotationStatusAccepted, QuotationStatusRejected},
}

// BidAnalysis is the comparative evaluation of an RFQ's quotations.
// One per RFQ; the selected supplier is cleared if that supplier is deleted.
type BidAnalysis struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:32"`
	RFQID              string    `json:"rfq_id" gorm:"size:32;not null;uniqueIndex"`
	AnalyzedBy         string    `json:"analyzed_by" gorm:"size:32"`
	AnalysisDate       time.Time `json:"analysis_date"`
	Recommendation     string    `json:"recommendation" gorm:"type:text"`
	SelectedSupplierID *string   `json:"selected_supplier_id" gorm:"size:32"`
	CreatedAt          time.Time `json:"created_at"`

	SelectedSupplier *Supplier `json:"selected_supplier,omitempty" gorm:"foreignKey:SelectedSupplierID;constraint:OnDelete:SET NULL"`
}

func (BidAnalysis) TableName() string {
	return "bid_analyses"
}
