package service

import (
	"context"
	"time"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RFQService manages RFQs, the quotations submitted against them, and the
// bid analysis that closes the sourcing round.
type RFQService struct {
	rfqs         *repository.RFQRepository
	quotations   *repository.QuotationRepository
	requisitions *repository.RequisitionRepository
	suppliers    *repository.SupplierRepository
	logs         *repository.ActivityLogRepository
	seq          *NumberSequencer
}

func NewRFQService(
	rfqs *repository.RFQRepository,
	quotations *repository.QuotationRepository,
	requisitions *repository.RequisitionRepository,
	suppliers *repository.SupplierRepository,
	logs *repository.ActivityLogRepository,
	seq *NumberSequencer,
) *RFQService {
	return &RFQService{
		rfqs:         rfqs,
		quotations:   quotations,
		requisitions: requisitions,
		suppliers:    suppliers,
		logs:         logs,
		seq:          seq,
	}
}

// CreateRFQRequest carries a new RFQ, optionally derived from a
// requisition.
type CreateRFQRequest struct {
	RFQNumber          string    `json:"rfq_number"`
	Title              string    `json:"title" binding:"required"`
	Description        string    `json:"description"`
	RequisitionID      *string   `json:"purchase_requisition_id"`
	SubmissionDeadline time.Time `json:"submission_deadline" binding:"required"`
}

// UpdateRFQRequest carries a partial RFQ update.
type UpdateRFQRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
}

func (s *RFQService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.RequestForQuotation, int64, error) {
	return s.rfqs.FindAll(ctx, page, pageSize, filters)
}

func (s *RFQService) Get(ctx context.Context, id string) (*entity.RequestForQuotation, error) {
	return s.rfqs.FindByID(ctx, id)
}

func (s *RFQService) Create(ctx context.Context, userID string, req *CreateRFQRequest) (*entity.RequestForQuotation, error) {
	if req.RequisitionID != nil {
		if _, err := s.requisitions.FindByID(ctx, *req.RequisitionID); err != nil {
			return nil, refCheck(err, "purchase_requisition_id", *req.RequisitionID)
		}
	}

	number := req.RFQNumber
	if number == "" {
		var err error
		number, err = s.seq.Next(ctx, "RFQ", "request_for_quotations", "rfq_number")
		if err != nil {
			return nil, err
		}
	}

	rfq := &entity.RequestForQuotation{
		ID:                 uuid.New().String()[:32],
		RFQNumber:          number,
		Title:              req.Title,
		Description:        req.Description,
		RequisitionID:      req.RequisitionID,
		Status:             entity.RFQStatusDraft,
		CreatedBy:          userID,
		SubmissionDeadline: req.SubmissionDeadline,
	}
	if err := s.rfqs.Create(ctx, rfq); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityRFQ, rfq.ID, rfq.RFQNumber,
		"create", "", entity.RFQStatusDraft, "rfq created: "+rfq.Title, userID)

	return rfq, nil
}

func (s *RFQService) Update(ctx context.Context, id string, req *UpdateRFQRequest) (*entity.RequestForQuotation, error) {
	rfq, err := s.rfqs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		rfq.Title = *req.Title
	}
	if req.Description != nil {
		rfq.Description = *req.Description
	}
	if req.SubmissionDeadline != nil {
		rfq.SubmissionDeadline = *req.SubmissionDeadline
	}

	rfq.Quotations = nil
	rfq.Analysis = nil
	if err := s.rfqs.Update(ctx, rfq); err != nil {
		return nil, err
	}
	return rfq, nil
}

// Transition moves an RFQ along its linear chain
// draft -> sent -> received -> evaluated.
func (s *RFQService) Transition(ctx context.Context, id, target, userID string) (*entity.RequestForQuotation, error) {
	if !oneOf(target, []string{
		entity.RFQStatusDraft,
		entity.RFQStatusSent,
		entity.RFQStatusReceived,
		entity.RFQStatusEvaluated,
	}) {
		return nil, &ValidationError{Field: "status", Reason: "unknown rfq status"}
	}

	rfq, err := s.rfqs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(entity.ValidRFQTransitions, rfq.Status, target) {
		return nil, &TransitionError{From: rfq.Status, To: target}
	}

	from := rfq.Status
	rfq.Status = target
	rfq.Quotations = nil
	rfq.Analysis = nil
	if err := s.rfqs.Update(ctx, rfq); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityRFQ, rfq.ID, rfq.RFQNumber,
		"status_change", from, target, "", userID)

	return rfq, nil
}

// Activity returns the RFQ's audit trail, newest first.
func (s *RFQService) Activity(ctx context.Context, id string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if _, err := s.rfqs.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.logs.FindByEntity(ctx, entity.ActivityRFQ, id, page, pageSize)
}

func (s *RFQService) Delete(ctx context.Context, id string) error {
	if _, err := s.rfqs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.rfqs.Delete(ctx, id)
}

// AddQuotationRequest carries a supplier's response to an RFQ. The
// quotation number is the supplier's own reference, unique within the RFQ.
type AddQuotationRequest struct {
	SupplierID      string          `json:"supplier_id" binding:"required"`
	QuotationNumber string          `json:"quotation_number" binding:"required"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	SubmissionDate  *time.Time      `json:"submission_date"`
}

// UpdateQuotationRequest carries a partial quotation update.
type UpdateQuotationRequest struct {
	QuotationNumber *string          `json:"quotation_number"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
}

func (s *RFQService) ListQuotations(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SupplierQuotation, int64, error) {
	return s.quotations.FindAll(ctx, page, pageSize, filters)
}

func (s *RFQService) GetQuotation(ctx context.Context, id string) (*entity.SupplierQuotation, error) {
	return s.quotations.FindByID(ctx, id)
}

func (s *RFQService) AddQuotation(ctx context.Context, rfqID string, req *AddQuotationRequest) (*entity.SupplierQuotation, error) {
	if req.TotalAmount.IsNegative() {
		return nil, &ValidationError{Field: "total_amount", Reason: "must not be negative"}
	}
	if _, err := s.rfqs.FindByID(ctx, rfqID); err != nil {
		return nil, err
	}
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		return nil, refCheck(err, "supplier_id", req.SupplierID)
	}

	submitted := time.Now()
	if req.SubmissionDate != nil {
		submitted = *req.SubmissionDate
	}

	quotation := &entity.SupplierQuotation{
		ID:              uuid.New().String()[:32],
		RFQID:           rfqID,
		SupplierID:      req.SupplierID,
		QuotationNumber: req.QuotationNumber,
		Status:          entity.QuotationStatusSubmitted,
		SubmissionDate:  submitted,
		TotalAmount:     req.TotalAmount.Round(2),
	}
	if err := s.quotations.Create(ctx, quotation); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityQuotation, quotation.ID, quotation.QuotationNumber,
		"create", "", entity.QuotationStatusSubmitted, "quotation received for rfq "+rfqID, "")

	return quotation, nil
}

func (s *RFQService) UpdateQuotation(ctx context.Context, id string, req *UpdateQuotationRequest) (*entity.SupplierQuotation, error) {
	quotation, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.QuotationNumber != nil {
		quotation.QuotationNumber = *req.QuotationNumber
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, &ValidationError{Field: "total_amount", Reason: "must not be negative"}
		}
		quotation.TotalAmount = req.TotalAmount.Round(2)
	}

	quotation.Supplier = nil
	if err := s.quotations.Update(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// TransitionQuotation moves a quotation along
// submitted -> under_review -> accepted or rejected.
func (s *RFQService) TransitionQuotation(ctx context.Context, id, target, userID string) (*entity.SupplierQuotation, error) {
	if !oneOf(target, []string{
		entity.QuotationStatusSubmitted,
		entity.QuotationStatusUnderReview,
		entity.QuotationStatusAccepted,
		entity.QuotationStatusRejected,
	}) {
		return nil, &ValidationError{Field: "status", Reason: "unknown quotation status"}
	}

	quotation, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(entity.ValidQuotationTransitions, quotation.Status, target) {
		return nil, &TransitionError{From: quotation.Status, To: target}
	}

	from := quotation.Status
	quotation.Status = target
	quotation.Supplier = nil
	if err := s.quotations.Update(ctx, quotation); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityQuotation, quotation.ID, quotation.QuotationNumber,
		"status_change", from, target, "", userID)

	return quotation, nil
}

func (s *RFQService) DeleteQuotation(ctx context.Context, id string) error {
	return s.quotations.Delete(ctx, id)
}

// CreateAnalysisRequest carries the bid analysis closing an RFQ.
type CreateAnalysisRequest struct {
	Recommendation     string  `json:"recommendation" binding:"required"`
	SelectedSupplierID *string `json:"selected_supplier_id"`
}

// UpdateAnalysisRequest carries a partial analysis update.
type UpdateAnalysisRequest struct {
	Recommendation     *string `json:"recommendation"`
	SelectedSupplierID *string `json:"selected_supplier_id"`
}

func (s *RFQService) GetAnalysis(ctx context.Context, rfqID string) (*entity.BidAnalysis, error) {
	return s.rfqs.FindAnalysis(ctx, rfqID)
}

// CreateAnalysis records the one bid analysis an RFQ may have. A second
// create for the same RFQ fails with a duplicate-key violation.
func (s *RFQService) CreateAnalysis(ctx context.Context, rfqID, userID string, req *CreateAnalysisRequest) (*entity.BidAnalysis, error) {
	if _, err := s.rfqs.FindByID(ctx, rfqID); err != nil {
		return nil, err
	}
	if req.SelectedSupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, *req.SelectedSupplierID); err != nil {
			return nil, refCheck(err, "selected_supplier_id", *req.SelectedSupplierID)
		}
	}

	analysis := &entity.BidAnalysis{
		ID:                 uuid.New().String()[:32],
		RFQID:              rfqID,
		AnalyzedBy:         userID,
		AnalysisDate:       time.Now(),
		Recommendation:     req.Recommendation,
		SelectedSupplierID: req.SelectedSupplierID,
	}
	if err := s.rfqs.CreateAnalysis(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func (s *RFQService) UpdateAnalysis(ctx context.Context, rfqID string, req *UpdateAnalysisRequest) (*entity.BidAnalysis, error) {
	analysis, err := s.rfqs.FindAnalysis(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	if req.Recommendation != nil {
		analysis.Recommendation = *req.Recommendation
	}
	if req.SelectedSupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, *req.SelectedSupplierID); err != nil {
			return nil, refCheck(err, "selected_supplier_id", *req.SelectedSupplierID)
		}
		analysis.SelectedSupplierID = req.SelectedSupplierID
	}

	analysis.SelectedSupplier = nil
	if err := s.rfqs.UpdateAnalysis(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// ComparisonRow is one supplier's line in the bid comparison.
type ComparisonRow struct {
	SupplierName    string          `json:"supplier_name"`
	QuotationNumber string          `json:"quotation_number"`
	Status          string          `json:"status"`
	SubmissionDate  time.Time       `json:"submission_date"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Selected        bool            `json:"selected"`
}

// Comparison assembles the quotation comparison for an RFQ, cheapest
// first, flagging the analysis selection if one exists.
func (s *RFQService) Comparison(ctx context.Context, rfqID string) (*entity.RequestForQuotation, []ComparisonRow, error) {
	rfq, err := s.rfqs.FindByID(ctx, rfqID)
	if err != nil {
		return nil, nil, err
	}

	quotations, err := s.quotations.FindByRFQ(ctx, rfqID)
	if err != nil {
		return nil, nil, err
	}

	var selected string
	if rfq.Analysis != nil && rfq.Analysis.SelectedSupplierID != nil {
		selected = *rfq.Analysis.SelectedSupplierID
	}

	rows := make([]ComparisonRow, 0, len(quotations))
	for _, q := range quotations {
		row := ComparisonRow{
			QuotationNumber: q.QuotationNumber,
			Status:          q.Status,
			SubmissionDate:  q.SubmissionDate,
			TotalAmount:     q.TotalAmount,
			Selected:        q.SupplierID == selected,
		}
		if q.Supplier != nil {
			row.SupplierName = q.Supplier.Name
		}
		rows = append(rows, row)
	}
	return rfq, rows, nil
}
