package service

import (
	"context"
	"time"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POService manages purchase orders, their line items, and the order
// total derived from them.
type POService struct {
	orders    *repository.PORepository
	rfqs      *repository.RFQRepository
	suppliers *repository.SupplierRepository
	items     *repository.ItemRepository
	logs      *repository.ActivityLogRepository
	seq       *NumberSequencer
}

func NewPOService(
	orders *repository.PORepository,
	rfqs *repository.RFQRepository,
	suppliers *repository.SupplierRepository,
	items *repository.ItemRepository,
	logs *repository.ActivityLogRepository,
	seq *NumberSequencer,
) *POService {
	return &POService{
		orders:    orders,
		rfqs:      rfqs,
		suppliers: suppliers,
		items:     items,
		logs:      logs,
		seq:       seq,
	}
}

// CreatePORequest carries a new purchase order. Dates are YYYY-MM-DD.
type CreatePORequest struct {
	PONumber         string  `json:"po_number"`
	SupplierID       string  `json:"supplier_id" binding:"required"`
	RequisitionID    *string `json:"purchase_requisition_id"`
	RFQID            *string `json:"rfq_id"`
	OrderDate        string  `json:"order_date" binding:"required"`
	ExpectedDelivery string  `json:"expected_delivery" binding:"required"`
}

// UpdatePORequest carries a partial order update.
type UpdatePORequest struct {
	SupplierID       *string `json:"supplier_id"`
	OrderDate        *string `json:"order_date"`
	ExpectedDelivery *string `json:"expected_delivery"`
}

func (s *POService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	return s.orders.FindAll(ctx, page, pageSize, filters)
}

func (s *POService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *POService) Create(ctx context.Context, userID string, req *CreatePORequest) (*entity.PurchaseOrder, error) {
	orderDate, err := time.Parse(dateLayout, req.OrderDate)
	if err != nil {
		return nil, &ValidationError{Field: "order_date", Reason: "must be YYYY-MM-DD"}
	}
	expectedDelivery, err := time.Parse(dateLayout, req.ExpectedDelivery)
	if err != nil {
		return nil, &ValidationError{Field: "expected_delivery", Reason: "must be YYYY-MM-DD"}
	}
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		return nil, refCheck(err, "supplier_id", req.SupplierID)
	}

	number := req.PONumber
	if number == "" {
		number, err = s.seq.Next(ctx, "PO", "purchase_orders", "po_number")
		if err != nil {
			return nil, err
		}
	}

	po := &entity.PurchaseOrder{
		ID:               uuid.New().String()[:32],
		PONumber:         number,
		SupplierID:       req.SupplierID,
		RequisitionID:    req.RequisitionID,
		RFQID:            req.RFQID,
		Status:           entity.POStatusDraft,
		OrderDate:        orderDate,
		ExpectedDelivery: expectedDelivery,
		CreatedBy:        userID,
	}
	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityPO, po.ID, po.PONumber,
		"create", "", entity.POStatusDraft, "purchase order created", userID)

	return po, nil
}

// ConvertRFQRequest carries the order details a conversion cannot
// derive from the RFQ itself.
type ConvertRFQRequest struct {
	PONumber         string `json:"po_number"`
	OrderDate        string `json:"order_date" binding:"required"`
	ExpectedDelivery string `json:"expected_delivery" binding:"required"`
}

// CreateFromRFQ drafts an order for the supplier an RFQ's bid analysis
// selected, carrying the requisition and RFQ traces.
func (s *POService) CreateFromRFQ(ctx context.Context, rfqID, userID string, req *ConvertRFQRequest) (*entity.PurchaseOrder, error) {
	rfq, err := s.rfqs.FindByID(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	if rfq.Analysis == nil || rfq.Analysis.SelectedSupplierID == nil {
		return nil, &ValidationError{Field: "rfq_id", Reason: "rfq has no bid analysis with a selected supplier"}
	}

	return s.Create(ctx, userID, &CreatePORequest{
		PONumber:         req.PONumber,
		SupplierID:       *rfq.Analysis.SelectedSupplierID,
		RequisitionID:    rfq.RequisitionID,
		RFQID:            &rfq.ID,
		OrderDate:        req.OrderDate,
		ExpectedDelivery: req.ExpectedDelivery,
	})
}

func (s *POService) Update(ctx context.Context, id string, req *UpdatePORequest) (*entity.PurchaseOrder, error) {
	po, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, *req.SupplierID); err != nil {
			return nil, refCheck(err, "supplier_id", *req.SupplierID)
		}
		po.SupplierID = *req.SupplierID
	}
	if req.OrderDate != nil {
		d, err := time.Parse(dateLayout, *req.OrderDate)
		if err != nil {
			return nil, &ValidationError{Field: "order_date", Reason: "must be YYYY-MM-DD"}
		}
		po.OrderDate = d
	}
	if req.ExpectedDelivery != nil {
		d, err := time.Parse(dateLayout, *req.ExpectedDelivery)
		if err != nil {
			return nil, &ValidationError{Field: "expected_delivery", Reason: "must be YYYY-MM-DD"}
		}
		po.ExpectedDelivery = d
	}

	s.detach(po)
	if err := s.orders.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// Transition moves an order along draft -> sent -> confirmed -> delivered
// or cancelled.
func (s *POService) Transition(ctx context.Context, id, target, userID string) (*entity.PurchaseOrder, error) {
	if !oneOf(target, []string{
		entity.POStatusDraft,
		entity.POStatusSent,
		entity.POStatusConfirmed,
		entity.POStatusDelivered,
		entity.POStatusCancelled,
	}) {
		return nil, &ValidationError{Field: "status", Reason: "unknown purchase order status"}
	}

	po, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(entity.ValidPOTransitions, po.Status, target) {
		return nil, &TransitionError{From: po.Status, To: target}
	}

	from := po.Status
	po.Status = target
	s.detach(po)
	if err := s.orders.Update(ctx, po); err != nil {
		return nil, err
	}

	s.logs.LogActivity(ctx, entity.ActivityPO, po.ID, po.PONumber,
		"status_change", from, target, "", userID)

	return po, nil
}

// Activity returns the order's audit trail, newest first.
func (s *POService) Activity(ctx context.Context, id string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.logs.FindByEntity(ctx, entity.ActivityPO, id, page, pageSize)
}

func (s *POService) Delete(ctx context.Context, id string) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// POItemRequest carries one order line. The line total is computed here,
// never taken from the caller.
type POItemRequest struct {
	ItemID      string          `json:"item_id" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

func (s *POService) ListItems(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	if _, err := s.orders.FindByID(ctx, poID); err != nil {
		return nil, err
	}
	return s.orders.FindItems(ctx, poID)
}

// AddItem appends a validated line and refreshes the order total.
func (s *POService) AddItem(ctx context.Context, poID string, req *POItemRequest) (*entity.PurchaseOrderItem, error) {
	if !req.Quantity.IsPositive() {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if !req.UnitPrice.IsPositive() {
		return nil, &ValidationError{Field: "unit_price", Reason: "must be greater than zero"}
	}
	if _, err := s.orders.FindByID(ctx, poID); err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, req.ItemID); err != nil {
		return nil, refCheck(err, "item_id", req.ItemID)
	}

	quantity := req.Quantity.Round(2)
	unitPrice := req.UnitPrice.Round(2)

	item := &entity.PurchaseOrderItem{
		ID:              uuid.New().String()[:32],
		PurchaseOrderID: poID,
		ItemID:          req.ItemID,
		Description:     req.Description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		LineTotal:       quantity.Mul(unitPrice).Round(2),
	}
	if err := s.orders.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.refreshTotal(ctx, poID); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem rewrites a line and refreshes the order total.
func (s *POService) UpdateItem(ctx context.Context, poID, itemID string, req *POItemRequest) (*entity.PurchaseOrderItem, error) {
	if !req.Quantity.IsPositive() {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if !req.UnitPrice.IsPositive() {
		return nil, &ValidationError{Field: "unit_price", Reason: "must be greater than zero"}
	}

	item, err := s.orders.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PurchaseOrderID != poID {
		return nil, repository.ErrNotFound
	}
	if _, err := s.items.FindByID(ctx, req.ItemID); err != nil {
		return nil, refCheck(err, "item_id", req.ItemID)
	}

	item.ItemID = req.ItemID
	item.Description = req.Description
	item.Quantity = req.Quantity.Round(2)
	item.UnitPrice = req.UnitPrice.Round(2)
	item.LineTotal = item.Quantity.Mul(item.UnitPrice).Round(2)
	item.Item = nil

	if err := s.orders.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.refreshTotal(ctx, poID); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a line and refreshes the order total.
func (s *POService) DeleteItem(ctx context.Context, poID, itemID string) error {
	item, err := s.orders.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PurchaseOrderID != poID {
		return repository.ErrNotFound
	}
	if err := s.orders.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	return s.refreshTotal(ctx, poID)
}

// refreshTotal recomputes the order total as the sum of its line totals.
func (s *POService) refreshTotal(ctx context.Context, poID string) error {
	items, err := s.orders.FindItems(ctx, poID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}

	po, err := s.orders.FindByID(ctx, poID)
	if err != nil {
		return err
	}
	po.TotalAmount = total.Round(2)
	s.detach(po)
	return s.orders.Update(ctx, po)
}

// detach drops preloaded associations so Save touches only the order row.
func (s *POService) detach(po *entity.PurchaseOrder) {
	po.Supplier = nil
	po.Requisition = nil
	po.RFQ = nil
	po.Items = nil
}
