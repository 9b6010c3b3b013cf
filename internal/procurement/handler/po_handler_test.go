package handler_test

import (
	"net/http"
	"testing"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/testutil"
)

func createTestPO(t *testing.T, env *testutil.TestEnv, token, number, supplierID string) string {
	t.Helper()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders", map[string]interface{}{
		"po_number":         number,
		"supplier_id":       supplierID,
		"order_date":        "2026-08-10",
		"expected_delivery": "2026-09-10",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating po, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
}

// TestPOLineItemValidation tests the strictly-positive quantity and price rules
func TestPOLineItemValidation(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-po1", "Line Item Supply")
	cat := testutil.SeedCategory(t, env.DB, "cat-po1", "Consumables")
	item := testutil.SeedItem(t, env.DB, "item-po1", "CON-001", "Printer paper", cat.ID)

	poID := createTestPO(t, env, token, "PO-2026-0001", supplier.ID)

	// zero quantity
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": item.ID, "quantity": "0", "unit_price": "4.50"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d: %s", w.Code, w.Body.String())
	}

	// negative unit price
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": item.ID, "quantity": "10", "unit_price": "-4.50"}, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d: %s", w2.Code, w2.Body.String())
	}

	// smallest representable positive values succeed
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": item.ID, "quantity": "0.01", "unit_price": "0.01"}, token)
	if w3.Code != http.StatusCreated {
		t.Fatalf("expected 201 for 0.01 boundary, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestPOTotalsFollowLineItems tests line total derivation and order total upkeep
func TestPOTotalsFollowLineItems(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-po2", "Totals Supply")
	cat := testutil.SeedCategory(t, env.DB, "cat-po2", "Hardware")
	bolt := testutil.SeedItem(t, env.DB, "item-bolt", "HW-001", "M6 bolt", cat.ID)
	nut := testutil.SeedItem(t, env.DB, "item-nut", "HW-002", "M6 nut", cat.ID)

	poID := createTestPO(t, env, token, "PO-2026-0002", supplier.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": bolt.ID, "quantity": "100", "unit_price": "0.35"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	line := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if line["line_total"] != "35" {
		t.Fatalf("expected line_total 35, got %v", line["line_total"])
	}
	lineID := line["id"].(string)

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": nut.ID, "quantity": "100", "unit_price": "0.15"}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}

	// order total is the sum of line totals
	w3 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-orders/"+poID, nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	po := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if po["total_amount"] != "50" {
		t.Fatalf("expected total_amount 50, got %v", po["total_amount"])
	}

	// updating a line recomputes both totals
	w4 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-orders/"+poID+"/items/"+lineID,
		map[string]interface{}{"item_id": bolt.ID, "quantity": "200", "unit_price": "0.35"}, token)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	// removing a line shrinks the total
	w5 := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/purchase-orders/"+poID+"/items/"+lineID, nil, token)
	if w5.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w5.Code, w5.Body.String())
	}

	w6 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-orders/"+poID, nil, token)
	po6 := testutil.ParseResponse(w6)["data"].(map[string]interface{})
	if po6["total_amount"] != "15" {
		t.Fatalf("expected total_amount 15 after delete, got %v", po6["total_amount"])
	}
}

// TestPODeleteCascadesItems tests that order deletion removes its lines
func TestPODeleteCascadesItems(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-po3", "Cascade Supply")
	cat := testutil.SeedCategory(t, env.DB, "cat-po3", "Tools")
	item := testutil.SeedItem(t, env.DB, "item-po3", "TL-001", "Torque wrench", cat.ID)

	poID := createTestPO(t, env, token, "PO-2026-0003", supplier.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/items",
		map[string]interface{}{"item_id": item.ID, "quantity": "2", "unit_price": "89.99"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/purchase-orders/"+poID, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	var count int64
	env.DB.Model(&entity.PurchaseOrderItem{}).Where("purchase_order_id = ?", poID).Count(&count)
	if count != 0 {
		t.Fatalf("expected line items deleted with their order, %d remain", count)
	}
}

// TestPOUpstreamTracesCleared tests that deleting the requisition and RFQ
// behind an order clears the traces but keeps the order
func TestPOUpstreamTracesCleared(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-po", "Maintenance", "MNT")
	supplier := testutil.SeedSupplier(t, env.DB, "sup-po4", "Trace Supply")

	// requisition -> rfq -> po chain
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", map[string]interface{}{
		"requisition_number": "PR-2026-0900",
		"title":              "Spare parts",
		"department_id":      dept.ID,
		"request_date":       "2026-08-01",
		"required_date":      "2026-08-30",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	reqID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs", map[string]interface{}{
		"rfq_number":              "RFQ-2026-0900",
		"title":                   "Spare part quotes",
		"purchase_requisition_id": reqID,
		"submission_deadline":     "2026-08-15T17:00:00Z",
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	rfqID := testutil.ParseResponse(w2)["data"].(map[string]interface{})["id"].(string)

	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders", map[string]interface{}{
		"po_number":               "PO-2026-0900",
		"supplier_id":             supplier.ID,
		"purchase_requisition_id": reqID,
		"rfq_id":                  rfqID,
		"order_date":              "2026-08-20",
		"expected_delivery":       "2026-09-20",
	}, token)
	if w3.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w3.Code, w3.Body.String())
	}
	poID := testutil.ParseResponse(w3)["data"].(map[string]interface{})["id"].(string)

	// deleting the requisition also removes the derived RFQ; the order
	// survives with both traces cleared
	w4 := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/purchase-requisitions/"+reqID, nil, token)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	w5 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-orders/"+poID, nil, token)
	if w5.Code != http.StatusOK {
		t.Fatalf("expected order to survive, got %d: %s", w5.Code, w5.Body.String())
	}
	po := testutil.ParseResponse(w5)["data"].(map[string]interface{})
	if po["purchase_requisition_id"] != nil {
		t.Fatalf("expected requisition trace cleared, got %v", po["purchase_requisition_id"])
	}
	if po["rfq_id"] != nil {
		t.Fatalf("expected rfq trace cleared, got %v", po["rfq_id"])
	}
}

// TestPOFulfillmentChain tests order status moves including cancellation
func TestPOFulfillmentChain(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-po5", "Chain Supply")
	poID := createTestPO(t, env, token, "PO-2026-0005", supplier.ID)

	for _, status := range []string{"sent", "confirmed", "cancelled"} {
		w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-orders/"+poID+"/status",
			map[string]interface{}{"status": status}, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 moving to %s, got %d: %s", status, w.Code, w.Body.String())
		}
	}

	// cancelled is terminal
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-orders/"+poID+"/status",
		map[string]interface{}{"status": "sent"}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 out of terminal status, got %d: %s", w.Code, w.Body.String())
	}
}

// TestPOFromRFQ tests conversion using the bid analysis selection
func TestPOFromRFQ(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-po6", "Winner Supply")
	rfq := createTestRFQ(t, env, token, "RFQ-2026-0950")

	// conversion without an analysis fails
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/purchase-orders",
		map[string]interface{}{"order_date": "2026-09-01", "expected_delivery": "2026-10-01"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without analysis, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/analysis", map[string]interface{}{
		"recommendation":       "Winner Supply on price and lead time.",
		"selected_supplier_id": supplier.ID,
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/purchase-orders",
		map[string]interface{}{"order_date": "2026-09-01", "expected_delivery": "2026-10-01"}, token)
	if w3.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w3.Code, w3.Body.String())
	}
	po := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if po["supplier_id"] != supplier.ID {
		t.Fatalf("expected supplier from analysis, got %v", po["supplier_id"])
	}
	if po["rfq_id"] != rfq {
		t.Fatalf("expected rfq trace on converted order, got %v", po["rfq_id"])
	}
	if po["status"] != "draft" {
		t.Fatalf("expected converted order in draft, got %v", po["status"])
	}
}
