package handler_test

import (
	"net/http"
	"testing"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/testutil"
)

func createTestRFQ(t *testing.T, env *testutil.TestEnv, token, number string) string {
	t.Helper()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs", map[string]interface{}{
		"rfq_number":          number,
		"title":               "Quarterly supply",
		"submission_deadline": "2026-09-30T17:00:00Z",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating rfq, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
}

// TestRFQLifecycle walks the linear status chain and rejects a skip
func TestRFQLifecycle(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	id := createTestRFQ(t, env, token, "RFQ-2026-0001")

	for _, status := range []string{"sent", "received", "evaluated"} {
		w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/rfqs/"+id+"/status",
			map[string]interface{}{"status": status}, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 moving to %s, got %d: %s", status, w.Code, w.Body.String())
		}
	}

	// evaluated is terminal
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/rfqs/"+id+"/status",
		map[string]interface{}{"status": "draft"}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 out of terminal status, got %d: %s", w.Code, w.Body.String())
	}

	// duplicate rfq number
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs", map[string]interface{}{
		"rfq_number":          "RFQ-2026-0001",
		"title":               "Duplicate",
		"submission_deadline": "2026-09-30T17:00:00Z",
	}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate rfq number, got %d: %s", w2.Code, w2.Body.String())
	}
}

// TestQuotationNumberUniquePerRFQ tests the composite uniqueness scope
func TestQuotationNumberUniquePerRFQ(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplierA := testutil.SeedSupplier(t, env.DB, "sup-a", "Alpha Metals")
	supplierB := testutil.SeedSupplier(t, env.DB, "sup-b", "Beta Metals")

	rfq1 := createTestRFQ(t, env, token, "RFQ-2026-0010")
	rfq2 := createTestRFQ(t, env, token, "RFQ-2026-0011")

	body := map[string]interface{}{
		"supplier_id":      supplierA.ID,
		"quotation_number": "Q-100",
		"total_amount":     "5400.00",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq1+"/quotations", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// same number within the same RFQ fails
	body["supplier_id"] = supplierB.ID
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq1+"/quotations", body, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate quotation number in rfq, got %d: %s", w2.Code, w2.Body.String())
	}

	// same number on a different RFQ is fine
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq2+"/quotations", body, token)
	if w3.Code != http.StatusCreated {
		t.Fatalf("expected 201 for same number on other rfq, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestQuotationReviewChain tests quotation status moves
func TestQuotationReviewChain(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-q", "Quota Traders")
	rfq := createTestRFQ(t, env, token, "RFQ-2026-0020")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/quotations", map[string]interface{}{
		"supplier_id":      supplier.ID,
		"quotation_number": "Q-200",
		"total_amount":     "980.00",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	qid := data["id"].(string)
	if data["status"] != "submitted" {
		t.Fatalf("expected new quotation submitted, got %v", data["status"])
	}

	// submitted -> accepted skips review
	w2 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supplier-quotations/"+qid+"/status",
		map[string]interface{}{"status": "accepted"}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for skipped review, got %d: %s", w2.Code, w2.Body.String())
	}

	for _, status := range []string{"under_review", "accepted"} {
		w3 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supplier-quotations/"+qid+"/status",
			map[string]interface{}{"status": status}, token)
		if w3.Code != http.StatusOK {
			t.Fatalf("expected 200 moving to %s, got %d: %s", status, w3.Code, w3.Body.String())
		}
	}
}

// TestBidAnalysisOnePerRFQ tests the one-to-one invariant and the weak
// supplier reference
func TestBidAnalysisOnePerRFQ(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	supplier := testutil.SeedSupplier(t, env.DB, "sup-sel", "Selected Co")
	rfq := createTestRFQ(t, env, token, "RFQ-2026-0030")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/analysis", map[string]interface{}{
		"recommendation":       "Selected Co offers best landed cost.",
		"selected_supplier_id": supplier.ID,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// second analysis for the same RFQ
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/analysis", map[string]interface{}{
		"recommendation": "Second opinion.",
	}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second analysis, got %d: %s", w2.Code, w2.Body.String())
	}

	// deleting the selected supplier clears the reference, keeps the analysis
	if err := env.DB.Delete(&entity.Supplier{}, "id = ?", supplier.ID).Error; err != nil {
		t.Fatalf("failed to delete supplier: %v", err)
	}

	w3 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/rfqs/"+rfq+"/analysis", nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected analysis to survive supplier deletion, got %d: %s", w3.Code, w3.Body.String())
	}
	data3 := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if data3["selected_supplier_id"] != nil {
		t.Fatalf("expected selected_supplier_id cleared, got %v", data3["selected_supplier_id"])
	}
}

// TestBidComparison tests the derived comparison rows and cheapest-first order
func TestBidComparison(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	cheap := testutil.SeedSupplier(t, env.DB, "sup-cheap", "Budget Supply")
	dear := testutil.SeedSupplier(t, env.DB, "sup-dear", "Premium Supply")
	rfq := createTestRFQ(t, env, token, "RFQ-2026-0040")

	for _, q := range []map[string]interface{}{
		{"supplier_id": dear.ID, "quotation_number": "Q-D1", "total_amount": "9100.00"},
		{"supplier_id": cheap.ID, "quotation_number": "Q-C1", "total_amount": "7600.50"},
	} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs/"+rfq+"/quotations", q, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/rfqs/"+rfq+"/comparison", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 comparison rows, got %d", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if first["supplier_name"] != "Budget Supply" {
		t.Fatalf("expected cheapest quotation first, got %v", first["supplier_name"])
	}

	// export renders a spreadsheet
	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/rfqs/"+rfq+"/comparison/export", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	if ct := w2.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("expected xlsx content type, got %s", ct)
	}
	if w2.Body.Len() == 0 {
		t.Fatal("expected non-empty spreadsheet body")
	}
}
