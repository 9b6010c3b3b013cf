package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/bayscom/procurement/internal/procurement/entity"
	"github.com/bayscom/procurement/internal/procurement/testutil"
)

// TestRequisitionWorkflow walks a requisition from draft to approved
func TestRequisitionWorkflow(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-001", "Operations", "OPS")

	body := map[string]interface{}{
		"requisition_number": "PR-2026-0100",
		"title":              "Warehouse racking",
		"department_id":      dept.ID,
		"request_date":       "2026-08-01",
		"required_date":      "2026-09-15",
		"estimated_total":    "25000.00",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["status"] != "draft" {
		t.Fatalf("expected new requisition in draft, got %v", data["status"])
	}

	// draft -> submitted
	w2 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requisitions/"+id+"/status",
		map[string]interface{}{"status": "submitted"}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// submitted -> approved
	w3 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requisitions/"+id+"/status",
		map[string]interface{}{"status": "approved"}, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	resp3 := testutil.ParseResponse(w3)
	if resp3["data"].(map[string]interface{})["status"] != "approved" {
		t.Fatal("expected requisition approved")
	}

	// approved is terminal
	w4 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requisitions/"+id+"/status",
		map[string]interface{}{"status": "draft"}, token)
	if w4.Code != http.StatusConflict {
		t.Fatalf("expected 409 for transition out of terminal status, got %d: %s", w4.Code, w4.Body.String())
	}

	// the trail records the creation plus both transitions, newest first
	w5 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-requisitions/"+id+"/activity", nil, token)
	if w5.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w5.Code, w5.Body.String())
	}
	resp5 := testutil.ParseResponse(w5)
	logs := resp5["data"].(map[string]interface{})["items"].([]interface{})
	if len(logs) != 3 {
		t.Fatalf("expected 3 activity entries, got %d", len(logs))
	}
	latest := logs[0].(map[string]interface{})
	if latest["action"] != "status_change" || latest["to_status"] != "approved" {
		t.Fatalf("expected latest entry to record approval, got %v", latest)
	}
	if logs[2].(map[string]interface{})["action"] != "create" {
		t.Fatal("expected earliest entry to record creation")
	}
}

// TestRequisitionTransitionRejections tests skipping and unknown statuses
func TestRequisitionTransitionRejections(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-002", "Logistics", "LOG")

	body := map[string]interface{}{
		"requisition_number": "PR-2026-0101",
		"title":              "Pallet jacks",
		"department_id":      dept.ID,
		"request_date":       "2026-08-01",
		"required_date":      "2026-08-20",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// draft -> approved skips submitted
	w2 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requisitions/"+id+"/status",
		map[string]interface{}{"status": "approved"}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for skipped transition, got %d: %s", w2.Code, w2.Body.String())
	}

	// unknown status value
	w3 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requisitions/"+id+"/status",
		map[string]interface{}{"status": "archived"}, token)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestRequisitionNumberGeneration tests the sequencer fallback path
func TestRequisitionNumberGeneration(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-003", "Facilities", "FAC")

	body := map[string]interface{}{
		"title":         "Office chairs",
		"department_id": dept.ID,
		"request_date":  "2026-08-01",
		"required_date": "2026-08-30",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	number := testutil.ParseResponse(w)["data"].(map[string]interface{})["requisition_number"].(string)
	if !strings.HasPrefix(number, "PR-") || !strings.HasSuffix(number, "-0001") {
		t.Fatalf("expected generated number PR-<year>-0001, got %s", number)
	}

	// second create increments
	body["title"] = "Standing desks"
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	number2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})["requisition_number"].(string)
	if !strings.HasSuffix(number2, "-0002") {
		t.Fatalf("expected second number to end in -0002, got %s", number2)
	}
}

// TestRequisitionReferences tests duplicate number and missing department
func TestRequisitionReferences(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-004", "IT", "IT")

	body := map[string]interface{}{
		"requisition_number": "PR-2026-0200",
		"title":              "Laptops",
		"department_id":      dept.ID,
		"request_date":       "2026-08-01",
		"required_date":      "2026-08-30",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// duplicate requisition number
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate number, got %d: %s", w2.Code, w2.Body.String())
	}

	// nonexistent department
	body["requisition_number"] = "PR-2026-0201"
	body["department_id"] = "no-such-dept"
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", body, token)
	if w3.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing department, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestRequisitionDeleteCascadesRFQs tests that derived RFQs go with their requisition
func TestRequisitionDeleteCascadesRFQs(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	dept := testutil.SeedDepartment(t, env.DB, "dept-005", "Procurement", "PRC")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requisitions", map[string]interface{}{
		"requisition_number": "PR-2026-0300",
		"title":              "Generator fuel",
		"department_id":      dept.ID,
		"request_date":       "2026-08-01",
		"required_date":      "2026-08-10",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	reqID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/rfqs", map[string]interface{}{
		"rfq_number":              "RFQ-2026-0300",
		"title":                   "Fuel supply quotes",
		"purchase_requisition_id": reqID,
		"submission_deadline":     "2026-08-05T17:00:00Z",
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	rfqID := testutil.ParseResponse(w2)["data"].(map[string]interface{})["id"].(string)

	w3 := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/purchase-requisitions/"+reqID, nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}

	var count int64
	env.DB.Model(&entity.RequestForQuotation{}).Where("id = ?", rfqID).Count(&count)
	if count != 0 {
		t.Fatal("expected derived RFQ to be deleted with its requisition")
	}
}
