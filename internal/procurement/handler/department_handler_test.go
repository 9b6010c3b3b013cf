package handler_test

import (
	"net/http"
	"testing"

	"github.com/bayscom/procurement/internal/procurement/testutil"
)

// TestDepartmentCRUD tests the department lifecycle end to end
func TestDepartmentCRUD(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	// Create
	body := map[string]interface{}{
		"name":        "Engineering",
		"code":        "ENG",
		"description": "Product engineering",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/departments", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["is_active"] != true {
		t.Fatalf("expected new department active, got %v", data["is_active"])
	}

	// Get
	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/departments/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// Update
	w3 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/departments/"+id,
		map[string]interface{}{"description": "Hardware and firmware"}, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	resp3 := testutil.ParseResponse(w3)
	if resp3["data"].(map[string]interface{})["description"] != "Hardware and firmware" {
		t.Fatal("expected description to be updated")
	}

	// Deactivate
	w4 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/departments/"+id+"/deactivate", nil, token)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	resp4 := testutil.ParseResponse(w4)
	if resp4["data"].(map[string]interface{})["is_active"] != false {
		t.Fatal("expected department to be inactive after deactivation")
	}

	// List
	w5 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/departments?is_active=false", nil, token)
	if w5.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w5.Code, w5.Body.String())
	}
	resp5 := testutil.ParseResponse(w5)
	items := resp5["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 inactive department, got %d", len(items))
	}
}

// TestDepartmentUniqueNaturalKeys tests that duplicate code and name are rejected
func TestDepartmentUniqueNaturalKeys(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{"name": "Finance", "code": "FIN"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/departments", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same code, different name
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/departments",
		map[string]interface{}{"name": "Financial Ops", "code": "FIN"}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	if resp2["code"].(float64) != 40900 {
		t.Fatalf("expected code 40900, got %v", resp2["code"])
	}

	// Same name, different code
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/departments",
		map[string]interface{}{"name": "Finance", "code": "FIN2"}, token)
	if w3.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestDepartmentNotFound tests the 404 path
func TestDepartmentNotFound(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/departments/no-such-id", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestDepartmentRequiresAuth tests that the API rejects missing tokens
func TestDepartmentRequiresAuth(t *testing.T) {
	env := testutil.SetupEnv(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/departments", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
