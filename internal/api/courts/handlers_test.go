package courts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openfield/courtbook/internal/booking"
	"github.com/openfield/courtbook/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	svc := booking.NewService(booking.ServiceConfig{Store: database.Store})

	// Handlers hold package-level state, so rebind directly per test.
	service = svc

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/courts", HandleCreateCourt)
	mux.HandleFunc("GET /api/v1/courts", HandleListCourts)
	mux.HandleFunc("GET /api/v1/courts/{id}", HandleGetCourt)
	mux.HandleFunc("POST /api/v1/courts/{id}/maintenance", HandleSetMaintenance)
	mux.HandleFunc("POST /api/v1/courts/{id}/available", HandleSetAvailable)
	mux.HandleFunc("POST /api/v1/courts/{id}/inactive", HandleSetInactive)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createCourt(t *testing.T, server *httptest.Server) courtResponse {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/v1/courts", map[string]any{
		"name":         "Center Court",
		"type":         "padel",
		"capacity":     4,
		"hourly_price": 25.0,
		"location":     "Building B",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create court: status %d", resp.StatusCode)
	}
	var court courtResponse
	decodeBody(t, resp, &court)
	return court
}

func TestHandleCreateCourt(t *testing.T) {
	server := newTestServer(t)

	court := createCourt(t, server)
	if court.ID == 0 {
		t.Fatal("court id not assigned")
	}
	if court.Status != "available" || !court.Active {
		t.Fatalf("new court defaults: status=%s active=%v", court.Status, court.Active)
	}
	if court.ReservationCount != nil {
		t.Fatal("reservation_count must be omitted on create")
	}
}

func TestHandleCreateCourt_Invalid(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/courts", map[string]any{
		"name":     "Mystery Court",
		"type":     "cricket",
		"capacity": 4,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown type: status %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/v1/courts", map[string]any{
		"name": "No Capacity",
		"type": "tennis",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing capacity: status %d, want 400", resp.StatusCode)
	}
}

func TestHandleGetCourt(t *testing.T) {
	server := newTestServer(t)
	court := createCourt(t, server)

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/courts/%d", server.URL, court.ID))
	if err != nil {
		t.Fatalf("get court: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get court: status %d", resp.StatusCode)
	}

	var loaded courtResponse
	decodeBody(t, resp, &loaded)
	if loaded.Name != "Center Court" {
		t.Fatalf("name: got %s", loaded.Name)
	}
	if loaded.ReservationCount == nil || *loaded.ReservationCount != 0 {
		t.Fatalf("reservation_count: got %v, want 0", loaded.ReservationCount)
	}
}

func TestHandleGetCourt_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/courts/9999")
	if err != nil {
		t.Fatalf("get court: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
}

func TestHandleListCourts(t *testing.T) {
	server := newTestServer(t)
	createCourt(t, server)

	resp, err := http.Get(server.URL + "/api/v1/courts")
	if err != nil {
		t.Fatalf("list courts: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list courts: status %d", resp.StatusCode)
	}

	var courts []courtResponse
	decodeBody(t, resp, &courts)
	if len(courts) != 1 {
		t.Fatalf("courts: got %d, want 1", len(courts))
	}
}

func TestHandleCourtStatusActions(t *testing.T) {
	server := newTestServer(t)
	court := createCourt(t, server)

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/courts/%d/maintenance", server.URL, court.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("maintenance: status %d", resp.StatusCode)
	}
	var updated courtResponse
	decodeBody(t, resp, &updated)
	if updated.Status != "maintenance" {
		t.Fatalf("status after maintenance: %s", updated.Status)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/v1/courts/%d/available", server.URL, court.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("available: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &updated)
	if updated.Status != "available" {
		t.Fatalf("status after available: %s", updated.Status)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/v1/courts/%d/inactive", server.URL, 9999), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown court: status %d, want 404", resp.StatusCode)
	}
}
