package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce-dashboard/internal/presentation"
	"commerce-dashboard/internal/services"
)

type viewResponse struct {
	Success bool              `json:"success"`
	Data    presentation.View `json:"data"`
}

func TestNewAPIHandlers(t *testing.T) {
	dashboard := createTestDashboard()
	handlers := NewAPIHandlers(dashboard, testLogger())

	if handlers == nil {
		t.Fatal("NewAPIHandlers() returned nil")
	}
	if handlers.dashboard != dashboard {
		t.Error("NewAPIHandlers() should set dashboard field")
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	handlers := NewAPIHandlers(createTestDashboard(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	w := httptest.NewRecorder()
	handlers.HandleOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != cacheMaxAge {
		t.Errorf("expected Cache-Control %q, got %q", cacheMaxAge, got)
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    services.Options `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Divisions) != 2 || resp.Data.Divisions[0] != "Dhaka" {
		t.Errorf("unexpected divisions: %v", resp.Data.Divisions)
	}
	if len(resp.Data.PaymentMethods) != 3 {
		t.Errorf("expected 3 payment methods, got %v", resp.Data.PaymentMethods)
	}
	if resp.Data.MinDate != "2021-01-04" || resp.Data.MaxDate != "2021-03-15" {
		t.Errorf("unexpected date span: %s..%s", resp.Data.MinDate, resp.Data.MaxDate)
	}
}

func TestAPIHandlers_HandleDashboard(t *testing.T) {
	handlers := NewAPIHandlers(createTestDashboard(), testLogger())

	tests := []struct {
		name         string
		query        string
		transactions string
		empty        bool
	}{
		{"no filter", "", "3", false},
		{"single division", "?division=Dhaka", "2", false},
		{"two payments", "?payment=card&payment=cash", "2", false},
		{"date range", "?from=2021-02-01&to=2021-02-28", "1", false},
		{"inverted range", "?from=2021-03-01&to=2021-01-01", "0", true},
		{"unknown division", "?division=Rangpur", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleDashboard(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var resp viewResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !resp.Success {
				t.Error("expected success=true")
			}
			if resp.Data.Transactions != tt.transactions {
				t.Errorf("expected %s transactions, got %s", tt.transactions, resp.Data.Transactions)
			}
			if resp.Data.Empty != tt.empty {
				t.Errorf("expected empty=%v, got %v", tt.empty, resp.Data.Empty)
			}
			if tt.empty && resp.Data.Message != presentation.NoDataMessage {
				t.Errorf("expected no-data message, got %q", resp.Data.Message)
			}
			if !tt.empty && len(resp.Data.Charts) == 0 {
				t.Error("expected charts for a non-empty view")
			}
		})
	}
}

func TestAPIHandlers_HandleDashboard_BadDate(t *testing.T) {
	handlers := NewAPIHandlers(createTestDashboard(), testLogger())

	for _, query := range []string{"?from=04-01-2021", "?to=yesterday"} {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard"+query, nil)
		w := httptest.NewRecorder()
		handlers.HandleDashboard(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", query, http.StatusBadRequest, w.Code)
		}

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Details string `json:"details"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Success || resp.Error.Code != "BAD_REQUEST" {
			t.Errorf("%s: unexpected envelope %+v", query, resp)
		}
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestDashboard(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", resp.Data["status"])
	}
}

func TestAPIHandlers_HandleHealthEmpty(t *testing.T) {
	handlers := NewAPIHandlers(services.NewDashboard(nil, testLogger()), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	dashboard := createTestDashboard()
	handlers := NewAPIHandlers(dashboard, testLogger())

	handlers.HandleDashboard(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	w := httptest.NewRecorder()
	handlers.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data["record_count"] != float64(3) {
		t.Errorf("expected record_count 3, got %v", resp.Data["record_count"])
	}
	if resp.Data["compute_passes"] != float64(1) {
		t.Errorf("expected compute_passes 1, got %v", resp.Data["compute_passes"])
	}
}

func TestBuildFilter_DropsBlankValues(t *testing.T) {
	f, err := buildFilter("", "", []string{"", "Dhaka"}, []string{""})
	if err != nil {
		t.Fatalf("buildFilter() failed: %v", err)
	}
	if len(f.Divisions) != 1 || f.Divisions[0] != "Dhaka" {
		t.Errorf("unexpected divisions %v", f.Divisions)
	}
	if f.PaymentMethods != nil {
		t.Errorf("expected no payment filter, got %v", f.PaymentMethods)
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		t.Error("expected open date bounds")
	}
}
