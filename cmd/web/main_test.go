package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commerce-dashboard/internal/config"
	"commerce-dashboard/internal/dataset"
	"commerce-dashboard/internal/middleware"
	"commerce-dashboard/internal/server"
	"commerce-dashboard/internal/services"
)

var fixtureFiles = map[string]string{
	"fact_table.csv": "payment_key,coustomer_key,time_key,item_key,store_key,quantity,unit,unit_price,total_price\n" +
		"P1,C1,T1,I1,S1,2,pcs,10,20\n" +
		"P2,C2,T2,I2,S2,1,pcs,15,15\n" +
		"P1,C1,T2,I2,S1,3,pcs,15,45\n",
	"customer_dim.csv": "coustomer_key,name,contact_no,nid\nC1,Alice,1,1\nC2,Bob,2,2\n",
	"item_dim.csv": "item_key,item_name,desc,unit_price,man_country,supplier,unit\n" +
		"I1,Chips,Food - Snacks,10,Bangladesh,Acme,pcs\n" +
		"I2,Soap,Kitchen Supplies,15,India,Bolt,pcs\n",
	"store_dim.csv": "store_key,division,district,upazila\nS1,Dhaka,Dhaka,Savar\nS2,Sylhet,Sylhet,Beanibazar\n",
	"time_dim.csv": "time_key,date,hour,day,week,month,quarter,year\n" +
		"T1,04-01-2021 10:15,10,4,1st Week,1,Q1,2021\n" +
		"T2,15-03-2021 18:40,18,15,3rd Week,3,Q1,2021\n",
	"Trans_dim.csv": "payment_key,trans_type,bank_name\nP1,card,AB Bank Limited\nP2,cash,None\n",
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtureFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func loadFixtures(t *testing.T) *services.Dashboard {
	t.Helper()
	cfg := config.DataConfig{
		Dir:             writeFixtures(t),
		FactFile:        "fact_table.csv",
		CustomerFile:    "customer_dim.csv",
		ItemFile:        "item_dim.csv",
		StoreFile:       "store_dim.csv",
		TimeFile:        "time_dim.csv",
		TransactionFile: "Trans_dim.csv",
	}
	d, err := services.Load(context.Background(), sources(cfg), dataset.NewSnapshot(""), quietLogger())
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	return d
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := quietLogger()
	dashboard := loadFixtures(t)
	srv := server.NewServer(dashboard, logger, &server.TemplateHandlers{Dashboard: dashboardPage(dashboard)})

	security := config.SecurityConfig{EnableRateLimit: true, RateLimitRPS: 100, RateLimitBurst: 100}
	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(security),
		middleware.TrustedProxy(security),
		middleware.RateLimit(middleware.NewRateLimiter(security), logger),
	)
	return chain(srv)
}

func TestServer_Routes(t *testing.T) {
	handler := newHandler(t)

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/options", http.StatusOK, "application/json"},
		{"/api/dashboard", http.StatusOK, "application/json"},
		{"/api/dashboard?division=Dhaka&payment=card", http.StatusOK, "application/json"},
		{"/api/dashboard?from=2021-13-01", http.StatusBadRequest, "application/json"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/nope", http.StatusNotFound, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			handler.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

func TestServer_DashboardFromCSV(t *testing.T) {
	handler := newHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/dashboard", nil))

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Empty        bool   `json:"empty"`
			Transactions string `json:"transactions"`
			DateRange    string `json:"dateRange"`
			KPIs         []struct {
				ID    string `json:"id"`
				Value string `json:"value"`
			} `json:"kpis"`
			Summary struct {
				Insights      []string `json:"insights"`
				Opportunities []string `json:"opportunities"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if !response.Success || response.Data.Empty {
		t.Fatalf("expected a populated view, got %+v", response)
	}
	if response.Data.Transactions != "3" {
		t.Errorf("transactions = %s, want 3", response.Data.Transactions)
	}
	if response.Data.DateRange != "2021-01-04 to 2021-03-15" {
		t.Errorf("date range = %q", response.Data.DateRange)
	}

	kpis := make(map[string]string)
	for _, k := range response.Data.KPIs {
		kpis[k.ID] = k.Value
	}
	if kpis["revenue"] != "$80" {
		t.Errorf("revenue = %q, want $80", kpis["revenue"])
	}
	if kpis["aov"] != "$26.67" {
		t.Errorf("aov = %q, want $26.67", kpis["aov"])
	}

	wantInsights := []string{"Total Revenue: $80", "Top Division: Dhaka", "Peak Sales Day: Monday"}
	for i, want := range wantInsights {
		if response.Data.Summary.Insights[i] != want {
			t.Errorf("insight %d = %q, want %q", i, response.Data.Summary.Insights[i], want)
		}
	}
	if got := response.Data.Summary.Opportunities[2]; got != "Payment Preference: Card" {
		t.Errorf("payment preference = %q", got)
	}
}

func TestServer_SSEDashboard(t *testing.T) {
	handler := newHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", `/sse/dashboard?datastar=%7B%22divisions%22%3A%5B%22Sylhet%22%5D%7D`, nil)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("cache-control = %q, want 'no-cache'", cc)
	}
	if !strings.Contains(w.Body.String(), "1 transactions") {
		t.Error("expected the Sylhet slice to hold one transaction")
	}
}

func TestServer_ErrorHandling(t *testing.T) {
	handler := newHandler(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/api/dashboard", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
		{"DELETE", "/health", http.StatusMethodNotAllowed},
		{"PATCH", "/api/options", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			handler.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestDashboardTemplate(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	dashboardPage(loadFixtures(t))(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	expected := []string{
		"E-Commerce Analytics Dashboard",
		"Dashboard Controls",
		"Revenue Trends &amp; Performance",
		"Payment Analytics",
		`value="Dhaka"`,
		`value="cash"`,
		`min="2021-01-04"`,
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard should contain '%s'", want)
		}
	}
}

func TestLogLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"load error", fmt.Errorf("load tables: %w", &dataset.LoadError{File: "x.csv", Err: os.ErrNotExist}), "failed to load data file"},
		{"schema error", fmt.Errorf("unify tables: %w", &dataset.SchemaError{Table: "item_dim", Column: "desc", Reason: "missing required column"}), "invalid data schema"},
		{"other", context.DeadlineExceeded, "failed to prepare dataset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logLoadFailure(slog.New(slog.NewTextHandler(&buf, nil)), tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := writeFixtures(t)
	if err := os.Remove(filepath.Join(dir, "store_dim.csv")); err != nil {
		t.Fatal(err)
	}

	_, err := services.Load(context.Background(), dataset.SourcesIn(dir), nil, quietLogger())
	if err == nil {
		t.Fatal("expected an error for a missing table")
	}
	if !strings.Contains(err.Error(), "store_dim.csv") {
		t.Errorf("error should name the missing file: %v", err)
	}
}
