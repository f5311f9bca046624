package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgettracker/internal/profiles/memory"
	"budgettracker/internal/rates"
	"budgettracker/internal/services"
)

func newTestServer(src rates.Source) (*Server, *services.Session) {
	store := memory.New()
	session := services.NewSession()
	budget := services.NewBudgetService(store, src, nil)
	profileSvc := services.NewProfileService(store, session)
	return NewServer(":0", budget, profileSvc, session), session
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(nil)
	defer srv.rateLimiter.stop()

	rr := do(t, srv, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("health body = %s", rr.Body.String())
	}
}

func TestProfileLifecycle(t *testing.T) {
	srv, _ := newTestServer(nil)
	defer srv.rateLimiter.stop()

	// No profile selected yet.
	if rr := do(t, srv, http.MethodGet, "/profile", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("current profile before create = %d", rr.Code)
	}

	// Create makes the profile current.
	rr := do(t, srv, http.MethodPost, "/profiles", `{"username":"alice"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}

	// Duplicate username is rejected.
	rr = do(t, srv, http.MethodPost, "/profiles", `{"username":"alice"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d", rr.Code)
	}

	// Blank username is rejected.
	rr = do(t, srv, http.MethodPost, "/profiles", `{"username":"  "}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank create status = %d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/profiles", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "alice") {
		t.Fatalf("list = %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodPost, "/profiles/select", `{"username":"alice"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("select status = %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/profiles/select", `{"username":"ghost"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("select missing status = %d", rr.Code)
	}
}

func TestCommit(t *testing.T) {
	src := rates.StaticSource{Success: true, Rates: map[string]float64{"USD": 1.1, "EUR": 1.0}}
	srv, _ := newTestServer(src)
	defer srv.rateLimiter.stop()

	if rr := do(t, srv, http.MethodPost, "/profiles", `{"username":"bob"}`); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d", rr.Code)
	}

	// Commit without a selected profile fails with 409; create selected bob,
	// so this commits fine.
	body := `{"income_amount":"1000","income_period":"monthly","saving_amount":"200","saving_period":"weekly","currency":"USD"}`
	rr := do(t, srv, http.MethodPost, "/commit", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("commit status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Income   int    `json:"income"`
		Savings  int    `json:"savings"`
		Budget   int    `json:"budget"`
		Currency string `json:"currentCurrency"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Income != 230 || resp.Savings != 200 || resp.Budget != 30 {
		t.Errorf("income/savings/budget = %d/%d/%d, want 230/200/30", resp.Income, resp.Savings, resp.Budget)
	}
	if resp.Currency != "USD" {
		t.Errorf("currency = %q, want USD", resp.Currency)
	}
}

func TestCommit_Validation(t *testing.T) {
	srv, _ := newTestServer(nil)
	defer srv.rateLimiter.stop()

	// No current profile.
	body := `{"income_amount":"100","income_period":"weekly","currency":"EUR"}`
	if rr := do(t, srv, http.MethodPost, "/commit", body); rr.Code != http.StatusConflict {
		t.Fatalf("commit without profile = %d", rr.Code)
	}

	if rr := do(t, srv, http.MethodPost, "/profiles", `{"username":"carol"}`); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d", rr.Code)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"non numeric income", `{"income_amount":"12.5","income_period":"weekly","currency":"EUR"}`, http.StatusUnprocessableEntity},
		{"bad period", `{"income_amount":"100","income_period":"daily","currency":"EUR"}`, http.StatusUnprocessableEntity},
		{"saving mode bad saving", `{"income_amount":"100","income_period":"weekly","saving_amount":"x","saving_period":"weekly","currency":"EUR"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{`, http.StatusBadRequest},
		{"valid income only", `{"income_amount":"520","income_period":"yearly","currency":"EUR"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(t, srv, http.MethodPost, "/commit", tt.body); rr.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(nil)
	defer srv.rateLimiter.stop()

	if rr := do(t, srv, http.MethodDelete, "/profiles", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /profiles = %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodGet, "/commit", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /commit = %d", rr.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first requests within limit should pass")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request should be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other clients should not be affected")
	}
}
