package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"budgettracker/internal/core"
	"budgettracker/internal/profiles"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleProfiles lists profiles on GET and creates one on POST.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		names, err := s.profileSvc.List(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "List profiles failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list profiles")
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": names})

	case http.MethodPost:
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p, err := s.profileSvc.Create(r.Context(), req.Username)
		switch {
		case errors.Is(err, profiles.ErrExists):
			writeError(w, http.StatusConflict, "username already created")
		case errors.Is(err, core.ErrEmptyUsername):
			writeError(w, http.StatusUnprocessableEntity, "username required")
		case err != nil:
			slog.ErrorContext(r.Context(), "Create profile failed", "username", req.Username, "error", err)
			writeError(w, http.StatusInternalServerError, "could not create profile")
		default:
			writeJSON(w, http.StatusCreated, profileView(p))
		}

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.profileSvc.Select(r.Context(), req.Username)
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		writeError(w, http.StatusNotFound, "profile not found")
	case err != nil:
		slog.ErrorContext(r.Context(), "Select profile failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "could not select profile")
	default:
		writeJSON(w, http.StatusOK, profileView(p))
	}
}

func (s *Server) handleCurrentProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	p := s.session.Current()
	if p == nil {
		writeError(w, http.StatusNotFound, "no profile selected")
		return
	}
	writeJSON(w, http.StatusOK, profileView(p))
}

// commitRequest is the budget entry screen payload. Amounts arrive as the raw
// field text; an empty saving_amount selects income-only mode.
type commitRequest struct {
	IncomeAmount string `json:"income_amount"`
	IncomePeriod string `json:"income_period"`
	SavingAmount string `json:"saving_amount"`
	SavingPeriod string `json:"saving_period"`
	Currency     string `json:"currency"`
	Symbol       string `json:"symbol"`
}

// handleCommit applies a budget entry to the session's current profile.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := s.session.Current()
	if profile == nil {
		writeError(w, http.StatusConflict, "no profile selected")
		return
	}

	form := core.EntryForm{
		IncomeAmount: req.IncomeAmount,
		IncomePeriod: core.Period(req.IncomePeriod),
		SavingAmount: req.SavingAmount,
		SavingPeriod: core.Period(req.SavingPeriod),
		Currency:     req.Currency,
		Symbol:       req.Symbol,
	}
	if !form.CanSubmit() {
		writeError(w, http.StatusUnprocessableEntity, "entry is not submittable")
		return
	}
	if form.Currency == "" {
		form.Currency = profile.Currency()
	}

	entry, err := form.Entry()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.budget.Commit(r.Context(), entry, profile); err != nil {
		// The in-memory profile is already mutated; the client must re-select
		// the profile before retrying navigation.
		slog.ErrorContext(r.Context(), "Commit failed", "profile", profile.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "could not persist profile")
		return
	}

	writeJSON(w, http.StatusOK, profileView(profile))
}

func profileView(p *core.Profile) map[string]any {
	expenses := make([]map[string]any, 0, len(p.Expenses))
	for _, e := range p.Expenses {
		expenses = append(expenses, map[string]any{
			"name":     e.Name,
			"category": e.Category,
			"cost":     e.Cost,
		})
	}
	return map[string]any{
		"identity":        p.Name,
		"income":          p.Income,
		"savings":         p.Savings,
		"budget":          p.Budget,
		"currentCurrency": p.CurrentCurrency,
		"currencySymbol":  p.CurrencySymbol,
		"expenses":        expenses,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
