package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/session"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi/middleware"
)

// StatementHandler serves the statement view and its filter operations.
// Each authenticated operator gets their own session from the manager.
type StatementHandler struct {
	sessions *session.Manager
	banks    *statement.Registry
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(sessions *session.Manager, banks *statement.Registry) *StatementHandler {
	return &StatementHandler{
		sessions: sessions,
		banks:    banks,
	}
}

func (h *StatementHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		respondError(w, "operator not authenticated", http.StatusUnauthorized)
		return nil, false
	}
	return h.sessions.Get(r.Context(), operatorID.String()), true
}

// GetView handles GET /statements. Loading the view fetches the current
// page fresh, the same way the dashboard refetches on mount.
func (h *StatementHandler) GetView(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.Refresh(r.Context())
	respondJSON(w, s.View(), http.StatusOK)
}

// BankRequest selects a bank
type BankRequest struct {
	BankID string `json:"bank_id"`
}

// SetBank handles PUT /statements/bank
func (h *StatementHandler) SetBank(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req BankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.BankID == "" {
		respondError(w, "bank_id is required", http.StatusBadRequest)
		return
	}

	if err := s.SetBank(r.Context(), req.BankID); err != nil {
		if errors.Is(err, statement.ErrUnknownBank) {
			respondError(w, "unknown bank", http.StatusNotFound)
			return
		}
		respondError(w, "failed to select bank", http.StatusInternalServerError)
		return
	}

	respondJSON(w, s.View(), http.StatusOK)
}

// SearchRequest applies a free-text search
type SearchRequest struct {
	Term string `json:"term"`
}

// SetSearch handles PUT /statements/search
func (h *StatementHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.SetSearch(r.Context(), req.Term)
	respondJSON(w, s.View(), http.StatusOK)
}

// ModeRequest applies a credit/debit filter
type ModeRequest struct {
	Mode string `json:"mode"`
}

// SetMode handles PUT /statements/mode
func (h *StatementHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.SetMode(r.Context(), filter.ParseMode(req.Mode))
	respondJSON(w, s.View(), http.StatusOK)
}

// PageRequest moves to a statement page
type PageRequest struct {
	Page int `json:"page"`
}

// SetPage handles PUT /statements/page
func (h *StatementHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.SetPage(r.Context(), req.Page)
	respondJSON(w, s.View(), http.StatusOK)
}

// SelectionRequest marks a transaction for detail inspection
type SelectionRequest struct {
	PTID string `json:"ptid"`
}

// Select handles POST /statements/selection
func (h *StatementHandler) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PTID == "" {
		respondError(w, "ptid is required", http.StatusBadRequest)
		return
	}

	if err := s.SelectByPTID(req.PTID); err != nil {
		if errors.Is(err, session.ErrNotOnPage) {
			respondError(w, "transaction not on current page", http.StatusNotFound)
			return
		}
		respondError(w, "failed to select transaction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearSelection handles DELETE /statements/selection
func (h *StatementHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// GetSelection handles GET /statements/selection
func (h *StatementHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	tx, found := s.Selected()
	if !found {
		respondError(w, "no transaction selected", http.StatusNotFound)
		return
	}

	respondJSON(w, tx, http.StatusOK)
}

// ListBanks handles GET /banks
func (h *StatementHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string][]string{"banks": h.banks.BankIDs()}, http.StatusOK)
}

// SetActiveBank handles PUT /banks/active. Bank-specific views announce
// themselves here; the hint only matters before an explicit selection.
func (h *StatementHandler) SetActiveBank(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req BankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.SetActiveBank(req.BankID)
	w.WriteHeader(http.StatusNoContent)
}
