package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/export"
)

// ExportCSV handles GET /statements/export. It projects the currently
// loaded page into the download layout; an empty view yields 404 so the
// dashboard can show its empty state instead of a blank file.
func (h *StatementHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	view := s.View()
	if len(view.Transactions) == 0 {
		respondError(w, "no transactions to export", http.StatusNotFound)
		return
	}

	rows := export.Project(view.Transactions)
	filename := export.Filename(s.Route(), time.Now())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := export.WriteCSV(w, rows); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
