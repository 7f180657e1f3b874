package http

import (
	"encoding/json"
	"net/http"
	"time"

	applog "despesas/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}

// handleIndex renders the expense table with filters, totals and forms.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	filter := parseFilter(r)
	items := s.book.Filtered(filter)
	totals := s.book.Totals()
	filtered := s.book.FilteredTotals(filter)
	months := s.book.Months()

	view := buildIndexView(items, totals, filtered, months, filter, r.URL.Query().Get("aviso"), r.URL.Query().Get("erro"))

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		s.logger.Error("Failed rendering index",
			applog.FieldOperation, applog.OpRender,
			applog.FieldError, err)
	}
}

// handleListExpenses returns the filtered expense list as JSON.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filter := parseFilter(r)
	items := s.book.Filtered(filter)
	totals := s.book.FilteredTotals(filter)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"expenses": items,
		"totals": map[string]string{
			"spend":     totals.Spend.String(),
			"pending":   totals.Pending.String(),
			"set_aside": totals.SetAside.String(),
		},
	})
}
