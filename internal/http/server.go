// Package http serves the ledger as a local web page: an interactive
// table with filters and aggregate totals, plus form endpoints for the
// mutations and a small JSON API.
package http

import (
	"html/template"
	"net/http"
	"time"

	"despesas/internal/ledger"
	applog "despesas/internal/log"
	appweb "despesas/web"
)

type Server struct {
	http.Server
	templates *template.Template
	book      *ledger.Ledger
	logger    *applog.Logger
	started   time.Time
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, book *ledger.Ledger, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		book:    book,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		started: time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/expenses", s.withSecurityHeaders(s.handleAddExpense))
	mux.HandleFunc("/expenses/edit", s.withSecurityHeaders(s.handleEditExpense))
	mux.HandleFunc("/expenses/pay", s.withSecurityHeaders(s.handleRecordPayment))
	mux.HandleFunc("/expenses/delete", s.withSecurityHeaders(s.handleDeleteExpense))
	mux.HandleFunc("/reload", s.withSecurityHeaders(s.handleReload))
	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.handleListExpenses))

	s.Handler = applog.Middleware(logger)(mux)

	return s
}

func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next(w, r)
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}
