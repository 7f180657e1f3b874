package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"despesas/internal/core"
	"despesas/internal/ledger"
	applog "despesas/internal/log"
	"despesas/internal/store"
)

func newTestServer(t *testing.T, seed []core.Expense) (*Server, *ledger.Ledger) {
	t.Helper()

	book, err := ledger.Open(context.Background(), store.NewMemStore(seed))
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}
	logger := applog.New("test", slog.LevelError)
	return NewServer(":0", book, logger), book
}

func postTo(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	r := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestIndexRenders(t *testing.T) {
	srv, _ := newTestServer(t, []core.Expense{
		{ID: "a1", Title: "Aluguel", Amount: dec("1200"), Competency: "2025-03", Category: core.CategoryFixed},
	})

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Aluguel") {
		t.Error("page missing expense title")
	}
	if !strings.Contains(page, "R$ 1.200,00") {
		t.Error("page missing formatted amount")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestIndexFilteredTotalsRow(t *testing.T) {
	srv, _ := newTestServer(t, []core.Expense{
		{ID: "a1", Title: "Aluguel", Amount: dec("1200"), Competency: "2025-03", Category: core.CategoryFixed},
		{ID: "b2", Title: "Viagem", Amount: dec("500"), Competency: "2025-04", Category: core.CategoryExtra},
	})

	r := httptest.NewRequest("GET", "/?mes=04%2F2025", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Total de gastos (tudo)") {
		t.Error("page missing overall totals row")
	}
	if !strings.Contains(page, "Total de gastos (filtro)") {
		t.Error("page missing filtered totals row")
	}
	// Overall row counts both records, filtered row only April.
	if !strings.Contains(page, "R$ 1.700,00") {
		t.Error("overall row missing combined spend")
	}
	if !strings.Contains(page, "R$ 500,00") {
		t.Error("filtered row missing month spend")
	}
}

func TestIndexUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	r := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAddExpenseFlow(t *testing.T) {
	srv, book := newTestServer(t, nil)

	w := postTo(t, srv, "/expenses", url.Values{
		"titulo":      {"Mercado"},
		"valor":       {"99,90"},
		"competencia": {"03/2025"},
		"tipo":        {"extra"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.Contains(loc, "aviso=") {
		t.Errorf("Location = %q, want notice", loc)
	}

	items := book.Expenses()
	if len(items) != 1 {
		t.Fatalf("expenses = %d, want 1", len(items))
	}
	if items[0].Title != "Mercado" || items[0].Competency != "2025-03" {
		t.Errorf("stored expense = %+v", items[0])
	}
}

func TestAddExpenseInvalidAmount(t *testing.T) {
	srv, book := newTestServer(t, nil)

	w := postTo(t, srv, "/expenses", url.Values{
		"titulo": {"X"},
		"valor":  {"abc"},
		"tipo":   {"extra"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.Contains(loc, "erro=") {
		t.Errorf("Location = %q, want error", loc)
	}
	if len(book.Expenses()) != 0 {
		t.Error("invalid expense was stored")
	}
}

func TestMutationEndpointsRejectGet(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, path := range []string{"/expenses", "/expenses/edit", "/expenses/pay", "/expenses/delete", "/reload"} {
		r := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, r)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", path, w.Code)
		}
	}
}

func TestPaymentFlow(t *testing.T) {
	seed := []core.Expense{
		{ID: "a1", Title: "Aluguel", Amount: dec("1200"), Competency: "2025-03", Category: core.CategoryFixed},
	}
	srv, book := newTestServer(t, seed)

	w := postTo(t, srv, "/expenses/pay", url.Values{
		"id":    {"a1"},
		"valor": {"500,00"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	exp, err := book.Get("a1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !exp.AmountPaid.Equal(dec("500")) {
		t.Errorf("AmountPaid = %s, want 500", exp.AmountPaid)
	}
	if exp.Paid {
		t.Error("expense settled after partial payment")
	}
}

func TestPaymentOverpayNeedsConfirm(t *testing.T) {
	seed := []core.Expense{
		{ID: "a1", Title: "Internet", Amount: dec("80"), Competency: "2025-03", Category: core.CategoryFixed},
	}
	srv, book := newTestServer(t, seed)

	w := postTo(t, srv, "/expenses/pay", url.Values{
		"id":    {"a1"},
		"valor": {"100"},
	})
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "erro=") {
		t.Errorf("unconfirmed overpay Location = %q, want error", loc)
	}

	w = postTo(t, srv, "/expenses/pay", url.Values{
		"id":        {"a1"},
		"valor":     {"100"},
		"confirmar": {"1"},
	})
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "aviso=") {
		t.Errorf("confirmed overpay Location = %q, want notice", loc)
	}

	exp, _ := book.Get("a1")
	if !exp.Paid {
		t.Error("confirmed overpay did not settle the expense")
	}
	if !exp.AmountPaid.Equal(dec("80")) {
		t.Errorf("AmountPaid = %s, want clamp to 80", exp.AmountPaid)
	}
}

func TestDeleteFlow(t *testing.T) {
	seed := []core.Expense{
		{ID: "a1", Title: "Aluguel", Amount: dec("1200"), Category: core.CategoryFixed},
	}
	srv, book := newTestServer(t, seed)

	w := postTo(t, srv, "/expenses/delete", url.Values{"id": {"a1"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if len(book.Expenses()) != 0 {
		t.Error("expense not deleted")
	}
}

func TestAPIListExpenses(t *testing.T) {
	seed := []core.Expense{
		{ID: "a1", Title: "Aluguel", Amount: dec("1200"), Competency: "2025-03", Category: core.CategoryFixed},
		{ID: "b2", Title: "Reserva", Amount: dec("300"), Competency: "2025-03", Category: core.CategorySetAside},
	}
	srv, _ := newTestServer(t, seed)

	r := httptest.NewRequest("GET", "/api/expenses?tipo=fixo", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Expenses []core.Expense    `json:"expenses"`
		Totals   map[string]string `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(body.Expenses))
	}
	if body.Expenses[0].ID != "a1" {
		t.Errorf("expense id = %q", body.Expenses[0].ID)
	}
	if body.Totals["spend"] != "1200" {
		t.Errorf("spend total = %q", body.Totals["spend"])
	}
}
