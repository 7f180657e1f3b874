// This file parses and validates form and query parameters for the
// expense handlers, keeping the handlers themselves thin.

package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"despesas/internal/core"
)

// expenseInput holds the validated fields shared by the add and edit forms.
type expenseInput struct {
	Title      string
	Amount     decimal.Decimal
	Competency string
	Category   core.Category
}

// paymentInput holds the validated fields of the payment form.
type paymentInput struct {
	ID                 string
	Amount             decimal.Decimal
	AllowOverpaySettle bool
}

// parseExpenseForm extracts title, amount, competency and category from
// a parsed form. The amount accepts "R$ 1.234,56" style input; the
// competency accepts mm/aaaa and may be blank.
func parseExpenseForm(r *http.Request) (expenseInput, error) {
	var in expenseInput

	in.Title = strings.TrimSpace(r.Form.Get("titulo"))

	amount, err := core.ParseMoney(r.Form.Get("valor"))
	if err != nil {
		return in, err
	}
	in.Amount = amount

	raw := strings.TrimSpace(r.Form.Get("competencia"))
	if raw != "" {
		comp := core.NormalizeCompetency(raw)
		if comp == "" {
			return in, core.ErrInvalidCompetency
		}
		in.Competency = comp
	}

	cat, err := core.ParseCategory(r.Form.Get("tipo"))
	if err != nil {
		return in, err
	}
	in.Category = cat

	return in, nil
}

// parsePaymentForm extracts the expense id, payment amount and the
// overpay confirmation flag from a parsed form.
func parsePaymentForm(r *http.Request) (paymentInput, error) {
	var in paymentInput

	in.ID = strings.TrimSpace(r.Form.Get("id"))
	if in.ID == "" {
		return in, core.ErrNotFound
	}

	amount, err := core.ParseMoney(r.Form.Get("valor"))
	if err != nil {
		return in, err
	}
	in.Amount = amount

	in.AllowOverpaySettle = r.Form.Get("confirmar") == "1"

	return in, nil
}

// parseFilter maps the table's query parameters onto a core filter.
// Unknown status values fall back to showing everything.
func parseFilter(r *http.Request) core.Filter {
	q := r.URL.Query()

	f := core.Filter{
		Competency: core.NormalizeCompetency(strings.TrimSpace(q.Get("mes"))),
		Search:     strings.TrimSpace(q.Get("busca")),
	}

	switch q.Get("status") {
	case string(core.StatusPending):
		f.Status = core.StatusPending
	case string(core.StatusPaid):
		f.Status = core.StatusPaid
	default:
		f.Status = core.StatusAll
	}

	if cat := core.Category(strings.ToLower(strings.TrimSpace(q.Get("tipo")))); cat.Valid() {
		f.Category = cat
	}

	return f
}
