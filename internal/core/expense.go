package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryFixed    Category = "fixo"
	CategoryExtra    Category = "extra"
	CategorySetAside Category = "guardado"
)

// DefaultTitle replaces a blank title on creation and on load.
const DefaultTitle = "Sem título"

// PaidAtLayout is the timestamp layout persisted in the paga_em field.
const PaidAtLayout = "2006-01-02T15:04:05"

type (
	// Category is the fixed closed set of expense kinds: recurring
	// obligations, one-offs, and set-aside (saved) funds. The values
	// are the strings persisted in the tipo field.
	Category string

	// Expense is a single ledger entry. Amounts are exact decimals
	// and serialize as strings to avoid floating-point precision
	// loss. Field tags match the legacy on-disk document.
	Expense struct {
		ID         string          `json:"id"`
		Title      string          `json:"titulo"`
		Amount     decimal.Decimal `json:"valor"`
		Competency string          `json:"competencia"`
		Paid       bool            `json:"paga"`
		PaidAt     string          `json:"paga_em"`
		Category   Category        `json:"tipo"`
		AmountPaid decimal.Decimal `json:"valor_pago"`
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidCompetency = errors.New("invalid competency")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrNotFound          = errors.New("expense not found")
	ErrNotApplicable     = errors.New("set-aside entries carry no pending balance")
	ErrAlreadySettled    = errors.New("expense already fully paid")
	ErrOverpayment       = errors.New("payment exceeds remaining balance")
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryFixed, CategoryExtra, CategorySetAside}
}

// Valid reports whether c is one of the three fixed variants.
func (c Category) Valid() bool {
	switch c {
	case CategoryFixed, CategoryExtra, CategorySetAside:
		return true
	}
	return false
}

// ParseCategory validates user input against the fixed category set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// NormalizeCategory maps missing or unrecognized input to
// CategoryExtra. Used on load, where bad data must not block startup.
func NormalizeCategory(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		return CategoryExtra
	}
	return c
}

// NewID mints an opaque expense identifier.
func NewID() string {
	return uuid.NewString()[:8]
}

// Remaining is the unsettled portion of the nominal amount, floored at
// zero.
func (e Expense) Remaining() decimal.Decimal {
	r := e.Amount.Sub(e.AmountPaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// RefreshSettlement recomputes the cached Paid/PaidAt projection from
// the category and the paid accumulator. It runs after every mutation
// and on every load, so the persisted flag is never authoritative.
//
// Set-aside entries are settled by construction: the paid accumulator
// is raised to the nominal amount, and a larger stored value is kept
// as-is. For the other categories Paid flips on when nothing remains;
// the settlement timestamp is stamped on the transition to paid and
// cleared on the transition back.
func (e *Expense) RefreshSettlement(now time.Time) {
	if e.Category == CategorySetAside {
		if e.AmountPaid.LessThan(e.Amount) {
			e.AmountPaid = e.Amount
		}
		e.Paid = true
		if e.PaidAt == "" {
			e.PaidAt = now.Format(PaidAtLayout)
		}
		return
	}
	if e.AmountPaid.GreaterThanOrEqual(e.Amount) {
		e.Paid = true
		if e.PaidAt == "" {
			e.PaidAt = now.Format(PaidAtLayout)
		}
		return
	}
	e.Paid = false
	e.PaidAt = ""
}

// Validate checks the record invariants: a valid category, a
// non-negative amount, and a paid accumulator within [0, amount].
func (e Expense) Validate() error {
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if e.AmountPaid.IsNegative() || e.AmountPaid.GreaterThan(e.Amount) {
		return ErrInvalidAmount
	}
	if e.Competency != "" && NormalizeCompetency(e.Competency) != e.Competency {
		return ErrInvalidCompetency
	}
	return nil
}
