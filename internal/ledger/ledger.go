// Package ledger owns the in-memory expense collection and applies
// mutations with synchronous write-through persistence: every
// successful mutation rewrites the full store before returning, and a
// failed write rolls the in-memory change back so memory and disk
// never diverge.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"despesas/internal/core"
	applog "despesas/internal/log"
	"despesas/internal/store"

	"github.com/shopspring/decimal"
)

// Ledger guards the collection with a mutex so the web presentation
// can serve concurrent requests; the on-disk single-writer assumption
// holds because every save happens under the same lock.
type Ledger struct {
	mu    sync.Mutex
	store store.Store
	items []core.Expense
	now   func() time.Time
}

// Open loads the persisted collection and returns a ready ledger.
func Open(ctx context.Context, st store.Store) (*Ledger, error) {
	items, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	l := &Ledger{store: st, items: items, now: time.Now}
	l.refreshAll()
	return l, nil
}

// Reload discards the in-memory collection and re-reads the store.
func (l *Ledger) Reload(ctx context.Context) error {
	items, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload expenses: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.refreshAll()
	return nil
}

// refreshAll recomputes the settlement projection of every record. The
// persisted paid flag is never trusted over the amounts.
func (l *Ledger) refreshAll() {
	for i := range l.items {
		l.items[i].RefreshSettlement(l.now())
	}
}

// Expenses returns a copy of the collection in insertion order.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.items...)
}

// Get returns the expense with the given id, or ErrNotFound.
func (l *Ledger) Get(id string) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		return l.items[i], nil
	}
	return core.Expense{}, core.ErrNotFound
}

// Filtered applies the narrowing passes over the full collection.
func (l *Ledger) Filtered(f core.Filter) []core.Expense {
	return f.Apply(l.Expenses())
}

// Totals aggregates over the full collection.
func (l *Ledger) Totals() core.Totals {
	return core.Summarize(l.Expenses())
}

// FilteredTotals aggregates over the filtered view.
func (l *Ledger) FilteredTotals(f core.Filter) core.Totals {
	return core.Summarize(l.Filtered(f))
}

// Months lists the competency labels present, newest first.
func (l *Ledger) Months() []string {
	return core.Months(l.Expenses())
}

// Add mints a new expense, applies the category settlement rule, and
// persists. A blank title gets the placeholder; set-aside entries are
// settled immediately, everything else starts unpaid.
func (l *Ledger) Add(ctx context.Context, title string, amount decimal.Decimal, competency string, category core.Category) (core.Expense, error) {
	title, comp, err := validateInput(title, amount, competency, category)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:         core.NewID(),
		Title:      title,
		Amount:     amount,
		Competency: comp,
		Category:   category,
		AmountPaid: decimal.Zero,
	}
	e.RefreshSettlement(l.now())

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, e)
	if err := l.save(ctx); err != nil {
		l.items = l.items[:len(l.items)-1]
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Expense added",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpAdd,
		applog.FieldExpenseID, e.ID,
		applog.FieldTitle, e.Title,
		applog.FieldAmount, e.Amount,
		applog.FieldCategory, e.Category,
		applog.FieldCompetency, e.Competency)
	return e, nil
}

// Edit replaces all mutable fields of the expense. A reduced amount
// truncates the paid accumulator so no stored overpayment survives;
// the settlement projection is recomputed afterwards.
func (l *Ledger) Edit(ctx context.Context, id, title string, amount decimal.Decimal, competency string, category core.Category) (core.Expense, error) {
	title, comp, err := validateInput(title, amount, competency, category)
	if err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return core.Expense{}, core.ErrNotFound
	}

	prev := l.items[i]
	e := prev
	e.Title = title
	e.Amount = amount
	e.Competency = comp
	e.Category = category
	if e.AmountPaid.GreaterThan(e.Amount) {
		e.AmountPaid = e.Amount
	}
	e.RefreshSettlement(l.now())

	l.items[i] = e
	if err := l.save(ctx); err != nil {
		l.items[i] = prev
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Expense edited",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpEdit,
		applog.FieldExpenseID, e.ID,
		applog.FieldTitle, e.Title,
		applog.FieldAmount, e.Amount,
		applog.FieldCategory, e.Category)
	return e, nil
}

// RecordPayment accumulates a partial payment. Set-aside entries have
// no pending balance (ErrNotApplicable) and settled entries reject
// further payments (ErrAlreadySettled). A payment that would exceed
// the nominal amount needs the caller's explicit confirmation via
// allowOverpaySettle, in which case the accumulator is clamped to the
// amount; without it the operation aborts with no state change.
func (l *Ledger) RecordPayment(ctx context.Context, id string, payNow decimal.Decimal, allowOverpaySettle bool) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return core.Expense{}, core.ErrNotFound
	}

	prev := l.items[i]
	e := prev
	if e.Category == core.CategorySetAside {
		return core.Expense{}, core.ErrNotApplicable
	}
	if !e.Remaining().IsPositive() {
		return core.Expense{}, core.ErrAlreadySettled
	}
	if !payNow.IsPositive() {
		return core.Expense{}, core.ErrInvalidAmount
	}

	newPaid := e.AmountPaid.Add(payNow)
	if newPaid.GreaterThan(e.Amount) {
		if !allowOverpaySettle {
			return core.Expense{}, core.ErrOverpayment
		}
		newPaid = e.Amount
	}
	e.AmountPaid = newPaid
	e.RefreshSettlement(l.now())

	l.items[i] = e
	if err := l.save(ctx); err != nil {
		l.items[i] = prev
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Payment recorded",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpPay,
		applog.FieldExpenseID, e.ID,
		"paid_now", payNow,
		"amount_paid", e.AmountPaid,
		"settled", e.Paid)
	return e, nil
}

// Delete removes the expense and persists. ErrNotFound when no record
// matches the id.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	prev := append([]core.Expense(nil), l.items...)
	l.items = append(l.items[:i], l.items[i+1:]...)
	if err := l.save(ctx); err != nil {
		l.items = prev
		return err
	}
	slog.InfoContext(ctx, "Expense deleted",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	return nil
}

// index must be called with the lock held.
func (l *Ledger) index(id string) int {
	for i, e := range l.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// save must be called with the lock held.
func (l *Ledger) save(ctx context.Context) error {
	if err := l.store.Save(ctx, l.items); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// validateInput applies the shared add/edit boundary checks: category
// from the fixed set, non-negative amount, competency that normalizes
// cleanly, placeholder for a blank title.
func validateInput(title string, amount decimal.Decimal, competency string, category core.Category) (string, string, error) {
	if !category.Valid() {
		return "", "", core.ErrInvalidCategory
	}
	if amount.IsNegative() {
		return "", "", core.ErrInvalidAmount
	}
	comp := core.NormalizeCompetency(competency)
	if comp == "" && strings.TrimSpace(competency) != "" {
		return "", "", core.ErrInvalidCompetency
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = core.DefaultTitle
	}
	return title, comp, nil
}
