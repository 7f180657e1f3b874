package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"despesas/internal/core"
	applog "despesas/internal/log"

	"github.com/shopspring/decimal"
)

// JSONStore keeps the collection as a flat JSON array on disk,
// mirroring the legacy file format field for field.
type JSONStore struct {
	path string
	now  func() time.Time
}

func NewJSONStore(path string) (*JSONStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	return &JSONStore{path: path, now: time.Now}, nil
}

// rawExpense is one on-disk record before migration. Legacy files may
// carry a vencimento due date instead of a competency key, and lack
// the settlement-tracking fields entirely.
type rawExpense struct {
	ID         string          `json:"id"`
	Title      string          `json:"titulo"`
	Amount     decimal.Decimal `json:"valor"`
	Competency string          `json:"competencia"`
	DueDate    string          `json:"vencimento"`
	Paid       bool            `json:"paga"`
	PaidAt     string          `json:"paga_em"`
	Category   string          `json:"tipo"`
	AmountPaid decimal.Decimal `json:"valor_pago"`
}

// Load reads the persisted array. A missing file yields an empty
// collection. An unparseable file is renamed to a .bak sibling
// (best-effort) and load proceeds as if the store were empty: startup
// never fails on bad data.
func (s *JSONStore) Load(ctx context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var raw []rawExpense
	if err := json.Unmarshal(data, &raw); err != nil {
		s.backup(ctx, err)
		return []core.Expense{}, nil
	}

	out := make([]core.Expense, 0, len(raw))
	for _, r := range raw {
		out = append(out, s.migrate(r))
	}

	slog.InfoContext(ctx, "Loaded expense store",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpLoad,
		applog.FieldStorePath, s.path,
		"count", len(out))
	return out, nil
}

// Save serializes the full collection, overwriting any previous
// content. Single-process, single-writer assumption; write failures
// propagate to the caller.
func (s *JSONStore) Save(_ context.Context, items []core.Expense) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

func (s *JSONStore) backup(ctx context.Context, cause error) {
	bak := s.path + ".bak"
	if err := os.Rename(s.path, bak); err != nil {
		slog.WarnContext(ctx, "Failed to back up corrupt store file",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldStorePath, s.path,
			applog.FieldError, err)
	}
	slog.WarnContext(ctx, "Store file unreadable, starting from an empty ledger",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldStorePath, s.path,
		"backup", bak,
		applog.FieldError, cause)
}

// migrate turns a raw on-disk record into a well-formed expense:
// legacy due dates become competency keys, unknown categories fall
// back to extra, and the settlement projection is recomputed so old
// files gain the tracking fields.
func (s *JSONStore) migrate(r rawExpense) core.Expense {
	comp := r.Competency
	if comp == "" && r.DueDate != "" {
		if due, err := time.Parse("2006-01-02", r.DueDate); err == nil {
			comp = fmt.Sprintf("%04d-%02d", due.Year(), int(due.Month()))
		}
	}
	comp = core.NormalizeCompetency(comp)

	id := r.ID
	if id == "" {
		id = core.NewID()
	}
	title := r.Title
	if title == "" {
		title = core.DefaultTitle
	}

	e := core.Expense{
		ID:         id,
		Title:      title,
		Amount:     r.Amount,
		Competency: comp,
		Paid:       r.Paid,
		PaidAt:     r.PaidAt,
		Category:   core.NormalizeCategory(r.Category),
		AmountPaid: r.AmountPaid,
	}
	e.RefreshSettlement(s.now())
	return e
}
