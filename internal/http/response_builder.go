// This file builds the view model handed to the index template:
// formatted rows, totals cards and filter state.

package http

import (
	"strings"

	"despesas/internal/core"
)

// expenseRow is one formatted line of the table.
type expenseRow struct {
	ID       string
	Title    string
	Category string
	Amount   string
	Paid     string
	Remain   string
	Month    string
	Status   string
	PaidAt   string
	Settled  bool
}

// totalsCard is one labelled amount on the summary rows.
type totalsCard struct {
	Label  string
	Amount string
}

// indexView is everything the index template needs. Totals covers the
// whole collection, FilteredTotals only the records the active filter
// selects; both rows are always shown.
type indexView struct {
	Rows           []expenseRow
	Totals         []totalsCard
	FilteredTotals []totalsCard
	Months         []string
	Categories     []core.Category
	Filter         filterView
	Notice         string
	Error          string
}

// filterView echoes the active filter back into the form controls.
type filterView struct {
	Month    string
	Status   string
	Category string
	Search   string
}

func buildIndexView(items []core.Expense, totals, filtered core.Totals, months []string, f core.Filter, notice, errMsg string) indexView {
	rows := make([]expenseRow, 0, len(items))
	for _, e := range items {
		rows = append(rows, buildRow(e))
	}

	activeMonth := ""
	if f.Competency != "" {
		activeMonth = core.CompetencyLabel(f.Competency)
	}

	return indexView{
		Rows:           rows,
		Totals:         totalsCards(totals, "tudo"),
		FilteredTotals: totalsCards(filtered, "filtro"),
		Months:         months,
		Categories: core.Categories(),
		Filter: filterView{
			Month:    activeMonth,
			Status:   string(f.Status),
			Category: string(f.Category),
			Search:   f.Search,
		},
		Notice: notice,
		Error:  errMsg,
	}
}

func totalsCards(t core.Totals, scope string) []totalsCard {
	return []totalsCard{
		{Label: "Total de gastos (" + scope + ")", Amount: core.FormatMoney(t.Spend)},
		{Label: "Total pendente (" + scope + ")", Amount: core.FormatMoney(t.Pending)},
		{Label: "Total guardado (" + scope + ")", Amount: core.FormatMoney(t.SetAside)},
	}
}

func buildRow(e core.Expense) expenseRow {
	row := expenseRow{
		ID:       e.ID,
		Title:    e.Title,
		Category: string(e.Category),
		Amount:   core.FormatMoney(e.Amount),
		Paid:     core.FormatMoney(e.AmountPaid),
		Remain:   core.FormatMoney(e.Remaining()),
		Month:    core.CompetencyLabel(e.Competency),
		Status:   "PENDENTE",
		PaidAt:   "-",
		Settled:  e.Paid,
	}
	if e.Paid {
		row.Status = "PAGA"
	}
	if e.PaidAt != "" {
		row.PaidAt = strings.Replace(e.PaidAt, "T", " ", 1)
	}
	return row
}
