package core

import (
	"sort"
	"strings"
)

const (
	StatusAll     Status = "todas"
	StatusPending Status = "pendentes"
	StatusPaid    Status = "pagas"
)

type (
	// Status narrows a collection by payment state.
	Status string

	// Filter describes the narrowing passes applied to a collection.
	// Zero values act as "all" sentinels and pass everything through.
	Filter struct {
		Category   Category // exact match on the category
		Status     Status
		Competency string // canonical yyyy-mm key
		Search     string // case-insensitive substring on the title
	}
)

// Apply runs the filter passes in their fixed order: category, status,
// competency, text search. Each pass narrows the previous result; the
// output keeps the insertion order of the input.
func (f Filter) Apply(items []Expense) []Expense {
	out := append([]Expense(nil), items...)

	if f.Category != "" {
		out = keep(out, func(e Expense) bool {
			return e.Category == f.Category
		})
	}

	switch f.Status {
	case StatusPending:
		out = keep(out, func(e Expense) bool {
			return e.Category != CategorySetAside && e.Remaining().IsPositive()
		})
	case StatusPaid:
		out = keep(out, func(e Expense) bool {
			return e.Category == CategorySetAside || !e.Remaining().IsPositive()
		})
	}

	if f.Competency != "" {
		out = keep(out, func(e Expense) bool {
			return e.Competency == f.Competency
		})
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		out = keep(out, func(e Expense) bool {
			return strings.Contains(strings.ToLower(e.Title), q)
		})
	}

	return out
}

func keep(items []Expense, pred func(Expense) bool) []Expense {
	out := items[:0]
	for _, e := range items {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Months returns the distinct competency labels present in the
// collection, newest first, for the month filter control.
func Months(items []Expense) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, e := range items {
		if e.Competency == "" {
			continue
		}
		if _, ok := seen[e.Competency]; ok {
			continue
		}
		seen[e.Competency] = struct{}{}
		keys = append(keys, e.Competency)
	}
	// Canonical yyyy-mm keys sort lexicographically in date order.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = CompetencyLabel(k)
	}
	return labels
}
