package core

import (
	"sort"
	"time"
)

// Tab selects which transaction types a view shows.
type Tab string

const (
	TabAll     Tab = "all"
	TabIncome  Tab = "income"
	TabExpense Tab = "expense"
)

// Criteria is the transient set of user-chosen constraints narrowing the
// transaction collection. An absent bound means no constraint: zero dates,
// zero category id and nil amounts all pass everything through.
type Criteria struct {
	ActiveTab  Tab
	StartDate  Date
	EndDate    Date
	CategoryID int64
	MinAmount  *float64
	MaxAmount  *float64
}

// Empty reports whether no constraint is set.
func (c Criteria) Empty() bool {
	return (c.ActiveTab == "" || c.ActiveTab == TabAll) &&
		c.StartDate.IsZero() && c.EndDate.IsZero() &&
		c.CategoryID == 0 && c.MinAmount == nil && c.MaxAmount == nil
}

func (c Criteria) matches(t Transaction) bool {
	if c.ActiveTab != "" && c.ActiveTab != TabAll && string(t.Type) != string(c.ActiveTab) {
		return false
	}
	if !c.StartDate.IsZero() && t.Date.Before(c.StartDate.Time) {
		return false
	}
	if !c.EndDate.IsZero() {
		// Inclusive through the entire end day.
		endOfDay := c.EndDate.Add(24*time.Hour - time.Millisecond)
		if t.Date.After(endOfDay) {
			return false
		}
	}
	if c.CategoryID != 0 && t.CategoryID != c.CategoryID {
		return false
	}
	if c.MinAmount != nil && t.Amount < *c.MinAmount {
		return false
	}
	if c.MaxAmount != nil && t.Amount > *c.MaxAmount {
		return false
	}
	return true
}

// Filter selects the transactions matching every set constraint and returns
// them sorted by date descending, most recent first. Same-date transactions
// keep their original relative order. The input slice is never mutated; an
// empty result is a valid result, never an error.
func Filter(transactions []Transaction, criteria Criteria) []Transaction {
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if criteria.matches(t) {
			filtered = append(filtered, t)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date.Time)
	})
	return filtered
}
