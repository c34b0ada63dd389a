package core

import "iter"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary holds the income/expense/savings rollup for a set of
// transactions. Savings is signed: income minus expense.
type Summary struct {
	Income  Money
	Expense Money
	Savings Money
}

// Progress is a goal's completion ratio. Raw is saved/target unclamped;
// Clamped is capped to [0, 1] for display.
type Progress struct {
	Raw     float64
	Clamped float64
}

// Summarize folds a transaction sequence into income, expense, and
// savings totals using exact cent arithmetic.
func Summarize(transactions iter.Seq[Transaction]) Summary {
	var s Summary
	for t := range transactions {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Savings = s.Income.Sub(s.Expense)
	return s
}

// CategoryTotals sums expense transactions per category label, in
// first-seen order for stable display. Labels group by exact,
// case-sensitive match; no normalization is applied.
func CategoryTotals(transactions iter.Seq[Transaction]) []CategoryAmount {
	index := make(map[string]int)
	var totals []CategoryAmount
	for t := range transactions {
		if t.Kind != Expense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, CategoryAmount{Name: t.Category})
		}
		totals[i].Amount = totals[i].Amount.Add(t.Amount)
	}
	return totals
}

// GoalProgress computes a goal's completion ratio. Store validation
// guarantees a positive target, so the division is always defined.
func GoalProgress(g Goal) Progress {
	raw := float64(g.Saved.Cents) / float64(g.Target.Cents)
	clamped := raw
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}
	return Progress{Raw: raw, Clamped: clamped}
}
