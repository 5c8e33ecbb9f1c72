package core

type (
	// CategoryTotal is a derived (category, summed amount, color) triple
	// driving chart and legend display. Never persisted.
	CategoryTotal struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Color string  `json:"color"`
	}

	Totals struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Balance float64 `json:"balance"`
	}

	// Breakdown holds per-category sums split by type plus global totals,
	// all in base-currency units.
	Breakdown struct {
		Income  []CategoryTotal `json:"income"`
		Expense []CategoryTotal `json:"expense"`
		Totals  Totals          `json:"totals"`
	}
)

// Aggregate reduces a transaction collection into per-category sums and
// global totals. A transaction's own type decides its bucket even when it
// disagrees with the referenced category's type; stored data may carry that
// anomaly and it is preserved, not corrected. Totals count every
// transaction, including those whose categoryId matches no known category;
// such orphans emit no CategoryTotal. Emitted lists follow the input
// category order and omit zero-sum categories.
func Aggregate(transactions []Transaction, categories []Category) Breakdown {
	incomeByCategory := make(map[int64]float64)
	expenseByCategory := make(map[int64]float64)

	var b Breakdown
	for _, t := range transactions {
		if t.Type == Income {
			incomeByCategory[t.CategoryID] += t.Amount
			b.Totals.Income += t.Amount
		} else {
			expenseByCategory[t.CategoryID] += t.Amount
			b.Totals.Expense += t.Amount
		}
	}
	b.Totals.Balance = b.Totals.Income - b.Totals.Expense

	for _, c := range categories {
		switch {
		case c.Type == Income && incomeByCategory[c.ID] != 0:
			b.Income = append(b.Income, CategoryTotal{
				Name:  c.Name,
				Value: incomeByCategory[c.ID],
				Color: c.DisplayColor(),
			})
		case c.Type == Expense && expenseByCategory[c.ID] != 0:
			b.Expense = append(b.Expense, CategoryTotal{
				Name:  c.Name,
				Value: expenseByCategory[c.ID],
				Color: c.DisplayColor(),
			})
		}
	}

	return b
}

// ConvertBreakdown maps every monetary figure of a breakdown into the given
// display currency.
func ConvertBreakdown(b Breakdown, rates RateTable, currency string) Breakdown {
	out := Breakdown{
		Totals: Totals{
			Income:  Convert(b.Totals.Income, rates, currency),
			Expense: Convert(b.Totals.Expense, rates, currency),
			Balance: Convert(b.Totals.Balance, rates, currency),
		},
	}
	if b.Income != nil {
		out.Income = make([]CategoryTotal, len(b.Income))
		for i, ct := range b.Income {
			ct.Value = Convert(ct.Value, rates, currency)
			out.Income[i] = ct
		}
	}
	if b.Expense != nil {
		out.Expense = make([]CategoryTotal, len(b.Expense))
		for i, ct := range b.Expense {
			ct.Value = Convert(ct.Value, rates, currency)
			out.Expense[i] = ct
		}
	}
	return out
}
