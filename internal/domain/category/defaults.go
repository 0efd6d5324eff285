package category

// DefaultSeedVersion identifies the canonical default-category set below.
// Bump it when the set changes so operators know a reseed is due.
const DefaultSeedVersion = 1

// DefaultSeeds returns the canonical default-category set installed by the
// admin seed-categories command. Returned as a fresh slice so callers can't
// mutate the canonical data.
func DefaultSeeds() []Seed {
	return []Seed{
		// Expense categories
		{Name: "Groceries", Type: TypeExpense, Icon: "shopping-cart", Color: "#EF4444"},
		{Name: "Transport", Type: TypeExpense, Icon: "truck", Color: "#F59E0B"},
		{Name: "Housing", Type: TypeExpense, Icon: "home", Color: "#10B981"},
		{Name: "Entertainment", Type: TypeExpense, Icon: "ticket", Color: "#8B5CF6"},
		{Name: "Health", Type: TypeExpense, Icon: "heart", Color: "#EC4899"},
		{Name: "Clothing", Type: TypeExpense, Icon: "shopping-bag", Color: "#6366F1"},
		{Name: "Restaurants", Type: TypeExpense, Icon: "utensils", Color: "#F97316"},
		{Name: "Bills", Type: TypeExpense, Icon: "receipt", Color: "#0EA5E9"},

		// Income categories
		{Name: "Salary", Type: TypeIncome, Icon: "cash", Color: "#10B981"},
		{Name: "Side Job", Type: TypeIncome, Icon: "briefcase", Color: "#8B5CF6"},
		{Name: "Investments", Type: TypeIncome, Icon: "chart-line", Color: "#F59E0B"},
		{Name: "Gifts", Type: TypeIncome, Icon: "gift", Color: "#EC4899"},
		{Name: "Refunds", Type: TypeIncome, Icon: "undo", Color: "#6366F1"},
	}
}
