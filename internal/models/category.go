package models

// Category identifies one of the fixed expense categories. The set is
// process-wide static configuration shared by expenses and budgets; it is
// not user-editable.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryUtilities      Category = "utilities"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryGroceries      Category = "groceries"
	CategoryOther          Category = "other"
)

// allCategories is ordered for stable report output.
var allCategories = []Category{
	CategoryTransportation,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryGroceries,
	CategoryOther,
}

// Valid reports whether c is part of the fixed taxonomy.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransportation, CategoryUtilities, CategoryEntertainment,
		CategoryShopping, CategoryGroceries, CategoryOther:
		return true
	}
	return false
}

// AllCategories returns the full taxonomy in report order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}
