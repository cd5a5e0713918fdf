// Package analysis implements the spending analysis pipeline: transaction
// categorization, aggregation across time windows, data-quality scoring,
// templated insights, and seasonal pattern detection. Every stage is a pure
// function over in-memory data; callers own I/O and scheduling.
package analysis

// Category identifies the kind of merchant a transaction belongs to.
type Category string

const (
	CategoryGroceries        Category = "groceries"
	CategoryDining           Category = "dining"
	CategoryGas              Category = "gas"
	CategoryTravel           Category = "travel"
	CategoryStreaming        Category = "streaming"
	CategoryDepartmentStores Category = "department_stores"
	CategoryDrugStores       Category = "drug_stores"
	CategoryOnlineShopping   Category = "online_shopping"
	CategoryWarehouseClubs   Category = "warehouse_clubs"
	CategoryTransit          Category = "transit"
	CategoryGeneral          Category = "general"
)

// Categories lists every category, in categorization priority order with the
// fallback last.
var Categories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryGas,
	CategoryTravel,
	CategoryStreaming,
	CategoryDepartmentStores,
	CategoryDrugStores,
	CategoryOnlineShopping,
	CategoryWarehouseClubs,
	CategoryTransit,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable form, e.g. "department stores".
func (c Category) Label() string {
	out := make([]byte, len(c))
	for i := 0; i < len(c); i++ {
		if c[i] == '_' {
			out[i] = ' '
		} else {
			out[i] = c[i]
		}
	}
	return string(out)
}
