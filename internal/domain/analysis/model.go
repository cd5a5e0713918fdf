package analysis

// Transaction is an externally supplied statement row. Date is an ISO-8601
// date string; Category may be pre-assigned upstream, otherwise it is
// resolved by the categorizer during aggregation.
type Transaction struct {
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	Category    Category `json:"category,omitempty"`
	Date        string   `json:"date"`
}
