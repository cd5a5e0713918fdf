package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/cardwise-api/pkg/money"
)

// csvTransaction is the minimal statement-row shape accepted over the wire:
// date,description,amount with an optional category column. Amounts keep
// their raw text here so parsing can go through decimal.
type csvTransaction struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
}

// ParseCSV reads transactions from a CSV stream. Rows with amounts that do
// not parse at all fail the whole import; negative amounts and odd dates pass
// through and are reported as warnings during aggregation.
func ParseCSV(r io.Reader) ([]Transaction, error) {
	var rows []csvTransaction
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse transactions csv: %w", err)
	}

	transactions := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		amount, err := money.Parse(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
		transactions = append(transactions, Transaction{
			Amount:      amount,
			Description: strings.TrimSpace(row.Description),
			Category:    Category(strings.TrimSpace(row.Category)),
			Date:        strings.TrimSpace(row.Date),
		})
	}
	return transactions, nil
}
