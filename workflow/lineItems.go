package workflow

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineInput is one editable table row as a transactional page submits
// it. Only rows the user actually added participate in totals and in
// the create sequence.
type LineInput struct {
	ItemCode     string          `json:"itemCode"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Added        bool            `json:"added"`
	GrnItemId    int             `json:"grnItemId"`
	OrderNo      int             `json:"orderNo"`
	PoDetailItem int             `json:"poDetailItem"`
}

func (l LineInput) included() bool {
	return l.Added && l.Quantity.IsPositive()
}

// Subtotal sums quantity x price over included rows only.
func Subtotal(lines []LineInput) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if !l.included() {
			continue
		}
		total = total.Add(l.Quantity.Mul(l.Price))
	}
	return total
}

func includedLines(lines []LineInput) []LineInput {
	out := make([]LineInput, 0, len(lines))
	for _, l := range lines {
		if l.included() {
			out = append(out, l)
		}
	}
	return out
}

func requireLines(lines []LineInput) ([]LineInput, error) {
	included := includedLines(lines)
	if len(included) == 0 {
		return nil, fmt.Errorf("at least one line item with quantity greater than zero is required")
	}
	return included, nil
}
