package accounting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

// ErrInvalidLineItem reports a line item that cannot be totalled.
var ErrInvalidLineItem = errors.New("invalid line item")

var hundred = decimal.NewFromInt(100)

// LineItem is one row of an expense.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	// TaxRate is a percentage, e.g. 18 for 18% GST.
	TaxRate decimal.Decimal
}

// Amount returns quantity × unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Tax returns the line tax rounded half-up to two places.
func (l LineItem) Tax() decimal.Decimal {
	return l.Amount().Mul(l.TaxRate).Div(hundred).Round(2)
}

// Totals is the sum over an expense's line items.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums line amounts and taxes. Negative quantities, prices or
// rates are rejected.
func ComputeTotals(items []LineItem) (Totals, error) {
	var t Totals
	for i, item := range items {
		switch {
		case item.Quantity.IsNegative():
			return Totals{}, fmt.Errorf("%w: line %d: negative quantity", ErrInvalidLineItem, i+1)
		case item.UnitPrice.IsNegative():
			return Totals{}, fmt.Errorf("%w: line %d: negative unit price", ErrInvalidLineItem, i+1)
		case item.TaxRate.IsNegative():
			return Totals{}, fmt.Errorf("%w: line %d: negative tax rate", ErrInvalidLineItem, i+1)
		}
		t.Subtotal = t.Subtotal.Add(item.Amount().Round(2))
		t.Tax = t.Tax.Add(item.Tax())
	}
	t.Total = t.Subtotal.Add(t.Tax)
	return t, nil
}

// LineItemsFromRecord decodes the "lineItems" array of an expense record as
// returned by the REST API. Amount strings may carry currency symbols.
func LineItemsFromRecord(rec tablestate.Map) ([]LineItem, error) {
	raw, ok := rec["lineItems"]
	if !ok || raw == nil {
		return nil, nil
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: lineItems is %T, want array", ErrInvalidLineItem, raw)
	}
	items := make([]LineItem, 0, len(rows))
	for i, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: line %d is %T, want object", ErrInvalidLineItem, i+1, row)
		}
		qty, err := amountField(m, "quantity", decimal.NewFromInt(1))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		price, err := amountField(m, "unitPrice", decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rate, err := amountField(m, "taxRate", decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		items = append(items, LineItem{
			Description: tablestate.Stringify(m["description"]),
			Quantity:    qty,
			UnitPrice:   price,
			TaxRate:     rate,
		})
	}
	return items, nil
}

func amountField(m map[string]any, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil || v == "" {
		return fallback, nil
	}
	d, ok := tablestate.ParseAmount(v)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidLineItem, key, tablestate.Stringify(v))
	}
	return d, nil
}

// ValidateExpense checks an expense record's line items and, when the record
// carries a "total", that it matches the computed total.
func ValidateExpense(rec tablestate.Map) error {
	items, err := LineItemsFromRecord(rec)
	if err != nil {
		return err
	}
	totals, err := ComputeTotals(items)
	if err != nil {
		return err
	}
	raw, ok := rec["total"]
	if !ok || raw == nil || len(items) == 0 {
		return nil
	}
	claimed, ok := tablestate.ParseAmount(raw)
	if !ok {
		return fmt.Errorf("%w: total %q is not a number", ErrInvalidLineItem, tablestate.Stringify(raw))
	}
	if !claimed.Equal(totals.Total) {
		return fmt.Errorf("%w: total %s does not match computed %s", ErrInvalidLineItem, claimed.StringFixed(2), totals.Total.StringFixed(2))
	}
	return nil
}
