package accounting

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

func TestValidatePAN(t *testing.T) {
	require.NoError(t, ValidatePAN("ABCDE1234F"))
	require.NoError(t, ValidatePAN(" abcde1234f "))

	for _, bad := range []string{"", "ABCD1234F", "ABCDE12345", "1BCDE1234F", "ABCDE1234FF"} {
		require.ErrorIs(t, ValidatePAN(bad), ErrInvalidPAN, bad)
	}
}

func TestValidateGSTIN(t *testing.T) {
	require.NoError(t, ValidateGSTIN("27ABCDE1234F1Z5"))
	require.NoError(t, ValidateGSTIN("29abcde1234f2zk"))

	for _, bad := range []string{"", "27ABCDE1234F1Y5", "2AABCDE1234F1Z5", "27ABCDE1234F0Z5", "27ABCDE1234F1Z"} {
		require.ErrorIs(t, ValidateGSTIN(bad), ErrInvalidGSTIN, bad)
	}
}

func TestPANFromGSTIN(t *testing.T) {
	pan, err := PANFromGSTIN("27ABCDE1234F1Z5")
	require.NoError(t, err)
	require.Equal(t, "ABCDE1234F", pan)

	_, err = PANFromGSTIN("nope")
	require.ErrorIs(t, err, ErrInvalidGSTIN)
}

func TestCheckTaxIDs(t *testing.T) {
	require.NoError(t, CheckTaxIDs("", ""))
	require.NoError(t, CheckTaxIDs("ABCDE1234F", "27ABCDE1234F1Z5"))
	require.NoError(t, CheckTaxIDs("", "27ABCDE1234F1Z5"))

	err := CheckTaxIDs("ZZZZZ9999Z", "27ABCDE1234F1Z5")
	require.ErrorIs(t, err, ErrInvalidGSTIN)

	err = CheckTaxIDs("bad", "bad")
	require.ErrorIs(t, err, ErrInvalidPAN)
	require.ErrorIs(t, err, ErrInvalidGSTIN)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{Description: "Paper", Quantity: dec("3"), UnitPrice: dec("33.33"), TaxRate: dec("18")},
		{Description: "Courier", Quantity: dec("1"), UnitPrice: dec("250"), TaxRate: dec("5")},
		{Description: "Stamp", Quantity: dec("2"), UnitPrice: dec("0.125"), TaxRate: decimal.Zero},
	}
	totals, err := ComputeTotals(items)
	require.NoError(t, err)

	// 99.99 + 250 + 0.25
	require.True(t, dec("350.24").Equal(totals.Subtotal), totals.Subtotal.String())
	// 18.00 (17.9982) + 12.50 + 0
	require.True(t, dec("30.50").Equal(totals.Tax), totals.Tax.String())
	require.True(t, dec("380.74").Equal(totals.Total), totals.Total.String())
}

func TestComputeTotals_RejectsNegatives(t *testing.T) {
	_, err := ComputeTotals([]LineItem{{Quantity: dec("-1"), UnitPrice: dec("5")}})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ComputeTotals([]LineItem{{Quantity: dec("1"), UnitPrice: dec("-5")}})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ComputeTotals([]LineItem{{Quantity: dec("1"), UnitPrice: dec("5"), TaxRate: dec("-2")}})
	require.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals, err := ComputeTotals(nil)
	require.NoError(t, err)
	require.True(t, totals.Total.IsZero())
}

func decodeRecord(t *testing.T, raw string) tablestate.Map {
	t.Helper()
	var rec tablestate.Map
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestValidateExpense(t *testing.T) {
	ok := decodeRecord(t, `{
		"id": 7,
		"total": "₹1,180.00",
		"lineItems": [
			{"description": "Rent", "quantity": 1, "unitPrice": "1,000", "taxRate": 18}
		]
	}`)
	require.NoError(t, ValidateExpense(ok))

	mismatch := decodeRecord(t, `{"total": 100, "lineItems": [{"unitPrice": 50}]}`)
	require.ErrorIs(t, ValidateExpense(mismatch), ErrInvalidLineItem)

	badPrice := decodeRecord(t, `{"lineItems": [{"unitPrice": "lots"}]}`)
	require.ErrorIs(t, ValidateExpense(badPrice), ErrInvalidLineItem)

	badShape := decodeRecord(t, `{"lineItems": "none"}`)
	require.ErrorIs(t, ValidateExpense(badShape), ErrInvalidLineItem)

	require.NoError(t, ValidateExpense(tablestate.Map{"id": 1, "total": "5"}))
}

func TestLineItemsFromRecord_Defaults(t *testing.T) {
	rec := decodeRecord(t, `{"lineItems": [{"description": "Misc", "unitPrice": 12.5}]}`)
	items, err := LineItemsFromRecord(rec)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Misc", items[0].Description)
	require.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
	require.True(t, items[0].TaxRate.IsZero())
	require.True(t, dec("12.5").Equal(items[0].Amount()))
}
