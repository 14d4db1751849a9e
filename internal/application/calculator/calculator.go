// Package calculator derives line and transaction amounts from unit-keyed
// price and quantity values. Every function is pure.
package calculator

import (
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimals every amount is rounded to
const AmountPlaces = 2

// ParseUnitValue reads one price or quantity cell. The value is present only
// when it is a plain decimal greater than zero; empty, non-numeric, exponent
// notation, zero and negative cells are all absent.
func ParseUnitValue(s string) (decimal.Decimal, bool) {
	d, err := entity.ParseNumber(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// LineAmount sums price*quantity over the receiving units where both are present,
// rounded half-up to two places.
func LineAmount(price, quantity entity.UnitValues) decimal.Decimal {
	sum := decimal.Zero
	for _, unit := range enum.ReceivingUnits {
		p, ok := ParseUnitValue(price.Get(unit))
		if !ok {
			continue
		}
		q, ok := ParseUnitValue(quantity.Get(unit))
		if !ok {
			continue
		}
		sum = sum.Add(p.Mul(q))
	}
	return sum.Round(AmountPlaces)
}

// FormatAmount renders d with exactly two decimals
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// ItemAmount is the formatted amount of one line item
func ItemAmount(item entity.LineItem) string {
	return FormatAmount(LineAmount(item.SupplierPrice, item.Quantity))
}

// ParseAmount reads a stored amount string; anything non-numeric counts as zero
func ParseAmount(s string) decimal.Decimal {
	d, err := entity.ParseNumber(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SumAmounts adds the already rounded amount of every item. It does not
// recompute from prices, so the result may differ from rounding the raw sum.
func SumAmounts(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(ParseAmount(item.Amount))
	}
	return sum
}

// Totals are the derived money fields of a transaction
type Totals struct {
	Total       decimal.Decimal
	ReturnTotal decimal.Decimal
	Net         decimal.Decimal
}

// ComputeTotals derives the totals of a transaction from its items and return items
func ComputeTotals(items, returnItems []entity.LineItem) Totals {
	total := SumAmounts(items)
	returnTotal := SumAmounts(returnItems)
	return Totals{
		Total:       total,
		ReturnTotal: returnTotal,
		Net:         total.Sub(returnTotal),
	}
}

// Apply writes the formatted totals onto tx
func (t Totals) Apply(tx *entity.ReceivingTransaction) {
	tx.TotalAmount = FormatAmount(t.Total)
	tx.ReturnTotalAmount = FormatAmount(t.ReturnTotal)
	tx.NetAmount = FormatAmount(t.Net)
}

// Recalculate normalises every item amount of tx and then derives its totals
func Recalculate(tx *entity.ReceivingTransaction) Totals {
	for i := range tx.Items {
		tx.Items[i].Amount = ItemAmount(tx.Items[i])
	}
	for i := range tx.ReturnItems {
		tx.ReturnItems[i].Amount = ItemAmount(tx.ReturnItems[i])
	}
	t := ComputeTotals(tx.Items, tx.ReturnItems)
	t.Apply(tx)
	return t
}
