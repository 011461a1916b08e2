// Package calc derives money figures from records: line-item totals,
// discounts and tax, job costs, profit and revenue roll-ups.
//
// Percentages are plain numbers (8.5 means 8.5%). Arithmetic is float64 with
// no intermediate rounding; rounding happens only when amounts are formatted.
package calc

import "github.com/dmitrijs2005/jobkeeper/internal/client/models"

func LineAmount(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// Subtotal sums the stored amounts; it does not recompute them.
func Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

func DiscountAmount(subtotal, discountPercent float64) float64 {
	return subtotal * discountPercent / 100
}

type Breakdown struct {
	Subtotal       float64
	DiscountAmount float64
	Taxable        float64
	TaxAmount      float64
	Total          float64
}

// Totals computes the document breakdown. A nil discountPercent means no
// discount, so Taxable equals Subtotal.
func Totals(items []models.LineItem, discountPercent *float64, taxRate float64) Breakdown {
	b := Breakdown{Subtotal: Subtotal(items)}
	if discountPercent != nil {
		b.DiscountAmount = DiscountAmount(b.Subtotal, *discountPercent)
	}
	b.Taxable = b.Subtotal - b.DiscountAmount
	b.TaxAmount = b.Taxable * taxRate / 100
	b.Total = b.Taxable + b.TaxAmount
	return b
}

// RecomputeLineItems returns a copy of items with Amount = Quantity × UnitPrice.
func RecomputeLineItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, it := range items {
		it.Amount = LineAmount(it.Quantity, it.UnitPrice)
		out[i] = it
	}
	return out
}

// ApplyToInvoice recomputes line amounts and stores the breakdown on inv.
// DiscountAmount is only set when a discount percent is present.
func ApplyToInvoice(inv *models.Invoice) {
	inv.LineItems = RecomputeLineItems(inv.LineItems)
	b := Totals(inv.LineItems, inv.DiscountPercent, inv.TaxRate)
	inv.Subtotal = b.Subtotal
	inv.DiscountAmount = discountPtr(inv.DiscountPercent, b.DiscountAmount)
	inv.TaxAmount = b.TaxAmount
	inv.Total = b.Total
}

func ApplyToQuote(q *models.Quote) {
	q.LineItems = RecomputeLineItems(q.LineItems)
	b := Totals(q.LineItems, q.DiscountPercent, q.TaxRate)
	q.Subtotal = b.Subtotal
	q.DiscountAmount = discountPtr(q.DiscountPercent, b.DiscountAmount)
	q.TaxAmount = b.TaxAmount
	q.Total = b.Total
}

func discountPtr(pct *float64, amount float64) *float64 {
	if pct == nil {
		return nil
	}
	return &amount
}
