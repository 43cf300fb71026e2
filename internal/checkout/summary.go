package checkout

import "github.com/electromart/storefront/internal/domain"

// taxRate is each of the two equal GST components (SGST and CGST).
const taxRate = 0.025

// Summarize derives subtotal, the two tax components and the total from a
// line list. Pure; callers recompute it on every change to the resolved
// lines rather than caching it across a source change.
func Summarize(lines []domain.CheckoutLine) domain.OrderSummary {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	tax := subtotal * taxRate
	return domain.OrderSummary{
		Subtotal: subtotal,
		SGST:     tax,
		CGST:     tax,
		Total:    subtotal + tax + tax,
	}
}
