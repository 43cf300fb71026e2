package domain

// OrderSummary is derived, never persisted. SGST and CGST are the two equal
// tax components at 2.5% of the subtotal each.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	SGST     float64 `json:"sgst"`
	CGST     float64 `json:"cgst"`
	Total    float64 `json:"total"`
}

// OrderResult is the opaque identifier the backend returns for a placed
// order.
type OrderResult struct {
	OrderID int64 `json:"orderId"`
}
