package domain

// CheckoutSource describes which items a checkout attempt is buying: either
// a subset of existing cart items or a single "buy now" product that never
// touched the cart. The sum type makes "exactly one shape" a compile-time
// guarantee rather than a convention over optional fields.
type CheckoutSource interface {
	isCheckoutSource()
}

// CartSubset selects existing cart items by their cart item ids.
type CartSubset struct {
	CartItemIDs []int64
}

// DirectItem is the "buy now" entry point: one product, bought directly.
type DirectItem struct {
	ProductID int64
	Name      string
	Quantity  int
	Price     float64
	ImageURL  string
}

func (CartSubset) isCheckoutSource() {}
func (DirectItem) isCheckoutSource() {}

// CheckoutLine is one normalized line of a resolved checkout, whichever
// source it came from.
type CheckoutLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
}

type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "UPI"
	PaymentWallet     PaymentMethod = "WALLET"
	PaymentCashOnHand PaymentMethod = "CASH_ON_HAND"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentUPI, PaymentWallet, PaymentCashOnHand:
		return true
	default:
		return false
	}
}

// Address carries the shipping address fields of the checkout form. Line2
// and AltPhone are optional; everything else is required before submission.
type Address struct {
	Line1    string `json:"addressLine1"`
	Line2    string `json:"addressLine2,omitempty"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Phone    string `json:"phoneNumber"`
	AltPhone string `json:"alternativePhoneNumber,omitempty"`
}
