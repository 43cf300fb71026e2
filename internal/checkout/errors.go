package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStaleSelection means the selected cart item ids are no longer in
	// the fetched cart (removed elsewhere). The checkout must fail loudly
	// and send the shopper back to the cart, never proceed empty.
	ErrStaleSelection = errors.New("selected cart items are no longer in the cart")

	// ErrNoSource means checkout was reached with no source information;
	// the caller should redirect to the cart view.
	ErrNoSource = errors.New("no items selected for checkout")

	// ErrSubmitConflict rejects a submit while another one is in flight or
	// after the order already succeeded.
	ErrSubmitConflict = errors.New("order submission not permitted in current state")
)

// ValidationError blocks submission locally; no network call is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Missing, ", "))
}
