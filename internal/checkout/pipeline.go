package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/electromart/storefront/internal/backend"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/session"
)

// Form is the shopper's checkout input: the shipping address and a payment
// method from the closed set.
type Form struct {
	Address        domain.Address
	Payment        domain.PaymentMethod
	IdempotencyKey string // optional; minted when empty
}

// Pipeline validates, builds and submits the final order request. One
// idempotency key covers all retries of the same checkout attempt, so a
// resubmit after a lost response cannot create a duplicate order.
type Pipeline struct {
	api  backend.CheckoutAPI
	sess session.Accessor
	bus  *events.Bus
	log  *logrus.Logger

	mu      sync.Mutex
	state   SubmitState
	idemKey string
	result  *domain.OrderResult
}

func NewPipeline(api backend.CheckoutAPI, sess session.Accessor, bus *events.Bus, log *logrus.Logger) *Pipeline {
	return &Pipeline{api: api, sess: sess, bus: bus, log: log, state: SubmitIdle}
}

func (p *Pipeline) State() SubmitState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Result returns the order identifier once the pipeline has Succeeded.
func (p *Pipeline) Result() (domain.OrderResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return domain.OrderResult{}, false
	}
	return *p.result, true
}

// IdempotencyKey exposes the key covering the current attempt so a caller
// can resubmit with the same one after a Failed state.
func (p *Pipeline) IdempotencyKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idemKey
}

// Submit runs the full pipeline for a resolved source. All preconditions
// are checked before the transition to Submitting; a validation failure
// never reaches the network. On failure the pipeline lands in Failed with
// the form untouched and permits re-submission.
func (p *Pipeline) Submit(ctx context.Context, source domain.CheckoutSource, form Form) (domain.OrderResult, error) {
	sess, err := p.sess.Current(ctx)
	if err != nil {
		return domain.OrderResult{}, session.ErrUnauthenticated
	}
	if source == nil {
		return domain.OrderResult{}, ErrNoSource
	}
	if verr := validateForm(form); verr != nil {
		return domain.OrderResult{}, verr
	}

	p.mu.Lock()
	if !p.state.canSubmit() {
		p.mu.Unlock()
		return domain.OrderResult{}, ErrSubmitConflict
	}
	p.state = SubmitSubmitting
	if form.IdempotencyKey != "" {
		p.idemKey = form.IdempotencyKey
	} else if p.idemKey == "" {
		p.idemKey = uuid.NewString()
	}
	key := p.idemKey
	p.mu.Unlock()

	req := buildRequest(source, form, key)

	result, err := p.api.SubmitOrder(ctx, sess, req)
	if err != nil {
		p.mu.Lock()
		p.state = SubmitFailed
		p.mu.Unlock()
		p.log.WithError(err).Warn("order submission failed")
		if errors.Is(err, backend.ErrAuthRequired) {
			return domain.OrderResult{}, session.ErrUnauthenticated
		}
		return domain.OrderResult{}, err
	}

	p.mu.Lock()
	p.state = SubmitSucceeded
	p.result = &result
	p.idemKey = ""
	p.mu.Unlock()

	// The backend consumed the selected cart items; every cart surface
	// must re-fetch.
	if _, fromCart := source.(domain.CartSubset); fromCart {
		p.bus.PublishCartChanged()
	}

	p.log.WithField("order_id", result.OrderID).Info("order placed")
	return result, nil
}

// buildRequest mirrors the resolved source exactly: the cart item id subset
// or the direct product id plus quantity, never both.
func buildRequest(source domain.CheckoutSource, form Form, idemKey string) backend.CheckoutRequestDTO {
	req := backend.CheckoutRequestDTO{
		Address:        form.Address,
		PaymentMethod:  form.Payment,
		IdempotencyKey: idemKey,
	}
	switch src := source.(type) {
	case domain.CartSubset:
		req.CartItemIDs = src.CartItemIDs
	case domain.DirectItem:
		pid, qty := src.ProductID, src.Quantity
		req.DirectProductID = &pid
		req.DirectProductQuantity = &qty
	}
	return req
}

func validateForm(form Form) error {
	var missing []string
	required := []struct {
		name, value string
	}{
		{"addressLine1", form.Address.Line1},
		{"district", form.Address.District},
		{"state", form.Address.State},
		{"country", form.Address.Country},
		{"phoneNumber", form.Address.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if !form.Payment.Valid() {
		missing = append(missing, "paymentMethod")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
