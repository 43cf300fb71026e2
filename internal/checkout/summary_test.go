package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electromart/storefront/internal/domain"
)

func TestSummarize(t *testing.T) {
	lines := []domain.CheckoutLine{
		{ProductID: 1, Price: 1000, Quantity: 2},
		{ProductID: 2, Price: 500, Quantity: 1},
	}

	s := Summarize(lines)

	assert.InDelta(t, 2500.0, s.Subtotal, 1e-9)
	assert.InDelta(t, 62.5, s.SGST, 1e-9)
	assert.InDelta(t, 62.5, s.CGST, 1e-9)
	assert.InDelta(t, 2625.0, s.Total, 1e-9)
}

func TestSummarize_TaxComponentsEqualAndTotalAddsUp(t *testing.T) {
	cases := [][]domain.CheckoutLine{
		nil,
		{{Price: 0, Quantity: 1}},
		{{Price: 99.99, Quantity: 3}, {Price: 0.01, Quantity: 7}},
		{{Price: 123456.78, Quantity: 1}, {Price: 1, Quantity: 99}},
	}

	for _, lines := range cases {
		s := Summarize(lines)
		assert.InDelta(t, s.SGST, s.CGST, 1e-9)
		assert.InDelta(t, s.Subtotal*0.025, s.SGST, 1e-9)
		assert.InDelta(t, s.Subtotal+s.SGST+s.CGST, s.Total, 1e-9)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.SGST)
	assert.Zero(t, s.CGST)
	assert.Zero(t, s.Total)
}
