package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electromart/storefront/internal/cartsync"
	"github.com/electromart/storefront/internal/domain"
	"github.com/electromart/storefront/internal/events"
	"github.com/electromart/storefront/internal/session"
)

func newTestComposer(api *mockCartAPI) (*Composer, *cartsync.Client) {
	sess := session.Static{Session: session.Session{Token: "tok"}}
	cart := cartsync.New(api, sess, cartsync.NewMemoryStore(), "shopper-1", events.NewBus(), testLogger())
	return NewComposer(cart), cart
}

func TestResolve_DirectItem_NoCartFetch(t *testing.T) {
	api := &mockCartAPI{}
	sut, _ := newTestComposer(api)

	lines, err := sut.Resolve(context.Background(), domain.DirectItem{
		ProductID: 7, Name: "Headphones", Quantity: 1, Price: 2000,
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, 2000.0, lines[0].Price)
	assert.Equal(t, ComposeResolved, sut.State())
	assert.Equal(t, 0, api.calls(), "direct item must not fetch the cart")
}

func TestResolve_CartSubset_FiltersSelectedItems(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{Items: []domain.CartItem{
		{ID: 1, ProductID: 10, ProductName: "Laptop", Quantity: 1, Price: 50000},
		{ID: 2, ProductID: 20, ProductName: "Mouse", Quantity: 2, Price: 700},
		{ID: 3, ProductID: 30, ProductName: "Keyboard", Quantity: 1, Price: 1500},
	}}}
	sut, _ := newTestComposer(api)

	lines, err := sut.Resolve(context.Background(), domain.CartSubset{CartItemIDs: []int64{2, 3}})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Mouse", lines[0].Name)
	assert.Equal(t, "Keyboard", lines[1].Name)
	assert.Equal(t, ComposeResolved, sut.State())
}

func TestResolve_CartSubset_StaleSelection(t *testing.T) {
	// The selected ids were removed by another surface in the meantime.
	api := &mockCartAPI{cart: &domain.Cart{Items: []domain.CartItem{
		{ID: 5, ProductID: 10, Quantity: 1, Price: 100},
	}}}
	sut, _ := newTestComposer(api)

	lines, err := sut.Resolve(context.Background(), domain.CartSubset{CartItemIDs: []int64{98, 99}})
	require.ErrorIs(t, err, ErrStaleSelection)
	assert.Nil(t, lines)
	assert.Equal(t, ComposeFailed, sut.State())
}

func TestResolve_CartSubset_EmptyCartIsStale(t *testing.T) {
	api := &mockCartAPI{cart: &domain.Cart{}}
	sut, _ := newTestComposer(api)

	_, err := sut.Resolve(context.Background(), domain.CartSubset{CartItemIDs: []int64{1}})
	require.ErrorIs(t, err, ErrStaleSelection)
	assert.Equal(t, ComposeFailed, sut.State())
}

func TestResolve_NoSource_StaysIdle(t *testing.T) {
	api := &mockCartAPI{}
	sut, _ := newTestComposer(api)

	_, err := sut.Resolve(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoSource)
	assert.Equal(t, ComposeIdle, sut.State())
	assert.Equal(t, 0, api.calls())
}

func TestResolve_EmptySubset_NoSource(t *testing.T) {
	api := &mockCartAPI{}
	sut, _ := newTestComposer(api)

	_, err := sut.Resolve(context.Background(), domain.CartSubset{})
	require.ErrorIs(t, err, ErrNoSource)
	assert.Equal(t, 0, api.calls())
}

func TestResolve_FetchError_Fails(t *testing.T) {
	api := &mockCartAPI{err: fmt.Errorf("backend down")}
	sut, _ := newTestComposer(api)

	_, err := sut.Resolve(context.Background(), domain.CartSubset{CartItemIDs: []int64{1}})
	require.ErrorContains(t, err, "backend down")
	assert.Equal(t, ComposeFailed, sut.State())
}
