package cart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/pkg/cart"
)

func TestAddSameProductTwiceAccumulatesQuantity(t *testing.T) {
	store := cart.NewStore(time.Hour)

	store.Add("sess-1", cart.Item{ProductID: 1, Name: "Es Teh", Price: 5000})
	items := store.Add("sess-1", cart.Item{ProductID: 1, Name: "Es Teh", Price: 5000})

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddDistinctProductsPreservesInsertionOrder(t *testing.T) {
	store := cart.NewStore(time.Hour)

	store.Add("sess-1", cart.Item{ProductID: 7, Name: "Nasi Goreng", Price: 18000})
	items := store.Add("sess-1", cart.Item{ProductID: 3, Name: "Es Teh", Price: 5000})

	require.Len(t, items, 2)
	assert.Equal(t, uint(7), items[0].ProductID)
	assert.Equal(t, uint(3), items[1].ProductID)
}

func TestAddReplacesSliceWithoutMutatingPriorSnapshot(t *testing.T) {
	store := cart.NewStore(time.Hour)

	before := store.Add("sess-1", cart.Item{ProductID: 1, Name: "Es Teh", Price: 5000})
	require.Equal(t, 1, before[0].Quantity)

	after := store.Add("sess-1", cart.Item{ProductID: 1, Name: "Es Teh", Price: 5000})

	// The earlier snapshot must be untouched by the second Add.
	assert.Equal(t, 1, before[0].Quantity)
	assert.Equal(t, 2, after[0].Quantity)
}

func TestCartsAreSessionScoped(t *testing.T) {
	store := cart.NewStore(time.Hour)

	store.Add("sess-a", cart.Item{ProductID: 1, Price: 5000})
	store.Add("sess-b", cart.Item{ProductID: 2, Price: 7000})

	a := store.Items("sess-a")
	b := store.Items("sess-b")

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, uint(1), a[0].ProductID)
	assert.Equal(t, uint(2), b[0].ProductID)
}

func TestRemoveAndClear(t *testing.T) {
	store := cart.NewStore(time.Hour)

	store.Add("sess-1", cart.Item{ProductID: 1, Price: 5000})
	store.Add("sess-1", cart.Item{ProductID: 2, Price: 7000})

	items := store.Remove("sess-1", 1)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ProductID)

	store.Clear("sess-1")
	assert.Empty(t, store.Items("sess-1"))
}

func TestSweepDropsIdleCarts(t *testing.T) {
	store := cart.NewStore(time.Nanosecond)

	store.Add("sess-1", cart.Item{ProductID: 1, Price: 5000})
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, store.Sweep())
	assert.Empty(t, store.Items("sess-1"))
}
