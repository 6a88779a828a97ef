package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/app/models"
	"waroengpos/app/services"
	"waroengpos/pkg/apperr"
)

func TestCalculateTotals(t *testing.T) {
	prices := map[uint]int64{1: 5000, 2: 12000}

	totals, err := services.CalculateTotals([]services.CheckoutLine{
		{ProductID: 1, Quantity: 2},
	}, prices)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(1000), totals.Tax)
	assert.Equal(t, int64(11000), totals.GrandTotal)
}

func TestCalculateTotalsRoundsTaxHalfUp(t *testing.T) {
	cases := []struct {
		subtotal int64
		tax      int64
	}{
		{100, 10},
		{101, 10},    // 10.1 rounds down
		{105, 11},    // 10.5 rounds up
		{109, 11},    // 10.9 rounds up
		{9995, 1000}, // 999.5 rounds up
	}

	for _, tc := range cases {
		totals, err := services.CalculateTotals([]services.CheckoutLine{
			{ProductID: 7, Quantity: 1},
		}, map[uint]int64{7: tc.subtotal})
		require.NoError(t, err)
		assert.Equal(t, tc.tax, totals.Tax, "subtotal %d", tc.subtotal)
	}
}

func TestCalculateTotalsMultipleLines(t *testing.T) {
	prices := map[uint]int64{1: 18000, 2: 5000, 3: 8000}

	totals, err := services.CalculateTotals([]services.CheckoutLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
		{ProductID: 3, Quantity: 1},
	}, prices)
	require.NoError(t, err)

	assert.Equal(t, int64(59000), totals.Subtotal)
	assert.Equal(t, int64(5900), totals.Tax)
	assert.Equal(t, int64(64900), totals.GrandTotal)
}

func TestCalculateTotalsEmptyOrder(t *testing.T) {
	_, err := services.CalculateTotals(nil, map[uint]int64{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCalculateTotalsQuantityBelowOne(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := services.CalculateTotals([]services.CheckoutLine{
			{ProductID: 1, Quantity: qty},
		}, map[uint]int64{1: 5000})
		require.Error(t, err, "quantity %d", qty)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	}
}

func TestCalculateTotalsUnknownProduct(t *testing.T) {
	_, err := services.CalculateTotals([]services.CheckoutLine{
		{ProductID: 99, Quantity: 1},
	}, map[uint]int64{1: 5000})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCalculateTotalsGrandTotalCeiling(t *testing.T) {
	// 9,090,909 + 10% tax (909,091 after rounding) = exactly 10,000,000.
	inside, err := services.CalculateTotals([]services.CheckoutLine{
		{ProductID: 1, Quantity: 1},
	}, map[uint]int64{1: 9_090_909})
	require.NoError(t, err)
	assert.LessOrEqual(t, inside.GrandTotal, models.MaxGrandTotal)

	_, err = services.CalculateTotals([]services.CheckoutLine{
		{ProductID: 1, Quantity: 1},
	}, map[uint]int64{1: 9_500_000})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
