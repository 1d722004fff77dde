package cart

import (
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(sizeID string, price int64, amount int) domain.CartLineItem {
	return domain.CartLineItem{
		SizeID:          sizeID,
		Name:            "M",
		ColorID:         "color-" + sizeID,
		ColorName:       "Noir",
		ColorSlug:       "t-shirt-simple-noir",
		ProductID:       "product-1",
		ProductSlug:     "t-shirt-simple",
		ProductName:     "T-shirt simple",
		UnitPrice:       decimal.NewFromInt(price),
		SupplierName:    "Supplier 1",
		SupplierAddress: "1 Avenue de la République, 75011 Paris",
		Amount:          amount,
	}
}

func TestAddItemAppendsWithoutMutatingInput(t *testing.T) {
	existing := domain.Cart{lineItem("existing", 80, 8)}
	got := AddItem(existing, lineItem("A", 32, 1))

	require.Len(t, got, 2)
	assert.Equal(t, "existing", got[0].SizeID)
	assert.Equal(t, "A", got[1].SizeID)
	assert.Len(t, existing, 1)
}

func TestAddItemKeepsDuplicateSizes(t *testing.T) {
	c := AddItem(AddItem(nil, lineItem("A", 32, 1)), lineItem("A", 32, 2))
	require.Len(t, c, 2)
	assert.Equal(t, 1, c[0].Amount)
	assert.Equal(t, 2, c[1].Amount)
}

func TestUpdateAmount(t *testing.T) {
	original := domain.Cart{lineItem("A", 32, 1)}
	got, err := UpdateAmount(original, "A", 2)
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Cart{lineItem("A", 32, 2)}))
	assert.Equal(t, 1, original[0].Amount, "input must stay untouched")
}

func TestUpdateAmountIsIdempotent(t *testing.T) {
	c := domain.Cart{lineItem("A", 32, 1), lineItem("B", 36, 4)}
	once, err := UpdateAmount(c, "B", 3)
	require.NoError(t, err)
	twice, err := UpdateAmount(once, "B", 3)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestUpdateAmountUnknownSize(t *testing.T) {
	_, err := UpdateAmount(domain.Cart{lineItem("A", 32, 1)}, "n'existe pas", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAmountRejectsNonPositive(t *testing.T) {
	for _, amount := range []int{0, -3} {
		_, err := UpdateAmount(domain.Cart{lineItem("A", 32, 1)}, "A", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "amount %d", amount)
	}
}

func TestParseAmount(t *testing.T) {
	for _, raw := range []any{3, int64(3), float64(3), "3", " 3 "} {
		n, err := ParseAmount(raw)
		require.NoError(t, err, "raw %#v", raw)
		assert.Equal(t, 3, n)
	}
	for _, raw := range []any{"autre type", false, true, []any{}, map[string]any{}, nil, 2.5, ""} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "raw %#v", raw)
	}
}

func TestRemoveItem(t *testing.T) {
	got := RemoveItem(domain.Cart{lineItem("A", 32, 1)}, "A")
	assert.Empty(t, got)
}

func TestRemoveItemMissingSizeIsNoop(t *testing.T) {
	c := domain.Cart{lineItem("A", 32, 1)}
	got := RemoveItem(c, "B")
	assert.True(t, got.Equal(c))
}

func TestRemoveItemOnlyDropsFirstDuplicate(t *testing.T) {
	c := domain.Cart{lineItem("A", 32, 1), lineItem("B", 36, 1), lineItem("A", 32, 5)}
	got := RemoveItem(c, "A")
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].SizeID)
	assert.Equal(t, 5, got[1].Amount)
	assert.Len(t, c, 3)
}

func TestAddThenRemoveRestoresCart(t *testing.T) {
	base := domain.Cart{lineItem("X", 36, 2), lineItem("Y", 36, 1)}
	got := RemoveItem(AddItem(base, lineItem("A", 32, 1)), "A")
	assert.True(t, got.Equal(base))
}

func TestCartLifecycle(t *testing.T) {
	c := AddItem(domain.Cart{}, lineItem("A", 32, 1))
	assert.True(t, c.Equal(domain.Cart{lineItem("A", 32, 1)}))

	c, err := UpdateAmount(c, "A", 3)
	require.NoError(t, err)
	assert.True(t, c.Equal(domain.Cart{lineItem("A", 32, 3)}))

	c = RemoveItem(c, "A")
	assert.True(t, c.Equal(domain.Cart{}))
}

func TestSummarize(t *testing.T) {
	c := domain.Cart{lineItem("A", 32, 2), lineItem("B", 36, 1)}
	got := Summarize(c, decimal.NewFromInt(5))

	assert.Equal(t, 3, got.Count)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal %s", got.Subtotal)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(105)), "total %s", got.Total)
	assert.True(t, got.Tax.Equal(decimal.NewFromInt(21)), "tax %s", got.Tax)
}

func TestSummarizeRoundsTaxToCents(t *testing.T) {
	c := domain.Cart{lineItem("A", 32, 1)}
	c[0].UnitPrice = decimal.RequireFromString("32.01")
	got := Summarize(c, decimal.NewFromInt(5))

	assert.True(t, got.Total.Equal(decimal.RequireFromString("37.01")), "total %s", got.Total)
	assert.Equal(t, "7.40", got.Tax.StringFixed(2))
	assert.True(t, got.Tax.Equal(got.Tax.Round(2)), "tax %s", got.Tax)
	assert.True(t, got.Tax.Equal(decimal.RequireFromString("7.4")))
}

func TestSummarizeEmptyCart(t *testing.T) {
	got := Summarize(nil, decimal.NewFromInt(16))
	assert.Zero(t, got.Count)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(16)))
	assert.True(t, got.Tax.Equal(decimal.RequireFromString("3.2")))
}
