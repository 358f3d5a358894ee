package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanimarket/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Values(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.GetValue(KeyToken)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.PutValue(KeyToken, "abc123"))

	value, found, err := s.GetValue(KeyToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", value)

	// Overwrite replaces, never duplicates.
	require.NoError(t, s.PutValue(KeyToken, "def456"))
	value, _, err = s.GetValue(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "def456", value)

	require.NoError(t, s.DeleteValue(KeyToken))
	_, found, err = s.GetValue(KeyToken)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is fine.
	require.NoError(t, s.DeleteValue(KeyToken))
}

func TestStore_CartRoundTrip(t *testing.T) {
	s := openTestStore(t)

	items, err := s.LoadCart()
	require.NoError(t, err)
	assert.Empty(t, items)

	cart := []models.CartItem{
		{ProductID: "A", ProductName: "Beras", UnitPrice: decimal.NewFromInt(12500), Quantity: 2, Satuan: "kg", SellerID: "p1"},
		{ProductID: "B", ProductName: "Cabai", UnitPrice: decimal.RequireFromString("7500.50"), Quantity: 1, Satuan: "kg", SellerID: "p2"},
	}
	require.NoError(t, s.SaveCart(cart))

	items, err = s.LoadCart()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ProductID)
	assert.Equal(t, "B", items[1].ProductID)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(12500)))
	assert.True(t, items[1].UnitPrice.Equal(decimal.RequireFromString("7500.50")))
	assert.Equal(t, 2, items[0].Quantity)

	// Save replaces wholesale.
	require.NoError(t, s.SaveCart(cart[:1]))
	items, err = s.LoadCart()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ProductID)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PutValue(KeyUser, `{"id":"u1"}`))
	require.NoError(t, s.SaveCart([]models.CartItem{
		{ProductID: "A", ProductName: "Beras", UnitPrice: decimal.NewFromInt(10000), Quantity: 3},
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	value, found, err := s.GetValue(KeyUser)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"u1"}`, value)

	items, err := s.LoadCart()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}
