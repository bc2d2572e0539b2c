package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/pkg/pantry"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *pantry.Service) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	pantrySvc := pantry.New(store)
	return New(store, pantrySvc), pantrySvc
}

func TestBuildDeduplicatesByCore(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.Build(1, "Pancakes", []string{"2 cups flour", "1 cup flour", "3 eggs", "  ", ""})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "2 cups flour", list.Items[0].Ingredient)
	assert.Equal(t, "3 eggs", list.Items[1].Ingredient)
	assert.Equal(t, "Pancakes", list.RecipeRef)
}

func TestGetWithoutListReturnsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.Get(99)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(99), list.ChatID)
}

func TestMarkPurchased(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Build(1, "Pancakes", []string{"2 cups flour", "3 eggs"})
	require.NoError(t, err)

	item, err := svc.MarkPurchased(1, "flour")
	require.NoError(t, err)
	assert.True(t, item.Purchased)

	list, err := svc.Get(1)
	require.NoError(t, err)
	assert.True(t, list.Items[0].Purchased)
	assert.False(t, list.Items[1].Purchased)

	_, err = svc.MarkPurchased(1, "caviar")
	assert.Error(t, err)
}

func TestCommitPurchased(t *testing.T) {
	svc, pantrySvc := newTestService(t)

	_, err := svc.Build(1, "Pancakes", []string{"2 cups flour", "3 eggs"})
	require.NoError(t, err)
	_, err = svc.MarkPurchased(1, "flour")
	require.NoError(t, err)

	n, err := svc.CommitPurchased(1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The parsed core name landed in the pantry
	items, err := pantrySvc.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "flour", items[0].Name)

	// The committed item left the list
	list, err := svc.Get(1)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "3 eggs", list.Items[0].Ingredient)
}

func TestCommitPurchasedNothingBought(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Build(1, "", []string{"2 cups flour"})
	require.NoError(t, err)

	n, err := svc.CommitPurchased(1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Build(1, "", []string{"2 cups flour"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(1))

	list, err := svc.Get(1)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
