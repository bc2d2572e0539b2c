package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/pkg/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestGetCreatesEmptyPantry(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.Get(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ChatID)
	assert.Empty(t, p.Items)
}

func TestAddAndListItems(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItem(1, "Cheddar Cheese", "200", "g"))
	require.NoError(t, svc.AddItem(1, "Eggs", "6", ""))

	items, err := svc.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Sorted by name
	assert.Equal(t, "Cheddar Cheese", items[0].Name)
	assert.Equal(t, "Eggs", items[1].Name)
	assert.Equal(t, "200", items[0].Quantity)
	assert.Equal(t, "g", items[0].Unit)
}

func TestAddItemRejectsBlankName(t *testing.T) {
	svc := newTestService(t)
	assert.Error(t, svc.AddItem(1, "   ", "", ""))
}

func TestAddItemOverwritesCaseInsensitively(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItem(1, "Milk", "1", "l"))
	require.NoError(t, svc.AddItem(1, "milk", "2", "l"))

	items, err := svc.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Quantity)
}

func TestAddItemsSkipsBlanks(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItems(1, []string{"flour", "  ", "", "sugar"}))

	items, err := svc.ListItems(1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRemoveItems(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItems(1, []string{"flour", "sugar", "milk"}))
	require.NoError(t, svc.RemoveItem(1, "Sugar"))
	require.NoError(t, svc.RemoveItems(1, []string{"milk"}))

	items, err := svc.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "flour", items[0].Name)
}

func TestReset(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItems(7, []string{"flour", "sugar"}))
	require.NoError(t, svc.Reset(7))

	items, err := svc.ListItems(7)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPantriesAreIsolatedPerChat(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddItem(1, "flour", "", ""))
	require.NoError(t, svc.AddItem(2, "sugar", "", ""))

	items1, err := svc.ListItems(1)
	require.NoError(t, err)
	items2, err := svc.ListItems(2)
	require.NoError(t, err)

	require.Len(t, items1, 1)
	require.Len(t, items2, 1)
	assert.Equal(t, "flour", items1[0].Name)
	assert.Equal(t, "sugar", items2[0].Name)
}
