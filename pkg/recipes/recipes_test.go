package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, nil)
}

func pancakes() models.Recipe {
	return models.Recipe{
		Title:       "Pancakes",
		Cuisine:     "American",
		Tags:        []string{"breakfast"},
		Ingredients: []string{"2 cups flour", "3 eggs", "1 cup milk"},
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(1, pancakes())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1), created.ChatID)
	assert.Equal(t, "manual", created.Source)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.Equal(t, created.Ingredients, got.Ingredients)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(1, models.Recipe{Title: " ", Ingredients: []string{"salt"}})
	assert.Error(t, err)

	_, err = svc.Create(1, models.Recipe{Title: "Empty"})
	assert.Error(t, err)
}

func TestListIsPerChat(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(1, pancakes())
	require.NoError(t, err)
	other := pancakes()
	other.Title = "Waffles"
	_, err = svc.Create(2, other)
	require.NoError(t, err)

	list, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pancakes", list[0].Title)
}

func TestListByTag(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(1, pancakes())
	require.NoError(t, err)

	soup := models.Recipe{
		Title:       "Tomato Soup",
		Tags:        []string{"Dinner", "vegetarian"},
		Ingredients: []string{"4 tomatoes"},
	}
	_, err = svc.Create(1, soup)
	require.NoError(t, err)

	tagged, err := svc.ListByTag(1, "dinner")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Tomato Soup", tagged[0].Title)

	none, err := svc.ListByTag(1, "dessert")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(1, pancakes())
	require.NoError(t, err)

	found, err := svc.FindByTitle(1, "pan")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", found.Title)

	_, err = svc.FindByTitle(1, "lasagna")
	assert.Error(t, err)
}

func TestUpdateAndSetTags(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(1, pancakes())
	require.NoError(t, err)

	require.NoError(t, svc.SetTags(created.ID, []string{"breakfast", "quick"}))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"breakfast", "quick"}, got.Tags)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(1, pancakes())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Get(created.ID)
	assert.Error(t, err)
}

func TestRankByPantry(t *testing.T) {
	full := models.Recipe{
		Title:       "Scrambled Eggs",
		Ingredients: []string{"3 eggs", "1 tbsp butter"},
	}
	partial := models.Recipe{
		Title:       "Pancakes",
		Ingredients: []string{"2 cups flour", "3 eggs", "1 cup milk"},
	}
	none := models.Recipe{
		Title:       "Tomato Soup",
		Ingredients: []string{"4 tomatoes", "1 onion"},
	}

	pantry := []models.PantryItem{{Name: "Eggs"}, {Name: "Butter"}, {Name: "Flour"}}

	ranked := RankByPantry([]models.Recipe{none, partial, full}, pantry, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Scrambled Eggs", ranked[0].Recipe.Title)
	assert.Equal(t, 100, ranked[0].Summary.MatchPercentage)
	assert.Equal(t, "Pancakes", ranked[1].Recipe.Title)
	assert.Equal(t, 67, ranked[1].Summary.MatchPercentage)
	assert.Equal(t, "Tomato Soup", ranked[2].Recipe.Title)
	assert.Equal(t, 0, ranked[2].Summary.MatchPercentage)
}

func TestRankByPantryLimit(t *testing.T) {
	recipes := []models.Recipe{
		{Title: "A", Ingredients: []string{"salt"}},
		{Title: "B", Ingredients: []string{"pepper"}},
		{Title: "C", Ingredients: []string{"sugar"}},
	}
	ranked := RankByPantry(recipes, nil, 2)
	assert.Len(t, ranked, 2)
}

func TestSubstitutionsRequireAIClient(t *testing.T) {
	svc := newTestService(t)
	recipe := pancakes()
	_, err := svc.Substitutions(&recipe, nil)
	assert.Error(t, err)

	_, err = svc.AutoTag("recipe:1:123")
	assert.Error(t, err)
}
