// Package recipes manages the per-chat recipe book: creation, editing,
// tagging, discovery by pantry coverage, and substitution suggestions
// for missing ingredients.
package recipes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/match"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/openai"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

// Service provides recipe book functionality
type Service struct {
	store  *storage.Store
	ai     *openai.Client
	logger *logger.Logger
}

// New creates a new recipe service. The AI client may be nil; only
// AutoTag and Substitutions need it.
func New(store *storage.Store, ai *openai.Client) *Service {
	return &Service{
		store:  store,
		ai:     ai,
		logger: logger.New("recipes"),
	}
}

func recipePrefix(chatID int64) string {
	return fmt.Sprintf("recipe:%d:", chatID)
}

// Create stores a new recipe for a chat and assigns it an ID
func (s *Service) Create(chatID int64, recipe models.Recipe) (*models.Recipe, error) {
	recipe.Title = strings.TrimSpace(recipe.Title)
	if recipe.Title == "" {
		return nil, fmt.Errorf("recipe title must not be empty")
	}
	if len(recipe.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe must have at least one ingredient")
	}

	recipe.ID = fmt.Sprintf("%s%d", recipePrefix(chatID), time.Now().UnixNano())
	recipe.ChatID = chatID
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	if recipe.Source == "" {
		recipe.Source = "manual"
	}

	if err := s.store.Set(recipe.ID, recipe); err != nil {
		s.logger.Error("Failed to save recipe %s: %v", recipe.Title, err)
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info("Created recipe %s (%s)", recipe.ID, recipe.Title)
	return &recipe, nil
}

// Get retrieves a recipe by ID
func (s *Service) Get(recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.store.Get(recipeID, &recipe); err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// List returns all recipes of a chat, newest first
func (s *Service) List(chatID int64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.store.ForEach(recipePrefix(chatID), func(key string, data []byte) error {
		var recipe models.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			s.logger.Error("Skipping unreadable recipe %s: %v", key, err)
			return nil
		}
		recipes = append(recipes, recipe)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})

	return recipes, nil
}

// ListByTag returns the recipes of a chat carrying the given tag
func (s *Service) ListByTag(chatID int64, tag string) ([]models.Recipe, error) {
	all, err := s.List(chatID)
	if err != nil {
		return nil, err
	}

	tag = strings.ToLower(strings.TrimSpace(tag))
	var tagged []models.Recipe
	for _, recipe := range all {
		for _, t := range recipe.Tags {
			if strings.ToLower(t) == tag {
				tagged = append(tagged, recipe)
				break
			}
		}
	}

	return tagged, nil
}

// FindByTitle returns the first recipe of a chat whose title contains
// the query, case-insensitively
func (s *Service) FindByTitle(chatID int64, query string) (*models.Recipe, error) {
	all, err := s.List(chatID)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	for i := range all {
		if strings.Contains(strings.ToLower(all[i].Title), query) {
			return &all[i], nil
		}
	}

	return nil, fmt.Errorf("no recipe found for %q", query)
}

// Update persists changes to an existing recipe
func (s *Service) Update(recipe *models.Recipe) error {
	if recipe.ID == "" {
		return fmt.Errorf("recipe has no ID")
	}
	recipe.UpdatedAt = time.Now()
	return s.store.Set(recipe.ID, *recipe)
}

// Delete removes a recipe
func (s *Service) Delete(recipeID string) error {
	return s.store.Delete(recipeID)
}

// SetTags replaces the tags of a recipe
func (s *Service) SetTags(recipeID string, tags []string) error {
	recipe, err := s.Get(recipeID)
	if err != nil {
		return err
	}
	recipe.Tags = tags
	return s.Update(recipe)
}

// AutoTag asks the AI client for tags and stores them
func (s *Service) AutoTag(recipeID string) ([]string, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("no AI client configured")
	}

	recipe, err := s.Get(recipeID)
	if err != nil {
		return nil, err
	}

	tags, err := s.ai.SuggestTags(recipe)
	if err != nil {
		return nil, err
	}

	if err := s.SetTags(recipeID, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Ranked pairs a recipe with its pantry coverage
type Ranked struct {
	Recipe  models.Recipe
	Results []match.Result
	Summary match.Summary
}

// RankByPantry orders recipes by how much of their ingredient list the
// pantry covers, best coverage first. Ties keep the incoming recipe
// order. At most limit recipes are returned (0 means all).
func RankByPantry(recipes []models.Recipe, items []models.PantryItem, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(recipes))
	for _, recipe := range recipes {
		results := match.Match(recipe.Ingredients, items)
		ranked = append(ranked, Ranked{
			Recipe:  recipe,
			Results: results,
			Summary: match.Summarize(results),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Summary.MatchPercentage > ranked[j].Summary.MatchPercentage
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Substitution is an AI substitute suggestion for one missing ingredient
type Substitution struct {
	Ingredient  string
	Substitutes []string
}

// Substitutions suggests substitutes for the ingredients of a recipe the
// pantry does not cover. Covered ingredients are never sent to the AI;
// the same matching keys gate both this and the match display.
func (s *Service) Substitutions(recipe *models.Recipe, items []models.PantryItem) ([]Substitution, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("no AI client configured")
	}

	missing := match.Missing(match.Match(recipe.Ingredients, items))
	if len(missing) == 0 {
		return nil, nil
	}

	available := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) != "" {
			available = append(available, item.Name)
		}
	}

	var subs []Substitution
	for _, line := range missing {
		candidates, err := s.ai.SuggestSubstitutes(line, available)
		if err != nil {
			s.logger.Error("Failed to get substitutes for %q: %v", line, err)
			continue
		}
		if len(candidates) > 0 {
			subs = append(subs, Substitution{Ingredient: line, Substitutes: candidates})
		}
	}

	return subs, nil
}
