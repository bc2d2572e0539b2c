// Package shopping manages the per-chat shopping list, which is usually
// built from the missing ingredients of a recipe match.
package shopping

import (
	"fmt"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/pkg/ingredient"
	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/pantry"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

// Service provides shopping list functionality
type Service struct {
	store  *storage.Store
	pantry *pantry.Service
	logger *logger.Logger
}

// New creates a new shopping service
func New(store *storage.Store, pantryService *pantry.Service) *Service {
	return &Service{
		store:  store,
		pantry: pantryService,
		logger: logger.New("shopping"),
	}
}

func listKey(chatID int64) string {
	return fmt.Sprintf("shopping:%d", chatID)
}

// Build replaces the shopping list of a chat with the given ingredient
// lines, typically the unmatched lines of a recipe. Blank lines and
// duplicates are dropped; original line text is kept for display.
func (s *Service) Build(chatID int64, recipeTitle string, missing []string) (*models.ShoppingList, error) {
	list := models.ShoppingList{
		ID:        listKey(chatID),
		ChatID:    chatID,
		RecipeRef: recipeTitle,
		UpdatedAt: time.Now(),
	}

	seen := make(map[string]bool)
	for _, line := range missing {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		core := ingredient.Parse(line).Core
		if seen[core] {
			continue
		}
		seen[core] = true
		list.Items = append(list.Items, models.ShoppingItem{Ingredient: line})
	}

	if err := s.store.Set(list.ID, list); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}

	s.logger.Info("Built shopping list for chat %d with %d items", chatID, len(list.Items))
	return &list, nil
}

// Get retrieves the shopping list of a chat. A chat without a list gets
// an empty one, not an error.
func (s *Service) Get(chatID int64) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.store.Get(listKey(chatID), &list)
	if err != nil {
		return &models.ShoppingList{
			ID:        listKey(chatID),
			ChatID:    chatID,
			UpdatedAt: time.Now(),
		}, nil
	}
	return &list, nil
}

// MarkPurchased marks the list item whose text contains the query as
// purchased and returns the matched item
func (s *Service) MarkPurchased(chatID int64, query string) (*models.ShoppingItem, error) {
	list, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	for i := range list.Items {
		if strings.Contains(strings.ToLower(list.Items[i].Ingredient), query) {
			list.Items[i].Purchased = true
			list.UpdatedAt = time.Now()
			if err := s.store.Set(list.ID, *list); err != nil {
				return nil, fmt.Errorf("failed to save shopping list: %w", err)
			}
			return &list.Items[i], nil
		}
	}

	return nil, fmt.Errorf("no shopping list item matches %q", query)
}

// CommitPurchased moves all purchased items into the pantry and removes
// them from the list. The parsed core name becomes the pantry item name,
// so "2 cups flour" lands as "flour".
func (s *Service) CommitPurchased(chatID int64) (int, error) {
	list, err := s.Get(chatID)
	if err != nil {
		return 0, err
	}

	var bought []string
	var remaining []models.ShoppingItem
	for _, item := range list.Items {
		if item.Purchased {
			bought = append(bought, ingredient.Parse(item.Ingredient).Core)
		} else {
			remaining = append(remaining, item)
		}
	}

	if len(bought) == 0 {
		return 0, nil
	}

	if err := s.pantry.AddItems(chatID, bought); err != nil {
		return 0, fmt.Errorf("failed to add purchased items to pantry: %w", err)
	}

	list.Items = remaining
	list.UpdatedAt = time.Now()
	if err := s.store.Set(list.ID, *list); err != nil {
		return 0, fmt.Errorf("failed to save shopping list: %w", err)
	}

	s.logger.Info("Committed %d purchased items to pantry of chat %d", len(bought), chatID)
	return len(bought), nil
}

// Clear removes the shopping list of a chat
func (s *Service) Clear(chatID int64) error {
	return s.store.Delete(listKey(chatID))
}
