// Package pantry manages the per-chat inventory of ingredients on hand.
package pantry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

// Service provides pantry management functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new pantry service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
	}
}

func pantryKey(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

// Get retrieves the pantry for a chat, creating an empty one on first use
func (s *Service) Get(chatID int64) (*models.Pantry, error) {
	key := pantryKey(chatID)

	var p models.Pantry
	err := s.store.Get(key, &p)
	if err != nil {
		p = models.Pantry{
			ID:          key,
			ChatID:      chatID,
			Items:       make(map[string]models.PantryItem),
			LastUpdated: time.Now(),
		}

		if err := s.store.Set(key, p); err != nil {
			return nil, fmt.Errorf("failed to create pantry: %w", err)
		}
	}

	if p.Items == nil {
		p.Items = make(map[string]models.PantryItem)
	}

	return &p, nil
}

// AddItem adds one item to the pantry. Item names are unique per pantry,
// case-insensitively; adding an existing name updates its quantity.
func (s *Service) AddItem(chatID int64, name, quantity, unit string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("item name must not be empty")
	}

	p, err := s.Get(chatID)
	if err != nil {
		return err
	}

	p.Items[strings.ToLower(name)] = models.PantryItem{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		AddedAt:  time.Now(),
	}
	p.LastUpdated = time.Now()

	return s.store.Set(p.ID, p)
}

// AddItems adds multiple items at once, skipping blank names
func (s *Service) AddItems(chatID int64, names []string) error {
	p, err := s.Get(chatID)
	if err != nil {
		return err
	}

	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p.Items[strings.ToLower(name)] = models.PantryItem{
			Name:    name,
			AddedAt: time.Now(),
		}
		added++
	}

	if added == 0 {
		return nil
	}
	p.LastUpdated = time.Now()

	s.logger.Info("Added %d items to pantry of chat %d", added, chatID)
	return s.store.Set(p.ID, p)
}

// RemoveItem removes an item from the pantry by name
func (s *Service) RemoveItem(chatID int64, name string) error {
	p, err := s.Get(chatID)
	if err != nil {
		return err
	}

	delete(p.Items, strings.ToLower(strings.TrimSpace(name)))
	p.LastUpdated = time.Now()

	return s.store.Set(p.ID, p)
}

// RemoveItems removes multiple items at once
func (s *Service) RemoveItems(chatID int64, names []string) error {
	p, err := s.Get(chatID)
	if err != nil {
		return err
	}

	for _, name := range names {
		delete(p.Items, strings.ToLower(strings.TrimSpace(name)))
	}
	p.LastUpdated = time.Now()

	return s.store.Set(p.ID, p)
}

// ListItems returns the pantry items sorted by name for stable display
// and deterministic first-match-wins matching.
func (s *Service) ListItems(chatID int64) ([]models.PantryItem, error) {
	p, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	items := make([]models.PantryItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return items, nil
}

// Reset replaces the pantry with an empty one
func (s *Service) Reset(chatID int64) error {
	key := pantryKey(chatID)

	p := models.Pantry{
		ID:          key,
		ChatID:      chatID,
		Items:       make(map[string]models.PantryItem),
		LastUpdated: time.Now(),
	}

	return s.store.Set(key, p)
}
