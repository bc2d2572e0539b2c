// Package stats tracks per-chat recipe usage: how often each recipe was
// cooked and how the chat rated it.
package stats

import (
	"fmt"
	"sort"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

// Service provides statistics functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
	}
}

func statsKey(chatID int64) string {
	return fmt.Sprintf("stats:%d", chatID)
}

// Get retrieves the statistics for a chat, creating empty ones on first use
func (s *Service) Get(chatID int64) (*models.Statistics, error) {
	var stats models.Statistics
	err := s.store.Get(statsKey(chatID), &stats)
	if err != nil {
		stats = models.Statistics{
			ChatID:      chatID,
			RecipeStats: make(map[string]models.RecipeStat),
		}

		if err := s.store.Set(statsKey(chatID), stats); err != nil {
			return nil, fmt.Errorf("failed to create statistics: %w", err)
		}
	}

	if stats.RecipeStats == nil {
		stats.RecipeStats = make(map[string]models.RecipeStat)
	}

	return &stats, nil
}

// RecordCooked records that a recipe was cooked, with an optional rating
// (0 means unrated)
func (s *Service) RecordCooked(chatID int64, recipeID, title string, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %d", rating)
	}

	stats, err := s.Get(chatID)
	if err != nil {
		return err
	}

	stat, exists := stats.RecipeStats[recipeID]
	if !exists {
		stat = models.RecipeStat{
			RecipeID: recipeID,
			Title:    title,
		}
	} else if title != "" && stat.Title == "" {
		stat.Title = title
	}

	stat.CookCount++
	if rating > 0 {
		stat.TotalRating += float64(rating)
	}
	if stat.CookCount > 0 {
		stat.AvgRating = stat.TotalRating / float64(stat.CookCount)
	}

	stats.RecipeStats[recipeID] = stat

	s.logger.Info("Recorded cook of %s for chat %d (rating %d)", recipeID, chatID, rating)
	return s.store.Set(statsKey(chatID), stats)
}

// TopRecipes returns the most-cooked recipes, cook count descending with
// average rating as tie-break
func (s *Service) TopRecipes(chatID int64, limit int) ([]models.RecipeStat, error) {
	stats, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	top := make([]models.RecipeStat, 0, len(stats.RecipeStats))
	for _, stat := range stats.RecipeStats {
		top = append(top, stat)
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].CookCount != top[j].CookCount {
			return top[i].CookCount > top[j].CookCount
		}
		return top[i].AvgRating > top[j].AvgRating
	})

	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}

	return top, nil
}
