package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/pantry"
	"github.com/pantrychef/pantrychef/pkg/recipes"
	"github.com/pantrychef/pantrychef/pkg/storage"
	"github.com/pantrychef/pantrychef/pkg/telegram"
)

// digestRecipeCount is how many recipes a digest suggests
const digestRecipeCount = 3

// Service pushes a daily "what can you cook tonight" digest
type Service struct {
	store         *storage.Store
	bot           *telegram.Bot
	pantryService *pantry.Service
	recipeService *recipes.Service
	logger        *logger.Logger
	digestHour    int
	stopChan      chan struct{}
}

// New creates a new scheduler service. digestHour is the local hour
// (0-23) at which the digest goes out.
func New(
	store *storage.Store,
	bot *telegram.Bot,
	pantryService *pantry.Service,
	recipeService *recipes.Service,
	digestHour int,
) *Service {
	return &Service{
		store:         store,
		bot:           bot,
		pantryService: pantryService,
		recipeService: recipeService,
		logger:        logger.New("scheduler"),
		digestHour:    digestHour,
		stopChan:      make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Service) Start() {
	s.logger.Info("Starting daily digest scheduler (hour %d)", s.digestHour)
	go s.run()
}

// Stop stops the scheduler
func (s *Service) Stop() {
	s.logger.Info("Stopping daily digest scheduler")
	close(s.stopChan)
}

func (s *Service) run() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			if now.Hour() != s.digestHour {
				continue
			}
			s.sendDueDigests(now)
		}
	}
}

// sendDueDigests sends the digest to every chat with a pantry that has
// not received one today
func (s *Service) sendDueDigests(now time.Time) {
	keys, err := s.store.List("pantry:")
	if err != nil {
		s.logger.Error("Failed to list pantries: %v", err)
		return
	}

	today := now.Format("2006-01-02")
	for _, key := range keys {
		chatID, err := strconv.ParseInt(strings.TrimPrefix(key, "pantry:"), 10, 64)
		if err != nil {
			s.logger.Error("Skipping malformed pantry key %s: %v", key, err)
			continue
		}

		digestKey := fmt.Sprintf("digest:%d", chatID)
		var lastSent string
		if err := s.store.Get(digestKey, &lastSent); err == nil && lastSent == today {
			continue
		}

		if s.sendDigest(chatID) {
			if err := s.store.Set(digestKey, today); err != nil {
				s.logger.Error("Failed to record digest for chat %d: %v", chatID, err)
			}
		}
	}
}

// sendDigest sends one chat its best-covered recipes. Returns whether a
// message went out.
func (s *Service) sendDigest(chatID int64) bool {
	items, err := s.pantryService.ListItems(chatID)
	if err != nil || len(items) == 0 {
		return false
	}

	all, err := s.recipeService.List(chatID)
	if err != nil || len(all) == 0 {
		return false
	}

	ranked := recipes.RankByPantry(all, items, digestRecipeCount)

	var b strings.Builder
	b.WriteString("🍽️ Dinner ideas from your recipe book:\n\n")
	any := false
	for _, r := range ranked {
		if r.Summary.MatchPercentage == 0 {
			continue
		}
		any = true
		fmt.Fprintf(&b, "• %s — %d%% of ingredients on hand\n", r.Recipe.Title, r.Summary.MatchPercentage)
	}
	if !any {
		return false
	}
	b.WriteString("\nUse /match <recipe> for the full breakdown.")

	if _, err := s.bot.SendMessage(chatID, b.String()); err != nil {
		s.logger.Error("Failed to send digest to chat %d: %v", chatID, err)
		return false
	}

	s.logger.Info("Sent daily digest to chat %d", chatID)
	return true
}
