// Package vote tracks "what should we cook tonight" polls: the options
// offered, who voted for what, and the winning recipe.
package vote

import (
	"fmt"
	"time"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/storage"
)

// Service provides poll state management
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new vote service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("vote"),
	}
}

func voteKey(chatID int64, pollID string) string {
	return fmt.Sprintf("vote:%d:%s", chatID, pollID)
}

// CreateVote stores the state of a newly created poll
func (s *Service) CreateVote(chatID int64, pollID string, messageID int, options []string) (*models.VoteState, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("a vote needs at least one option")
	}

	state := &models.VoteState{
		PollID:    pollID,
		MessageID: messageID,
		Options:   options,
		Votes:     make(map[string]string),
		StartedAt: time.Now(),
	}

	if err := s.store.Set(voteKey(chatID, pollID), state); err != nil {
		return nil, fmt.Errorf("failed to save vote state: %w", err)
	}

	// Bookkeeping so poll answers (which only carry the poll ID) and the
	// /winner command (which only knows the chat) can find the state
	if err := s.store.Set(fmt.Sprintf("vote-current:%d", chatID), pollID); err != nil {
		return nil, fmt.Errorf("failed to save current vote: %w", err)
	}
	if err := s.store.Set(fmt.Sprintf("vote-chat:%s", pollID), chatID); err != nil {
		return nil, fmt.Errorf("failed to save vote chat: %w", err)
	}

	s.logger.Info("Created vote %s for chat %d with %d options", pollID, chatID, len(options))
	return state, nil
}

// Current returns the poll ID of the most recently created vote of a chat
func (s *Service) Current(chatID int64) (string, error) {
	var pollID string
	if err := s.store.Get(fmt.Sprintf("vote-current:%d", chatID), &pollID); err != nil {
		return "", fmt.Errorf("no active vote for chat %d", chatID)
	}
	return pollID, nil
}

// ChatForPoll returns the chat a poll belongs to
func (s *Service) ChatForPoll(pollID string) (int64, error) {
	var chatID int64
	if err := s.store.Get(fmt.Sprintf("vote-chat:%s", pollID), &chatID); err != nil {
		return 0, fmt.Errorf("unknown poll %s", pollID)
	}
	return chatID, nil
}

// Get retrieves the state of a poll
func (s *Service) Get(chatID int64, pollID string) (*models.VoteState, error) {
	var state models.VoteState
	if err := s.store.Get(voteKey(chatID, pollID), &state); err != nil {
		return nil, fmt.Errorf("failed to get vote state: %w", err)
	}
	if state.Votes == nil {
		state.Votes = make(map[string]string)
	}
	return &state, nil
}

// RecordVote records one user's choice. Voting again replaces the
// previous choice; an option index outside the poll is rejected.
func (s *Service) RecordVote(chatID int64, pollID, userID string, optionIndex int) error {
	state, err := s.Get(chatID, pollID)
	if err != nil {
		return err
	}

	if optionIndex < 0 || optionIndex >= len(state.Options) {
		return fmt.Errorf("option index %d out of range", optionIndex)
	}

	state.Votes[userID] = state.Options[optionIndex]
	return s.store.Set(voteKey(chatID, pollID), state)
}

// EndVote closes a poll and returns the winning option. The first
// option in poll order wins ties.
func (s *Service) EndVote(chatID int64, pollID string) (string, error) {
	state, err := s.Get(chatID, pollID)
	if err != nil {
		return "", err
	}

	counts := make(map[string]int, len(state.Options))
	for _, option := range state.Votes {
		counts[option]++
	}

	winner := ""
	best := -1
	for _, option := range state.Options {
		if counts[option] > best {
			winner = option
			best = counts[option]
		}
	}

	state.EndedAt = time.Now()
	state.WinningRecipe = winner
	if err := s.store.Set(voteKey(chatID, pollID), state); err != nil {
		return "", fmt.Errorf("failed to save vote state: %w", err)
	}

	s.logger.Info("Vote %s for chat %d won by %q with %d votes", pollID, chatID, winner, best)
	return winner, nil
}
