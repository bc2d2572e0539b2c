package vote

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

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateVote(1, "p1", 10, []string{"Pancakes", "Soup"})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.PollID)

	got, err := svc.Get(1, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pancakes", "Soup"}, got.Options)
}

func TestCreateVoteNeedsOptions(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateVote(1, "p1", 10, nil)
	assert.Error(t, err)
}

func TestRecordVoteAndEnd(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateVote(1, "p1", 10, []string{"Pancakes", "Soup"})
	require.NoError(t, err)

	require.NoError(t, svc.RecordVote(1, "p1", "alice", 1))
	require.NoError(t, svc.RecordVote(1, "p1", "bob", 1))
	require.NoError(t, svc.RecordVote(1, "p1", "carol", 0))
	// Re-voting replaces the earlier choice
	require.NoError(t, svc.RecordVote(1, "p1", "carol", 1))

	assert.Error(t, svc.RecordVote(1, "p1", "dave", 5))

	winner, err := svc.EndVote(1, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Soup", winner)

	got, err := svc.Get(1, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.WinningRecipe)
	assert.False(t, got.EndedAt.IsZero())
}

func TestCurrentAndChatForPoll(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Current(1)
	assert.Error(t, err)

	_, err = svc.CreateVote(1, "p1", 10, []string{"Pancakes", "Soup"})
	require.NoError(t, err)
	_, err = svc.CreateVote(1, "p2", 11, []string{"Tacos", "Curry"})
	require.NoError(t, err)

	current, err := svc.Current(1)
	require.NoError(t, err)
	assert.Equal(t, "p2", current)

	chatID, err := svc.ChatForPoll("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), chatID)

	_, err = svc.ChatForPoll("unknown")
	assert.Error(t, err)
}

func TestEndVoteTieKeepsPollOrder(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateVote(1, "p1", 10, []string{"Pancakes", "Soup"})
	require.NoError(t, err)
	require.NoError(t, svc.RecordVote(1, "p1", "alice", 0))
	require.NoError(t, svc.RecordVote(1, "p1", "bob", 1))

	winner, err := svc.EndVote(1, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", winner)
}
