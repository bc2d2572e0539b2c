package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsNormal(t *testing.T) {
	m := New()
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestSetAndClear(t *testing.T) {
	m := New()

	m.SetState(1, StateAddingItems)
	assert.Equal(t, StateAddingItems, m.GetState(1))
	assert.Equal(t, StateNormal, m.GetState(2))

	m.ClearState(1)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestStaleStateDecays(t *testing.T) {
	m := New()
	m.SetState(1, StateImportingRecipe)

	// Age the entry past its TTL
	cs := m.states[1]
	cs.timestamp = cs.timestamp.Add(-stateTTL - 1)
	m.states[1] = cs

	assert.Equal(t, StateNormal, m.GetState(1))
}
