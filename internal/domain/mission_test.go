package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionCapacityAccessors(t *testing.T) {
	m := &Mission{RequiredVolunteers: 10, AcceptedVolunteers: 4}
	assert.Equal(t, 6, m.RemainingPlaces())
	assert.Equal(t, 40, m.FillPercentage())
	assert.False(t, m.IsFull())

	m.AcceptedVolunteers = 10
	assert.Equal(t, 0, m.RemainingPlaces())
	assert.Equal(t, 100, m.FillPercentage())
	assert.True(t, m.IsFull())
}

func TestMissionFillPercentageRounds(t *testing.T) {
	m := &Mission{RequiredVolunteers: 3, AcceptedVolunteers: 1}
	assert.Equal(t, 33, m.FillPercentage())
	m.AcceptedVolunteers = 2
	assert.Equal(t, 67, m.FillPercentage())
}

func TestMissionFillPercentageZeroRequired(t *testing.T) {
	m := &Mission{RequiredVolunteers: 0, AcceptedVolunteers: 0}
	assert.Equal(t, 0, m.FillPercentage())
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.False(t, ApplicationPending.Terminal())
	assert.True(t, ApplicationAccepted.Terminal())
	assert.True(t, ApplicationRejected.Terminal())
	assert.True(t, ApplicationCancelled.Terminal())
}
