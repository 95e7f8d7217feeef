package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumeStateIsSingleUse(t *testing.T) {
	repo := NewSessionRepository()

	repo.SaveState("state-abc")

	assert.True(t, repo.ConsumeState("state-abc"))
	assert.False(t, repo.ConsumeState("state-abc"))
}

func TestConsumeStateRejectsUnknownToken(t *testing.T) {
	repo := NewSessionRepository()

	assert.False(t, repo.ConsumeState("never-issued"))
}
