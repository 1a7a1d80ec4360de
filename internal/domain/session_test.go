package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHistoryCap(t *testing.T) {
	s := NewSession("s1", "miloe")
	for i := 0; i < 8; i++ {
		s.AddInteraction("user", fmt.Sprintf("q%d", i))
		s.AddInteraction("assistant", fmt.Sprintf("a%d", i))
	}

	history := s.History()
	require.Len(t, history, 10)
	// Only the most recent turns survive.
	assert.Equal(t, Message{Role: "user", Content: "q3"}, history[0])
	assert.Equal(t, Message{Role: "assistant", Content: "a7"}, history[9])
}

func TestSessionHistoryReturnsCopy(t *testing.T) {
	s := NewSession("s1", "miloe")
	s.AddInteraction("user", "hello")

	h := s.History()
	h[0].Content = "mutated"

	assert.Equal(t, "hello", s.History()[0].Content)
}

func TestSessionLastProductPersists(t *testing.T) {
	s := NewSession("s1", "miloe")
	assert.Empty(t, s.LastProduct())

	s.SetLastProduct("rose-face-wash")
	assert.Equal(t, "rose-face-wash", s.LastProduct())

	// Nothing resets it implicitly.
	s.AddInteraction("user", "unrelated question")
	assert.Equal(t, "rose-face-wash", s.LastProduct())
}

func TestSessionAttributes(t *testing.T) {
	s := NewSession("s1", "miloe")
	_, ok := s.Attribute("skin_type")
	assert.False(t, ok)

	s.SetAttribute("skin_type", "dry")
	v, ok := s.Attribute("skin_type")
	require.True(t, ok)
	assert.Equal(t, "dry", v)
}
