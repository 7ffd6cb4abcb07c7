package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistory_Add(t *testing.T) {
	req := require.New(t)
	h := NewHistory(3)

	h.Add("  ")
	req.Zero(h.Size())

	for i := 1; i <= 5; i++ {
		h.Add(fmt.Sprintf("utterance %d", i))
	}
	req.Equal(3, h.Size())
	req.Equal([]string{"utterance 3", "utterance 4", "utterance 5"}, h.Texts(0))
}

func TestHistory_Get(t *testing.T) {
	req := require.New(t)
	h := NewHistory(10)
	h.Add("one")
	h.Add("two")
	h.Add("three")

	req.Equal([]string{"two", "three"}, h.Texts(2))
	req.Equal([]string{"one", "two", "three"}, h.Texts(50))

	entries := h.Get(1)
	req.Len(entries, 1)
	req.False(entries[0].Timestamp.IsZero())
}

func TestHistory_Clear(t *testing.T) {
	req := require.New(t)
	h := NewHistory(0)
	for i := 0; i < 150; i++ {
		h.Add("something")
	}
	req.Equal(100, h.Size())

	h.Clear()
	req.Zero(h.Size())
	req.Empty(h.Texts(0))
}
