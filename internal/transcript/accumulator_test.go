package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newAccumulator() (*Accumulator, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewAccumulator(1500*time.Millisecond, WithClock(clock.Now)), clock
}

func TestAccumulator_Add(t *testing.T) {
	req := require.New(t)
	acc, _ := newAccumulator()

	acc.Add("   ", true)
	acc.Add("", false)
	req.Zero(acc.Len())

	acc.Add(" hello ", false)
	acc.Add("hello there", true)
	req.Equal(2, acc.Len())
	finals, interims := acc.Counts()
	req.Equal(1, finals)
	req.Equal(1, interims)
	req.Equal("hello hello there", acc.CollectAndReset(0))
	req.Zero(acc.Len())
}

func TestAccumulator_ShouldProcess(t *testing.T) {
	t.Run("Should wait for the silence threshold", func(t *testing.T) {
		req := require.New(t)
		acc, clock := newAccumulator()

		acc.Add("I am here", true)
		req.False(acc.ShouldProcess())

		clock.Advance(time.Second)
		req.False(acc.ShouldProcess())

		acc.Add("still talking", false)
		clock.Advance(time.Second)
		req.False(acc.ShouldProcess())

		clock.Advance(500 * time.Millisecond)
		req.True(acc.ShouldProcess())
	})

	t.Run("Should ignore interim-only buffers", func(t *testing.T) {
		req := require.New(t)
		acc, clock := newAccumulator()
		acc.Add("um", false)
		clock.Advance(time.Minute)
		req.False(acc.ShouldProcess())
	})

	t.Run("Should hold off while a generation is in flight", func(t *testing.T) {
		req := require.New(t)
		acc, clock := newAccumulator()
		acc.Add("I am here", true)
		clock.Advance(2 * time.Second)

		acc.MarkProcessing(true)
		req.False(acc.ShouldProcess())
		acc.MarkProcessing(false)
		req.True(acc.ShouldProcess())
	})

	t.Run("Should be false on an empty accumulator", func(t *testing.T) {
		acc, _ := newAccumulator()
		require.False(t, acc.ShouldProcess())
	})
}

func TestAccumulator_CollectAndReset(t *testing.T) {
	tests := []struct {
		description string
		fragments   []string
		window      int
		want        string
	}{
		{"Should drop consecutive duplicates", []string{"hi", "hi", "hi there"}, 10, "hi hi there"},
		{"Should compare case-insensitively", []string{"Hello", "hello", "HELLO world"}, 10, "Hello HELLO world"},
		{"Should keep non-consecutive repeats", []string{"yes", "no", "yes"}, 10, "yes no yes"},
		{"Should keep only the window", []string{"a", "b", "c", "d"}, 2, "c d"},
		{"Should return empty text for an empty buffer", nil, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			acc, clock := newAccumulator()
			for _, f := range tt.fragments {
				acc.Add(f, true)
			}
			clock.Advance(2 * time.Second)

			req.Equal(tt.want, acc.CollectAndReset(tt.window))
			req.Zero(acc.Len())
			req.Zero(acc.FinalWordCount())
			req.False(acc.ShouldProcess())
		})
	}
}

func TestAccumulator_FinalWordCount(t *testing.T) {
	req := require.New(t)
	acc, _ := newAccumulator()

	acc.Add("this interim is ignored", false)
	acc.Add("I feel", true)
	acc.Add("really anxious", true)
	req.Equal(4, acc.FinalWordCount())

	finals, interims := acc.Counts()
	req.Equal(2, finals)
	req.Equal(1, interims)
}

func TestAccumulator_Reset(t *testing.T) {
	req := require.New(t)
	acc, clock := newAccumulator()

	acc.Add("something final", true)
	acc.MarkProcessing(true)
	clock.Advance(time.Minute)

	acc.Reset()
	req.Zero(acc.Len())
	req.False(acc.Processing())
	req.False(acc.ShouldProcess())
}
