package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derickschaefer/reel/internal/catalog"
)

func newIntake() (*catalog.QueryIntake, *manualClock, *[]uint64) {
	clock := &manualClock{}
	fired := &[]uint64{}
	in := catalog.NewQueryIntake(clock, 0, func(seq uint64) {
		*fired = append(*fired, seq)
	})
	return in, clock, fired
}

func TestQueryIntake_CoalescesRapidKeystrokes(t *testing.T) {
	in, clock, fired := newIntake()

	in.Keystroke("m")
	clock.Advance(100 * time.Millisecond)
	in.Keystroke("ma")
	clock.Advance(100 * time.Millisecond)
	in.Keystroke("mat")

	clock.Advance(349 * time.Millisecond)
	assert.Empty(t, *fired, "nothing should fire before the quiet period ends")
	assert.True(t, in.Pending())

	clock.Advance(time.Millisecond)
	require.Len(t, *fired, 1, "exactly one commit for the burst")

	commit, ok := in.Fire((*fired)[0])
	require.True(t, ok)
	assert.Equal(t, "mat", commit.Text)
	assert.False(t, in.Pending())
	assert.Equal(t, 0, clock.armed())
}

func TestQueryIntake_TrimsCommittedText(t *testing.T) {
	in, clock, fired := newIntake()

	in.Keystroke("  the matrix  ")
	clock.Advance(catalog.DebounceDelay)
	require.Len(t, *fired, 1)

	commit, ok := in.Fire((*fired)[0])
	require.True(t, ok)
	assert.Equal(t, "the matrix", commit.Text)
}

func TestQueryIntake_CommitNowCancelsPendingTimer(t *testing.T) {
	in, clock, fired := newIntake()

	in.Keystroke("dun")
	clock.Advance(200 * time.Millisecond)
	commit := in.CommitNow("  dune ")

	assert.Equal(t, "dune", commit.Text)
	assert.False(t, in.Pending())

	clock.Advance(time.Second)
	assert.Empty(t, *fired, "cancelled timer must not fire")
}

func TestQueryIntake_StaleSequenceIgnored(t *testing.T) {
	in, clock, fired := newIntake()

	in.Keystroke("a")
	clock.Advance(catalog.DebounceDelay)
	require.Len(t, *fired, 1)
	stale := (*fired)[0]

	// A keystroke lands before the owner handled the first notification.
	in.Keystroke("ab")
	_, ok := in.Fire(stale)
	assert.False(t, ok)
	assert.True(t, in.Pending())

	clock.Advance(catalog.DebounceDelay)
	require.Len(t, *fired, 2)
	commit, ok := in.Fire((*fired)[1])
	require.True(t, ok)
	assert.Equal(t, "ab", commit.Text)
}

func TestQueryIntake_FireAfterCommitNowIgnored(t *testing.T) {
	in, clock, fired := newIntake()

	in.Keystroke("x")
	clock.Advance(catalog.DebounceDelay)
	require.Len(t, *fired, 1)

	in.CommitNow("x")
	_, ok := in.Fire((*fired)[0])
	assert.False(t, ok)
}

func TestQueryIntake_CustomDelay(t *testing.T) {
	clock := &manualClock{}
	var fired []uint64
	in := catalog.NewQueryIntake(clock, time.Second, func(seq uint64) { fired = append(fired, seq) })

	in.Keystroke("q")
	clock.Advance(catalog.DebounceDelay)
	assert.Empty(t, fired)
	clock.Advance(time.Second)
	assert.Len(t, fired, 1)
}
