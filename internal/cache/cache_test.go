package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestGet_WithinTTLUsesCachedValue(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)}
	fetches := 0
	s := New(5*time.Minute, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})
	s.SetClock(clock.Now)

	first, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	clock.Advance(4 * time.Minute)
	second, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetches, "second read within the TTL must not fetch")
}

func TestGet_PastTTLRefetches(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)}
	fetches := 0
	s := New(5*time.Minute, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})
	s.SetClock(clock.Now)

	_, err := s.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	value, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, fetches)
}

func TestRefresh_ForceBypassesTTL(t *testing.T) {
	fetches := 0
	s := New(time.Hour, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})

	_, err := s.Get(context.Background())
	require.NoError(t, err)

	value, err := s.Refresh(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestRefresh_ErrorKeepsPreviousSnapshot(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	s := New(time.Hour, func(ctx context.Context) (string, error) {
		if fail {
			return "", boom
		}
		return "good", nil
	})

	_, err := s.Get(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = s.Refresh(context.Background(), true)
	require.ErrorIs(t, err, boom)

	value, _, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "good", value)
}

func TestLast_BeforeFirstFetch(t *testing.T) {
	s := New(time.Minute, func(ctx context.Context) (int, error) {
		return 0, nil
	})

	_, _, ok := s.Last()
	assert.False(t, ok)
}
