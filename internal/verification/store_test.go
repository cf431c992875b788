package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clockCache implements Cache in memory with a controllable clock, so expiry
// can be exercised without sleeping.
type clockCache struct {
	now     time.Time
	entries map[string]clockEntry
}

type clockEntry struct {
	value     string
	expiresAt time.Time
}

func newClockCache() *clockCache {
	return &clockCache{now: time.Unix(1_700_000_000, 0), entries: map[string]clockEntry{}}
}

func (c *clockCache) advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *clockCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.entries[key] = clockEntry{value: value, expiresAt: c.now.Add(ttl)}
	return nil
}

func (c *clockCache) Get(_ context.Context, key string) (string, bool, error) {
	e, ok := c.entries[key]
	if !ok || c.now.After(e.expiresAt) {
		delete(c.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *clockCache) Del(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestIssueProducesSixDigitCode(t *testing.T) {
	s := New(newClockCache(), 2*time.Minute)

	code, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}
}

func TestCheckIsSingleUse(t *testing.T) {
	s := New(newClockCache(), 2*time.Minute)

	code, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	out, err := s.Check(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.Equal(t, Valid, out)

	// The entry was consumed; replaying the same code finds nothing.
	out, err = s.Check(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.Equal(t, Expired, out)
}

func TestCheckMismatchKeepsCodeAlive(t *testing.T) {
	s := New(newClockCache(), 2*time.Minute)

	code, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	wrong := "999999"
	if wrong == code {
		wrong = "999998"
	}
	out, err := s.Check(context.Background(), "a@b.com", wrong)
	require.NoError(t, err)
	assert.Equal(t, Mismatch, out)

	// A mismatch must not consume the live code.
	out, err = s.Check(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.Equal(t, Valid, out)
}

func TestCheckAbsentEmail(t *testing.T) {
	s := New(newClockCache(), 2*time.Minute)

	out, err := s.Check(context.Background(), "never@issued.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, Expired, out)
}

func TestCodeExpiresAfterTTL(t *testing.T) {
	cache := newClockCache()
	s := New(cache, 2*time.Minute)

	code, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	cache.advance(2*time.Minute + time.Second)

	out, err := s.Check(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.Equal(t, Expired, out)
}

func TestReissueOverwrites(t *testing.T) {
	cache := newClockCache()
	s := New(cache, 2*time.Minute)

	_, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)
	second, err := s.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	// Exactly one live entry, holding the latest code.
	cached, ok, err := cache.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, cached)

	out, err := s.Check(context.Background(), "a@b.com", second)
	require.NoError(t, err)
	assert.Equal(t, Valid, out)
}
