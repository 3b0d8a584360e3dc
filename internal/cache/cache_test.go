package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlclient/internal/cache"
	"urlclient/internal/domain"
)

func statsFor(code string, clicks int) domain.URLStatistics {
	s := domain.URLStatistics{
		ShortenedURL: domain.ShortenedURL{
			ShortCode:   code,
			OriginalURL: "https://example.com/" + code,
			ShortURL:    "http://short/" + code,
			ClickCount:  int64(clicks),
		},
	}
	for range clicks {
		s.ClickDetails = append(s.ClickDetails, domain.ClickDetail{Source: "direct"})
	}
	return s
}

func TestNew_ValidSize(t *testing.T) {
	c, err := cache.New(10, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()
}

func TestNew_ZeroSize(t *testing.T) {
	c, err := cache.New(0, 0)
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()
}

func TestGet_MissingKey(t *testing.T) {
	c, err := cache.New(10, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	val, found := c.Get("nonexistent")
	assert.False(t, found)
	assert.Empty(t, val.ClickDetails)
}

func TestSetThenGet(t *testing.T) {
	c, err := cache.New(20, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	want := statsFor("abc123", 3)
	require.True(t, c.Set("abc123", want))

	got, found := c.Get("abc123")
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestSet_UpdateExisting(t *testing.T) {
	c, err := cache.New(20, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	c.Set("abc123", statsFor("abc123", 1))
	c.Set("abc123", statsFor("abc123", 4))

	got, found := c.Get("abc123")
	assert.True(t, found)
	assert.Len(t, got.ClickDetails, 4)
}

func TestSet_TTLExpires(t *testing.T) {
	c, err := cache.New(20, 20*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	c.Set("abc123", statsFor("abc123", 1))

	assert.Eventually(t, func() bool {
		_, found := c.Get("abc123")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestDeleteAndClear(t *testing.T) {
	c, err := cache.New(20, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	for _, code := range []string{"code1", "code2", "code3"} {
		c.Set(code, statsFor(code, 1))
	}

	c.Delete("code1")
	_, found := c.Get("code1")
	assert.False(t, found)

	_, found = c.Get("code2")
	assert.True(t, found)

	c.Clear()
	for _, code := range []string{"code2", "code3"} {
		_, found := c.Get(code)
		assert.False(t, found, "key %q should be cleared", code)
	}
}

func TestStats_AfterOperations(t *testing.T) {
	c, err := cache.New(20, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	hits, misses, _ := c.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(0), misses)

	c.Get("nonexistent")

	_, misses, _ = c.Stats()
	assert.Equal(t, uint64(1), misses)

	c.Set("key1", statsFor("key1", 0))
	c.Get("key1")

	hits, _, ratio := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, 0.5, ratio)
}
