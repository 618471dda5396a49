package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

func newTestCache(t *testing.T) *RedisSummaryCache {
	t.Helper()

	srv := miniredis.RunT(t)

	c, err := NewRedisSummaryCache(srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestRedisSummaryCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := ports.SummaryKey(domain.Coordinate{Lat: 33.4484, Lon: -112.074})

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "miss returns nil without error")

	require.NoError(t, c.Set(ctx, key, []byte(`{"text":"quiet area"}`)))

	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"text":"quiet area"}`), got)
}

func TestSummaryKeyBucketsNearbyCoordinates(t *testing.T) {
	a := ports.SummaryKey(domain.Coordinate{Lat: 33.44841, Lon: -112.07401})
	b := ports.SummaryKey(domain.Coordinate{Lat: 33.44839, Lon: -112.07399})
	c := ports.SummaryKey(domain.Coordinate{Lat: 33.46, Lon: -112.074})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
