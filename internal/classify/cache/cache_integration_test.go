//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pidkit/internal/classify/cache"
	"pidkit/internal/classify/models"
	"pidkit/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Cache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = cache.New(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestMissThenHit() {
	ctx := context.Background()

	_, found, err := s.cache.Get(ctx, "10.5880/fidgeo.2025.072")
	s.Require().NoError(err)
	s.False(found)

	classification := models.Classification{Scheme: "DOI", NormalizedValue: "10.5880/fidgeo.2025.072"}
	s.Require().NoError(s.cache.Set(ctx, "10.5880/fidgeo.2025.072", classification))

	got, found, err := s.cache.Get(ctx, "10.5880/fidgeo.2025.072")
	s.Require().NoError(err)
	s.True(found)
	s.Equal(classification, got)
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	shortLived := cache.New(s.redis.Client, 50*time.Millisecond)

	classification := models.Classification{Scheme: "Handle", NormalizedValue: "11234/56789"}
	s.Require().NoError(shortLived.Set(ctx, "11234/56789", classification))

	time.Sleep(100 * time.Millisecond)

	_, found, err := shortLived.Get(ctx, "11234/56789")
	s.Require().NoError(err)
	s.False(found)
}

func (s *RedisCacheSuite) TestCorruptEntryTreatedAsMiss() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "pidkit:classify:broken", "not-json", time.Minute).Err())

	_, found, err := s.cache.Get(ctx, "broken")
	s.Require().NoError(err)
	s.False(found)
}
