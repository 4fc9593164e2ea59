package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	ctx := context.Background()

	var dest map[string]string
	assert.True(t, errors.Is(repo.Get(ctx, "shiftmap:amami:2025-08", &dest), appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(ctx, "shiftmap:amami:2025-08", map[string]string{"1_2025-08-01": "日"}, time.Minute))
	assert.NoError(t, repo.Delete(ctx, "shiftmap:amami:2025-08"))
	assert.NoError(t, repo.DeleteByPattern(ctx, "shiftmap:amami:*"))
	assert.NoError(t, repo.Ping(ctx))
}

func TestCacheRepositoryUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	repo := NewCacheRepository(client)

	var dest map[string]string
	err := repo.Get(context.Background(), "shiftmap:amami:2025-08", &dest)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.Error(t, repo.Ping(context.Background()))
}
