package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type cachedStats struct {
	Total int `json:"total"`
}

func TestCacheRepositoryGetHitAndMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectGet("dash:planner:p1").SetVal(`{"total":3}`)
	mock.ExpectGet("dash:planner:p2").RedisNil()

	var hit cachedStats
	require.NoError(t, repo.Get(context.Background(), "dash:planner:p1", &hit))
	assert.Equal(t, 3, hit.Total)

	var miss cachedStats
	err := repo.Get(context.Background(), "dash:planner:p2", &miss)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositorySet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectSet("dash:planner:p1", []byte(`{"total":1}`), time.Minute).SetVal("OK")

	require.NoError(t, repo.Set(context.Background(), "dash:planner:p1", cachedStats{Total: 1}, time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectScan(0, "dash:*", 0).SetVal([]string{"dash:planner:p1", "dash:planner:p2"}, 0)
	mock.ExpectDel("dash:planner:p1", "dash:planner:p2").SetVal(2)

	require.NoError(t, repo.DeleteByPattern(context.Background(), "dash:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	var dest cachedStats
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", dest, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "k"))
	assert.NoError(t, repo.Ping(context.Background()))
}
