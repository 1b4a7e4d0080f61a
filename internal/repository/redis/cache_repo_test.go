package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func newTestCacheRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	repo, err := NewCacheRepo(client)
	require.NoError(t, err)
	return repo, mr
}

func TestCacheRepo_SetGet(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	require.NoError(t, repo.Set("key", "value", time.Minute))

	val, err := repo.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestCacheRepo_Get_Missing(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	_, err := repo.Get("no-such-key")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_Delete(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	require.NoError(t, repo.Set("key", "value", time.Minute))
	require.NoError(t, repo.Delete("key"))

	_, err := repo.Get("key")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_JSON(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	require.NoError(t, repo.SetJSON("player", payload{Name: "Alice", Score: 20}, time.Minute))

	var got payload
	require.NoError(t, repo.GetJSON("player", &got))
	assert.Equal(t, payload{Name: "Alice", Score: 20}, got)

	err := repo.GetJSON("missing", &got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_Expiration(t *testing.T) {
	repo, mr := newTestCacheRepo(t)

	require.NoError(t, repo.Set("key", "value", 10*time.Second))

	// Проматываем время за окно свежести
	mr.FastForward(11 * time.Second)

	_, err := repo.Get("key")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_NilClient(t *testing.T) {
	_, err := NewCacheRepo(nil)
	assert.Error(t, err)
}
