package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Manager 测试
// =============================================================================

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Manager) {
	// 创建 miniredis 实例
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// 创建 Manager
	logger := zap.NewNop()
	config := Config{
		Addr:       mr.Addr(),
		Password:   "",
		DB:         0,
		DefaultTTL: 1 * time.Minute,
	}

	manager, err := NewManager(config, logger)
	require.NoError(t, err)

	return mr, manager
}

func TestNewManager(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	assert.NoError(t, manager.Ping(context.Background()))
}

func TestNewManager_NilLogger(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	config := DefaultConfig()
	config.Addr = mr.Addr()
	config.HealthCheckInterval = 0

	// nil logger 必须降级为 noop，而不是 panic
	manager, err := NewManager(config, nil)
	require.NoError(t, err)
	defer manager.Close()

	assert.NoError(t, manager.Ping(context.Background()))
}

func TestManager_GetSet(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "persona:rebecca", "descriptor text", 0))

	val, err := manager.Get(ctx, "persona:rebecca")
	require.NoError(t, err)
	assert.Equal(t, "descriptor text", val)
}

func TestManager_GetMiss(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	_, err := manager.Get(context.Background(), "nonexistent")
	assert.True(t, IsCacheMiss(err))
}

func TestManager_JSON(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	ctx := context.Background()

	type entry struct {
		Name string `json:"name"`
		Desc string `json:"desc"`
	}

	require.NoError(t, manager.SetJSON(ctx, "persona:leo", entry{Name: "Leo", Desc: "engineer"}, 0))

	var got entry
	require.NoError(t, manager.GetJSON(ctx, "persona:leo", &got))
	assert.Equal(t, "Leo", got.Name)
	assert.Equal(t, "engineer", got.Desc)
}

func TestManager_Delete(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "k1", "v1", 0))
	require.NoError(t, manager.Delete(ctx, "k1"))

	_, err := manager.Get(ctx, "k1")
	assert.True(t, IsCacheMiss(err))

	// 删除空键列表是 no-op
	assert.NoError(t, manager.Delete(ctx))
}

func TestManager_TTL(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()
	defer manager.Close()

	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "ephemeral", "v", 10*time.Second))

	// miniredis 手动推进时钟
	mr.FastForward(11 * time.Second)

	_, err := manager.Get(ctx, "ephemeral")
	assert.True(t, IsCacheMiss(err))
}

func TestManager_Closed(t *testing.T) {
	mr, manager := setupTestRedis(t)
	defer mr.Close()

	require.NoError(t, manager.Close())

	ctx := context.Background()
	_, err := manager.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, manager.Set(ctx, "k", "v", 0))
	assert.Error(t, manager.Ping(ctx))

	// 重复关闭是 no-op
	assert.NoError(t, manager.Close())
}
