package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// =============================================================================
// 🧪 PoolManager 测试
// =============================================================================

func setupTestPool(t *testing.T) *PoolManager {
	dsn := filepath.Join(t.TempDir(), "test.db")

	cfg := DefaultPoolConfig()
	cfg.HealthCheckInterval = 0 // 测试中不启动后台循环

	pm, err := Open(dsn, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { pm.Close() })

	return pm
}

func TestOpen(t *testing.T) {
	pm := setupTestPool(t)
	assert.NoError(t, pm.Ping(context.Background()))
	assert.NotNil(t, pm.DB())
}

func TestOpen_NilLogger(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nil_logger.db")

	cfg := DefaultPoolConfig()
	cfg.HealthCheckInterval = 0

	// nil logger 必须降级为 noop，而不是 panic
	pm, err := Open(dsn, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { pm.Close() })

	assert.NoError(t, pm.Ping(context.Background()))
}

func TestNewPoolManager_NilDB(t *testing.T) {
	_, err := NewPoolManager(nil, DefaultPoolConfig(), zap.NewNop())
	assert.Error(t, err)
}

func TestPoolManager_Close(t *testing.T) {
	pm := setupTestPool(t)

	require.NoError(t, pm.Close())
	assert.Error(t, pm.Ping(context.Background()))

	// 重复关闭是 no-op
	assert.NoError(t, pm.Close())
}

func TestWithTransaction(t *testing.T) {
	pm := setupTestPool(t)
	ctx := context.Background()

	type row struct {
		ID    uint `gorm:"primaryKey"`
		Value string
	}
	require.NoError(t, pm.DB().AutoMigrate(&row{}))

	err := pm.WithTransaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row{Value: "a"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, pm.DB().Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 事务内返回错误应回滚
	sentinel := errors.New("boom")
	err = pm.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&row{Value: "b"}).Error; err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	require.NoError(t, pm.DB().Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTransactionRetry_NonRetryable(t *testing.T) {
	pm := setupTestPool(t)

	calls := 0
	err := pm.WithTransactionRetry(context.Background(), 3, func(tx *gorm.DB) error {
		calls++
		return errors.New("constraint violation")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(errors.New("database is locked")))
	assert.True(t, isRetryableError(errors.New("driver: bad connection")))
	assert.False(t, isRetryableError(errors.New("UNIQUE constraint failed")))
}
