package persona

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BaSui01/ideastorm/internal/cache"
	"github.com/BaSui01/ideastorm/internal/metrics"
	"github.com/BaSui01/ideastorm/types"
)

// Cache 角色描述符读穿缓存。
// L1 为进程内 map，L2 为可选的 Redis；并发解析同一角色时
// singleflight 保证只有一次底层查询。空描述符同样被缓存，
// 缺失角色不会反复打到存储。
type Cache struct {
	store *IdentityStore

	mu sync.RWMutex
	l1 map[string]string

	l2  *cache.Manager // 可为 nil
	ttl time.Duration

	group     singleflight.Group
	logger    *zap.Logger
	collector *metrics.Collector // 可为 nil
}

// CacheOption 缓存可选配置
type CacheOption func(*Cache)

// WithL2 启用 Redis L2 缓存
func WithL2(manager *cache.Manager, ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.l2 = manager
		c.ttl = ttl
	}
}

// WithMetrics 启用指标采集
func WithMetrics(collector *metrics.Collector) CacheOption {
	return func(c *Cache) {
		c.collector = collector
	}
}

// NewCache 创建读穿缓存
func NewCache(store *IdentityStore, logger *zap.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		store:  store,
		l1:     make(map[string]string),
		ttl:    time.Hour,
		logger: logger.With(zap.String("component", "persona_cache")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve 解析角色描述符，优先命中缓存。
func (c *Cache) Resolve(ctx context.Context, name string) (string, error) {
	key := types.NormalizeName(name)

	// L1
	c.mu.RLock()
	if desc, ok := c.l1[key]; ok {
		c.mu.RUnlock()
		c.recordHit()
		return desc, nil
	}
	c.mu.RUnlock()

	// L2
	if c.l2 != nil {
		if desc, err := c.l2.Get(ctx, l2Key(key)); err == nil {
			c.recordHit()
			c.mu.Lock()
			c.l1[key] = desc
			c.mu.Unlock()
			return desc, nil
		} else if !cache.IsCacheMiss(err) {
			// L2 故障降级为直查，不中断会话
			c.logger.Warn("persona cache l2 unavailable", zap.Error(err))
		}
	}

	c.recordMiss()

	// 底层解析（并发合并）
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		desc, err := c.store.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.l1[key] = desc
		c.mu.Unlock()

		if c.l2 != nil {
			if err := c.l2.Set(ctx, l2Key(key), desc, c.ttl); err != nil {
				c.logger.Warn("persona cache l2 write failed", zap.Error(err))
			}
		}
		return desc, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate 失效某角色的缓存（注册或追加摘要后调用）。
func (c *Cache) Invalidate(ctx context.Context, name string) {
	key := types.NormalizeName(name)

	c.mu.Lock()
	delete(c.l1, key)
	c.mu.Unlock()

	if c.l2 != nil {
		if err := c.l2.Delete(ctx, l2Key(key)); err != nil {
			c.logger.Warn("persona cache l2 invalidate failed", zap.Error(err))
		}
	}
}

// Clear 清空 L1 缓存（测试与会话重置用）。
func (c *Cache) Clear() {
	c.mu.Lock()
	c.l1 = make(map[string]string)
	c.mu.Unlock()
}

func (c *Cache) recordHit() {
	if c.collector != nil {
		c.collector.RecordCacheHit("persona")
	}
}

func (c *Cache) recordMiss() {
	if c.collector != nil {
		c.collector.RecordCacheMiss("persona")
	}
}

func l2Key(nameKey string) string {
	return "persona:descriptor:" + nameKey
}
