package utils

import (
	"sync"
	"time"
)

// ttlCache 进程内 TTL 缓存
// 当前用途: 注销后的 token 黑名单（保留到 token 自身过期为止）。
// 读路径懒删除，另有低频后台清扫兜底，防止只写不读的 key 堆积。
type ttlCache struct {
	mu      sync.RWMutex
	items   map[string]ttlEntry
	sweepAt time.Time
}

type ttlEntry struct {
	value     string
	expiresAt time.Time
}

const sweepInterval = 10 * time.Minute

var defaultCache = &ttlCache{
	items:   make(map[string]ttlEntry),
	sweepAt: time.Now().Add(sweepInterval),
}

func (c *ttlCache) set(key, value string, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = ttlEntry{
		value:     value,
		expiresAt: now.Add(ttl),
	}

	// 顺带清扫过期项，避免单独起 goroutine
	if now.After(c.sweepAt) {
		for k, e := range c.items {
			if now.After(e.expiresAt) {
				delete(c.items, k)
			}
		}
		c.sweepAt = now.Add(sweepInterval)
	}
}

func (c *ttlCache) get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (c *ttlCache) delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// SetCache 设置缓存，ttl 到期后自动失效
func SetCache(key string, value string, ttl time.Duration) {
	defaultCache.set(key, value, ttl)
}

// GetCache 获取缓存并验证是否过期
func GetCache(key string) (string, bool) {
	return defaultCache.get(key)
}

// DeleteCache 删除缓存
func DeleteCache(key string) {
	defaultCache.delete(key)
}
