package cache

import "sync"

// Cache 并发安全的键值缓存
type Cache[K comparable, V any] struct {
	mu sync.RWMutex
	kv map[K]V
}

// 从缓存读取
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.kv[key]
	return v, ok
}

// 设置到缓存中
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		c.kv = make(map[K]V)
	}
	c.kv[key] = value
}

// GetOrLoad
//
//	@Description: 命中则直接返回，否则调用 load 加载并写入缓存；load 失败时不缓存
//	@param key 缓存键
//	@param load 加载函数
func (c *Cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// 双重检查，避免并发重复加载
	if v, ok := c.kv[key]; ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	if c.kv == nil {
		c.kv = make(map[K]V)
	}
	c.kv[key] = v
	return v, nil
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.kv)
}

// 清除所有缓存
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kv = nil
}
