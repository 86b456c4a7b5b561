package resolver

import (
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              地址缓存
// ============================================================================

// cacheEntry 缓存条目
//
// 整个有序序列共享同一个过期时间：命中要么整体有效，
// 要么整体缺席，不存在部分过期。
type cacheEntry struct {
	addrs     []types.HostAddress
	expiresAt time.Time
}

// addressCache 有界 LRU + TTL 地址缓存
//
// 底层 lru.Cache 自带细粒度锁，可被任意调用方并发读写。
// 并发未命中允许重复查询，后写覆盖先写。
type addressCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	clock   clock.Clock
}

// newAddressCache 创建地址缓存
func newAddressCache(size int, ttl time.Duration, clk clock.Clock) (*addressCache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &addressCache{
		entries: entries,
		ttl:     ttl,
		clock:   clk,
	}, nil
}

// Get 查找缓存
//
// 过期条目被移除并按未命中处理。返回副本，调用方可自由持有。
func (c *addressCache) Get(key string) ([]types.HostAddress, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.clock.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false
	}

	addrs := make([]types.HostAddress, len(entry.addrs))
	copy(addrs, entry.addrs)
	return addrs, true
}

// Put 写入缓存
//
// 存储副本，条目从写入时刻起保留一个 TTL 周期。
func (c *addressCache) Put(key string, addrs []types.HostAddress) {
	stored := make([]types.HostAddress, len(addrs))
	copy(stored, addrs)

	c.entries.Add(key, cacheEntry{
		addrs:     stored,
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

// Len 返回当前条目数
func (c *addressCache) Len() int {
	return c.entries.Len()
}

// Clear 清空缓存
//
// 网络环境变化时调用，旧缓存可能指向不可达的服务器。
func (c *addressCache) Clear() {
	c.entries.Purge()
}
