package resolver

import (
	"errors"
	"time"
)

// ============================================================================
//                              配置定义
// ============================================================================

// Config 端点解析器配置
type Config struct {
	// CacheSize 地址缓存最大条目数，超出按最近最少访问淘汰
	CacheSize int

	// CacheTTL 缓存条目有效期
	CacheTTL time.Duration

	// LookupTimeout 单次 SRV 查询超时
	LookupTimeout time.Duration

	// Nameservers 自定义 DNS 服务器（"ip:port"，为空时读取 resolv.conf）
	Nameservers []string
}

// DefaultConfig 默认配置
//
// 缓存容量与有效期沿用客户端惯例：最近访问的 100 个查询，
// 保留 10 分钟。
func DefaultConfig() Config {
	return Config{
		CacheSize:     100,
		CacheTTL:      10 * time.Minute,
		LookupTimeout: 10 * time.Second,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return errors.New("cache size must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache TTL must be positive")
	}
	if c.LookupTimeout <= 0 {
		return errors.New("lookup timeout must be positive")
	}
	return nil
}
