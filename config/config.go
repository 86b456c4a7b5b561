// Package config 提供 go-xmpp 的统一配置
//
// 各内部模块通过自己的 ConfigFromUnified 把统一配置映射为
// 模块私有配置，统一配置本身保持纯数据结构。
package config

import (
	"errors"
	"time"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
)

// ============================================================================
//                              配置定义
// ============================================================================

// Config go-xmpp 统一配置
type Config struct {
	// Security 安全传输配置
	Security securityif.Config

	// Resolver 端点解析配置
	Resolver ResolverConfig

	// DialTimeout 单个候选端点的连接超时
	DialTimeout time.Duration
}

// ResolverConfig 端点解析配置
type ResolverConfig struct {
	// CacheSize 地址缓存最大条目数
	CacheSize int

	// CacheTTL 地址缓存条目有效期
	CacheTTL time.Duration

	// LookupTimeout 单次 SRV 查询超时
	LookupTimeout time.Duration

	// Nameservers 自定义 DNS 服务器（"ip:port"，为空时读取 resolv.conf）
	Nameservers []string
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Security: securityif.DefaultConfig(),
		Resolver: ResolverConfig{
			CacheSize:     100,
			CacheTTL:      10 * time.Minute,
			LookupTimeout: 10 * time.Second,
		},
		DialTimeout: 30 * time.Second,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Resolver.CacheSize <= 0 {
		return errors.New("config: resolver cache size must be positive")
	}
	if c.Resolver.CacheTTL <= 0 {
		return errors.New("config: resolver cache TTL must be positive")
	}
	if c.Resolver.LookupTimeout <= 0 {
		return errors.New("config: resolver lookup timeout must be positive")
	}
	if c.DialTimeout <= 0 {
		return errors.New("config: dial timeout must be positive")
	}
	return nil
}
