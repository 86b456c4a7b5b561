package resolver

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-xmpp/config"
	ifresolver "github.com/dep2p/go-xmpp/pkg/interfaces/resolver"
)

// Module 端点解析模块
var Module = fx.Module("core_resolver",
	fx.Provide(
		NewFromParams,
	),
)

// Params 解析器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Source     ifresolver.SRVSource `optional:"true"`
}

// Result 解析器导出结果
type Result struct {
	fx.Out

	Resolver  *Resolver
	Interface ifresolver.Resolver
}

// ConfigFromUnified 从统一配置创建解析器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		CacheSize:     cfg.Resolver.CacheSize,
		CacheTTL:      cfg.Resolver.CacheTTL,
		LookupTimeout: cfg.Resolver.LookupTimeout,
		Nameservers:   cfg.Resolver.Nameservers,
	}
}

// NewFromParams 从 Fx 参数创建 Resolver
func NewFromParams(p Params) (Result, error) {
	var opts []Option
	if p.Source != nil {
		opts = append(opts, WithSource(p.Source))
	}

	r, err := New(ConfigFromUnified(p.UnifiedCfg), opts...)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Resolver:  r,
		Interface: r,
	}, nil
}
