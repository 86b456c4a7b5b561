package tls

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-xmpp/config"
	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
)

// Module 安全传输模块
var Module = fx.Module("core_security_tls",
	fx.Provide(
		NewFromParams,
	),
)

// Params 安全传输依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config                   `optional:"true"`
	Evaluator  securityif.TrustEvaluatorFactory `optional:"true"`
	Engine     securityif.EngineFactory         `optional:"true"`
}

// Result 安全传输导出结果
type Result struct {
	fx.Out

	Factory   *Factory
	Transport securityif.SecureTransport
}

// ConfigFromUnified 从统一配置创建安全配置
func ConfigFromUnified(cfg *config.Config) securityif.Config {
	if cfg == nil {
		return securityif.DefaultConfig()
	}
	return cfg.Security
}

// NewFromParams 从 Fx 参数创建 Factory
func NewFromParams(p Params) (Result, error) {
	evaluator := p.Evaluator
	if evaluator == nil {
		evaluator = StandardEvaluator
	}

	f, err := New(ConfigFromUnified(p.UnifiedCfg), evaluator, Options{Engine: p.Engine})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Factory:   f,
		Transport: f,
	}, nil
}
