package xmpp

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-xmpp/config"
	"github.com/dep2p/go-xmpp/internal/core/resolver"
	securitytls "github.com/dep2p/go-xmpp/internal/core/security/tls"
)

// CoreModules 核心模块集合
//
// 供把 go-xmpp 嵌入自己 Fx 应用的使用方：
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    xmpp.CoreModules,
//	    fx.Invoke(run),
//	)
var CoreModules = fx.Options(
	resolver.Module,
	securitytls.Module,
)

// ModuleWithConfig 带统一配置的模块集合
func ModuleWithConfig(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		CoreModules,
	)
}
