package xmpp

import (
	"context"
	"net"

	"github.com/dep2p/go-xmpp/config"
	"github.com/dep2p/go-xmpp/internal/core/dialer"
	"github.com/dep2p/go-xmpp/internal/core/resolver"
	securitytls "github.com/dep2p/go-xmpp/internal/core/security/tls"
	ifresolver "github.com/dep2p/go-xmpp/pkg/interfaces/resolver"
	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              Network
// ============================================================================

// Network 端点发现 + 安全传输的组合入口
//
// 每个进程在启动时显式构造一个实例，传递给连接构造方；
// 不存在隐藏的全局状态。
type Network struct {
	resolver  *resolver.Resolver
	transport *securitytls.Factory
	dialer    *dialer.Dialer
}

// Option Network 可选参数
type Option func(*networkOptions)

type networkOptions struct {
	source    ifresolver.SRVSource
	evaluator securityif.TrustEvaluatorFactory
	engine    securityif.EngineFactory
}

// WithSRVSource 指定 SRV 查询源
func WithSRVSource(source ifresolver.SRVSource) Option {
	return func(o *networkOptions) { o.source = source }
}

// WithTrustEvaluator 指定信任验证器工厂
//
// 默认使用系统根证书的标准 X.509 链验证。
func WithTrustEvaluator(factory securityif.TrustEvaluatorFactory) Option {
	return func(o *networkOptions) { o.evaluator = factory }
}

// WithEngine 指定安全引擎构造器（测试用）
func WithEngine(engine securityif.EngineFactory) Option {
	return func(o *networkOptions) { o.engine = engine }
}

// NewNetwork 创建网络层实例
func NewNetwork(cfg *config.Config, opts ...Option) (*Network, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &networkOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var resolverOpts []resolver.Option
	if o.source != nil {
		resolverOpts = append(resolverOpts, resolver.WithSource(o.source))
	}
	res, err := resolver.New(resolver.ConfigFromUnified(cfg), resolverOpts...)
	if err != nil {
		return nil, err
	}

	evaluator := o.evaluator
	if evaluator == nil {
		evaluator = securitytls.StandardEvaluator
	}
	transport, err := securitytls.New(cfg.Security, evaluator, securitytls.Options{Engine: o.engine})
	if err != nil {
		return nil, err
	}

	return &Network{
		resolver:  res,
		transport: transport,
		dialer:    dialer.New(res, cfg.DialTimeout),
	}, nil
}

// ============================================================================
//                              端点发现
// ============================================================================

// ResolveClient 解析域名的 c2s 候选端点
func (n *Network) ResolveClient(ctx context.Context, domain string) []types.HostAddress {
	return n.resolver.ResolveClient(ctx, domain)
}

// ResolveServer 解析域名的 s2s 候选端点
func (n *Network) ResolveServer(ctx context.Context, domain string) []types.HostAddress {
	return n.resolver.ResolveServer(ctx, domain)
}

// DialClient 依次拨号 c2s 候选端点，返回第一个成功的明文连接
func (n *Network) DialClient(ctx context.Context, domain string) (net.Conn, types.HostAddress, error) {
	return n.dialer.DialClient(ctx, domain)
}

// DialServer 依次拨号 s2s 候选端点
func (n *Network) DialServer(ctx context.Context, domain string) (net.Conn, types.HostAddress, error) {
	return n.dialer.DialServer(ctx, domain)
}

// ============================================================================
//                              安全传输
// ============================================================================

// Upgrade 把明文连接升级为加密会话
func (n *Network) Upgrade(ctx context.Context, conn net.Conn, host string, port uint16) (securityif.SecureConn, error) {
	return n.transport.Upgrade(ctx, conn, host, port)
}

// IsAvailable 返回安全引擎是否可用
func (n *Network) IsAvailable() bool {
	return n.transport.IsAvailable()
}

// TrustFailure 返回指定会话的信任失败原因
func (n *Network) TrustFailure(id types.SessionID) *securityif.CertificateError {
	return n.transport.TrustFailure(id)
}

// CompressionMethod 返回指定会话协商到的压缩方法名
func (n *Network) CompressionMethod(id types.SessionID) string {
	return n.transport.CompressionMethod(id)
}

// SeenInsecureSession 返回是否产生过不安全会话
func (n *Network) SeenInsecureSession() *securityif.CertificateError {
	return n.transport.SeenInsecureSession()
}
