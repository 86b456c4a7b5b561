package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
	"github.com/dep2p/go-xmpp/pkg/lib/log"
	"github.com/dep2p/go-xmpp/pkg/types"
)

var logger = log.Logger("core/security")

// 确保实现了接口
var _ securityif.SecureTransport = (*Factory)(nil)

// ============================================================================
//                              Factory 实现
// ============================================================================

// Factory 安全传输工厂
//
// 每个进程构造一个实例。初始化恰好发生一次：required 模式在
// 构造时急切初始化，optional 模式推迟到第一次使用，disabled
// 模式从不初始化。
type Factory struct {
	cfg          securityif.Config
	newEvaluator securityif.TrustEvaluatorFactory
	engine       securityif.EngineFactory

	// initMu 保护一次性初始化状态
	initMu      sync.Mutex
	initialized bool
	available   bool
	tlsConf     *tls.Config
	evaluator   securityif.TrustEvaluator

	// insecureSeen 粘性标志：本工厂是否产生过不安全会话
	insecureSeen atomic.Pointer[securityif.CertificateError]

	sessions *sessionTable
}

// New 创建安全传输工厂
//
// required 模式下初始化立即同步执行，失败即构造失败。
func New(cfg securityif.Config, newEvaluator securityif.TrustEvaluatorFactory, opts Options) (*Factory, error) {
	if newEvaluator == nil {
		return nil, ErrNoEvaluator
	}

	engine := opts.Engine
	if engine == nil {
		engine = defaultEngine
	}

	f := &Factory{
		cfg:          cfg,
		newEvaluator: newEvaluator,
		engine:       engine,
		sessions:     newSessionTable(),
	}

	if cfg.Mode == types.SecurityRequired {
		if err := f.init(); err != nil {
			return nil, fmt.Errorf("tls: eager init: %w", err)
		}
	}
	return f, nil
}

// init 一次性初始化
//
// 构造信任验证器和基础 TLS 配置。重复调用只观察已初始化
// 状态，不会重跑任何设置。
func (f *Factory) init() error {
	f.initMu.Lock()
	defer f.initMu.Unlock()

	if f.initialized {
		if !f.available {
			return ErrUnavailable
		}
		return nil
	}
	f.initialized = true

	strict := f.cfg.Mode == types.SecurityRequired

	evaluator, err := f.newEvaluator(f.cfg.ServiceName, f.cfg, strict)
	if err != nil {
		logger.Warn("信任验证器构造失败，加密不可用", "error", err)
		return err
	}

	// 客户端证书是可选的：加载失败降级为无客户端证书
	clientCert, err := loadClientCredential(f.cfg.Keystore)
	if err != nil {
		logger.Warn("客户端证书加载失败，继续且不提供客户端证书",
			"kind", f.cfg.Keystore.Kind.String(), "error", err)
	}

	f.evaluator = evaluator
	f.tlsConf = buildTLSConfig(f.cfg, evaluator, strict, clientCert)
	f.available = true

	logger.Debug("安全引擎初始化完成",
		"mode", f.cfg.Mode.String(), "serviceName", f.cfg.ServiceName,
		"clientCert", clientCert != nil)
	return nil
}

// ensureInit 按需初始化
//
// optional 模式下初始化失败静默降级；required 模式在构造时
// 已初始化成功，这里只会观察到已初始化状态。
func (f *Factory) ensureInit() bool {
	if err := f.init(); err != nil {
		return false
	}
	f.initMu.Lock()
	defer f.initMu.Unlock()
	return f.available
}

// ============================================================================
//                              升级
// ============================================================================

// Upgrade 把明文连接升级为加密会话
//
// 握手在本调用内同步完成，返回时信任与压缩元数据已可查询。
// required 模式下证书链不受信任会中止握手，此时不产生任何
// 会话元数据。
func (f *Factory) Upgrade(ctx context.Context, conn net.Conn, host string, port uint16) (securityif.SecureConn, error) {
	if f.cfg.Mode == types.SecurityDisabled {
		return nil, ErrSecurityDisabled
	}
	if !f.ensureInit() {
		return nil, ErrUnavailable
	}

	tlsConf := f.tlsConf.Clone()
	// SNI 使用实际连接的主机名；身份检查针对的服务名已在
	// 验证器构造时固定
	tlsConf.ServerName = host

	engine := f.engine(conn, tlsConf)

	// 握手前尽力启用引擎支持的所有压缩方法；压缩只是优化，
	// 引擎不支持时直接跳过
	capable, _ := engine.(securityif.CompressionCapable)
	if capable != nil {
		if err := capable.EnableCompressionMethods(capable.SupportedCompressionMethods()); err != nil {
			logger.Debug("压缩启用失败", "error", err)
			capable = nil
		}
	}

	if err := engine.HandshakeContext(ctx); err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("tls: handshake with %s: %w", net.JoinHostPort(host, fmt.Sprint(port)), err)
	}

	id := f.sessions.register()
	sc := newSecureConn(engine, id, f.sessions)

	// optional 模式：握手层放行了一切，这里带外复验证书链，
	// 失败只记录不抛出
	if f.cfg.Mode == types.SecurityOptional {
		f.recordTrustOutcome(id, engine.ConnectionState())
	}

	if capable != nil {
		if method := normalizeCompression(capable.NegotiatedCompressionMethod()); method != "" {
			f.sessions.setCompression(id, method)
		}
	}

	logger.Debug("连接升级完成", "host", host, "port", port, "session", string(id))
	return sc, nil
}

// recordTrustOutcome 带外复验对端证书链并记录结果
func (f *Factory) recordTrustOutcome(id types.SessionID, state tls.ConnectionState) {
	err := f.evaluator.CheckCertificates(state.PeerCertificates)
	if err == nil {
		return
	}

	certErr := asCertificateError(err)
	f.sessions.setTrustFailure(id, certErr)
	f.insecureSeen.Store(certErr)
	logger.Warn("会话证书链不受信任（optional 模式，继续）",
		"session", string(id), "reason", certErr.Reason)
}

// normalizeCompression 规整压缩方法名
//
// ""、"none" 与旧实现的 "NULL" 哨兵都表示未压缩。
func normalizeCompression(method string) string {
	switch method {
	case "", "none", "NULL":
		return ""
	default:
		return method
	}
}

// ============================================================================
//                              查询
// ============================================================================

// IsAvailable 返回安全引擎是否可用
//
// 尚未初始化时强制初始化；disabled 模式从不初始化，恒为 false。
func (f *Factory) IsAvailable() bool {
	if f.cfg.Mode == types.SecurityDisabled {
		return false
	}
	return f.ensureInit()
}

// TrustFailure 返回指定会话的信任失败原因
func (f *Factory) TrustFailure(id types.SessionID) *securityif.CertificateError {
	return f.sessions.trustFailure(id)
}

// CompressionMethod 返回指定会话协商到的压缩方法名
func (f *Factory) CompressionMethod(id types.SessionID) string {
	return f.sessions.compression(id)
}

// SeenInsecureSession 返回本工厂是否产生过不安全会话
//
// 粘性标志，保留最近一次失败原因。
func (f *Factory) SeenInsecureSession() *securityif.CertificateError {
	return f.insecureSeen.Load()
}
