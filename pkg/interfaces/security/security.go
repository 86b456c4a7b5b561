// Package security 定义安全传输层接口
//
// 安全传输负责把已建立的明文连接按策略升级为加密会话，
// 并记录每个会话的信任与压缩结果供上层查询。
package security

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"

	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              SecureTransport 接口
// ============================================================================

// SecureTransport 安全传输接口
//
// Upgrade 之外的查询方法均可在任意时刻并发调用。
type SecureTransport interface {
	// Upgrade 把明文连接升级为加密会话
	//
	// host/port 为实际连接到的端点（host 用作 SNI）。
	// 模式为 required 且对端证书链不受信任时握手中止，
	// 返回错误且不产生任何会话元数据。
	Upgrade(ctx context.Context, conn net.Conn, host string, port uint16) (SecureConn, error)

	// IsAvailable 返回安全引擎是否可用
	//
	// 尚未初始化时会强制初始化（disabled 模式除外，恒为 false）。
	IsAvailable() bool

	// TrustFailure 返回指定会话的信任失败原因
	//
	// 会话未知或从未被标注时返回 nil。
	TrustFailure(id types.SessionID) *CertificateError

	// CompressionMethod 返回指定会话协商到的压缩方法名
	//
	// 未协商压缩或会话未知时返回 ""。
	CompressionMethod(id types.SessionID) string

	// SeenInsecureSession 返回本传输是否曾产生过不安全会话
	//
	// 粘性的进程级标志；从未发生时返回 nil。
	SeenInsecureSession() *CertificateError
}

// SecureConn 升级后的加密连接
type SecureConn interface {
	net.Conn

	// SessionID 返回会话身份令牌
	SessionID() types.SessionID

	// ConnectionState 返回底层 TLS 连接状态
	ConnectionState() tls.ConnectionState
}

// ============================================================================
//                              信任验证
// ============================================================================

// TrustEvaluator 证书链信任验证协作者
//
// strict 模式下由握手路径直接调用，拒绝即中止握手；
// 非 strict 模式下在握手完成后带外调用，拒绝仅被记录。
type TrustEvaluator interface {
	// CheckCertificates 验证对端证书链
	//
	// 链不受信任时返回 *CertificateError。
	CheckCertificates(chain []*x509.Certificate) error
}

// TrustEvaluatorFactory 构造信任验证器
//
// serviceName 是用于身份检查的目标服务名（XMPP 域名，
// 不是 SRV 解析出的目标主机名）。
type TrustEvaluatorFactory func(serviceName string, cfg Config, strict bool) (TrustEvaluator, error)

// CertificateError 证书链被拒绝的原因
type CertificateError struct {
	// Reason 人类可读的拒绝原因
	Reason string

	// Err 底层验证错误（可选）
	Err error
}

// Error 实现 error 接口
func (e *CertificateError) Error() string {
	if e.Err != nil {
		return "security: " + e.Reason + ": " + e.Err.Error()
	}
	return "security: " + e.Reason
}

// Unwrap 返回底层错误
func (e *CertificateError) Unwrap() error {
	return e.Err
}

// ============================================================================
//                              安全引擎
// ============================================================================

// HandshakeConn 安全引擎产生的握手连接
//
// *tls.Conn 直接满足本接口。
type HandshakeConn interface {
	net.Conn

	// HandshakeContext 执行握手
	HandshakeContext(ctx context.Context) error

	// ConnectionState 返回连接状态
	ConnectionState() tls.ConnectionState
}

// EngineFactory 从明文连接构造握手连接
//
// 默认实现为 crypto/tls 的 tls.Client；测试可注入伪引擎。
type EngineFactory func(conn net.Conn, cfg *tls.Config) HandshakeConn

// CompressionCapable 支持压缩协商的安全引擎实现本接口
//
// 这是一个能力查询：引擎不实现本接口时压缩特性直接缺席，
// 不做任何运行时探测。crypto/tls 不支持压缩，故默认引擎
// 不实现本接口；流压缩见 internal/core/compress。
type CompressionCapable interface {
	// SupportedCompressionMethods 返回引擎支持的压缩方法名
	SupportedCompressionMethods() []string

	// EnableCompressionMethods 在握手前启用指定压缩方法
	EnableCompressionMethods(methods []string) error

	// NegotiatedCompressionMethod 返回协商到的压缩方法名
	//
	// 未协商时返回 "" 或 "none"。
	NegotiatedCompressionMethod() string
}

// ============================================================================
//                              配置
// ============================================================================

// Config 安全传输配置（每连接不可变）
type Config struct {
	// Mode 加密策略
	Mode types.SecurityMode

	// ServiceName 用于身份检查的目标服务名（XMPP 域名）
	ServiceName string

	// MinVersion TLS 最低版本（0 表示 tls.VersionTLS12）
	MinVersion uint16

	// Keystore 客户端证书密钥库配置
	Keystore KeystoreConfig
}

// KeystoreConfig 客户端证书密钥库配置
//
// 客户端证书是可选的：任何后端失败都降级为"无客户端证书"，
// 不会使传输构造失败。
type KeystoreConfig struct {
	// Kind 后端类型
	Kind types.KeystoreKind

	// Path 密钥库文件路径（Kind 为 KeystoreFile 时）
	Path string

	// Module PKCS#11 模块库路径（Kind 为 KeystoreHardwareToken 时）
	Module string

	// PasswordCallback 获取密钥库口令的回调（可选）
	PasswordCallback func() ([]byte, error)
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Mode:       types.SecurityOptional,
		MinVersion: tls.VersionTLS12,
	}
}
