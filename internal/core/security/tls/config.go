package tls

import (
	"crypto/tls"
	"crypto/x509"
	"net"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
)

// ============================================================================
//                              工厂选项
// ============================================================================

// Options Factory 的实现侧选项
//
// 与 securityif.Config（策略配置）分开：策略是每连接不可变的
// 外部输入，这里是实现细节的注入点。
type Options struct {
	// Engine 安全引擎构造器（默认 crypto/tls 的 tls.Client）
	Engine securityif.EngineFactory
}

// defaultEngine 默认安全引擎：crypto/tls 客户端
func defaultEngine(conn net.Conn, cfg *tls.Config) securityif.HandshakeConn {
	return tls.Client(conn, cfg)
}

// buildTLSConfig 构造基础 TLS 配置
//
// 证书链验证完全由信任验证器承担，所以 crypto/tls 自身的
// 验证始终关闭：
//   - strict（required 模式）：验证器挂在 VerifyPeerCertificate
//     上，拒绝即中止握手
//   - 非 strict（optional 模式）：握手层放行一切，验证器在
//     握手完成后带外调用
func buildTLSConfig(cfg securityif.Config, evaluator securityif.TrustEvaluator, strict bool, clientCert *tls.Certificate) *tls.Config {
	minVersion := cfg.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	tlsConf := &tls.Config{
		MinVersion:         minVersion,
		InsecureSkipVerify: true,
	}
	if clientCert != nil {
		tlsConf.Certificates = []tls.Certificate{*clientCert}
	}

	if strict {
		tlsConf.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			chain, err := parseRawChain(rawCerts)
			if err != nil {
				return err
			}
			return evaluator.CheckCertificates(chain)
		}
	}

	return tlsConf
}
