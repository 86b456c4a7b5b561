package tls

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
)

// ============================================================================
//                              测试证书
// ============================================================================

// generateTestCert 生成自签名测试证书
func generateTestCert(t *testing.T, dnsName string) (tls.Certificate, *x509.Certificate) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: dnsName},
		DNSNames:              []string{dnsName},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, pub, priv)
	require.NoError(t, err)

	leaf, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  priv,
		Leaf:        leaf,
	}, leaf
}

// startTLSServer 在管道对端运行一次 TLS 服务端握手
func startTLSServer(t *testing.T, conn net.Conn, cert tls.Certificate) {
	t.Helper()

	go func() {
		server := tls.Server(conn, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		// 客户端中止握手时这里同样报错，属预期
		if err := server.Handshake(); err != nil {
			return
		}
		// 保持连接直到客户端关闭
		buf := make([]byte, 1)
		_, _ = server.Read(buf)
	}()
}

// ============================================================================
//                              测试验证器
// ============================================================================

// acceptAllEvaluator 接受一切证书链
type acceptAllEvaluator struct{}

func (acceptAllEvaluator) CheckCertificates([]*x509.Certificate) error { return nil }

// rejectAllEvaluator 拒绝一切证书链
type rejectAllEvaluator struct{ reason string }

func (e rejectAllEvaluator) CheckCertificates([]*x509.Certificate) error {
	return &securityif.CertificateError{Reason: e.reason}
}

// evaluatorFactory 返回固定验证器并统计构造次数
func evaluatorFactory(evaluator securityif.TrustEvaluator, calls *atomic.Int32) securityif.TrustEvaluatorFactory {
	return func(string, securityif.Config, bool) (securityif.TrustEvaluator, error) {
		if calls != nil {
			calls.Add(1)
		}
		return evaluator, nil
	}
}

// ============================================================================
//                              伪引擎
// ============================================================================

// fakeEngine 不做真实加密的握手连接
//
// HandshakeContext 遵守与 crypto/tls 相同的契约：配置了
// VerifyPeerCertificate 时在握手内调用它，拒绝即中止。
type fakeEngine struct {
	net.Conn

	cfg        *tls.Config
	peerChain  []*x509.Certificate
	handshakes *atomic.Int32
}

func (e *fakeEngine) HandshakeContext(context.Context) error {
	if e.handshakes != nil {
		e.handshakes.Add(1)
	}
	if e.cfg.VerifyPeerCertificate != nil {
		rawCerts := make([][]byte, len(e.peerChain))
		for i, cert := range e.peerChain {
			rawCerts[i] = cert.Raw
		}
		return e.cfg.VerifyPeerCertificate(rawCerts, nil)
	}
	return nil
}

func (e *fakeEngine) ConnectionState() tls.ConnectionState {
	return tls.ConnectionState{PeerCertificates: e.peerChain}
}

// fakeEngineFactory 构造伪引擎的 EngineFactory
func fakeEngineFactory(peerChain []*x509.Certificate, handshakes *atomic.Int32) securityif.EngineFactory {
	return func(conn net.Conn, cfg *tls.Config) securityif.HandshakeConn {
		return &fakeEngine{
			Conn:       conn,
			cfg:        cfg,
			peerChain:  peerChain,
			handshakes: handshakes,
		}
	}
}

// compressingEngine 支持压缩协商的伪引擎
type compressingEngine struct {
	fakeEngine

	supported  []string
	enabled    []string
	negotiated string
	enableErr  error
}

func (e *compressingEngine) SupportedCompressionMethods() []string { return e.supported }

func (e *compressingEngine) EnableCompressionMethods(methods []string) error {
	if e.enableErr != nil {
		return e.enableErr
	}
	e.enabled = methods
	return nil
}

func (e *compressingEngine) NegotiatedCompressionMethod() string { return e.negotiated }
