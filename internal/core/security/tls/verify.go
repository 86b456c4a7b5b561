package tls

import (
	"crypto/x509"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
)

// 确保实现了接口
var _ securityif.TrustEvaluator = (*standardEvaluator)(nil)

// ============================================================================
//                              默认信任验证器
// ============================================================================

// standardEvaluator 标准 X.509 链验证
//
// 用系统根证书验证证书链，并检查叶证书对服务名的有效性。
// 更复杂的信任策略（证书钉扎、自定义根等）由外部验证器
// 通过 TrustEvaluatorFactory 提供。
type standardEvaluator struct {
	serviceName string
	roots       *x509.CertPool
}

// StandardEvaluator 构造默认信任验证器
//
// 满足 securityif.TrustEvaluatorFactory 签名。strict 与否不
// 影响验证逻辑本身，只决定验证器被接入的位置。
func StandardEvaluator(serviceName string, _ securityif.Config, _ bool) (securityif.TrustEvaluator, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		return nil, err
	}
	return &standardEvaluator{
		serviceName: serviceName,
		roots:       roots,
	}, nil
}

// CheckCertificates 验证对端证书链
//
// 身份检查针对的是原始服务名（XMPP 域名），不是 SRV 解析出
// 的目标主机名。
func (e *standardEvaluator) CheckCertificates(chain []*x509.Certificate) error {
	if len(chain) == 0 {
		return &securityif.CertificateError{
			Reason: "peer provided no certificates",
			Err:    ErrNoCertificates,
		}
	}

	intermediates := x509.NewCertPool()
	for _, cert := range chain[1:] {
		intermediates.AddCert(cert)
	}

	_, err := chain[0].Verify(x509.VerifyOptions{
		DNSName:       e.serviceName,
		Roots:         e.roots,
		Intermediates: intermediates,
	})
	if err != nil {
		return &securityif.CertificateError{
			Reason: "certificate chain not trusted for " + e.serviceName,
			Err:    err,
		}
	}
	return nil
}

// ============================================================================
//                              辅助函数
// ============================================================================

// parseRawChain 解析握手回调收到的原始证书链
func parseRawChain(rawCerts [][]byte) ([]*x509.Certificate, error) {
	chain := make([]*x509.Certificate, 0, len(rawCerts))
	for _, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return nil, err
		}
		chain = append(chain, cert)
	}
	return chain, nil
}

// asCertificateError 把任意验证错误规整为 *CertificateError
func asCertificateError(err error) *securityif.CertificateError {
	if certErr, ok := err.(*securityif.CertificateError); ok {
		return certErr
	}
	return &securityif.CertificateError{
		Reason: "certificate chain rejected",
		Err:    err,
	}
}
