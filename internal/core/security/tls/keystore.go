package tls

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/crypto/pkcs12"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              客户端证书提供
// ============================================================================

// loadClientCredential 按密钥库后端构造客户端证书
//
// 客户端证书是可选的：任何后端失败都返回 (nil, err)，调用方
// 记录日志后继续，绝不因此使传输构造失败。
func loadClientCredential(cfg securityif.KeystoreConfig) (*tls.Certificate, error) {
	switch cfg.Kind {
	case types.KeystoreNone:
		return nil, nil
	case types.KeystoreFile:
		return loadFileKeystore(cfg)
	default:
		// PKCS#11 模块与系统钥匙串暂无纯 Go 实现
		return nil, fmt.Errorf("%w: %s", ErrKeystoreUnsupported, cfg.Kind)
	}
}

// loadFileKeystore 加载基于文件的密钥库
//
// 先按 PEM 解析（证书与私钥在同一文件中）；不是 PEM 时按
// PKCS#12 解析，口令通过回调获取。两种解析都失败时聚合
// 返回两个错误。
func loadFileKeystore(cfg securityif.KeystoreConfig) (*tls.Certificate, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	cert, pemErr := parsePEMKeystore(data)
	if pemErr == nil {
		return cert, nil
	}

	cert, p12Err := parsePKCS12Keystore(data, cfg.PasswordCallback)
	if p12Err == nil {
		return cert, nil
	}

	return nil, multierr.Append(
		fmt.Errorf("pem: %w", pemErr),
		fmt.Errorf("pkcs12: %w", p12Err),
	)
}

// parsePEMKeystore 解析同时含证书与私钥的 PEM 文件
func parsePEMKeystore(data []byte) (*tls.Certificate, error) {
	var certBlocks, keyBlock []byte
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		raw := pem.EncodeToMemory(block)
		if block.Type == "CERTIFICATE" {
			certBlocks = append(certBlocks, raw...)
		} else {
			keyBlock = raw
		}
	}
	if len(certBlocks) == 0 || keyBlock == nil {
		return nil, fmt.Errorf("no certificate/key PEM blocks")
	}

	cert, err := tls.X509KeyPair(certBlocks, keyBlock)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// parsePKCS12Keystore 解析 PKCS#12 密钥库
func parsePKCS12Keystore(data []byte, passwordCb func() ([]byte, error)) (*tls.Certificate, error) {
	password := ""
	if passwordCb != nil {
		pw, err := passwordCb()
		if err != nil {
			return nil, fmt.Errorf("password callback: %w", err)
		}
		password = string(pw)
	}

	key, leaf, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, err
	}

	return &tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  key,
		Leaf:        leaf,
	}, nil
}
