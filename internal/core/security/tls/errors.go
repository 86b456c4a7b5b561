package tls

import "errors"

// 预定义错误
var (
	// ErrSecurityDisabled 安全模式为 disabled，不能升级连接
	ErrSecurityDisabled = errors.New("tls: security disabled")

	// ErrUnavailable 安全引擎不可用
	ErrUnavailable = errors.New("tls: transport layer security unavailable")

	// ErrNoEvaluator 缺少信任验证器工厂
	ErrNoEvaluator = errors.New("tls: no trust evaluator factory")

	// ErrNoCertificates 对端未提供证书
	ErrNoCertificates = errors.New("tls: peer provided no certificates")

	// ErrKeystoreUnsupported 该密钥库后端在当前平台不受支持
	ErrKeystoreUnsupported = errors.New("tls: keystore backend not supported")
)
