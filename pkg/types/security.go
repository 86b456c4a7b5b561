package types

import "fmt"

// ============================================================================
//                              SecurityMode
// ============================================================================

// SecurityMode 传输加密策略
type SecurityMode int

const (
	// SecurityOptional 尝试加密，失败时降级为明文（默认）
	SecurityOptional SecurityMode = iota

	// SecurityDisabled 禁用加密
	SecurityDisabled

	// SecurityRequired 必须加密，初始化或信任验证失败即失败
	SecurityRequired
)

// String 返回模式的字符串表示
func (m SecurityMode) String() string {
	switch m {
	case SecurityDisabled:
		return "disabled"
	case SecurityRequired:
		return "required"
	default:
		return "optional"
	}
}

// ParseSecurityMode 从字符串解析安全模式
func ParseSecurityMode(s string) (SecurityMode, error) {
	switch s {
	case "disabled":
		return SecurityDisabled, nil
	case "optional", "":
		return SecurityOptional, nil
	case "required":
		return SecurityRequired, nil
	default:
		return SecurityOptional, fmt.Errorf("types: unknown security mode %q", s)
	}
}

// ============================================================================
//                              KeystoreKind
// ============================================================================

// KeystoreKind 客户端证书密钥库后端类型
type KeystoreKind int

const (
	// KeystoreNone 不提供客户端证书
	KeystoreNone KeystoreKind = iota

	// KeystoreFile 基于文件的密钥库（PEM 或 PKCS#12）
	KeystoreFile

	// KeystoreHardwareToken 硬件令牌（PKCS#11 模块）
	KeystoreHardwareToken

	// KeystoreOSKeychain 操作系统原生钥匙串
	KeystoreOSKeychain
)

// String 返回后端类型的字符串表示
func (k KeystoreKind) String() string {
	switch k {
	case KeystoreFile:
		return "file"
	case KeystoreHardwareToken:
		return "hardwareToken"
	case KeystoreOSKeychain:
		return "osKeychain"
	default:
		return "none"
	}
}

// ============================================================================
//                              SessionID
// ============================================================================

// SessionID 安全会话的稳定身份令牌
//
// 在升级时签发，由安全连接包装器持有。会话元数据表仅以
// SessionID 为键，不持有连接本身。
type SessionID string
