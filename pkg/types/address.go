// Package types 定义 go-xmpp 的基础值类型
//
// 本包不依赖任何其他内部包，供接口层和实现层共同使用。
package types

import (
	"net"
	"strconv"
	"strings"
)

// ============================================================================
//                              HostAddress
// ============================================================================

// HostAddress 服务端点地址（主机名 + 端口）
//
// 不可变值类型，按 (Host, Port) 判等。
type HostAddress struct {
	// Host 主机名（不含尾随 "."）
	Host string

	// Port TCP 端口
	Port uint16
}

// NewHostAddress 创建端点地址
//
// 主机名的尾随 "." 会被剥离（DNS 记录中的目标名以 "." 结尾）。
func NewHostAddress(host string, port uint16) HostAddress {
	return HostAddress{
		Host: strings.TrimSuffix(host, "."),
		Port: port,
	}
}

// String 返回 "host:port" 形式
func (a HostAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}

// Equal 判断两个地址是否相等
func (a HostAddress) Equal(other HostAddress) bool {
	return a == other
}

// ============================================================================
//                              SRVRecord
// ============================================================================

// SRVRecord 服务记录（来自 DNS 解析器的外部数据）
type SRVRecord struct {
	// Target 目标主机名
	Target string

	// Port 目标端口
	Port uint16

	// Priority 优先级，数值越小越优先
	Priority uint16

	// Weight 同优先级内的相对权重（非负）
	Weight uint16
}

// Address 转换为端点地址（剥离尾随 "."）
func (r SRVRecord) Address() HostAddress {
	return NewHostAddress(r.Target, r.Port)
}

// ============================================================================
//                              LookupKind
// ============================================================================

// LookupKind 查询类型：客户端到服务器 / 服务器到服务器
type LookupKind int

const (
	// LookupClient 客户端到服务器（c2s）
	LookupClient LookupKind = iota

	// LookupServer 服务器到服务器（s2s）
	LookupServer
)

// Service 返回该类型的 SRV 服务前缀（RFC 3920 §14.4）
func (k LookupKind) Service() string {
	if k == LookupServer {
		return "_xmpp-server._tcp."
	}
	return "_xmpp-client._tcp."
}

// LegacyService 返回旧式 SRV 服务前缀
//
// 实现旧版协议的服务器可能仍使用 "_jabber" 记录发布。
func (k LookupKind) LegacyService() string {
	return "_jabber._tcp."
}

// DefaultPort 返回无 SRV 记录时的默认端口
func (k LookupKind) DefaultPort() uint16 {
	if k == LookupServer {
		return 5269
	}
	return 5222
}

// CacheKey 返回 (kind, domain) 组合缓存键
func (k LookupKind) CacheKey(domain string) string {
	if k == LookupServer {
		return "s/" + domain
	}
	return "c/" + domain
}

// String 返回查询类型的字符串表示
func (k LookupKind) String() string {
	if k == LookupServer {
		return "server"
	}
	return "client"
}
