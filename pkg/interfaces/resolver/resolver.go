// Package resolver 定义端点发现接口
//
// 端点解析器负责把裸域名解析为有序的候选 (host, port) 列表，
// 供连接管理层依次尝试。
package resolver

import (
	"context"

	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              Resolver 接口
// ============================================================================

// Resolver 端点解析器接口
//
// 两个解析方法都满足：
//   - 永不返回空列表（无记录时回退为 (domain, 默认端口)）
//   - 永不失败（DNS 查询错误一律按"无记录"处理）
//   - 在缓存 TTL 窗口内幂等
type Resolver interface {
	// ResolveClient 解析客户端到服务器（c2s）端点
	ResolveClient(ctx context.Context, domain string) []types.HostAddress

	// ResolveServer 解析服务器到服务器（s2s）端点
	ResolveServer(ctx context.Context, domain string) []types.HostAddress
}

// ============================================================================
//                              SRVSource 接口
// ============================================================================

// SRVSource 服务记录查询协作者
//
// 给定完整的查询名（如 "_xmpp-client._tcp.example.com"），
// 返回零条或多条服务记录。查询失败与空结果由调用方等同处理。
type SRVSource interface {
	// LookupSRV 查询指定名称的 SRV 记录
	LookupSRV(ctx context.Context, name string) ([]types.SRVRecord, error)
}
