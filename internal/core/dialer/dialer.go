// Package dialer 实现候选端点的顺序拨号
//
// 历史实现只连接解析出的第一个候选地址，后续候选从不被
// 尝试；这里依次拨号每个候选，直到某一个成功。
package dialer

import (
	"context"
	"net"
	"time"

	"go.uber.org/multierr"

	ifresolver "github.com/dep2p/go-xmpp/pkg/interfaces/resolver"
	"github.com/dep2p/go-xmpp/pkg/lib/log"
	"github.com/dep2p/go-xmpp/pkg/types"
)

var logger = log.Logger("core/dialer")

// ============================================================================
//                              Dialer 实现
// ============================================================================

// Dialer 候选端点拨号器
//
// 只建立明文 TCP 连接；加密升级由安全传输在流协商后进行。
type Dialer struct {
	resolver ifresolver.Resolver
	timeout  time.Duration
}

// New 创建拨号器
//
// timeout 为单个候选的连接超时，0 表示只受 ctx 约束。
func New(resolver ifresolver.Resolver, timeout time.Duration) *Dialer {
	return &Dialer{
		resolver: resolver,
		timeout:  timeout,
	}
}

// DialClient 连接域名的 c2s 端点
func (d *Dialer) DialClient(ctx context.Context, domain string) (net.Conn, types.HostAddress, error) {
	return d.dial(ctx, d.resolver.ResolveClient(ctx, domain))
}

// DialServer 连接域名的 s2s 端点
func (d *Dialer) DialServer(ctx context.Context, domain string) (net.Conn, types.HostAddress, error) {
	return d.dial(ctx, d.resolver.ResolveServer(ctx, domain))
}

// dial 依次尝试每个候选地址
//
// 返回第一个成功的连接及其地址；全部失败时返回聚合错误。
func (d *Dialer) dial(ctx context.Context, candidates []types.HostAddress) (net.Conn, types.HostAddress, error) {
	nd := &net.Dialer{Timeout: d.timeout}

	var dialErrs error
	for _, addr := range candidates {
		conn, err := nd.DialContext(ctx, "tcp", addr.String())
		if err == nil {
			logger.Debug("候选端点连接成功", "addr", addr.String())
			return conn, addr, nil
		}

		logger.Debug("候选端点连接失败，尝试下一个", "addr", addr.String(), "error", err)
		dialErrs = multierr.Append(dialErrs, err)

		if ctx.Err() != nil {
			break
		}
	}
	return nil, types.HostAddress{}, dialErrs
}
