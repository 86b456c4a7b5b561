package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/miekg/dns"

	ifresolver "github.com/dep2p/go-xmpp/pkg/interfaces/resolver"
	"github.com/dep2p/go-xmpp/pkg/types"
)

// resolvConfPath 系统解析器配置路径
const resolvConfPath = "/etc/resolv.conf"

// 确保实现了接口
var _ ifresolver.SRVSource = (*srvSource)(nil)

// ============================================================================
//                              SRV 查询实现
// ============================================================================

// srvSource 基于 miekg/dns 的 SRV 记录查询
type srvSource struct {
	client      *dns.Client
	nameservers []string
}

// newSRVSource 创建 SRV 查询源
//
// 未配置自定义服务器时读取 resolv.conf；读取失败不算错误，
// 查询时会因无服务器而返回 ErrNoNameservers，解析器按
// "无记录"处理。
func newSRVSource(cfg Config) *srvSource {
	nameservers := make([]string, 0, len(cfg.Nameservers))
	nameservers = append(nameservers, cfg.Nameservers...)

	if len(nameservers) == 0 {
		if conf, err := dns.ClientConfigFromFile(resolvConfPath); err == nil {
			for _, server := range conf.Servers {
				nameservers = append(nameservers, net.JoinHostPort(server, conf.Port))
			}
		} else {
			logger.Warn("读取 resolv.conf 失败", "path", resolvConfPath, "error", err)
		}
	}

	return &srvSource{
		client: &dns.Client{
			Timeout: cfg.LookupTimeout,
		},
		nameservers: nameservers,
	}
}

// LookupSRV 查询指定名称的 SRV 记录
//
// 依次尝试每个 DNS 服务器，第一个成功应答即返回。
// NXDOMAIN / 空应答返回空切片而非错误。
func (s *srvSource) LookupSRV(ctx context.Context, name string) ([]types.SRVRecord, error) {
	if len(s.nameservers) == 0 {
		return nil, ErrNoNameservers
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeSRV)

	var lastErr error
	for _, server := range s.nameservers {
		reply, _, err := s.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = err
			continue
		}
		if reply.Rcode != dns.RcodeSuccess && reply.Rcode != dns.RcodeNameError {
			lastErr = fmt.Errorf("resolver: dns rcode %s from %s", dns.RcodeToString[reply.Rcode], server)
			continue
		}
		return parseSRVAnswer(reply), nil
	}
	return nil, lastErr
}

// parseSRVAnswer 从 DNS 应答中提取 SRV 记录
func parseSRVAnswer(reply *dns.Msg) []types.SRVRecord {
	records := make([]types.SRVRecord, 0, len(reply.Answer))
	for _, rr := range reply.Answer {
		srv, ok := rr.(*dns.SRV)
		if !ok {
			continue
		}
		// "." 目标表示该服务明确不可用（RFC 2782）
		if srv.Target == "." {
			continue
		}
		records = append(records, types.SRVRecord{
			Target:   srv.Target,
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
		})
	}
	return records
}
