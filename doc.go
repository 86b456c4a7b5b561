// Package xmpp 提供 XMPP 客户端的端点发现与安全传输层
//
// 本包解决连接建立中最靠底层的两件事：
//
//   - 端点发现：把裸域名解析为有序的候选 (host, port) 列表。
//     SRV 记录按优先级分组、组内按权重随机排序，无记录时
//     逐级回退；结果带 TTL 缓存
//   - 安全传输：把已连接的明文 socket 按安全策略升级为加密
//     会话，记录每个会话的信任与压缩结果供上层查询
//
// # 快速开始
//
//	network, err := xmpp.NewNetwork(config.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, addr, err := network.DialClient(ctx, "example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 流协商确认 STARTTLS 后升级
//	secured, err := network.Upgrade(ctx, conn, addr.Host, addr.Port)
//
// 流协商、SASL 认证与重连由上层连接管理负责，不属于本包。
package xmpp
