// Package resolver 实现 XMPP 端点发现
//
// 解析流程：
//  1. 缓存查找 (kind, domain)，命中则原样返回
//  2. 查询 "_xmpp-client._tcp.<domain>"（或 server 形式）的 SRV 记录，
//     为空或失败时重试旧式 "_jabber._tcp.<domain>"
//  3. 两者都为空时合成单条回退地址 (domain, 5222|5269)
//  4. 有记录时按优先级升序分组，组内做权重随机排序后拼接
//  5. 写入缓存并返回
//
// DNS 查询错误一律按"无记录"处理，调用方总能拿到可用的地址列表。
package resolver
