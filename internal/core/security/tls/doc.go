// Package tls 实现策略驱动的 TLS 安全传输
//
// Factory 把已连接的明文 socket 按安全模式升级为加密会话：
//
//   - required：信任验证器接入握手路径，证书链不受信任直接
//     中止握手；引擎在构造时急切初始化，失败即构造失败
//   - optional：握手层放行所有证书，握手完成后带外复验
//     证书链，失败仅记录为会话元数据；引擎惰性初始化，
//     失败静默降级为"加密不可用"
//   - disabled：从不初始化，从不握手
//
// 每个会话的信任与压缩结果存放在以 SessionID 为键的旁路表中，
// 表不持有连接；连接关闭时由包装器主动移除对应条目。
package tls
