package tls

import (
	"crypto/tls"
	"sync"

	"github.com/google/uuid"

	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
	"github.com/dep2p/go-xmpp/pkg/types"
)

// ============================================================================
//                              会话元数据表
// ============================================================================

// sessionInfo 单个安全会话的元数据
type sessionInfo struct {
	// trustFailure 信任失败原因；会话受信任时为 nil
	trustFailure *securityif.CertificateError

	// compression 协商到的压缩方法名；未压缩时为 ""
	compression string
}

// sessionTable 以 SessionID 为键的会话元数据旁路表
//
// 表不持有连接，不会延长连接的生命周期。条目由 secureConn
// 的 Close 移除；对已移除或未知会话的查询返回零值。
type sessionTable struct {
	mu      sync.RWMutex
	entries map[types.SessionID]*sessionInfo
}

func newSessionTable() *sessionTable {
	return &sessionTable{
		entries: make(map[types.SessionID]*sessionInfo),
	}
}

// register 登记新会话并签发身份令牌
func (t *sessionTable) register() types.SessionID {
	id := types.SessionID(uuid.NewString())

	t.mu.Lock()
	t.entries[id] = &sessionInfo{}
	t.mu.Unlock()
	return id
}

// setTrustFailure 记录会话的信任失败原因
func (t *sessionTable) setTrustFailure(id types.SessionID, certErr *securityif.CertificateError) {
	t.mu.Lock()
	if info, ok := t.entries[id]; ok {
		info.trustFailure = certErr
	}
	t.mu.Unlock()
}

// setCompression 记录会话协商到的压缩方法
func (t *sessionTable) setCompression(id types.SessionID, method string) {
	t.mu.Lock()
	if info, ok := t.entries[id]; ok {
		info.compression = method
	}
	t.mu.Unlock()
}

// trustFailure 查询会话的信任失败原因
func (t *sessionTable) trustFailure(id types.SessionID) *securityif.CertificateError {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if info, ok := t.entries[id]; ok {
		return info.trustFailure
	}
	return nil
}

// compression 查询会话的压缩方法
func (t *sessionTable) compression(id types.SessionID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if info, ok := t.entries[id]; ok {
		return info.compression
	}
	return ""
}

// remove 移除会话条目
func (t *sessionTable) remove(id types.SessionID) {
	t.mu.Lock()
	delete(t.entries, id)
	t.mu.Unlock()
}

// len 返回当前登记的会话数
func (t *sessionTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// ============================================================================
//                              安全连接
// ============================================================================

// 确保实现了接口
var _ securityif.SecureConn = (*secureConn)(nil)

// secureConn 安全连接实现
//
// 嵌入握手连接，持有会话身份令牌。令牌归连接包装器所有，
// Close 时从旁路表中移除自己的元数据条目。
type secureConn struct {
	securityif.HandshakeConn

	id       types.SessionID
	sessions *sessionTable

	closeOnce sync.Once
}

// newSecureConn 创建安全连接
func newSecureConn(engine securityif.HandshakeConn, id types.SessionID, sessions *sessionTable) *secureConn {
	return &secureConn{
		HandshakeConn: engine,
		id:            id,
		sessions:      sessions,
	}
}

// SessionID 返回会话身份令牌
func (c *secureConn) SessionID() types.SessionID {
	return c.id
}

// ConnectionState 返回底层 TLS 连接状态
func (c *secureConn) ConnectionState() tls.ConnectionState {
	return c.HandshakeConn.ConnectionState()
}

// Close 关闭连接并移除会话元数据
func (c *secureConn) Close() error {
	c.closeOnce.Do(func() {
		c.sessions.remove(c.id)
	})
	return c.HandshakeConn.Close()
}
