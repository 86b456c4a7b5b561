package xmpp

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-xmpp/config"
	securityif "github.com/dep2p/go-xmpp/pkg/interfaces/security"
	"github.com/dep2p/go-xmpp/pkg/types"
)

// fakeSRVSource 可编程的 SRV 查询源
type fakeSRVSource struct {
	records map[string][]types.SRVRecord
}

func (s *fakeSRVSource) LookupSRV(_ context.Context, name string) ([]types.SRVRecord, error) {
	return s.records[name], nil
}

// passthroughEngine 不做加密的握手连接（测试用）
type passthroughEngine struct {
	net.Conn
}

func (passthroughEngine) HandshakeContext(context.Context) error { return nil }
func (passthroughEngine) ConnectionState() tls.ConnectionState   { return tls.ConnectionState{} }

func trustingEvaluator(string, securityif.Config, bool) (securityif.TrustEvaluator, error) {
	return trustAll{}, nil
}

type trustAll struct{}

func (trustAll) CheckCertificates([]*x509.Certificate) error { return nil }

// TestNetwork_Resolve 测试组合入口的端点发现
func TestNetwork_Resolve(t *testing.T) {
	source := &fakeSRVSource{records: map[string][]types.SRVRecord{
		"_xmpp-client._tcp.example.com": {
			{Target: "im.example.com", Port: 5223, Priority: 0, Weight: 1},
		},
	}}

	n, err := NewNetwork(config.DefaultConfig(), WithSRVSource(source))
	require.NoError(t, err)

	addrs := n.ResolveClient(context.Background(), "example.com")
	require.Len(t, addrs, 1)
	assert.Equal(t, types.NewHostAddress("im.example.com", 5223), addrs[0])

	// 无记录的域名回退为 (domain, 默认端口)
	fallback := n.ResolveServer(context.Background(), "other.example.com")
	require.Len(t, fallback, 1)
	assert.Equal(t, types.NewHostAddress("other.example.com", 5269), fallback[0])
}

// TestNetwork_DisabledSecurity 测试禁用安全模式的组合行为
func TestNetwork_DisabledSecurity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Security.Mode = types.SecurityDisabled

	n, err := NewNetwork(cfg, WithSRVSource(&fakeSRVSource{}))
	require.NoError(t, err)

	assert.False(t, n.IsAvailable())

	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	sc, err := n.Upgrade(context.Background(), client, "example.com", 5222)
	assert.Error(t, err)
	assert.Nil(t, sc)
}

// TestNetwork_Upgrade 测试组合入口的安全升级与元数据查询
func TestNetwork_Upgrade(t *testing.T) {
	n, err := NewNetwork(config.DefaultConfig(),
		WithSRVSource(&fakeSRVSource{}),
		WithTrustEvaluator(trustingEvaluator),
		WithEngine(func(conn net.Conn, _ *tls.Config) securityif.HandshakeConn {
			return passthroughEngine{Conn: conn}
		}),
	)
	require.NoError(t, err)
	assert.True(t, n.IsAvailable())

	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})

	sc, err := n.Upgrade(context.Background(), client, "example.com", 5222)
	require.NoError(t, err)
	defer sc.Close()

	assert.NotEmpty(t, sc.SessionID())
	assert.Nil(t, n.TrustFailure(sc.SessionID()))
	assert.Equal(t, "", n.CompressionMethod(sc.SessionID()))
	assert.Nil(t, n.SeenInsecureSession())
}

// TestNetwork_InvalidConfig 测试非法配置拒绝构造
func TestNetwork_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Resolver.CacheSize = 0

	_, err := NewNetwork(cfg)
	assert.Error(t, err)
}
