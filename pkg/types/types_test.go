package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHostAddress 测试端点地址
func TestHostAddress(t *testing.T) {
	addr := NewHostAddress("im.example.com.", 5222)
	assert.Equal(t, "im.example.com", addr.Host, "尾随点应被剥离")
	assert.Equal(t, uint16(5222), addr.Port)
	assert.Equal(t, "im.example.com:5222", addr.String())

	other := NewHostAddress("im.example.com", 5222)
	assert.True(t, addr.Equal(other))
	assert.False(t, addr.Equal(NewHostAddress("im.example.com", 5223)))
}

// TestSRVRecord_Address 测试记录到地址的转换
func TestSRVRecord_Address(t *testing.T) {
	rec := SRVRecord{Target: "xmpp.example.com.", Port: 5269, Priority: 10, Weight: 60}
	addr := rec.Address()
	assert.Equal(t, "xmpp.example.com", addr.Host)
	assert.Equal(t, uint16(5269), addr.Port)
}

// TestLookupKind 测试查询类型
func TestLookupKind(t *testing.T) {
	assert.Equal(t, "_xmpp-client._tcp.", LookupClient.Service())
	assert.Equal(t, "_xmpp-server._tcp.", LookupServer.Service())
	assert.Equal(t, "_jabber._tcp.", LookupClient.LegacyService())
	assert.Equal(t, "_jabber._tcp.", LookupServer.LegacyService())

	assert.Equal(t, uint16(5222), LookupClient.DefaultPort())
	assert.Equal(t, uint16(5269), LookupServer.DefaultPort())

	// 缓存键必须区分查询类型
	assert.NotEqual(t, LookupClient.CacheKey("example.com"), LookupServer.CacheKey("example.com"))
}

// TestParseSecurityMode 测试安全模式解析
func TestParseSecurityMode(t *testing.T) {
	cases := []struct {
		in   string
		want SecurityMode
	}{
		{"disabled", SecurityDisabled},
		{"optional", SecurityOptional},
		{"", SecurityOptional},
		{"required", SecurityRequired},
	}
	for _, tc := range cases {
		mode, err := ParseSecurityMode(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, mode)
	}

	_, err := ParseSecurityMode("bogus")
	assert.Error(t, err)
}

// TestKeystoreKind_String 测试密钥库类型字符串
func TestKeystoreKind_String(t *testing.T) {
	assert.Equal(t, "none", KeystoreNone.String())
	assert.Equal(t, "file", KeystoreFile.String())
	assert.Equal(t, "hardwareToken", KeystoreHardwareToken.String())
	assert.Equal(t, "osKeychain", KeystoreOSKeychain.String())
}
