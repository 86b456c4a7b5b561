package resolver

import "errors"

// 预定义错误
var (
	// ErrNoNameservers 没有可用的 DNS 服务器
	ErrNoNameservers = errors.New("resolver: no nameservers available")
)
