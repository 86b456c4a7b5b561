// Package compress 提供命名的流压缩方法
//
// 连接层在流协商确认压缩后，用 Wrap 把连接包装为压缩连接。
// 方法通过注册表按名称查找，不做任何运行时探测；安全传输
// 记录的压缩方法名与这里的注册名一致。
package compress

import (
	"fmt"
	"net"
	"sync"
)

// ============================================================================
//                              方法注册表
// ============================================================================

// Wrapper 把明文连接包装为压缩连接
type Wrapper func(conn net.Conn) (net.Conn, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Wrapper)
)

// Register 注册压缩方法
//
// 重复注册同名方法时后注册者覆盖先注册者。
func Register(method string, wrapper Wrapper) {
	registryMu.Lock()
	registry[method] = wrapper
	registryMu.Unlock()
}

// Methods 返回已注册的压缩方法名
func Methods() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	methods := make([]string, 0, len(registry))
	for method := range registry {
		methods = append(methods, method)
	}
	return methods
}

// Supported 返回指定方法是否已注册
func Supported(method string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[method]
	return ok
}

// Wrap 按方法名包装连接
func Wrap(method string, conn net.Conn) (net.Conn, error) {
	registryMu.RLock()
	wrapper, ok := registry[method]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("compress: unknown method %q", method)
	}
	return wrapper(conn)
}
