package compress

import (
	"io"
	"net"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// MethodZlib XEP-138 定义的 zlib 流压缩方法名
const MethodZlib = "zlib"

func init() {
	Register(MethodZlib, newZlibConn)
}

// ============================================================================
//                              zlib 压缩连接
// ============================================================================

// zlibConn 双向 zlib 压缩连接
//
// 每次 Write 后立即 Flush：XMPP 按节（stanza）交互，对端必须
// 能读到完整的一节，不能等压缩缓冲填满。读方向的解压器在
// 首次 Read 时惰性构造（zlib 头要等对端先写才存在）。
type zlibConn struct {
	net.Conn

	writeMu sync.Mutex
	writer  *zlib.Writer

	readMu sync.Mutex
	reader io.ReadCloser
}

// newZlibConn 创建 zlib 压缩连接
func newZlibConn(conn net.Conn) (net.Conn, error) {
	return &zlibConn{
		Conn:   conn,
		writer: zlib.NewWriter(conn),
	}, nil
}

// Write 压缩写入
func (c *zlibConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := c.writer.Write(p)
	if err != nil {
		return n, err
	}
	return n, c.writer.Flush()
}

// Read 解压读取
func (c *zlibConn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if c.reader == nil {
		reader, err := zlib.NewReader(c.Conn)
		if err != nil {
			return 0, err
		}
		c.reader = reader
	}
	return c.reader.Read(p)
}

// Close 关闭连接
//
// 先排空压缩缓冲再关闭底层连接。
func (c *zlibConn) Close() error {
	c.writeMu.Lock()
	err := c.writer.Close()
	c.writeMu.Unlock()

	if closeErr := c.Conn.Close(); err == nil {
		err = closeErr
	}
	return err
}
