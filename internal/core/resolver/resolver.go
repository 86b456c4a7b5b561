package resolver

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	ifresolver "github.com/dep2p/go-xmpp/pkg/interfaces/resolver"
	"github.com/dep2p/go-xmpp/pkg/lib/log"
	"github.com/dep2p/go-xmpp/pkg/types"
)

var logger = log.Logger("core/resolver")

// 确保实现了接口
var _ ifresolver.Resolver = (*Resolver)(nil)

// ============================================================================
//                              Resolver 实现
// ============================================================================

// Resolver XMPP 端点解析器
//
// 每个进程构造一个实例，显式传递给连接构造方。
type Resolver struct {
	source ifresolver.SRVSource
	cache  *addressCache
	config Config

	// rngMu 保护权重排序使用的随机数发生器
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option Resolver 可选参数
type Option func(*options)

type options struct {
	source ifresolver.SRVSource
	clock  clock.Clock
	seed   int64
	seeded bool
}

// WithSource 指定 SRV 查询源（默认 miekg/dns 实现）
func WithSource(source ifresolver.SRVSource) Option {
	return func(o *options) { o.source = source }
}

// WithClock 指定时钟（测试用）
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// WithSeed 指定随机种子（测试用）
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// New 创建端点解析器
func New(cfg Config, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.source == nil {
		o.source = newSRVSource(cfg)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}

	cache, err := newAddressCache(cfg.CacheSize, cfg.CacheTTL, o.clock)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		source: o.source,
		cache:  cache,
		config: cfg,
		rng:    rand.New(rand.NewSource(o.seed)),
	}, nil
}

// ============================================================================
//                              解析方法
// ============================================================================

// ResolveClient 解析客户端到服务器（c2s）端点
func (r *Resolver) ResolveClient(ctx context.Context, domain string) []types.HostAddress {
	return r.resolve(ctx, types.LookupClient, domain)
}

// ResolveServer 解析服务器到服务器（s2s）端点
func (r *Resolver) ResolveServer(ctx context.Context, domain string) []types.HostAddress {
	return r.resolve(ctx, types.LookupServer, domain)
}

// resolve 解析指定类型的端点
//
// 永不失败：查询错误按"无记录"处理，最终回退为
// (domain, 默认端口) 的单条地址。
func (r *Resolver) resolve(ctx context.Context, kind types.LookupKind, domain string) []types.HostAddress {
	key := kind.CacheKey(domain)
	if addrs, ok := r.cache.Get(key); ok {
		return addrs
	}

	records := r.lookup(ctx, kind.Service()+domain)
	if len(records) == 0 {
		records = r.lookup(ctx, kind.LegacyService()+domain)
	}

	var addrs []types.HostAddress
	if len(records) == 0 {
		addrs = []types.HostAddress{types.NewHostAddress(domain, kind.DefaultPort())}
		logger.Debug("无 SRV 记录，使用回退地址",
			"kind", kind.String(), "domain", domain, "fallback", addrs[0].String())
	} else {
		r.rngMu.Lock()
		ordered := orderByPriority(records, r.rng)
		r.rngMu.Unlock()

		addrs = make([]types.HostAddress, 0, len(ordered))
		for _, rec := range ordered {
			addrs = append(addrs, rec.Address())
		}
		logger.Debug("SRV 解析完成",
			"kind", kind.String(), "domain", domain, "candidates", len(addrs))
	}

	r.cache.Put(key, addrs)
	return addrs
}

// lookup 查询 SRV 记录
//
// 查询错误只记录日志，按空结果返回。
func (r *Resolver) lookup(ctx context.Context, name string) []types.SRVRecord {
	ctx, cancel := context.WithTimeout(ctx, r.config.LookupTimeout)
	defer cancel()

	records, err := r.source.LookupSRV(ctx, name)
	if err != nil {
		logger.Debug("SRV 查询失败", "name", name, "error", err)
		return nil
	}
	return records
}

// ClearCache 清空地址缓存
//
// 网络环境变化时调用。
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}
