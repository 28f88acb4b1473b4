package store

import (
	"context"
	"errors"
)

// ErrStoreUnavailable 后端存储不可达或拒绝写入。
// 入账流水线收到该错误后不确认消息，交由流的重投递机制重试。
var ErrStoreUnavailable = errors.New("order store unavailable")

// Store 价格索引 + 订单明细存储的抽象。
// 点查 miss 返回空值而非错误；ZRangeByScore 失败时降级为空结果（网关内部记日志）。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRangeByScore(ctx context.Context, key string, min, max float64) []string
	BeginBatch() Batch
}

// Batch 待提交写操作的累加器，Commit 全部生效或全部不生效。
// 索引写入和明细写入必须同批提交，这是入账原子性的唯一依赖。
type Batch interface {
	ZAdd(key, member string, score float64)
	HSet(key string, fields map[string]string)
	Commit(ctx context.Context) error
}
