package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cex-intake/biz/store"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

// Store 基于 go-redis 的存储网关实现。
// 订单簿索引用 sorted set（score=价格），订单明细用 hash，批量写走 TxPipeline。
type Store struct {
	cli redis.Cmdable
}

func NewStore(cli redis.Cmdable) *Store {
	return &Store{cli: cli}
}

// DefaultStore 复用 Init 建立的全局连接
func DefaultStore() *Store {
	return NewStore(Client)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.cli.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", store.ErrStoreUnavailable, key, err)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.cli.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %v", store.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if err := s.cli.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("%w: HSET %s: %v", store.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.cli.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: HGETALL %s: %v", store.ErrStoreUnavailable, key, err)
	}
	return fields, nil
}

func (s *Store) ZAdd(ctx context.Context, key, member string, score float64) error {
	if err := s.cli.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("%w: ZADD %s: %v", store.ErrStoreUnavailable, key, err)
	}
	return nil
}

// ZRangeByScore 闭区间范围查询，按 score 升序返回成员。
// 存储层报错时记日志并返回空结果，调用方拿到的永远是可用的切片。
func (s *Store) ZRangeByScore(ctx context.Context, key string, min, max float64) []string {
	members, err := s.cli.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: strconv.FormatFloat(min, 'f', -1, 64),
		Max: strconv.FormatFloat(max, 'f', -1, 64),
	}).Result()
	if err != nil {
		hlog.Errorf("ZRANGEBYSCORE %s [%v,%v] 失败: %v", key, min, max, err)
		return nil
	}
	return members
}

func (s *Store) BeginBatch() store.Batch {
	return &txBatch{pipe: s.cli.TxPipeline()}
}

// txBatch 单次入账私有的写累加器，Commit 后不可复用
type txBatch struct {
	pipe redis.Pipeliner
}

func (b *txBatch) ZAdd(key, member string, score float64) {
	b.pipe.ZAdd(context.Background(), key, redis.Z{Score: score, Member: member})
}

func (b *txBatch) HSet(key string, fields map[string]string) {
	b.pipe.HSet(context.Background(), key, fields)
}

func (b *txBatch) Commit(ctx context.Context) error {
	if _, err := b.pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: EXEC: %v", store.ErrStoreUnavailable, err)
	}
	return nil
}
