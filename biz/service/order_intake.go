package service

import (
	"context"

	"cex-intake/biz/store"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// redis key 布局，线上既有格式，不可改动
const (
	OrderbookKeyPrefix = "orderbook:"
	OrderKeyPrefix     = "order:"
)

func OrderbookKey(market string) string {
	return OrderbookKeyPrefix + market
}

func OrderKey(orderID string) string {
	return OrderKeyPrefix + orderID
}

// IntakePipeline 订单入账流水线：规范化 -> 同批写索引和明细 -> 提交。
// 索引写入和明细写入走同一个 Batch，要么同时可见要么都不可见。
type IntakePipeline struct {
	store store.Store
}

func NewIntakePipeline(s store.Store) *IntakePipeline {
	return &IntakePipeline{store: s}
}

// Intake 处理一条入站消息，成功返回生成的 orderID。
// 提交失败返回 store.ErrStoreUnavailable 且无任何可见副作用，
// 由调用方通过不确认消息触发重投递。
func (p *IntakePipeline) Intake(ctx context.Context, raw []byte, price float64) (string, error) {
	rec := Normalize(raw, price)

	batch := p.store.BeginBatch()
	batch.ZAdd(OrderbookKey(rec.Market), rec.OrderID, rec.Score)
	batch.HSet(OrderKey(rec.OrderID), rec.Fields())
	if err := batch.Commit(ctx); err != nil {
		return "", err
	}

	hlog.Infof("订单已入账, order_id=%s, market=%s, score=%v", rec.OrderID, rec.Market, rec.Score)
	return rec.OrderID, nil
}
