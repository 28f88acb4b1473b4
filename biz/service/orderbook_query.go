package service

import (
	"context"

	"cex-intake/biz/model"
	"cex-intake/biz/store"
)

// BookService 订单簿只读查询
type BookService struct {
	store store.Store
}

func NewBookService(s store.Store) *BookService {
	return &BookService{store: s}
}

// Range 返回 market 订单簿里价格落在 [min,max] 的 orderID，按价格升序。
// 存储层故障时网关降级为空结果，这里不会看到错误。
func (s *BookService) Range(ctx context.Context, market string, min, max float64) []string {
	return s.store.ZRangeByScore(ctx, OrderbookKey(market), min, max)
}

// GetOrder 读取订单明细，不存在时 ok 为 false
func (s *BookService) GetOrder(ctx context.Context, orderID string) (model.OrderRecord, bool, error) {
	fields, err := s.store.HGetAll(ctx, OrderKey(orderID))
	if err != nil {
		return model.OrderRecord{}, false, err
	}
	if len(fields) == 0 {
		return model.OrderRecord{}, false, nil
	}
	return model.RecordFromFields(fields), true, nil
}
