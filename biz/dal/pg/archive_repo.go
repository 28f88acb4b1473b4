package pg

import (
	"context"
	"fmt"
	"strings"

	"cex-intake/biz/model"
)

// BatchInsertArchives 原生多值 INSERT 批量写入归档表，订单重复投递时按主键忽略
func BatchInsertArchives(ctx context.Context, records []model.OrderArchive) error {
	if GetPool() == nil || len(records) == 0 {
		return nil
	}
	query := "INSERT INTO order_archive (order_id, user_id, market, side, price, amount, status, order_type, source, client_order_id, created_at, updated_at) VALUES "
	args := make([]interface{}, 0, len(records)*12)
	valueStrings := make([]string, 0, len(records))
	for i, r := range records {
		base := i * 12
		placeholders := make([]string, 12)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		args = append(args,
			r.OrderID,
			r.UserID,
			r.Market,
			r.Side,
			r.Price,
			r.Amount,
			r.Status,
			r.OrderType,
			r.Source,
			r.ClientOrderID,
			r.CreatedAt,
			r.UpdatedAt,
		)
	}
	query += strings.Join(valueStrings, ",") + " ON CONFLICT (order_id) DO NOTHING"
	_, err := GetPool().Exec(ctx, query, args...)
	return err
}

// ListArchives 查询归档订单
func ListArchives(userID, market string, limit int) ([]model.OrderArchive, error) {
	var records []model.OrderArchive
	db := GormDB.Model(&model.OrderArchive{})
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	if market != "" {
		db = db.Where("market = ?", market)
	}
	err := db.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}
