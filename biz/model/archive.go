package model

import (
	"gorm.io/gorm"
)

// OrderArchive 订单归档模型（GORM），由归档消费组异步写入，
// 与 redis 里的实时订单簿互不依赖
type OrderArchive struct {
	OrderID       string         `gorm:"primaryKey;column:order_id" json:"order_id"`
	UserID        string         `gorm:"column:user_id" json:"user_id"`
	Market        string         `gorm:"column:market" json:"market"`
	Side          string         `gorm:"column:side" json:"side"`
	Price         string         `gorm:"column:price" json:"price"`
	Amount        string         `gorm:"column:amount" json:"amount"`
	Status        string         `gorm:"column:status" json:"status"`
	OrderType     string         `gorm:"column:order_type" json:"order_type"`
	Source        string         `gorm:"column:source" json:"source"`
	ClientOrderID string         `gorm:"column:client_order_id" json:"client_order_id"`
	CreatedAt     string         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     string         `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OrderArchive) TableName() string {
	return "order_archive"
}
