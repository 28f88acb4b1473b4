package util

import (
	"strconv"
	"sync"

	"github.com/sony/sonyflake"
)

var (
	sonyFlake *sonyflake.Sonyflake
	once      sync.Once
)

// InitSonyFlake 初始化 Snowflake 实例
func InitSonyFlake() {
	once.Do(func() {
		sonyFlake = sonyflake.NewSonyflake(sonyflake.Settings{})
	})
}

// NextID 生成唯一 ID
func NextID() (uint64, error) {
	if sonyFlake == nil {
		InitSonyFlake()
	}
	return sonyFlake.NextID()
}

// GenerateClientOrderID 生成 market_<snowflake> 形式的客户端订单号，
// 客户端未自带幂等标识时由下单接口补上
func GenerateClientOrderID(market string) (string, error) {
	id, err := NextID()
	if err != nil {
		return "", err
	}
	return market + "_" + strconv.FormatUint(id, 10), nil
}
