package redis

import (
	"context"
	"fmt"

	"cex-intake/conf"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Init() {
	// print conf
	fmt.Printf("conf: %+v\n", conf.GetConf())
	Client = redis.NewClient(&redis.Options{
		Addr:     conf.GetConf().Redis.Address,
		Username: conf.GetConf().Redis.Username,
		Password: conf.GetConf().Redis.Password,
		DB:       conf.GetConf().Redis.DB,
	})
	if err := Client.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}
}

// Close 进程退出时释放连接
func Close() {
	if Client != nil {
		_ = Client.Close()
	}
}
