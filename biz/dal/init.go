package dal

import (
	"cex-intake/biz/dal/kafka"
	"cex-intake/biz/dal/pg"
	"cex-intake/biz/dal/redis"
	"cex-intake/conf"
)

func Init() {
	redis.Init()
	kafka.Init()
	if conf.GetConf().Intake.EnableArchive {
		pg.Init()
	}
}
