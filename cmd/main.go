package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cex-intake/biz/dal"
	kafkaDal "cex-intake/biz/dal/kafka"
	redisDal "cex-intake/biz/dal/redis"
	"cex-intake/biz/handler"
	"cex-intake/biz/service"
	"cex-intake/conf"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/hertz-contrib/gzip"
	"github.com/hertz-contrib/logger/accesslog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"github.com/hertz-contrib/pprof"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	_ = godotenv.Load()
	initLog()

	// 存储连不上直接 panic，消费循环启动前必须拿到可用连接
	dal.Init()
	defer redisDal.Close()
	defer kafkaDal.CloseAllWriters()

	st := redisDal.DefaultStore()
	handler.Init(st)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := service.NewIntakePipeline(st)
	service.StartOrderConsumer(ctx, pipeline)
	if conf.GetConf().Intake.EnableArchive {
		service.StartArchiver(ctx)
	}

	h := newServer()
	registerRoutes(h)
	h.Spin()
}

func initLog() {
	logger := hertzzap.NewLogger(hertzzap.WithZapOptions(zap.AddCaller()))
	hlog.SetLogger(logger)
	hlog.SetLevel(conf.LogLevel())

	hertzConf := conf.GetConf().Hertz
	if hertzConf.LogFileName != "" {
		hlog.SetOutput(&lumberjack.Logger{
			Filename:   hertzConf.LogFileName,
			MaxSize:    hertzConf.LogMaxSize,
			MaxBackups: hertzConf.LogMaxBackups,
			MaxAge:     hertzConf.LogMaxAge,
		})
	} else {
		hlog.SetOutput(os.Stdout)
	}
}

func newServer() *server.Hertz {
	hertzConf := conf.GetConf().Hertz
	h := server.New(server.WithHostPorts(hertzConf.Address))

	h.Use(cors.Default())
	if hertzConf.EnableGzip {
		h.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	if hertzConf.EnableAccessLog {
		h.Use(accesslog.New())
	}
	if hertzConf.EnablePprof {
		pprof.Register(h)
	}
	return h
}

func registerRoutes(h *server.Hertz) {
	api := h.Group("/api")
	api.POST("/order", handler.SubmitOrder)
	api.GET("/orderbook/:market", handler.GetOrderBook)
	api.GET("/order/:order_id", handler.GetOrder)
	api.GET("/orders/archive", handler.ListArchivedOrders)
}
