package handler

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	kafkaDal "cex-intake/biz/dal/kafka"
	"cex-intake/biz/dal/pg"
	"cex-intake/biz/model"
	"cex-intake/biz/service"
	"cex-intake/biz/store"
	"cex-intake/conf"
	"cex-intake/util"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/segmentio/kafka-go"
)

var book *service.BookService

// Init 注入存储网关，须在 dal.Init 之后调用
func Init(s store.Store) {
	book = service.NewBookService(s)
}

// SubmitOrder RESTful 下单接口：校验后发布到 Kafka，由消费侧入账
func SubmitOrder(ctx context.Context, c *app.RequestContext) {
	var req model.OrderMsg
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Price <= 0 || req.Amount <= 0 || req.Market == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "missing or invalid required fields"})
		return
	}
	req.Market = strings.ToUpper(req.Market)
	req.Side = strings.ToLower(req.Side)
	if req.Side != model.SideBuy && req.Side != model.SideSell {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "side must be buy or sell"})
		return
	}
	if req.ClientOrderID == "" {
		id, err := util.GenerateClientOrderID(req.Market)
		if err != nil {
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
			return
		}
		req.ClientOrderID = id
	}

	msgBytes, err := json.Marshal(req)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	writer := kafkaDal.GetWriter(conf.GetConf().Kafka.Topic)
	// 以 market 作为分区 key，保证同一市场的订单在分区内有序
	if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(req.Market), Value: msgBytes}); err != nil {
		hlog.Errorf("下单消息写入 Kafka 失败, market=%s, err=%v", req.Market, err)
		c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": "failed to enqueue order"})
		return
	}
	c.JSON(consts.StatusCreated, map[string]interface{}{
		"client_order_id": req.ClientOrderID,
		"status":          "accepted",
	})
}

// GetOrderBook 查询订单簿价格区间内的 orderID 列表
func GetOrderBook(ctx context.Context, c *app.RequestContext) {
	market := c.Param("market")
	if market == "" {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{"error": "market is required"})
		return
	}
	min := 0.0
	max := math.MaxFloat64
	if v := string(c.Query("min")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			min = f
		}
	}
	if v := string(c.Query("max")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			max = f
		}
	}
	orderIDs := book.Range(ctx, strings.ToUpper(market), min, max)
	c.JSON(consts.StatusOK, map[string]interface{}{
		"market":    strings.ToUpper(market),
		"order_ids": orderIDs,
	})
}

// GetOrder 查询单个订单明细
func GetOrder(ctx context.Context, c *app.RequestContext) {
	orderID := c.Param("order_id")
	rec, ok, err := book.GetOrder(ctx, orderID)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(consts.StatusNotFound, map[string]interface{}{"error": "order not found"})
		return
	}
	c.JSON(consts.StatusOK, rec.Fields())
}

// ListArchivedOrders 查询归档订单列表
func ListArchivedOrders(ctx context.Context, c *app.RequestContext) {
	if pg.GormDB == nil {
		c.JSON(consts.StatusServiceUnavailable, map[string]interface{}{"error": "archive is disabled"})
		return
	}
	userID := string(c.Query("user_id"))
	market := string(c.Query("market"))
	limit := 100
	if v := string(c.Query("limit")); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	records, err := pg.ListArchives(userID, strings.ToUpper(market), limit)
	if err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	c.JSON(consts.StatusOK, records)
}
