package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkaDal "cex-intake/biz/dal/kafka"
	"cex-intake/biz/dal/pg"
	"cex-intake/biz/model"
	"cex-intake/conf"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/segmentio/kafka-go"
)

const (
	archiveBatchSize = 500
	archiveFlushWait = time.Second
)

// StartArchiver 启动 Postgres 归档消费组。
// 与入账消费组订阅同一 topic、互不影响；归档主键取 clientOrderID
// 或 topic-partition-offset，重复投递时 ON CONFLICT 幂等跳过。
func StartArchiver(ctx context.Context) {
	r := kafkaDal.NewReader(conf.GetConf().Kafka.ArchiveGroupID)
	go func() {
		defer func() { _ = r.Close() }()
		archiveWorker(ctx, r)
	}()
}

func archiveWorker(ctx context.Context, r *kafka.Reader) {
	hlog.Infof("归档消费循环启动, group_id=%s", conf.GetConf().Kafka.ArchiveGroupID)
	batch := make([]model.OrderArchive, 0, archiveBatchSize)
	msgs := make([]kafka.Message, 0, archiveBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := pg.BatchInsertArchives(ctx, batch); err != nil {
			hlog.Errorf("归档批量入库失败, 不确认批次, count=%d, err=%v", len(batch), err)
			batch = batch[:0]
			msgs = msgs[:0]
			return
		}
		if err := r.CommitMessages(ctx, msgs...); err != nil {
			hlog.Errorf("归档提交 offset 失败: %v", err)
		}
		hlog.Infof("归档批次已入库, count=%d", len(batch))
		batch = batch[:0]
		msgs = msgs[:0]
	}

	lastFlush := time.Now()
	for {
		if ctx.Err() != nil {
			flush()
			return
		}
		fetchCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		m, err := r.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				flush()
				return
			}
			if time.Since(lastFlush) >= archiveFlushWait {
				flush()
				lastFlush = time.Now()
			}
			continue
		}

		batch = append(batch, archiveFromMessage(m))
		msgs = append(msgs, m)
		if len(batch) >= archiveBatchSize || time.Since(lastFlush) >= archiveFlushWait {
			flush()
			lastFlush = time.Now()
		}
	}
}

// archiveFromMessage 归档行的主键必须在重投递下保持稳定
func archiveFromMessage(m kafka.Message) model.OrderArchive {
	var msg model.OrderMsg
	_ = json.Unmarshal(m.Value, &msg)

	orderID := msg.ClientOrderID
	if orderID == "" {
		orderID = fmt.Sprintf("%s-%d-%d", m.Topic, m.Partition, m.Offset)
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return model.OrderArchive{
		OrderID:       orderID,
		UserID:        msg.UserID,
		Market:        msg.Market,
		Side:          msg.Side,
		Price:         formatFloat(msg.Price),
		Amount:        formatFloat(msg.Amount),
		Status:        model.StatusPending,
		OrderType:     msg.OrderType,
		Source:        msg.Source,
		ClientOrderID: msg.ClientOrderID,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}
