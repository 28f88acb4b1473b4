package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	kafkaDal "cex-intake/biz/dal/kafka"
	"cex-intake/conf"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/segmentio/kafka-go"
)

// pollTimeout 单次拉取的有界等待，保证循环对取消信号保持响应
const pollTimeout = 500 * time.Millisecond

// sessionBackoff 消费会话中断后重建 reader 前的等待
const sessionBackoff = time.Second

// MessageSource 消息流抽象，offset 由消费方显式提交
type MessageSource interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
	Close() error
}

type readerSource struct {
	r *kafka.Reader
}

func (s *readerSource) Fetch(ctx context.Context) (kafka.Message, error) {
	return s.r.FetchMessage(ctx)
}

func (s *readerSource) Commit(ctx context.Context, msg kafka.Message) error {
	return s.r.CommitMessages(ctx, msg)
}

func (s *readerSource) Close() error {
	return s.r.Close()
}

// Consumer 单线程顺序消费：一条消息完整入账并确认后才拉下一条，
// 同一分区内的可见写入顺序与投递顺序一致。
type Consumer struct {
	src          MessageSource
	pipeline     *IntakePipeline
	defaultPrice float64
}

func NewConsumer(src MessageSource, pipeline *IntakePipeline, defaultPrice float64) *Consumer {
	return &Consumer{src: src, pipeline: pipeline, defaultPrice: defaultPrice}
}

// StartOrderConsumer 在新 goroutine 里跑消费循环。
// 入账失败会中断当前会话并重建 reader，消费组从最近提交的 offset
// 重新投递，失败消息由此获得重试。
func StartOrderConsumer(ctx context.Context, pipeline *IntakePipeline) {
	go func() {
		for ctx.Err() == nil {
			src := &readerSource{r: kafkaDal.NewReader(conf.GetConf().Kafka.GroupID)}
			c := NewConsumer(src, pipeline, conf.GetConf().Intake.DefaultPrice)
			if err := c.Run(ctx); err != nil {
				hlog.Errorf("消费会话中断, 重建 reader 等待重投递: %v", err)
			}
			_ = src.Close()
			select {
			case <-ctx.Done():
				return
			case <-time.After(sessionBackoff):
			}
		}
	}()
}

// Run 消费循环。ctx 取消后在下一个轮询边界退出并返回 nil；
// 入账失败时不确认消息并立即返回错误，调用方重建会话触发重投递。
// 重投递会生成新的 orderID，产生重复记录而非报错，属已知行为。
func (c *Consumer) Run(ctx context.Context) error {
	hlog.Infof("订单消费循环启动, poll_timeout=%v", pollTimeout)
	for {
		if ctx.Err() != nil {
			hlog.Infof("订单消费循环退出: %v", ctx.Err())
			return nil
		}

		fetchCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		msg, err := c.src.Fetch(fetchCtx)
		cancel()
		if err != nil {
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				// 轮询超时，无消息
				continue
			case errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
				hlog.Infof("订单消费循环退出: %v", err)
				return nil
			default:
				hlog.Errorf("拉取消息失败: %v", err)
				continue
			}
		}

		price := PeekPrice(msg.Value, c.defaultPrice)
		orderID, err := c.pipeline.Intake(ctx, msg.Value, price)
		if err != nil {
			hlog.Errorf("订单入账失败, 不确认消息, partition=%d, offset=%d, err=%v",
				msg.Partition, msg.Offset, err)
			return fmt.Errorf("intake partition=%d offset=%d: %w", msg.Partition, msg.Offset, err)
		}

		if err := c.src.Commit(ctx, msg); err != nil {
			// offset 未提交，消息会被重投递成一条新记录
			hlog.Errorf("提交 offset 失败, partition=%d, offset=%d, err=%v", msg.Partition, msg.Offset, err)
			return fmt.Errorf("commit partition=%d offset=%d: %w", msg.Partition, msg.Offset, err)
		}
		hlog.Infof("消息已确认, order_id=%s, partition=%d, offset=%d", orderID, msg.Partition, msg.Offset)
	}
}
