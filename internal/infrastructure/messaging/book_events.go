// Package messaging 把图书变更事件发布到消息队列
package messaging

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// publisher mq.Publisher 中用到的方法
type publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// BookEventPublisher 图书变更事件发布者
// 事件类型即routing key,消费方可以用 book.* 订阅全部事件
type BookEventPublisher struct {
	pub publisher
	log *logrus.Logger
}

// NewBookEventPublisher 根据配置创建事件发布者
// 未启用时返回book.NopPublisher;启用后连接失败直接返回错误,不带着坏连接启动
func NewBookEventPublisher(cfg *config.Config, log *logrus.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("消息队列未启用,不发布图书变更事件")
		return book.NopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"exchange": p.Exchange(),
		"type":     cfg.MQ.ExchangeType,
	}).Info("✅ 图书变更事件发布已启用")

	metrics.InitMetrics()
	cleanup := func() {
		if err := p.Close(); err != nil {
			log.WithError(err).Warn("关闭消息队列连接失败")
		}
	}
	return &BookEventPublisher{pub: p, log: log}, cleanup, nil
}

// Publish 发布事件
// 写入已经成功,发布失败只记录日志和指标,不影响请求结果
func (p *BookEventPublisher) Publish(ctx context.Context, e book.Event) {
	err := p.pub.Publish(ctx, string(e.Type), e)
	metrics.IncBookEvent(string(e.Type), err)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"event":   e.Type,
			"book_id": e.BookID,
		}).Warn("图书变更事件发布失败")
	}
}
