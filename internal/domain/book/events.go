package book

import (
	"context"
	"time"
)

// EventType 图书变更事件类型,同时作为消息的routing key
type EventType string

const (
	EventBookCreated EventType = "book.created"
	EventBookUpdated EventType = "book.updated"
	EventBookDeleted EventType = "book.deleted"
)

// Event 图书变更事件
// 只在写入成功之后发布,删除事件不携带ISBN
type Event struct {
	Type       EventType `json:"type"`
	BookID     int64     `json:"book_id"`
	ISBN       string    `json:"isbn,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 事件发布接口
// 发布失败不影响已经完成的写入,由实现方记录日志
type EventPublisher interface {
	Publish(ctx context.Context, e Event)
}

// NopPublisher 不发布任何事件(消息队列未启用时使用)
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
