package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例(物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
	now         func() time.Time
}

func NewDeleteBookUseCase(bookService book.Service, events book.EventPublisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, events: events, now: time.Now}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id int64) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	uc.events.Publish(ctx, book.Event{
		Type:       book.EventBookDeleted,
		BookID:     id,
		OccurredAt: uc.now(),
	})
	return nil
}
