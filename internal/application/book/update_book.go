package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// UpdateBookUseCase 部分更新用例
// 只有请求中出现的字段会被写入,其余字段保持原值
type UpdateBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
}

func NewUpdateBookUseCase(bookService book.Service, events book.EventPublisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, events: events}
}

// UpdateBookRequest 更新请求DTO,nil字段表示不更新
type UpdateBookRequest struct {
	ID              int64
	Title           *string
	Author          *string
	PublicationYear *int
	ISBN            *string
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, book.Patch{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		ISBN:            req.ISBN,
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, book.Event{
		Type:       book.EventBookUpdated,
		BookID:     b.ID,
		ISBN:       b.ISBN,
		OccurredAt: b.UpdatedAt,
	})
	return toBookDTO(b), nil
}
