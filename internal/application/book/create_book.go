package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO,与HTTP层解耦
// 3. 字段校验和ISBN唯一性都在领域服务/数据库完成,这里只做转换
// 4. 创建成功后发布book.created事件
type CreateBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, events book.EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, events: events}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title           string
	Author          string
	PublicationYear int
	ISBN            string
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.CreateBook(ctx, book.CreateInput{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		ISBN:            req.ISBN,
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, book.Event{
		Type:       book.EventBookCreated,
		BookID:     b.ID,
		ISBN:       b.ISBN,
		OccurredAt: b.CreatedAt,
	})
	return toBookDTO(b), nil
}
