package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// SearchBooksUseCase 书名全文检索用例
// 结果按相关度排序,不分页
type SearchBooksUseCase struct {
	bookService book.Service
}

func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, title string) ([]BookDTO, error) {
	books, err := uc.bookService.SearchBooks(ctx, title)
	if err != nil {
		return nil, err
	}
	return toBookDTOs(books), nil
}
