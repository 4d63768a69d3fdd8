package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookStatsUseCase 出版年份统计用例
// 1. CountByYear 调用数据库函数count_books_by_year,没有图书时返回0
// 2. CountsByYear 返回每个年份的数量,按年份倒序
type BookStatsUseCase struct {
	bookService book.Service
}

// NewBookStatsUseCase 创建统计用例
func NewBookStatsUseCase(bookService book.Service) *BookStatsUseCase {
	return &BookStatsUseCase{bookService: bookService}
}

// CountByYear 单个年份的图书数量
func (uc *BookStatsUseCase) CountByYear(ctx context.Context, year int) (*YearTotalDTO, error) {
	count, err := uc.bookService.CountByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return &YearTotalDTO{Year: year, Count: count}, nil
}

// CountsByYear 全部年份的图书数量
func (uc *BookStatsUseCase) CountsByYear(ctx context.Context) ([]YearCountDTO, error) {
	counts, err := uc.bookService.CountsByYear(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]YearCountDTO, len(counts))
	for i, c := range counts {
		list[i] = YearCountDTO{PublicationYear: c.PublicationYear, Count: c.Count}
	}
	return list, nil
}
