package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持按书名、作者模糊匹配,按出版年份精确匹配
// 2. 分页使用limit/offset,默认值(10/0)由领域服务在校验之后补齐
// 3. 不查询总记录数,Total是本页返回的条数
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO
// 指针为nil表示调用方没有传该参数
type ListBooksRequest struct {
	Title           *string
	Author          *string
	PublicationYear *int
	Limit           *int
	Offset          *int
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List   []BookDTO
	Limit  int
	Offset int
	Total  int
}

// Execute 执行列表查询用例
// 步骤:
// 1. 请求DTO → 领域查询条件
// 2. 领域服务校验并补齐分页默认值
// 3. 转换为DTO,分页信息取实际生效的limit/offset
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	filter := book.Filter{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	books, effective, err := uc.bookService.ListBooks(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := toBookDTOs(books)
	return &ListBooksResponse{
		List:   list,
		Limit:  *effective.Limit,
		Offset: *effective.Offset,
		Total:  len(list),
	}, nil
}
