package dto

import (
	"net/url"
	"strconv"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// CreateBookRequest HTTP创建请求
// 字段规则(长度、年份范围、ISBN格式)由领域层的约束表统一校验,这里不使用binding tag
type CreateBookRequest struct {
	Title           string `json:"title" example:"The Go Programming Language"`
	Author          string `json:"author" example:"Alan Donovan"`
	PublicationYear int    `json:"publication_year" example:"2015"`
	ISBN            string `json:"isbn" example:"9780134190440"`
}

// ToUseCase 转换为用例请求
func (r CreateBookRequest) ToUseCase() appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		ISBN:            r.ISBN,
	}
}

// UpdateBookRequest HTTP部分更新请求
// 请求体中没有出现的字段为nil,不会被更新
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty" example:"The Go Programming Language"`
	Author          *string `json:"author,omitempty" example:"Alan Donovan"`
	PublicationYear *int    `json:"publication_year,omitempty" example:"2016"`
	ISBN            *string `json:"isbn,omitempty" example:"9780134190440"`
}

// ToUseCase 转换为用例请求
func (r UpdateBookRequest) ToUseCase(id int64) appbook.UpdateBookRequest {
	return appbook.UpdateBookRequest{
		ID:              id,
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		ISBN:            r.ISBN,
	}
}

// BookResponse HTTP图书响应
type BookResponse = appbook.BookDTO

// YearCountResponse 按年份分组统计的一项
type YearCountResponse = appbook.YearCountDTO

// YearTotalResponse 单个年份的统计结果
type YearTotalResponse = appbook.YearTotalDTO

// ListBooksQuery 列表查询参数
// 所有参数可选,数值参数无法解析为整数时按字段报告
//
//	GET /books?title=go&author=smith&publication_year=2015&limit=10&offset=0
type ListBooksQuery struct {
	Title           *string `form:"title" example:"go"`
	Author          *string `form:"author" example:"smith"`
	PublicationYear *int    `form:"publication_year" example:"2015"`
	Limit           *int    `form:"limit" example:"10"`
	Offset          *int    `form:"offset" example:"0"`
}

// ParseListBooksQuery 从URL参数解析列表查询条件
// 步骤:
// 1. 字符串参数原样保留(出现即生效,包括空字符串)
// 2. 整数参数逐个解析,失败的字段全部收集后一次返回
func ParseListBooksQuery(values url.Values) (ListBooksQuery, error) {
	var q ListBooksQuery
	var details []apperrors.FieldError

	q.Title = stringParam(values, "title")
	q.Author = stringParam(values, "author")

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"publication_year", &q.PublicationYear},
		{"limit", &q.Limit},
		{"offset", &q.Offset},
	} {
		v, ok, err := intParam(values, p.name)
		if err != nil {
			details = append(details, apperrors.FieldError{Field: p.name, Message: "必须是整数"})
			continue
		}
		if ok {
			*p.dst = &v
		}
	}

	if len(details) > 0 {
		return q, apperrors.Validation(details...)
	}
	return q, nil
}

// ToUseCase 转换为用例请求
func (q ListBooksQuery) ToUseCase() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		Title:           q.Title,
		Author:          q.Author,
		PublicationYear: q.PublicationYear,
		Limit:           q.Limit,
		Offset:          q.Offset,
	}
}

func stringParam(values url.Values, name string) *string {
	if _, ok := values[name]; !ok {
		return nil
	}
	v := values.Get(name)
	return &v
}

func intParam(values url.Values, name string) (int, bool, error) {
	if _, ok := values[name]; !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(values.Get(name))
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
