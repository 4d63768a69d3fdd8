package book

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookDTO 图书输出DTO
// 应用层与HTTP层共用,时间字段保留到微秒,客户端可以据此判断更新先后
type BookDTO struct {
	ID              int64     `json:"id" example:"1"`
	Title           string    `json:"title" example:"The Go Programming Language"`
	Author          string    `json:"author" example:"Alan Donovan"`
	PublicationYear int       `json:"publication_year" example:"2015"`
	ISBN            string    `json:"isbn" example:"9780134190440"`
	CreatedAt       time.Time `json:"created_at" example:"2026-10-18T10:30:00Z"`
	UpdatedAt       time.Time `json:"updated_at" example:"2026-10-18T10:30:00Z"`
}

// YearCountDTO 按年份分组统计的一项
type YearCountDTO struct {
	PublicationYear int   `json:"publication_year" example:"2015"`
	Count           int64 `json:"count" example:"3"`
}

// YearTotalDTO 单个年份的图书数量
type YearTotalDTO struct {
	Year  int   `json:"year" example:"2015"`
	Count int64 `json:"count" example:"3"`
}

func toBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// toBookDTOs 空结果返回空切片,JSON输出为[]而不是null
func toBookDTOs(books []*book.Book) []BookDTO {
	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = *toBookDTO(b)
	}
	return list
}
