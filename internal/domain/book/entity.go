package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由数据库自增生成,创建后不可变
// 2. ISBN作为业务唯一标识(数据库层UNIQUE约束保证,不在应用层查重)
// 3. CreatedAt只在插入时设置,UpdatedAt在每次成功更新时刷新(数据库触发器维护)
type Book struct {
	ID              int64
	Title           string // 书名
	Author          string // 作者
	PublicationYear int    // 出版年份
	ISBN            string // ISBN号(10位或13位)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateInput 创建图书的输入(所有字段必填)
type CreateInput struct {
	Title           string
	Author          string
	PublicationYear int
	ISBN            string
}

// Patch 部分更新
// nil表示调用方没有提供该字段,保持原值不变
type Patch struct {
	Title           *string
	Author          *string
	PublicationYear *int
	ISBN            *string
}

// IsEmpty 是否没有任何需要更新的字段
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.PublicationYear == nil && p.ISBN == nil
}

// 分页参数
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter 列表查询条件
// 所有字段可选,nil表示不参与过滤
type Filter struct {
	Title           *string // 书名模糊匹配(不区分大小写)
	Author          *string // 作者模糊匹配(不区分大小写)
	PublicationYear *int    // 出版年份精确匹配
	Limit           *int
	Offset          *int
}

// WithDefaults 补齐分页默认值(limit=10, offset=0)
func (f Filter) WithDefaults() Filter {
	if f.Limit == nil {
		limit := DefaultLimit
		f.Limit = &limit
	}
	if f.Offset == nil {
		offset := 0
		f.Offset = &offset
	}
	return f
}

// YearCount 按出版年份统计的图书数量
type YearCount struct {
	PublicationYear int
	Count           int64
}
