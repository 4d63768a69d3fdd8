package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 实现方负责把数据库错误翻译为领域错误(ErrBookNotFound、ErrISBNDuplicate等)
type Repository interface {
	// Create 创建图书,返回包含ID和时间戳的完整记录
	Create(ctx context.Context, input CreateInput) (*Book, error)

	// FindByID 根据ID查找图书,不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id int64) (*Book, error)

	// FindAll 按条件查询图书,按创建时间倒序
	// 分页默认值由调用方补齐,Limit/Offset为nil时不限制
	FindAll(ctx context.Context, filter Filter) ([]*Book, error)

	// Update 部分更新,先校验图书存在,再只修改patch中提供的字段
	Update(ctx context.Context, id int64, patch Patch) (*Book, error)

	// Delete 删除图书,先校验图书存在
	Delete(ctx context.Context, id int64) error

	// CountByYear 统计某一年出版的图书数量(调用数据库函数count_books_by_year)
	CountByYear(ctx context.Context, year int) (int64, error)

	// CountsByYear 按出版年份分组统计,年份倒序
	CountsByYear(ctx context.Context) ([]YearCount, error)

	// SearchByTitle 书名全文检索,按相关度排序
	SearchByTitle(ctx context.Context, term string) ([]*Book, error)
}
