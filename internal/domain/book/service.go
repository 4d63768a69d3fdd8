package book

import (
	"context"
	"time"
)

// Service 图书领域服务
// 设计说明:
// 1. 所有输入在调用仓储之前完成校验,校验失败的请求不会访问数据库
// 2. ISBN唯一性交给数据库约束,不做"先查后插"(并发下无法保证)
// 3. ISBN校验位x统一存为大写X,唯一约束不会因大小写失效
// 4. 当前时间通过now注入,出版年份上限(当前年份+10)可测试
type Service interface {
	// CreateBook 创建图书
	CreateBook(ctx context.Context, in CreateInput) (*Book, error)

	// GetBook 获取图书详情
	GetBook(ctx context.Context, id int64) (*Book, error)

	// ListBooks 条件查询,返回补齐默认值后的实际查询条件(用于分页信息)
	ListBooks(ctx context.Context, filter Filter) ([]*Book, Filter, error)

	// UpdateBook 部分更新
	UpdateBook(ctx context.Context, id int64, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id int64) error

	// SearchBooks 书名全文检索
	SearchBooks(ctx context.Context, term string) ([]*Book, error)

	// CountByYear 统计某年出版的图书数量
	CountByYear(ctx context.Context, year int) (int64, error)

	// CountsByYear 按年份分组统计
	CountsByYear(ctx context.Context) ([]YearCount, error)
}

// service 领域服务实现
type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建领域服务
func NewService(repo Repository) Service {
	return NewServiceWithClock(repo, time.Now)
}

// NewServiceWithClock 创建使用指定时钟的领域服务(测试用)
func NewServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}

func (s *service) CreateBook(ctx context.Context, in CreateInput) (*Book, error) {
	in.ISBN = NormalizeISBN(in.ISBN)
	if err := ValidateCreate(in, s.now()); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *service) GetBook(ctx context.Context, id int64) (*Book, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, filter Filter) ([]*Book, Filter, error) {
	if err := ValidateFilter(filter, s.now()); err != nil {
		return nil, filter, err
	}

	// 默认值在校验之后补齐,保证仓储拿到的一定是合法的分页参数
	filter = filter.WithDefaults()
	books, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, filter, err
	}
	return books, filter, nil
}

func (s *service) UpdateBook(ctx context.Context, id int64, patch Patch) (*Book, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if patch.ISBN != nil {
		isbn := NormalizeISBN(*patch.ISBN)
		patch.ISBN = &isbn
	}
	if err := ValidatePatch(patch, s.now()); err != nil {
		return nil, err
	}
	// 空patch由仓储在确认图书存在之后返回ErrNoFieldsToUpdate,
	// 保证不存在的图书始终返回404
	return s.repo.Update(ctx, id, patch)
}

func (s *service) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SearchBooks(ctx context.Context, term string) ([]*Book, error) {
	term, err := NormalizeSearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchByTitle(ctx, term)
}

func (s *service) CountByYear(ctx context.Context, year int) (int64, error) {
	return s.repo.CountByYear(ctx, year)
}

func (s *service) CountsByYear(ctx context.Context) ([]YearCount, error) {
	return s.repo.CountsByYear(ctx)
}
