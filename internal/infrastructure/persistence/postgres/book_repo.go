package postgres

import (
	"context"
	"math"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// bookRow 查询结果行
// 设计说明:
// 1. 这是infrastructure层的数据模型,通过gorm的column tag完成列映射
// 2. domain/book/entity.go是领域实体,不依赖gorm
type bookRow struct {
	ID              int64     `gorm:"column:id"`
	Title           string    `gorm:"column:title"`
	Author          string    `gorm:"column:author"`
	PublicationYear int       `gorm:"column:publication_year"`
	ISBN            string    `gorm:"column:isbn"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

type countRow struct {
	Count int64 `gorm:"column:count"`
}

type yearCountRow struct {
	PublicationYear int   `gorm:"column:publication_year"`
	Count           int64 `gorm:"column:count"`
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(r *bookRow) *book.Book {
	return &book.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		ISBN:            r.ISBN,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toBookEntities(rows []bookRow) []*book.Book {
	books := make([]*book.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books
}

// bookRepository 图书仓储实现(PostgreSQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 所有SQL使用$n位置参数,调用方的值不会拼接进SQL
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, in book.CreateInput) (*book.Book, error) {
	stmt := `INSERT INTO books (title, author, publication_year, isbn)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookColumns

	var rows []bookRow
	if _, err := r.db.Execute(ctx, &rows, stmt, in.Title, in.Author, in.PublicationYear, in.ISBN); err != nil {
		return nil, r.wrapError(err, "创建图书失败")
	}
	if len(rows) == 0 {
		return nil, r.wrapError(errNoRowReturned, "创建图书失败")
	}

	metrics.IncBookMutation("create")
	return toBookEntity(&rows[0]), nil
}

// FindByID 根据ID查找图书
// books.id是INTEGER,超出int32范围的ID不可能存在,直接返回不存在(pgx也无法编码这样的参数)
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	if id > math.MaxInt32 {
		return nil, book.ErrBookNotFound
	}

	stmt := "SELECT " + bookColumns + " FROM books WHERE id = $1"

	var rows []bookRow
	if _, err := r.db.Execute(ctx, &rows, stmt, id); err != nil {
		return nil, r.wrapError(err, "查询图书失败")
	}
	if len(rows) == 0 {
		return nil, book.ErrBookNotFound
	}

	return toBookEntity(&rows[0]), nil
}

// FindAll 条件查询
func (r *bookRepository) FindAll(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	stmt, args := buildFindAll(filter)

	var rows []bookRow
	if _, err := r.db.Execute(ctx, &rows, stmt, args...); err != nil {
		return nil, r.wrapError(err, "查询图书列表失败")
	}

	return toBookEntities(rows), nil
}

// Update 部分更新
// 注意:存在性检查和UPDATE不在同一事务中,两步之间被删除时返回ErrBookNotFound
func (r *bookRepository) Update(ctx context.Context, id int64, patch book.Patch) (*book.Book, error) {
	// 1. 确认图书存在(不存在时原样返回ErrBookNotFound)
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	// 2. 拼接SET子句
	stmt, args, ok := buildUpdate(id, patch)
	if !ok {
		return nil, book.ErrNoFieldsToUpdate
	}

	// 3. 执行更新
	var rows []bookRow
	if _, err := r.db.Execute(ctx, &rows, stmt, args...); err != nil {
		return nil, r.wrapError(err, "更新图书失败")
	}
	if len(rows) == 0 {
		return nil, book.ErrBookNotFound
	}

	metrics.IncBookMutation("update")
	return toBookEntity(&rows[0]), nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := r.db.Execute(ctx, nil, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return r.wrapError(err, "删除图书失败")
	}
	if n == 0 {
		return book.ErrBookNotFound
	}

	metrics.IncBookMutation("delete")
	return nil
}

// CountByYear 调用存储函数count_books_by_year
// 函数参数是INTEGER,超出int32范围的年份不会有图书
func (r *bookRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	if year > math.MaxInt32 || year < math.MinInt32 {
		return 0, nil
	}

	var rows []countRow
	if _, err := r.db.Execute(ctx, &rows, "SELECT count_books_by_year($1) AS count", year); err != nil {
		return 0, r.wrapError(err, "统计图书数量失败")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

// CountsByYear 按出版年份分组统计
func (r *bookRepository) CountsByYear(ctx context.Context) ([]book.YearCount, error) {
	stmt := `SELECT publication_year, COUNT(*) AS count
		FROM books
		GROUP BY publication_year
		ORDER BY publication_year DESC`

	var rows []yearCountRow
	if _, err := r.db.Execute(ctx, &rows, stmt); err != nil {
		return nil, r.wrapError(err, "按年份统计图书失败")
	}

	counts := make([]book.YearCount, len(rows))
	for i, row := range rows {
		counts[i] = book.YearCount{PublicationYear: row.PublicationYear, Count: row.Count}
	}
	return counts, nil
}

// SearchByTitle 书名全文检索,按相关度排序
func (r *bookRepository) SearchByTitle(ctx context.Context, term string) ([]*book.Book, error) {
	if term == "" {
		return nil, book.ErrEmptySearchTerm
	}

	stmt := "SELECT " + bookColumns + ` FROM books
		WHERE to_tsvector('english', title) @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title), plainto_tsquery('english', $1)) DESC, created_at DESC`

	var rows []bookRow
	if _, err := r.db.Execute(ctx, &rows, stmt, term); err != nil {
		return nil, r.wrapError(err, "搜索图书失败")
	}

	return toBookEntities(rows), nil
}
