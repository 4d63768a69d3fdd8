package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

func ptr[T any](v T) *T { return &v }

const selectBooks = "SELECT id, title, author, publication_year, isbn, created_at, updated_at FROM books WHERE 1=1"

func TestBuildFindAll(t *testing.T) {
	cases := []struct {
		name     string
		filter   book.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "无条件",
			filter:   book.Filter{},
			wantSQL:  selectBooks + " ORDER BY created_at DESC",
			wantArgs: nil,
		},
		{
			name:     "只有年份",
			filter:   book.Filter{PublicationYear: ptr(2020)},
			wantSQL:  selectBooks + " AND publication_year = $1 ORDER BY created_at DESC",
			wantArgs: []any{2020},
		},
		{
			name:     "作者和分页",
			filter:   book.Filter{Author: ptr("smith"), Limit: ptr(10), Offset: ptr(0)},
			wantSQL:  selectBooks + " AND author ILIKE $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			wantArgs: []any{"%smith%", 10, 0},
		},
		{
			name: "全部条件按固定顺序编号",
			filter: book.Filter{
				PublicationYear: ptr(1999),
				Author:          ptr("knuth"),
				Title:           ptr("art"),
				Limit:           ptr(5),
				Offset:          ptr(20),
			},
			wantSQL: selectBooks +
				" AND title ILIKE $1 AND author ILIKE $2 AND publication_year = $3" +
				" ORDER BY created_at DESC LIMIT $4 OFFSET $5",
			wantArgs: []any{"%art%", "%knuth%", 1999, 5, 20},
		},
		{
			name:     "只有offset",
			filter:   book.Filter{Offset: ptr(30)},
			wantSQL:  selectBooks + " ORDER BY created_at DESC OFFSET $1",
			wantArgs: []any{30},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args := buildFindAll(tc.filter)
			assert.Equal(t, tc.wantSQL, sql)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildFindAll_EscapesWildcards(t *testing.T) {
	_, args := buildFindAll(book.Filter{Title: ptr(`100%_a\b`)})
	assert.Equal(t, []any{`%100\%\_a\\b%`}, args)
}

func TestBuildFindAll_InjectionStaysInArgs(t *testing.T) {
	evil := "'; DROP TABLE books; --"
	sql, args := buildFindAll(book.Filter{Title: ptr(evil)})

	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, []any{"%" + evil + "%"}, args)
}

func TestBuildUpdate(t *testing.T) {
	t.Run("空patch", func(t *testing.T) {
		_, _, ok := buildUpdate(1, book.Patch{})
		assert.False(t, ok)
	})

	t.Run("单个字段", func(t *testing.T) {
		sql, args, ok := buildUpdate(42, book.Patch{PublicationYear: ptr(2021)})
		assert.True(t, ok)
		assert.Equal(t,
			"UPDATE books SET publication_year = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING "+bookColumns,
			sql)
		assert.Equal(t, []any{2021, int64(42)}, args)
	})

	t.Run("全部字段按固定顺序", func(t *testing.T) {
		sql, args, ok := buildUpdate(7, book.Patch{
			ISBN:            ptr("9780306406157"),
			Title:           ptr("New"),
			PublicationYear: ptr(2001),
			Author:          ptr("Someone"),
		})
		assert.True(t, ok)
		assert.Equal(t,
			"UPDATE books SET title = $1, author = $2, publication_year = $3, isbn = $4, "+
				"updated_at = CURRENT_TIMESTAMP WHERE id = $5 RETURNING "+bookColumns,
			sql)
		assert.Equal(t, []any{"New", "Someone", 2001, "9780306406157", int64(7)}, args)
	})
}
