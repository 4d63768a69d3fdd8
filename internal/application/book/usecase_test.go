package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

var (
	ts     = time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)
	sample = &book.Book{
		ID: 1, Title: "X", Author: "Y", PublicationYear: 2020, ISBN: "1234567890123",
		CreatedAt: ts, UpdatedAt: ts,
	}
)

func ptr[T any](v T) *T { return &v }

func TestCreateBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("转换为DTO", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateBook", ctx, book.CreateInput{Title: "X", Author: "Y", PublicationYear: 2020, ISBN: "1234567890123"}).
			Return(sample, nil)
		events := &recordingPublisher{}

		got, err := NewCreateBookUseCase(svc, events).Execute(ctx, CreateBookRequest{
			Title: "X", Author: "Y", PublicationYear: 2020, ISBN: "1234567890123",
		})
		require.NoError(t, err)
		assert.Equal(t, &BookDTO{
			ID: 1, Title: "X", Author: "Y", PublicationYear: 2020, ISBN: "1234567890123",
			CreatedAt: ts, UpdatedAt: ts,
		}, got)
		svc.AssertExpectations(t)
		assert.Equal(t, []book.Event{
			{Type: book.EventBookCreated, BookID: 1, ISBN: "1234567890123", OccurredAt: ts},
		}, events.events)
		t.Log("✅ 创建成功")
	})

	t.Run("透传领域错误", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateBook", ctx, book.CreateInput{ISBN: "1234567890123"}).Return(nil, book.ErrISBNDuplicate)

		events := &recordingPublisher{}

		_, err := NewCreateBookUseCase(svc, events).Execute(ctx, CreateBookRequest{ISBN: "1234567890123"})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
		assert.Empty(t, events.events, "失败时不发布事件")
	})
}

func TestGetBookUseCase(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	svc.On("GetBook", ctx, int64(1)).Return(sample, nil)
	svc.On("GetBook", ctx, int64(2)).Return(nil, book.ErrBookNotFound)

	uc := NewGetBookUseCase(svc)

	got, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)

	_, err = uc.Execute(ctx, 2)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestListBooksUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("分页信息使用补齐默认值后的条件", func(t *testing.T) {
		svc := new(mockService)
		in := book.Filter{Author: ptr("smith")}
		effective := book.Filter{Author: ptr("smith"), Limit: ptr(10), Offset: ptr(0)}
		svc.On("ListBooks", ctx, in).Return([]*book.Book{sample, sample}, effective, nil)

		got, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Author: ptr("smith")})
		require.NoError(t, err)
		assert.Len(t, got.List, 2)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 0, got.Offset)
		assert.Equal(t, 2, got.Total)
	})

	t.Run("空结果返回空切片", func(t *testing.T) {
		svc := new(mockService)
		effective := book.Filter{Limit: ptr(5), Offset: ptr(20)}
		svc.On("ListBooks", ctx, book.Filter{Limit: ptr(5), Offset: ptr(20)}).Return([]*book.Book{}, effective, nil)

		got, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Limit: ptr(5), Offset: ptr(20)})
		require.NoError(t, err)
		assert.NotNil(t, got.List)
		assert.Empty(t, got.List)
		assert.Equal(t, 20, got.Offset)
	})
}

func TestUpdateBookUseCase(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	updated := *sample
	updated.Title = "New"
	svc.On("UpdateBook", ctx, int64(1), book.Patch{Title: ptr("New")}).Return(&updated, nil)

	events := &recordingPublisher{}

	got, err := NewUpdateBookUseCase(svc, events).Execute(ctx, UpdateBookRequest{ID: 1, Title: ptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Y", got.Author)
	require.Len(t, events.events, 1)
	assert.Equal(t, book.EventBookUpdated, events.events[0].Type)
}

func TestDeleteBookUseCase(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	svc.On("DeleteBook", ctx, int64(1)).Return(nil)
	svc.On("DeleteBook", ctx, int64(9)).Return(book.ErrBookNotFound)

	events := &recordingPublisher{}

	uc := NewDeleteBookUseCase(svc, events)
	uc.now = func() time.Time { return ts }
	assert.NoError(t, uc.Execute(ctx, 1))
	assert.ErrorIs(t, uc.Execute(ctx, 9), book.ErrBookNotFound)
	assert.Equal(t, []book.Event{
		{Type: book.EventBookDeleted, BookID: 1, OccurredAt: ts},
	}, events.events)
}

func TestSearchBooksUseCase(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	svc.On("SearchBooks", ctx, "go").Return([]*book.Book{sample}, nil)
	svc.On("SearchBooks", ctx, "  ").Return(nil, book.ErrEmptySearchTerm)

	uc := NewSearchBooksUseCase(svc)

	got, err := uc.Execute(ctx, "go")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.Execute(ctx, "  ")
	assert.ErrorIs(t, err, book.ErrEmptySearchTerm)
}

func TestBookStatsUseCase(t *testing.T) {
	ctx := context.Background()
	svc := new(mockService)
	svc.On("CountByYear", ctx, 2020).Return(int64(3), nil)
	svc.On("CountsByYear", ctx).Return([]book.YearCount{
		{PublicationYear: 2021, Count: 1},
		{PublicationYear: 2020, Count: 3},
	}, nil)

	uc := NewBookStatsUseCase(svc)

	total, err := uc.CountByYear(ctx, 2020)
	require.NoError(t, err)
	assert.Equal(t, &YearTotalDTO{Year: 2020, Count: 3}, total)

	counts, err := uc.CountsByYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, []YearCountDTO{
		{PublicationYear: 2021, Count: 1},
		{PublicationYear: 2020, Count: 3},
	}, counts)
}
