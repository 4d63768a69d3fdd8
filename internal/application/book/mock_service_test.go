package book

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// mockService 基于testify/mock的领域服务替身
type mockService struct {
	mock.Mock
}

func (m *mockService) CreateBook(ctx context.Context, in book.CreateInput) (*book.Book, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockService) GetBook(ctx context.Context, id int64) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockService) ListBooks(ctx context.Context, filter book.Filter) ([]*book.Book, book.Filter, error) {
	args := m.Called(ctx, filter)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Get(1).(book.Filter), args.Error(2)
}

func (m *mockService) UpdateBook(ctx context.Context, id int64, patch book.Patch) (*book.Book, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockService) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) SearchBooks(ctx context.Context, term string) ([]*book.Book, error) {
	args := m.Called(ctx, term)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *mockService) CountByYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockService) CountsByYear(ctx context.Context) ([]book.YearCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]book.YearCount)
	return counts, args.Error(1)
}

// recordingPublisher 记录发布过的事件
type recordingPublisher struct {
	events []book.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e book.Event) {
	p.events = append(p.events, e)
}
