package book

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockRepository 基于testify/mock的仓储替身
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, input CreateInput) (*Book, error) {
	args := m.Called(ctx, input)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) FindAll(ctx context.Context, filter Filter) ([]*Book, error) {
	args := m.Called(ctx, filter)
	books, _ := args.Get(0).([]*Book)
	return books, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, patch Patch) (*Book, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CountsByYear(ctx context.Context) ([]YearCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]YearCount)
	return counts, args.Error(1)
}

func (m *mockRepository) SearchByTitle(ctx context.Context, term string) ([]*Book, error) {
	args := m.Called(ctx, term)
	books, _ := args.Get(0).([]*Book)
	return books, args.Error(1)
}
