package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestParseListBooksQuery(t *testing.T) {
	t.Run("未传参数全部为nil", func(t *testing.T) {
		q, err := ParseListBooksQuery(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, ListBooksQuery{}, q)
	})

	t.Run("解析全部参数", func(t *testing.T) {
		values, _ := url.ParseQuery("title=go&author=smith&publication_year=2015&limit=20&offset=40")
		q, err := ParseListBooksQuery(values)
		require.NoError(t, err)

		req := q.ToUseCase()
		assert.Equal(t, "go", *req.Title)
		assert.Equal(t, "smith", *req.Author)
		assert.Equal(t, 2015, *req.PublicationYear)
		assert.Equal(t, 20, *req.Limit)
		assert.Equal(t, 40, *req.Offset)
	})

	t.Run("空字符串视为已提供", func(t *testing.T) {
		values, _ := url.ParseQuery("title=")
		q, err := ParseListBooksQuery(values)
		require.NoError(t, err)
		require.NotNil(t, q.Title)
		assert.Equal(t, "", *q.Title)
	})

	t.Run("非整数逐个报告", func(t *testing.T) {
		values, _ := url.ParseQuery("publication_year=abc&limit=1.5&offset=10")
		q, err := ParseListBooksQuery(values)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, []apperrors.FieldError{
			{Field: "publication_year", Message: "必须是整数"},
			{Field: "limit", Message: "必须是整数"},
		}, appErr.Details)
		// 合法的参数仍然被解析
		assert.Equal(t, 10, *q.Offset)
	})
}

func TestUpdateBookRequest_ToUseCase(t *testing.T) {
	title := "New"
	req := UpdateBookRequest{Title: &title}.ToUseCase(7)

	assert.Equal(t, int64(7), req.ID)
	assert.Equal(t, "New", *req.Title)
	assert.Nil(t, req.Author)
	assert.Nil(t, req.PublicationYear)
	assert.Nil(t, req.ISBN)
}
