package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Is(t *testing.T) {
	t.Run("携带内部原因后仍可匹配预定义错误", func(t *testing.T) {
		err := ErrDatabaseError.WithCause(errors.New("connection reset"))
		assert.True(t, errors.Is(err, ErrDatabaseError))
		assert.False(t, errors.Is(err, ErrInternal))
	})

	t.Run("被fmt包装后仍可匹配", func(t *testing.T) {
		err := fmt.Errorf("repo: %w", ErrBookNotFound)
		assert.True(t, errors.Is(err, ErrBookNotFound))
	})

	t.Run("内部原因可以被errors.Is找到", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(cause, "操作失败")
		assert.True(t, errors.Is(err, cause))
	})
}

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{ErrValidation, 400},
		{ErrInvalidArgument, 400},
		{ErrNoFieldsUpdate, 400},
		{ErrBookNotFound, 404},
		{ErrISBNDuplicate, 409},
		{ErrInternal, 500},
		{ErrDatabaseError, 500},
		{ErrConnectionTimeout, 503},
		{New(123, "非法错误码"), 500},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), tc.err.Message)
	}
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(errors.New("raw"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.EqualError(t, appErr.Err, "raw")

	same := GetAppError(fmt.Errorf("wrapped: %w", ErrISBNDuplicate))
	assert.Same(t, ErrISBNDuplicate, same)
}

func TestValidation(t *testing.T) {
	err := Validation(
		FieldError{Field: "title", Message: "不能为空"},
		FieldError{Field: "isbn", Message: "格式不正确"},
	)

	assert.Equal(t, ErrCodeValidation, err.Code)
	assert.Len(t, err.Details, 2)
	// 预定义错误不能被修改
	assert.Empty(t, ErrValidation.Details)
}
