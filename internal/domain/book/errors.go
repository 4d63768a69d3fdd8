package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrISBNDuplicate ISBN已存在(数据库唯一约束冲突)
	ErrISBNDuplicate = apperrors.ErrISBNDuplicate

	// ErrNoFieldsToUpdate 部分更新没有提供任何字段
	ErrNoFieldsToUpdate = apperrors.ErrNoFieldsUpdate

	// ErrEmptySearchTerm 搜索关键词为空
	ErrEmptySearchTerm = apperrors.InvalidArgument("搜索关键词不能为空")

	// ErrInvalidID 图书ID必须是正整数
	ErrInvalidID = apperrors.InvalidArgument("图书ID必须是正整数")
)
