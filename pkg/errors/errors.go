package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，Code/100 即HTTP状态码
// 2. Message是用户友好的提示信息
// 3. Details是字段级别的校验失败明细（仅校验错误使用）
// 4. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误在被Wrap之后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 错误码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 {
		return 500
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCause 基于预定义错误复制一个携带内部原因的新错误
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Err:     err,
	}
}

// WithDetails 基于预定义错误复制一个携带字段明细的新错误
func (e *AppError) WithDetails(details []FieldError) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Err:     e.Err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码 = HTTP状态码 * 100 + 序号
// - 4xxxx: 客户端错误（参数错误、资源不存在、冲突）
// - 5xxxx: 服务端错误（数据库异常、连接池耗尽）

const (
	// 参数错误（40000-40099）
	ErrCodeValidation      = 40001 // 字段校验失败
	ErrCodeInvalidArgument = 40002 // 参数非法
	ErrCodeNoFieldsUpdate  = 40003 // 没有需要更新的字段

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40401 // 图书不存在

	// 冲突（40900-40999）
	ErrCodeISBNDuplicate = 40901 // ISBN已存在

	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误

	// 服务不可用（50300-50399）
	ErrCodeConnectionTimeout = 50301 // 获取数据库连接超时
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrValidation      = New(ErrCodeValidation, "参数校验失败")
	ErrInvalidArgument = New(ErrCodeInvalidArgument, "参数非法")
	ErrNoFieldsUpdate  = New(ErrCodeNoFieldsUpdate, "没有需要更新的字段")

	ErrNotFound     = New(ErrCodeNotFound, "资源不存在")
	ErrBookNotFound = New(ErrCodeBookNotFound, "图书不存在")

	ErrISBNDuplicate = New(ErrCodeISBNDuplicate, "ISBN号已存在")

	ErrInternal          = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError     = New(ErrCodeDatabaseError, "数据库错误")
	ErrConnectionTimeout = New(ErrCodeConnectionTimeout, "数据库繁忙，请稍后重试")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// Validation 构造携带字段明细的校验错误
func Validation(details ...FieldError) *AppError {
	return ErrValidation.WithDetails(details)
}

// InvalidArgument 构造自定义提示的参数非法错误
func InvalidArgument(message string) *AppError {
	return New(ErrCodeInvalidArgument, message)
}
