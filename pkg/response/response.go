package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. StatusCode与HTTP状态码一致，方便不看响应头的客户端判断
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination 列表接口的分页信息
// Total是本页返回的条数，不是表中的总记录数
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse 错误响应结构
// ErrorCode是业务错误码（如40401），Details仅校验失败时返回
type ErrorResponse struct {
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	ErrorCode  int                    `json:"errorCode"`
	Details    []apperrors.FieldError `json:"details,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// SuccessWithPage 列表成功响应
func SuccessWithPage(c *gin.Context, message string, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Pagination: &p,
	})
}

// NoContent 204，响应体为空
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	b, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, log, err)
//	    return
//	}
//
// 非AppError一律按系统内部错误处理，内部原因只写日志
func Error(c *gin.Context, log logrus.FieldLogger, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	if log != nil {
		entry := log.WithFields(logrus.Fields{
			"error_code": appErr.Code,
			"path":       c.FullPath(),
		})
		if id, ok := c.Get(RequestIDKey); ok {
			entry = entry.WithField("request_id", id)
		}
		if status >= http.StatusInternalServerError {
			entry.WithError(appErr.Err).Error(appErr.Message)
		} else {
			entry.Debug(appErr.Message)
		}
	}

	// 已写过响应头时不再覆盖
	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Message:    appErr.Message,
		ErrorCode:  appErr.Code,
		Details:    appErr.Details,
	})
}

// RequestIDKey gin上下文中请求ID的键，由中间件写入
const RequestIDKey = "request_id"
