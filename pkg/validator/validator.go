// Package validator 基于约束表的通用校验器
//
// 每种输入类型声明一张约束表（[]Rule），由Validate统一执行，
// 所有失败字段被聚合为一个 ErrValidation，而不是遇到第一个错误就返回。
//
// 使用示例：
//
//	err := validator.Validate(
//	    validator.Rule{Field: "title", Value: in.Title, Tag: "required,max=255"},
//	    validator.Rule{Field: "isbn", Value: in.ISBN, Tag: "required,isbn_format"},
//	)
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// TagISBN ISBN格式校验标签：10位（末位可为X或x）或13位数字
const TagISBN = "isbn_format"

var isbnPattern = regexp.MustCompile(`^(?:[0-9]{9}[0-9Xx]|[0-9]{13})$`)

// Rule 约束表中的一条约束
type Rule struct {
	Field string // 对外暴露的字段名（JSON/Query名）
	Value any    // 待校验的值
	Tag   string // go-playground/validator 标签表达式
	Skip  bool   // 为true时跳过（用于部分更新中未提供的字段）
}

// Engine 包装 *validator.Validate 并注册业务自定义标签
type Engine struct {
	v *validator.Validate
}

// New 创建校验引擎
func New() *Engine {
	v := validator.New()
	// 注册失败只可能是标签名非法，属于编程错误
	if err := v.RegisterValidation(TagISBN, func(fl validator.FieldLevel) bool {
		return isbnPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Engine{v: v}
}

var defaultEngine = New()

// Validate 使用默认引擎执行约束表
func Validate(rules ...Rule) error {
	return defaultEngine.Validate(rules...)
}

// Validate 执行约束表，返回聚合后的校验错误
func (e *Engine) Validate(rules ...Rule) error {
	var details []apperrors.FieldError

	for _, r := range rules {
		if r.Skip {
			continue
		}

		err := e.v.Var(r.Value, r.Tag)
		if err == nil {
			continue
		}

		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			// 非 ValidationErrors 说明校验器本身出错
			return apperrors.Wrapf(err, "字段%s校验失败", r.Field)
		}
		for _, fe := range errs {
			details = append(details, apperrors.FieldError{
				Field:   r.Field,
				Message: message(fe),
			})
		}
	}

	if len(details) > 0 {
		return apperrors.Validation(details...)
	}
	return nil
}

// Failed 构造单字段的校验错误（如类型转换失败）
func Failed(field, msg string) error {
	return apperrors.Validation(apperrors.FieldError{Field: field, Message: msg})
}

// message 将校验标签翻译为用户可读的提示
func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "max":
		if isString {
			return fmt.Sprintf("长度不能超过%s个字符", fe.Param())
		}
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("长度不能少于%s个字符", fe.Param())
		}
		return fmt.Sprintf("不能小于%s", fe.Param())
	case TagISBN:
		return "ISBN格式不正确（应为10位或13位）"
	default:
		return strings.TrimSpace(fmt.Sprintf("不满足规则 %s %s", fe.Tag(), fe.Param()))
	}
}
