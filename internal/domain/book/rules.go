package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// 约束表
// 每种输入类型对应一张约束表,由validator.Validate统一执行并聚合所有失败字段。
// 出版年份上限依赖当前时间(当前年份+10),所以需要传入now。

const (
	tagText   = "required,max=255"
	tagISBN   = "required," + validator.TagISBN
	tagOffset = "min=0"
)

var tagLimit = fmt.Sprintf("min=1,max=%d", MaxLimit)

// MinPublicationYear 出版年份下限
const MinPublicationYear = 1000

// MaxPublicationYear 出版年份上限:当前年份+10
func MaxPublicationYear(now time.Time) int {
	return now.Year() + 10
}

func tagYear(now time.Time) string {
	return fmt.Sprintf("min=%d,max=%d", MinPublicationYear, MaxPublicationYear(now))
}

// CreateRules 创建图书的约束表
func CreateRules(in CreateInput, now time.Time) []validator.Rule {
	return []validator.Rule{
		{Field: "title", Value: in.Title, Tag: tagText},
		{Field: "author", Value: in.Author, Tag: tagText},
		{Field: "publication_year", Value: in.PublicationYear, Tag: tagYear(now)},
		{Field: "isbn", Value: in.ISBN, Tag: tagISBN},
	}
}

// PatchRules 部分更新的约束表:与创建相同,但未提供的字段跳过
func PatchRules(p Patch, now time.Time) []validator.Rule {
	return []validator.Rule{
		{Field: "title", Value: deref(p.Title), Tag: tagText, Skip: p.Title == nil},
		{Field: "author", Value: deref(p.Author), Tag: tagText, Skip: p.Author == nil},
		{Field: "publication_year", Value: deref(p.PublicationYear), Tag: tagYear(now), Skip: p.PublicationYear == nil},
		{Field: "isbn", Value: deref(p.ISBN), Tag: tagISBN, Skip: p.ISBN == nil},
	}
}

// FilterRules 列表查询的约束表
func FilterRules(f Filter, now time.Time) []validator.Rule {
	return []validator.Rule{
		{Field: "title", Value: deref(f.Title), Tag: "max=255", Skip: f.Title == nil},
		{Field: "author", Value: deref(f.Author), Tag: "max=255", Skip: f.Author == nil},
		{Field: "publication_year", Value: deref(f.PublicationYear), Tag: tagYear(now), Skip: f.PublicationYear == nil},
		{Field: "limit", Value: deref(f.Limit), Tag: tagLimit, Skip: f.Limit == nil},
		{Field: "offset", Value: deref(f.Offset), Tag: tagOffset, Skip: f.Offset == nil},
	}
}

// ValidateCreate 校验创建输入
func ValidateCreate(in CreateInput, now time.Time) error {
	return validator.Validate(CreateRules(in, now)...)
}

// ValidatePatch 校验部分更新输入(空patch在这里不算错误,由仓储判定)
func ValidatePatch(p Patch, now time.Time) error {
	return validator.Validate(PatchRules(p, now)...)
}

// ValidateFilter 校验列表查询条件
func ValidateFilter(f Filter, now time.Time) error {
	return validator.Validate(FilterRules(f, now)...)
}

// NormalizeISBN 校验位x转为大写,其余字符原样保留
func NormalizeISBN(isbn string) string {
	return strings.ToUpper(isbn)
}

// NormalizeSearchTerm 去掉首尾空白,空关键词返回ErrEmptySearchTerm
func NormalizeSearchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrEmptySearchTerm
	}
	return term, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
