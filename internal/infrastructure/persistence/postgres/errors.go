package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// PostgreSQL错误码
// 参考: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateUniqueViolation = "23505"
	isbnConstraint          = "books_isbn_key"
)

// isDuplicateISBN 判断是否为ISBN唯一约束冲突
// 优先检查pgx的结构化错误(SQLSTATE + 约束名),
// 其次兼容gorm翻译后的ErrDuplicatedKey
func isDuplicateISBN(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != sqlStateUniqueViolation {
			return false
		}
		// books表上只有isbn一个唯一约束,约束名缺失时也视为ISBN冲突
		return pgErr.ConstraintName == "" || pgErr.ConstraintName == isbnConstraint ||
			strings.Contains(pgErr.ConstraintName, "isbn")
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// wrapError 把数据库错误翻译为领域错误
// 1. 已经是AppError(如获取连接超时)原样返回
// 2. ISBN唯一约束冲突 → book.ErrISBNDuplicate
// 3. 其他错误统一包装为数据库错误,原始错误只写日志不返回给客户端
func (r *bookRepository) wrapError(err error, action string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	err = r.db.translate(err)
	if isDuplicateISBN(err) {
		return book.ErrISBNDuplicate.WithCause(err)
	}
	return apperrors.ErrDatabaseError.WithCause(fmt.Errorf("%s: %w", action, err))
}

// translate 交给gorm方言做一次错误翻译(pgconn.PgError → gorm.ErrDuplicatedKey等),
// 翻译失败时保留原始错误
func (db *DB) translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}
	if t, ok := db.gorm.Dialector.(gorm.ErrorTranslator); ok {
		if translated := t.Translate(err); translated != nil {
			return translated
		}
	}
	return err
}

// errNoRowReturned INSERT ... RETURNING 没有返回行,正常情况下不会发生
var errNoRowReturned = errors.New("no row returned")
