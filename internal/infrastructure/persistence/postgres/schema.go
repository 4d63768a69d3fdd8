package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// schemaLockKey 多个实例同时启动时串行执行建表脚本
const schemaLockKey = 7301001

// schema 幂等的建表脚本,按顺序执行
// 注意:
// 1. 不使用gorm.AutoMigrate,全文索引、存储函数和触发器无法用模型tag表达
// 2. updated_at由触发器维护,即使绕过仓储直接UPDATE也会刷新
var schema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(255) NOT NULL,
		publication_year INTEGER NOT NULL,
		isbn VARCHAR(13) UNIQUE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	// 书名全文检索索引
	`CREATE INDEX IF NOT EXISTS idx_books_title ON books USING gin(to_tsvector('english', title))`,

	`CREATE INDEX IF NOT EXISTS idx_books_publication_year ON books(publication_year)`,

	// 按年份计数的存储函数
	`CREATE OR REPLACE FUNCTION count_books_by_year(target_year INTEGER)
	RETURNS INTEGER AS $$
	DECLARE
		book_count INTEGER;
	BEGIN
		SELECT COUNT(*) INTO book_count FROM books WHERE publication_year = target_year;
		RETURN book_count;
	END;
	$$ LANGUAGE plpgsql`,

	`CREATE OR REPLACE FUNCTION update_updated_at_column()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = CURRENT_TIMESTAMP;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS update_books_updated_at ON books`,

	`CREATE TRIGGER update_books_updated_at
	BEFORE UPDATE ON books
	FOR EACH ROW
	EXECUTE FUNCTION update_updated_at_column()`,
}

// Migrate 在一个事务中执行建表脚本
// 学习要点:
// 1. PostgreSQL的DDL是事务性的,任何一步失败整体回滚
// 2. pg_advisory_xact_lock在事务结束时自动释放
func (db *DB) Migrate(ctx context.Context) error {
	err := db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
			return fmt.Errorf("获取建表锁失败: %w", err)
		}
		for i, stmt := range schema {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("执行第%d条建表语句失败: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	db.log.WithField("statements", len(schema)).Info("✓ 表结构检查完成")
	return nil
}
