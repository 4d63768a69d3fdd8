package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "postgres"

// DB 数据库连接池
// 设计说明:
// 1. 进程内唯一的连接池,由wire在启动时创建并注入到仓储,关闭函数作为cleanup返回
// 2. 所有SQL都经过Execute执行,调用方的值只能通过参数占位符传入
// 3. 获取连接有超时上限(acquireTimeout),连接池耗尽时快速失败而不是无限排队
// 4. 数据库不可用时由熔断器直接返回503,不再逐个请求等待超时
type DB struct {
	gorm             *gorm.DB
	sqlDB            *sql.DB
	log              *logrus.Logger
	breaker          *circuitbreaker.Breaker // nil表示关闭熔断
	acquireTimeout   time.Duration
	statementTimeout time.Duration
}

// NewDB 创建数据库连接池
// 步骤:
// 1. 按配置打开连接池(gorm + pgx)
// 2. Ping验证连接,失败按线性退避重试
// 3. 执行幂等的建表脚本(可通过database.auto_migrate关闭)
func NewDB(cfg *config.Config, log *logrus.Logger) (*DB, func(), error) {
	db, err := Open(context.Background(), pgdriver.Open(cfg.Database.DSN()), cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	log.WithField("target", cfg.Database.Target()).Info("✓ 数据库连接成功")
	return db, db.Close, nil
}

// Open 使用指定的dialector打开连接池
// 测试中可以传入 pgdriver.New(pgdriver.Config{Conn: sqlmockDB})
func Open(ctx context.Context, dialector gorm.Dialector, cfg config.DatabaseConfig, log *logrus.Logger) (*DB, error) {
	metrics.InitMetrics()

	// 1. 打开连接池
	// 关闭gorm自带的Ping,由下面的重试逻辑负责
	g, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 2. 配置连接池
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.IdleTimeout)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{
		gorm:             g,
		sqlDB:            sqlDB,
		log:              log,
		breaker:          newBreaker(cfg, log),
		acquireTimeout:   cfg.AcquireTimeout,
		statementTimeout: cfg.StatementTimeout,
	}

	// 3. 验证连接
	err = connectWithRetry(ctx, cfg.ConnectRetries, cfg.RetryBackoff, db.Ping, log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// newBreaker 按配置创建熔断器,状态变化写日志并计入指标
func newBreaker(cfg config.DatabaseConfig, log *logrus.Logger) *circuitbreaker.Breaker {
	if cfg.BreakerThreshold <= 0 {
		return nil
	}

	cb := circuitbreaker.New(tracerName, circuitbreaker.Config{
		FailureThreshold: uint32(cfg.BreakerThreshold),
		OpenTimeout:      cfg.BreakerOpenTimeout,
	})
	cb.OnStateChange(func(name string, from, to circuitbreaker.State) {
		entry := log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()})
		if to == circuitbreaker.StateOpen {
			metrics.IncCounter(metrics.DBBreakerTripsTotal)
			entry.Error("数据库熔断器打开")
			return
		}
		entry.Warn("数据库熔断器状态变化")
	})
	return cb
}

// unavailable 判断错误是否说明数据库不可用
// 只计入连接级失败:网络错误、建连失败、坏连接、连接被中途关闭、语句超时;
// PostgreSQL返回的SQL错误、参数编码错误、连接池排队超时、调用方取消都不计入
func unavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) || apperrors.IsAppError(err) || errors.Is(err, context.Canceled) {
		return false
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr), errors.As(err, &netErr):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	default:
		return errors.Is(err, context.DeadlineExceeded)
	}
}

// connectWithRetry 最多尝试attempts次,第n次失败后等待 n*backoff
func connectWithRetry(ctx context.Context, attempts int, backoff time.Duration, connect func(context.Context) error, log *logrus.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = connect(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := backoff * time.Duration(attempt)
		log.WithError(err).WithFields(logrus.Fields{
			"attempt":  attempt,
			"retry_in": wait,
		}).Warn("数据库连接失败,稍后重试")

		select {
		case <-ctx.Done():
			return fmt.Errorf("数据库连接被取消: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("数据库连接失败(已尝试%d次): %w", attempts, err)
}

// Ping 验证连接池可用(健康检查使用)
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()
	return db.sqlDB.PingContext(ctx)
}

// Close 关闭连接池,等待借出的连接归还
func (db *DB) Close() {
	if err := db.sqlDB.Close(); err != nil {
		db.log.WithError(err).Error("关闭数据库连接池失败")
		return
	}
	db.log.Info("数据库连接池已关闭")
}

// Execute 执行一条参数化SQL
//
// dest为nil时执行语句并返回影响行数;
// 否则dest必须是指向结构体切片的指针,结果行通过gorm按列名映射,返回行数。
//
// 不使用gorm.Raw:全文检索的 @@ 运算符会被gorm当作命名参数解析。
func (db *DB) Execute(ctx context.Context, dest any, stmt string, args ...any) (int64, error) {
	op := operation(stmt)

	ctx, span := tracing.StartSpan(ctx, tracerName, "db.execute",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", op),
	)

	start := time.Now()
	n, err := db.guarded(ctx, dest, stmt, args)
	elapsed := time.Since(start)

	metrics.ObserveDBQuery(op, elapsed, err)
	tracing.EndSpan(span, err)

	// 只记录语句模板,不记录参数值
	entry := db.log.WithFields(logrus.Fields{
		"operation": op,
		"latency":   elapsed,
		"rows":      n,
		"statement": compact(stmt),
	})
	if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
		entry = entry.WithFields(logrus.Fields{
			"trace_id": traceID,
			"span_id":  tracing.ExtractSpanID(ctx),
		})
	}
	if err != nil {
		entry.WithError(err).Error("SQL执行失败")
		return n, err
	}
	entry.Debug("SQL执行完成")
	return n, nil
}

// guarded 校验dest后在熔断器保护下执行
func (db *DB) guarded(ctx context.Context, dest any, stmt string, args []any) (int64, error) {
	if dest != nil {
		v := reflect.ValueOf(dest)
		if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Slice {
			return 0, fmt.Errorf("dest必须是切片指针,实际为%T", dest)
		}
	}

	if db.breaker == nil {
		return db.execute(ctx, dest, stmt, args)
	}

	var n int64
	err := db.breaker.Execute(func() error {
		var err error
		n, err = db.execute(ctx, dest, stmt, args)
		return err
	}, unavailable)
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return 0, apperrors.ErrConnectionTimeout.WithCause(err)
	}
	return n, err
}

func (db *DB) execute(ctx context.Context, dest any, stmt string, args []any) (int64, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if db.statementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.statementTimeout)
		defer cancel()
	}

	if dest == nil {
		res, err := conn.ExecContext(ctx, stmt, args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	// gorm.ScanRows在切片模式下要求调用方已经调用过一次rows.Next()
	if rows.Next() {
		if err := db.gorm.ScanRows(rows, dest); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return int64(reflect.ValueOf(dest).Elem().Len()), nil
}

// acquire 从连接池借出一个连接,等待超过acquireTimeout返回ErrConnectionTimeout
func (db *DB) acquire(ctx context.Context) (*sql.Conn, error) {
	actx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()

	conn, err := db.sqlDB.Conn(actx)
	if err == nil {
		return conn, nil
	}

	// 调用方自己的ctx已结束(如客户端断开)时原样返回
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		metrics.IncCounter(metrics.DBAcquireTimeoutsTotal)
		return nil, apperrors.ErrConnectionTimeout.WithCause(err)
	}
	return nil, err
}

// operation 取语句的第一个关键字作为指标标签
func operation(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return "other"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}

// compact 把多行SQL压缩为一行,便于日志检索
func compact(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}
