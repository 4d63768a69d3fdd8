// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP指标：请求总数、耗时分布、处理中的请求数（由中间件记录）
//   - 数据库指标：语句耗时、失败次数、获取连接超时次数（由postgres.DB记录）
//   - 业务指标：图书的创建、更新、删除次数（由仓储在写入成功后记录），变更事件发布结果
//
// # 使用示例
//
//	// 1. 初始化Metrics（可重复调用）
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 记录指标
//	start := time.Now()
//	rows, err := db.Execute(ctx, &dest, stmt, args...)
//	metrics.ObserveDBQuery("select", time.Since(start), err)
//
// # 命名规范
//
//  1. Counter 以 `_total` 结尾
//  2. Histogram 以单位结尾（`_seconds`）
//  3. 标签只使用有限取值（method、路由模板、operation），不要用图书ID
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// once 防止重复注册到默认Registry
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 数据库指标

	// DBQueryDuration SQL语句耗时（Histogram）
	// 标签：operation（select/insert/update/delete/other）
	DBQueryDuration *prometheus.HistogramVec

	// DBQueryErrorsTotal SQL语句失败总数（Counter）
	DBQueryErrorsTotal *prometheus.CounterVec

	// DBAcquireTimeoutsTotal 获取连接超时总数（Counter）
	// 持续增长说明连接池太小或存在慢查询
	DBAcquireTimeoutsTotal prometheus.Counter

	// DBBreakerTripsTotal 数据库熔断器打开次数（Counter）
	DBBreakerTripsTotal prometheus.Counter

	// 业务指标

	// BookMutationsTotal 图书变更总数（Counter）
	// 标签：action（create/update/delete）
	BookMutationsTotal *prometheus.CounterVec

	// BookEventsPublishedTotal 图书变更事件发布总数（Counter）
	// 标签：type（book.created等）、result（ok/error）
	BookEventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 使用promauto.New*自动注册到默认Registry，重复调用无副作用
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		DBQueryDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "db_query_duration_seconds",
				Help: "SQL语句耗时（秒）",
				// 单条语句通常在毫秒级，2s对应默认的获取连接超时
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 2},
			},
			[]string{"operation"},
		)

		DBQueryErrorsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "SQL语句失败总数",
			},
			[]string{"operation"},
		)

		DBAcquireTimeoutsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "db_acquire_timeouts_total",
				Help: "获取数据库连接超时总数",
			},
		)

		DBBreakerTripsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "db_breaker_trips_total",
				Help: "数据库熔断器打开次数",
			},
		)

		BookMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_mutations_total",
				Help: "图书变更总数",
			},
			[]string{"action"},
		)

		BookEventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_events_published_total",
				Help: "图书变更事件发布总数",
			},
			[]string{"type", "result"},
		)
	})
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}).Inc()
	HTTPRequestDuration.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Observe(elapsed.Seconds())
}

// ObserveDBQuery 记录一次SQL执行，err不为nil时同时计入失败数
func ObserveDBQuery(operation string, elapsed time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		DBQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// IncBookMutation 递增图书变更计数
func IncBookMutation(action string) {
	BookMutationsTotal.WithLabelValues(action).Inc()
}

// IncBookEvent 记录一次事件发布，err不为nil时result=error
func IncBookEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BookEventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}
