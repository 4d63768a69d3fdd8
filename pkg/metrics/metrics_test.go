package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不应panic（重复注册会panic）
	InitMetrics()

	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil || HTTPRequestsInProgress == nil {
		t.Fatal("HTTP指标未初始化")
	}
	if DBQueryDuration == nil || DBQueryErrorsTotal == nil || DBAcquireTimeoutsTotal == nil {
		t.Fatal("数据库指标未初始化")
	}
	if BookMutationsTotal == nil {
		t.Fatal("业务指标未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestObserveHTTPRequest 测试HTTP请求计数
func TestObserveHTTPRequest(t *testing.T) {
	InitMetrics()

	labels := prometheus.Labels{"method": "GET", "path": "/books/:id", "status": "200"}
	before := testutil.ToFloat64(HTTPRequestsTotal.With(labels))

	ObserveHTTPRequest("GET", "/books/:id", 200, 15*time.Millisecond)
	ObserveHTTPRequest("GET", "/books/:id", 200, 20*time.Millisecond)
	ObserveHTTPRequest("GET", "/books/:id", 404, 5*time.Millisecond)

	got := testutil.ToFloat64(HTTPRequestsTotal.With(labels)) - before
	if got != 2 {
		t.Errorf("HTTP请求计数错误: expected=2, got=%f", got)
	}

	t.Log("✅ HTTP请求计数测试通过")
}

// TestObserveDBQuery 测试数据库指标
func TestObserveDBQuery(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(DBQueryErrorsTotal.WithLabelValues("insert"))

	ObserveDBQuery("insert", time.Millisecond, nil)
	ObserveDBQuery("insert", time.Millisecond, errors.New("duplicate key"))

	got := testutil.ToFloat64(DBQueryErrorsTotal.WithLabelValues("insert")) - before
	if got != 1 {
		t.Errorf("失败计数错误: expected=1, got=%f", got)
	}

	if n := testutil.CollectAndCount(DBQueryDuration, "db_query_duration_seconds"); n == 0 {
		t.Error("耗时直方图没有任何样本")
	}

	t.Log("✅ 数据库指标测试通过")
}

// TestGauge 测试处理中请求数
func TestGauge(t *testing.T) {
	InitMetrics()

	base := testutil.ToFloat64(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	if got := testutil.ToFloat64(HTTPRequestsInProgress) - base; got != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", got)
	}
}

// TestBookMutation 测试业务计数
func TestBookMutation(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(BookMutationsTotal.WithLabelValues("create"))
	IncBookMutation("create")
	IncCounter(DBAcquireTimeoutsTotal)

	if got := testutil.ToFloat64(BookMutationsTotal.WithLabelValues("create")) - before; got != 1 {
		t.Errorf("图书创建计数错误: expected=1, got=%f", got)
	}
}

// TestIncBookEvent 测试事件发布计数
func TestIncBookEvent(t *testing.T) {
	InitMetrics()

	okBefore := testutil.ToFloat64(BookEventsPublishedTotal.WithLabelValues("book.created", "ok"))
	errBefore := testutil.ToFloat64(BookEventsPublishedTotal.WithLabelValues("book.created", "error"))

	IncBookEvent("book.created", nil)
	IncBookEvent("book.created", errors.New("channel closed"))

	if got := testutil.ToFloat64(BookEventsPublishedTotal.WithLabelValues("book.created", "ok")) - okBefore; got != 1 {
		t.Errorf("发布成功计数错误: expected=1, got=%f", got)
	}
	if got := testutil.ToFloat64(BookEventsPublishedTotal.WithLabelValues("book.created", "error")) - errBefore; got != 1 {
		t.Errorf("发布失败计数错误: expected=1, got=%f", got)
	}
}
