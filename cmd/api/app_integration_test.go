//go:build integration

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	ErrorCode  int             `json:"errorCode"`
	Data       json.RawMessage `json:"data"`
}

// startApp 启动PostgreSQL容器,通过wire装配完整应用
func startApp(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker不可用,跳过集成测试")
	}
	_ = provider.Close()

	ctr, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("books_app"),
		tcpostgres.WithUsername("books"),
		tcpostgres.WithPassword("books_app_password"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("启动PostgreSQL容器失败: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("清理容器失败: %v", err)
		}
	})

	url, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			URL:                url,
			SSLMode:            "disable",
			MaxOpenConns:       5,
			MaxIdleConns:       2,
			IdleTimeout:        30 * time.Second,
			AcquireTimeout:     2 * time.Second,
			StatementTimeout:   5 * time.Second,
			BreakerThreshold:   5,
			BreakerOpenTimeout: 10 * time.Second,
			ConnectRetries:     5,
			RetryBackoff:       500 * time.Millisecond,
			AutoMigrate:        true,
		},
	}
	log, _ := logtest.NewNullLogger()

	engine, cleanup, err := InitializeApp(cfg, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, body string) (int, apiResponse) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestApp_CreateThenGet(t *testing.T) {
	srv := startApp(t)

	// 1. 创建
	status, created := call(t, http.MethodPost, srv.URL+"/books",
		`{"title":"The Go Programming Language","author":"Alan Donovan","publication_year":2015,"isbn":"9780134190440"}`)
	require.Equal(t, http.StatusCreated, status)

	var b struct {
		ID              int64     `json:"id"`
		Title           string    `json:"title"`
		PublicationYear int       `json:"publication_year"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &b))
	assert.Positive(t, b.ID)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	// 2. 按ID查询,返回与创建时相同的记录
	status, found := call(t, http.MethodGet, srv.URL+"/books/"+strconv.FormatInt(b.ID, 10), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, string(created.Data), string(found.Data))

	// 3. 重复ISBN
	status, dup := call(t, http.MethodPost, srv.URL+"/books",
		`{"title":"Copy","author":"Someone","publication_year":2015,"isbn":"9780134190440"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 40901, dup.ErrorCode)

	// 4. 不存在的ID,包括超出INTEGER范围的ID
	for _, id := range []string{"999999", "3000000000"} {
		status, missing := call(t, http.MethodGet, srv.URL+"/books/"+id, "")
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, 40401, missing.ErrorCode, id)
	}

	// 5. 统计
	status, count := call(t, http.MethodGet, srv.URL+"/books/stats/count/2015", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"year":2015,"count":1}`, string(count.Data))

	// 6. 删除后查不到
	status, _ = call(t, http.MethodDelete, srv.URL+"/books/"+strconv.FormatInt(b.ID, 10), "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, http.MethodGet, srv.URL+"/books/"+strconv.FormatInt(b.ID, 10), "")
	assert.Equal(t, http.StatusNotFound, status)

	t.Log("✅ 创建→查询→删除流程通过")
}

