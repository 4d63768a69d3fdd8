package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// slowRequestThreshold 超过该耗时的请求在访问日志中标记slow
const slowRequestThreshold = 3 * time.Second

// pinger 健康检查依赖的最小接口(*postgres.DB)
type pinger interface {
	Ping(ctx context.Context) error
}

// provideGinEngine 创建并配置Gin引擎
// 1. 中间件顺序:Recovery → 访问日志 → 指标
// 2. /ping 检查连接池,/metrics 暴露Prometheus指标
// 3. release模式下不注册Swagger
// 4. 未匹配的路由返回404统一错误结构
func provideGinEngine(cfg *config.Config, log *logrus.Logger, db pinger, bookHandler *handler.BookHandler) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(log, slowRequestThreshold),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			response.Error(c, log, apperrors.ErrConnectionTimeout.WithCause(err))
			return
		}
		response.Success(c, http.StatusOK, "pong", gin.H{"status": "healthy"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档: http://localhost:3000/swagger/index.html
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	bookHandler.Register(r)

	// 未匹配的路由同样返回统一错误结构
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, log, apperrors.ErrNotFound)
	})

	return r
}
