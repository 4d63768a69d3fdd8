// @title        图书目录服务 API
// @version      1.0
// @description  图书目录的增删改查、全文检索与按年份统计
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// main 主程序入口
// 启动顺序:配置 → 日志 → 链路追踪 → 依赖注入(连接数据库、建表) → HTTP服务
// 收到SIGINT/SIGTERM后先停止接收请求,等待处理中的请求完成,再关闭连接池
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"port":     cfg.Server.Port,
		"mode":     cfg.Server.Mode,
		"database": cfg.Database.Target(),
	}).Info("✓ 配置加载成功")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("服务异常退出")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("关闭链路追踪失败")
			}
		}()
		log.WithField("endpoint", cfg.Tracing.Endpoint).Info("✓ 链路追踪已启用")
	}

	// 4. 依赖注入(wire生成)
	engine, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	var h http.Handler = engine
	if cfg.Tracing.Enabled {
		h = otelhttp.NewHandler(engine, cfg.Tracing.ServiceName)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. 启动服务
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("🚀 服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// 6. 优雅关闭
	log.Info("收到退出信号,开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	log.Info("HTTP服务已关闭")
	return nil
}
