package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/archive"
	"github.com/shari-07/search-api/internal/cache"
	"github.com/shari-07/search-api/internal/config"
	"github.com/shari-07/search-api/internal/database"
	"github.com/shari-07/search-api/internal/geo"
	"github.com/shari-07/search-api/internal/link"
	"github.com/shari-07/search-api/internal/logger"
	"github.com/shari-07/search-api/internal/notify"
	"github.com/shari-07/search-api/internal/platform/alibaba"
	"github.com/shari-07/search-api/internal/platform/onebound"
	"github.com/shari-07/search-api/internal/platform/taobao"
	"github.com/shari-07/search-api/internal/platform/weidian"
	"github.com/shari-07/search-api/internal/product"
	"github.com/shari-07/search-api/internal/scheduler"
	"github.com/shari-07/search-api/internal/server"
	"github.com/shari-07/search-api/internal/server/handlers"
	"github.com/shari-07/search-api/internal/task"
	"github.com/shari-07/search-api/internal/tasks"
	"github.com/shari-07/search-api/internal/translate"
)

func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	zapLogger, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("application starting",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	// 初始化 Redis / MongoDB 连接，两者都是可选的
	dbs, err := database.New(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize databases", zap.Error(err))
	}

	// 两层缓存：Redis 持久层 + 进程内层
	productCache := cache.New(
		cache.NewRedis(dbs.Redis, zapLogger),
		cache.NewMemory(cfg.Cache.MaxEntries, zapLogger),
	)

	// 原始响应归档
	rawStore := archive.NewStore(dbs.MongoDB, zapLogger)

	// 平台客户端，密钥缺失的平台走万邦兜底
	var taobaoClient product.TaobaoClient
	if cfg.Taobao.AppKey != "" && cfg.Taobao.AppSecret != "" {
		taobaoClient = taobao.NewClient(cfg.Taobao, zapLogger)
	}

	var alibabaClient product.AlibabaClient
	if cfg.Alibaba.AppKey != "" && cfg.Alibaba.SecretKey != "" {
		alibabaClient = alibaba.NewClient(cfg.Alibaba, zapLogger)
	}

	var weidianClient product.WeidianClient = weidian.NewClient(cfg.Weidian, zapLogger)

	var oneboundClient product.OneBoundClient
	if cfg.OneBound.Key != "" && cfg.OneBound.Secret != "" {
		oneboundClient = onebound.NewClient(cfg.OneBound, zapLogger)
	}

	// 翻译后端
	var translator translate.Translator = translate.Noop{}
	if cfg.Translate.Enabled {
		awsTranslator, trErr := translate.NewAWS(context.Background(), cfg.Translate, zapLogger)
		if trErr != nil {
			zapLogger.Warn("translation backend unavailable, responses stay untranslated",
				zap.Error(trErr))
		} else {
			translator = awsTranslator
		}
	}

	// 商品编排服务
	products := product.NewService(product.Deps{
		Cache:      productCache,
		Taobao:     taobaoClient,
		Alibaba:    alibabaClient,
		Weidian:    weidianClient,
		OneBound:   oneboundClient,
		Archive:    rawStore,
		Translator: translator,
		ShortLinks: link.NewShortLinkResolver(0, zapLogger),
		ProxyBase:  cfg.Frontend.URL,
		CacheTTL:   cfg.Cache.ProductTTLDuration,
		Logger:     zapLogger,
	})

	// 请求日志 webhook 与 IP 归属地
	var notifier *notify.Discord
	if cfg.Discord.Enabled {
		notifier = notify.NewDiscord(cfg.Discord, zapLogger)
	}
	geoClient := geo.NewClient(cfg.Geo, zapLogger)

	// 后台任务
	registry := task.NewRegistry()
	if err := registerTasks(registry, productCache, rawStore, cfg, zapLogger); err != nil {
		zapLogger.Fatal("failed to register tasks", zap.Error(err))
	}

	location, err := cfg.GetLocation()
	if err != nil {
		zapLogger.Warn("failed to load location, using local time", zap.Error(err))
		location = time.Local
	}

	defaultTimeout, err := cfg.GetDefaultTimeout()
	if err != nil {
		zapLogger.Warn("failed to parse default timeout, using 30m", zap.Error(err))
		defaultTimeout = 30 * time.Minute
	}

	sched := scheduler.New(scheduler.Config{
		Logger:         zapLogger,
		Registry:       registry,
		DefaultTimeout: defaultTimeout,
		Location:       location,
		OnResult:       taskAlert(notifier),
	})

	if err := sched.Start(); err != nil {
		zapLogger.Fatal("failed to start scheduler", zap.Error(err))
	}

	// HTTP 服务
	httpServer := server.New(&cfg.Server, handlers.Dependencies{
		Products: products,
		Geo:      geoClient,
		Notifier: notifier,
		Cache:    productCache,
		Config:   cfg,
		Logger:   zapLogger,
	}, zapLogger)

	if err := httpServer.Start(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLogger.Info("received signal, shutting down...",
		zap.String("signal", sig.String()),
	)

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		zapLogger.Error("error stopping HTTP server", zap.Error(err))
	}

	if err := sched.Stop(shutdownCtx); err != nil {
		zapLogger.Error("error stopping scheduler", zap.Error(err))
	}

	if err := dbs.Close(); err != nil {
		zapLogger.Error("error closing databases", zap.Error(err))
	}

	zapLogger.Info("application stopped")
}

// registerTasks 注册所有后台任务
func registerTasks(registry *task.Registry, productCache *cache.Cache, rawStore *archive.Store, cfg *config.Config, zapLogger *zap.Logger) error {
	if err := registry.Register(tasks.NewCacheSweep(productCache.Memory(), zapLogger)); err != nil {
		return fmt.Errorf("failed to register cache sweep task: %w", err)
	}

	if cfg.Archive.Enabled {
		if err := registry.Register(tasks.NewArchiveCleanup(rawStore, cfg.Archive.RetentionDuration, zapLogger)); err != nil {
			return fmt.Errorf("failed to register archive cleanup task: %w", err)
		}
	}

	return nil
}

// taskAlert 任务失败时推送 Discord 告警
func taskAlert(notifier *notify.Discord) func(ctx context.Context, result task.Result) {
	if notifier == nil {
		return nil
	}

	return func(ctx context.Context, result task.Result) {
		if result.Err == nil {
			return
		}
		notifier.SendEmbed(ctx, notify.Embed{
			Title: "Scheduled Task Failed",
			Color: notify.ColorError,
			Fields: []notify.EmbedField{
				{Name: "Task", Value: result.Name, Inline: true},
				{Name: "Duration", Value: result.Duration.Round(time.Millisecond).String(), Inline: true},
				{Name: "Error", Value: result.Err.Error()},
			},
			Timestamp: result.FinishedAt.UTC().Format(time.RFC3339),
		})
	}
}
