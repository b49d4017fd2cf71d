// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yemou/archivault/pkg/api"
	appcache "github.com/yemou/archivault/pkg/cache"
	"github.com/yemou/archivault/pkg/configs"
	"github.com/yemou/archivault/pkg/internal/jobs"
	"github.com/yemou/archivault/pkg/internal/storage"
	"github.com/yemou/archivault/pkg/log"
	"github.com/yemou/archivault/pkg/metrics"
	"github.com/yemou/archivault/pkg/middleware"
	"github.com/yemou/archivault/pkg/scheduler"
	"github.com/yemou/archivault/pkg/tracing"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()
	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.AuthMiddleware(config.Auth),
		middleware.RoleMiddleware(),
		middleware.StorageMiddleware(manager),
	)

	// 统计接口读多写少，有 KV 时做短 TTL 响应缓存
	if kvClient := manager.GetKVClient(); kvClient != nil {
		cacheCfg := middleware.DefaultCacheConfig(appcache.NewCache(kvClient))
		cacheCfg.TTL = time.Minute
		cacheCfg.VaryHeaders = []string{"X-User", "X-Auth-Request-Email", "X-Forwarded-Email"}
		cacheCfg.Skipper = func(c *gin.Context) bool {
			return !strings.HasPrefix(c.Request.URL.Path, "/api/v1/stats")
		}

		engine.Use(middleware.CacheMiddleware(cacheCfg))
	}

	if config.RateLimit.Enabled {
		engine.Use(middleware.RateLimitMiddleware(config.RateLimit))
	}

	if config.CircuitBreaker.Enabled {
		engine.Use(middleware.CircuitBreakerMiddleware(config.CircuitBreaker))
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	engine.Use(middleware.SchedulerMiddleware(sched))

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		l.Warn().Err(err).Msg("failed to register cron jobs")
	}

	sched.Start()

	api.RegisterRoutes(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
	}
}

func (a *App) Run() error {
	defer func() {
		if err := a.sched.Stop(); err != nil {
			log.Logger().Warn().Err(err).Msg("failed to stop scheduler")
		}
	}()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
