package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/govmeet/minutes-pdf-service/handlers"
	"github.com/govmeet/minutes-pdf-service/internal/audit"
	"github.com/govmeet/minutes-pdf-service/internal/config"
	"github.com/govmeet/minutes-pdf-service/internal/files"
	"github.com/govmeet/minutes-pdf-service/internal/minutes"
	"github.com/govmeet/minutes-pdf-service/internal/minutes/service"
	"github.com/govmeet/minutes-pdf-service/internal/oidc"
	"github.com/govmeet/minutes-pdf-service/internal/pdf"
	"github.com/govmeet/minutes-pdf-service/internal/sparql"
	"github.com/govmeet/minutes-pdf-service/internal/storage"
	"github.com/govmeet/minutes-pdf-service/pkg/logger"
	"github.com/govmeet/minutes-pdf-service/pkg/metrics"
	"github.com/govmeet/minutes-pdf-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: sparql=%s render=%s storage=%s", cfg.Sparql.Endpoint, cfg.Render.URL, cfg.Storage.Backend)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Physical byte storage: share mount by default, MinIO when configured
	var objects storage.Store
	switch cfg.Storage.Backend {
	case "minio":
		s, err := storage.NewMinIOStorage(storage.LoadMinIOConfig())
		if err != nil {
			logger.Fatalf("failed to initialize MinIO storage: %v", err)
		}
		objects = s
	default:
		s, err := storage.NewDiskStorage(cfg.Storage.Path, cfg.Storage.Scheme)
		if err != nil {
			logger.Fatalf("failed to initialize disk storage: %v", err)
		}
		objects = s
	}

	// Pipeline collaborators
	store := sparql.NewClient(cfg.Sparql.Endpoint, cfg.Sparql.UpdateEndpoint)
	resolver := minutes.NewResolver(store)
	guard := minutes.NewGuard(store)
	converter := pdf.New(cfg.Render.URL)
	artifacts := files.NewArtifactStore(store, objects, cfg.Files.ResourceBase)
	reaper := files.NewReaper(cfg.FileService.URL)
	journal := audit.NewJournal(cfg.MongoDB.URI, cfg.MongoDB.Database)

	svc := service.NewService(resolver, guard, converter, artifacts, reaper, journal)
	if cfg.Debug.DumpHTML {
		svc = svc.WithDebugDump(cfg.Debug.DumpPath)
		logger.Warnf("debug HTML dump enabled, writing rendered documents to %s", cfg.Debug.DumpPath)
	}

	// Optional bearer-token gate on the generate endpoint
	var verifier middleware.Verifier
	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(context.Background(), cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
			logger.Warn("enabling insecure OIDC verifier (integration mode)")
			verifier = oidc.NewInsecureVerifier()
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		// the knowledge store is the one dependency nothing works without
		if _, err := store.Query(c.Request.Context(), "ASK { ?s ?p ?o }"); err != nil {
			deps["sparql"] = false
			ready = false
		} else {
			deps["sparql"] = true
		}

		// Redis readiness only matters when the limiter depends on it
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterSwagger(r)
	if verifier != nil {
		handlers.RegisterMinutesRoutes(r, svc, journal, middleware.AuthMiddleware(verifier))
	} else {
		handlers.RegisterMinutesRoutes(r, svc, journal)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting minutes-pdf-service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
