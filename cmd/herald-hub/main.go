package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"herald-hub/internal/adapter/gateway"
	adapterhandler "herald-hub/internal/adapter/handler"
	"herald-hub/internal/domain"
	infracache "herald-hub/internal/infrastructure/cache"
	"herald-hub/internal/infrastructure/sessionstore"
	infratoken "herald-hub/internal/infrastructure/token"
	"herald-hub/internal/routes"
	"herald-hub/internal/usecase"

	"herald-hub/config"
	appmiddleware "herald-hub/middleware"
	"herald-hub/utils/logger"
	"herald-hub/utils/otel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"agency_base_url", cfg.AgencyBaseURL,
		"port", cfg.Port,
		"cache_ttl", cfg.CacheTTL,
		"session_ttl", cfg.SessionTTL,
		"session_backend", storeKind(cfg.RedisURL))

	// Infrastructure
	var store domain.SessionStore
	if cfg.RedisURL != "" {
		redisStore, err := sessionstore.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect session store", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = sessionstore.NewMemoryStore()
	}

	sessionCache := infracache.NewSessionCache(cfg.CacheTTL)
	agencyGateway := gateway.NewAgencyGateway(cfg.AgencyBaseURL, cfg.AgencyTimeout)
	codec, err := infratoken.NewJWTCodec(infratoken.JWTConfig{
		Secret:   cfg.SessionSecret,
		Issuer:   cfg.SessionIssuer,
		Audience: cfg.SessionAudience,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session codec", "error", err)
		os.Exit(1)
	}

	// Usecases
	loginUC := usecase.NewLogin(agencyGateway, store, sessionCache, codec, slog.Default())
	logoutUC := usecase.NewLogout(agencyGateway, store, sessionCache, cfg.LogoutForceLocal, slog.Default())
	resolveUC := usecase.NewResolveSession(store, sessionCache, slog.Default())
	revokeUC := usecase.NewRevokeSession(store, sessionCache, slog.Default())

	// Handlers
	authHandler := adapterhandler.NewAuthHandler(loginUC, logoutUC, codec, cfg.SessionTTL, slog.Default())
	sessionHandler := adapterhandler.NewSessionHandler(resolveUC, codec)
	dashboardHandler := adapterhandler.NewDashboardHandler(agencyGateway, slog.Default())
	healthHandler := adapterhandler.NewHealthHandler()
	internalHandler := adapterhandler.NewInternalHandler(revokeUC)

	guard := appmiddleware.NewRouteGuard(codec, resolveUC, slog.Default())

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	authRL := appmiddleware.NewRateLimiter(10.0/60.0, 5)     // 10 req/min, login brute force
	sessionRL := appmiddleware.NewRateLimiter(60.0/60.0, 10) // 60 req/min
	internalRL := appmiddleware.NewRateLimiter(10.0/60.0, 3) // 10 req/min
	defer authRL.Stop()
	defer sessionRL.Stop()
	defer internalRL.Stop()

	// Public routes
	authGroup := e.Group("/auth", authRL.Middleware())
	authGroup.POST("/login", authHandler.HandleLogin)
	authGroup.POST("/logout", authHandler.HandleLogout)
	e.GET("/session", sessionHandler.Handle, sessionRL.Middleware())
	e.GET("/health", healthHandler.Handle)

	// Role-gated dashboard groups
	routes.Register(e, guard.Require, dashboardHandler.Proxy)

	// Internal routes (protected by shared secret)
	internalGroup := e.Group("/internal",
		internalRL.Middleware(),
		appmiddleware.InternalAuth(cfg.InternalSharedSecret),
	)
	internalGroup.POST("/sessions/revoke", internalHandler.HandleRevoke)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting herald-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

func storeKind(redisURL string) string {
	if redisURL != "" {
		return "redis"
	}
	return "memory"
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8888"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
