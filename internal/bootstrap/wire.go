package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/audit"
	"github.com/baechuer/identity-service/internal/config"
	"github.com/baechuer/identity-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/identity-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/identity-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/identity-service/internal/infrastructure/redis"
	"github.com/baechuer/identity-service/internal/infrastructure/screening"
	"github.com/baechuer/identity-service/internal/infrastructure/security"
	"github.com/baechuer/identity-service/internal/logger"
	"github.com/baechuer/identity-service/internal/metrics"
	http_handlers "github.com/baechuer/identity-service/internal/transport/http/handlers"
	"github.com/baechuer/identity-service/internal/transport/http/middleware"
	"github.com/baechuer/identity-service/internal/transport/http/response"
	"github.com/baechuer/identity-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL, exchange string) (Publisher, error)

	NewScreener func(baseURL string, timeout time.Duration) auth.BlacklistScreener

	NewRouter func(router.Deps) (http.Handler, error)
}

// Publisher is an event publisher that owns a connection.
type Publisher interface {
	auth.EventPublisher
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) user directory
	var users auth.UserDirectory
	var sqlDB *sql.DB
	switch {
	case cfg.DBAddr != "":
		sqlDB, err = deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return nil, nil, err
		}
		cleanupFns = append(cleanupFns, func() { _ = sqlDB.Close() })
		users = postgres.NewUserDirectory(sqlDB)
	case cfg.Env == "dev":
		logger.Logger.Warn().Msg("DB_ADDR not set; using in-memory user directory")
		users = memory.NewUserDirectory()
	default:
		return nil, nil, errors.New("bootstrap: DB_ADDR is required outside dev")
	}

	// 2) redis profile cache (best-effort)
	var opts []auth.Option
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; profile cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			opts = append(opts, auth.WithProfileCache(redis.NewProfileCache(c, cfg.ProfileCacheTTL)))
		}
	}

	// 3) publisher
	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.Env != "dev" {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			pub = p
			cleanupFns = append(cleanupFns, func() { _ = p.Close() })
		}
	}
	opts = append(opts, auth.WithPublisher(pub))

	// 4) security + screening
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt issuer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer)
	screener := deps.NewScreener(cfg.ScreeningBaseURL, cfg.ScreeningTimeout)

	// 5) service
	opts = append(opts,
		auth.WithAuditor(audit.New(logger.Logger)),
		auth.WithRecorder(metrics.NewRecorder()),
	)
	svc := auth.NewService(users, hasher, screener, issuer, opts...)

	// 6) handlers + router
	var readiness http_handlers.Pinger
	if sqlDB != nil {
		readiness = sqlDB
	}

	mux, err := deps.NewRouter(router.Deps{
		Health:      http_handlers.NewHealthHandler(readiness),
		Users:       http_handlers.NewUserHandler(svc),
		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics,
		AuthMW:      middleware.Auth(issuer, response.WriteError),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewScreener: func(baseURL string, timeout time.Duration) auth.BlacklistScreener {
			return screening.NewClient(baseURL, timeout, metrics.Screening{})
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
