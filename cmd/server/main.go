// Command server runs the btcpulse HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/btcpulse/modules/account"
	"github.com/dmitrymomot/btcpulse/pkg/auth"
	"github.com/dmitrymomot/btcpulse/pkg/clientip"
	"github.com/dmitrymomot/btcpulse/pkg/config"
	"github.com/dmitrymomot/btcpulse/pkg/enrich"
	"github.com/dmitrymomot/btcpulse/pkg/environment"
	"github.com/dmitrymomot/btcpulse/pkg/geoip"
	"github.com/dmitrymomot/btcpulse/pkg/httpclient"
	"github.com/dmitrymomot/btcpulse/pkg/httpserver"
	"github.com/dmitrymomot/btcpulse/pkg/jwt"
	"github.com/dmitrymomot/btcpulse/pkg/logger"
	"github.com/dmitrymomot/btcpulse/pkg/mongo"
	"github.com/dmitrymomot/btcpulse/pkg/pricefeed"
	"github.com/dmitrymomot/btcpulse/pkg/ratelimiter"
	"github.com/dmitrymomot/btcpulse/pkg/redis"
	"github.com/dmitrymomot/btcpulse/pkg/requestid"
	authstore "github.com/dmitrymomot/btcpulse/svc/auth"
)

const readinessTimeout = 3 * time.Second

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)

	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
	))

	if err := run(context.Background(), log, environment.Parse(logCfg.Env)); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, env environment.Environment) error {
	var (
		serverCfg  httpserver.Config
		mongoCfg   mongo.Config
		storeCfg   authstore.Config
		redisCfg   redis.Config
		jwtCfg     jwt.Config
		authCfg    auth.Config
		geoCfg     geoip.Config
		enrichCfg  enrich.Config
		priceCfg   pricefeed.Config
		clientCfg  httpclient.Config
		limiterCfg ratelimiter.Config
	)
	config.MustLoad(&serverCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&storeCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&jwtCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&geoCfg)
	config.MustLoad(&enrichCfg)
	config.MustLoad(&priceCfg)
	config.MustLoad(&clientCfg)
	config.MustLoad(&limiterCfg)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	log.Info("mongodb connected", slog.String("database", db.Name()))

	storage := authstore.NewMongoStorage(db, storeCfg)
	if err := storage.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	checks := []httpserver.Check{{Name: "mongodb", Fn: mongo.Healthcheck(db)}}
	stopHooks := []httpserver.Option{
		httpserver.WithStopHook(func(l *slog.Logger) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(ctx); err != nil {
				l.Error("mongodb disconnect failed", logger.Error(err))
			}
		}),
	}

	limiter, closeLimiter, err := newLoginLimiter(ctx, log, redisCfg, limiterCfg)
	if err != nil {
		return err
	}
	stopHooks = append(stopHooks, httpserver.WithStopHook(func(*slog.Logger) { closeLimiter() }))
	if limiter.redis != nil {
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(limiter.redis)})
	}

	client := httpclient.New(clientCfg)

	enrichOpts := []enrich.Option{enrich.WithLogger(log)}
	if geoCfg.DatabasePath != "" {
		geoDB, err := geoip.Open(geoCfg.DatabasePath)
		if err != nil {
			return err
		}
		stopHooks = append(stopHooks, httpserver.WithStopHook(func(*slog.Logger) { _ = geoDB.Close() }))
		enrichOpts = append(enrichOpts, enrich.WithOfflineLocator(geoDB))
	} else {
		log.Warn("GEOIP_DB_PATH not set, offline geolocation disabled")
	}
	if geoCfg.LiveEnabled {
		enrichOpts = append(enrichOpts, enrich.WithLiveLocator(geoip.NewLive(geoCfg.LiveURL, client, geoCfg.LiveTimeout)))
	}
	enricher := enrich.New(enrichCfg, enrichOpts...)

	prices, err := pricefeed.New(priceCfg, pricefeed.WithHTTPClient(client), pricefeed.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("price providers loaded", slog.Any("providers", prices.Providers()))

	tokens, err := jwt.New(jwtCfg)
	if err != nil {
		return err
	}
	authSvc := auth.NewService(authCfg, storage, tokens, auth.WithLogger(log))

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", requestid.Header},
			ExposedHeaders: []string{requestid.Header, "Retry-After"},
			MaxAge:         300,
		}),
		middleware.Recoverer,
		requestLogger(log),
	)

	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, readinessTimeout, checks...))
	r.Mount("/api/auth", account.New(authSvc, enricher, prices,
		account.WithLoginLimiter(limiter.bucket),
		account.WithLogger(log),
	).Handle())

	srv := httpserver.NewFromConfig(serverCfg, append(stopHooks, httpserver.WithLogger(log))...)
	return srv.Run(ctx, r)
}

type loginLimiter struct {
	bucket *ratelimiter.Bucket
	redis  *goredis.Client
}

// newLoginLimiter keeps buckets in Redis when REDIS_URL is set so that every
// instance shares them, and in process memory otherwise.
func newLoginLimiter(ctx context.Context, log *slog.Logger, redisCfg redis.Config, cfg ratelimiter.Config) (loginLimiter, func(), error) {
	var (
		store   ratelimiter.Store
		out     loginLimiter
		closeFn = func() {}
	)

	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return out, nil, err
		}
		log.Info("redis connected, login throttle is shared")
		store = ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("btcpulse:ratelimit:"))
		out.redis = client
		closeFn = func() { _ = client.Close() }
	} else {
		mem := ratelimiter.NewMemoryStore()
		store = mem
		closeFn = mem.Close
	}

	bucket, err := ratelimiter.NewBucket(store, cfg)
	if err != nil {
		closeFn()
		return out, nil, fmt.Errorf("login rate limiter: %w", err)
	}
	out.bucket = bucket
	return out, closeFn, nil
}
