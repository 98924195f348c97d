package di

import (
	"fmt"

	"PickRank/internal/domain/repository"
	"PickRank/internal/domain/service"
	"PickRank/internal/handler/api"
	internalrepo "PickRank/internal/repository"
	icache "PickRank/internal/service/cache"
	"PickRank/internal/service/ratelimit"
	"PickRank/internal/services/providers"
	"PickRank/internal/usecase"
	pkgcache "PickRank/pkg/cache"
	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
	pkgkafka "PickRank/pkg/kafka"
	applogger "PickRank/pkg/logger"
	"PickRank/pkg/metrics"
	"PickRank/pkg/server"
	"PickRank/pkg/util"
)

// ProvideLogger creates the structured logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New().TrackSymbols(util.NormalizeSymbols(cfg.Picks.Watchlist))
}

func ProvidePriceProvider(cfg *config.Config) repository.PriceHistoryProvider {
	return providers.NewAlphaVantage("price", cfg.Providers.Price)
}

func ProvideFundamentalsProvider(cfg *config.Config) repository.FundamentalsProvider {
	return providers.NewAlphaVantage("fundamentals", cfg.Providers.Fundamentals)
}

func ProvideSentimentProvider(cfg *config.Config) repository.SentimentProvider {
	return providers.NewSentiment(cfg.Providers.Sentiment)
}

func ProvideVolatilityProvider(cfg *config.Config) repository.VolatilityProvider {
	return providers.NewVolatility(cfg.Providers.Volatility)
}

// ProvideSignalAssembler creates the per-symbol assembler.
func ProvideSignalAssembler(
	prices repository.PriceHistoryProvider,
	fundamentals repository.FundamentalsProvider,
	sentiment repository.SentimentProvider,
	volatility repository.VolatilityProvider,
	m repository.Metrics,
	log *applogger.Logger,
) service.SignalAssembler {
	return usecase.NewSignalAssembler(prices, fundamentals, sentiment, volatility, m, log)
}

// ProvideRedisCache connects to Redis when enabled. An unreachable Redis is
// logged and the service runs with the in-process cache only.
func ProvideRedisCache(cfg *config.Config, log *applogger.Logger) (*pkgcache.RedisCache, func()) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		log.Warn("redis.unavailable", applogger.Error(err))
		return nil, func() {}
	}
	log.Info("redis.connected",
		applogger.String("host", cfg.Cache.Redis.Host),
		applogger.Int("port", cfg.Cache.Redis.Port),
	)
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn("redis close error", applogger.Error(err))
		}
	}
}

// ProvideResultCache creates the TTL result cache, backed by Redis when one
// is connected.
func ProvideResultCache(
	assembler service.SignalAssembler,
	rc *pkgcache.RedisCache,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) service.ResultReader {
	opts := []icache.Option{
		icache.WithTTL(cfg.Cache.TTL),
		icache.WithInflightDedupe(cfg.Cache.DedupeInflight),
	}
	if rc != nil {
		opts = append(opts, icache.WithStore(icache.NewRedisStore(rc)))
	}
	return icache.NewResultCache(assembler, m, log, opts...)
}

// ProvidePicksUseCase creates the batch ranking use case.
func ProvidePicksUseCase(results service.ResultReader, m repository.Metrics, log *applogger.Logger, cfg *config.Config) *usecase.PicksUseCase {
	return usecase.NewPicksUseCase(results, m, log, usecase.PicksOptions{
		Watchlist:   cfg.Picks.Watchlist,
		Concurrency: cfg.Picks.Concurrency,
		MaxSymbols:  cfg.Picks.MaxSymbols,
	})
}

// ProvideRateLimiter returns nil when rate limiting is disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.Server.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
}

func ProvidePicksHandler(log *applogger.Logger, picks *usecase.PicksUseCase, limiter *ratelimit.Limiter) *api.PicksHandler {
	return api.NewPicksHandler(log, picks, limiter)
}

// ProvideHTTPServer creates the Echo server with every route registered.
func ProvideHTTPServer(cfg *config.Config, log *applogger.Logger, picks *api.PicksHandler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(log, []xhttp.Handler{picks},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopic(cfg.Kafka.AutoCreateTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvidePicksPublisher creates Kafka publisher repository. Cleanup flushes
// and closes the producer.
func ProvidePicksPublisher(producer *pkgkafka.Producer, cfg *config.Config, m repository.Metrics, log *applogger.Logger) (repository.PicksPublisher, func()) {
	pub := internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic, m, log)
	return pub, func() {
		if err := pub.Close(); err != nil {
			log.Warn("kafka close error", applogger.Error(err))
		}
	}
}

func ProvidePublishUseCase(picks *usecase.PicksUseCase, publisher repository.PicksPublisher) *usecase.PublishUseCase {
	return usecase.NewPublishUseCase(picks, publisher)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, log, srv)
}
