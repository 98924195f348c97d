//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"PickRank/internal/usecase"
	"PickRank/pkg/config"
	"PickRank/pkg/server"
)

var scoringSet = wire.NewSet(
	// Metrics and logging
	ProvideLogger,
	ProvideMetrics,

	// Upstream providers
	ProvidePriceProvider,
	ProvideFundamentalsProvider,
	ProvideSentimentProvider,
	ProvideVolatilityProvider,

	// Scoring and cache
	ProvideSignalAssembler,
	ProvideRedisCache,
	ProvideResultCache,

	// Use cases
	ProvidePicksUseCase,
)

// InitializeApp wires up the HTTP service.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		scoringSet,
		ProvideRateLimiter,
		ProvidePicksHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializePicks wires the ranking use case for one-shot CLI runs.
func InitializePicks(cfg *config.Config) (*usecase.PicksUseCase, func(), error) {
	wire.Build(scoringSet)
	return nil, nil, nil
}

// InitializePublish wires ranking plus the Kafka publisher.
func InitializePublish(cfg *config.Config) (*usecase.PublishUseCase, func(), error) {
	wire.Build(
		scoringSet,
		ProvideKafkaProducer,
		ProvidePicksPublisher,
		ProvidePublishUseCase,
	)
	return nil, nil, nil
}
