package service

import (
	"context"

	"PickRank/internal/domain/models"
)

// SignalAssembler builds one symbol's scored record from its upstream inputs.
// It fails only when price history cannot be obtained.
type SignalAssembler interface {
	Assemble(ctx context.Context, symbol string) (*models.CompositeResult, error)
}

// ResultReader serves composite results, possibly from cache.
type ResultReader interface {
	Get(ctx context.Context, symbol string) (*models.CompositeResult, error)
	Refresh(ctx context.Context, symbol string) (*models.CompositeResult, error)
}
