package usecase

import (
	"context"
	"fmt"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
)

// PublishUseCase ranks a batch and ships it downstream.
type PublishUseCase struct {
	picks     *PicksUseCase
	publisher repository.PicksPublisher
}

func NewPublishUseCase(picks *PicksUseCase, publisher repository.PicksPublisher) *PublishUseCase {
	return &PublishUseCase{picks: picks, publisher: publisher}
}

// Publish ranks symbols (the watchlist when empty) and publishes the batch.
// The ranked batch is returned even when publishing fails.
func (uc *PublishUseCase) Publish(ctx context.Context, symbols []string) (*models.PicksResponse, error) {
	resp, err := uc.picks.GetPicks(ctx, symbols)
	if err != nil {
		return nil, err
	}
	if err := uc.publisher.PublishPicks(ctx, resp); err != nil {
		return resp, fmt.Errorf("publish batch %s: %w", resp.BatchID, err)
	}
	return resp, nil
}
