package service

import (
	"context"
	"io"

	"golang-backtest/internal/repository"
	"golang-backtest/pkg/logger"
)

// CandleService is a thin wrapper over the candle file store for the
// listing and upload endpoints.
type CandleService interface {
	List(ctx context.Context, marketType string) ([]string, error)
	Upload(ctx context.Context, marketType, symbol string, data io.Reader) error
}

type candleService struct {
	log        *logger.Logger
	candleRepo repository.CandleRepository
}

func NewCandleService(log *logger.Logger, candleRepo repository.CandleRepository) CandleService {
	return &candleService{
		log:        log,
		candleRepo: candleRepo,
	}
}

func (s *candleService) List(ctx context.Context, marketType string) ([]string, error) {
	return s.candleRepo.List(ctx, marketType)
}

func (s *candleService) Upload(ctx context.Context, marketType, symbol string, data io.Reader) error {
	return s.candleRepo.Save(ctx, marketType, symbol, data)
}
