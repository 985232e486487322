package repository

import (
	"golang-backtest/config"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"
)

type Repository struct {
	CandleRepo   CandleRepository
	StrategyRepo StrategyRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		CandleRepo:   NewCandleRepository(cfg.Candle.Dir, inmemoryCache, log),
		StrategyRepo: NewStrategyRepository(cfg, log),
	}
}
