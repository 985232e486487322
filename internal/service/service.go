package service

import (
	"golang-backtest/config"
	"golang-backtest/internal/repository"
	"golang-backtest/internal/strategyhost"
	"golang-backtest/pkg/logger"
)

type Service struct {
	BacktestService BacktestService
	CandleService   CandleService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	host := strategyhost.New(cfg, log)
	return &Service{
		BacktestService: NewBacktestService(cfg, log, repo.StrategyRepo, repo.CandleRepo, host),
		CandleService:   NewCandleService(log, repo.CandleRepo),
	}
}
