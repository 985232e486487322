package service

import (
	"context"

	"golang.org/x/sync/semaphore"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/repository"
	"golang-backtest/internal/settings"
	"golang-backtest/internal/strategyhost"
	"golang-backtest/pkg/logger"
)

// BacktestService runs one end-to-end backtest per request: retrieve and
// compile the strategy, prepare the candle series, normalize settings, invoke
// the strategy exactly once over the whole series, and shape the result.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
}

type backtestService struct {
	cfg          *config.Config
	log          *logger.Logger
	strategyRepo repository.StrategyRepository
	candleRepo   repository.CandleRepository
	host         *strategyhost.Host
	// executionSem caps concurrent strategy executions across requests;
	// everything within one request stays single-threaded.
	executionSem *semaphore.Weighted
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	strategyRepo repository.StrategyRepository,
	candleRepo repository.CandleRepository,
	host *strategyhost.Host,
) BacktestService {
	maxConcurrent := cfg.Strategy.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &backtestService{
		cfg:          cfg,
		log:          log,
		strategyRepo: strategyRepo,
		candleRepo:   candleRepo,
		host:         host,
		executionSem: semaphore.NewWeighted(maxConcurrent),
	}
}

// RunBacktest surfaces every failure as a typed error; it never returns a
// partial result. The strategy is validated before any candle file is read.
func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	source, err := s.strategyRepo.GetSource(ctx, req.StrategyID)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to retrieve strategy source",
			logger.StringField("strategy_id", req.StrategyID),
			logger.ErrorField(err),
		)
		return nil, err
	}

	strategy, err := s.host.Compile(source)
	if err != nil {
		s.log.WarnContext(ctx, "strategy rejected",
			logger.StringField("strategy_id", req.StrategyID),
			logger.ErrorField(err),
		)
		return nil, err
	}

	candles, err := s.candleRepo.Get(ctx, req.MarketType(), req.Symbol())
	if err != nil {
		return nil, err
	}
	candles = sliceRange(candles, req.StartMs(), req.EndMs())
	candles = ResampleCandles(candles, req.Timeframe())

	normalizedSettings := settings.Normalize(req.Settings)

	if err := s.executionSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.executionSem.Release(1)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Strategy.ExecutionTimeout)
	defer cancel()

	raw, err := strategy.Run(runCtx, candles, normalizedSettings)
	if err != nil {
		s.log.ErrorContext(ctx, "strategy run failed",
			logger.StringField("strategy_id", req.StrategyID),
			logger.ErrorField(err),
		)
		return nil, err
	}

	response := NormalizeResult(raw, req.Symbol(), req.Timeframe(), req.InitialBalance())

	s.log.InfoContext(ctx, "backtest completed",
		logger.StringField("strategy_id", req.StrategyID),
		logger.StringField("symbol", req.Symbol()),
		logger.IntField("candles", len(candles)),
		logger.IntField("total_trades", response.TotalTrades),
		logger.Float64Field("roi", response.Roi),
	)
	return response, nil
}
