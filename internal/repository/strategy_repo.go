package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/httpclient"
	"golang-backtest/pkg/logger"
)

// StrategyRepository fetches translated strategy source by identifier from
// the translation service and returns it cleaned, ready for compilation.
type StrategyRepository interface {
	GetSource(ctx context.Context, strategyID string) (string, error)
}

type strategyAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     httpclient.HTTPClient
	requestLimiter *rate.Limiter
}

func NewStrategyRepository(cfg *config.Config, log *logger.Logger) StrategyRepository {
	perMin := cfg.Strategy.MaxRequestPerMin
	if perMin <= 0 {
		perMin = 60
	}
	requestLimiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 1)

	return &strategyAPIRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     httpclient.New(cfg.Strategy.BaseURL, cfg.Strategy.Timeout, cfg.Strategy.APIKey),
		requestLimiter: requestLimiter,
	}
}

func (r *strategyAPIRepository) GetSource(ctx context.Context, strategyID string) (string, error) {
	if r.cfg.Strategy.BaseURL == "" {
		return "", apperrors.NewConfiguration("strategy.base_url")
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", err
	}

	var source dto.StrategySource
	resp, err := r.httpClient.Get(ctx, fmt.Sprintf("/strategies/%s", strategyID), nil, nil, &source)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to reach strategy service", logger.ErrorField(err))
		return "", apperrors.NewUpstream(0, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", apperrors.NewNotFound("strategy", strategyID)
	case resp.StatusCode >= 300:
		r.log.ErrorContext(ctx, "strategy service returned non-success status",
			logger.IntField("status", resp.StatusCode),
			logger.StringField("strategy_id", strategyID),
		)
		return "", apperrors.NewUpstream(resp.StatusCode, string(resp.Body))
	}

	return CleanStrategySource(source.JSCode), nil
}
