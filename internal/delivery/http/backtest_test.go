package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/service"
	"golang-backtest/pkg/logger"
)

type fakeBacktestService struct {
	result *dto.BacktestResponse
	err    error
}

func (f *fakeBacktestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestHandler(backtest service.BacktestService) *HttpAPIHandler {
	services := &service.Service{BacktestService: backtest}
	return NewHttpAPIHandler(context.Background(), &config.Config{}, logger.NewNop(), echo.New(), goValidator.New(), services)
}

func performBacktest(t *testing.T, handler *HttpAPIHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/backtest", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.runBacktest(c))
	return rec
}

func TestRunBacktest_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid strategy is 400", err: apperrors.NewStrategyInvalid("missing entry point runStrategy"), wantStatus: http.StatusBadRequest},
		{name: "missing candles is 404", err: apperrors.NewNotFound("candle data", "futures/BTCUSDT"), wantStatus: http.StatusNotFound},
		{name: "execution failure is 500", err: apperrors.NewStrategyExecution("boom", "function runStrategy..."), wantStatus: http.StatusInternalServerError},
		{name: "upstream failure is 502", err: apperrors.NewUpstream(503, "down"), wantStatus: http.StatusBadGateway},
		{name: "missing config is 500", err: apperrors.NewConfiguration("strategy.base_url"), wantStatus: http.StatusInternalServerError},
	}

	body := `{"strategy_id":"s1","settings":{"symbol":"BTCUSDT"}}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&fakeBacktestService{err: tt.err})

			rec := performBacktest(t, handler, body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRunBacktest_ConfigurationErrorStaysGeneric(t *testing.T) {
	handler := newTestHandler(&fakeBacktestService{err: apperrors.NewConfiguration("strategy.api_key")})

	rec := performBacktest(t, handler, `{"strategy_id":"s1","settings":{"symbol":"BTCUSDT"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "api_key")
}

func TestRunBacktest_ExecutionErrorIncludesPreview(t *testing.T) {
	handler := newTestHandler(&fakeBacktestService{err: apperrors.NewStrategyExecution("boom", "function runStrategy(c, s) {")})

	rec := performBacktest(t, handler, `{"strategy_id":"s1","settings":{"symbol":"BTCUSDT"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "source_preview")
}

func TestRunBacktest_BadRequests(t *testing.T) {
	handler := newTestHandler(&fakeBacktestService{result: &dto.BacktestResponse{}})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"strategy_id":`},
		{name: "missing strategy id", body: `{"settings":{"symbol":"BTCUSDT"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performBacktest(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRunBacktest_Success(t *testing.T) {
	handler := newTestHandler(&fakeBacktestService{result: &dto.BacktestResponse{
		Trades:         []dto.Trade{},
		TotalTrades:    0,
		FinalBalance:   10000,
		InitialBalance: 10000,
		Symbol:         "BTCUSDT",
	}})

	rec := performBacktest(t, handler, `{"strategy_id":"s1","settings":{"symbol":"BTCUSDT"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"final_balance":10000`)
}
