package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"
)

func newStrategyTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func strategyRepoFor(baseURL string) StrategyRepository {
	cfg := &config.Config{}
	cfg.Strategy.BaseURL = baseURL
	cfg.Strategy.Timeout = 5 * time.Second
	cfg.Strategy.MaxRequestPerMin = 600
	return NewStrategyRepository(cfg, logger.NewNop())
}

func TestStrategyRepository_GetSourceCleansPayload(t *testing.T) {
	rawCode := "Here's your strategy:\n```js\nfunction runStrategy(c, s) { return { trades: [] }; }\n```"
	server := newStrategyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/strategies/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.StrategySource{JSCode: rawCode})
	})

	source, err := strategyRepoFor(server.URL).GetSource(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "function runStrategy(c, s) { return { trades: [] }; }", source)
}

func TestStrategyRepository_NotFound(t *testing.T) {
	server := newStrategyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := strategyRepoFor(server.URL).GetSource(context.Background(), "ghost")

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestStrategyRepository_UpstreamFailure(t *testing.T) {
	server := newStrategyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("translation backend down"))
	})

	_, err := strategyRepoFor(server.URL).GetSource(context.Background(), "abc")

	var upstream *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	assert.Contains(t, upstream.Message, "translation backend down")
}

func TestStrategyRepository_MissingBaseURLIsConfigurationError(t *testing.T) {
	_, err := strategyRepoFor("").GetSource(context.Background(), "abc")

	var configErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.NotContains(t, err.Error(), "base_url", "the missing key must not leak into the message")
}
