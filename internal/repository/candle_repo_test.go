package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-backtest/internal/apperrors"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"
)

const candleCSV = `timestamp,open,high,low,close,volume
1700000060000,101.0,102.0,100.5,101.5,12.0
1700000000000,100.0,101.0,99.5,100.5,10.0
1700000120000,101.5,103.0,101.0,102.5,8.0
`

func newTestCandleRepo(t *testing.T) (CandleRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo := NewCandleRepository(dir, cache.NewCache(time.Minute, time.Minute), logger.NewNop())
	return repo, dir
}

func writeCandleFile(t *testing.T, dir, marketType, name string) {
	t.Helper()
	base := filepath.Join(dir, marketType)
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, name), []byte(candleCSV), 0o644))
}

func TestCandleRepository_GetParsesAndSorts(t *testing.T) {
	repo, dir := newTestCandleRepo(t)
	writeCandleFile(t, dir, "futures", "BTCUSDT.csv")

	candles, err := repo.Get(context.Background(), "futures", "BTCUSDT")
	require.NoError(t, err)

	require.Len(t, candles, 3, "header row is skipped")
	assert.Equal(t, int64(1_700_000_000_000), candles[0].Timestamp, "series comes out sorted")
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 102.5, candles[2].Close)
	assert.Equal(t, 12.0, candles[1].Volume)
}

func TestCandleRepository_LookupFallsBackToPrefixedName(t *testing.T) {
	repo, dir := newTestCandleRepo(t)
	writeCandleFile(t, dir, "spot", "spot_ETHUSDT.csv")

	candles, err := repo.Get(context.Background(), "spot", "ETHUSDT")
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestCandleRepository_MissingFileIsNotFound(t *testing.T) {
	repo, _ := newTestCandleRepo(t)

	_, err := repo.Get(context.Background(), "futures", "NOPEUSDT")

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCandleRepository_List(t *testing.T) {
	repo, dir := newTestCandleRepo(t)
	writeCandleFile(t, dir, "futures", "BTCUSDT.csv")
	writeCandleFile(t, dir, "futures", "futures_ETHUSDT.csv")
	writeCandleFile(t, dir, "spot", "SOLUSDT.csv")

	symbols, err := repo.List(context.Background(), "futures")
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, symbols)

	empty, err := repo.List(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCandleRepository_SaveThenGet(t *testing.T) {
	repo, _ := newTestCandleRepo(t)

	err := repo.Save(context.Background(), "spot", "ADAUSDT", strings.NewReader(candleCSV))
	require.NoError(t, err)

	candles, err := repo.Get(context.Background(), "spot", "ADAUSDT")
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}
