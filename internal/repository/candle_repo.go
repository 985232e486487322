package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"
)

// CandleRepository is the read-only candle file store. Files are CSV, keyed
// by (market type, symbol), one directory per market type. Files are never
// mutated during reads, so no locking is needed.
type CandleRepository interface {
	Get(ctx context.Context, marketType, symbol string) ([]dto.Candle, error)
	List(ctx context.Context, marketType string) ([]string, error)
	Save(ctx context.Context, marketType, symbol string, data io.Reader) error
}

type fileCandleRepository struct {
	dir   string
	cache cache.Cache
	log   *logger.Logger
}

func NewCandleRepository(dir string, inmemoryCache cache.Cache, log *logger.Logger) CandleRepository {
	return &fileCandleRepository{
		dir:   dir,
		cache: inmemoryCache,
		log:   log,
	}
}

// Get loads the 1-minute candle series for a symbol. Lookup tries
// {symbol}.csv first, then {market_type}_{symbol}.csv.
func (r *fileCandleRepository) Get(ctx context.Context, marketType, symbol string) ([]dto.Candle, error) {
	path, info, err := r.resolve(marketType, symbol)
	if err != nil {
		return nil, err
	}

	// Keyed by path+mtime so a re-uploaded file invalidates naturally.
	cacheKey := fmt.Sprintf("candles:%s:%d", path, info.ModTime().UnixNano())
	if candles, found := cache.GetTyped[[]dto.Candle](r.cache, cacheKey); found {
		return candles, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candle file: %w", err)
	}
	defer file.Close()

	candles, err := parseCandleCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse candle file %s: %w", filepath.Base(path), err)
	}

	r.cache.Set(cacheKey, candles, 10*time.Minute)
	r.log.DebugContext(ctx, "loaded candle file",
		logger.StringField("path", path),
		logger.IntField("candles", len(candles)),
	)
	return candles, nil
}

func (r *fileCandleRepository) resolve(marketType, symbol string) (string, os.FileInfo, error) {
	base := filepath.Join(r.dir, strings.ToLower(marketType))
	candidates := []string{
		filepath.Join(base, symbol+".csv"),
		filepath.Join(base, fmt.Sprintf("%s_%s.csv", strings.ToLower(marketType), symbol)),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, info, nil
		}
	}
	return "", nil, apperrors.NewNotFound("candle data", fmt.Sprintf("%s/%s", marketType, symbol))
}

// parseCandleCSV reads timestamp,open,high,low,close,volume rows. The header
// row is ignored; the series is sorted by timestamp on the way out.
func parseCandleCSV(data io.Reader) ([]dto.Candle, error) {
	reader := csv.NewReader(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var candles []dto.Candle
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if len(record) < 6 {
			return nil, fmt.Errorf("row %d: expected 6 columns, got %d", row, len(record))
		}

		timestamp, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if row == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid timestamp %q", row, record[0])
		}

		candle := dto.Candle{Timestamp: timestamp}
		for i, target := range []*float64{&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume} {
			value, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid value %q", row, record[i+1])
			}
			*target = value
		}
		candles = append(candles, candle)
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})
	return candles, nil
}

// List returns the symbols that have a candle file for the given market type.
func (r *fileCandleRepository) List(ctx context.Context, marketType string) ([]string, error) {
	base := filepath.Join(r.dir, strings.ToLower(marketType))
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list candle files: %w", err)
	}

	symbols := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		name = strings.TrimSuffix(name, ".csv")
		name = strings.TrimPrefix(name, strings.ToLower(marketType)+"_")
		symbols = append(symbols, name)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Save stores an uploaded CSV under the market type directory.
func (r *fileCandleRepository) Save(ctx context.Context, marketType, symbol string, data io.Reader) error {
	base := filepath.Join(r.dir, strings.ToLower(marketType))
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("failed to create candle directory: %w", err)
	}

	path := filepath.Join(base, filepath.Base(symbol)+".csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create candle file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return fmt.Errorf("failed to write candle file: %w", err)
	}

	r.log.InfoContext(ctx, "saved candle file", logger.StringField("path", path))
	return nil
}
