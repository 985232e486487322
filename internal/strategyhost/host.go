// Package strategyhost is the untrusted-code execution boundary. Translated
// strategy source runs inside a per-request goja interpreter, never in the
// host process's own runtime, with the indicator set injected as named
// callables and a wall-clock deadline enforced through interpreter
// interruption.
package strategyhost

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dop251/goja"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/indicator"
	"golang-backtest/pkg/logger"
)

var entryPointPattern = regexp.MustCompile(`\brunStrategy\b`)

// Host builds runnable strategies out of cleaned source text.
type Host struct {
	log              *logger.Logger
	maxCallStackSize int
	previewBytes     int
}

func New(cfg *config.Config, log *logger.Logger) *Host {
	return &Host{
		log:              log,
		maxCallStackSize: cfg.Strategy.MaxCallStackSize,
		previewBytes:     cfg.Strategy.SourcePreviewBytes,
	}
}

// Strategy is one compiled strategy. A Strategy may be run at most once; the
// interpreter it spawns is never shared or reused across requests.
type Strategy struct {
	host    *Host
	source  string
	program *goja.Program
}

// Compile proves the source defines the runStrategy entry point and parses
// it, without executing any of it. A source that fails either check is
// rejected as StrategyInvalidError before any candle data is touched.
func (h *Host) Compile(source string) (*Strategy, error) {
	if !entryPointPattern.MatchString(source) {
		return nil, apperrors.NewStrategyInvalid("missing entry point runStrategy")
	}

	program, err := goja.Compile("strategy.js", source, false)
	if err != nil {
		return nil, apperrors.NewStrategyInvalid(fmt.Sprintf("source does not parse: %v", err))
	}

	return &Strategy{host: h, source: source, program: program}, nil
}

// Run invokes runStrategy(candles, settings) exactly once over the whole
// prepared series and returns the raw result map. The strategy receives the
// full candle array for lookback math; only reading up to its current
// simulated bar index is the strategy's own obligation, not enforced here.
//
// Any exception, panic, or deadline hit inside the interpreter is converted
// into a StrategyExecutionError carrying a bounded source preview. The
// deadline comes from ctx; callers derive it from the configured execution
// timeout.
func (s *Strategy) Run(ctx context.Context, candles []dto.Candle, settings map[string]interface{}) (result map[string]interface{}, err error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if s.host.maxCallStackSize > 0 {
		vm.SetMaxCallStackSize(s.host.maxCallStackSize)
	}

	for _, entry := range indicator.Registry() {
		if setErr := vm.Set(entry.Name, entry.Fn); setErr != nil {
			return nil, fmt.Errorf("failed to register indicator %s: %w", entry.Name, setErr)
		}
	}

	// Interrupt the interpreter when the request deadline passes. The
	// watcher goroutine always exits through done.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("execution deadline exceeded")
		case <-done:
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = s.executionError(fmt.Sprintf("runtime panic: %v", r))
		}
	}()

	if _, runErr := vm.RunProgram(s.program); runErr != nil {
		return nil, s.convertError(runErr)
	}

	entryPoint, ok := goja.AssertFunction(vm.Get("runStrategy"))
	if !ok {
		return nil, apperrors.NewStrategyInvalid("runStrategy is not a function")
	}

	value, callErr := entryPoint(goja.Undefined(), vm.ToValue(candles), vm.ToValue(settings))
	if callErr != nil {
		return nil, s.convertError(callErr)
	}

	exported, ok := value.Export().(map[string]interface{})
	if !ok {
		return nil, apperrors.NewStrategyInvalid("result is not an object")
	}
	if _, hasTrades := exported["trades"].([]interface{}); !hasTrades {
		return nil, apperrors.NewStrategyInvalid("result is missing trades")
	}

	return exported, nil
}

// SourcePreview returns the bounded source prefix used in diagnostics.
func (s *Strategy) SourcePreview() string {
	return apperrors.Preview(s.source, s.host.previewBytes)
}

func (s *Strategy) convertError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return s.executionError("execution deadline exceeded")
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return s.executionError(exception.Value().String())
	}

	return s.executionError(err.Error())
}

func (s *Strategy) executionError(message string) error {
	return apperrors.NewStrategyExecution(message, s.SourcePreview())
}
