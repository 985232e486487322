package http

import (
	"context"
	"errors"
	"net/http"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/service"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/middleware"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, log *logger.Logger, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Use(echoMiddleware.CORS())
	h.echo.Use(echoMiddleware.Recover())
	h.echo.Use(middleware.NewRateLimiterMiddleware(h.cfg.API.RequestsPerSecond, h.cfg.API.RequestBurst))

	base := h.echo.Group("/api")
	h.SetupBacktest(base)
	h.SetupCandles(base)
}

// writeError converts the error taxonomy into a structured JSON body. No
// failure escapes uncaught past this point.
func (h *HttpAPIHandler) writeError(c echo.Context, err error) error {
	status := apperrors.HTTPStatus(err)
	body := dto.ErrorResponse{Code: status, Error: err.Error()}

	var execution *apperrors.StrategyExecutionError
	if errors.As(err, &execution) {
		body.Preview = execution.SourcePreview
	}

	var configErr *apperrors.ConfigurationError
	if errors.As(err, &configErr) {
		// The response stays generic; the missing key goes to logs only.
		h.log.Error("request failed on missing configuration",
			logger.StringField("key", configErr.Key),
		)
	}

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "request failed", logger.ErrorField(err))
	}
	return c.JSON(status, body)
}
