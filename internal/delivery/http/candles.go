package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupCandles(base *echo.Group) {
	candleGroup := base.Group("/candles")
	candleGroup.GET("", h.listCandles)
	candleGroup.POST("/upload", h.uploadCandles)
}

func (h *HttpAPIHandler) listCandles(c echo.Context) error {
	ctx := c.Request().Context()

	marketType := c.QueryParam("market_type")
	if marketType == "" {
		marketType = dto.MarketTypeFutures
	}

	symbols, err := h.service.CandleService.List(ctx, marketType)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", map[string]interface{}{
		"market_type": marketType,
		"symbols":     symbols,
	}))
}

func (h *HttpAPIHandler) uploadCandles(c echo.Context) error {
	ctx := c.Request().Context()

	marketType := c.FormValue("market_type")
	symbol := c.FormValue("symbol")
	if marketType == "" || symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("market_type and symbol are required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("candle file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("failed to read uploaded file"))
	}
	defer file.Close()

	if err := h.service.CandleService.Upload(ctx, marketType, symbol, file); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("candle file stored", nil))
}
