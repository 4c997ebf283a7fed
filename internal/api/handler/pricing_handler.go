package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

// PricingHandler serves the sell-price calculator and the exchange rate it uses.
type PricingHandler struct {
	service ports.PricingService
}

func NewPricingHandler(service ports.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// Quote handles POST /api/price.
//
// @Summary      Calculate the sell price for a target profit
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      priceRequest  true  "Cost, shipping fee (JPY), platform fee and target profit (%)"
// @Success      200   {object}  priceQuoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/price [post]
func (h *PricingHandler) Quote(c echo.Context) error {
	var req priceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// ErrRatesExceed100 is mapped to 422 by the central error handler.
	quote, err := h.service.Quote(c.Request().Context(), domain.PriceInput{
		CostPrice:        *req.CostPrice,
		ShippingFee:      *req.ShippingFee,
		FeePercent:       *req.FeePercent,
		TargetProfitRate: *req.TargetProfitRate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPriceQuoteResponse(quote))
}

// ExchangeRate handles GET /api/exchange-rate.
//
// @Summary      Current JPY per USD rate
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  exchangeRateResponse
// @Router       /api/exchange-rate [get]
func (h *PricingHandler) ExchangeRate(c echo.Context) error {
	rate := h.service.CurrentRate(c.Request().Context())
	return c.JSON(http.StatusOK, exchangeRateResponse{
		Rate:   rate.JPYPerUSD,
		Source: rate.Source,
	})
}
