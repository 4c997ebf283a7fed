package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

// ShippingHandler serves shipping-rate lookups for the fixed destinations.
type ShippingHandler struct {
	service ports.ShippingService
}

func NewShippingHandler(service ports.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// GetRates handles POST /api/shipping-rates.
//
// Upstream failures never change the status code; they are reported in each
// destination's errors list.
//
// @Summary      Get shipping rates to the US and the UK
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        body  body      shippingRatesRequest  true  "Package weight (g), dimensions (cm) and optional postal codes"
// @Success      200   {object}  ports.ShippingRatesResult
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/shipping-rates [post]
func (h *ShippingHandler) GetRates(c echo.Context) error {
	var req shippingRatesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.service.GetRates(c.Request().Context(), ports.ShippingRatesInput{
		WeightG:    *req.Weight,
		WidthCm:    *req.Width,
		HeightCm:   *req.Height,
		DepthCm:    *req.Depth,
		USZip:      req.USZip,
		UKPostcode: req.UKPostcode,
	})

	return c.JSON(http.StatusOK, result)
}
