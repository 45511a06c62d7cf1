package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goldbook/internal/pagination"
	"goldbook/internal/services"
)

// PriceHandler serves gold spot prices and accepts them from the pipeline.
type PriceHandler struct {
	priceService services.PriceServicer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService services.PriceServicer) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// RecordPricesRequest represents the request payload for bulk price recording.
type RecordPricesRequest struct {
	Prices []RecordPriceEntry `json:"prices" binding:"required,min=1,dive"`
}

// RecordPriceEntry is one observation in cents per gram.
type RecordPriceEntry struct {
	PricePerGram int64     `json:"price_per_gram" binding:"required,gt=0"`
	Source       string    `json:"source" binding:"max=50"`
	RecordedAt   time.Time `json:"recorded_at" binding:"required"`
}

// GetLatestPrice handles retrieving the most recent gold price
// @Summary     Latest gold price
// @Description Get the most recently recorded gold price per gram
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]models.GoldPrice "Latest price"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No price recorded"
// @Router      /prices/latest [get]
func (h *PriceHandler) GetLatestPrice(c *gin.Context) {
	price, err := h.priceService.GetLatestPrice(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": price})
}

// ListPrices handles retrieving gold price history
// @Summary     Gold price history
// @Description Get recorded gold prices, newest first (paginated)
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.GoldPrice] "Paginated prices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /prices [get]
func (h *PriceHandler) ListPrices(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.priceService.ListPrices(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordPrices handles bulk gold price recording.
// @Summary     Record prices
// @Description Bulk record gold prices (pipeline endpoint)
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body RecordPricesRequest true "Price entries"
// @Success     200 {object} map[string]int "Prices recorded count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/prices [post]
func (h *PriceHandler) RecordPrices(c *gin.Context) {
	var req RecordPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	entries := make([]services.PriceEntry, len(req.Prices))
	for i, p := range req.Prices {
		entries[i] = services.PriceEntry{
			PricePerGram: p.PricePerGram,
			Source:       p.Source,
			RecordedAt:   p.RecordedAt,
		}
	}

	count, err := h.priceService.RecordPrices(c.Request.Context(), entries)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices_recorded": count})
}
