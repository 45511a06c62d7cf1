package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldbook/internal/services"
)

// PortfolioHandler serves the valued view of a user's gold holdings.
type PortfolioHandler struct {
	ledgerService services.LedgerServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ledgerService services.LedgerServicer) *PortfolioHandler {
	return &PortfolioHandler{ledgerService: ledgerService}
}

// GetPortfolio handles valuing the user's holdings
// @Summary     Get portfolio
// @Description Aggregate the user's transactions into positions and value them at the latest gold price
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioReport "Valued portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.ledgerService.GetPortfolio(c.Request.Context(), sess)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
