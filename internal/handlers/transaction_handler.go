package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/services"
	"goldbook/internal/validator"
)

// TransactionHandler handles gold buy and sell requests.
type TransactionHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, auditService: auditService}
}

// RecordTransactionRequest represents the request payload for a buy or sell.
// Weight is grams, price_per_unit is cents per gram. Only the purity and
// the descriptive fields may be left out.
type RecordTransactionRequest struct {
	Type              string   `json:"type" binding:"required,trade_type"`
	AssetType         string   `json:"asset_type" binding:"required"`
	Weight            float64  `json:"weight"`
	PricePerUnit      *int64   `json:"price_per_unit" binding:"required,min=0"`
	Date              string   `json:"date" binding:"required,calendar_date"`
	Purity            *float64 `json:"purity"`
	Notes             string   `json:"notes"`
	Description       string   `json:"description"`
	StorageLocation   string   `json:"storage_location"`
	CertificateNumber string   `json:"certificate_number"`
}

// RecordTransaction handles recording a gold buy or sell
// @Summary     Record a transaction
// @Description Record a gold purchase or sale. Sells beyond the weight held are rejected.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} services.RecordResult "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Insufficient position"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions [post]
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	txType, _ := models.ParseTransactionType(req.Type)
	date, err := validator.ParseCalendarDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithField(apperrors.ErrValidation, "date", err.Error()))
		return
	}

	result, err := h.ledgerService.RecordTransaction(c.Request.Context(), sess, services.RecordInput{
		Type:              txType,
		AssetType:         req.AssetType,
		Weight:            req.Weight,
		PricePerUnit:      *req.PricePerUnit,
		Date:              date,
		Purity:            req.Purity,
		Notes:             req.Notes,
		Description:       req.Description,
		StorageLocation:   req.StorageLocation,
		CertificateNumber: req.CertificateNumber,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := services.TransactionChanges(result.Transaction)
	changes["source"] = result.Source
	changes["fallback"] = result.Fallback
	h.auditService.Log(sess.UserID, services.ActionRecordTransaction, services.ResourceTransaction,
		result.Transaction.ID, c.ClientIP(), changes)

	c.JSON(http.StatusCreated, result)
}

// GetTransactionHistory handles listing the user's transactions
// @Summary     Get transaction history
// @Description Get a paginated list of the user's gold transactions, most recent first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       asset_type query string false "Filter by asset type"
// @Param       type       query string false "Filter by transaction type (buy, sell)"
// @Param       from_date  query string false "Filter by start date (YYYY-MM-DD or RFC3339)"
// @Param       to_date    query string false "Filter by end date (YYYY-MM-DD or RFC3339)"
// @Success     200 {object} services.History "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactionHistory(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	filter, err := parseHistoryFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	history, err := h.ledgerService.GetTransactionHistory(c.Request.Context(), sess, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func parseHistoryFilter(c *gin.Context) (services.HistoryFilter, error) {
	filter := services.HistoryFilter{AssetType: c.Query("asset_type")}

	if v := c.Query("from_date"); v != "" {
		t, err := validator.ParseCalendarDate(v)
		if err != nil {
			return filter, apperrors.WithField(apperrors.ErrInvalidInput, "from_date", "invalid from_date format, use YYYY-MM-DD or RFC3339")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := validator.ParseCalendarDate(v)
		if err != nil {
			return filter, apperrors.WithField(apperrors.ErrInvalidInput, "to_date", "invalid to_date format, use YYYY-MM-DD or RFC3339")
		}
		filter.ToDate = &t
	}

	if v := c.Query("type"); v != "" {
		txType, ok := models.ParseTransactionType(v)
		if !ok {
			return filter, apperrors.WithField(apperrors.ErrInvalidInput, "type", "invalid type, must be buy or sell")
		}
		filter.Type = &txType
	}

	return filter, nil
}
