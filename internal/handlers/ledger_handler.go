package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldbook/internal/models"
	"goldbook/internal/services"
)

// LedgerHandler exposes raw transaction records to remote ledger clients.
// Unlike TransactionHandler it applies no sell policy.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// LedgerListResponse is the full record stream of a user.
type LedgerListResponse struct {
	Transactions   []models.Transaction `json:"transactions"`
	CorruptRecords int                  `json:"corrupt_records"`
}

// LedgerAppendResponse carries the ID assigned to an appended record.
type LedgerAppendResponse struct {
	ID          string             `json:"id"`
	Transaction models.Transaction `json:"transaction"`
}

// ListRecords handles listing every stored record of the user
// @Summary     List ledger records
// @Description List all of the user's transaction records, oldest first
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} LedgerListResponse "Transaction records"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /ledger/transactions [get]
func (h *LedgerHandler) ListRecords(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	listing, err := h.ledgerService.ListRecords(c.Request.Context(), sess)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txs := listing.Transactions
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, LedgerListResponse{Transactions: txs, CorruptRecords: listing.Corrupt})
}

// AppendRecord handles appending one record
// @Summary     Append ledger record
// @Description Append a transaction record on behalf of a remote ledger client
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.Transaction true "Transaction record"
// @Success     201 {object} LedgerAppendResponse "Record stored"
// @Failure     400 {object} ErrorResponse "Invalid record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /ledger/transactions [post]
func (h *LedgerHandler) AppendRecord(c *gin.Context) {
	sess, err := getSession(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	stored, err := h.ledgerService.AppendRecord(c.Request.Context(), sess, tx)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(sess.UserID, services.ActionAppendRecord, services.ResourceTransaction, stored.ID, c.ClientIP(),
		services.TransactionChanges(*stored))

	c.JSON(http.StatusCreated, LedgerAppendResponse{ID: stored.ID, Transaction: *stored})
}
