package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/logger"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/portfolio"
	"goldbook/internal/pricefeed"
)

// pendingID stands in for the ID of a transaction that has not been stored
// yet. It sorts after every generated ID so the candidate replays last
// among records of its date.
const pendingID = "~pending"

const (
	maxAssetTypeLen   = 100
	maxNotesLen       = 1000
	maxDescriptionLen = 500
	maxLocationLen    = 255
	maxCertificateLen = 100
)

// ledgerService records gold transactions and values holdings.
type ledgerService struct {
	gateway  *ledger.Gateway
	prices   pricefeed.Feed
	policy   portfolio.SellPolicy
	currency string
	now      func() time.Time
	log      *zap.SugaredLogger
}

// LedgerOption configures the ledger service.
type LedgerOption func(*ledgerService)

// WithSellPolicy sets the policy applied to new sells. Reads always
// tolerate shortfalls and report them as warnings.
func WithSellPolicy(p portfolio.SellPolicy) LedgerOption {
	return func(s *ledgerService) { s.policy = p }
}

// WithCurrency sets the ISO code reported with portfolio values.
func WithCurrency(code string) LedgerOption {
	return func(s *ledgerService) {
		if code != "" {
			s.currency = strings.ToUpper(code)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) { s.now = now }
}

// NewLedgerService creates a new LedgerServicer. prices may be nil, in
// which case every portfolio is valued at zero.
func NewLedgerService(gateway *ledger.Gateway, prices pricefeed.Feed, opts ...LedgerOption) LedgerServicer {
	s := &ledgerService{
		gateway:  gateway,
		prices:   prices,
		policy:   portfolio.SellPolicyReject,
		currency: "USD",
		now:      time.Now,
		log:      logger.Named("ledger_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordTransaction validates a buy or sell and appends it to the ledger.
func (s *ledgerService) RecordTransaction(ctx context.Context, sess identity.Session, in RecordInput) (*RecordResult, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateRecord(in, s.now()); err != nil {
		return nil, err
	}

	tx := models.NewTransaction(sess.UserID, in.Type, in.AssetType, in.Weight, in.PricePerUnit, in.Date)
	if in.Purity != nil {
		tx.Purity = *in.Purity
	} else if tx.Type == models.TransactionTypeBuy {
		tx.Purity = models.DefaultPurity
	}
	tx.Notes = strings.TrimSpace(in.Notes)
	tx.Description = strings.TrimSpace(in.Description)
	tx.StorageLocation = strings.TrimSpace(in.StorageLocation)
	tx.CertificateNumber = strings.TrimSpace(in.CertificateNumber)
	tx.CreatedAt = s.now().UTC()

	if tx.Type == models.TransactionTypeSell {
		if err := s.checkSell(ctx, sess, tx); err != nil {
			return nil, err
		}
	}

	receipt, err := s.gateway.Append(ctx, sess, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = receipt.ID

	return &RecordResult{Transaction: tx, Source: receipt.Source, Fallback: receipt.Fallback}, nil
}

// checkSell replays the stored stream with the candidate sell and fails if
// the candidate introduces a shortfall. Shortfalls already in the history
// do not block new sells.
func (s *ledgerService) checkSell(ctx context.Context, sess identity.Session, tx models.Transaction) error {
	if s.policy == portfolio.SellPolicyAllowNegative {
		return nil
	}

	listing, err := s.gateway.ListByUser(ctx, sess)
	if err != nil {
		return err
	}

	before, err := portfolio.Aggregate(listing.Transactions, portfolio.SellPolicyAllowNegative)
	if err != nil {
		return err
	}

	tx.ID = pendingID
	candidate := append(append(make([]models.Transaction, 0, len(listing.Transactions)+1), listing.Transactions...), tx)
	after, err := portfolio.Aggregate(candidate, portfolio.SellPolicyAllowNegative)
	if err != nil {
		return err
	}

	if len(after.Shortfalls) <= len(before.Shortfalls) {
		return nil
	}

	for _, sf := range after.Shortfalls {
		if sf.TransactionID == pendingID {
			return apperrors.WithField(apperrors.ErrInsufficientPosition, "weight",
				fmt.Sprintf("cannot sell %sg of %s: only %sg held on %s",
					sf.Requested.String(), sf.AssetType, decimal.Max(sf.Held, decimal.Zero).String(), tx.Date.Format(time.DateOnly)))
		}
	}
	return apperrors.WithField(apperrors.ErrInsufficientPosition, "date",
		fmt.Sprintf("selling %gg of %s on %s would leave a later sale uncovered",
			tx.Weight, tx.AssetType, tx.Date.Format(time.DateOnly)))
}

// GetPortfolio values the user's holdings at the current price.
func (s *ledgerService) GetPortfolio(ctx context.Context, sess identity.Session) (*PortfolioReport, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	listing, err := s.gateway.ListByUser(ctx, sess)
	if err != nil {
		return nil, err
	}

	agg, err := portfolio.Aggregate(listing.Transactions, portfolio.SellPolicyAllowNegative)
	if err != nil {
		return nil, err
	}

	report := &PortfolioReport{
		Currency:       s.currency,
		Source:         listing.Source,
		Fallback:       listing.Fallback,
		CorruptRecords: listing.Corrupt,
		Warnings:       []string{},
	}

	if listing.Fallback {
		report.Warnings = append(report.Warnings, "remote store unavailable; showing locally stored transactions")
	}
	if listing.Corrupt > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d stored transaction(s) could not be read and were skipped", listing.Corrupt))
	}
	for _, sf := range agg.Shortfalls {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("sale %s of %sg %s exceeded the %sg held", sf.TransactionID, sf.Requested.String(), sf.AssetType, sf.Held.String()))
	}

	quote, ok := s.currentPrice(ctx, report)
	report.Summary = portfolio.Value(agg, quote.PricePerUnit)
	report.Summary.PriceAvailable = ok
	report.PriceSource = quote.Source
	return report, nil
}

func (s *ledgerService) currentPrice(ctx context.Context, report *PortfolioReport) (pricefeed.Quote, bool) {
	if s.prices == nil {
		report.Warnings = append(report.Warnings, "no gold price available; holdings valued at zero")
		return pricefeed.Quote{}, false
	}
	q, ok, err := s.prices.CurrentPrice(ctx)
	if err != nil {
		s.log.Warnw("price feed failed", "feed", s.prices.Name(), "error", err)
	}
	if !ok {
		report.Warnings = append(report.Warnings, "no gold price available; holdings valued at zero")
		return pricefeed.Quote{}, false
	}
	return q, true
}

// GetTransactionHistory lists the user's transactions, most recent first.
func (s *ledgerService) GetTransactionHistory(ctx context.Context, sess identity.Session, filter HistoryFilter, page pagination.PageRequest) (*History, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	listing, err := s.gateway.ListByUser(ctx, sess)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Transaction, 0, len(listing.Transactions))
	for _, tx := range listing.Transactions {
		if filter.matches(tx) {
			matched = append(matched, tx)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[j].Before(&matched[i]) })

	return &History{
		PageResponse:   pagination.Slice(matched, page),
		Source:         listing.Source,
		Fallback:       listing.Fallback,
		CorruptRecords: listing.Corrupt,
	}, nil
}

func (f HistoryFilter) matches(tx models.Transaction) bool {
	if f.AssetType != "" && tx.AssetType != strings.TrimSpace(f.AssetType) {
		return false
	}
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.FromDate != nil && tx.Date.Before(models.CalendarDate(*f.FromDate)) {
		return false
	}
	if f.ToDate != nil && tx.Date.After(models.CalendarDate(*f.ToDate)) {
		return false
	}
	return true
}

// AppendRecord stores a record submitted by a remote client. The client
// has already applied its sell policy, so only record invariants are checked.
func (s *ledgerService) AppendRecord(ctx context.Context, sess identity.Session, tx models.Transaction) (*models.Transaction, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	tx.UserID = sess.UserID
	tx.AssetType = strings.TrimSpace(tx.AssetType)
	tx.Date = models.CalendarDate(tx.Date)
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now().UTC()
	}

	receipt, err := s.gateway.Append(ctx, sess, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = receipt.ID
	return &tx, nil
}

// ListRecords returns every readable record of the user, oldest first.
func (s *ledgerService) ListRecords(ctx context.Context, sess identity.Session) (*ledger.Listing, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	return s.gateway.ListByUser(ctx, sess)
}

func validateRecord(in RecordInput, now time.Time) error {
	switch {
	case !in.Type.Valid():
		return apperrors.WithField(apperrors.ErrValidation, "type", "type must be buy or sell")
	case strings.TrimSpace(in.AssetType) == "":
		return apperrors.WithField(apperrors.ErrValidation, "asset_type", "asset_type is required")
	case len(strings.TrimSpace(in.AssetType)) > maxAssetTypeLen:
		return apperrors.WithField(apperrors.ErrValidation, "asset_type",
			fmt.Sprintf("asset_type must be at most %d characters", maxAssetTypeLen))
	case math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) || !(models.NormalizeWeight(in.Weight) > 0):
		return apperrors.WithField(apperrors.ErrValidation, "weight", "weight must be greater than zero")
	case in.PricePerUnit < 0:
		return apperrors.WithField(apperrors.ErrValidation, "price_per_unit", "price_per_unit must not be negative")
	case in.Date.IsZero():
		return apperrors.WithField(apperrors.ErrValidation, "date", "date is required")
	case models.CalendarDate(in.Date).After(models.CalendarDate(now).AddDate(0, 0, 1)):
		return apperrors.WithField(apperrors.ErrValidation, "date", "date must not be in the future")
	case in.Purity != nil && (!(*in.Purity > 0) || *in.Purity > 1):
		return apperrors.WithField(apperrors.ErrValidation, "purity", "purity must be greater than 0 and at most 1")
	case len(in.Notes) > maxNotesLen:
		return apperrors.WithField(apperrors.ErrValidation, "notes", fmt.Sprintf("notes must be at most %d characters", maxNotesLen))
	case len(in.Description) > maxDescriptionLen:
		return apperrors.WithField(apperrors.ErrValidation, "description",
			fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	case len(in.StorageLocation) > maxLocationLen:
		return apperrors.WithField(apperrors.ErrValidation, "storage_location",
			fmt.Sprintf("storage_location must be at most %d characters", maxLocationLen))
	case len(in.CertificateNumber) > maxCertificateLen:
		return apperrors.WithField(apperrors.ErrValidation, "certificate_number",
			fmt.Sprintf("certificate_number must be at most %d characters", maxCertificateLen))
	}
	return nil
}
