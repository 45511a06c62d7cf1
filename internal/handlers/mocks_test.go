package handlers

import (
	"context"

	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/pricefeed"
	"goldbook/internal/services"
)

type mockLedgerService struct {
	recordTransactionFn     func(ctx context.Context, sess identity.Session, in services.RecordInput) (*services.RecordResult, error)
	getPortfolioFn          func(ctx context.Context, sess identity.Session) (*services.PortfolioReport, error)
	getTransactionHistoryFn func(ctx context.Context, sess identity.Session, filter services.HistoryFilter, page pagination.PageRequest) (*services.History, error)
	appendRecordFn          func(ctx context.Context, sess identity.Session, tx models.Transaction) (*models.Transaction, error)
	listRecordsFn           func(ctx context.Context, sess identity.Session) (*ledger.Listing, error)
}

func (m *mockLedgerService) RecordTransaction(ctx context.Context, sess identity.Session, in services.RecordInput) (*services.RecordResult, error) {
	if m.recordTransactionFn != nil {
		return m.recordTransactionFn(ctx, sess, in)
	}
	return &services.RecordResult{}, nil
}

func (m *mockLedgerService) GetPortfolio(ctx context.Context, sess identity.Session) (*services.PortfolioReport, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(ctx, sess)
	}
	return &services.PortfolioReport{}, nil
}

func (m *mockLedgerService) GetTransactionHistory(ctx context.Context, sess identity.Session, filter services.HistoryFilter, page pagination.PageRequest) (*services.History, error) {
	if m.getTransactionHistoryFn != nil {
		return m.getTransactionHistoryFn(ctx, sess, filter, page)
	}
	return &services.History{}, nil
}

func (m *mockLedgerService) AppendRecord(ctx context.Context, sess identity.Session, tx models.Transaction) (*models.Transaction, error) {
	if m.appendRecordFn != nil {
		return m.appendRecordFn(ctx, sess, tx)
	}
	return &tx, nil
}

func (m *mockLedgerService) ListRecords(ctx context.Context, sess identity.Session) (*ledger.Listing, error) {
	if m.listRecordsFn != nil {
		return m.listRecordsFn(ctx, sess)
	}
	return &ledger.Listing{}, nil
}

type mockPriceService struct {
	recordPricesFn   func(ctx context.Context, prices []services.PriceEntry) (int, error)
	getLatestPriceFn func(ctx context.Context) (*models.GoldPrice, error)
	listPricesFn     func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.GoldPrice], error)
}

func (m *mockPriceService) RecordPrices(ctx context.Context, prices []services.PriceEntry) (int, error) {
	if m.recordPricesFn != nil {
		return m.recordPricesFn(ctx, prices)
	}
	return len(prices), nil
}

func (m *mockPriceService) GetLatestPrice(ctx context.Context) (*models.GoldPrice, error) {
	if m.getLatestPriceFn != nil {
		return m.getLatestPriceFn(ctx)
	}
	return &models.GoldPrice{}, nil
}

func (m *mockPriceService) ListPrices(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.GoldPrice], error) {
	if m.listPricesFn != nil {
		return m.listPricesFn(ctx, page)
	}
	result := pagination.NewPageResponse[models.GoldPrice](nil, 1, 20, 0)
	return &result, nil
}

func (m *mockPriceService) Name() string { return "mock" }

func (m *mockPriceService) CurrentPrice(context.Context) (pricefeed.Quote, bool, error) {
	return pricefeed.Quote{}, false, nil
}
