package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/pricefeed"
)

// priceService stores gold spot prices and serves the latest one as a feed.
type priceService struct {
	db *gorm.DB
}

// NewPriceService creates a new PriceServicer.
func NewPriceService(db *gorm.DB) PriceServicer {
	return &priceService{db: db}
}

// RecordPrices inserts price observations, skipping duplicates.
func (s *priceService) RecordPrices(ctx context.Context, prices []PriceEntry) (int, error) {
	if len(prices) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Prices array is empty")
	}

	count := 0
	for _, p := range prices {
		if p.PricePerGram <= 0 {
			return count, apperrors.WithField(apperrors.ErrValidation, "price_per_gram", "price_per_gram must be positive")
		}
		if p.RecordedAt.IsZero() {
			p.RecordedAt = time.Now()
		}
		source := strings.TrimSpace(p.Source)
		if source == "" {
			source = "manual"
		}

		gp := models.GoldPrice{
			PricePerGram: p.PricePerGram,
			Source:       source,
			RecordedAt:   p.RecordedAt.UTC(),
		}
		result := s.db.WithContext(ctx).
			Where("source = ? AND recorded_at = ?", gp.Source, gp.RecordedAt).
			FirstOrCreate(&gp)
		if result.Error != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected > 0 {
			count++
		}
	}

	return count, nil
}

// GetLatestPrice returns the most recent observation.
func (s *priceService) GetLatestPrice(ctx context.Context) (*models.GoldPrice, error) {
	var price models.GoldPrice
	if err := s.db.WithContext(ctx).Order("recorded_at DESC").First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPriceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &price, nil
}

// ListPrices returns paginated price history, newest first.
func (s *priceService) ListPrices(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.GoldPrice], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.WithContext(ctx).Model(&models.GoldPrice{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var prices []models.GoldPrice
	if err := s.db.WithContext(ctx).Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(prices, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Name returns the feed's display name.
func (s *priceService) Name() string { return "database" }

// CurrentPrice serves the latest stored price.
func (s *priceService) CurrentPrice(ctx context.Context) (pricefeed.Quote, bool, error) {
	p, err := s.GetLatestPrice(ctx)
	if errors.Is(err, apperrors.ErrPriceNotFound) {
		return pricefeed.Quote{}, false, nil
	}
	if err != nil {
		return pricefeed.Quote{}, false, err
	}
	return pricefeed.Quote{PricePerUnit: p.PricePerGram, Source: p.Source, RecordedAt: p.RecordedAt}, true, nil
}
