package models

import (
	"time"

	"goldbook/internal/uuid"

	"gorm.io/gorm"
)

// GoldPrice represents a spot price observation for one gram of gold.
// Observations are immutable, so there is no Base embed and no soft delete.
type GoldPrice struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PricePerGram int64     `gorm:"type:bigint;not null" json:"price_per_gram"`
	Source       string    `gorm:"not null;default:'manual'" json:"source"`
	RecordedAt   time.Time `gorm:"not null;index" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *GoldPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
