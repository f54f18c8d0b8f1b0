package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry offered by a seller.
type Product struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name               string          `json:"name" validate:"required,min=3,max=100"`
	Brand              string          `json:"brand" validate:"omitempty,max=100"`
	Image              string          `json:"image" validate:"omitempty,max=500"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(12,2)" validate:"required"`
	DiscountPrice      decimal.Decimal `json:"discount_price" gorm:"type:decimal(12,2)"`
	DiscountPercentage int             `json:"discount_percentage" validate:"gte=0,lte=100"`
	DiscountStartDate  *time.Time      `json:"discount_start_date"`
	DiscountEndDate    *time.Time      `json:"discount_end_date"`
	Category           string          `json:"category" validate:"required,max=100"`
	Subcategory        string          `json:"subcategory" validate:"omitempty,max=100"`
	SellerID           string          `json:"seller_id" gorm:"index;type:varchar(36)"`
	Rating             float64         `json:"rating" validate:"gte=0,lte=5"`
	NumReviews         int             `json:"num_reviews" validate:"gte=0"`
	Stock              int             `json:"stock" validate:"gte=0"`
	IsPrime            bool            `json:"is_prime"`
	Description        string          `json:"description" validate:"omitempty,max=500"`
	PurchaseCount      int             `json:"purchase_count"`
	IsActive           bool            `json:"is_active" gorm:"default:true"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// EffectivePriceAt returns the unit price charged for the product at the
// given instant. A percentage discount wins while its window is active
// (bounds inclusive); otherwise a positive flat discount price applies;
// otherwise the list price. Callers pass "now" explicitly so results are
// reproducible for a fixed instant.
func (p *Product) EffectivePriceAt(now time.Time) decimal.Decimal {
	if p.IsOnDiscountAt(now) {
		pct := decimal.NewFromInt(int64(p.DiscountPercentage)).Div(decimal.NewFromInt(100))
		return p.Price.Mul(decimal.NewFromInt(1).Sub(pct))
	}
	if p.DiscountPrice.IsPositive() {
		return p.DiscountPrice
	}
	return p.Price
}

// IsOnDiscountAt reports whether the product's percentage-discount window
// is active at the given instant. A product with only a flat discount
// price is not considered "on discount".
func (p *Product) IsOnDiscountAt(now time.Time) bool {
	return p.DiscountPercentage > 0 &&
		p.DiscountStartDate != nil &&
		p.DiscountEndDate != nil &&
		!now.Before(*p.DiscountStartDate) &&
		!now.After(*p.DiscountEndDate)
}
