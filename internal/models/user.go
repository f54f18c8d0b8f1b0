package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User roles. Sellers may additionally manage products; admins may not
// change their own role.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Address is a value object embedded in User and snapshotted on orders.
type Address struct {
	Street  string `json:"street" validate:"omitempty,max=200"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=20"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

// User represents a user of the marketplace.
type User struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string          `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email        string          `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password     string          `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role         string          `json:"role" gorm:"type:varchar(20);default:buyer" validate:"omitempty,oneof=buyer seller admin"`
	Avatar       string          `json:"avatar" validate:"omitempty,max=500"`
	Phone        string          `json:"phone" validate:"omitempty,max=30"`
	Address      Address         `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	SellerRating float64         `json:"seller_rating" validate:"gte=0,lte=5"`
	TotalSales   decimal.Decimal `json:"total_sales" gorm:"type:decimal(12,2)"`
	gorm.Model   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsSeller reports whether the user may manage products.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}
