package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Product is a tenant catalog entry. UnitPrice is the current list price in
// the smallest currency unit; orders snapshot it at creation time, so later
// edits never touch existing orders.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   int64     `json:"unit_price"`
	Unit        string    `json:"unit"`
	CreatedBy   int64     `json:"created_by"`
	UpdatedBy   int64     `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type RepositoryAPI interface {
	Create(p *Product) error
	GetAll(companyID int64) ([]*Product, error)
	GetByID(companyID, id int64) (*Product, error)
	Update(p *Product) error
	Delete(companyID, id int64) error
}
