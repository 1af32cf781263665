package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("customer not found")
	ErrLocalityNotFound = errors.New("locality not found")
)

// Customer is a buyer serviced by a tenant's field employees. Every
// customer sits in one locality of the same company.
type Customer struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	CompanyID  int64     `json:"company_id"`
	LocalityID int64     `json:"locality_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	CreatedBy  int64     `json:"created_by"`
	UpdatedBy  int64     `json:"updated_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// WithLocality is the list shape: customer plus its locality name.
type WithLocality struct {
	Customer
	LocalityName string `json:"locality_name"`
}

type RepositoryAPI interface {
	// Create verifies the locality belongs to the same tenant before the
	// insert commits.
	Create(c *Customer) error
	// CreateWithLocalityName resolves the locality by name inside the same
	// transaction, creating it when the tenant has no such locality yet.
	CreateWithLocalityName(c *Customer, localityName string) error
	GetAll(companyID int64) ([]WithLocality, error)
	GetByID(companyID, id int64) (*Customer, error)
	Update(c *Customer) error
	Delete(companyID, id int64) error
}
