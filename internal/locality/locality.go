package locality

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("locality not found")

// Locality is a sales territory inside one tenant. Customers reference it.
type Locality struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   int64     `json:"created_by"`
	UpdatedBy   int64     `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Locality) TableName() string { return "localities" }

type RepositoryAPI interface {
	Create(l *Locality) error
	GetAll(companyID int64) ([]*Locality, error)
	GetByID(companyID, id int64) (*Locality, error)
	Update(l *Locality) error
	Delete(companyID, id int64) error
}
