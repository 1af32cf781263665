package employee

import (
	"errors"
	"time"
)

const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
)

var ErrNotFound = errors.New("employee not found")

// Employee is a field-sales account scoped to one company. Termination is a
// status flip, never a row delete, so order and attendance history keeps its
// author.
type Employee struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	PhotoKey     *string   `json:"-" gorm:"column:photo_key"`
	Status       string    `json:"status"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) IsActive() bool { return e.Status == StatusActive }

// Response is the employee shape handed to clients; the photo key is
// resolved to a URL by the service.
type Response struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	Create(e *Employee) error
	GetAll(companyID int64) ([]*Employee, error)
	GetByID(companyID, id int64) (*Employee, error)
	Update(e *Employee) error
	Terminate(companyID, id int64, at time.Time) error
}
