package company

import (
	"errors"
	"time"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

var (
	ErrNotFound       = errors.New("company not found")
	ErrDuplicateAdmin = errors.New("admin username or email already exists")
	ErrInvalidStatus  = errors.New("status must be ACTIVE or INACTIVE")
)

// Company is a tenant. Every admin, employee and business record hangs off
// one company row, and created_by pins it to the superadmin who made it.
type Company struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) IsActive() bool { return c.Status == StatusActive }

// Admin is a tenant operator account. The bootstrap admin is created in the
// same transaction as its company.
type Admin struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Admin) TableName() string { return "admins" }

// CompanyWithAdmins is the list-view shape for the superadmin dashboard.
type CompanyWithAdmins struct {
	Company
	Admins []Admin `json:"admins"`
}

type RepositoryAPI interface {
	CreateWithAdmin(c *Company, a *Admin) error
	GetByID(superadminID, id int64) (*Company, error)
	GetAllWithAdmins(superadminID int64) ([]CompanyWithAdmins, error)
	Update(c *Company) error
	Delete(superadminID, id int64) error
}
