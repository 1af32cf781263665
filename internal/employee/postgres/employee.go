package postgres

import (
	"time"

	"github.com/frahmantamala/salesops/internal/employee"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(e *employee.Employee) error {
	return r.db.Create(e).Error
}

func (r *Repository) GetAll(companyID int64) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&employees).Error
	return employees, err
}

func (r *Repository) GetByID(companyID, id int64) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Update(e *employee.Employee) error {
	res := r.db.Model(&employee.Employee{}).
		Where("id = ? AND company_id = ?", e.ID, e.CompanyID).
		Updates(map[string]interface{}{
			"name":          e.Name,
			"phone":         e.Phone,
			"email":         e.Email,
			"address":       e.Address,
			"password_hash": e.PasswordHash,
			"updated_at":    e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

// Terminate flips status and clears the photo key. The row stays so orders
// and attendance keep a valid author.
func (r *Repository) Terminate(companyID, id int64, at time.Time) error {
	res := r.db.Model(&employee.Employee{}).
		Where("id = ? AND company_id = ? AND status = ?", id, companyID, employee.StatusActive).
		Updates(map[string]interface{}{
			"status":     employee.StatusTerminated,
			"photo_key":  nil,
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}
