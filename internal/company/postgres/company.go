package postgres

import (
	"strings"

	"github.com/frahmantamala/salesops/internal/company"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithAdmin inserts the company and its bootstrap admin in one
// transaction. A unique violation on the admin's username or email rolls
// back both rows.
func (r *Repository) CreateWithAdmin(c *company.Company, a *company.Admin) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&company.Admin{}).
			Where("username = ? OR email = ?", a.Username, a.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return company.ErrDuplicateAdmin
		}

		if err := tx.Create(c).Error; err != nil {
			return err
		}

		a.CompanyID = c.ID
		return tx.Create(a).Error
	})
	if err != nil && isUniqueViolation(err) {
		return company.ErrDuplicateAdmin
	}
	return err
}

func (r *Repository) GetByID(superadminID, id int64) (*company.Company, error) {
	var c company.Company
	err := r.db.Where("id = ? AND created_by = ?", id, superadminID).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, company.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetAllWithAdmins(superadminID int64) ([]company.CompanyWithAdmins, error) {
	var companies []company.Company
	if err := r.db.Where("created_by = ?", superadminID).
		Order("created_at DESC").
		Find(&companies).Error; err != nil {
		return nil, err
	}

	if len(companies) == 0 {
		return []company.CompanyWithAdmins{}, nil
	}

	ids := make([]int64, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
	}

	var admins []company.Admin
	if err := r.db.Where("company_id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, err
	}

	byCompany := make(map[int64][]company.Admin, len(companies))
	for _, a := range admins {
		byCompany[a.CompanyID] = append(byCompany[a.CompanyID], a)
	}

	result := make([]company.CompanyWithAdmins, len(companies))
	for i, c := range companies {
		result[i] = company.CompanyWithAdmins{Company: c, Admins: byCompany[c.ID]}
	}
	return result, nil
}

func (r *Repository) Update(c *company.Company) error {
	res := r.db.Model(&company.Company{}).
		Where("id = ? AND created_by = ?", c.ID, c.CreatedBy).
		Updates(map[string]interface{}{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"address":    c.Address,
			"status":     c.Status,
			"updated_at": c.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return company.ErrNotFound
	}
	return nil
}

// Delete removes the company and its admins. Business rows stay behind
// keyed by the dead company_id; nothing can reach them once logins stop.
func (r *Repository) Delete(superadminID, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by = ?", id, superadminID).
			Delete(&company.Company{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return company.ErrNotFound
		}
		return tx.Where("company_id = ?", id).Delete(&company.Admin{}).Error
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
