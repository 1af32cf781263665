package postgres

import (
	"time"

	"github.com/frahmantamala/salesops/internal/customer"
	"github.com/frahmantamala/salesops/internal/locality"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func localityBelongs(tx *gorm.DB, companyID, localityID int64) (bool, error) {
	var count int64
	err := tx.Model(&locality.Locality{}).
		Where("id = ? AND company_id = ?", localityID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(c *customer.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := localityBelongs(tx, c.CompanyID, c.LocalityID)
		if err != nil {
			return err
		}
		if !ok {
			return customer.ErrLocalityNotFound
		}
		return tx.Create(c).Error
	})
}

// CreateWithLocalityName resolves or creates the named locality and inserts
// the customer, all in one transaction.
func (r *Repository) CreateWithLocalityName(c *customer.Customer, localityName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var l locality.Locality
		err := tx.Where("company_id = ? AND name = ?", c.CompanyID, localityName).
			First(&l).Error
		if err == gorm.ErrRecordNotFound {
			now := time.Now()
			l = locality.Locality{
				CompanyID: c.CompanyID,
				Name:      localityName,
				CreatedBy: c.CreatedBy,
				UpdatedBy: c.CreatedBy,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		c.LocalityID = l.ID
		return tx.Create(c).Error
	})
}

func (r *Repository) GetAll(companyID int64) ([]customer.WithLocality, error) {
	var customers []customer.WithLocality
	err := r.db.Raw(`
		SELECT c.*, l.name AS locality_name
		FROM customers c
		JOIN localities l ON l.id = c.locality_id
		WHERE c.company_id = ?
		ORDER BY c.created_at DESC
	`, companyID).Scan(&customers).Error
	return customers, err
}

func (r *Repository) GetByID(companyID, id int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(c *customer.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := localityBelongs(tx, c.CompanyID, c.LocalityID)
		if err != nil {
			return err
		}
		if !ok {
			return customer.ErrLocalityNotFound
		}

		res := tx.Model(&customer.Customer{}).
			Where("id = ? AND company_id = ?", c.ID, c.CompanyID).
			Updates(map[string]interface{}{
				"locality_id": c.LocalityID,
				"name":        c.Name,
				"phone":       c.Phone,
				"email":       c.Email,
				"address":     c.Address,
				"updated_by":  c.UpdatedBy,
				"updated_at":  c.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return customer.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) Delete(companyID, id int64) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&customer.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return customer.ErrNotFound
	}
	return nil
}
