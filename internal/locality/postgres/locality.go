package postgres

import (
	"github.com/frahmantamala/salesops/internal/locality"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(l *locality.Locality) error {
	return r.db.Create(l).Error
}

func (r *Repository) GetAll(companyID int64) ([]*locality.Locality, error) {
	var localities []*locality.Locality
	err := r.db.Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&localities).Error
	return localities, err
}

func (r *Repository) GetByID(companyID, id int64) (*locality.Locality, error) {
	var l locality.Locality
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, locality.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Update(l *locality.Locality) error {
	res := r.db.Model(&locality.Locality{}).
		Where("id = ? AND company_id = ?", l.ID, l.CompanyID).
		Updates(map[string]interface{}{
			"name":        l.Name,
			"description": l.Description,
			"updated_by":  l.UpdatedBy,
			"updated_at":  l.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return locality.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(companyID, id int64) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&locality.Locality{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return locality.ErrNotFound
	}
	return nil
}
