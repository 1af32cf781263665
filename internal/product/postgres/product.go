package postgres

import (
	"github.com/frahmantamala/salesops/internal/product"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(p *product.Product) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetAll(companyID int64) ([]*product.Product, error) {
	var products []*product.Product
	err := r.db.Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *Repository) GetByID(companyID, id int64) (*product.Product, error) {
	var p product.Product
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *product.Product) error {
	res := r.db.Model(&product.Product{}).
		Where("id = ? AND company_id = ?", p.ID, p.CompanyID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"unit_price":  p.UnitPrice,
			"unit":        p.Unit,
			"updated_by":  p.UpdatedBy,
			"updated_at":  p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(companyID, id int64) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&product.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return product.ErrNotFound
	}
	return nil
}
