package postgres

import (
	"github.com/frahmantamala/salesops/internal/customer"
	"github.com/frahmantamala/salesops/internal/order"
	"github.com/frahmantamala/salesops/internal/product"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithItems reads each product's current price inside the transaction,
// computes subtotals and the order total server-side, and inserts order plus
// details together. Any miss rolls back everything.
func (r *Repository) CreateWithItems(o *order.Order, items []order.ItemInput) ([]order.Detail, error) {
	if len(items) == 0 {
		return nil, order.ErrNoItems
	}

	var details []order.Detail
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customer.Customer{}).
			Where("id = ? AND company_id = ?", o.CustomerID, o.CompanyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.ErrCustomerNotFound
		}

		var total int64
		details = make([]order.Detail, 0, len(items))
		for _, item := range items {
			var p product.Product
			err := tx.Where("id = ? AND company_id = ?", item.ProductID, o.CompanyID).
				First(&p).Error
			if err == gorm.ErrRecordNotFound {
				return order.ErrProductNotFound
			}
			if err != nil {
				return err
			}

			subtotal := item.Quantity * p.UnitPrice
			total += subtotal
			details = append(details, order.Detail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: p.UnitPrice,
				Subtotal:  subtotal,
			})
		}

		o.TotalAmount = total
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].OrderID = o.ID
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *Repository) GetAll(companyID int64) ([]order.WithCustomer, error) {
	var orders []order.WithCustomer
	err := r.db.Raw(`
		SELECT o.*, c.name AS customer_name
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.company_id = ?
		ORDER BY o.order_date DESC
	`, companyID).Scan(&orders).Error
	return orders, err
}

func (r *Repository) GetByID(companyID, id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repository) GetDetails(companyID, orderID int64) ([]order.DetailWithProduct, error) {
	var details []order.DetailWithProduct
	err := r.db.Raw(`
		SELECT d.*, p.name AS product_name
		FROM order_details d
		JOIN orders o ON o.id = d.order_id
		JOIN products p ON p.id = d.product_id
		WHERE d.order_id = ? AND o.company_id = ?
		ORDER BY d.id ASC
	`, orderID, companyID).Scan(&details).Error
	return details, err
}

func (r *Repository) GetByCustomer(companyID, customerID int64) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.Where("company_id = ? AND customer_id = ?", companyID, customerID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// OutstandingDue is total ordered minus total approved payments. Negative
// overpayment clamps to zero.
func (r *Repository) OutstandingDue(companyID, customerID int64) (int64, error) {
	var due int64
	err := r.db.Raw(`
		SELECT COALESCE((
			SELECT SUM(o.total_amount) FROM orders o
			WHERE o.company_id = ? AND o.customer_id = ?
		), 0) - COALESCE((
			SELECT SUM(p.amount) FROM payments p
			JOIN orders o ON o.id = p.order_id
			WHERE o.company_id = ? AND o.customer_id = ? AND p.status = 'APPROVED'
		), 0)
	`, companyID, customerID, companyID, customerID).Scan(&due).Error
	if err != nil {
		return 0, err
	}
	if due < 0 {
		due = 0
	}
	return due, nil
}
