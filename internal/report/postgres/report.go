package postgres

import (
	"database/sql"

	"github.com/frahmantamala/salesops/internal/report"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SaveLog(l *report.Log) error {
	return r.db.Create(l).Error
}

func (r *Repository) OrderSnapshot(companyID, orderID int64) (*report.OrderSnapshot, error) {
	var snapshot report.OrderSnapshot
	err := r.db.Raw(`
		SELECT o.id AS order_id, c.name AS customer_name, e.name AS employee_name,
		       o.status, o.payment_status, o.total_amount, o.order_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN employees e ON e.id = o.employee_id
		WHERE o.id = ? AND o.company_id = ?
	`, orderID, companyID).Scan(&snapshot).Error
	if err != nil {
		return nil, err
	}
	if snapshot.OrderID == 0 {
		return nil, report.ErrOrderNotFound
	}

	err = r.db.Raw(`
		SELECT p.name AS product_name, d.quantity, d.unit_price, d.subtotal
		FROM order_details d
		JOIN products p ON p.id = d.product_id
		WHERE d.order_id = ?
		ORDER BY d.id ASC
	`, orderID).Scan(&snapshot.Items).Error
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *Repository) PaymentSnapshot(companyID, paymentID int64) (*report.PaymentSnapshot, error) {
	var snapshot report.PaymentSnapshot
	err := r.db.Raw(`
		SELECT p.id AS payment_id, p.order_id, c.name AS customer_name,
		       p.amount, p.method, p.status, p.updated_at AS paid_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		JOIN customers c ON c.id = o.customer_id
		WHERE p.id = ? AND p.company_id = ?
	`, paymentID, companyID).Scan(&snapshot).Error
	if err != nil {
		if err == sql.ErrNoRows || err == gorm.ErrRecordNotFound {
			return nil, report.ErrPaymentNotFound
		}
		return nil, err
	}
	if snapshot.PaymentID == 0 {
		return nil, report.ErrPaymentNotFound
	}
	return &snapshot, nil
}

func (r *Repository) GetLogs(companyID int64, limit, offset int) ([]report.Log, error) {
	var logs []report.Log
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}
