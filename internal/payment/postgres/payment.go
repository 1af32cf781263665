package postgres

import (
	"time"

	"github.com/frahmantamala/salesops/internal/order"
	"github.com/frahmantamala/salesops/internal/payment"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateWithLog(p *payment.Payment, l *payment.Log) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&order.Order{}).
			Where("id = ? AND company_id = ?", p.OrderID, p.CompanyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return payment.ErrOrderNotFound
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}

		l.PaymentID = p.ID
		return tx.Create(l).Error
	})
}

func (r *Repository) GetAll(companyID int64) ([]payment.WithCustomer, error) {
	var payments []payment.WithCustomer
	err := r.db.Raw(`
		SELECT p.*, c.name AS customer_name
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		JOIN customers c ON c.id = o.customer_id
		WHERE p.company_id = ?
		ORDER BY p.created_at DESC
	`, companyID).Scan(&payments).Error
	return payments, err
}

func (r *Repository) GetByID(companyID, id int64) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, payment.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Approve commits the status flip, the audit log row, and the order's
// recomputed payment_status together. The recompute sums only APPROVED
// payments: PAID when the sum covers the total, PARTIALLY_PAID when
// something but not everything is covered, UNPAID otherwise.
func (r *Repository) Approve(companyID, id, adminID int64, note string, at time.Time) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := loadPending(tx, companyID, id, &p); err != nil {
			return err
		}

		p.Status = payment.StatusApproved
		p.ApprovedBy = &adminID
		p.UpdatedAt = at
		if err := tx.Model(&payment.Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"status":      p.Status,
				"approved_by": adminID,
				"updated_at":  at,
			}).Error; err != nil {
			return err
		}

		if err := appendLog(tx, &p, payment.ActionApproved, adminID, note, at); err != nil {
			return err
		}

		return recomputeOrderPaymentStatus(tx, p.OrderID, at)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Reject(companyID, id, adminID int64, note string, at time.Time) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := loadPending(tx, companyID, id, &p); err != nil {
			return err
		}

		p.Status = payment.StatusRejected
		p.ApprovedBy = &adminID
		p.UpdatedAt = at
		if err := tx.Model(&payment.Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"status":      p.Status,
				"approved_by": adminID,
				"updated_at":  at,
			}).Error; err != nil {
			return err
		}

		return appendLog(tx, &p, payment.ActionRejected, adminID, note, at)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetLogs(companyID, paymentID int64) ([]payment.Log, error) {
	var logs []payment.Log
	err := r.db.Raw(`
		SELECT l.* FROM payment_logs l
		JOIN payments p ON p.id = l.payment_id
		WHERE l.payment_id = ? AND p.company_id = ?
		ORDER BY l.created_at ASC
	`, paymentID, companyID).Scan(&logs).Error
	return logs, err
}

func loadPending(tx *gorm.DB, companyID, id int64, p *payment.Payment) error {
	err := tx.Where("id = ? AND company_id = ?", id, companyID).First(p).Error
	if err == gorm.ErrRecordNotFound {
		return payment.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !p.CanBeProcessed() {
		return payment.ErrNotPending
	}
	return nil
}

func appendLog(tx *gorm.DB, p *payment.Payment, action string, actorID int64, note string, at time.Time) error {
	return tx.Create(&payment.Log{
		PaymentID: p.ID,
		Action:    action,
		ActorID:   actorID,
		ActorRole: "admin",
		Note:      note,
		CreatedAt: at,
	}).Error
}

func recomputeOrderPaymentStatus(tx *gorm.DB, orderID int64, at time.Time) error {
	var o order.Order
	if err := tx.Where("id = ?", orderID).First(&o).Error; err != nil {
		return err
	}

	var approved int64
	if err := tx.Model(&payment.Payment{}).
		Where("order_id = ? AND status = ?", orderID, payment.StatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&approved).Error; err != nil {
		return err
	}

	status := order.PaymentStatusUnpaid
	switch {
	case approved >= o.TotalAmount && o.TotalAmount > 0:
		status = order.PaymentStatusPaid
	case approved > 0:
		status = order.PaymentStatusPartiallyPaid
	}

	return tx.Model(&order.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     at,
		}).Error
}
