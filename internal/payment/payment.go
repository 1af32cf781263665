package payment

import (
	"errors"
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	ActionSubmitted = "SUBMITTED"
	ActionApproved  = "APPROVED"
	ActionRejected  = "REJECTED"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotPending    = errors.New("payment is not pending")
)

// Payment is money collected by an employee against one order. It sits in
// PENDING until an admin approves or rejects it; only approved amounts
// count toward the order's payment status.
type Payment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyID   int64     `json:"company_id"`
	OrderID     int64     `json:"order_id"`
	Amount      int64     `json:"amount"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	SubmittedBy int64     `json:"submitted_by"`
	ApprovedBy  *int64    `json:"approved_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) CanBeProcessed() bool { return p.Status == StatusPending }

// Log is the append-only audit trail: one row per submit, approve, reject.
type Log struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PaymentID int64     `json:"payment_id"`
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func (Log) TableName() string { return "payment_logs" }

// WithCustomer is the admin list shape: payment joined to the order's
// customer.
type WithCustomer struct {
	Payment
	CustomerName string `json:"customer_name"`
}

type RepositoryAPI interface {
	// CreateWithLog verifies the order belongs to the tenant and inserts
	// payment plus its SUBMITTED log row in one transaction.
	CreateWithLog(p *Payment, l *Log) error
	GetAll(companyID int64) ([]WithCustomer, error)
	GetByID(companyID, id int64) (*Payment, error)
	// Approve flips PENDING to APPROVED, appends the log row, and recomputes
	// the order's payment_status from the sum of approved payments, all in
	// one transaction.
	Approve(companyID, id, adminID int64, note string, at time.Time) (*Payment, error)
	// Reject flips PENDING to REJECTED and appends the log row.
	Reject(companyID, id, adminID int64, note string, at time.Time) (*Payment, error)
	GetLogs(companyID, paymentID int64) ([]Log, error)
}
