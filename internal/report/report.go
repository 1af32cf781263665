package report

import (
	"errors"
	"time"
)

const (
	TypeOrderReport    = "ORDER_REPORT"
	TypeBill           = "BILL"
	TypePaymentReceipt = "PAYMENT_RECEIPT"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidType     = errors.New("unknown report type")
)

// Log is a generated document snapshot. The payload is the fully resolved
// JSON at generation time, so later edits to master data never change an
// issued bill or receipt.
type Log struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyID   int64     `json:"company_id"`
	ReportType  string    `json:"report_type"`
	ReferenceID int64     `json:"reference_id"`
	Payload     string    `json:"payload"`
	GeneratedBy int64     `json:"generated_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Log) TableName() string { return "report_logs" }

// OrderSnapshot is the resolved order document: header, customer, lines.
type OrderSnapshot struct {
	OrderID       int64      `json:"order_id"`
	CustomerName  string     `json:"customer_name"`
	EmployeeName  string     `json:"employee_name"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	TotalAmount   int64      `json:"total_amount"`
	OrderDate     time.Time  `json:"order_date"`
	Items         []LineItem `json:"items"`
}

type LineItem struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

// PaymentSnapshot is the resolved receipt: payment, its order, the payer.
type PaymentSnapshot struct {
	PaymentID    int64     `json:"payment_id"`
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Amount       int64     `json:"amount"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	PaidAt       time.Time `json:"paid_at"`
}

type RepositoryAPI interface {
	SaveLog(l *Log) error
	OrderSnapshot(companyID, orderID int64) (*OrderSnapshot, error)
	PaymentSnapshot(companyID, paymentID int64) (*PaymentSnapshot, error)
	GetLogs(companyID int64, limit, offset int) ([]Log, error)
}
