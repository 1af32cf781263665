package order

import (
	"errors"
	"time"
)

const (
	StatusPending = "PENDING"

	PaymentStatusUnpaid        = "UNPAID"
	PaymentStatusPartiallyPaid = "PARTIALLY_PAID"
	PaymentStatusPaid          = "PAID"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrNoItems          = errors.New("order has no items")
)

// Order is an immutable sales snapshot. TotalAmount is computed server-side
// from the product catalog at creation time and never recalculated; later
// price edits don't touch it.
type Order struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	CompanyID     int64     `json:"company_id"`
	CustomerID    int64     `json:"customer_id"`
	EmployeeID    int64     `json:"employee_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   int64     `json:"total_amount"`
	OrderDate     time.Time `json:"order_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// Detail is one order line. UnitPrice and Subtotal are frozen copies of the
// catalog price at order time.
type Detail struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

func (Detail) TableName() string { return "order_details" }

// WithCustomer is the admin list shape.
type WithCustomer struct {
	Order
	CustomerName string `json:"customer_name"`
}

// DetailWithProduct is the order-details shape.
type DetailWithProduct struct {
	Detail
	ProductName string `json:"product_name"`
}

// ItemInput names a product and quantity; the price comes from the catalog,
// never from the client.
type ItemInput struct {
	ProductID int64
	Quantity  int64
}

// CustomerLedger is an order history plus the outstanding balance.
type CustomerLedger struct {
	Orders   []Order `json:"orders"`
	TotalDue int64   `json:"total_due"`
}

type RepositoryAPI interface {
	// CreateWithItems prices each line from the tenant's catalog and inserts
	// the order and its details in one transaction.
	CreateWithItems(o *Order, items []ItemInput) ([]Detail, error)
	GetAll(companyID int64) ([]WithCustomer, error)
	GetByID(companyID, id int64) (*Order, error)
	GetDetails(companyID, orderID int64) ([]DetailWithProduct, error)
	GetByCustomer(companyID, customerID int64) ([]Order, error)
	// OutstandingDue is sum of all order totals minus sum of approved
	// payments for the customer.
	OutstandingDue(companyID, customerID int64) (int64, error)
}
