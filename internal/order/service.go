package order

import (
	"log/slog"
	"time"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateOrder prices every line from the tenant catalog and commits order
// plus details atomically. The client never supplies prices or totals.
func (s *Service) CreateOrder(companyID, employeeID int64, dto CreateOrderDTO) (*CreateOrderResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	items := make([]ItemInput, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = ItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	now := time.Now()
	o := &Order{
		CompanyID:     companyID,
		CustomerID:    dto.CustomerID,
		EmployeeID:    employeeID,
		Status:        StatusPending,
		PaymentStatus: PaymentStatusUnpaid,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	details, err := s.repo.CreateWithItems(o, items)
	if err != nil {
		s.logger.Error("order create failed", "error", err,
			"company_id", companyID, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("order created", "order_id", o.ID, "company_id", companyID,
		"employee_id", employeeID, "total_amount", o.TotalAmount, "items", len(details))
	return &CreateOrderResponse{Order: *o, Details: details}, nil
}

func (s *Service) GetOrders(companyID int64) ([]WithCustomer, error) {
	orders, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err, "company_id", companyID)
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetOrderDetails(companyID, orderID int64) ([]DetailWithProduct, error) {
	if _, err := s.repo.GetByID(companyID, orderID); err != nil {
		return nil, err
	}
	return s.repo.GetDetails(companyID, orderID)
}

// GetCustomerLedger is the employee view: the customer's orders and what
// they still owe across all of them.
func (s *Service) GetCustomerLedger(companyID, customerID int64) (*CustomerLedger, error) {
	orders, err := s.repo.GetByCustomer(companyID, customerID)
	if err != nil {
		return nil, err
	}

	due, err := s.repo.OutstandingDue(companyID, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerLedger{Orders: orders, TotalDue: due}, nil
}
