package payment

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/salesops/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SubmitPayment records a collection in PENDING with its audit log row.
// Nothing moves on the order until an admin approves.
func (s *Service) SubmitPayment(companyID, employeeID int64, dto SubmitPaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Payment{
		CompanyID:   companyID,
		OrderID:     dto.OrderID,
		Amount:      dto.Amount,
		Method:      dto.Method,
		Status:      StatusPending,
		Note:        dto.Note,
		SubmittedBy: employeeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l := &Log{
		Action:    ActionSubmitted,
		ActorID:   employeeID,
		ActorRole: string(auth.RoleEmployee),
		Note:      dto.Note,
		CreatedAt: now,
	}

	if err := s.repo.CreateWithLog(p, l); err != nil {
		s.logger.Error("payment submit failed", "error", err,
			"company_id", companyID, "order_id", dto.OrderID)
		return nil, err
	}

	s.logger.Info("payment submitted", "payment_id", p.ID, "order_id", p.OrderID,
		"amount", p.Amount, "employee_id", employeeID)
	return p, nil
}

func (s *Service) GetPayments(companyID int64) ([]WithCustomer, error) {
	payments, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to list payments", "error", err, "company_id", companyID)
		return nil, err
	}
	return payments, nil
}

func (s *Service) GetPaymentLogs(companyID, paymentID int64) ([]Log, error) {
	if _, err := s.repo.GetByID(companyID, paymentID); err != nil {
		return nil, err
	}
	return s.repo.GetLogs(companyID, paymentID)
}

// ApprovePayment moves PENDING to APPROVED and recomputes the order's
// payment status in the same transaction.
func (s *Service) ApprovePayment(companyID, adminID, paymentID int64, dto ProcessPaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Approve(companyID, paymentID, adminID, dto.Note, time.Now())
	if err != nil {
		s.logger.Error("payment approval failed", "error", err,
			"payment_id", paymentID, "admin_id", adminID)
		return nil, err
	}

	s.logger.Info("payment approved", "payment_id", p.ID, "order_id", p.OrderID,
		"amount", p.Amount, "admin_id", adminID)
	return p, nil
}

func (s *Service) RejectPayment(companyID, adminID, paymentID int64, dto ProcessPaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Reject(companyID, paymentID, adminID, dto.Note, time.Now())
	if err != nil {
		s.logger.Error("payment rejection failed", "error", err,
			"payment_id", paymentID, "admin_id", adminID)
		return nil, err
	}

	s.logger.Info("payment rejected", "payment_id", p.ID, "order_id", p.OrderID,
		"admin_id", adminID)
	return p, nil
}
