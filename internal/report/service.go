package report

import (
	"encoding/json"
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

// GenerateOrderDocument builds an ORDER_REPORT or BILL snapshot and writes
// the report_logs row. The returned snapshot is exactly what was persisted.
func (s *Service) GenerateOrderDocument(companyID, employeeID, orderID int64, reportType string) (*OrderSnapshot, error) {
	if reportType != TypeOrderReport && reportType != TypeBill {
		return nil, ErrInvalidType
	}

	snapshot, err := s.repo.OrderSnapshot(companyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.persist(companyID, employeeID, orderID, reportType, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Service) GeneratePaymentReceipt(companyID, employeeID, paymentID int64) (*PaymentSnapshot, error) {
	snapshot, err := s.repo.PaymentSnapshot(companyID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.persist(companyID, employeeID, paymentID, TypePaymentReceipt, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Service) GetLogs(companyID int64, limit, offset int) ([]Log, error) {
	return s.repo.GetLogs(companyID, limit, offset)
}

func (s *Service) persist(companyID, employeeID, refID int64, reportType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	l := &Log{
		CompanyID:   companyID,
		ReportType:  reportType,
		ReferenceID: refID,
		Payload:     string(raw),
		GeneratedBy: employeeID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.SaveLog(l); err != nil {
		s.logger.Error("report log persist failed", "error", err,
			"report_type", reportType, "reference_id", refID)
		return err
	}

	s.logger.Info("report generated", "report_type", reportType,
		"reference_id", refID, "generated_by", employeeID)
	return nil
}
