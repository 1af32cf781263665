package customer

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

func (s *Service) CreateCustomer(companyID, actorID int64, dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Customer{
		CompanyID:  companyID,
		LocalityID: dto.LocalityID,
		Name:       dto.Name,
		Phone:      dto.Phone,
		Email:      dto.Email,
		Address:    dto.Address,
		CreatedBy:  actorID,
		UpdatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("customer create failed", "error", err, "company_id", companyID)
		return nil, err
	}
	return c, nil
}

// CreateFieldCustomer backs the employee flow: the locality is named, not
// picked from a list, and gets created in the same transaction if missing.
func (s *Service) CreateFieldCustomer(companyID, employeeID int64, dto FieldCustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Customer{
		CompanyID: companyID,
		Name:      dto.Name,
		Phone:     dto.Phone,
		Email:     dto.Email,
		Address:   dto.Address,
		CreatedBy: employeeID,
		UpdatedBy: employeeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithLocalityName(c, dto.LocalityName); err != nil {
		s.logger.Error("field customer create failed", "error", err,
			"company_id", companyID, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("field customer created", "customer_id", c.ID,
		"locality_id", c.LocalityID, "employee_id", employeeID)
	return c, nil
}

func (s *Service) GetCustomers(companyID int64) ([]WithLocality, error) {
	return s.repo.GetAll(companyID)
}

func (s *Service) GetCustomer(companyID, id int64) (*Customer, error) {
	return s.repo.GetByID(companyID, id)
}

func (s *Service) UpdateCustomer(companyID, actorID, id int64, dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	c.LocalityID = dto.LocalityID
	c.Name = dto.Name
	c.Phone = dto.Phone
	c.Email = dto.Email
	c.Address = dto.Address
	c.UpdatedBy = actorID
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCustomer(companyID, id int64) error {
	return s.repo.Delete(companyID, id)
}
