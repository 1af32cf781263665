package product

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

func (s *Service) CreateProduct(companyID, actorID int64, dto ProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Product{
		CompanyID:   companyID,
		Name:        dto.Name,
		Description: dto.Description,
		UnitPrice:   dto.UnitPrice,
		Unit:        dto.Unit,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("product create failed", "error", err, "company_id", companyID)
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProducts(companyID int64) ([]*Product, error) {
	return s.repo.GetAll(companyID)
}

func (s *Service) GetProduct(companyID, id int64) (*Product, error) {
	return s.repo.GetByID(companyID, id)
}

func (s *Service) UpdateProduct(companyID, actorID, id int64, dto ProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	p.Name = dto.Name
	p.Description = dto.Description
	p.UnitPrice = dto.UnitPrice
	p.Unit = dto.Unit
	p.UpdatedBy = actorID
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(companyID, id int64) error {
	return s.repo.Delete(companyID, id)
}
