package locality

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

func (s *Service) CreateLocality(companyID, actorID int64, dto LocalityDTO) (*Locality, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	l := &Locality{
		CompanyID:   companyID,
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("locality create failed", "error", err, "company_id", companyID)
		return nil, err
	}
	return l, nil
}

func (s *Service) GetLocalities(companyID int64) ([]*Locality, error) {
	return s.repo.GetAll(companyID)
}

func (s *Service) GetLocality(companyID, id int64) (*Locality, error) {
	return s.repo.GetByID(companyID, id)
}

func (s *Service) UpdateLocality(companyID, actorID, id int64, dto LocalityDTO) (*Locality, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	l.Name = dto.Name
	l.Description = dto.Description
	l.UpdatedBy = actorID
	l.UpdatedAt = time.Now()

	if err := s.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteLocality(companyID, id int64) error {
	return s.repo.Delete(companyID, id)
}
