package employee

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/salesops/internal/storage"
)

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SessionRevoker logs an employee out everywhere after an admin resets
// their password or terminates them.
type SessionRevoker interface {
	RevokeEmployeeSessions(employeeID int64) (int, error)
}

// PhotoUpload carries an optional multipart file from handler to service.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service struct {
	repo    RepositoryAPI
	hasher  PasswordHasher
	revoker SessionRevoker
	files   storage.Storage
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, revoker SessionRevoker, files storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		hasher:  hasher,
		revoker: revoker,
		files:   files,
		logger:  logger,
	}
}

func (s *Service) toResponse(e *Employee) Response {
	resp := Response{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		Address:   e.Address,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.PhotoKey != nil && *e.PhotoKey != "" {
		url := s.files.URL(*e.PhotoKey)
		resp.PhotoURL = &url
	}
	return resp
}

func (s *Service) CreateEmployee(ctx context.Context, companyID, adminID int64, dto CreateEmployeeDTO, photo *PhotoUpload) (*Response, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	e := &Employee{
		CompanyID:    companyID,
		Name:         dto.Name,
		Phone:        dto.Phone,
		Email:        dto.Email,
		Address:      dto.Address,
		PasswordHash: hash,
		Status:       StatusActive,
		CreatedBy:    adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if photo != nil {
		key, err := s.files.Save(ctx, "employees", photo.Filename, photo.Reader, photo.Size, photo.ContentType)
		if err != nil {
			s.logger.Error("employee photo upload failed", "error", err)
			return nil, err
		}
		e.PhotoKey = &key
	}

	if err := s.repo.Create(e); err != nil {
		// don't leave an orphaned upload behind a failed insert
		if e.PhotoKey != nil {
			_ = s.files.Delete(ctx, *e.PhotoKey)
		}
		s.logger.Error("employee create failed", "error", err, "company_id", companyID)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID, "company_id", companyID, "admin_id", adminID)
	resp := s.toResponse(e)
	return &resp, nil
}

func (s *Service) GetEmployees(companyID int64) ([]Response, error) {
	employees, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "company_id", companyID)
		return nil, err
	}

	responses := make([]Response, len(employees))
	for i, e := range employees {
		responses[i] = s.toResponse(e)
	}
	return responses, nil
}

func (s *Service) GetEmployee(companyID, id int64) (*Response, error) {
	e, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(e)
	return &resp, nil
}

// UpdateEmployee applies the edit; a non-empty password is a reset, which
// revokes every live session of that employee before the new hash lands.
func (s *Service) UpdateEmployee(companyID, id int64, dto UpdateEmployeeDTO) (*Response, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	e.Name = dto.Name
	e.Phone = dto.Phone
	e.Email = dto.Email
	e.Address = dto.Address
	e.UpdatedAt = time.Now()

	if dto.Password != "" {
		hash, err := s.hasher.HashPassword(dto.Password)
		if err != nil {
			return nil, err
		}
		e.PasswordHash = hash

		revoked, err := s.revoker.RevokeEmployeeSessions(e.ID)
		if err != nil {
			s.logger.Error("employee session revocation failed on password reset",
				"error", err, "employee_id", e.ID)
			return nil, err
		}
		s.logger.Info("employee password reset, sessions revoked",
			"employee_id", e.ID, "revoked_sessions", revoked)
	}

	if err := s.repo.Update(e); err != nil {
		return nil, err
	}

	resp := s.toResponse(e)
	return &resp, nil
}

// TerminateEmployee soft-deletes: status flips to TERMINATED, the profile
// photo is removed, and live sessions are revoked so the account goes dark
// immediately.
func (s *Service) TerminateEmployee(ctx context.Context, companyID, id int64) error {
	e, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Terminate(companyID, id, time.Now()); err != nil {
		return err
	}

	if e.PhotoKey != nil && *e.PhotoKey != "" {
		if err := s.files.Delete(ctx, *e.PhotoKey); err != nil {
			s.logger.Warn("failed to delete terminated employee photo",
				"error", err, "employee_id", id)
		}
	}

	revoked, err := s.revoker.RevokeEmployeeSessions(id)
	if err != nil {
		s.logger.Error("employee session revocation failed on termination",
			"error", err, "employee_id", id)
		return err
	}

	s.logger.Info("employee terminated", "employee_id", id, "company_id", companyID,
		"revoked_sessions", revoked)
	return nil
}
