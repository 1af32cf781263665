package company

import (
	"log/slog"
	"time"
)

// PasswordHasher hashes the bootstrap admin's password. Implemented by the
// auth service so bcrypt cost lives in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SessionRevoker locks out a tenant's admins when the company is
// deactivated. Implemented by the auth service.
type SessionRevoker interface {
	RevokeCompanyAdminSessions(companyID int64) (int, error)
}

type Service struct {
	repo    RepositoryAPI
	hasher  PasswordHasher
	revoker SessionRevoker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, revoker SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		hasher:  hasher,
		revoker: revoker,
		logger:  logger,
	}
}

func (s *Service) CreateCompany(superadminID int64, dto CreateCompanyDTO) (*CompanyWithAdmins, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Company{
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Address:   dto.Address,
		Status:    StatusActive,
		CreatedBy: superadminID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a := &Admin{
		Name:         dto.AdminName,
		Username:     dto.AdminUsername,
		Email:        dto.AdminEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateWithAdmin(c, a); err != nil {
		s.logger.Error("company bootstrap failed", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("company created", "company_id", c.ID, "admin_id", a.ID, "superadmin_id", superadminID)
	return &CompanyWithAdmins{Company: *c, Admins: []Admin{*a}}, nil
}

func (s *Service) GetCompanies(superadminID int64) ([]CompanyWithAdmins, error) {
	companies, err := s.repo.GetAllWithAdmins(superadminID)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err, "superadmin_id", superadminID)
		return nil, err
	}
	return companies, nil
}

func (s *Service) GetCompany(superadminID, id int64) (*Company, error) {
	return s.repo.GetByID(superadminID, id)
}

// UpdateCompany applies the edit and, when the status flips to INACTIVE,
// revokes every live admin session of that tenant. Reactivation does not
// restore anything; admins log in again.
func (s *Service) UpdateCompany(superadminID, id int64, dto UpdateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(superadminID, id)
	if err != nil {
		return nil, err
	}

	wasActive := c.IsActive()

	c.Name = dto.Name
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.Address = dto.Address
	c.Status = dto.Status
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}

	if wasActive && c.Status == StatusInactive {
		revoked, err := s.revoker.RevokeCompanyAdminSessions(c.ID)
		if err != nil {
			s.logger.Error("admin session revocation failed after deactivation",
				"error", err, "company_id", c.ID)
			return nil, err
		}
		s.logger.Info("company deactivated, admin sessions revoked",
			"company_id", c.ID, "revoked_sessions", revoked)
	}

	return c, nil
}

// DeleteCompany revokes the tenant's admin sessions before removing the
// rows, so a deleted company's tokens stop passing the gate immediately
// instead of living until natural expiry. The scoped lookup runs first;
// another superadmin's company must not get its sessions revoked on a
// failed delete.
func (s *Service) DeleteCompany(superadminID, id int64) error {
	c, err := s.repo.GetByID(superadminID, id)
	if err != nil {
		return err
	}

	revoked, err := s.revoker.RevokeCompanyAdminSessions(c.ID)
	if err != nil {
		s.logger.Error("admin session revocation failed before delete",
			"error", err, "company_id", c.ID)
		return err
	}

	if err := s.repo.Delete(superadminID, id); err != nil {
		return err
	}
	s.logger.Info("company deleted, admin sessions revoked",
		"company_id", id, "superadmin_id", superadminID, "revoked_sessions", revoked)
	return nil
}
