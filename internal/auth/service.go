package auth

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const companyStatusInactive = "INACTIVE"

// Service implements login, the request-gate checks, and revocation fan-out.
type Service struct {
	creds      CredentialStore
	sessions   SessionRepository
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(creds CredentialStore, sessions SessionRepository, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		creds:      creds,
		sessions:   sessions,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// login issues a token and writes the matching session ledger row. One row
// per successful login, for every role.
func (s *Service) login(cred *Credential) (*LoginResponse, error) {
	p := Principal{ID: cred.PrincipalID, Role: cred.Role, CompanyID: cred.CompanyID}

	token, expiresAt, err := s.tokens.Issue(p)
	if err != nil {
		return nil, err
	}

	session := &Session{
		PrincipalID: p.ID,
		CompanyID:   p.CompanyID,
		Role:        p.Role,
		Token:       token,
		ExpiresAt:   expiresAt,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "role", p.Role, "principal_id", p.ID)
	return &LoginResponse{Token: token, Role: p.Role}, nil
}

// comparePassword collapses lookup miss and hash mismatch into the same
// error so responses cannot be used for account enumeration. Store failures
// are not misses and propagate as-is.
func (s *Service) comparePassword(cred *Credential, lookupErr error, password string) error {
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrInvalidCredentials) {
			return lookupErr
		}
		// burn a hash comparison anyway to keep timing uniform
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000uVUlmgYGJ3rTZBTx9Ki/fW9evQ6emsW"), []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Service) LoginSuperadmin(dto SuperadminLoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.creds.SuperadminByUsername(dto.Username)
	if err := s.comparePassword(cred, err, dto.Password); err != nil {
		return nil, err
	}

	return s.login(cred)
}

func (s *Service) LoginAdmin(dto AdminLoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.creds.AdminByUsername(dto.Username)
	if err := s.comparePassword(cred, err, dto.Password); err != nil {
		return nil, err
	}

	// A deactivated tenant locks its admins out at login too, not just by
	// revoking live sessions.
	if cred.CompanyStatus == companyStatusInactive {
		s.logger.Warn("admin login rejected: company inactive", "admin_id", cred.PrincipalID)
		return nil, ErrInvalidCredentials
	}

	return s.login(cred)
}

func (s *Service) LoginEmployee(dto EmployeeLoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.creds.EmployeeByID(dto.CompanyID, dto.EmployeeID)
	if err := s.comparePassword(cred, err, dto.Password); err != nil {
		return nil, err
	}

	if cred.CompanyStatus == companyStatusInactive {
		s.logger.Warn("employee login rejected: company inactive", "emp_id", cred.PrincipalID)
		return nil, ErrInvalidCredentials
	}

	return s.login(cred)
}

// Authenticate runs the full gate sequence: signature and embedded expiry,
// then the blacklist, then the session ledger. Both the token's expiry and
// the session row's expiry must independently hold.
func (s *Service) Authenticate(tokenString string) (Principal, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return Principal{}, err
	}

	p, err := claims.Principal()
	if err != nil {
		return Principal{}, err
	}

	now := time.Now()

	blacklisted, err := s.sessions.IsBlacklisted(tokenString, now)
	if err != nil {
		return Principal{}, err
	}
	if blacklisted {
		return Principal{}, ErrTokenRevoked
	}

	session, err := s.sessions.ActiveSession(tokenString, p.Role, now)
	if err != nil {
		return Principal{}, err
	}
	if session == nil {
		return Principal{}, ErrSessionNotActive
	}

	return p, nil
}

// CheckToken backs the dashboard's polling endpoint.
func (s *Service) CheckToken(tokenString string) error {
	_, err := s.Authenticate(tokenString)
	return err
}

// ChangePassword verifies the old password, stores the new hash, then
// revokes every active session of the principal (log out everywhere). The
// hash goes first: a failed store must not leave the principal logged out
// with the old password still in force.
func (s *Service) ChangePassword(p Principal, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	cred, err := s.creds.CredentialForPrincipal(p)
	if err := s.comparePassword(cred, err, dto.OldPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(dto.NewPassword)
	if err != nil {
		return err
	}
	if err := s.creds.UpdatePasswordHash(p, hash); err != nil {
		return err
	}

	revoked, err := s.sessions.RevokePrincipalSessions(p.ID, p.Role, time.Now())
	if err != nil {
		return err
	}

	s.logger.Info("password changed, sessions revoked",
		"role", p.Role, "principal_id", p.ID, "revoked_sessions", revoked)
	return nil
}

// RevokeCompanyAdminSessions locks out every admin of a tenant. Called when
// a company is deactivated.
func (s *Service) RevokeCompanyAdminSessions(companyID int64) (int, error) {
	return s.sessions.RevokeCompanySessions(companyID, RoleAdmin, time.Now())
}

// RevokeEmployeeSessions forces re-login for one employee, e.g. after an
// admin resets their password.
func (s *Service) RevokeEmployeeSessions(employeeID int64) (int, error) {
	return s.sessions.RevokePrincipalSessions(employeeID, RoleEmployee, time.Now())
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
