package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of principal kinds. Claim shapes are enforced by the
// Principal constructors so an admin token without a company id cannot be built.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// Principal is the authenticated actor attached to a request after the gate.
// CompanyID is nil for superadmins and set for admins and employees.
type Principal struct {
	ID        int64
	Role      Role
	CompanyID *int64
}

func SuperadminPrincipal(id int64) Principal {
	return Principal{ID: id, Role: RoleSuperadmin}
}

func AdminPrincipal(id, companyID int64) Principal {
	return Principal{ID: id, Role: RoleAdmin, CompanyID: &companyID}
}

func EmployeePrincipal(id, companyID int64) Principal {
	return Principal{ID: id, Role: RoleEmployee, CompanyID: &companyID}
}

func (p Principal) Validate() error {
	if !p.Role.Valid() {
		return ErrInvalidToken
	}
	if p.Role == RoleSuperadmin && p.CompanyID != nil {
		return ErrInvalidToken
	}
	if p.Role != RoleSuperadmin && p.CompanyID == nil {
		return ErrInvalidToken
	}
	return nil
}

// TenantID returns the company the principal is scoped to, 0 for superadmins.
func (p Principal) TenantID() int64 {
	if p.CompanyID == nil {
		return 0
	}
	return *p.CompanyID
}

// Claims is the JWT payload for all principal kinds.
type Claims struct {
	PrincipalID int64  `json:"principal_id"`
	Role        Role   `json:"role"`
	CompanyID   *int64 `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal reconstructs the typed principal from verified claims.
func (c *Claims) Principal() (Principal, error) {
	p := Principal{ID: c.PrincipalID, Role: c.Role, CompanyID: c.CompanyID}
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

// Session is one row of the durable, revocable session ledger. Every
// successful login of every role writes exactly one.
type Session struct {
	ID          int64     `gorm:"primaryKey"`
	PrincipalID int64     `gorm:"column:principal_id;not null"`
	CompanyID   *int64    `gorm:"column:company_id"`
	Role        Role      `gorm:"column:role;not null"`
	Token       string    `gorm:"column:token;not null"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Session) TableName() string { return "sessions" }

// BlacklistEntry records a token invalidated before its natural expiry.
// ExpiresAt mirrors the token's own expiry so lookups can ignore stale rows
// and the sweeper can prune them.
type BlacklistEntry struct {
	ID        int64     `gorm:"primaryKey"`
	Token     string    `gorm:"column:token;not null"`
	CompanyID *int64    `gorm:"column:company_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (BlacklistEntry) TableName() string { return "token_blacklist" }

// Credential is the stored secret for any principal kind. PasswordHash is a
// bcrypt hash; plaintext is never stored or compared.
type Credential struct {
	PrincipalID   int64
	Role          Role
	CompanyID     *int64
	PasswordHash  string
	CompanyStatus string
}

// TokenGenerator mints and verifies signed bearer tokens.
type TokenGenerator interface {
	Issue(p Principal) (token string, expiresAt time.Time, err error)
	Validate(tokenString string) (*Claims, error)
}

// CredentialStore looks up and updates stored credentials.
type CredentialStore interface {
	SuperadminByUsername(username string) (*Credential, error)
	AdminByUsername(username string) (*Credential, error)
	EmployeeByID(companyID, employeeID int64) (*Credential, error)
	CredentialForPrincipal(p Principal) (*Credential, error)
	UpdatePasswordHash(p Principal, hash string) error
}

// SessionRepository is the session ledger plus blacklist. Revocation methods
// run their blacklist-insert/session-delete pairs in a single transaction.
type SessionRepository interface {
	Create(s *Session) error
	IsBlacklisted(token string, now time.Time) (bool, error)
	ActiveSession(token string, role Role, now time.Time) (*Session, error)
	RevokePrincipalSessions(principalID int64, role Role, now time.Time) (int, error)
	RevokeCompanySessions(companyID int64, role Role, now time.Time) (int, error)
	DeleteExpired(now time.Time) (int64, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrSessionNotActive   = errors.New("no active session for token")
	ErrCompanyInactive    = errors.New("company is inactive")
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}
