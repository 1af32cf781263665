package postgres

import (
	"database/sql"
	"time"

	"github.com/frahmantamala/salesops/internal/auth"
	"gorm.io/gorm"
)

// Repository implements auth.CredentialStore and auth.SessionRepository
// using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SuperadminByUsername(username string) (*auth.Credential, error) {
	var cred auth.Credential
	query := `SELECT id, password_hash FROM superadmins WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&cred.PrincipalID, &cred.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	cred.Role = auth.RoleSuperadmin
	return &cred, nil
}

func (r *Repository) AdminByUsername(username string) (*auth.Credential, error) {
	var cred auth.Credential
	var companyID int64
	query := `SELECT a.id, a.company_id, a.password_hash, c.status
	          FROM admins a
	          JOIN companies c ON c.id = a.company_id
	          WHERE a.username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&cred.PrincipalID, &companyID, &cred.PasswordHash, &cred.CompanyStatus); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	cred.Role = auth.RoleAdmin
	cred.CompanyID = &companyID
	return &cred, nil
}

// EmployeeByID requires the caller-supplied company id to match, so employee
// ids can never collide across tenants.
func (r *Repository) EmployeeByID(companyID, employeeID int64) (*auth.Credential, error) {
	var cred auth.Credential
	var cid int64
	query := `SELECT e.id, e.company_id, e.password_hash, c.status
	          FROM employees e
	          JOIN companies c ON c.id = e.company_id
	          WHERE e.company_id = ? AND e.id = ? AND e.status = 'ACTIVE'`

	row := r.db.Raw(query, companyID, employeeID).Row()
	if err := row.Scan(&cred.PrincipalID, &cid, &cred.PasswordHash, &cred.CompanyStatus); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	cred.Role = auth.RoleEmployee
	cred.CompanyID = &cid
	return &cred, nil
}

func (r *Repository) CredentialForPrincipal(p auth.Principal) (*auth.Credential, error) {
	var query string
	switch p.Role {
	case auth.RoleSuperadmin:
		query = `SELECT password_hash FROM superadmins WHERE id = ?`
	case auth.RoleAdmin:
		query = `SELECT password_hash FROM admins WHERE id = ?`
	default:
		query = `SELECT password_hash FROM employees WHERE id = ?`
	}

	cred := auth.Credential{PrincipalID: p.ID, Role: p.Role, CompanyID: p.CompanyID}
	row := r.db.Raw(query, p.ID).Row()
	if err := row.Scan(&cred.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return &cred, nil
}

func (r *Repository) UpdatePasswordHash(p auth.Principal, hash string) error {
	var table string
	switch p.Role {
	case auth.RoleSuperadmin:
		table = "superadmins"
	case auth.RoleAdmin:
		table = "admins"
	default:
		table = "employees"
	}

	return r.db.Table(table).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *Repository) Create(s *auth.Session) error {
	return r.db.Create(s).Error
}

// IsBlacklisted ignores entries whose expiry has passed; the token would be
// rejected by its own expiry anyway and the sweeper prunes such rows.
func (r *Repository) IsBlacklisted(token string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&auth.BlacklistEntry{}).
		Where("token = ? AND expires_at > ?", token, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ActiveSession(token string, role auth.Role, now time.Time) (*auth.Session, error) {
	var session auth.Session
	err := r.db.Where("token = ? AND role = ? AND expires_at > ?", token, role, now).
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// revokeSessions blacklists and deletes every session matched by cond inside
// one transaction, so a failure leaves no half-revoked session set.
func (r *Repository) revokeSessions(cond string, args ...interface{}) (int, error) {
	var revoked int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var sessions []auth.Session
		if err := tx.Where(cond, args...).Find(&sessions).Error; err != nil {
			return err
		}

		for _, s := range sessions {
			entry := auth.BlacklistEntry{
				Token:     s.Token,
				CompanyID: s.CompanyID,
				ExpiresAt: s.ExpiresAt,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			if err := tx.Where("token = ?", s.Token).Delete(&auth.Session{}).Error; err != nil {
				return err
			}
		}
		revoked = len(sessions)
		return nil
	})
	return revoked, err
}

func (r *Repository) RevokePrincipalSessions(principalID int64, role auth.Role, now time.Time) (int, error) {
	return r.revokeSessions("principal_id = ? AND role = ? AND expires_at > ?", principalID, role, now)
}

func (r *Repository) RevokeCompanySessions(companyID int64, role auth.Role, now time.Time) (int, error) {
	return r.revokeSessions("company_id = ? AND role = ? AND expires_at > ?", companyID, role, now)
}

// DeleteExpired prunes lapsed sessions and blacklist rows. Backing for the
// sweep command.
func (r *Repository) DeleteExpired(now time.Time) (int64, error) {
	sessions := r.db.Where("expires_at <= ?", now).Delete(&auth.Session{})
	if sessions.Error != nil {
		return 0, sessions.Error
	}

	blacklist := r.db.Where("expires_at <= ?", now).Delete(&auth.BlacklistEntry{})
	if blacklist.Error != nil {
		return sessions.RowsAffected, blacklist.Error
	}

	return sessions.RowsAffected + blacklist.RowsAffected, nil
}
