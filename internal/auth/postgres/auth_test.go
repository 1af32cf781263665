package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/salesops/internal/auth"
	authPostgres "github.com/frahmantamala/salesops/internal/auth/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

// SQLite-compatible credential tables for testing the raw lookups
type SQLiteSuperadmin struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"column:username;uniqueIndex"`
	Name         string `gorm:"column:name"`
	PasswordHash string `gorm:"column:password_hash"`
}

func (SQLiteSuperadmin) TableName() string { return "superadmins" }

type SQLiteCompany struct {
	ID     int64  `gorm:"primaryKey"`
	Name   string `gorm:"column:name"`
	Status string `gorm:"column:status"`
}

func (SQLiteCompany) TableName() string { return "companies" }

type SQLiteAdmin struct {
	ID           int64     `gorm:"primaryKey"`
	CompanyID    int64     `gorm:"column:company_id"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteAdmin) TableName() string { return "admins" }

type SQLiteEmployee struct {
	ID           int64  `gorm:"primaryKey"`
	CompanyID    int64  `gorm:"column:company_id"`
	PasswordHash string `gorm:"column:password_hash"`
	Status       string `gorm:"column:status"`
}

func (SQLiteEmployee) TableName() string { return "employees" }

var _ = Describe("Auth Postgres Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&SQLiteSuperadmin{}, &SQLiteCompany{}, &SQLiteAdmin{}, &SQLiteEmployee{},
			&auth.Session{}, &auth.BlacklistEntry{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
	})

	Describe("Credential lookups", func() {
		BeforeEach(func() {
			Expect(db.Create(&SQLiteSuperadmin{ID: 1, Username: "root", PasswordHash: "sa-hash"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteCompany{ID: 7, Name: "Acme", Status: "ACTIVE"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteAdmin{ID: 2, CompanyID: 7, Username: "admin", PasswordHash: "adm-hash"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteEmployee{ID: 3, CompanyID: 7, PasswordHash: "emp-hash", Status: "ACTIVE"}).Error).To(Succeed())
		})

		It("should find a superadmin by username", func() {
			cred, err := repo.SuperadminByUsername("root")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.PrincipalID).To(Equal(int64(1)))
			Expect(cred.Role).To(Equal(auth.RoleSuperadmin))
			Expect(cred.PasswordHash).To(Equal("sa-hash"))
		})

		It("should return ErrInvalidCredentials for an unknown superadmin", func() {
			_, err := repo.SuperadminByUsername("nobody")
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should find an admin with its company status", func() {
			cred, err := repo.AdminByUsername("admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.PrincipalID).To(Equal(int64(2)))
			Expect(cred.CompanyID).NotTo(BeNil())
			Expect(*cred.CompanyID).To(Equal(int64(7)))
			Expect(cred.CompanyStatus).To(Equal("ACTIVE"))
		})

		It("should carry an inactive company status through for the service to reject", func() {
			Expect(db.Model(&SQLiteCompany{}).Where("id = ?", 7).Update("status", "INACTIVE").Error).To(Succeed())
			cred, err := repo.AdminByUsername("admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.CompanyStatus).To(Equal("INACTIVE"))
		})

		It("should find an employee only in its own company", func() {
			cred, err := repo.EmployeeByID(7, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.PrincipalID).To(Equal(int64(3)))

			_, err = repo.EmployeeByID(99, 3)
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should not find a terminated employee", func() {
			Expect(db.Model(&SQLiteEmployee{}).Where("id = ?", 3).Update("status", "TERMINATED").Error).To(Succeed())
			_, err := repo.EmployeeByID(7, 3)
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should update the password hash for a principal", func() {
			err := repo.UpdatePasswordHash(auth.AdminPrincipal(2, 7), "new-hash")
			Expect(err).NotTo(HaveOccurred())

			cred, err := repo.AdminByUsername("admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.PasswordHash).To(Equal("new-hash"))
		})
	})

	Describe("Session ledger", func() {
		companyID := int64(7)

		newSession := func(principalID int64, role auth.Role, token string, expiresAt time.Time) *auth.Session {
			s := &auth.Session{
				PrincipalID: principalID,
				Role:        role,
				Token:       token,
				ExpiresAt:   expiresAt,
			}
			if role != auth.RoleSuperadmin {
				s.CompanyID = &companyID
			}
			return s
		}

		It("should find an active session by token and role", func() {
			s := newSession(2, auth.RoleAdmin, "tok-admin", time.Now().Add(time.Hour))
			Expect(repo.Create(s)).To(Succeed())

			found, err := repo.ActiveSession("tok-admin", auth.RoleAdmin, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.PrincipalID).To(Equal(int64(2)))
		})

		It("should not find a session under a different role", func() {
			s := newSession(2, auth.RoleAdmin, "tok-admin", time.Now().Add(time.Hour))
			Expect(repo.Create(s)).To(Succeed())

			found, err := repo.ActiveSession("tok-admin", auth.RoleEmployee, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("should not find an expired session", func() {
			s := newSession(2, auth.RoleAdmin, "tok-stale", time.Now().Add(-time.Minute))
			Expect(repo.Create(s)).To(Succeed())

			found, err := repo.ActiveSession("tok-stale", auth.RoleAdmin, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("Revocation", func() {
		companyID := int64(7)
		otherCompany := int64(8)

		BeforeEach(func() {
			sessions := []auth.Session{
				{PrincipalID: 2, CompanyID: &companyID, Role: auth.RoleAdmin, Token: "tok-a1", ExpiresAt: time.Now().Add(time.Hour)},
				{PrincipalID: 4, CompanyID: &companyID, Role: auth.RoleAdmin, Token: "tok-a2", ExpiresAt: time.Now().Add(time.Hour)},
				{PrincipalID: 3, CompanyID: &companyID, Role: auth.RoleEmployee, Token: "tok-e1", ExpiresAt: time.Now().Add(time.Hour)},
				{PrincipalID: 9, CompanyID: &otherCompany, Role: auth.RoleAdmin, Token: "tok-other", ExpiresAt: time.Now().Add(time.Hour)},
			}
			for i := range sessions {
				Expect(repo.Create(&sessions[i])).To(Succeed())
			}
		})

		It("should move a principal's sessions to the blacklist", func() {
			revoked, err := repo.RevokePrincipalSessions(3, auth.RoleEmployee, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(revoked).To(Equal(1))

			found, err := repo.ActiveSession("tok-e1", auth.RoleEmployee, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())

			blacklisted, err := repo.IsBlacklisted("tok-e1", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(blacklisted).To(BeTrue())
		})

		It("should revoke every admin session of one company and nothing else", func() {
			revoked, err := repo.RevokeCompanySessions(companyID, auth.RoleAdmin, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(revoked).To(Equal(2))

			for _, token := range []string{"tok-a1", "tok-a2"} {
				blacklisted, err := repo.IsBlacklisted(token, time.Now())
				Expect(err).NotTo(HaveOccurred())
				Expect(blacklisted).To(BeTrue(), token)
			}

			// employee of the same company and admins of other tenants survive
			employeeSession, err := repo.ActiveSession("tok-e1", auth.RoleEmployee, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(employeeSession).NotTo(BeNil())

			otherSession, err := repo.ActiveSession("tok-other", auth.RoleAdmin, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(otherSession).NotTo(BeNil())
		})

		It("should ignore blacklist rows past their expiry", func() {
			entry := auth.BlacklistEntry{Token: "tok-old", ExpiresAt: time.Now().Add(-time.Minute)}
			Expect(db.Create(&entry).Error).To(Succeed())

			blacklisted, err := repo.IsBlacklisted("tok-old", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(blacklisted).To(BeFalse())
		})
	})

	Describe("DeleteExpired", func() {
		It("should prune lapsed sessions and blacklist rows and count both", func() {
			companyID := int64(7)
			live := auth.Session{PrincipalID: 2, CompanyID: &companyID, Role: auth.RoleAdmin, Token: "tok-live", ExpiresAt: time.Now().Add(time.Hour)}
			stale := auth.Session{PrincipalID: 2, CompanyID: &companyID, Role: auth.RoleAdmin, Token: "tok-stale", ExpiresAt: time.Now().Add(-time.Hour)}
			Expect(repo.Create(&live)).To(Succeed())
			Expect(repo.Create(&stale)).To(Succeed())
			Expect(db.Create(&auth.BlacklistEntry{Token: "bl-stale", ExpiresAt: time.Now().Add(-time.Hour)}).Error).To(Succeed())
			Expect(db.Create(&auth.BlacklistEntry{Token: "bl-live", ExpiresAt: time.Now().Add(time.Hour)}).Error).To(Succeed())

			removed, err := repo.DeleteExpired(time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(2)))

			found, err := repo.ActiveSession("tok-live", auth.RoleAdmin, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())

			blacklisted, err := repo.IsBlacklisted("bl-live", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(blacklisted).To(BeTrue())
		})
	})
})
