package company_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/salesops/internal/company"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCompanyService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Service Suite")
}

// MockRepository implements company.RepositoryAPI for testing
type MockRepository struct {
	companies  map[int64]*company.Company
	admins     map[int64][]company.Admin
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		companies: make(map[int64]*company.Company),
		admins:    make(map[int64][]company.Admin),
		nextID:    1,
	}
}

func (m *MockRepository) CreateWithAdmin(c *company.Company, a *company.Admin) error {
	if m.shouldFail {
		return m.failError
	}
	c.ID = m.nextID
	m.nextID++
	a.ID = m.nextID
	m.nextID++
	a.CompanyID = c.ID
	copied := *c
	m.companies[c.ID] = &copied
	m.admins[c.ID] = []company.Admin{*a}
	return nil
}

func (m *MockRepository) GetByID(superadminID, id int64) (*company.Company, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	c, ok := m.companies[id]
	if !ok || c.CreatedBy != superadminID {
		return nil, company.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockRepository) GetAllWithAdmins(superadminID int64) ([]company.CompanyWithAdmins, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []company.CompanyWithAdmins
	for id, c := range m.companies {
		if c.CreatedBy != superadminID {
			continue
		}
		out = append(out, company.CompanyWithAdmins{Company: *c, Admins: m.admins[id]})
	}
	return out, nil
}

func (m *MockRepository) Update(c *company.Company) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *c
	m.companies[c.ID] = &copied
	return nil
}

func (m *MockRepository) Delete(superadminID, id int64) error {
	if m.shouldFail {
		return m.failError
	}
	c, ok := m.companies[id]
	if !ok || c.CreatedBy != superadminID {
		return company.ErrNotFound
	}
	delete(m.companies, id)
	delete(m.admins, id)
	return nil
}

// MockHasher implements company.PasswordHasher
type MockHasher struct {
	calls int
}

func (m *MockHasher) HashPassword(password string) (string, error) {
	m.calls++
	return "hashed:" + password, nil
}

// MockRevoker implements company.SessionRevoker
type MockRevoker struct {
	revokedCompanies []int64
	shouldFail       bool
	failError        error
}

func (m *MockRevoker) RevokeCompanyAdminSessions(companyID int64) (int, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	m.revokedCompanies = append(m.revokedCompanies, companyID)
	return 2, nil
}

var _ = Describe("Company Service", func() {
	var (
		mockRepo *MockRepository
		hasher   *MockHasher
		revoker  *MockRevoker
		service  *company.Service
	)

	const superadminID = int64(1)

	validCreate := company.CreateCompanyDTO{
		Name:          "Acme Trading",
		Email:         "contact@acme.example",
		Phone:         "081234567890",
		Address:       "Jl. Acme No. 1",
		AdminName:     "Acme Admin",
		AdminUsername: "acmeadmin",
		AdminEmail:    "admin@acme.example",
		AdminPassword: "secret-password",
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		hasher = &MockHasher{}
		revoker = &MockRevoker{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = company.NewService(mockRepo, hasher, revoker, logger)
	})

	Describe("CreateCompany", func() {
		It("should create company and bootstrap admin with a hashed password", func() {
			result, err := service.CreateCompany(superadminID, validCreate)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).NotTo(BeZero())
			Expect(result.Status).To(Equal(company.StatusActive))
			Expect(result.CreatedBy).To(Equal(superadminID))
			Expect(result.Admins).To(HaveLen(1))
			Expect(result.Admins[0].CompanyID).To(Equal(result.ID))
			Expect(result.Admins[0].PasswordHash).To(Equal("hashed:secret-password"))
			Expect(hasher.calls).To(Equal(1))
		})

		It("should reject an invalid payload before hashing anything", func() {
			dto := validCreate
			dto.Email = "not-an-email"
			_, err := service.CreateCompany(superadminID, dto)
			Expect(err).To(HaveOccurred())
			Expect(hasher.calls).To(BeZero())
		})

		It("should surface duplicate admin errors from the repository", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = company.ErrDuplicateAdmin
			_, err := service.CreateCompany(superadminID, validCreate)
			Expect(err).To(Equal(company.ErrDuplicateAdmin))
		})
	})

	Describe("UpdateCompany", func() {
		var companyID int64

		BeforeEach(func() {
			created, err := service.CreateCompany(superadminID, validCreate)
			Expect(err).NotTo(HaveOccurred())
			companyID = created.ID
		})

		updateDTO := func(status string) company.UpdateCompanyDTO {
			return company.UpdateCompanyDTO{
				Name:    "Acme Trading",
				Email:   "contact@acme.example",
				Phone:   "081234567890",
				Address: "Jl. Acme No. 2",
				Status:  status,
			}
		}

		It("should revoke admin sessions when the company flips to INACTIVE", func() {
			updated, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusInactive))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(company.StatusInactive))
			Expect(revoker.revokedCompanies).To(Equal([]int64{companyID}))
		})

		It("should not revoke anything when the company stays active", func() {
			_, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusActive))
			Expect(err).NotTo(HaveOccurred())
			Expect(revoker.revokedCompanies).To(BeEmpty())
		})

		It("should not revoke again when an inactive company is edited", func() {
			_, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusInactive))
			Expect(err).NotTo(HaveOccurred())

			revoker.revokedCompanies = nil
			_, err = service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusInactive))
			Expect(err).NotTo(HaveOccurred())
			Expect(revoker.revokedCompanies).To(BeEmpty())
		})

		It("should not revoke on reactivation", func() {
			_, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusInactive))
			Expect(err).NotTo(HaveOccurred())

			revoker.revokedCompanies = nil
			updated, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusActive))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(company.StatusActive))
			Expect(revoker.revokedCompanies).To(BeEmpty())
		})

		It("should surface revocation failures", func() {
			revoker.shouldFail = true
			revoker.failError = errors.New("revocation failed")
			_, err := service.UpdateCompany(superadminID, companyID, updateDTO(company.StatusInactive))
			Expect(err).To(MatchError("revocation failed"))
		})

		It("should scope lookups to the owning superadmin", func() {
			_, err := service.UpdateCompany(99, companyID, updateDTO(company.StatusActive))
			Expect(err).To(Equal(company.ErrNotFound))
		})

		It("should reject an unknown status", func() {
			_, err := service.UpdateCompany(superadminID, companyID, updateDTO("SUSPENDED"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteCompany", func() {
		var companyID int64

		BeforeEach(func() {
			created, err := service.CreateCompany(superadminID, validCreate)
			Expect(err).NotTo(HaveOccurred())
			companyID = created.ID
		})

		It("should revoke the tenant's admin sessions before removing it", func() {
			Expect(service.DeleteCompany(superadminID, companyID)).To(Succeed())
			Expect(revoker.revokedCompanies).To(Equal([]int64{companyID}))

			_, err := service.GetCompany(superadminID, companyID)
			Expect(err).To(Equal(company.ErrNotFound))
		})

		It("should not revoke anything for another superadmin's company", func() {
			err := service.DeleteCompany(99, companyID)
			Expect(err).To(Equal(company.ErrNotFound))
			Expect(revoker.revokedCompanies).To(BeEmpty())
		})

		It("should keep the company when revocation fails", func() {
			revoker.shouldFail = true
			revoker.failError = errors.New("revocation failed")

			err := service.DeleteCompany(superadminID, companyID)
			Expect(err).To(MatchError("revocation failed"))

			_, err = service.GetCompany(superadminID, companyID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetCompanies", func() {
		It("should only return companies created by the caller", func() {
			_, err := service.CreateCompany(superadminID, validCreate)
			Expect(err).NotTo(HaveOccurred())

			other := validCreate
			other.AdminUsername = "otheradmin"
			other.AdminEmail = "other@acme.example"
			_, err = service.CreateCompany(2, other)
			Expect(err).NotTo(HaveOccurred())

			companies, err := service.GetCompanies(superadminID)
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(1))
			Expect(companies[0].CreatedBy).To(Equal(superadminID))
		})
	})
})
