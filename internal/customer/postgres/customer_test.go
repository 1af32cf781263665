package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/salesops/internal/customer"
	customerPostgres "github.com/frahmantamala/salesops/internal/customer/postgres"
	"github.com/frahmantamala/salesops/internal/locality"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCustomerPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Customer Postgres Suite")
}

var _ = Describe("Customer Postgres Repository", func() {
	var (
		db   *gorm.DB
		repo *customerPostgres.Repository
		loc  locality.Locality
	)

	const (
		companyID   = int64(1)
		otherTenant = int64(2)
		adminID     = int64(20)
		employeeID  = int64(10)
	)

	newCustomer := func() *customer.Customer {
		return &customer.Customer{
			CompanyID:  companyID,
			LocalityID: loc.ID,
			Name:       "Toko Maju",
			Phone:      "081234567890",
			CreatedBy:  adminID,
			UpdatedBy:  adminID,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&locality.Locality{}, &customer.Customer{})
		Expect(err).NotTo(HaveOccurred())

		loc = locality.Locality{CompanyID: companyID, Name: "Pusat Kota", CreatedBy: adminID, UpdatedBy: adminID}
		Expect(db.Create(&loc).Error).To(Succeed())

		repo = customerPostgres.NewRepository(db)
	})

	Describe("Create", func() {
		It("should insert a customer in an owned locality", func() {
			c := newCustomer()
			Expect(repo.Create(c)).To(Succeed())
			Expect(c.ID).NotTo(BeZero())
		})

		It("should reject a locality of another tenant", func() {
			foreign := locality.Locality{CompanyID: otherTenant, Name: "Elsewhere"}
			Expect(db.Create(&foreign).Error).To(Succeed())

			c := newCustomer()
			c.LocalityID = foreign.ID
			Expect(repo.Create(c)).To(Equal(customer.ErrLocalityNotFound))
		})
	})

	Describe("CreateWithLocalityName", func() {
		It("should reuse an existing locality by name", func() {
			c := newCustomer()
			c.CreatedBy = employeeID
			Expect(repo.CreateWithLocalityName(c, "Pusat Kota")).To(Succeed())
			Expect(c.LocalityID).To(Equal(loc.ID))

			var count int64
			Expect(db.Model(&locality.Locality{}).Where("company_id = ?", companyID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should create the locality when the tenant has no such name", func() {
			c := newCustomer()
			c.CreatedBy = employeeID
			Expect(repo.CreateWithLocalityName(c, "Pinggir Kota")).To(Succeed())
			Expect(c.LocalityID).NotTo(Equal(loc.ID))

			var created locality.Locality
			Expect(db.First(&created, c.LocalityID).Error).To(Succeed())
			Expect(created.Name).To(Equal("Pinggir Kota"))
			Expect(created.CompanyID).To(Equal(companyID))
			Expect(created.CreatedBy).To(Equal(employeeID))
		})

		It("should not reuse another tenant's locality of the same name", func() {
			foreign := locality.Locality{CompanyID: otherTenant, Name: "Pinggir Kota"}
			Expect(db.Create(&foreign).Error).To(Succeed())

			c := newCustomer()
			Expect(repo.CreateWithLocalityName(c, "Pinggir Kota")).To(Succeed())
			Expect(c.LocalityID).NotTo(Equal(foreign.ID))
		})
	})

	Describe("Tenant scoping", func() {
		var existing *customer.Customer

		BeforeEach(func() {
			existing = newCustomer()
			Expect(repo.Create(existing)).To(Succeed())
		})

		It("should list with locality names for the tenant only", func() {
			customers, err := repo.GetAll(companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(customers).To(HaveLen(1))
			Expect(customers[0].LocalityName).To(Equal("Pusat Kota"))

			none, err := repo.GetAll(otherTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})

		It("should collapse cross-tenant reads to not found", func() {
			_, err := repo.GetByID(otherTenant, existing.ID)
			Expect(err).To(Equal(customer.ErrNotFound))
		})

		It("should collapse cross-tenant updates to not found", func() {
			c := *existing
			c.CompanyID = otherTenant
			c.LocalityID = 0
			foreign := locality.Locality{CompanyID: otherTenant, Name: "Elsewhere"}
			Expect(db.Create(&foreign).Error).To(Succeed())
			c.LocalityID = foreign.ID
			c.UpdatedAt = time.Now()
			Expect(repo.Update(&c)).To(Equal(customer.ErrNotFound))
		})

		It("should collapse cross-tenant deletes to not found", func() {
			Expect(repo.Delete(otherTenant, existing.ID)).To(Equal(customer.ErrNotFound))

			_, err := repo.GetByID(companyID, existing.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
