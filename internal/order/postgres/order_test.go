package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/salesops/internal/customer"
	"github.com/frahmantamala/salesops/internal/order"
	orderPostgres "github.com/frahmantamala/salesops/internal/order/postgres"
	"github.com/frahmantamala/salesops/internal/payment"
	"github.com/frahmantamala/salesops/internal/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOrderPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Postgres Suite")
}

var _ = Describe("Order Postgres Repository", func() {
	var (
		db   *gorm.DB
		repo *orderPostgres.Repository
	)

	const (
		companyID   = int64(1)
		otherTenant = int64(2)
	)

	var (
		cust     customer.Customer
		rice     product.Product
		oil      product.Product
		foreign  product.Product
		employee = int64(10)
	)

	newOrder := func() *order.Order {
		return &order.Order{
			CompanyID:     companyID,
			CustomerID:    cust.ID,
			EmployeeID:    employee,
			Status:        order.StatusPending,
			PaymentStatus: order.PaymentStatusUnpaid,
			OrderDate:     time.Now(),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&customer.Customer{}, &product.Product{},
			&order.Order{}, &order.Detail{}, &payment.Payment{},
		)
		Expect(err).NotTo(HaveOccurred())

		cust = customer.Customer{CompanyID: companyID, LocalityID: 1, Name: "Toko Maju", Phone: "081234567890"}
		Expect(db.Create(&cust).Error).To(Succeed())

		rice = product.Product{CompanyID: companyID, Name: "Beras Premium 5kg", UnitPrice: 75000, Unit: "sack"}
		oil = product.Product{CompanyID: companyID, Name: "Minyak Goreng 2L", UnitPrice: 38000, Unit: "bottle"}
		foreign = product.Product{CompanyID: otherTenant, Name: "Gula Pasir 1kg", UnitPrice: 16000, Unit: "pack"}
		Expect(db.Create(&rice).Error).To(Succeed())
		Expect(db.Create(&oil).Error).To(Succeed())
		Expect(db.Create(&foreign).Error).To(Succeed())

		repo = orderPostgres.NewRepository(db)
	})

	Describe("CreateWithItems", func() {
		It("should compute subtotals and total from the catalog price", func() {
			o := newOrder()
			details, err := repo.CreateWithItems(o, []order.ItemInput{
				{ProductID: rice.ID, Quantity: 2},
				{ProductID: oil.ID, Quantity: 3},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(o.ID).NotTo(BeZero())
			Expect(o.TotalAmount).To(Equal(int64(2*75000 + 3*38000)))
			Expect(details).To(HaveLen(2))
			Expect(details[0].UnitPrice).To(Equal(int64(75000)))
			Expect(details[0].Subtotal).To(Equal(int64(150000)))
			Expect(details[1].OrderID).To(Equal(o.ID))
		})

		It("should keep frozen line prices when the catalog changes later", func() {
			o := newOrder()
			_, err := repo.CreateWithItems(o, []order.ItemInput{{ProductID: rice.ID, Quantity: 1}})
			Expect(err).NotTo(HaveOccurred())

			Expect(db.Model(&product.Product{}).Where("id = ?", rice.ID).Update("unit_price", 99000).Error).To(Succeed())

			details, err := repo.GetDetails(companyID, o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details).To(HaveLen(1))
			Expect(details[0].UnitPrice).To(Equal(int64(75000)))

			stored, err := repo.GetByID(companyID, o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.TotalAmount).To(Equal(int64(75000)))
		})

		It("should reject an empty item list", func() {
			_, err := repo.CreateWithItems(newOrder(), nil)
			Expect(err).To(Equal(order.ErrNoItems))
		})

		It("should roll back everything when a product belongs to another tenant", func() {
			o := newOrder()
			_, err := repo.CreateWithItems(o, []order.ItemInput{
				{ProductID: rice.ID, Quantity: 1},
				{ProductID: foreign.ID, Quantity: 1},
			})
			Expect(err).To(Equal(order.ErrProductNotFound))

			var count int64
			Expect(db.Model(&order.Order{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
			Expect(db.Model(&order.Detail{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("should reject a customer from another tenant", func() {
			o := newOrder()
			o.CompanyID = otherTenant
			_, err := repo.CreateWithItems(o, []order.ItemInput{{ProductID: foreign.ID, Quantity: 1}})
			Expect(err).To(Equal(order.ErrCustomerNotFound))
		})
	})

	Describe("Lookups", func() {
		var o *order.Order

		BeforeEach(func() {
			o = newOrder()
			_, err := repo.CreateWithItems(o, []order.ItemInput{{ProductID: rice.ID, Quantity: 2}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should list orders with customer names", func() {
			orders, err := repo.GetAll(companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(orders[0].CustomerName).To(Equal("Toko Maju"))
		})

		It("should join product names into details", func() {
			details, err := repo.GetDetails(companyID, o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details).To(HaveLen(1))
			Expect(details[0].ProductName).To(Equal("Beras Premium 5kg"))
		})

		It("should hide details from another tenant", func() {
			details, err := repo.GetDetails(otherTenant, o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details).To(BeEmpty())
		})

		It("should collapse a cross-tenant lookup to not found", func() {
			_, err := repo.GetByID(otherTenant, o.ID)
			Expect(err).To(Equal(order.ErrNotFound))
		})
	})

	Describe("OutstandingDue", func() {
		var o *order.Order

		BeforeEach(func() {
			o = newOrder()
			_, err := repo.CreateWithItems(o, []order.ItemInput{{ProductID: rice.ID, Quantity: 2}}) // 150000
			Expect(err).NotTo(HaveOccurred())

			approved := payment.Payment{CompanyID: companyID, OrderID: o.ID, Amount: 50000, Method: "cash", Status: payment.StatusApproved, SubmittedBy: employee}
			pending := payment.Payment{CompanyID: companyID, OrderID: o.ID, Amount: 100000, Method: "cash", Status: payment.StatusPending, SubmittedBy: employee}
			Expect(db.Create(&approved).Error).To(Succeed())
			Expect(db.Create(&pending).Error).To(Succeed())
		})

		It("should subtract only approved payments", func() {
			due, err := repo.OutstandingDue(companyID, cust.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(Equal(int64(100000)))
		})

		It("should clamp overpayment to zero", func() {
			extra := payment.Payment{CompanyID: companyID, OrderID: o.ID, Amount: 500000, Method: "transfer", Status: payment.StatusApproved, SubmittedBy: employee}
			Expect(db.Create(&extra).Error).To(Succeed())

			due, err := repo.OutstandingDue(companyID, cust.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(BeZero())
		})

		It("should return zero for a customer with no orders", func() {
			due, err := repo.OutstandingDue(companyID, 999)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(BeZero())
		})
	})
})
