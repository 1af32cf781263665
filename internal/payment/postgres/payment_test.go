package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/salesops/internal/customer"
	"github.com/frahmantamala/salesops/internal/order"
	"github.com/frahmantamala/salesops/internal/payment"
	paymentPostgres "github.com/frahmantamala/salesops/internal/payment/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPaymentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Postgres Suite")
}

var _ = Describe("Payment Postgres Repository", func() {
	var (
		db   *gorm.DB
		repo *paymentPostgres.Repository
		o    order.Order
	)

	const (
		companyID   = int64(1)
		otherTenant = int64(2)
		employeeID  = int64(10)
		adminID     = int64(20)
	)

	submit := func(amount int64) *payment.Payment {
		p := &payment.Payment{
			CompanyID:   companyID,
			OrderID:     o.ID,
			Amount:      amount,
			Method:      "cash",
			Status:      payment.StatusPending,
			SubmittedBy: employeeID,
		}
		l := &payment.Log{Action: payment.ActionSubmitted, ActorID: employeeID, ActorRole: "employee"}
		Expect(repo.CreateWithLog(p, l)).To(Succeed())
		return p
	}

	orderPaymentStatus := func() string {
		var stored order.Order
		Expect(db.First(&stored, o.ID).Error).To(Succeed())
		return stored.PaymentStatus
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&customer.Customer{}, &order.Order{},
			&payment.Payment{}, &payment.Log{},
		)
		Expect(err).NotTo(HaveOccurred())

		cust := customer.Customer{CompanyID: companyID, LocalityID: 1, Name: "Toko Maju", Phone: "081234567890"}
		Expect(db.Create(&cust).Error).To(Succeed())

		o = order.Order{
			CompanyID:     companyID,
			CustomerID:    cust.ID,
			EmployeeID:    employeeID,
			Status:        order.StatusPending,
			PaymentStatus: order.PaymentStatusUnpaid,
			TotalAmount:   150000,
			OrderDate:     time.Now(),
		}
		Expect(db.Create(&o).Error).To(Succeed())

		repo = paymentPostgres.NewRepository(db)
	})

	Describe("CreateWithLog", func() {
		It("should insert the payment together with its SUBMITTED log row", func() {
			p := submit(50000)
			Expect(p.ID).NotTo(BeZero())

			logs, err := repo.GetLogs(companyID, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].Action).To(Equal(payment.ActionSubmitted))
			Expect(logs[0].ActorID).To(Equal(employeeID))
		})

		It("should reject an order from another tenant", func() {
			p := &payment.Payment{CompanyID: otherTenant, OrderID: o.ID, Amount: 1000, Method: "cash", Status: payment.StatusPending, SubmittedBy: employeeID}
			err := repo.CreateWithLog(p, &payment.Log{Action: payment.ActionSubmitted, ActorID: employeeID, ActorRole: "employee"})
			Expect(err).To(Equal(payment.ErrOrderNotFound))

			var count int64
			Expect(db.Model(&payment.Payment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("Approve", func() {
		It("should mark the order PARTIALLY_PAID when approvals cover part of the total", func() {
			p := submit(50000)

			approved, err := repo.Approve(companyID, p.ID, adminID, "first instalment", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(payment.StatusApproved))
			Expect(approved.ApprovedBy).NotTo(BeNil())
			Expect(*approved.ApprovedBy).To(Equal(adminID))

			Expect(orderPaymentStatus()).To(Equal(order.PaymentStatusPartiallyPaid))
		})

		It("should mark the order PAID when approvals cover the total", func() {
			first := submit(100000)
			second := submit(50000)

			_, err := repo.Approve(companyID, first.ID, adminID, "", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(orderPaymentStatus()).To(Equal(order.PaymentStatusPartiallyPaid))

			_, err = repo.Approve(companyID, second.ID, adminID, "", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(orderPaymentStatus()).To(Equal(order.PaymentStatusPaid))
		})

		It("should append an APPROVED log row", func() {
			p := submit(50000)
			_, err := repo.Approve(companyID, p.ID, adminID, "looks good", time.Now())
			Expect(err).NotTo(HaveOccurred())

			logs, err := repo.GetLogs(companyID, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(payment.ActionApproved))
			Expect(logs[1].Note).To(Equal("looks good"))
		})

		It("should refuse to process the same payment twice", func() {
			p := submit(50000)
			_, err := repo.Approve(companyID, p.ID, adminID, "", time.Now())
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Approve(companyID, p.ID, adminID, "", time.Now())
			Expect(err).To(Equal(payment.ErrNotPending))
		})

		It("should collapse a cross-tenant approval to not found", func() {
			p := submit(50000)
			_, err := repo.Approve(otherTenant, p.ID, adminID, "", time.Now())
			Expect(err).To(Equal(payment.ErrNotFound))
			Expect(orderPaymentStatus()).To(Equal(order.PaymentStatusUnpaid))
		})
	})

	Describe("Reject", func() {
		It("should leave the order payment status untouched", func() {
			p := submit(150000)

			rejected, err := repo.Reject(companyID, p.ID, adminID, "receipt unreadable", time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.Status).To(Equal(payment.StatusRejected))

			Expect(orderPaymentStatus()).To(Equal(order.PaymentStatusUnpaid))

			logs, err := repo.GetLogs(companyID, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(2))
			Expect(logs[1].Action).To(Equal(payment.ActionRejected))
		})

		It("should refuse to reject an approved payment", func() {
			p := submit(50000)
			_, err := repo.Approve(companyID, p.ID, adminID, "", time.Now())
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Reject(companyID, p.ID, adminID, "", time.Now())
			Expect(err).To(Equal(payment.ErrNotPending))
		})
	})

	Describe("GetAll", func() {
		It("should join customer names and scope by tenant", func() {
			submit(50000)

			payments, err := repo.GetAll(companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(payments).To(HaveLen(1))
			Expect(payments[0].CustomerName).To(Equal("Toko Maju"))

			other, err := repo.GetAll(otherTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(BeEmpty())
		})
	})
})
