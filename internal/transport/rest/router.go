package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/salesops/internal/attendance"
	"github.com/frahmantamala/salesops/internal/auth"
	"github.com/frahmantamala/salesops/internal/company"
	"github.com/frahmantamala/salesops/internal/customer"
	"github.com/frahmantamala/salesops/internal/employee"
	"github.com/frahmantamala/salesops/internal/locality"
	"github.com/frahmantamala/salesops/internal/order"
	"github.com/frahmantamala/salesops/internal/payment"
	"github.com/frahmantamala/salesops/internal/product"
	"github.com/frahmantamala/salesops/internal/report"
	"github.com/frahmantamala/salesops/internal/transport/middleware"
	"github.com/frahmantamala/salesops/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Company    *company.Handler
	Employee   *employee.Handler
	Locality   *locality.Handler
	Customer   *customer.Handler
	Product    *product.Handler
	Order      *order.Handler
	Payment    *payment.Handler
	Attendance *attendance.Handler
	Report     *report.Handler
}

// RegisterAllRoutes wires the full API surface: public logins, then three
// role-gated groups sharing the same auth gate.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins, uploadsDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		router.Handle("/uploads/*", fs)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public logins, one per role.
		r.Post("/superadmin/login", h.Auth.LoginSuperadmin)
		r.Post("/admin/login", h.Auth.LoginAdmin)
		r.Post("/employee/login", h.Auth.LoginEmployee)

		r.Route("/superadmin", func(sr chi.Router) {
			sr.Use(h.Auth.AuthMiddleware)
			sr.Use(auth.RequireRole(auth.RoleSuperadmin))

			sr.Get("/check-token", h.Auth.CheckToken)
			sr.Post("/change-password", h.Auth.ChangePassword)

			sr.Route("/companies", func(cr chi.Router) {
				cr.Post("/", h.Company.CreateCompany)
				cr.Get("/", h.Company.GetCompanies)
				cr.Get("/{id}", h.Company.GetCompany)
				cr.Put("/{id}", h.Company.UpdateCompany)
				cr.Delete("/{id}", h.Company.DeleteCompany)
			})
		})

		r.Route("/admin", func(ar chi.Router) {
			ar.Use(h.Auth.AuthMiddleware)
			ar.Use(auth.RequireRole(auth.RoleAdmin))

			ar.Get("/check-token", h.Auth.CheckToken)
			ar.Post("/change-password", h.Auth.ChangePassword)

			ar.Route("/employees", func(er chi.Router) {
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/", h.Employee.GetEmployees)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Put("/{id}", h.Employee.UpdateEmployee)
				er.Delete("/{id}", h.Employee.DeleteEmployee)
			})

			ar.Route("/localities", func(lr chi.Router) {
				lr.Post("/", h.Locality.CreateLocality)
				lr.Get("/", h.Locality.GetLocalities)
				lr.Get("/{id}", h.Locality.GetLocality)
				lr.Put("/{id}", h.Locality.UpdateLocality)
				lr.Delete("/{id}", h.Locality.DeleteLocality)
			})

			ar.Route("/customers", func(cr chi.Router) {
				cr.Post("/", h.Customer.CreateCustomer)
				cr.Get("/", h.Customer.GetCustomers)
				cr.Get("/{id}", h.Customer.GetCustomer)
				cr.Put("/{id}", h.Customer.UpdateCustomer)
				cr.Delete("/{id}", h.Customer.DeleteCustomer)
			})

			ar.Route("/products", func(pr chi.Router) {
				pr.Post("/", h.Product.CreateProduct)
				pr.Get("/", h.Product.GetProducts)
				pr.Get("/{id}", h.Product.GetProduct)
				pr.Put("/{id}", h.Product.UpdateProduct)
				pr.Delete("/{id}", h.Product.DeleteProduct)
			})

			ar.Route("/orders", func(or chi.Router) {
				or.Get("/", h.Order.GetOrders)
				or.Get("/{id}/details", h.Order.GetOrderDetails)
			})

			ar.Route("/payments", func(pr chi.Router) {
				pr.Get("/", h.Payment.GetPayments)
				pr.Get("/{id}/logs", h.Payment.GetPaymentLogs)
				pr.Patch("/{id}/approve", h.Payment.ApprovePayment)
				pr.Patch("/{id}/reject", h.Payment.RejectPayment)
			})

			ar.Route("/attendance", func(atr chi.Router) {
				atr.Get("/", h.Attendance.ListAll)
				atr.Get("/report", h.Attendance.AggregateReport)
				atr.Patch("/{id}/reject", h.Attendance.RejectRecord)
				atr.Delete("/{id}", h.Attendance.DeleteRecord)
			})
		})

		r.Route("/employee", func(er chi.Router) {
			er.Use(h.Auth.AuthMiddleware)
			er.Use(auth.RequireRole(auth.RoleEmployee))

			er.Get("/check-token", h.Auth.CheckToken)
			er.Post("/change-password", h.Auth.ChangePassword)

			er.Post("/customers", h.Customer.CreateFieldCustomer)
			er.Get("/customers", h.Customer.GetCustomers)
			er.Get("/customers/{customerID}/orders", h.Order.GetCustomerOrders)

			er.Post("/orders", h.Order.CreateOrder)
			er.Get("/orders/{id}/details", h.Order.GetOrderDetails)

			er.Post("/payments", h.Payment.SubmitPayment)

			er.Route("/attendance", func(atr chi.Router) {
				atr.Post("/check-in", h.Attendance.CheckIn)
				atr.Post("/check-out", h.Attendance.CheckOut)
				atr.Get("/check-in/status", h.Attendance.CheckInStatus)
				atr.Get("/check-out/status", h.Attendance.CheckOutStatus)
				atr.Get("/summary", h.Attendance.Summary)
			})

			er.Route("/reports", func(rr chi.Router) {
				rr.Get("/orders/{id}", h.Report.GenerateOrderReport)
				rr.Get("/payments/{id}/receipt", h.Report.GeneratePaymentReceipt)
				rr.Get("/logs", h.Report.GetReportLogs)
			})
		})
	})
}
