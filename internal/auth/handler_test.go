package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/salesops/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RequireRole", func() {
	var nextCalled bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	decodeError := func(rec *httptest.ResponseRecorder) (int, string) {
		var body struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Code, body.Message
	}

	BeforeEach(func() {
		nextCalled = false
	})

	It("should pass a principal with an allowed role through", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), auth.AdminPrincipal(2, 7)))
		rec := httptest.NewRecorder()

		auth.RequireRole(auth.RoleAdmin)(next).ServeHTTP(rec, req)

		Expect(nextCalled).To(BeTrue())
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should reject a missing principal with the JSON error shape", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		rec := httptest.NewRecorder()

		auth.RequireRole(auth.RoleAdmin)(next).ServeHTTP(rec, req)

		Expect(nextCalled).To(BeFalse())
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		code, message := decodeError(rec)
		Expect(code).To(Equal(http.StatusUnauthorized))
		Expect(message).To(Equal("unauthorized"))
	})

	It("should reject a wrong role with the JSON error shape", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), auth.EmployeePrincipal(3, 7)))
		rec := httptest.NewRecorder()

		auth.RequireRole(auth.RoleAdmin)(next).ServeHTTP(rec, req)

		Expect(nextCalled).To(BeFalse())
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		code, message := decodeError(rec)
		Expect(code).To(Equal(http.StatusForbidden))
		Expect(message).To(ContainSubstring("insufficient permissions"))
	})
})
