package payment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/salesops/internal/auth"
	"github.com/frahmantamala/salesops/internal/transport"
	"github.com/frahmantamala/salesops/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SubmitPayment(companyID, employeeID int64, dto SubmitPaymentDTO) (*Payment, error)
	GetPayments(companyID int64) ([]WithCustomer, error)
	GetPaymentLogs(companyID, paymentID int64) ([]Log, error)
	ApprovePayment(companyID, adminID, paymentID int64, dto ProcessPaymentDTO) (*Payment, error)
	RejectPayment(companyID, adminID, paymentID int64, dto ProcessPaymentDTO) (*Payment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) writePaymentError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		h.WriteError(w, http.StatusNotFound, "payment not found")
	case ErrOrderNotFound:
		h.WriteError(w, http.StatusNotFound, "order not found")
	case ErrNotPending:
		h.WriteError(w, http.StatusBadRequest, "payment cannot be processed in current status")
	default:
		h.HandleError(w, err)
	}
}

func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.SubmitPayment(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitPayment: service error", "error", err,
			"company_id", p.TenantID(), "employee_id", p.ID)
		h.writePaymentError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payments, err := h.Service.GetPayments(p.TenantID())
	if err != nil {
		h.Logger.Error("GetPayments: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get payments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

func (h *Handler) GetPaymentLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	paymentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid payment ID")
		return
	}

	logs, err := h.Service.GetPaymentLogs(p.TenantID(), paymentID)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.Logger.Error("GetPaymentLogs: service error", "error", err, "payment_id", paymentID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get payment logs")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	h.processPayment(w, r, h.Service.ApprovePayment)
}

func (h *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	h.processPayment(w, r, h.Service.RejectPayment)
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request,
	process func(companyID, adminID, paymentID int64, dto ProcessPaymentDTO) (*Payment, error)) {

	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	paymentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid payment ID")
		return
	}

	var dto ProcessPaymentDTO
	if r.Body != nil {
		// note body is optional
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}

	processed, err := process(p.TenantID(), p.ID, paymentID, dto)
	if err != nil {
		h.Logger.Error("processPayment: service error", "error", err,
			"payment_id", paymentID, "admin_id", p.ID)
		h.writePaymentError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, processed)
}
