package report

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/salesops/internal/auth"
	"github.com/frahmantamala/salesops/internal/transport"
	"github.com/frahmantamala/salesops/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GenerateOrderDocument(companyID, employeeID, orderID int64, reportType string) (*OrderSnapshot, error)
	GeneratePaymentReceipt(companyID, employeeID, paymentID int64) (*PaymentSnapshot, error)
	GetLogs(companyID int64, limit, offset int) ([]Log, error)
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

// GenerateOrderReport serves both ORDER_REPORT and BILL; the type comes
// from the "type" query param and defaults to ORDER_REPORT.
func (h *Handler) GenerateOrderReport(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	reportType := r.URL.Query().Get("type")
	if reportType == "" {
		reportType = TypeOrderReport
	}

	snapshot, err := h.Service.GenerateOrderDocument(p.TenantID(), p.ID, orderID, reportType)
	if err != nil {
		h.Logger.Error("GenerateOrderReport: service error", "error", err, "order_id", orderID)
		switch err {
		case ErrOrderNotFound:
			h.WriteError(w, http.StatusNotFound, "order not found")
		case ErrInvalidType:
			h.WriteError(w, http.StatusBadRequest, "unknown report type")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to generate report")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) GeneratePaymentReceipt(w http.ResponseWriter, r *http.Request) {
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

	snapshot, err := h.Service.GeneratePaymentReceipt(p.TenantID(), p.ID, paymentID)
	if err != nil {
		h.Logger.Error("GeneratePaymentReceipt: service error", "error", err, "payment_id", paymentID)
		if err == ErrPaymentNotFound {
			h.WriteError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to generate receipt")
		return
	}

	h.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) GetReportLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if o, err := strconv.Atoi(s); err == nil && o >= 0 {
			offset = o
		}
	}

	logs, err := h.Service.GetLogs(p.TenantID(), limit, offset)
	if err != nil {
		h.Logger.Error("GetReportLogs: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get report logs")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}
