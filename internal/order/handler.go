package order

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
	CreateOrder(companyID, employeeID int64, dto CreateOrderDTO) (*CreateOrderResponse, error)
	GetOrders(companyID int64) ([]WithCustomer, error)
	GetOrderDetails(companyID, orderID int64) ([]DetailWithProduct, error)
	GetCustomerLedger(companyID, customerID int64) (*CustomerLedger, error)
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

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.CreateOrder(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err,
			"company_id", p.TenantID(), "employee_id", p.ID)
		switch err {
		case ErrCustomerNotFound:
			h.WriteError(w, http.StatusNotFound, "customer not found")
		case ErrProductNotFound:
			h.WriteError(w, http.StatusNotFound, "product not found")
		default:
			h.HandleError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.Service.GetOrders(p.TenantID())
	if err != nil {
		h.Logger.Error("GetOrders: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *Handler) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.Service.GetOrderDetails(p.TenantID(), orderID)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "order not found")
			return
		}
		h.Logger.Error("GetOrderDetails: service error", "error", err, "order_id", orderID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get order details")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"details": details})
}

// GetCustomerOrders serves the employee's customer ledger: order history
// plus outstanding due.
func (h *Handler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	ledger, err := h.Service.GetCustomerLedger(p.TenantID(), customerID)
	if err != nil {
		h.Logger.Error("GetCustomerOrders: service error", "error", err, "customer_id", customerID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get customer orders")
		return
	}

	h.WriteJSON(w, http.StatusOK, ledger)
}
