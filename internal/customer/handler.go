package customer

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
	CreateCustomer(companyID, actorID int64, dto CustomerDTO) (*Customer, error)
	CreateFieldCustomer(companyID, employeeID int64, dto FieldCustomerDTO) (*Customer, error)
	GetCustomers(companyID int64) ([]WithLocality, error)
	GetCustomer(companyID, id int64) (*Customer, error)
	UpdateCustomer(companyID, actorID, id int64, dto CustomerDTO) (*Customer, error)
	DeleteCustomer(companyID, id int64) error
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

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCustomer(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateCustomer: service error", "error", err, "company_id", p.TenantID())
		if err == ErrLocalityNotFound {
			h.WriteError(w, http.StatusNotFound, "locality not found")
			return
		}
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

// CreateFieldCustomer is the employee-side create: locality by name,
// auto-created when missing.
func (h *Handler) CreateFieldCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto FieldCustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateFieldCustomer(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateFieldCustomer: service error", "error", err, "company_id", p.TenantID())
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	customers, err := h.Service.GetCustomers(p.TenantID())
	if err != nil {
		h.Logger.Error("GetCustomers: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get customers")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	c, err := h.Service.GetCustomer(p.TenantID(), id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.Logger.Error("GetCustomer: service error", "error", err, "customer_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.UpdateCustomer(p.TenantID(), p.ID, id, dto)
	if err != nil {
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "customer not found")
		case ErrLocalityNotFound:
			h.WriteError(w, http.StatusNotFound, "locality not found")
		default:
			h.Logger.Error("UpdateCustomer: service error", "error", err, "customer_id", id)
			h.HandleError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	if err := h.Service.DeleteCustomer(p.TenantID(), id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.Logger.Error("DeleteCustomer: service error", "error", err, "customer_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
