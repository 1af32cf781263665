package product

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
	CreateProduct(companyID, actorID int64, dto ProductDTO) (*Product, error)
	GetProducts(companyID int64) ([]*Product, error)
	GetProduct(companyID, id int64) (*Product, error)
	UpdateProduct(companyID, actorID, id int64, dto ProductDTO) (*Product, error)
	DeleteProduct(companyID, id int64) error
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

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prod, err := h.Service.CreateProduct(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err, "company_id", p.TenantID())
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, prod)
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	products, err := h.Service.GetProducts(p.TenantID())
	if err != nil {
		h.Logger.Error("GetProducts: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	prod, err := h.Service.GetProduct(p.TenantID(), id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Logger.Error("GetProduct: service error", "error", err, "product_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	h.WriteJSON(w, http.StatusOK, prod)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var dto ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prod, err := h.Service.UpdateProduct(p.TenantID(), p.ID, id, dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", id)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, prod)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.Service.DeleteProduct(p.TenantID(), id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Logger.Error("DeleteProduct: service error", "error", err, "product_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
