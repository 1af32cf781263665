package locality

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
	CreateLocality(companyID, actorID int64, dto LocalityDTO) (*Locality, error)
	GetLocalities(companyID int64) ([]*Locality, error)
	GetLocality(companyID, id int64) (*Locality, error)
	UpdateLocality(companyID, actorID, id int64, dto LocalityDTO) (*Locality, error)
	DeleteLocality(companyID, id int64) error
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

func (h *Handler) CreateLocality(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto LocalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLocality(p.TenantID(), p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateLocality: service error", "error", err, "company_id", p.TenantID())
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) GetLocalities(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	localities, err := h.Service.GetLocalities(p.TenantID())
	if err != nil {
		h.Logger.Error("GetLocalities: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get localities")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"localities": localities})
}

func (h *Handler) GetLocality(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid locality ID")
		return
	}

	l, err := h.Service.GetLocality(p.TenantID(), id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "locality not found")
			return
		}
		h.Logger.Error("GetLocality: service error", "error", err, "locality_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to get locality")
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateLocality(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid locality ID")
		return
	}

	var dto LocalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.UpdateLocality(p.TenantID(), p.ID, id, dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "locality not found")
			return
		}
		h.Logger.Error("UpdateLocality: service error", "error", err, "locality_id", id)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLocality(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid locality ID")
		return
	}

	if err := h.Service.DeleteLocality(p.TenantID(), id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "locality not found")
			return
		}
		h.Logger.Error("DeleteLocality: service error", "error", err, "locality_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete locality")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Locality deleted successfully"})
}
