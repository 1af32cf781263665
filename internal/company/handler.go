package company

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
	CreateCompany(superadminID int64, dto CreateCompanyDTO) (*CompanyWithAdmins, error)
	GetCompanies(superadminID int64) ([]CompanyWithAdmins, error)
	GetCompany(superadminID, id int64) (*Company, error)
	UpdateCompany(superadminID, id int64, dto UpdateCompanyDTO) (*Company, error)
	DeleteCompany(superadminID, id int64) error
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

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateCompany(p.ID, dto)
	if err != nil {
		h.Logger.Error("CreateCompany: service error", "error", err, "superadmin_id", p.ID)
		if err == ErrDuplicateAdmin {
			h.WriteError(w, http.StatusConflict, "admin username or email already exists")
			return
		}
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	companies, err := h.Service.GetCompanies(p.ID)
	if err != nil {
		h.Logger.Error("GetCompanies: service error", "error", err, "superadmin_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get companies")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company ID")
		return
	}

	c, err := h.Service.GetCompany(p.ID, id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		h.Logger.Error("GetCompany: service error", "error", err, "company_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to get company")
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company ID")
		return
	}

	var dto UpdateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.UpdateCompany(p.ID, id, dto)
	if err != nil {
		h.Logger.Error("UpdateCompany: service error", "error", err, "company_id", id)
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company ID")
		return
	}

	if err := h.Service.DeleteCompany(p.ID, id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		h.Logger.Error("DeleteCompany: service error", "error", err, "company_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete company")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Company deleted successfully"})
}
