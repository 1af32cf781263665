package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/salesops/internal/auth"
	"github.com/frahmantamala/salesops/internal/transport"
	"github.com/frahmantamala/salesops/pkg/logger"
	"github.com/go-chi/chi"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, companyID, adminID int64, dto CreateEmployeeDTO, photo *PhotoUpload) (*Response, error)
	GetEmployees(companyID int64) ([]Response, error)
	GetEmployee(companyID, id int64) (*Response, error)
	UpdateEmployee(companyID, id int64, dto UpdateEmployeeDTO) (*Response, error)
	TerminateEmployee(ctx context.Context, companyID, id int64) error
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

// photoFromRequest pulls the optional "photo" part out of a multipart form.
func photoFromRequest(r *http.Request) (*PhotoUpload, error) {
	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, nil
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := CreateEmployeeDTO{
		Name:     r.FormValue("name"),
		Phone:    r.FormValue("phone"),
		Email:    r.FormValue("email"),
		Address:  r.FormValue("address"),
		Password: r.FormValue("password"),
	}

	photo, err := photoFromRequest(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid photo upload")
		return
	}
	if photo != nil {
		defer func() {
			if c, ok := photo.Reader.(interface{ Close() error }); ok {
				c.Close()
			}
		}()
	}

	created, err := h.Service.CreateEmployee(r.Context(), p.TenantID(), p.ID, dto, photo)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "company_id", p.TenantID())
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employees, err := h.Service.GetEmployees(p.TenantID())
	if err != nil {
		h.Logger.Error("GetEmployees: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to get employees")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetEmployee(p.TenantID(), id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to get employee")
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateEmployee(p.TenantID(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.TerminateEmployee(r.Context(), p.TenantID(), id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee terminated successfully"})
}
