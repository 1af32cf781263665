package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/salesops/internal/auth"
	"github.com/frahmantamala/salesops/internal/transport"
	"github.com/frahmantamala/salesops/pkg/logger"
	"github.com/go-chi/chi"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type ServiceAPI interface {
	CheckIn(ctx context.Context, companyID, employeeID int64, lat, lng float64, photo *PhotoUpload) (*Attendance, error)
	CheckOut(ctx context.Context, companyID, employeeID int64, lat, lng float64, photo *PhotoUpload) (*Attendance, error)
	TodayStatus(companyID, employeeID int64) (*Attendance, error)
	Summary(companyID, employeeID int64, from, to time.Time) ([]Attendance, error)
	ListAll(companyID int64, from, to time.Time) ([]WithEmployee, error)
	DeleteRecord(companyID, id int64) error
	RejectRecord(companyID, id int64, status string) (*Attendance, error)
	AggregateReport(companyID int64, from, to time.Time) (*Report, error)
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

func (h *Handler) writeAttendanceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		h.WriteError(w, http.StatusNotFound, "attendance record not found")
	case ErrAlreadyCheckedIn:
		h.WriteError(w, http.StatusBadRequest, "already checked in today")
	case ErrNotCheckedIn:
		h.WriteError(w, http.StatusBadRequest, "no check-in record found for today")
	case ErrAlreadyCheckedOut:
		h.WriteError(w, http.StatusBadRequest, "already checked out today")
	case ErrInvalidStatus:
		h.WriteError(w, http.StatusBadRequest, "status must be ABSENT or LATE")
	default:
		h.HandleError(w, err)
	}
}

// parseCheckForm extracts geolocation and the photo from the multipart
// check-in/out payload.
func (h *Handler) parseCheckForm(r *http.Request) (lat, lng float64, photo *PhotoUpload, err error) {
	if err = r.ParseMultipartForm(maxPhotoSize); err != nil {
		return 0, 0, nil, err
	}

	lat, err = strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		return 0, 0, nil, err
	}
	lng, err = strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		return 0, 0, nil, err
	}

	file, header, ferr := r.FormFile("photo")
	if ferr == http.ErrMissingFile {
		return lat, lng, nil, nil
	}
	if ferr != nil {
		return 0, 0, nil, ferr
	}

	photo = &PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
	return lat, lng, photo, nil
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lat, lng, photo, err := h.parseCheckForm(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid check-in payload")
		return
	}

	a, err := h.Service.CheckIn(r.Context(), p.TenantID(), p.ID, lat, lng, photo)
	if err != nil {
		h.Logger.Warn("CheckIn: service error", "error", err, "employee_id", p.ID)
		h.writeAttendanceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lat, lng, photo, err := h.parseCheckForm(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid check-out payload")
		return
	}

	a, err := h.Service.CheckOut(r.Context(), p.TenantID(), p.ID, lat, lng, photo)
	if err != nil {
		h.Logger.Warn("CheckOut: service error", "error", err, "employee_id", p.ID)
		h.writeAttendanceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// CheckInStatus reports whether today's check-in happened yet.
func (h *Handler) CheckInStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.Service.TodayStatus(p.TenantID(), p.ID)
	if err != nil {
		h.Logger.Error("CheckInStatus: service error", "error", err, "employee_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get check-in status")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checked_in": a != nil && a.CheckedIn(),
		"attendance": a,
	})
}

func (h *Handler) CheckOutStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.Service.TodayStatus(p.TenantID(), p.ID)
	if err != nil {
		h.Logger.Error("CheckOutStatus: service error", "error", err, "employee_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get check-out status")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checked_out": a != nil && a.CheckedOut(),
		"attendance":  a,
	})
}

// dateRange parses optional from/to query params, defaulting to the last 30
// days.
func dateRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := DayOf(now.AddDate(0, 0, -30))
	to := DayOf(now).AddDate(0, 0, 1)

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to := dateRange(r)
	records, err := h.Service.Summary(p.TenantID(), p.ID, from, to)
	if err != nil {
		h.Logger.Error("Summary: service error", "error", err, "employee_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get attendance summary")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attendance": records})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to := dateRange(r)
	records, err := h.Service.ListAll(p.TenantID(), from, to)
	if err != nil {
		h.Logger.Error("ListAll: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to list attendance")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attendance": records})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance ID")
		return
	}

	if err := h.Service.DeleteRecord(p.TenantID(), id); err != nil {
		h.Logger.Error("DeleteRecord: service error", "error", err, "attendance_id", id)
		h.writeAttendanceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Attendance record deleted successfully"})
}

func (h *Handler) RejectRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance ID")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.RejectRecord(p.TenantID(), id, body.Status)
	if err != nil {
		h.Logger.Error("RejectRecord: service error", "error", err, "attendance_id", id)
		h.writeAttendanceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) AggregateReport(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	from, to := dateRange(r)
	report, err := h.Service.AggregateReport(p.TenantID(), from, to)
	if err != nil {
		h.Logger.Error("AggregateReport: service error", "error", err, "company_id", p.TenantID())
		h.WriteError(w, http.StatusInternalServerError, "failed to build attendance report")
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}
