package attendance

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/salesops/internal/storage"
)

// PhotoUpload carries the multipart attendance photo from handler to
// service.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service struct {
	repo   RepositoryAPI
	files  storage.Storage
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, files storage.Storage, logger *slog.Logger) *Service {
	return &Service{repo: repo, files: files, logger: logger}
}

// CheckIn creates today's attendance row. A second check-in the same day is
// rejected regardless of payload.
func (s *Service) CheckIn(ctx context.Context, companyID, employeeID int64, lat, lng float64, photo *PhotoUpload) (*Attendance, error) {
	now := time.Now()
	day := DayOf(now)

	existing, err := s.repo.GetForDay(companyID, employeeID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	a := &Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Day:        day,
		CheckInAt:  &now,
		CheckInLat: &lat,
		CheckInLng: &lng,
		Status:     StatusPresent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if photo != nil {
		key, err := s.files.Save(ctx, "attendance", photo.Filename, photo.Reader, photo.Size, photo.ContentType)
		if err != nil {
			s.logger.Error("check-in photo upload failed", "error", err, "employee_id", employeeID)
			return nil, err
		}
		a.CheckInPhotoKey = &key
	}

	if err := s.repo.Create(a); err != nil {
		if a.CheckInPhotoKey != nil {
			_ = s.files.Delete(ctx, *a.CheckInPhotoKey)
		}
		s.logger.Error("check-in failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("employee checked in", "employee_id", employeeID, "attendance_id", a.ID)
	return a, nil
}

// CheckOut completes today's row; it requires a same-day check-in and
// rejects a second check-out.
func (s *Service) CheckOut(ctx context.Context, companyID, employeeID int64, lat, lng float64, photo *PhotoUpload) (*Attendance, error) {
	now := time.Now()

	a, err := s.repo.GetForDay(companyID, employeeID, DayOf(now))
	if err != nil {
		return nil, err
	}
	if a == nil || !a.CheckedIn() {
		return nil, ErrNotCheckedIn
	}
	if a.CheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	a.CheckOutAt = &now
	a.CheckOutLat = &lat
	a.CheckOutLng = &lng
	a.UpdatedAt = now

	if photo != nil {
		key, err := s.files.Save(ctx, "attendance", photo.Filename, photo.Reader, photo.Size, photo.ContentType)
		if err != nil {
			s.logger.Error("check-out photo upload failed", "error", err, "employee_id", employeeID)
			return nil, err
		}
		a.CheckOutPhotoKey = &key
	}

	if err := s.repo.Update(a); err != nil {
		if a.CheckOutPhotoKey != nil {
			_ = s.files.Delete(ctx, *a.CheckOutPhotoKey)
		}
		s.logger.Error("check-out failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("employee checked out", "employee_id", employeeID, "attendance_id", a.ID)
	return a, nil
}

// TodayStatus backs the check-in/out probes.
func (s *Service) TodayStatus(companyID, employeeID int64) (*Attendance, error) {
	return s.repo.GetForDay(companyID, employeeID, DayOf(time.Now()))
}

func (s *Service) Summary(companyID, employeeID int64, from, to time.Time) ([]Attendance, error) {
	return s.repo.GetByEmployeeRange(companyID, employeeID, from, to)
}

func (s *Service) ListAll(companyID int64, from, to time.Time) ([]WithEmployee, error) {
	records, err := s.repo.GetAllRange(companyID, from, to)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err, "company_id", companyID)
		return nil, err
	}
	return records, nil
}

func (s *Service) DeleteRecord(companyID, id int64) error {
	return s.repo.Delete(companyID, id)
}

// RejectRecord lets an admin overrule a PRESENT mark; only the two negative
// statuses are accepted.
func (s *Service) RejectRecord(companyID, id int64, status string) (*Attendance, error) {
	if status != StatusAbsent && status != StatusLate {
		return nil, ErrInvalidStatus
	}

	a, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	a.Status = status
	a.UpdatedAt = time.Now()
	if err := s.repo.Update(a); err != nil {
		return nil, err
	}

	s.logger.Info("attendance rejected", "attendance_id", id, "status", status)
	return a, nil
}

func (s *Service) AggregateReport(companyID int64, from, to time.Time) (*Report, error) {
	return s.repo.Aggregate(companyID, from, to)
}
