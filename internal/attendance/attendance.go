package attendance

import (
	"errors"
	"time"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
)

var (
	ErrNotFound          = errors.New("attendance record not found")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no check-in record found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrInvalidStatus     = errors.New("status must be ABSENT or LATE")
)

// Attendance is one employee-day. Check-in creates the row (photo plus
// geolocation, status PRESENT); check-out completes it. One row per
// employee per day, enforced at the repository.
type Attendance struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	CompanyID  int64     `json:"company_id"`
	EmployeeID int64     `json:"employee_id"`
	Day        time.Time `json:"day" gorm:"column:day"`

	CheckInAt       *time.Time `json:"check_in_at,omitempty"`
	CheckInPhotoKey *string    `json:"-" gorm:"column:check_in_photo_key"`
	CheckInLat      *float64   `json:"check_in_lat,omitempty"`
	CheckInLng      *float64   `json:"check_in_lng,omitempty"`

	CheckOutAt       *time.Time `json:"check_out_at,omitempty"`
	CheckOutPhotoKey *string    `json:"-" gorm:"column:check_out_photo_key"`
	CheckOutLat      *float64   `json:"check_out_lat,omitempty"`
	CheckOutLng      *float64   `json:"check_out_lng,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string { return "attendance" }

func (a *Attendance) CheckedIn() bool  { return a.CheckInAt != nil }
func (a *Attendance) CheckedOut() bool { return a.CheckOutAt != nil }

// WithEmployee is the admin list shape.
type WithEmployee struct {
	Attendance
	EmployeeName string `json:"employee_name"`
}

// Report aggregates a date range for the admin dashboard.
type Report struct {
	TotalRecords int64            `json:"total_records"`
	CheckedIn    int64            `json:"checked_in"`
	CheckedOut   int64            `json:"checked_out"`
	ByStatus     map[string]int64 `json:"by_status"`
}

// Day truncates to the employee's calendar date; the once-per-day rule
// keys on this.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type RepositoryAPI interface {
	Create(a *Attendance) error
	Update(a *Attendance) error
	GetByID(companyID, id int64) (*Attendance, error)
	// GetForDay returns nil when the employee has no record for that day.
	GetForDay(companyID, employeeID int64, day time.Time) (*Attendance, error)
	GetByEmployeeRange(companyID, employeeID int64, from, to time.Time) ([]Attendance, error)
	GetAllRange(companyID int64, from, to time.Time) ([]WithEmployee, error)
	Delete(companyID, id int64) error
	Aggregate(companyID int64, from, to time.Time) (*Report, error)
}
