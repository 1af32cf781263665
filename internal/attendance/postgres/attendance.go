package postgres

import (
	"time"

	"github.com/frahmantamala/salesops/internal/attendance"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(a *attendance.Attendance) error {
	return r.db.Create(a).Error
}

func (r *Repository) Update(a *attendance.Attendance) error {
	res := r.db.Model(&attendance.Attendance{}).
		Where("id = ? AND company_id = ?", a.ID, a.CompanyID).
		Updates(map[string]interface{}{
			"check_out_at":        a.CheckOutAt,
			"check_out_photo_key": a.CheckOutPhotoKey,
			"check_out_lat":       a.CheckOutLat,
			"check_out_lng":       a.CheckOutLng,
			"status":              a.Status,
			"updated_at":          a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(companyID, id int64) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetForDay(companyID, employeeID int64, day time.Time) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := r.db.Where("company_id = ? AND employee_id = ? AND day = ?", companyID, employeeID, day).
		First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByEmployeeRange(companyID, employeeID int64, from, to time.Time) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	err := r.db.Where("company_id = ? AND employee_id = ? AND day >= ? AND day < ?",
		companyID, employeeID, from, to).
		Order("day DESC").
		Find(&records).Error
	return records, err
}

func (r *Repository) GetAllRange(companyID int64, from, to time.Time) ([]attendance.WithEmployee, error) {
	var records []attendance.WithEmployee
	err := r.db.Raw(`
		SELECT a.*, e.name AS employee_name
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.company_id = ? AND a.day >= ? AND a.day < ?
		ORDER BY a.day DESC, e.name ASC
	`, companyID, from, to).Scan(&records).Error
	return records, err
}

func (r *Repository) Delete(companyID, id int64) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&attendance.Attendance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (r *Repository) Aggregate(companyID int64, from, to time.Time) (*attendance.Report, error) {
	report := &attendance.Report{ByStatus: make(map[string]int64)}

	base := r.db.Model(&attendance.Attendance{}).
		Where("company_id = ? AND day >= ? AND day < ?", companyID, from, to)

	if err := base.Session(&gorm.Session{}).Count(&report.TotalRecords).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("check_in_at IS NOT NULL").
		Count(&report.CheckedIn).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("check_out_at IS NOT NULL").
		Count(&report.CheckedOut).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		N      int64
	}
	if err := r.db.Model(&attendance.Attendance{}).
		Select("status, COUNT(*) AS n").
		Where("company_id = ? AND day >= ? AND day < ?", companyID, from, to).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		report.ByStatus[row.Status] = row.N
	}

	return report, nil
}
