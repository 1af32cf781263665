package attendance_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/salesops/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

// MockRepository implements attendance.RepositoryAPI in memory
type MockRepository struct {
	records    map[int64]*attendance.Attendance
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{records: make(map[int64]*attendance.Attendance), nextID: 1}
}

func (m *MockRepository) Create(a *attendance.Attendance) error {
	if m.shouldFail {
		return m.failError
	}
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.records[a.ID] = &copied
	return nil
}

func (m *MockRepository) Update(a *attendance.Attendance) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *a
	m.records[a.ID] = &copied
	return nil
}

func (m *MockRepository) GetByID(companyID, id int64) (*attendance.Attendance, error) {
	a, ok := m.records[id]
	if !ok || a.CompanyID != companyID {
		return nil, attendance.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *MockRepository) GetForDay(companyID, employeeID int64, day time.Time) (*attendance.Attendance, error) {
	for _, a := range m.records {
		if a.CompanyID == companyID && a.EmployeeID == employeeID && a.Day.Equal(day) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByEmployeeRange(companyID, employeeID int64, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.records {
		if a.CompanyID == companyID && a.EmployeeID == employeeID && !a.Day.Before(from) && a.Day.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *MockRepository) GetAllRange(companyID int64, from, to time.Time) ([]attendance.WithEmployee, error) {
	var out []attendance.WithEmployee
	for _, a := range m.records {
		if a.CompanyID == companyID && !a.Day.Before(from) && a.Day.Before(to) {
			out = append(out, attendance.WithEmployee{Attendance: *a})
		}
	}
	return out, nil
}

func (m *MockRepository) Delete(companyID, id int64) error {
	a, ok := m.records[id]
	if !ok || a.CompanyID != companyID {
		return attendance.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockRepository) Aggregate(companyID int64, from, to time.Time) (*attendance.Report, error) {
	report := &attendance.Report{ByStatus: make(map[string]int64)}
	for _, a := range m.records {
		if a.CompanyID != companyID || a.Day.Before(from) || !a.Day.Before(to) {
			continue
		}
		report.TotalRecords++
		if a.CheckedIn() {
			report.CheckedIn++
		}
		if a.CheckedOut() {
			report.CheckedOut++
		}
		report.ByStatus[a.Status]++
	}
	return report, nil
}

// MockStorage implements storage.Storage in memory
type MockStorage struct {
	saved      map[string][]byte
	deleted    []string
	nextKey    int
	shouldFail bool
	failError  error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{saved: make(map[string][]byte)}
}

func (m *MockStorage) Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if m.shouldFail {
		return "", m.failError
	}
	m.nextKey++
	key := dir + "/" + filename
	data, _ := io.ReadAll(r)
	m.saved[key] = data
	return key, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	delete(m.saved, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockStorage) URL(key string) string { return "/uploads/" + key }

var _ = Describe("Attendance Service", func() {
	var (
		mockRepo *MockRepository
		files    *MockStorage
		service  *attendance.Service
		ctx      context.Context
	)

	const (
		companyID  = int64(1)
		employeeID = int64(10)
	)

	photo := func() *attendance.PhotoUpload {
		return &attendance.PhotoUpload{
			Filename:    "selfie.jpg",
			ContentType: "image/jpeg",
			Size:        4,
			Reader:      strings.NewReader("data"),
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		files = NewMockStorage()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = attendance.NewService(mockRepo, files, logger)
		ctx = context.Background()
	})

	Describe("CheckIn", func() {
		It("should create today's record with coordinates and photo", func() {
			a, err := service.CheckIn(ctx, companyID, employeeID, -6.2, 106.8, photo())
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).NotTo(BeZero())
			Expect(a.CheckedIn()).To(BeTrue())
			Expect(a.Status).To(Equal(attendance.StatusPresent))
			Expect(*a.CheckInLat).To(Equal(-6.2))
			Expect(a.CheckInPhotoKey).NotTo(BeNil())
			Expect(files.saved).To(HaveKey(*a.CheckInPhotoKey))
		})

		It("should work without a photo", func() {
			a, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.CheckInPhotoKey).To(BeNil())
		})

		It("should reject a second check-in on the same day", func() {
			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckIn(ctx, companyID, employeeID, 0, 0, photo())
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedIn))
			Expect(files.saved).To(BeEmpty())
		})

		It("should clean up the uploaded photo when the insert fails", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("insert failed")

			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, photo())
			Expect(err).To(MatchError("insert failed"))
			Expect(files.saved).To(BeEmpty())
			Expect(files.deleted).To(HaveLen(1))
		})
	})

	Describe("CheckOut", func() {
		It("should require a same-day check-in", func() {
			_, err := service.CheckOut(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).To(Equal(attendance.ErrNotCheckedIn))
		})

		It("should complete the day's record", func() {
			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())

			a, err := service.CheckOut(ctx, companyID, employeeID, -6.3, 106.9, photo())
			Expect(err).NotTo(HaveOccurred())
			Expect(a.CheckedOut()).To(BeTrue())
			Expect(*a.CheckOutLat).To(Equal(-6.3))
			Expect(a.CheckOutPhotoKey).NotTo(BeNil())
		})

		It("should reject a second check-out", func() {
			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CheckOut(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckOut(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedOut))
		})

		It("should not mix employees up", func() {
			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckOut(ctx, companyID, int64(11), 0, 0, nil)
			Expect(err).To(Equal(attendance.ErrNotCheckedIn))
		})
	})

	Describe("RejectRecord", func() {
		var recordID int64

		BeforeEach(func() {
			a, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())
			recordID = a.ID
		})

		It("should flip the status to ABSENT", func() {
			a, err := service.RejectRecord(companyID, recordID, attendance.StatusAbsent)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal(attendance.StatusAbsent))
		})

		It("should flip the status to LATE", func() {
			a, err := service.RejectRecord(companyID, recordID, attendance.StatusLate)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal(attendance.StatusLate))
		})

		It("should refuse any other status", func() {
			_, err := service.RejectRecord(companyID, recordID, "PRESENT")
			Expect(err).To(Equal(attendance.ErrInvalidStatus))
		})

		It("should scope the lookup to the tenant", func() {
			_, err := service.RejectRecord(int64(2), recordID, attendance.StatusAbsent)
			Expect(err).To(Equal(attendance.ErrNotFound))
		})
	})

	Describe("AggregateReport", func() {
		It("should count records by status and completion", func() {
			_, err := service.CheckIn(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CheckOut(ctx, companyID, employeeID, 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CheckIn(ctx, companyID, int64(11), 0, 0, nil)
			Expect(err).NotTo(HaveOccurred())

			from := attendance.DayOf(time.Now())
			to := from.AddDate(0, 0, 1)
			report, err := service.AggregateReport(companyID, from, to)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.TotalRecords).To(Equal(int64(2)))
			Expect(report.CheckedIn).To(Equal(int64(2)))
			Expect(report.CheckedOut).To(Equal(int64(1)))
			Expect(report.ByStatus[attendance.StatusPresent]).To(Equal(int64(2)))
		})
	})
})
