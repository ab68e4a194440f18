package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Mrgamji/Emsats-Backend/internal/models"
)

// Open connects to the configured database and migrates the schema.
// TranslateError is on so unique-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(driver string, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.PendingRegistration{},
		&models.PasswordResetToken{},
		&models.Employee{},
		&models.Shift{},
		&models.Attendance{},
		&models.WeeklyAttendanceLog{},
		&models.MonthlyAttendanceLog{},
		&models.SalaryComponent{},
		&models.EmployeeSalary{},
		&models.LeaveType{},
		&models.LeaveBalance{},
		&models.LeaveRequest{},
		&models.Payroll{},
		&models.Payslip{},
		&models.TaxStatement{},
		&models.PerformanceGoal{},
		&models.PerformanceReview{},
		&models.Feedback{},
		&models.PromotionRecommendation{},
		&models.Course{},
		&models.CourseAssignment{},
		&models.Certification{},
		&models.Document{},
		&models.Announcement{},
		&models.AuditTrail{},
		&models.AnalyticsLog{},
		&models.Report{},
	); err != nil {
		return nil, err
	}

	return database, nil
}

// PurgeExpired removes stale short-lived records: pending registrations past
// their expiry and reset tokens older than resetTTL. Expiry is otherwise
// enforced lazily at read time, so this only trims rows nobody will read
// again.
func PurgeExpired(database *gorm.DB, resetTTL time.Duration) error {
	now := time.Now()
	if err := database.Where("expires_at <= ?", now).Delete(&models.PendingRegistration{}).Error; err != nil {
		return err
	}
	return database.Where("created_at <= ?", now.Add(-resetTTL)).Delete(&models.PasswordResetToken{}).Error
}
