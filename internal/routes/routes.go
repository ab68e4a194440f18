package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mrgamji/Emsats-Backend/internal/config"
	"github.com/Mrgamji/Emsats-Backend/internal/email"
	"github.com/Mrgamji/Emsats-Backend/internal/handlers"
	"github.com/Mrgamji/Emsats-Backend/internal/middleware"
	"github.com/Mrgamji/Emsats-Backend/internal/models"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, mailer email.Sender) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "emsats-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)

	api := router.Group("/api")
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
		api.POST("/verify-otp", authHandler.VerifyOTP)
		api.POST("/resend-otp", authHandler.ResendOTP)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/password/update", authHandler.UpdatePassword)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/updateProfile", authHandler.UpdateProfile)
		protected.POST("/logout", authHandler.Logout)

		resource[models.Employee](protected, db, "employees", "employee")
		resource[models.Shift](protected, db, "shifts", "shift")
		resource[models.Attendance](protected, db, "attendances", "attendance")
		resource[models.WeeklyAttendanceLog](protected, db, "weekly-attendance-logs", "weekly attendance log")
		resource[models.MonthlyAttendanceLog](protected, db, "monthly-attendance-logs", "monthly attendance log")
		resource[models.SalaryComponent](protected, db, "salary-components", "salary component")
		resource[models.EmployeeSalary](protected, db, "employee-salaries", "employee salary")
		resource[models.LeaveType](protected, db, "leave-types", "leave type")
		resource[models.LeaveBalance](protected, db, "leave-balances", "leave balance")
		resource[models.LeaveRequest](protected, db, "leave-requests", "leave request")
		resource[models.Payroll](protected, db, "payrolls", "payroll")
		resource[models.Payslip](protected, db, "payslips", "payslip")
		resource[models.TaxStatement](protected, db, "tax-statements", "tax statement")
		resource[models.PerformanceGoal](protected, db, "performance-goals", "performance goal")
		resource[models.PerformanceReview](protected, db, "performance-reviews", "performance review")
		resource[models.Feedback](protected, db, "feedback", "feedback")
		resource[models.PromotionRecommendation](protected, db, "promotion-recommendations", "promotion recommendation")
		resource[models.Course](protected, db, "courses", "course")
		resource[models.CourseAssignment](protected, db, "course-assignments", "course assignment")
		resource[models.Certification](protected, db, "certifications", "certification")
		resource[models.Announcement](protected, db, "announcements", "announcement")
		resource[models.AnalyticsLog](protected, db, "analytics-logs", "analytics log")
		resource[models.Report](protected, db, "reports", "report")
		resource[models.AuditTrail](protected, db, "audit-trails", "audit trail")
		resource[models.Document](protected, db, "documents", "document")
	}
}

// resource mounts the standard five routes for one record table.
func resource[T any](group *gin.RouterGroup, db *gorm.DB, path string, name string) {
	h := handlers.NewCrudHandler[T](db, name)
	group.GET("/"+path, h.List)
	group.POST("/"+path, h.Create)
	group.GET("/"+path+"/:id", h.Get)
	group.PUT("/"+path+"/:id", h.Update)
	group.PATCH("/"+path+"/:id", h.Update)
	group.DELETE("/"+path+"/:id", h.Delete)
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
