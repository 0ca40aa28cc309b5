// Package router mounts the console's HTTP routes on a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/handler"
	"github.com/noah-isme/school-portal/internal/middleware"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/internal/tenant"
	"github.com/noah-isme/school-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-portal/pkg/middleware/requestid"
	"go.uber.org/zap"
)

// Services bundles everything the routes depend on.
type Services struct {
	Auth       *service.AuthService
	Schools    *service.SchoolService
	Students   *service.StudentService
	Teachers   *service.TeacherService
	Parents    *service.ParentService
	Attendance *service.AttendanceService
	Reports    *service.ReportService
	Capture    *service.CaptureService
	Exams      *service.ExamResultService
	Queries    *service.QueryService
	Fees       *service.FeeService
	Activity   *service.ActivityService
	Metrics    *service.MetricsService
}

// Options configures the engine.
type Options struct {
	APIPrefix      string
	Mode           gateway.Mode
	AllowedOrigins []string
	EnableDocs     bool
	Resolver       *tenant.Resolver
	Logger         *zap.Logger
	Readiness      map[string]handler.ReadinessCheck
}

// New builds the gin engine with every console route mounted.
func New(svc Services, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins, gateway.TenantHeader, middleware.APIModeHeader))
	if svc.Metrics != nil {
		r.Use(middleware.Metrics(svc.Metrics))
	}

	metricsHandler := handler.NewMetricsHandler(svc.Metrics, string(opts.Mode), opts.Readiness)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.WithResponseMeta(string(opts.Mode)))
	Mount(api, svc, opts.Resolver)
	return r
}

// Mount registers the console API on group.
func Mount(api *gin.RouterGroup, svc Services, resolver *tenant.Resolver) {
	var recorder middleware.ActivityRecorder
	if svc.Activity != nil {
		recorder = svc.Activity
	}
	audit := func(action, message string) gin.HandlerFunc {
		return middleware.Audit(recorder, action, message)
	}

	authHandler := handler.NewAuthHandler(svc.Auth, svc.Capture)
	schoolHandler := handler.NewSchoolHandler(svc.Schools)
	studentHandler := handler.NewStudentHandler(svc.Students)
	teacherHandler := handler.NewTeacherHandler(svc.Teachers)
	parentHandler := handler.NewParentHandler(svc.Parents)
	attendanceHandler := handler.NewAttendanceHandler(svc.Attendance, svc.Reports)
	captureHandler := handler.NewCaptureHandler(svc.Capture)
	examHandler := handler.NewExamResultHandler(svc.Exams)
	queryHandler := handler.NewQueryHandler(svc.Queries)
	feeHandler := handler.NewFeeHandler(svc.Fees)
	activityHandler := handler.NewActivityHandler(svc.Activity)
	metricsHandler := handler.NewMetricsHandler(svc.Metrics, "", nil)

	public := api.Group("")
	public.Use(middleware.PublicScope(resolver))
	public.GET("/schools", schoolHandler.List)
	public.GET("/schools/:domain", schoolHandler.Get)
	public.POST("/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(svc.Auth, resolver))

	all := []models.UserRole{models.RoleAdmin, models.RoleTeacher, models.RoleParent}
	staff := []models.UserRole{models.RoleAdmin, models.RoleTeacher}
	admin := []models.UserRole{models.RoleAdmin}

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)

	students := secured.Group("/students")
	students.GET("", middleware.RequireRoles(all...), studentHandler.List)
	students.GET("/:id", middleware.RequireRoles(all...), studentHandler.Get)
	students.POST("", middleware.RequireRoles(admin...), audit("student.create", "Student added"), studentHandler.Create)
	students.PUT("/:id", middleware.RequireRoles(admin...), audit("student.update", "Student updated"), studentHandler.Update)

	teachers := secured.Group("/teachers")
	teachers.GET("", middleware.RequireRoles(staff...), teacherHandler.List)
	teachers.GET("/:id", middleware.RequireRoles(staff...), teacherHandler.Get)
	teachers.POST("", middleware.RequireRoles(admin...), audit("teacher.create", "Teacher added"), teacherHandler.Create)
	teachers.PUT("/:id", middleware.RequireRoles(admin...), audit("teacher.update", "Teacher updated"), teacherHandler.Update)

	parents := secured.Group("/parents")
	parents.GET("", middleware.RequireRoles(staff...), parentHandler.List)
	parents.GET("/:id", middleware.RequireRoles(all...), parentHandler.Get)
	parents.GET("/:id/children", middleware.RequireRoles(all...), parentHandler.Children)
	parents.POST("", middleware.RequireRoles(admin...), audit("parent.create", "Parent added"), parentHandler.Create)
	parents.PUT("/:id", middleware.RequireRoles(admin...), audit("parent.update", "Parent updated"), parentHandler.Update)

	attendance := secured.Group("/attendance")
	attendance.GET("", middleware.RequireRoles(staff...), attendanceHandler.ByClass)
	attendance.POST("", middleware.RequireRoles(staff...), audit("attendance.create", "Attendance recorded"), attendanceHandler.Create)
	attendance.PUT("/:id", middleware.RequireRoles(staff...), audit("attendance.update", "Attendance updated"), attendanceHandler.Update)
	attendance.GET("/student/:id", middleware.RequireRoles(all...), attendanceHandler.ByStudent)
	attendance.GET("/student/:id/report", middleware.RequireRoles(all...), attendanceHandler.Report)
	attendance.GET("/student/:id/export", middleware.RequireRoles(all...), attendanceHandler.Export)

	capture := attendance.Group("/capture")
	capture.Use(middleware.RequireRoles(staff...))
	capture.GET("", captureHandler.View)
	capture.POST("/configure", captureHandler.Configure)
	capture.POST("/select", captureHandler.Select)
	capture.POST("/photo", captureHandler.Capture)
	capture.POST("/retake", captureHandler.Retake)
	capture.POST("/present", captureHandler.Present)
	capture.POST("/absent", captureHandler.Absent)
	capture.POST("/save", captureHandler.Save)
	capture.POST("/reset", captureHandler.Reset)

	exams := secured.Group("/exam-results")
	exams.GET("", middleware.RequireRoles(all...), examHandler.List)
	exams.POST("", middleware.RequireRoles(staff...), audit("exam_result.create", "Exam result recorded"), examHandler.Create)
	exams.PUT("/:id", middleware.RequireRoles(staff...), audit("exam_result.update", "Exam result updated"), examHandler.Update)
	exams.DELETE("/:id", middleware.RequireRoles(staff...), audit("exam_result.delete", "Exam result deleted"), examHandler.Delete)

	queries := secured.Group("/queries")
	queries.GET("", middleware.RequireRoles(all...), queryHandler.List)
	queries.GET("/:id", middleware.RequireRoles(all...), queryHandler.Get)
	queries.POST("", middleware.RequireRoles(admin[0], models.RoleParent), audit("query.create", "Query submitted"), queryHandler.Create)
	queries.PUT("/:id", middleware.RequireRoles(admin[0], models.RoleParent), audit("query.update", "Query updated"), queryHandler.Update)
	queries.POST("/:id/respond", middleware.RequireRoles(staff...), audit("query.respond", "Response sent"), queryHandler.Respond)
	queries.PATCH("/:id/status", middleware.RequireRoles(staff...), audit("query.status", "Query status updated"), queryHandler.SetStatus)

	fees := secured.Group("/fees")
	fees.GET("", middleware.RequireRoles(admin[0], models.RoleParent), feeHandler.List)
	fees.GET("/:id", middleware.RequireRoles(admin[0], models.RoleParent), feeHandler.Get)
	fees.POST("", middleware.RequireRoles(admin...), audit("fee.create", "Fee record created"), feeHandler.Create)
	fees.PUT("/:id", middleware.RequireRoles(admin...), audit("fee.update", "Fee record updated"), feeHandler.Update)
	fees.POST("/:id/payments", middleware.RequireRoles(admin...), audit("fee.payment", "Payment recorded"), feeHandler.RecordPayment)
	fees.POST("/:id/installments", middleware.RequireRoles(admin...), audit("fee.installment", "Installment added"), feeHandler.AddInstallment)

	secured.GET("/activity", middleware.RequireRoles(admin...), activityHandler.List)
	secured.GET("/metrics/summary", middleware.RequireRoles(admin...), metricsHandler.Summary)
}
