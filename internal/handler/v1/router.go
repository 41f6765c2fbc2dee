package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/handler/middleware"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/auth"
	"github.com/raksha360/backend/pkg/metrics"
)

// RouterDeps carries everything the HTTP surface needs. main builds it
// once; nothing here is optional.
type RouterDeps struct {
	JWTManager *auth.JWTManager
	Resolver   *service.ActorResolver
	Collector  *metrics.Collector
	Log        *zap.Logger

	// PingDB reports database reachability for the health endpoint.
	PingDB func(ctx context.Context) error

	Auth          *AuthHandler
	Appointments  *AppointmentHandler
	Prescriptions *PrescriptionHandler
	Tickets       *TicketHandler
	Hospitals     *HospitalHandler
	Directory     *DirectoryHandler
}

// NewRouter wires middleware and routes. Public routes carry no auth;
// everything else sits behind token verification plus actor resolution,
// with role gates on the hospital and admin portals.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Log),
		middleware.RequestID(),
		middleware.Logger(deps.Log),
		middleware.Metrics(deps.Collector),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "raksha360-backend"})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := deps.PingDB(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authed := middleware.Authenticate(deps.JWTManager, deps.Resolver)

	// Auth surface, plus the signup aliases older portal clients use.
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/patient/signup", deps.Auth.PatientSignup)
		authGroup.POST("/doctor/signup", deps.Auth.DoctorSignup)
		authGroup.POST("/patient/login", deps.Auth.PatientLogin)
		authGroup.POST("/doctor/login", deps.Auth.DoctorLogin)
		authGroup.POST("/hospital/login", deps.Auth.HospitalLogin)
		authGroup.POST("/admin/login", deps.Auth.AdminLogin)
	}
	router.POST("/patients/signup", deps.Auth.PatientSignup)
	router.POST("/doctors/signup", deps.Auth.DoctorSignup)

	// Public directory.
	router.GET("/doctors", deps.Directory.SearchDoctors)
	router.GET("/patients/:id", deps.Directory.GetPatient)

	// Hospital self-registration: JSON for API clients, form for the
	// portal's plain HTML page.
	router.POST("/hospital/register", deps.Hospitals.Register)
	router.POST("/hospital/register-form", deps.Hospitals.RegisterForm)

	appointments := router.Group("/appointments", authed)
	{
		appointments.POST("", deps.Appointments.Book)
		appointments.GET("", deps.Appointments.List)
		appointments.DELETE("/:id", deps.Appointments.Cancel)
	}

	prescriptions := router.Group("/prescriptions", authed)
	{
		prescriptions.POST("", deps.Prescriptions.Create)
		prescriptions.GET("/:id", deps.Prescriptions.Get)
		prescriptions.GET("/:id/download", deps.Prescriptions.DownloadPDF)
		prescriptions.GET("/patient/:id", deps.Prescriptions.ListByPatient)
	}

	// Generic ticket surface; the service scopes hospitals to their own
	// tickets and rejects other actor kinds.
	tickets := router.Group("/tickets", authed)
	{
		tickets.POST("", deps.Tickets.Create)
		tickets.GET("", deps.Tickets.List)
		tickets.GET("/:id", deps.Tickets.Get)
		tickets.PUT("/:id", deps.Tickets.Update)
	}

	// Hospital portal.
	hospital := router.Group("/hospital", authed, middleware.RequireRole(domain.RoleHospital))
	{
		hospital.GET("/dashboard", deps.Hospitals.Dashboard)
		hospital.POST("/requests", deps.Tickets.Create)
		hospital.GET("/requests", deps.Tickets.List)
		hospital.GET("/requests/:id", deps.Tickets.Get)
		hospital.PUT("/requests/:id", deps.Tickets.Update)
	}

	// Admin portal.
	admin := router.Group("/admin", authed, middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/requests", deps.Tickets.List)
		admin.GET("/requests/:id", deps.Tickets.Get)
		admin.PUT("/requests/:id", deps.Tickets.Update)
		admin.POST("/requests/:id/action", deps.Tickets.AdminAction)
		admin.POST("/hospitals", deps.Hospitals.AdminCreate)
	}

	return router
}
