package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recruitment-platform/config"
	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/auth"
)

type RouterDeps struct {
	AuthUC             domain.AuthUsecase
	JobUC              domain.JobPostingUsecase
	ApplicationUC      domain.ApplicationUsecase
	InterviewUC        domain.InterviewUsecase
	SeekerProfileUC    domain.JobSeekerProfileUsecase
	RecruiterProfileUC domain.RecruiterProfileUsecase
	ResumeUC           domain.ResumeUsecase
	NotificationUC     domain.NotificationUsecase
	ReportUC           domain.ReportUsecase
	Tokens             *auth.TokenManager
	RateLimiter        *middleware.RateLimiter
	Config             *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global middlewares, CORS first
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CSRFMiddleware())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	loginLimiter := deps.RateLimiter.Middleware(middleware.LoginConfig(deps.Config.RateLimitLoginThreshold, window))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, loginLimiter, deps.AuthUC, deps.Tokens)
		NewAdminHandler(protected, deps.AuthUC, deps.JobUC, deps.RecruiterProfileUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewProfileHandler(protected, deps.SeekerProfileUC, deps.RecruiterProfileUC)
		NewResumeHandler(protected, deps.ResumeUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewReportHandler(protected, deps.ReportUC)
	}

	return r
}

// pageQuery reads the shared pagination query params.
func pageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
