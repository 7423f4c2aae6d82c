package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobPostingUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobPostingUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public routes only ever expose live approved postings
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("/public", handler.PublicList)
		publicJobs.GET("/public/:slug", handler.PublicGetBySlug)
		publicJobs.POST("/public/:slug/view", handler.IncrementView)
		publicJobs.GET("/meta", handler.Meta)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.GET("", handler.List)
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:slug", handler.Update)
		protectedJobs.POST("/:slug/submit", handler.Submit)
		protectedJobs.POST("/:slug/approve", handler.Approve)
		protectedJobs.POST("/:slug/reject", handler.Reject)
		protectedJobs.GET("/recommended", handler.Recommend)
	}
}

type JobRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	Description    string     `json:"description" binding:"required"`
	Requirements   string     `json:"requirements"`
	Location       string     `json:"location" binding:"required"`
	SalaryMin      *float64   `json:"salary_min" binding:"omitempty,gt=0"`
	SalaryMax      *float64   `json:"salary_max" binding:"omitempty,gt=0,gtefield=SalaryMin"`
	JobType        string     `json:"job_type" binding:"required,oneof=Full-time Part-time Freelance Intern"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

func (r *JobRequest) toPosting() *domain.JobPosting {
	posting := &domain.JobPosting{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
		JobType:        domain.JobType(r.JobType),
		ExpirationDate: r.ExpirationDate,
	}
	if r.Requirements != "" {
		posting.Requirements = &r.Requirements
	}
	return posting
}

// Create godoc
// @Summary      Create a job posting draft
// @Description  Create a new job posting in Draft status (Recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	posting := req.toPosting()
	if err := h.jobUC.CreateDraft(c.Request.Context(), middleware.CurrentUser(c), posting); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job posting created as draft", posting)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	posting := req.toPosting()
	posting.Slug = c.Param("slug")
	if err := h.jobUC.UpdatePosting(c.Request.Context(), middleware.CurrentUser(c), posting); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posting updated", posting)
}

// Submit moves a draft into the moderation queue.
func (h *JobHandler) Submit(c *gin.Context) {
	posting, err := h.jobUC.SubmitForApproval(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job posting submitted for approval", posting)
}

func (h *JobHandler) Approve(c *gin.Context) {
	posting, err := h.jobUC.Approve(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job posting approved", posting)
}

func (h *JobHandler) Reject(c *gin.Context) {
	posting, err := h.jobUC.Reject(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job posting rejected", posting)
}

// PublicList godoc
// @Summary      List live job postings (public)
// @Tags         jobs
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs/public [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	page, pageSize := pageQuery(c)
	postings, total, err := h.jobUC.ListPublic(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Public job list", gin.H{
		"jobs":      postings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *JobHandler) PublicGetBySlug(c *gin.Context) {
	posting, err := h.jobUC.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", posting)
}

func (h *JobHandler) IncrementView(c *gin.Context) {
	views, err := h.jobUC.IncrementView(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "View recorded", gin.H{"views_count": views})
}

// List returns postings scoped to the caller's active role: admins see all,
// recruiters their own, everyone else the public list.
func (h *JobHandler) List(c *gin.Context) {
	page, pageSize := pageQuery(c)
	postings, total, err := h.jobUC.ListForCaller(c.Request.Context(), middleware.CurrentUser(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":      postings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Meta exposes the closed job-type and status vocabularies so frontends do
// not hardcode them.
func (h *JobHandler) Meta(c *gin.Context) {
	response.Success(c, http.StatusOK, "Job vocabularies", gin.H{
		"job_types": []domain.JobType{
			domain.JobTypeFullTime,
			domain.JobTypePartTime,
			domain.JobTypeFreelance,
			domain.JobTypeIntern,
		},
		"job_statuses": []domain.JobStatus{
			domain.JobStatusDraft,
			domain.JobStatusPending,
			domain.JobStatusApproved,
			domain.JobStatusRejected,
			domain.JobStatusExpired,
		},
	})
}

func (h *JobHandler) Recommend(c *gin.Context) {
	postings, err := h.jobUC.Recommend(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recommended jobs", postings)
}
