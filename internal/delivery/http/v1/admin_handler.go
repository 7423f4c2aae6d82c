package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

// AdminHandler groups the moderation surface: role grant review, job posting
// approval and the company directory. Authorization happens in the usecases.
type AdminHandler struct {
	authUC             domain.AuthUsecase
	jobUC              domain.JobPostingUsecase
	recruiterProfileUC domain.RecruiterProfileUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase, jobUC domain.JobPostingUsecase, recruiterProfileUC domain.RecruiterProfileUsecase) {
	handler := &AdminHandler{
		authUC:             authUC,
		jobUC:              jobUC,
		recruiterProfileUC: recruiterProfileUC,
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/role-requests", handler.ListPendingGrants)
		admin.POST("/role-requests/approve", handler.ApproveGrants)
		admin.POST("/users/:id/assign-admin", handler.AssignAdmin)
		admin.GET("/jobs/pending", handler.ListPendingJobs)
		admin.GET("/recruiter-profiles", handler.ListRecruiterProfiles)
	}
}

type ApproveGrantsRequest struct {
	GrantIDs []string `json:"grant_ids" binding:"required,min=1"`
}

func (h *AdminHandler) ListPendingGrants(c *gin.Context) {
	grants, err := h.authUC.ListPendingGrants(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending role requests", grants)
}

// ApproveGrants is idempotent: repeating a request reports zero newly
// approved grants.
func (h *AdminHandler) ApproveGrants(c *gin.Context) {
	var req ApproveGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	count, err := h.authUC.ApproveGrants(c.Request.Context(), middleware.CurrentUser(c), req.GrantIDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role requests approved", gin.H{"approved": count})
}

func (h *AdminHandler) AssignAdmin(c *gin.Context) {
	targetID := c.Param("id")
	if err := h.authUC.AssignAdmin(c.Request.Context(), middleware.CurrentUser(c), targetID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Admin role assigned", nil)
}

func (h *AdminHandler) ListPendingJobs(c *gin.Context) {
	postings, err := h.jobUC.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending job postings", postings)
}

func (h *AdminHandler) ListRecruiterProfiles(c *gin.Context) {
	page, pageSize := pageQuery(c)
	profiles, total, err := h.recruiterProfileUC.ListProfiles(c.Request.Context(), middleware.CurrentUser(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profiles", gin.H{
		"profiles":  profiles,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
