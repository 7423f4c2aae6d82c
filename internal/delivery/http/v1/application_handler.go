package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", handler.Apply)
		applications.GET("", handler.ListMine)
		applications.POST("/:id/withdraw", handler.Withdraw)
		applications.POST("/:id/offer", handler.Offer)
		applications.POST("/:id/reject", handler.Reject)
		applications.POST("/:id/accept-offer", handler.AcceptOffer)
	}

	// Recruiter view of a posting's applicant list
	protected.GET("/jobs/:slug/applications", handler.ListForPosting)
}

type ApplyRequest struct {
	JobSlug     string `json:"job_slug" binding:"required"`
	ResumeID    string `json:"resume_id"`
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type AcceptOfferRequest struct {
	Confirm bool `json:"confirm"`
}

// Apply godoc
// @Summary      Apply to a job posting
// @Description  Create an application (JobSeeker only, one per posting)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), middleware.CurrentUser(c), req.JobSlug, req.ResumeID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My applications", apps)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	app, err := h.applicationUC.Withdraw(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", app)
}

func (h *ApplicationHandler) Offer(c *gin.Context) {
	app, err := h.applicationUC.Offer(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer extended", app)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	app, err := h.applicationUC.Reject(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application rejected", app)
}

// AcceptOffer requires the confirm flag so a hire is never triggered by an
// accidental call.
func (h *ApplicationHandler) AcceptOffer(c *gin.Context) {
	var req AcceptOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.AcceptOffer(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Confirm)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer accepted", app)
}

func (h *ApplicationHandler) ListForPosting(c *gin.Context) {
	apps, err := h.applicationUC.ListForPosting(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posting applications", apps)
}
