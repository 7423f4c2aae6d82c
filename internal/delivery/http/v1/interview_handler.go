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

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.POST("", handler.Schedule)
		interviews.GET("", handler.ListMine)
		interviews.POST("/:id/cancel", handler.Cancel)
		interviews.POST("/:id/complete", handler.Complete)
	}
}

type ScheduleInterviewRequest struct {
	ApplicationID string    `json:"application_id" binding:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Schedule an interview for an application. The meeting link is generated server-side.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body      ScheduleInterviewRequest  true  "Interview JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	interview, err := h.interviewUC.Schedule(c.Request.Context(), middleware.CurrentUser(c), req.ApplicationID, req.ScheduledAt, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", interview)
}

func (h *InterviewHandler) ListMine(c *gin.Context) {
	interviews, err := h.interviewUC.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My interviews", interviews)
}

func (h *InterviewHandler) Cancel(c *gin.Context) {
	interview, err := h.interviewUC.Cancel(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview canceled", interview)
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	interview, err := h.interviewUC.Complete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview completed", interview)
}
