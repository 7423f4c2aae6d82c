package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("", handler.Upload)
		resumes.GET("", handler.ListMine)
		resumes.POST("/:id/activate", handler.Activate)
	}
}

// Upload godoc
// @Summary      Upload a resume
// @Description  Upload a CV file (multipart form, field "file"). New resumes start inactive.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Resume file"
// @Param        title  formData  string  false  "Resume title"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file upload is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	resume, err := h.resumeUC.Upload(c.Request.Context(), middleware.CurrentUser(c), c.PostForm("title"), fileHeader.Filename, content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume uploaded", resume)
}

func (h *ResumeHandler) ListMine(c *gin.Context) {
	resumes, err := h.resumeUC.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My resumes", resumes)
}

func (h *ResumeHandler) Activate(c *gin.Context) {
	resume, err := h.resumeUC.Activate(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume activated", resume)
}
