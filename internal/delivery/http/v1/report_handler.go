package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
)

type ReportHandler struct {
	reportUC domain.ReportUsecase
}

func NewReportHandler(protected *gin.RouterGroup, reportUC domain.ReportUsecase) {
	handler := &ReportHandler{reportUC: reportUC}

	reports := protected.Group("/reports")
	{
		reports.GET("/recruiter", handler.RecruiterReport)
		reports.GET("/recruiter/export", handler.ExportRecruiterReport)
		reports.GET("/job-seeker", handler.JobSeekerReport)
	}
}

func (h *ReportHandler) RecruiterReport(c *gin.Context) {
	stats, err := h.reportUC.RecruiterReport(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Hiring report", stats)
}

// ExportRecruiterReport streams the report as an xlsx attachment.
func (h *ReportHandler) ExportRecruiterReport(c *gin.Context) {
	content, err := h.reportUC.ExportRecruiterReport(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("hiring_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *ReportHandler) JobSeekerReport(c *gin.Context) {
	stats, err := h.reportUC.JobSeekerReport(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application report", stats)
}
