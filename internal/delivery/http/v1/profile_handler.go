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

// ProfileHandler serves both profile kinds. A user can hold both roles and
// therefore both profiles at once.
type ProfileHandler struct {
	seekerUC    domain.JobSeekerProfileUsecase
	recruiterUC domain.RecruiterProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, seekerUC domain.JobSeekerProfileUsecase, recruiterUC domain.RecruiterProfileUsecase) {
	handler := &ProfileHandler{seekerUC: seekerUC, recruiterUC: recruiterUC}

	seeker := protected.Group("/job-seeker-profiles")
	{
		seeker.POST("", handler.CreateSeekerProfile)
		seeker.GET("/me", handler.GetSeekerProfile)
		seeker.PUT("/me", handler.UpdateSeekerProfile)
	}

	protected.GET("/skills", handler.ListSkills)

	recruiter := protected.Group("/recruiter-profiles")
	{
		recruiter.POST("", handler.CreateRecruiterProfile)
		recruiter.GET("/me", handler.GetRecruiterProfile)
		recruiter.PUT("/me", handler.UpdateRecruiterProfile)
	}
}

type JobSeekerProfileRequest struct {
	Summary     string     `json:"summary" binding:"max=5000"`
	Experience  string     `json:"experience" binding:"max=10000"`
	Education   string     `json:"education" binding:"max=5000"`
	PhoneNumber string     `json:"phone_number" binding:"max=30"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Skills      []string   `json:"skills" binding:"max=50"`
}

func (r *JobSeekerProfileRequest) toProfile() *domain.JobSeekerProfile {
	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return &domain.JobSeekerProfile{
		Summary:     toPtr(r.Summary),
		Experience:  toPtr(r.Experience),
		Education:   toPtr(r.Education),
		PhoneNumber: toPtr(r.PhoneNumber),
		DateOfBirth: r.DateOfBirth,
		Gender:      toPtr(r.Gender),
	}
}

type RecruiterProfileRequest struct {
	CompanyName        string `json:"company_name" binding:"required,max=200"`
	CompanyWebsite     string `json:"company_website" binding:"omitempty,url"`
	CompanyDescription string `json:"company_description" binding:"max=10000"`
	Industry           string `json:"industry" binding:"max=100"`
	Address            string `json:"address" binding:"max=500"`
}

func (r *RecruiterProfileRequest) toProfile() *domain.RecruiterProfile {
	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return &domain.RecruiterProfile{
		CompanyName:        r.CompanyName,
		CompanyWebsite:     toPtr(r.CompanyWebsite),
		CompanyDescription: toPtr(r.CompanyDescription),
		Industry:           toPtr(r.Industry),
		Address:            toPtr(r.Address),
	}
}

func (h *ProfileHandler) CreateSeekerProfile(c *gin.Context) {
	var req JobSeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := req.toProfile()
	if err := h.seekerUC.CreateProfile(c.Request.Context(), middleware.CurrentUser(c), profile, req.Skills); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job seeker profile created", profile)
}

func (h *ProfileHandler) GetSeekerProfile(c *gin.Context) {
	profile, err := h.seekerUC.GetMyProfile(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job seeker profile", profile)
}

func (h *ProfileHandler) UpdateSeekerProfile(c *gin.Context) {
	var req JobSeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := req.toProfile()
	if err := h.seekerUC.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), profile, req.Skills); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job seeker profile updated", profile)
}

// ListSkills serves the skill catalog for profile autocompletion.
func (h *ProfileHandler) ListSkills(c *gin.Context) {
	skills, err := h.seekerUC.ListSkills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill catalog", skills)
}

func (h *ProfileHandler) CreateRecruiterProfile(c *gin.Context) {
	var req RecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := req.toProfile()
	if err := h.recruiterUC.CreateProfile(c.Request.Context(), middleware.CurrentUser(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Recruiter profile created", profile)
}

func (h *ProfileHandler) GetRecruiterProfile(c *gin.Context) {
	profile, err := h.recruiterUC.GetMyProfile(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recruiter profile", profile)
}

func (h *ProfileHandler) UpdateRecruiterProfile(c *gin.Context) {
	var req RecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := req.toProfile()
	if err := h.recruiterUC.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiter profile updated", profile)
}
