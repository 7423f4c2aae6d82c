package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/auth"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	tokens *auth.TokenManager
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, loginLimiter gin.HandlerFunc, authUC domain.AuthUsecase, tokens *auth.TokenManager) {
	handler := &AuthHandler{authUC: authUC, tokens: tokens}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", loginLimiter, handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/roles/request", handler.RequestRole)
		protectedAuth.POST("/roles/activate", handler.ActivateRole)
		protectedAuth.GET("/roles", handler.ListMyGrants)
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=JobSeeker Recruiter"`
}

type ActivateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account. Every account starts with an approved JobSeeker role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", user)
}

// Login godoc
// @Summary      User Login
// @Description  Login with username or email and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}
	response.Success(c, http.StatusOK, "User details", user)
}

// RequestRole creates a pending role grant awaiting admin approval.
func (h *AuthHandler) RequestRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	grant, err := h.authUC.RequestRole(c.Request.Context(), middleware.CurrentUser(c), domain.RoleName(req.Role))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Role requested. An administrator will review it.", grant)
}

// ActivateRole switches the caller's active role to an approved one.
func (h *AuthHandler) ActivateRole(c *gin.Context) {
	var req ActivateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ActivateRole(c.Request.Context(), middleware.CurrentUser(c), domain.RoleName(req.Role)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Active role switched", gin.H{"active_role": req.Role})
}

func (h *AuthHandler) ListMyGrants(c *gin.Context) {
	grants, err := h.authUC.ListMyGrants(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role grants", grants)
}
