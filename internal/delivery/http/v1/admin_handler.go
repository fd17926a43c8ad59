package v1

import (
	"alvant-portal/internal/delivery/http/middleware"
	"alvant-portal/internal/delivery/http/response"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenStatus is the body of GET /api/admin/verify-token.
type TokenStatus struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AdminHandler struct {
	authUC domain.AdminAuthUsecase
}

// NewAdminHandler registers the OTP login routes.
func NewAdminHandler(public, protected *gin.RouterGroup, authUC domain.AdminAuthUsecase) {
	handler := &AdminHandler{authUC: authUC}

	admin := public.Group("/admin")
	{
		admin.POST("/request-otp", handler.RequestOTP)
		admin.POST("/verify-otp", handler.VerifyOTP)
	}

	session := protected.Group("/admin")
	{
		session.GET("/verify-token", handler.VerifyToken)
		session.POST("/logout", handler.Logout)
	}
}

// RequestOTP godoc
// @Summary      Request a login passcode
// @Description  Emails a six digit code to an address on the admin list
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OTPRequest  true  "Admin email"
// @Success      200      {object}  response.MessageBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      403      {object}  response.ErrorBody
// @Failure      502      {object}  response.ErrorBody
// @Router       /admin/request-otp [post]
func (h *AdminHandler) RequestOTP(c *gin.Context) {
	var req domain.OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.RequestOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "OTP sent to your email", "")
}

// VerifyOTP godoc
// @Summary      Exchange a passcode for a bearer token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OTPVerifyRequest  true  "Email, code and remember flag"
// @Success      200      {object}  domain.AdminToken
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Router       /admin/verify-otp [post]
func (h *AdminHandler) VerifyOTP(c *gin.Context) {
	var req domain.OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authUC.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, token)
}

// VerifyToken godoc
// @Summary      Check a bearer token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  TokenStatus
// @Failure      401  {object}  response.ErrorBody
// @Router       /admin/verify-token [get]
func (h *AdminHandler) VerifyToken(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.Error(apperror.Unauthorized("Invalid token"))
		return
	}
	response.Success(c, http.StatusOK, TokenStatus{
		Valid:     true,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
	})
}

// Logout godoc
// @Summary      Revoke the current bearer token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.MessageBody
// @Failure      401  {object}  response.ErrorBody
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.Error(apperror.Unauthorized("Invalid token"))
		return
	}
	if err := h.authUC.Logout(c.Request.Context(), claims); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Logged out", "")
}
