package v1

import (
	"alvant-portal/internal/delivery/http/response"
	"alvant-portal/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	registrationUC domain.RegistrationUsecase
}

// NewRegistrationHandler registers the public submit route and the admin list route.
func NewRegistrationHandler(public, protected *gin.RouterGroup, registrationUC domain.RegistrationUsecase) {
	handler := &RegistrationHandler{registrationUC: registrationUC}

	public.POST("/register", handler.Register)
	protected.GET("/register", handler.ListRegistrants)
}

// Register godoc
// @Summary      Register interest
// @Description  Submit the register-your-interest form. Public endpoint.
// @Tags         register
// @Accept       json
// @Produce      json
// @Param        registrant  body      domain.Registrant  true  "Registration form"
// @Success      201         {object}  response.MessageBody
// @Failure      400         {object}  response.ErrorBody
// @Failure      503         {object}  response.ErrorBody
// @Router       /register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req domain.Registrant
	if !bindJSON(c, &req) {
		return
	}

	if err := h.registrationUC.Register(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusCreated, "Registration submitted successfully", req.ID)
}

// ListRegistrants godoc
// @Summary      List registrants
// @Description  Every registration, newest first
// @Tags         register
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Registrant
// @Failure      401  {object}  response.ErrorBody
// @Failure      503  {object}  response.ErrorBody
// @Router       /register [get]
func (h *RegistrationHandler) ListRegistrants(c *gin.Context) {
	out, err := h.registrationUC.ListRegistrants(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
