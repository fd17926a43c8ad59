package v1

import (
	"alvant-portal/internal/delivery/http/response"
	"alvant-portal/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes; submitting is public, listing is admin-only.
func NewContactHandler(public, protected *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
	protected.GET("/contact", handler.ListContacts)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactMessage  true  "Contact Form Data"
// @Success      201      {object}  response.MessageBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      503      {object}  response.ErrorBody
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactMessage
	if !bindJSON(c, &req) {
		return
	}

	if err := h.contactUC.SubmitContact(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusCreated, "Your message has been sent successfully!", req.ID)
}

// ListContacts godoc
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ContactMessage
// @Failure      401  {object}  response.ErrorBody
// @Failure      503  {object}  response.ErrorBody
// @Router       /contact [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	out, err := h.contactUC.ListContacts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
