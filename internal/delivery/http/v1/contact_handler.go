package v1

import (
	"context"
	"errors"
	"net/http"

	"tracefield-site/internal/delivery/http/middleware"
	"tracefield-site/internal/delivery/http/response"
	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/apperror"
	"tracefield-site/pkg/security"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	board     *usecase.StatusBoard
}

// ContactStatus is the body of GET /contact/status.
type ContactStatus struct {
	Status domain.SubmissionStatus `json:"status"`
}

// NewContactHandler registers the contact routes. limit guards submissions only.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, board *usecase.StatusBoard, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		board:     board,
	}

	public.POST("/contact", limit, handler.SubmitContact)
	public.GET("/contact/status", handler.GetStatus)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the inquiry and forwards it to the form relay once. Field errors are returned per field with a translated message.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string                true  "Value of the csrf_token cookie"
// @Param        contact       body      domain.ContactFields  true  "Contact Form Data"
// @Success      200           {object}  response.Response{data=ContactStatus}
// @Failure      400           {object}  response.Response
// @Failure      409           {object}  response.Response
// @Failure      422           {object}  response.Response{error=[]response.FieldError}
// @Failure      502           {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	tr := middleware.TranslatorFrom(c)

	var fields domain.ContactFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperror.BadRequest("Malformed contact request"))
		return
	}

	inquiry, err := h.contactUC.Validate(fields)
	if err != nil {
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			c.Error(apperror.Internal(err))
			return
		}
		logValidationFailed(c, verrs)
		c.Error(apperror.Unprocessable(tr.Tk(locale.KeyStatusErrorTitle), response.FieldErrors(tr, verrs)))
		return
	}

	// A disconnecting client must not abort the relay call.
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, status, err := h.board.Submit(ctx, h.contactUC, middleware.VisitorFrom(c), inquiry)
	if errors.Is(err, usecase.ErrSubmissionPending) {
		c.Error(apperror.Conflict(tr.Tk(locale.KeyStatusPending)))
		return
	}

	if !outcome.Succeeded() {
		// Cause and status code were logged by the usecase; the visitor gets the generic message.
		c.Error(apperror.BadGateway(tr.Tk(locale.KeyStatusErrorTitle)+" "+tr.Tk(locale.KeyStatusErrorBody), nil))
		return
	}

	response.Success(c, http.StatusOK, tr.Tk(locale.KeyStatusSuccessTitle), ContactStatus{Status: status})
}

// GetStatus godoc
// @Summary      Contact Form Status
// @Description  Current submission state of the calling visitor: idle, pending, success or error.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=ContactStatus}
// @Router       /contact/status [get]
func (h *ContactHandler) GetStatus(c *gin.Context) {
	status := h.board.Status(middleware.VisitorFrom(c))
	response.Success(c, http.StatusOK, string(status), ContactStatus{Status: status})
}

func logValidationFailed(c *gin.Context, verrs domain.ValidationErrors) {
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	security.DefaultLogger().LogValidationFailed(
		c.Request.Context(),
		c.ClientIP(),
		c.GetString(string(domain.KeyRequestID)),
		fields,
	)
}
