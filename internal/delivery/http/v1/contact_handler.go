package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, rate limited).
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", limiter, handler.SubmitContact)
}

// SubmitContact handles a contact form submission. Accepts JSON for the
// plain variant and multipart/form-data when an attachment is included.
// Pipeline: rate limit (middleware) -> bind + file policy -> validate ->
// dispatch.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	sub, err := h.bindSubmission(c)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			c.Error(apperror.BadRequest(domain.MsgFileTooLarge))
		case errors.Is(err, upload.ErrDisallowedType):
			c.Error(apperror.BadRequest(domain.MsgFileTypeNotAllowed))
		default:
			c.Error(apperror.BadRequest("Invalid request body"))
		}
		return
	}

	if errs := h.contactUC.Validate(sub); len(errs) > 0 {
		c.Error(apperror.BadRequest(domain.MsgValidationFailed).WithErrors(errs))
		return
	}

	meta := domain.RequestMeta{
		IP:          c.ClientIP(),
		SubmittedAt: time.Now(),
	}
	if err := h.contactUC.Dispatch(c.Request.Context(), sub, meta); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, domain.MsgDispatchFailed, err))
		return
	}

	response.Success(c, http.StatusOK, domain.MsgSent, nil)
}

// bindSubmission decodes either content type into the one ContactSubmission
// shape so both inputs run through identical validation.
func (h *ContactHandler) bindSubmission(c *gin.Context) (*domain.ContactSubmission, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.bindMultipart(c)
	}

	var sub domain.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, upload.ErrTooLarge
		}
		return nil, err
	}
	return &sub, nil
}

func (h *ContactHandler) bindMultipart(c *gin.Context) (*domain.ContactSubmission, error) {
	sub := &domain.ContactSubmission{
		Name:         c.PostForm("name"),
		Email:        c.PostForm("email"),
		Organization: c.PostForm("organization"),
		Role:         c.PostForm("role"),
		Phone:        c.PostForm("phone"),
		Message:      c.PostForm("message"),
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return sub, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, upload.ErrTooLarge
		}
		return nil, err
	}

	if fileHeader.Size > upload.MaxAttachmentBytes {
		return nil, upload.ErrTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := upload.ValidateAttachment(fileHeader.Filename, data, contentType); err != nil {
		return nil, err
	}

	sub.Attachment = &domain.Attachment{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Content:     data,
	}
	return sub, nil
}
