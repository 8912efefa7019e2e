package domain

import (
	"context"
	"strings"
	"time"
)

// Request-level ceilings for the contact endpoint.
const (
	MaxRequestBodyBytes = 10 << 20 // 10 MiB
	MaxAttachmentBytes  = 10 << 20 // 10 MiB
)

// User-facing messages. These are part of the public API contract and are
// shared by both deployment adapters so the two cannot drift.
const (
	MsgSent               = "Message sent successfully! We will contact you within 24 hours."
	MsgValidationFailed   = "Validation failed"
	MsgDispatchFailed     = "Failed to send message. Please try again or contact us directly."
	MsgRateLimited        = "Too many contact form submissions, please try again later."
	MsgFileTooLarge       = "File too large. Maximum size is 10MB."
	MsgFileTypeNotAllowed = "Only PDF, DOC, DOCX, TXT, and image files are allowed"
	MsgNotFound           = "Endpoint not found"
)

// ContactSubmission is one contact-form payload from a prospective client.
// Validation tags mirror the checks run by the contact usecase; the struct
// field order fixes the order of validation error messages.
type ContactSubmission struct {
	Name         string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" form:"email" validate:"required,contact_email"`
	Organization string `json:"organization" form:"organization" validate:"required,min=2,max=100"`
	Role         string `json:"role" form:"role" validate:"omitempty,max=100"`
	Phone        string `json:"phone" form:"phone" validate:"omitempty,contact_phone"`
	Message      string `json:"message" form:"message" validate:"required,min=10,max=2000"`

	// Attachment is held in memory only for the duration of the request.
	Attachment *Attachment `json:"-" form:"-"`
}

// Attachment is an uploaded file forwarded unmodified on the team notification.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Normalize trims whitespace from the text fields. Trimming happens before
// length validation so padded input cannot sneak past the bounds.
func (s *ContactSubmission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Organization = strings.TrimSpace(s.Organization)
	s.Role = strings.TrimSpace(s.Role)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Message = strings.TrimSpace(s.Message)
}

// RequestMeta carries request context echoed into the team notification.
type RequestMeta struct {
	IP          string
	SubmittedAt time.Time
}

// ContactUsecase defines the contact-form pipeline. Validate is a pure
// function over the submission; Dispatch renders and sends both outbound
// emails as one logical unit of work.
type ContactUsecase interface {
	// Validate returns the ordered list of violated rules, empty when the
	// submission is fully valid. All violations are collected, not just the
	// first.
	Validate(sub *ContactSubmission) []string

	// Dispatch sends the team notification and the auto-reply. A failure of
	// either send fails the whole dispatch.
	Dispatch(ctx context.Context, sub *ContactSubmission, meta RequestMeta) error
}
