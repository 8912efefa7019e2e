package usecase

import (
	"context"
	"fmt"
	"time"

	"go-contact-backend/config"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/mail"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// fieldMessages maps struct fields to the user-facing validation messages.
// One message per field; the ordered list returned by Validate follows the
// struct field order, so error ordering is reproducible.
var fieldMessages = map[string]string{
	"Name":         "Name must be between 2 and 100 characters",
	"Email":        "Please provide a valid email address",
	"Organization": "Organization must be between 2 and 100 characters",
	"Role":         "Role must be less than 100 characters",
	"Phone":        "Please provide a valid phone number",
	"Message":      "Message must be between 10 and 2000 characters",
}

type contactUsecase struct {
	transport mail.Transport
	cfg       *config.Config
	validate  *validator.Validate
	timeout   time.Duration
}

// NewContactUsecase wires the contact pipeline: validation over the shared
// validator instance, dispatch through the selected transport.
func NewContactUsecase(transport mail.Transport, cfg *config.Config, validate *validator.Validate) domain.ContactUsecase {
	timeout := time.Duration(cfg.DispatchTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &contactUsecase{
		transport: transport,
		cfg:       cfg,
		validate:  validate,
		timeout:   timeout,
	}
}

// Validate trims the submission and collects every violated rule in field
// order. Pure over its input: the same submission always yields the same
// ordered message list.
func (uc *contactUsecase) Validate(sub *domain.ContactSubmission) []string {
	sub.Normalize()

	err := uc.validate.Struct(sub)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{domain.MsgValidationFailed}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, found := fieldMessages[fe.StructField()]; found {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// Dispatch renders the team notification and the auto-reply and sends both
// concurrently as one unit of work. Either send failing fails the whole
// dispatch; there is no retry and no compensation for a half-delivered pair.
func (uc *contactUsecase) Dispatch(ctx context.Context, sub *domain.ContactSubmission, meta domain.RequestMeta) error {
	notification, err := buildTeamNotification(sub, meta, uc.cfg.FromEmail, uc.cfg.TeamEmails)
	if err != nil {
		return fmt.Errorf("render team notification: %w", err)
	}
	autoReply, err := buildAutoReply(sub, uc.cfg.FromEmail)
	if err != nil {
		return fmt.Errorf("render auto-reply: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return uc.transport.Send(gctx, notification)
	})
	g.Go(func() error {
		return uc.transport.Send(gctx, autoReply)
	})

	if err := g.Wait(); err != nil {
		// Full detail stays server-side; the handler downgrades this to a
		// generic message for the client.
		logger.Log.Error("contact dispatch failed",
			"error", err,
			"organization", sub.Organization,
			"ip", meta.IP,
		)
		return fmt.Errorf("dispatch: %w", err)
	}

	logger.Log.Info("contact form submission dispatched",
		"name", sub.Name,
		"email", sub.Email,
		"organization", sub.Organization,
	)
	return nil
}
