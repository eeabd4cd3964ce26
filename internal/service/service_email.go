package service

import (
	"context"

	"github.com/MKhiriev/go-auth-hub/internal/adapter"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/models"
)

const (
	verifyAccountSubject  = "Verify Your Account"
	verifyAccountTemplate = "verify_account.html"
)

type emailService struct {
	sender adapter.EmailSender

	logger *logger.Logger
}

func NewEmailService(sender adapter.EmailSender, logger *logger.Logger) EmailService {
	return &emailService{
		sender: sender,
		logger: logger,
	}
}

func (s *emailService) SendVerificationCode(ctx context.Context, email, name, code string) error {
	msg := models.EmailMessage{
		Recipient:    email,
		Subject:      verifyAccountSubject,
		TemplateName: verifyAccountTemplate,
		TemplateData: map[string]any{
			"otp":  code,
			"name": name,
		},
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("recipient", email).
			Str("template", verifyAccountTemplate).
			Msg("sending verification email failed")
		return newError(KindDeliveryFailure, "email delivery failed: %v", err)
	}

	return nil
}
