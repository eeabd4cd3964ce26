package adapter

import (
	"context"
	"maps"
	"slices"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/models"
)

// logSender records that a message would have been sent. Template values
// are left out since they carry verification codes.
type logSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) EmailSender {
	return &logSender{logger: log}
}

func (s *logSender) Send(ctx context.Context, msg models.EmailMessage) error {
	s.logger.Info().
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Str("template", msg.TemplateName).
		Strs("fields", slices.Sorted(maps.Keys(msg.TemplateData))).
		Msg("email not sent, no provider configured")
	return nil
}
