package adapter

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
	"github.com/MKhiriev/go-auth-hub/models"
)

const (
	templateEndpoint = "/email/withTemplate"
	tokenHeader      = "X-Postmark-Server-Token"
)

type postmarkSender struct {
	client *utils.HTTPClient
	from   string
}

// templateEmail is the request body of the template send endpoint.
type templateEmail struct {
	From          string         `json:"From"`
	To            string         `json:"To"`
	TemplateAlias string         `json:"TemplateAlias"`
	TemplateModel map[string]any `json:"TemplateModel"`
}

// NewEmailSender picks the Postmark sender when a server token is configured
// and the log-only sender otherwise.
func NewEmailSender(cfg config.Email, log *logger.Logger) EmailSender {
	if cfg.ServerToken == "" {
		log.Warn().Msg("no email server token configured, emails will only be logged")
		return NewLogSender(log)
	}
	return NewPostmarkSender(cfg)
}

// NewPostmarkSender sends through the Postmark template API at cfg.BaseURL.
func NewPostmarkSender(cfg config.Email) EmailSender {
	client := utils.NewHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout)
	client.SetHeader(tokenHeader, cfg.ServerToken)

	return &postmarkSender{client: client, from: cfg.FromEmail}
}

// Send maps msg.TemplateName to a template alias by dropping the extension
// ("verify_account.html" → "verify_account"). The subject travels in the
// template model, since stored templates own their subject line.
func (p *postmarkSender) Send(ctx context.Context, msg models.EmailMessage) error {
	model := make(map[string]any, len(msg.TemplateData)+1)
	for k, v := range msg.TemplateData {
		model[k] = v
	}
	model["subject"] = msg.Subject

	body := templateEmail{
		From:          p.from,
		To:            msg.Recipient,
		TemplateAlias: strings.TrimSuffix(msg.TemplateName, path.Ext(msg.TemplateName)),
		TemplateModel: model,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(templateEndpoint)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}

	return mapHTTPError(resp)
}
