// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the go-auth-hub server.
//
// The primary abstraction is [EmailSender], which decouples the service layer
// from the transactional email provider. The package ships a Postmark
// template API implementation ([NewPostmarkSender]) and a log-only fallback
// ([NewLogSender]) for deployments without an email provider.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for provider-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrRejected] for 422).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers a templated email. Rendering msg.TemplateName with
// msg.TemplateData is the provider's job.
type EmailSender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}
