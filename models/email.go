package models

// EmailMessage is a templated message handed to the email collaborator.
// Rendering of TemplateName with TemplateData happens on the provider side.
type EmailMessage struct {
	Recipient    string
	Subject      string
	TemplateName string
	TemplateData map[string]any
}
