// Package usecase implements the reply and notification email flows.
package usecase

import (
	"context"

	"github.com/lovelifenow/admin-api/internal/crm"
)

// CRMReader is the slice of the Bloomerang client the mail flows use.
type CRMReader interface {
	GetInteraction(ctx context.Context, id int64) (*crm.Interaction, error)
	GetConstituent(ctx context.Context, id int64) (*crm.Constituent, error)
}

// FormNotifyPayload is the public form-notify request body. It carries the
// submitted values directly because the CRM write may still be in flight when
// the site fires the notification.
type FormNotifyPayload struct {
	FormName      string            `json:"formName"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Message       string            `json:"message"`
	ConstituentID int64             `json:"constituentId"`
	CustomFields  []FormNotifyField `json:"customFields"`
}

// FormNotifyField is one custom field in a form-notify payload.
type FormNotifyField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MailUseCase sends dashboard reply emails and submission notifications.
type MailUseCase interface {
	// SendReply sends a staff reply to a submitter and returns the
	// Message-ID.
	SendReply(ctx context.Context, to, subject, message string) (string, error)

	// NotifySubmission emails the notification address about a stored
	// submission, with Reply-To set to the submitter when known. Returns
	// the notification recipient and the reply-to address.
	NotifySubmission(ctx context.Context, submissionID int64, formType string) (sentTo, replyTo string, err error)

	// NotifyForm emails the notification address about a just-submitted
	// public form, from the payload alone.
	NotifyForm(ctx context.Context, payload *FormNotifyPayload) error
}
