package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/lovelifenow/admin-api/internal/config"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	mailerService "github.com/lovelifenow/admin-api/internal/mailer/service"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// mailUseCase implements MailUseCase.
type mailUseCase struct {
	cfg       *config.Config
	mailer    mailerService.Mailer
	crmClient CRMReader
	logger    *slog.Logger
}

// NewMailUseCase creates a MailUseCase with required dependencies.
func NewMailUseCase(
	cfg *config.Config,
	mailer mailerService.Mailer,
	crmClient CRMReader,
	logger *slog.Logger,
) MailUseCase {
	return &mailUseCase{
		cfg:       cfg,
		mailer:    mailer,
		crmClient: crmClient,
		logger:    logger,
	}
}

// SendReply sends a staff reply email to a submitter.
func (u *mailUseCase) SendReply(ctx context.Context, to, subject, message string) (string, error) {
	messageID, err := u.mailer.Send(ctx, &mailerService.Message{
		To:      to,
		Subject: subject,
		Text:    message,
		HTML:    mailerService.RenderReply(message),
	})
	if err != nil {
		return "", err
	}

	u.logger.Info("reply sent", slog.String("message_id", messageID))
	return messageID, nil
}

// NotifySubmission fetches a stored submission and emails the notification
// address about it. The constituent lookup is best effort; a missing
// constituent means no Reply-To, not a failure.
func (u *mailUseCase) NotifySubmission(ctx context.Context, submissionID int64, formType string) (string, string, error) {
	if _, err := submissionsDomain.ParseFormType(formType); err != nil {
		return "", "", err
	}

	sentTo := u.notificationAddress()
	if sentTo == "" {
		u.logger.Error("notification email not configured")
		return "", "", apperrors.ErrMisconfigured
	}

	interaction, err := u.crmClient.GetInteraction(ctx, submissionID)
	if err != nil {
		return "", "", err
	}

	var submitterName, submitterEmail, submitterPhone string
	if interaction.AccountID != 0 {
		constituent, err := u.crmClient.GetConstituent(ctx, interaction.AccountID)
		if err != nil {
			u.logger.Warn("constituent lookup failed for notification",
				slog.Int64("account_id", interaction.AccountID),
				slog.String("error", err.Error()))
		} else {
			submitterName = strings.TrimSpace(constituent.FirstName + " " + constituent.LastName)
			submitterEmail = constituent.PrimaryEmail.Value
			submitterPhone = constituent.PrimaryPhone.Number
		}
	}

	formConfig := mailerService.ConfigFor(formType)
	data := &mailerService.NotificationData{
		Config:       formConfig,
		Date:         mailerService.FormatSubmittedDate(interaction.Date, time.Now()),
		Name:         submitterName,
		Email:        submitterEmail,
		Phone:        submitterPhone,
		Fields:       customFieldsFromRaw(interaction.CustomFields),
		MessageHTML:  mailerService.MessageAsHTML(interaction.Note),
		MessageText:  interaction.Note,
		DashboardURL: u.dashboardURL(),
	}

	html, text, err := mailerService.RenderNotification(data)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to render notification")
	}

	displayName := submitterName
	if displayName == "" {
		displayName = "Form Submitter"
	}

	msg := &mailerService.Message{
		To:      sentTo,
		Subject: formConfig.Icon + " " + formConfig.Title + " - " + displayName,
		Text:    text,
		HTML:    html,
	}
	if submitterEmail != "" {
		msg.ReplyToName = displayName
		msg.ReplyToEmail = submitterEmail
	}

	if _, err := u.mailer.Send(ctx, msg); err != nil {
		return "", "", err
	}

	u.logger.Info("submission notification sent",
		slog.Int64("submission_id", submissionID),
		slog.String("form_type", formType))
	return sentTo, submitterEmail, nil
}

// NotifyForm emails the notification address about a public form submission
// directly from the payload.
func (u *mailUseCase) NotifyForm(ctx context.Context, payload *FormNotifyPayload) error {
	if _, err := submissionsDomain.ResolveGroup(payload.FormName); err != nil {
		return err
	}

	sentTo := u.notificationAddress()
	if sentTo == "" {
		u.logger.Error("notification email not configured")
		return apperrors.ErrMisconfigured
	}

	name := strings.TrimSpace(payload.FirstName + " " + payload.LastName)
	if name == "" {
		name = "Someone"
	}

	fields := make([]mailerService.Field, 0, len(payload.CustomFields))
	for _, field := range payload.CustomFields {
		if strings.TrimSpace(field.Value) == "" {
			continue
		}
		fields = append(fields, mailerService.Field{Name: field.Name, Value: field.Value})
	}

	formConfig := mailerService.ConfigFor(payload.FormName)
	data := &mailerService.NotificationData{
		Config:       formConfig,
		Date:         mailerService.FormatSubmittedDate("", time.Now()),
		Name:         name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Fields:       fields,
		MessageHTML:  mailerService.MessageAsHTML(payload.Message),
		MessageText:  payload.Message,
		DashboardURL: u.dashboardURL(),
	}

	html, text, err := mailerService.RenderNotification(data)
	if err != nil {
		return apperrors.Wrap(err, "failed to render notification")
	}

	msg := &mailerService.Message{
		To:      sentTo,
		Subject: formConfig.Icon + " " + formConfig.Title + " - " + name,
		Text:    text,
		HTML:    html,
	}
	if payload.Email != "" {
		msg.ReplyToName = name
		msg.ReplyToEmail = payload.Email
	}

	if _, err := u.mailer.Send(ctx, msg); err != nil {
		return err
	}

	u.logger.Info("form notification sent", slog.String("form_name", payload.FormName))
	return nil
}

// notificationAddress returns the notification recipient, falling back to
// the sender address.
func (u *mailUseCase) notificationAddress() string {
	if u.cfg.NotificationEmail != "" {
		return u.cfg.NotificationEmail
	}
	return u.cfg.FromEmail
}

// dashboardURL builds the admin dashboard link embedded in notifications.
func (u *mailUseCase) dashboardURL() string {
	return strings.TrimSuffix(u.cfg.SiteURL, "/") + "/admin/dashboard"
}

// customFieldsFromRaw converts the CRM's custom value objects into renderable
// name/value pairs, dropping entries with no usable value.
func customFieldsFromRaw(raw []json.RawMessage) []mailerService.Field {
	fields := make([]mailerService.Field, 0, len(raw))

	for _, item := range raw {
		var value struct {
			FieldText string `json:"FieldText"`
			FieldID   int64  `json:"FieldId"`
			Value     any    `json:"Value"`
		}
		if err := json.Unmarshal(item, &value); err != nil {
			continue
		}

		name := value.FieldText
		text := flattenCustomValue(value.Value)
		if name == "" || strings.TrimSpace(text) == "" {
			continue
		}
		fields = append(fields, mailerService.Field{Name: name, Value: text})
	}

	return fields
}

// flattenCustomValue renders the CRM's polymorphic custom value shapes
// (plain string or {"Value": "..."}) as text.
func flattenCustomValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if inner, ok := v["Value"].(string); ok {
			return inner
		}
	}
	return ""
}
