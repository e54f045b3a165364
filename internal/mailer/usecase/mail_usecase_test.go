package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lovelifenow/admin-api/internal/config"
	"github.com/lovelifenow/admin-api/internal/crm"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	mailerService "github.com/lovelifenow/admin-api/internal/mailer/service"
	"github.com/lovelifenow/admin-api/internal/mailer/usecase/mocks"
)

type useCaseMocks struct {
	mailer    *mocks.MockMailer
	crmClient *mocks.MockCRMReader
}

func newUseCase(cfg *config.Config) (MailUseCase, *useCaseMocks) {
	m := &useCaseMocks{
		mailer:    &mocks.MockMailer{},
		crmClient: &mocks.MockCRMReader{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMailUseCase(cfg, m.mailer, m.crmClient, logger), m
}

func testConfig() *config.Config {
	return &config.Config{
		FromEmail:         "noreply@lovelifenow.org",
		NotificationEmail: "admin@lovelifenow.org",
		SiteURL:           "https://lovelifenow.org/",
	}
}

func TestSendReply(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SendsTextAndHTML", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return msg.To == "jane@example.com" &&
				msg.Subject == "Re: your message" &&
				msg.Text == "Hello Jane,\nThanks for reaching out." &&
				strings.Contains(msg.HTML, "Hello Jane,<br>Thanks for reaching out.") &&
				strings.Contains(msg.HTML, "Love Life Now")
		})).Return("<msg-1@lln>", nil)

		messageID, err := useCase.SendReply(ctx, "jane@example.com", "Re: your message", "Hello Jane,\nThanks for reaching out.")

		require.NoError(t, err)
		assert.Equal(t, "<msg-1@lln>", messageID)
		m.mailer.AssertExpectations(t)
	})

	t.Run("Error_DeliveryFails", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.mailer.On("Send", ctx, mock.Anything).
			Return("", apperrors.NewUpstream("send mail", "SMTP delivery failed"))

		messageID, err := useCase.SendReply(ctx, "jane@example.com", "Re: hi", "body")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
		assert.Empty(t, messageID)
	})
}

func TestNotifySubmission(t *testing.T) {
	ctx := context.Background()

	interaction := &crm.Interaction{
		ID:        42,
		AccountID: 7,
		Date:      "2026-08-20T14:30:00",
		Subject:   "Contact Form",
		Note:      "I would like to help.",
	}
	constituent := &crm.Constituent{ID: 7, FirstName: "Jane", LastName: "Doe"}
	constituent.PrimaryEmail.Value = "jane@example.com"
	constituent.PrimaryPhone.Number = "555-0100"

	t.Run("Success_ReplyToSubmitter", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.crmClient.On("GetInteraction", ctx, int64(42)).Return(interaction, nil)
		m.crmClient.On("GetConstituent", ctx, int64(7)).Return(constituent, nil)
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return msg.To == "admin@lovelifenow.org" &&
				msg.Subject == "✉️ New Contact Form Submission - Jane Doe" &&
				msg.ReplyToName == "Jane Doe" &&
				msg.ReplyToEmail == "jane@example.com" &&
				strings.Contains(msg.HTML, "I would like to help.") &&
				strings.Contains(msg.Text, "I would like to help.") &&
				strings.Contains(msg.HTML, "https://lovelifenow.org/admin/dashboard")
		})).Return("<msg-2@lln>", nil)

		sentTo, replyTo, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.NoError(t, err)
		assert.Equal(t, "admin@lovelifenow.org", sentTo)
		assert.Equal(t, "jane@example.com", replyTo)
		m.mailer.AssertExpectations(t)
	})

	t.Run("Success_ConstituentLookupFails", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.crmClient.On("GetInteraction", ctx, int64(42)).Return(interaction, nil)
		m.crmClient.On("GetConstituent", ctx, int64(7)).
			Return(nil, apperrors.NewUpstream("get constituent", ""))
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return msg.Subject == "✉️ New Contact Form Submission - Form Submitter" &&
				msg.ReplyToEmail == ""
		})).Return("<msg-3@lln>", nil)

		sentTo, replyTo, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.NoError(t, err)
		assert.Equal(t, "admin@lovelifenow.org", sentTo)
		assert.Empty(t, replyTo)
	})

	t.Run("Success_FallsBackToFromEmail", func(t *testing.T) {
		cfg := testConfig()
		cfg.NotificationEmail = ""
		useCase, m := newUseCase(cfg)
		m.crmClient.On("GetInteraction", ctx, int64(42)).Return(interaction, nil)
		m.crmClient.On("GetConstituent", ctx, int64(7)).Return(constituent, nil)
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return msg.To == "noreply@lovelifenow.org"
		})).Return("<msg-4@lln>", nil)

		sentTo, _, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.NoError(t, err)
		assert.Equal(t, "noreply@lovelifenow.org", sentTo)
	})

	t.Run("Success_RendersCustomFields", func(t *testing.T) {
		withFields := *interaction
		withFields.CustomFields = []json.RawMessage{
			json.RawMessage(`{"FieldId": 1, "FieldText": "Organization", "Value": "Acme Shelter"}`),
			json.RawMessage(`{"FieldId": 2, "FieldText": "Event Date", "Value": {"Value": "2026-09-12"}}`),
			json.RawMessage(`{"FieldId": 3, "FieldText": "Empty", "Value": ""}`),
		}
		useCase, m := newUseCase(testConfig())
		m.crmClient.On("GetInteraction", ctx, int64(42)).Return(&withFields, nil)
		m.crmClient.On("GetConstituent", ctx, int64(7)).Return(constituent, nil)
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return strings.Contains(msg.Text, "Organization: Acme Shelter") &&
				strings.Contains(msg.Text, "Event Date: 2026-09-12") &&
				!strings.Contains(msg.Text, "Empty:")
		})).Return("<msg-5@lln>", nil)

		_, _, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.NoError(t, err)
		m.mailer.AssertExpectations(t)
	})

	t.Run("Error_InvalidFormType", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())

		_, _, err := useCase.NotifySubmission(ctx, 42, "unknown")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		m.crmClient.AssertNotCalled(t, "GetInteraction", mock.Anything, mock.Anything)
	})

	t.Run("Error_NoNotificationAddress", func(t *testing.T) {
		cfg := testConfig()
		cfg.NotificationEmail = ""
		cfg.FromEmail = ""
		useCase, m := newUseCase(cfg)

		_, _, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrMisconfigured))
		m.crmClient.AssertNotCalled(t, "GetInteraction", mock.Anything, mock.Anything)
	})

	t.Run("Error_InteractionNotFound", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.crmClient.On("GetInteraction", ctx, int64(42)).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "interaction not found"))

		_, _, err := useCase.NotifySubmission(ctx, 42, "contact")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		m.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestNotifyForm(t *testing.T) {
	ctx := context.Background()

	payload := &FormNotifyPayload{
		FormName:  "volunteer",
		FirstName: "Sam",
		LastName:  "Lee",
		Email:     "sam@example.com",
		Phone:     "555-0101",
		Message:   "Count me in.",
		CustomFields: []FormNotifyField{
			{Name: "Availability", Value: "Weekends"},
			{Name: "Blank", Value: "   "},
		},
	}

	t.Run("Success_SendsNotification", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return msg.To == "admin@lovelifenow.org" &&
				strings.Contains(msg.Subject, "New Volunteer Application - Sam Lee") &&
				msg.ReplyToEmail == "sam@example.com" &&
				strings.Contains(msg.Text, "Availability: Weekends") &&
				!strings.Contains(msg.Text, "Blank:") &&
				strings.Contains(msg.Text, "Count me in.")
		})).Return("<msg-6@lln>", nil)

		err := useCase.NotifyForm(ctx, payload)

		require.NoError(t, err)
		m.mailer.AssertExpectations(t)
	})

	t.Run("Success_AnonymousSubmitter", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.mailer.On("Send", ctx, mock.MatchedBy(func(msg *mailerService.Message) bool {
			return strings.Contains(msg.Subject, "- Someone") && msg.ReplyToEmail == ""
		})).Return("<msg-7@lln>", nil)

		err := useCase.NotifyForm(ctx, &FormNotifyPayload{FormName: "newsletter"})

		require.NoError(t, err)
		m.mailer.AssertExpectations(t)
	})

	t.Run("Error_UnknownFormName", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())

		err := useCase.NotifyForm(ctx, &FormNotifyPayload{FormName: "not-a-form"})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		m.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Error_DeliveryFails", func(t *testing.T) {
		useCase, m := newUseCase(testConfig())
		m.mailer.On("Send", ctx, mock.Anything).
			Return("", apperrors.NewUpstream("send mail", "SMTP delivery failed"))

		err := useCase.NotifyForm(ctx, payload)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
	})
}
