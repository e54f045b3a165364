package service

import (
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// FormConfig holds the icon and title used in notification emails for a form.
type FormConfig struct {
	Icon  string
	Title string
}

// formConfigs maps both the dashboard form types and the public form names to
// their notification appearance.
var formConfigs = map[string]FormConfig{
	// Dashboard form types.
	"contact":   {Icon: "✉️", Title: "New Contact Form Submission"},
	"volunteer": {Icon: "\U0001f64b", Title: "New Volunteer Application"},
	"speaker":   {Icon: "\U0001f399️", Title: "New Speaker Booking Request"},
	"getsafe":   {Icon: "\U0001f3e0", Title: "New Get Safe Fund Application"},
	"donate":    {Icon: "\U0001f49d", Title: "New Donation Received"},
	// Public form names.
	"book-a-speaker": {Icon: "\U0001f399️", Title: "New Speaker Booking Request"},
	"contact-us":     {Icon: "✉️", Title: "New Contact Form Submission"},
	"get-safe-fund":  {Icon: "\U0001f3e0", Title: "New Get Safe Fund Application"},
	"newsletter":     {Icon: "\U0001f4f0", Title: "New Newsletter Signup"},
}

// ConfigFor returns the notification appearance for a form type or form
// name, with a generic fallback for unknown keys.
func ConfigFor(key string) FormConfig {
	if cfg, ok := formConfigs[key]; ok {
		return cfg
	}
	return FormConfig{Icon: "\U0001f4cb", Title: "New Form Submission"}
}

// Field is one custom form field rendered in a notification.
type Field struct {
	Name  string
	Value string
}

// NotificationData feeds the notification templates.
type NotificationData struct {
	Config       FormConfig
	Date         string
	Name         string
	Email        string
	Phone        string
	Fields       []Field
	MessageHTML  template.HTML
	MessageText  string
	DashboardURL string
}

// notificationHTML renders the admin notification email body.
var notificationHTML = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; }
    .header { background: linear-gradient(135deg, #7c3aed 0%, #9333ea 100%); color: white; padding: 20px; border-radius: 8px 8px 0 0; }
    .content { background: #fff; padding: 20px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 8px 8px; }
    .info-table { width: 100%; border-collapse: collapse; margin: 15px 0; }
    .info-table td { padding: 8px; border-bottom: 1px solid #eee; }
    .message-box { background: #f9fafb; padding: 15px; border-radius: 6px; margin: 15px 0; border-left: 4px solid #7c3aed; }
    .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    .reply-note { background: #fef3c7; padding: 12px; border-radius: 6px; margin-top: 15px; font-size: 13px; }
  </style>
</head>
<body>
  <div class="header">
    <h2 style="margin:0;">{{.Config.Icon}} {{.Config.Title}}</h2>
    <p style="margin:5px 0 0;opacity:0.9;">Submitted on {{.Date}}</p>
  </div>
  <div class="content">
    <h3 style="margin-top:0;color:#7c3aed;">Contact Information</h3>
    <table class="info-table">
      <tr><td style="color:#666;width:140px;"><strong>Name</strong></td><td>{{if .Name}}{{.Name}}{{else}}Not provided{{end}}</td></tr>
      <tr><td style="color:#666;"><strong>Email</strong></td><td>{{if .Email}}<a href="mailto:{{.Email}}">{{.Email}}</a>{{else}}Not provided{{end}}</td></tr>
      {{if .Phone}}<tr><td style="color:#666;"><strong>Phone</strong></td><td>{{.Phone}}</td></tr>{{end}}
    </table>
    {{if .Fields}}
    <h3 style="color:#7c3aed;">Form Details</h3>
    <table class="info-table">
      {{range .Fields}}<tr><td style="color:#666;width:140px;"><strong>{{.Name}}</strong></td><td>{{.Value}}</td></tr>
      {{end}}
    </table>
    {{end}}
    {{if .MessageHTML}}
    <h3 style="color:#7c3aed;">Message</h3>
    <div class="message-box">{{.MessageHTML}}</div>
    {{end}}
    <div class="reply-note">
      <strong>Quick Reply:</strong> Simply reply to this email to respond directly to {{if .Name}}{{.Name}}{{else}}the submitter{{end}}.
    </div>
    <div class="footer">
      <p>This notification was sent from your Love Life Now Admin system.<br>
      <a href="{{.DashboardURL}}">View in Admin Dashboard</a></p>
    </div>
  </div>
</body>
</html>
`))

// notificationText renders the plain text alternative.
var notificationText = texttemplate.Must(texttemplate.New("notification").Parse(`{{.Config.Title}}
========================================

Submitted: {{.Date}}

CONTACT INFORMATION
--------------------
Name: {{if .Name}}{{.Name}}{{else}}Not provided{{end}}
Email: {{if .Email}}{{.Email}}{{else}}Not provided{{end}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}{{if .Fields}}
FORM DETAILS
--------------------
{{range .Fields}}{{.Name}}: {{.Value}}
{{end}}{{end}}{{if .MessageText}}
MESSAGE
--------------------
{{.MessageText}}
{{end}}
---
Reply to this email to respond directly to {{if .Name}}{{.Name}}{{else}}the submitter{{end}}.
View in Admin: {{.DashboardURL}}
`))

// RenderNotification renders the HTML and text bodies for a notification.
func RenderNotification(data *NotificationData) (html, text string, err error) {
	var htmlBuf, textBuf strings.Builder
	if err := notificationHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	if err := notificationText.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// RenderReply wraps a plain text reply in the standard HTML shell. The
// message is escaped and newlines become line breaks.
func RenderReply(message string) string {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")

	return `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div>` + escaped + `</div>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666;">
    <p>Love Life Now<br>
    Helping survivors of domestic violence</p>
  </div>
</body>
</html>
`
}

// MessageAsHTML escapes a submitter message for embedding in the HTML body,
// converting newlines to line breaks.
func MessageAsHTML(message string) template.HTML {
	escaped := template.HTMLEscapeString(message)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>")) //nolint:gosec // escaped above
}

// FormatSubmittedDate renders an interaction date for the notification
// header, tolerating the CRM's date-only and local-time formats.
func FormatSubmittedDate(raw string, now time.Time) string {
	const display = "Monday, January 2, 2006 3:04 PM"

	if raw == "" {
		return now.Format(display)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(display)
		}
	}
	return raw
}
