// Package mailer relays contact form messages to the site owner's inbox.
//
// The relay is an HTTP endpoint (POST /api/send-email) in front of an SMTP
// account. Page code talks to it through the Relay interface, either
// in-process (Service) or over HTTP (Client).
package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// User-facing relay messages.
const (
	MsgFieldsRequired = "All fields are required"
	MsgSent           = "Email sent successfully"
	MsgSendFailed     = "Failed to send email"
	MsgUnavailable    = "Sorry, there was an error sending your message. Please try again later."
)

// ErrMissingFields is returned when name, email or message is blank.
var ErrMissingFields = errors.New(MsgFieldsRequired)

// Message is one contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate requires every field.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

// Subject is the mail subject line.
func (m Message) Subject() string {
	return fmt.Sprintf("Portfolio Contact: %s", m.Name)
}

var bodyTmpl = template.Must(template.New("body").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #a35d2e; border-bottom: 2px solid #a35d2e; padding-bottom: 10px;">New Contact Form Message</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <p><strong>Message:</strong></p>
  <div style="background: #f5e6d3; padding: 15px; border-radius: 8px; margin-top: 8px;">
    {{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}
  </div>
  <hr style="margin-top: 30px; border: none; border-top: 1px solid #ddd;">
  <p style="color: #888; font-size: 12px;">Sent from your portfolio contact form</p>
</div>
`))

// HTMLBody renders the mail body. User input is escaped.
func (m Message) HTMLBody() (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render mail body: %w", err)
	}
	return buf.String(), nil
}
