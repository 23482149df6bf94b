package notify

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"
)

// RouteEmail is the routing key the mail delivery worker is bound to.
const RouteEmail = "notify.email"

// Publisher is the slice of the AMQP publisher the mailer needs.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// EmailMessage is what goes onto the wire. TrackingID gives each send a
// stable reference for delivery logs and open tracking.
type EmailMessage struct {
	TrackingID string    `json:"tracking_id"`
	To         string    `json:"to"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	EventID    uint      `json:"event_id,omitempty"`
	QueuedAt   time.Time `json:"queued_at"`
}

// TemplateData carries the fields email templates may reference.
type TemplateData struct {
	ClientName   string
	EmployeeName string
	EventName    string
	EventDate    string
	Company      string
	Deposit      string
	Balance      string
}

type Mailer struct {
	publisher   Publisher
	defaultFrom string
	company     string
}

func NewMailer(publisher Publisher, defaultFrom, company string) *Mailer {
	return &Mailer{publisher: publisher, defaultFrom: defaultFrom, company: company}
}

// Send renders the subject and body templates against data and publishes the
// result for the delivery worker. A nil publisher makes Send a no-op, which
// lets services run without a broker in tests.
func (m *Mailer) Send(to, from, subjectTmpl, bodyTmpl string, eventID uint, data TemplateData) error {
	if m == nil || m.publisher == nil {
		return nil
	}
	if from == "" {
		from = m.defaultFrom
	}
	if data.Company == "" {
		data.Company = m.company
	}

	subject, err := render("subject", subjectTmpl, data)
	if err != nil {
		return fmt.Errorf("render subject: %w", err)
	}
	body, err := render("body", bodyTmpl, data)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	return m.publisher.Publish(RouteEmail, EmailMessage{
		TrackingID: uuid.NewString(),
		To:         to,
		From:       from,
		Subject:    subject,
		Body:       body,
		EventID:    eventID,
		QueuedAt:   time.Now().UTC(),
	})
}

func render(name, text string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
