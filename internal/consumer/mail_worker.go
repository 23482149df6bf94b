package consumer

import (
	"encoding/json"
	"log"

	"github.com/gigwise/eventops/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Sender is the actual mail transport. The default implementation only logs;
// wiring an SMTP or API-backed sender is a deployment concern.
type Sender interface {
	Deliver(msg notify.EmailMessage) error
}

type LogSender struct{}

func (LogSender) Deliver(msg notify.EmailMessage) error {
	log.Printf("[Mail] %s -> %s: %s (tracking %s)", msg.From, msg.To, msg.Subject, msg.TrackingID)
	return nil
}

type MailWorker struct {
	sender Sender
}

func NewMailWorker(sender Sender) *MailWorker {
	if sender == nil {
		sender = LogSender{}
	}
	return &MailWorker{sender: sender}
}

// Start drains the notification queue in a background goroutine until the
// channel closes.
func (w *MailWorker) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			w.handleMessage(msg)
		}
		log.Println("[MailWorker] channel closed, stopping worker")
	}()
}

func (w *MailWorker) handleMessage(msg amqp.Delivery) {
	var email notify.EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil {
		log.Printf("[MailWorker] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := w.sender.Deliver(email); err != nil {
		log.Printf("[MailWorker] delivery failed for %s: %v", email.TrackingID, err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}
