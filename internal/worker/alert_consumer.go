package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/craigderington/m3data-api/internal/rabbitmq"
	"github.com/craigderington/m3data-api/internal/services"
	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "alert-worker-1"

type AlertWorker struct {
	client       *rabbitmq.Client
	emailService *services.EmailService
	smsService   *services.SMSService
	recipients   []string
}

func NewAlertWorker(client *rabbitmq.Client, es *services.EmailService, ss *services.SMSService, recipients []string) *AlertWorker {
	return &AlertWorker{
		client:       client,
		emailService: es,
		smsService:   ss,
		recipients:   recipients,
	}
}

// StartWorker consumes the alert queue until ctx is cancelled.
func (w *AlertWorker) StartWorker(ctx context.Context) error {
	if w.client == nil {
		return fmt.Errorf("RabbitMQ client not initialized")
	}

	ch := w.client.Channel

	msgs, err := ch.Consume(
		rabbitmq.AlertQueueName, // queue
		consumerTag,             // consumer tag
		false,                   // auto-ack off: ack only after processing
		false,                   // exclusive
		false,                   // no-local
		false,                   // no-wait
		nil,                     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Alert worker started, consuming %s", rabbitmq.AlertQueueName)

	done := make(chan bool)

	go func() {
		for d := range msgs {
			w.processMessage(d)
		}
		done <- true
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, canceling alert consumer")

	if err := ch.Cancel(consumerTag, false); err != nil {
		log.Printf("Error canceling consumer: %v", err)
	}

	log.Println("Alert worker exiting")
	return nil
}

func (w *AlertWorker) processMessage(d amqp.Delivery) {
	var alert rabbitmq.AlertMessage
	if err := json.Unmarshal(d.Body, &alert); err != nil {
		log.Printf("Invalid alert payload, discarding: %v", err)
		d.Reject(false)
		return
	}

	w.sendEmail(alert)
	w.sendSMS(alert)

	// Delivery failures are logged above, never requeued. Alerts are
	// best-effort by contract.
	d.Ack(false)
}

func (w *AlertWorker) sendEmail(alert rabbitmq.AlertMessage) {
	if len(w.recipients) == 0 {
		return
	}

	subject := fmt.Sprintf("Data match on %s: %s", alert.Resource, alert.Key)
	body := fmt.Sprintf(`<h2>New %s match</h2>
<p>Key: %s</p>
<p>Matched: %s</p>
<p>Requested by: %s</p>`, alert.Resource, alert.Key, alert.PersonName, alert.Username)

	if err := w.emailService.SendEmail(w.recipients, subject, body); err != nil {
		log.Printf("Failed to send alert email: %v", err)
	}
}

func (w *AlertWorker) sendSMS(alert rabbitmq.AlertMessage) {
	if alert.CellPhone == "" {
		return
	}

	body := fmt.Sprintf("%s, your information was matched via %s lookup.", alert.PersonName, alert.Resource)
	sid, err := w.smsService.SendMessage(alert.CellPhone, body)
	if err != nil {
		log.Printf("Failed to send alert SMS to %s: %v", alert.CellPhone, err)
		return
	}
	log.Printf("Alert SMS sent, sid=%s", sid)
}
