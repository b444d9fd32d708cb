package mailer

import (
	"fmt"
	"net/smtp"
	"theramind-service/internal/app/drivers/mailer"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker drains the mailer queue and delivers each notification over SMTP.
// Delivery is best effort: a failed send is logged and the message is
// rejected without requeue so a poisoned payload cannot wedge the queue.
type Worker struct {
	Channel *amqp091.Channel
	Queue   string
	Client  *mailer.SMTPClient
	Log     *zap.Logger
}

func NewWorker(rabbitMQConnection *amqp091.Connection, queue string, client *mailer.SMTPClient, logger *zap.Logger) (*Worker, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	return &Worker{
		Channel: channel,
		Queue:   queue,
		Client:  client,
		Log:     logger,
	}, nil
}

// Start begins consuming in a background goroutine and returns a stop
// function that closes the channel, ending the loop.
func (w *Worker) Start() (func() error, error) {
	deliveries, err := w.Channel.Consume(w.Queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	go func() {
		for delivery := range deliveries {
			w.handle(delivery)
		}
		w.Log.Info("mailer worker stopped")
	}()

	return w.Channel.Close, nil
}

func (w *Worker) handle(delivery amqp091.Delivery) {
	var payload requests.NotificationPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		w.Log.Error("mailer worker cannot decode payload", zap.Error(err))
		_ = delivery.Reject(false)
		return
	}

	w.Log.Info("mailer worker delivering notification",
		zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
		zap.String(constvars.LoggingRecipientKey, payload.To),
	)

	subject, body, err := RenderTemplate(payload.TemplateID, payload.Params)
	if err != nil {
		w.Log.Error("mailer worker cannot render template",
			zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
			zap.Error(err),
		)
		_ = delivery.Reject(false)
		return
	}

	if err := w.send(payload.To, subject, body); err != nil {
		w.Log.Error("mailer worker cannot send email",
			zap.String(constvars.LoggingRecipientKey, payload.To),
			zap.Error(err),
		)
		_ = delivery.Reject(false)
		return
	}

	_ = delivery.Ack(false)
	w.Log.Info("mailer worker delivered notification",
		zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
		zap.String(constvars.LoggingRecipientKey, payload.To),
	)
}

func (w *Worker) send(to, subject, body string) error {
	from := w.Client.EmailSender
	msg := []byte(fmt.Sprintf(constvars.EmailSendBasicEmailSubjectFormat, to, subject, body))
	addr := fmt.Sprintf("%s:%d", w.Client.Host, w.Client.Port)
	err := smtp.SendMail(addr, w.Client.Auth, from, []string{to}, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, w.Client.Host)
	}
	return nil
}
