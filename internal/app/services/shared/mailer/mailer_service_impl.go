package mailer

import (
	"context"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	notificationServiceInstance contracts.NotificationService
	onceNotificationService     sync.Once
)

type notificationService struct {
	Channel   *amqp091.Channel
	QueueName string
	Log       *zap.Logger
}

// NewNotificationService declares the mailer queue and returns a publisher
// for it. Messages are persistent; delivery happens in the Worker.
func NewNotificationService(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.NotificationService, error) {
	var initErr error
	onceNotificationService.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			initErr = err
			return
		}
		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			initErr = err
			return
		}
		notificationServiceInstance = &notificationService{
			Channel:   channel,
			QueueName: queue,
			Log:       logger,
		}
	})
	return notificationServiceInstance, initErr
}

func (s *notificationService) Queue(ctx context.Context, payload *requests.NotificationPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("notificationService.Queue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
		zap.String(constvars.LoggingRecipientKey, payload.To),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.QueueName, false, false, message)
	if err != nil {
		s.Log.Error("notificationService.Queue error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrQueuePublish(err, s.QueueName)
	}

	s.Log.Info("notificationService.Queue succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
	)
	return nil
}
