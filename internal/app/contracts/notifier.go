package contracts

import (
	"context"
	"theramind-service/internal/pkg/dto/requests"
)

// NotificationService queues a transactional notification keyed by template
// id with a flat parameter map. Delivery is asynchronous; a queue failure is
// the caller's signal to log and move on, never to roll back.
type NotificationService interface {
	Queue(ctx context.Context, payload *requests.NotificationPayload) error
}
