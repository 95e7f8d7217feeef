package service

import (
	"context"
	"fmt"
	"time"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/repository/specification"
	"broadcast-eval-be/internal/repository/unitofwork"
	"broadcast-eval-be/pkg/events"
	pktNats "broadcast-eval-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates, implemented
// by the websocket hub.
type NotificationDelivery interface {
	Send(employeeID string, notification dto.Notification)
	Broadcast(notification dto.Notification)
}

// NotificationService turns evaluation bus events into review-feed
// pushes: instructors hear about new submissions, candidates hear about
// results. Notifications are ephemeral; the index and the records remain
// the durable state.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("evaluations.>", "review-feed-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start feed subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Review feed started, listening to evaluations.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if s.delivery == nil {
		return nil
	}

	payload := event.Payload()
	employeeID, _ := payload["employee_id"].(string)

	switch event.EventType() {
	case events.TypeEvaluationSubmitted:
		name, _ := payload["name"].(string)
		language, _ := payload["language"].(string)
		category, _ := payload["category"].(string)
		s.notifyInstructors(ctx, s.buildNotification(event,
			"New submission",
			fmt.Sprintf("%s submitted a %s / %s broadcast evaluation", name, language, category),
		))

	case events.TypeEvaluationApproved:
		if employeeID != "" {
			s.delivery.Send(employeeID, s.buildNotification(event,
				"Evaluation approved",
				"Your broadcast evaluation has been approved",
			))
		}

	case events.TypeEvaluationReopened:
		if employeeID != "" {
			s.delivery.Send(employeeID, s.buildNotification(event,
				"Re-evaluation requested",
				"Your broadcast evaluation was sent back for another round",
			))
		}

	case events.TypeEvaluationDeleted:
		if employeeID != "" {
			s.delivery.Send(employeeID, s.buildNotification(event,
				"Evaluation removed",
				"One of your broadcast evaluations was removed",
			))
		}

	case events.TypeRecordRelocated, events.TypeScheduleRequestPlaced:
		// Bookkeeping events; nothing to show in the feed.

	default:
		s.logger.Warn("NotificationService", "Unknown event type on feed", map[string]interface{}{
			"type": event.EventType(),
		})
	}

	return nil
}

// notifyInstructors fans a notification out to every instructor and admin
// account individually, so it also reaches them on other instances.
func (s *NotificationService) notifyInstructors(ctx context.Context, notification dto.Notification) {
	if s.uowFactory == nil {
		s.delivery.Broadcast(notification)
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, role := range []string{"instructor", "admin"} {
		users, err := uow.UserRepository().FindAll(ctx, specification.ByRole{Role: role})
		if err != nil {
			s.logger.Error("NotificationService", "Failed to resolve recipients", map[string]interface{}{
				"role":  role,
				"error": err.Error(),
			})
			continue
		}
		for _, user := range users {
			s.delivery.Send(user.EmployeeID, notification)
		}
	}
}

func (s *NotificationService) buildNotification(event events.Event, title, message string) dto.Notification {
	return dto.Notification{
		ID:        uuid.New(),
		Type:      event.EventType(),
		Title:     title,
		Message:   message,
		Data:      event.Payload(),
		CreatedAt: time.Now(),
	}
}
