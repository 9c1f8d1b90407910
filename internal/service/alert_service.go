package service

import (
	"context"
	"encoding/json"

	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IAlertService consumes escalation events and fans them out to the
// audit log and, when configured, the NATS event bus for external
// staff tooling.
type IAlertService interface {
	Consume(ctx context.Context) error
}

type alertService struct {
	subscriber    message.Subscriber
	logger        logger.ILogger
	escalationLog logger.ILogger
	natsPublisher *nats.Publisher
}

func NewAlertService(
	subscriber message.Subscriber,
	log logger.ILogger,
	escalationLog logger.ILogger,
	natsPublisher *nats.Publisher,
) IAlertService {
	return &alertService{
		subscriber:    subscriber,
		logger:        log,
		escalationLog: escalationLog,
		natsPublisher: natsPublisher,
	}
}

func (s *alertService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, events.TopicEscalationRaised)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *alertService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("AlertService", "invalid escalation payload", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	s.escalationLog.Info("AlertService", "escalation raised", payload)

	if s.natsPublisher == nil {
		return
	}

	event := events.BaseEvent{
		Type: events.EscalationRaisedType,
		Data: payload,
	}
	if err := s.natsPublisher.Publish(ctx, event); err != nil {
		// External forwarding is best effort.
		s.logger.Warn("AlertService", "failed to forward escalation to NATS", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
