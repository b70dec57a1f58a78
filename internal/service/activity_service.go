package service

import (
	"context"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventForwarder ships activity beyond the process (NATS JetStream).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// IActivityService records what visitors do. Recording never fails the
// calling flow.
type IActivityService interface {
	Record(ctx context.Context, event events.Event)
	Consume(ctx context.Context) error
}

type activityService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sink      logger.ILogger
	forwarder EventForwarder
	logger    logger.ILogger
}

// NewActivityService wires the in-process bus. forwarder may be nil.
func NewActivityService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sink logger.ILogger,
	forwarder EventForwarder,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		pubSub:    pubSub,
		topicName: topicName,
		sink:      sink,
		forwarder: forwarder,
		logger:    log,
	}
}

func (s *activityService) Record(_ context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		s.logger.Warn("ACTIVITY", "Failed to encode event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("ACTIVITY", "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
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

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		s.logger.Error("ACTIVITY", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	s.sink.Info("ACTIVITY", event.EventType(), event.Payload())

	if s.forwarder != nil {
		if err := s.forwarder.Publish(ctx, event); err != nil {
			s.logger.Warn("ACTIVITY", "Failed to forward event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		}
	}

	msg.Ack()
}

// noopActivity is used where no bus is wired (CLI).
type noopActivity struct{}

func NewNoopActivityService() IActivityService { return noopActivity{} }

func (noopActivity) Record(context.Context, events.Event) {}
func (noopActivity) Consume(context.Context) error        { return nil }
