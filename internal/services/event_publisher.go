package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/delesray/forum/internal/config"
)

// Routing keys of the domain events
const (
	EventReplyCreated  = "reply.created"
	EventVoteCast      = "vote.cast"
	EventVoteRemoved   = "vote.removed"
	EventMessageSent   = "message.sent"
	EventGrantChanged  = "category.grant_changed"
	EventTopicLocking  = "topic.locking_changed"
	EventCategoryAdded = "category.created"
)

// EventPublisher delivers domain events. Publishing is best effort: a
// failure is logged and never fails the request that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload map[string]interface{})
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, map[string]interface{}) {}

// RabbitMQService publishes events to a topic exchange
type RabbitMQService struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewRabbitMQService connects to RabbitMQ and declares the event exchange
func NewRabbitMQService(cfg config.RabbitMQConfig) (*RabbitMQService, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logrus.Infof("RabbitMQ publisher ready on exchange %s", cfg.Exchange)
	return &RabbitMQService{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

// NewEventPublisher returns a RabbitMQ publisher when one is configured and
// reachable, and a NoopPublisher otherwise. The returned close func is never nil.
func NewEventPublisher(cfg config.RabbitMQConfig) (EventPublisher, func()) {
	if cfg.Host == "" {
		logrus.Info("RABBITMQ_HOST not set, domain events disabled")
		return NoopPublisher{}, func() {}
	}

	svc, err := NewRabbitMQService(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
		return NoopPublisher{}, func() {}
	}
	return svc, func() { svc.Close() }
}

// Publish sends payload as JSON under routingKey
func (s *RabbitMQService) Publish(ctx context.Context, routingKey string, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.channel.PublishWithContext(ctx,
		s.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		logrus.WithField("routing_key", routingKey).Warnf("Failed to publish event: %v", err)
		return
	}
	logrus.WithField("routing_key", routingKey).Debug("Event published")
}

// Close closes the RabbitMQ connection
func (s *RabbitMQService) Close() error {
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			logrus.Warnf("Error closing channel: %v", err)
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logrus.Warnf("Error closing connection: %v", err)
		}
	}
	return nil
}
