package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventSessionStarted = "session_started"
	EventAnswerScored   = "answer_scored"
	EventResultsViewed  = "results_viewed"
)

// InterviewEvent is the message published for each interview milestone.
type InterviewEvent struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id"`
	QuestionID string    `json:"question_id,omitempty"`
	Overall    int       `json:"overall,omitempty"`
	FinalScore int       `json:"final_score,omitempty"`
	Readiness  string    `json:"readiness,omitempty"`
	At         time.Time `json:"at"`
}

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *zap.Logger
}

func NewRabbitMQ(url, queue string, logger *zap.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &RabbitMQ{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, event InterviewEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.At,
			Body:        body,
		},
	)
}

// ConsumeEvents hands every decoded event to handler until the channel closes.
func (r *RabbitMQ) ConsumeEvents(handler func(InterviewEvent)) error {
	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			var event InterviewEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				r.logger.Warn("invalid interview event", zap.Error(err))
				continue
			}
			handler(event)
		}
	}()
	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, InterviewEvent) error { return nil }

// AuditLogger returns an event handler that writes each event to logger.
func AuditLogger(logger *zap.Logger) func(InterviewEvent) {
	return func(e InterviewEvent) {
		logger.Info("interview event",
			zap.String("type", e.Type),
			zap.String("session_id", e.SessionID),
			zap.String("question_id", e.QuestionID),
			zap.Int("overall", e.Overall),
			zap.Int("final_score", e.FinalScore),
			zap.String("readiness", e.Readiness),
			zap.Time("at", e.At),
		)
	}
}
