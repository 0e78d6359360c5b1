package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-board/pkg/config"
	"pet-board/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BoardEventsExchange  = "board_events"
	LostReportQueueName  = "lost_report_queue"
	LostReportRoutingKey = "board.lost_report"
)

// LostReport announces a new post on the lost board.
type LostReport struct {
	Type         string `json:"type"`
	BoardID      int64  `json:"board_id"`
	LostType     string `json:"lost_type"`
	Kind         string `json:"kind,omitempty"`
	LostLocation string `json:"lost_location,omitempty"`
	LostDate     string `json:"lost_date,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Priority puts missing-animal reports ahead of sightings.
func (r LostReport) Priority() uint8 {
	if r.LostType == "missing" {
		return 8
	}
	return 4
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

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
		BoardEventsExchange, // name
		"topic",             // type
		true,                // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		LostReportQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		LostReportQueueName,  // queue name
		LostReportRoutingKey, // routing key
		BoardEventsExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// EncodeLostReport builds the persistent AMQP message for a lost report.
func EncodeLostReport(report LostReport) (amqp.Publishing, error) {
	report.Type = "lost_report"
	body, err := json.Marshal(report)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal lost report: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Priority:     report.Priority(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}, nil
}

func (c *Client) PublishLostReport(ctx context.Context, report LostReport) error {
	msg, err := EncodeLostReport(report)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(ctx,
		BoardEventsExchange,  // exchange
		LostReportRoutingKey, // routing key
		false,                // mandatory
		false,                // immediate
		msg,
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", BoardEventsExchange, LostReportRoutingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published lost report board_id=%d lost_type=%s", report.BoardID, report.LostType)
	return nil
}
