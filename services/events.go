package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"akademyx-backend/config"
	"akademyx-backend/logger"
)

// Kafka topics used by the service
const (
	TopicApplications = "applications"
	TopicPayments     = "payments"
	TopicEmails       = "emails"
	TopicMessages     = "messages"
)

// Publisher publishes domain events to Kafka. Publishing is best-effort:
// when brokers are not configured every Publish is a no-op.
type Publisher struct {
	mu     sync.Mutex
	writer *kafka.Writer
}

// NewPublisher initializes a Kafka writer using brokers from the config.
func NewPublisher(cfg *config.Config) *Publisher {
	p := &Publisher{}

	if !cfg.KafkaEnabled() {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return p
	}

	brokers := strings.Split(cfg.KafkaBrokers, ",")

	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured")
		return p
	}

	ensureTopicsExist(validBrokers)

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("Kafka producer initialized. Brokers=%v", validBrokers)
	return p
}

// ensureTopicsExist creates Kafka topics if they don't already exist.
// Runs in a background goroutine to avoid blocking initialization.
func ensureTopicsExist(brokers []string) {
	go func() {
		conn, err := kafka.Dial("tcp", brokers[0])
		if err != nil {
			logger.Warn("Could not connect to Kafka broker for topic creation: %v (topics may need manual creation)", err)
			return
		}
		defer conn.Close()

		for _, topic := range []string{TopicApplications, TopicPayments, TopicEmails, TopicMessages} {
			err := conn.CreateTopics(kafka.TopicConfig{
				Topic:             topic,
				NumPartitions:     1,
				ReplicationFactor: 1,
			})
			if err != nil && !strings.Contains(err.Error(), "already exists") {
				logger.Warn("Could not create Kafka topic %q: %v", topic, err)
			}
		}
	}()
}

// Publish marshals value to JSON and publishes to the given topic with key.
// Uses exponential backoff retry logic (3 attempts). If Kafka is disabled,
// returns nil.
func (p *Publisher) Publish(topic, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()

		if err == nil {
			return nil
		}

		lastErr = err
		logger.Warn("Kafka publish attempt %d failed: %v", attempt+1, err)

		if attempt < 2 {
			time.Sleep(time.Duration(math.Pow(2, float64(attempt))) * time.Second)
		}
	}

	return lastErr
}

// Close gracefully closes the Kafka producer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
