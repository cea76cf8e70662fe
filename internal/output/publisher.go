package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/chrisdamba/foodwaste/internal/models"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ResultPublisher hands a finished analysis to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, runID string, resp models.AnalysisResponse) error
	Close() error
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(brokerList, topic string) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokers := strings.Split(brokerList, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("kafka publisher ready")
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish sends the response keyed by run id.
func (k *KafkaPublisher) Publish(ctx context.Context, runID string, resp models.AnalysisResponse) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(runID),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", k.topic, err)
	}
	log.Debug().Str("topic", k.topic).Int32("partition", partition).Int64("offset", offset).Msg("published analysis")
	return nil
}

func (k *KafkaPublisher) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}

// ConsolePublisher renders the response as JSON or YAML.
type ConsolePublisher struct {
	w      io.Writer
	format string
}

func NewConsolePublisher(w io.Writer, format string) *ConsolePublisher {
	if w == nil {
		w = os.Stdout
	}
	return &ConsolePublisher{w: w, format: format}
}

func (c *ConsolePublisher) Publish(_ context.Context, _ string, resp models.AnalysisResponse) error {
	switch c.format {
	case FormatYAML:
		enc := yaml.NewEncoder(c.w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(c.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", c.format)
	}
}

func (c *ConsolePublisher) Close() error { return nil }

// MultiPublisher publishes to each publisher in turn.
type MultiPublisher []ResultPublisher

func (m MultiPublisher) Publish(ctx context.Context, runID string, resp models.AnalysisResponse) error {
	for _, p := range m {
		if err := p.Publish(ctx, runID, resp); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiPublisher) Close() error {
	var firstErr error
	for _, p := range m {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
