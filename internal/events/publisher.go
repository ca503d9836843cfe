// Package events publishes finalized sick-leave records to Kafka. Delivery is
// at-least-once; downstream consumers deduplicate on registrationId.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"dokdig/internal/task/models"
)

// FinalizedRecord is the event payload for a finalized registration.
type FinalizedRecord struct {
	RegistrationID string              `json:"registrationId"`
	TaskID         string              `json:"taskId"`
	SubjectID      string              `json:"subjectId"`
	Origin         models.Origin       `json:"origin"`
	Registration   models.Registration `json:"registration"`
	FinalizedAt    time.Time           `json:"finalizedAt"`
	FinalizedBy    string              `json:"finalizedBy"`
	Revised        bool                `json:"revised,omitempty"`
}

// NewFinalizedRecord builds the event payload from a finalized task. The task
// must carry a registration and a finalization timestamp.
func NewFinalizedRecord(task models.Task, revised bool) FinalizedRecord {
	return FinalizedRecord{
		RegistrationID: task.RegistrationID.String(),
		TaskID:         task.TaskID,
		SubjectID:      task.SubjectID,
		Origin:         task.Origin,
		Registration:   *task.Registration,
		FinalizedAt:    *task.FinalizedAt,
		FinalizedBy:    task.LastModifiedBy,
		Revised:        revised,
	}
}

// KafkaPublisher produces finalized records synchronously: Publish blocks
// until the broker acknowledges the write or the produce fails.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects a producer to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Publish sends one finalized record keyed by registrationId and waits for
// broker acknowledgment. Errors propagate to the caller; nothing is swallowed.
func (p *KafkaPublisher) Publish(ctx context.Context, record FinalizedRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal finalized record: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(record.RegistrationID),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce finalized record: %w", err)
	}
	return nil
}

// Close flushes and shuts down the producer.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
