package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

// Destination receives encoded result envelopes, one message per
// calculation, addressed by topic.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// Envelope wraps one calculation result for publishing.
type Envelope struct {
	ID          string          `json:"id"`
	Calculation string          `json:"calculation"`
	ScenarioID  string          `json:"scenario_id,omitempty"`
	Timestamp   int64           `json:"timestamp"`
	Result      json.RawMessage `json:"result"`
}

func (e Envelope) Time() time.Time {
	return time.Unix(e.Timestamp, 0).UTC()
}

func NewEnvelope(calculation, scenarioID string, result any, at time.Time) (Envelope, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode %s result: %w", calculation, err)
	}
	return Envelope{
		ID:          cuid.New(),
		Calculation: calculation,
		ScenarioID:  scenarioID,
		Timestamp:   at.Unix(),
		Result:      raw,
	}, nil
}

func decodeEnvelope(msg []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(msg, &e); err != nil {
		return Envelope{}, fmt.Errorf("invalid result envelope: %w", err)
	}
	return e, nil
}

// Topic names the stream a calculation's results are written to.
func Topic(prefix, calculation string) string {
	if prefix == "" {
		return calculation
	}
	return prefix + "." + calculation
}

// Publisher encodes results into envelopes and hands them to a
// Destination, counting each write.
type Publisher struct {
	dest        Destination
	name        string
	topicPrefix string
	metrics     *metrics.Collector
	logger      *zap.Logger
	now         func() time.Time
}

func NewPublisher(dest Destination, name, topicPrefix string, collector *metrics.Collector, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	return &Publisher{
		dest:        dest,
		name:        name,
		topicPrefix: topicPrefix,
		metrics:     collector,
		logger:      logger,
		now:         time.Now,
	}
}

func (p *Publisher) Publish(calculation, scenarioID string, result any) error {
	envelope, err := NewEnvelope(calculation, scenarioID, result, p.now())
	if err != nil {
		return err
	}
	msg, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	topic := Topic(p.topicPrefix, calculation)
	err = p.dest.WriteMessage(topic, msg)
	p.metrics.RecordResultWritten(p.name, err)
	if err != nil {
		p.logger.Error("failed to write result",
			zap.String("destination", p.name),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to write %s result to %s: %w", calculation, p.name, err)
	}
	p.logger.Debug("result written",
		zap.String("destination", p.name),
		zap.String("topic", topic),
		zap.String("envelope_id", envelope.ID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.dest.Close()
}

type batchInserter interface {
	BatchInsert(topic string, envelopes []Envelope) error
}

// Item is one result of a batch publish.
type Item struct {
	ScenarioID string
	Result     any
}

// PublishBatch writes every item under one topic. Destinations that
// support bulk inserts receive the batch in a single call.
func (p *Publisher) PublishBatch(calculation string, items []Item) error {
	topic := Topic(p.topicPrefix, calculation)
	envelopes := make([]Envelope, 0, len(items))
	for _, item := range items {
		envelope, err := NewEnvelope(calculation, item.ScenarioID, item.Result, p.now())
		if err != nil {
			return err
		}
		envelopes = append(envelopes, envelope)
	}

	if bulk, ok := p.dest.(batchInserter); ok {
		err := bulk.BatchInsert(topic, envelopes)
		for range envelopes {
			p.metrics.RecordResultWritten(p.name, err)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s batch to %s: %w", calculation, p.name, err)
		}
		return nil
	}

	for _, envelope := range envelopes {
		msg, err := json.Marshal(envelope)
		if err != nil {
			return err
		}
		err = p.dest.WriteMessage(topic, msg)
		p.metrics.RecordResultWritten(p.name, err)
		if err != nil {
			return fmt.Errorf("failed to write %s result to %s: %w", calculation, p.name, err)
		}
	}
	return nil
}
