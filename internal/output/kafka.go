package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type KafkaOutput struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
}

func NewKafkaOutput(brokerList string, sessionTimeoutMs int, logger *zap.Logger) (*KafkaOutput, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second
	if sessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(sessionTimeoutMs) * time.Millisecond
	}

	brokers := strings.Split(brokerList, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("kafka producer created", zap.Strings("brokers", brokers))
	return NewKafkaOutputWithProducer(producer, logger), nil
}

func NewKafkaOutputWithProducer(producer sarama.SyncProducer, logger *zap.Logger) *KafkaOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaOutput{producer: producer, logger: logger}
}

// WriteMessage keys each message by its scenario id so results for one
// scenario land on one partition.
func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return errors.New("kafka producer is closed")
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	}
	if envelope, err := decodeEnvelope(msg); err == nil && envelope.ScenarioID != "" {
		message.Key = sarama.StringEncoder(envelope.ScenarioID)
	}

	partition, offset, err := k.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}
	k.logger.Debug("message sent",
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
