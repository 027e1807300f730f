package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const headerEventType = "event_type"

type kafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	metrics  *prometheus.HistogramVec

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// delivery carries the result of one message back to the caller waiting on it.
type delivery struct {
	partition int32
	offset    int64
	err       error
}

// NewPublisher returns a no-op publisher when Kafka is disabled.
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enabled {
		return noopPublisher{}, nil
	}

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, producerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("new async producer: %w", err)
	}
	return newPublisher(producer, cfg.Topic)
}

func producerConfig(cfg config.KafkaConfig) *sarama.Config {
	conf := sarama.NewConfig()
	conf.ClientID = cfg.ClientID
	conf.Producer.Return.Successes = true
	conf.Producer.Return.Errors = true
	conf.Producer.RequiredAcks = sarama.WaitForLocal
	conf.Producer.Retry.Max = 3
	conf.Producer.Partitioner = sarama.NewHashPartitioner
	return conf
}

func newPublisher(producer sarama.AsyncProducer, topic string) (*kafkaPublisher, error) {
	metrics, err := util.GetHistogramVec("kafka_messages_produced", "status", "topic")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}
	p := &kafkaPublisher{
		producer: producer,
		topic:    topic,
		metrics:  metrics,
	}
	p.wg.Add(2)
	go p.dispatchSuccesses()
	go p.dispatchErrors()
	return p, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event *models.CartEvent) error {
	start := time.Now()
	res := p.send(ctx, event)
	duration := time.Since(start)

	code := getCode(res.err)
	content := "cart event published"
	if res.err != nil {
		content = res.err.Error()
	}
	log.Logw(ctx, getLogLevel(code), content,
		"code", code,
		"duration_ms", duration.Milliseconds(),
		"topic", p.topic,
		"partition", res.partition,
		"offset", res.offset,
		"key", event.SessionID,
		"event_type", event.Type,
	)
	p.metrics.
		WithLabelValues(code.String(), p.topic).
		Observe(duration.Seconds())
	return res.err
}

// send hands the message to the producer and waits for its ack. Both steps
// give up when ctx is done; a late ack is then dropped by the dispatcher.
func (p *kafkaPublisher) send(ctx context.Context, event *models.CartEvent) delivery {
	failed := func(err error) delivery {
		return delivery{partition: -1, offset: -1, err: err}
	}
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return failed(status.Errorf(codes.InvalidArgument, "encode cart event: %v", err))
	}

	done := make(chan delivery, 1)
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SessionID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type)},
		},
		Timestamp: event.OccurredAt,
		Metadata:  done,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return failed(status.Error(codes.Unavailable, "publisher closed"))
	}
	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		return failed(status.FromContextError(ctx.Err()).Err())
	}
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return failed(status.FromContextError(ctx.Err()).Err())
	}
}

func (p *kafkaPublisher) dispatchSuccesses() {
	defer p.wg.Done()
	for msg := range p.producer.Successes() {
		deliver(msg, delivery{partition: msg.Partition, offset: msg.Offset})
	}
}

func (p *kafkaPublisher) dispatchErrors() {
	defer p.wg.Done()
	for perr := range p.producer.Errors() {
		deliver(perr.Msg, delivery{
			partition: -1,
			offset:    -1,
			err:       status.Errorf(codes.Unavailable, "send message: %v", perr.Err),
		})
	}
}

// deliver never blocks: the waiter may have given up already.
func deliver(msg *sarama.ProducerMessage, res delivery) {
	if msg == nil {
		return
	}
	done, ok := msg.Metadata.(chan delivery)
	if !ok {
		return
	}
	select {
	case done <- res:
	default:
	}
}

// Close flushes buffered messages and waits until every result was dispatched.
func (p *kafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}

func getCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	return status.Code(err)
}

func getLogLevel(code codes.Code) logger.Level {
	switch code {
	case codes.OK:
		return logger.DebugLevel
	case codes.Canceled, codes.InvalidArgument:
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *models.CartEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
