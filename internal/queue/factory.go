package queue

import (
	"fmt"
	"strings"

	"github.com/soltixdb/revenue/internal/config"
	"github.com/soltixdb/revenue/internal/utils"
)

// NewPublisher creates the publisher selected by cfg.Type. It returns a nil
// Publisher and no error when publishing is disabled.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	queueType := utils.QueueType(strings.ToLower(cfg.Type))

	switch queueType {
	case "", utils.QueueTypeNone:
		return nil, nil

	case utils.QueueTypeNATS:
		return NewNATSPublisher(cfg.URL)

	case utils.QueueTypeRedis:
		return NewRedisPublisher(cfg.URL, cfg.RedisStream)

	case utils.QueueTypeKafka:
		return NewKafkaPublisher(KafkaConfig{Brokers: cfg.KafkaBrokers})

	case utils.QueueTypeMemory:
		return NewMemoryPublisher(utils.MemoryQueueCapacity), nil

	default:
		return nil, fmt.Errorf("unsupported queue type: %s (supported: none, nats, redis, kafka, memory)", queueType)
	}
}
