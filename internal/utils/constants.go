package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

// HTTP Handler Timeouts
const (
	// DefaultRequestTimeout bounds a single API request including the history fetch
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second
)

// Connection Timeouts
const (
	// ConnectTimeout is used when dialing Redis, NATS or PostgreSQL at startup
	ConnectTimeout = 5 * time.Second

	// PublishTimeout bounds delivery of one prediction event
	PublishTimeout = 2 * time.Second
)

// =============================================================================
// Calendar Constants
// =============================================================================

const (
	// Day is the spacing of revenue samples and forecast steps
	Day = 24 * time.Hour

	// MillisPerDay converts a per-millisecond slope to a per-day rate
	MillisPerDay = 86_400_000
)

// =============================================================================
// Queue Constants
// =============================================================================

// QueueType represents the type of event transport
type QueueType string

const (
	// QueueTypeNone disables event publishing
	QueueTypeNone QueueType = "none"

	// QueueTypeNATS represents core NATS publish
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory channels (for testing)
	QueueTypeMemory QueueType = "memory"
)

// MemoryQueueCapacity is the per-subject buffer of the in-memory publisher
const MemoryQueueCapacity = 1000
