package config

import "time"

// Application-wide constants organized by domain

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	SeedTimeout         = 2 * time.Minute
	MigrationTimeout    = 10 * time.Minute
	TurnTimeout         = 10 * time.Second

	// Cache settings
	CacheExpiration  = 5 * time.Minute
	DeckCacheSize    = 1024
	AdviceCacheSize  = 100
	AdviceCacheTTL   = time.Hour

	// Batch processing
	DefaultBatchSize = 50
	ParallelQueries  = 4
	MaxRetries       = 3
)

// AI Collaborator Constants
const (
	AIRequestTimeout  = 12 * time.Second
	AdvisorMaxRetries = 3
	AdvisorBaseDelay  = time.Second

	DefaultChatModel = "llama-3.1-8b-instant"
	DefaultChatURL   = "https://api.groq.com/openai/v1"
)

// Logging Constants
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
