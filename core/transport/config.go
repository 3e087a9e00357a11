package transport

// Config holds configuration for the HTTP transport.
type Config struct {
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// MaxRetries is the number of attempts before a request is given up on.
	MaxRetries int `mapstructure:"max_retries" default:"4"`
	// RetryBaseMillis is the base backoff delay; the nth retry waits
	// base * 2^(n-1).
	RetryBaseMillis int `mapstructure:"retry_base_millis" default:"1000"`
}
