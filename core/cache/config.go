package cache

// Config holds configuration for the snapshot cache.
type Config struct {
	// URL is the Redis connection URL. Empty disables the cache.
	URL string `mapstructure:"url" default:""`
	// TTLSeconds is how long a cached snapshot stays valid. Zero means no expiry.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"0"`
	// DialTimeoutSeconds is the connection setup timeout.
	DialTimeoutSeconds int `mapstructure:"dial_timeout_seconds" default:"5"`
}
