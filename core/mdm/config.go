package mdm

// Config holds configuration for the remote card/deck data sources.
type Config struct {
	// BaseURL is the root of the Master Duel Meta website and API.
	BaseURL string `mapstructure:"base_url" default:"https://www.masterduelmeta.com"`
	// FeedURL is the bulk card catalog feed (YGOJSON aggregate).
	FeedURL string `mapstructure:"feed_url" default:"https://raw.githubusercontent.com/iconmaster5326/YGOJSON/v1/aggregate/cards.json"`
	// UserAgent is sent on every request; the site rejects the Go default.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
