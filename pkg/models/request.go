package models

import "time"

// TrackRequest represents the request payload for tracking a product URL
type TrackRequest struct {
	URL     string        `json:"url" validate:"required,url"`
	Options *TrackOptions `json:"options,omitempty"`
}

// TrackOptions provides additional configuration for tracking requests
type TrackOptions struct {
	Engine    string        `json:"engine,omitempty"`     // "headed", "firecrawl", "auto"
	Timeout   time.Duration `json:"timeout,omitempty"`    // Navigation timeout override
	UserAgent string        `json:"user_agent,omitempty"` // Custom user agent
}
