package i

import (
	"time"
)

// Tokenizer issues and verifies API access tokens.
type Tokenizer interface {
	// Generate creates a token for subject carrying the extra claims, valid for ttl.
	Generate(subject string, claims map[string]any, ttl time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]any, error)
}
