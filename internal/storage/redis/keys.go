package redis

import (
	"fmt"
	"strings"

	"github.com/expotrack/expotrack/internal/model"
)

// Key prefix for all visit-tracking data
const keyPrefix = "expotrack"

// visitorKey returns the Redis key for a VisitorIdentity
func visitorKey(id model.VisitorID) string {
	return fmt.Sprintf("%s:visitor:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> visitor_id index.
// Emails are indexed lowercased so lookups are case-insensitive.
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}

// registerListKey returns the Redis key for the LIST of visitor ids in
// registration order
func registerListKey() string {
	return fmt.Sprintf("%s:register", keyPrefix)
}

// aggregateKey returns the Redis key for an AggregateRecord
func aggregateKey(id model.VisitorID) string {
	return fmt.Sprintf("%s:aggregate:%s", keyPrefix, id)
}
