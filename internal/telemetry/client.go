// Package telemetry provides anonymous usage tracking via PostHog.
package telemetry

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
)

// PostHogAPIKey is set at compile time via ldflags.
var PostHogAPIKey string

// Client interface for telemetry operations.
type Client interface {
	Track(event string, properties map[string]interface{})
	Close()
	GetInstanceID() string

	// Server events
	TrackServerStarted(llmProvider string, semanticSearchEnabled bool)
	TrackSkillsViewed(category string, skillCount int)
	TrackSkillSearchPerformed(query string, resultCount int, multiQuery bool)
	TrackRolesViewed(roleCount int)
	TrackRoleSearchPerformed(resultCount int)
	TrackChatMessageHandled(skillContextUsed bool, promptTokens, completionTokens int, durationMs int64)
	TrackChatError(errorType string)
}

// posthogClient wraps the PostHog SDK.
type posthogClient struct {
	client     posthog.Client
	instanceID string
	mu         sync.Mutex
}

// noopClient does nothing (for disabled telemetry).
type noopClient struct{}

// IsEnabled returns true if telemetry is enabled. Telemetry is opt-out:
// enabled by default unless PORTFOLIO_NO_TELEMETRY is set.
func IsEnabled() bool {
	return os.Getenv("PORTFOLIO_NO_TELEMETRY") == "" && PostHogAPIKey != ""
}

// New creates a new telemetry client. Events are keyed by a random
// per-process instance ID, never by visitor identity.
func New() Client {
	if !IsEnabled() {
		return &noopClient{}
	}

	client, err := posthog.NewWithConfig(PostHogAPIKey, posthog.Config{
		Endpoint:  "https://us.i.posthog.com",
		BatchSize: 250,
		Interval:  5 * time.Second,
	})
	if err != nil {
		return &noopClient{}
	}

	return &posthogClient{
		client:     client,
		instanceID: uuid.New().String(),
	}
}

// Track sends an event to PostHog.
func (c *posthogClient) Track(event string, properties map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	props := posthog.NewProperties()
	props.Set("$process_person_profile", false)
	props.Set("$geoip_disable", true)

	for k, v := range properties {
		props.Set(k, v)
	}

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.instanceID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes remaining events and closes the client.
func (c *posthogClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.client.Close()
}

// GetInstanceID returns the anonymous per-process instance ID.
func (c *posthogClient) GetInstanceID() string {
	return c.instanceID
}

// Track is a no-op for disabled telemetry.
func (c *noopClient) Track(event string, properties map[string]interface{}) {}

// Close is a no-op for disabled telemetry.
func (c *noopClient) Close() {}

// GetInstanceID returns empty string for disabled telemetry.
func (c *noopClient) GetInstanceID() string {
	return ""
}
