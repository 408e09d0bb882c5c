package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DisabledByEnvVar(t *testing.T) {
	t.Setenv("PORTFOLIO_NO_TELEMETRY", "1")

	client := New()
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient when disabled")
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = ""
	defer func() { PostHogAPIKey = originalKey }()

	client := New()
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient without API key")
}

func TestIsEnabled(t *testing.T) {
	originalKey := PostHogAPIKey
	defer func() { PostHogAPIKey = originalKey }()

	PostHogAPIKey = ""
	assert.False(t, IsEnabled())

	PostHogAPIKey = "phc_test"
	assert.True(t, IsEnabled())

	t.Setenv("PORTFOLIO_NO_TELEMETRY", "1")
	assert.False(t, IsEnabled())
}

func TestNoopClient_DoesNotPanic(t *testing.T) {
	client := &noopClient{}

	client.Track("test_event", map[string]interface{}{"key": "value"})
	client.TrackServerStarted("anthropic", true)
	client.TrackSkillsViewed("programming-languages", 12)
	client.TrackSkillSearchPerformed("python", 5, false)
	client.TrackRolesViewed(4)
	client.TrackRoleSearchPerformed(3)
	client.TrackChatMessageHandled(true, 300, 50, 1200)
	client.TrackChatError("llm_unavailable")
	client.Close()

	assert.Empty(t, client.GetInstanceID())
}
