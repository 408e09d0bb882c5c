package telemetry

import (
	"runtime"

	"github.com/mraso/portfolio/pkg/version"
)

// Event names.
const (
	EventServerStarted        = "server_started"
	EventSkillsViewed         = "skills_viewed"
	EventSkillSearchPerformed = "skill_search_performed"
	EventRolesViewed          = "roles_viewed"
	EventRoleSearchPerformed  = "role_search_performed"
	EventChatMessageHandled   = "chat_message_handled"
	EventChatErrorOccurred    = "chat_error_occurred"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":        runtime.GOOS,
		"arch":      runtime.GOARCH,
		"version":   version.Short(),
		"dev_build": version.IsDevBuild(),
	}
}

// TrackServerStarted tracks server startup.
func (c *posthogClient) TrackServerStarted(llmProvider string, semanticSearchEnabled bool) {
	props := baseProperties()
	props["llm_provider"] = llmProvider
	props["semantic_search_enabled"] = semanticSearchEnabled
	c.Track(EventServerStarted, props)
}

// TrackSkillsViewed tracks skill listing requests.
func (c *posthogClient) TrackSkillsViewed(category string, skillCount int) {
	props := baseProperties()
	props["category"] = category
	props["skill_count"] = skillCount
	c.Track(EventSkillsViewed, props)
}

// TrackSkillSearchPerformed tracks skill search requests. Only query
// length is recorded, never the query text.
func (c *posthogClient) TrackSkillSearchPerformed(query string, resultCount int, multiQuery bool) {
	props := baseProperties()
	props["query_length"] = len(query)
	props["result_count"] = resultCount
	props["multi_query"] = multiQuery
	c.Track(EventSkillSearchPerformed, props)
}

// TrackRolesViewed tracks role listing requests.
func (c *posthogClient) TrackRolesViewed(roleCount int) {
	props := baseProperties()
	props["role_count"] = roleCount
	c.Track(EventRolesViewed, props)
}

// TrackRoleSearchPerformed tracks semantic role search requests.
func (c *posthogClient) TrackRoleSearchPerformed(resultCount int) {
	props := baseProperties()
	props["result_count"] = resultCount
	c.Track(EventRoleSearchPerformed, props)
}

// TrackChatMessageHandled tracks completed chat exchanges.
func (c *posthogClient) TrackChatMessageHandled(skillContextUsed bool, promptTokens, completionTokens int, durationMs int64) {
	props := baseProperties()
	props["skill_context_used"] = skillContextUsed
	props["prompt_tokens"] = promptTokens
	props["completion_tokens"] = completionTokens
	props["duration_ms"] = durationMs
	c.Track(EventChatMessageHandled, props)
}

// TrackChatError tracks failed chat exchanges.
func (c *posthogClient) TrackChatError(errorType string) {
	props := baseProperties()
	props["error_type"] = errorType
	c.Track(EventChatErrorOccurred, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackServerStarted(llmProvider string, semanticSearchEnabled bool) {}
func (c *noopClient) TrackSkillsViewed(category string, skillCount int)                 {}
func (c *noopClient) TrackSkillSearchPerformed(query string, resultCount int, multiQuery bool) {
}
func (c *noopClient) TrackRolesViewed(roleCount int)           {}
func (c *noopClient) TrackRoleSearchPerformed(resultCount int) {}
func (c *noopClient) TrackChatMessageHandled(skillContextUsed bool, promptTokens, completionTokens int, durationMs int64) {
}
func (c *noopClient) TrackChatError(errorType string) {}
