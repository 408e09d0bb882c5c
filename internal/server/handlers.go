package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mraso/portfolio/internal/db"
	"github.com/mraso/portfolio/internal/llm"
	"github.com/mraso/portfolio/internal/log"
	"github.com/mraso/portfolio/internal/models"
	"github.com/mraso/portfolio/internal/roles"
	"github.com/mraso/portfolio/internal/similarity"
	"github.com/mraso/portfolio/internal/skills"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListSkills returns the skill catalog, either grouped by
// category (no filters) or as a flat filtered list.
func (s *Server) handleListSkills(c *gin.Context) {
	ctx := c.Request.Context()

	filters := skills.Filters{
		Categories:   splitParam(c.Query("category")),
		Technologies: splitParam(c.Query("technology")),
		Companies:    splitParam(c.Query("company")),
	}
	for _, p := range splitParam(c.Query("proficiency")) {
		filters.Proficiency = append(filters.Proficiency, models.Proficiency(p))
	}
	if minYears, maxYears := c.Query("min_years"), c.Query("max_years"); minYears != "" || maxYears != "" {
		yr := &skills.YearsRange{Min: 0, Max: 100}
		if minYears != "" {
			v, err := strconv.ParseFloat(minYears, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_years"})
				return
			}
			yr.Min = v
		}
		if maxYears != "" {
			v, err := strconv.ParseFloat(maxYears, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_years"})
				return
			}
			yr.Max = v
		}
		filters.YearsExperience = yr
	}

	if isZeroFilters(filters) {
		categories, err := s.skills.Categories(ctx)
		if err != nil {
			s.internalError(c, "load skills", err)
			return
		}
		total := 0
		for _, cat := range categories {
			total += len(cat.Skills)
		}
		s.telemetry.TrackSkillsViewed("all", total)
		c.JSON(http.StatusOK, gin.H{"categories": categories, "total": total})
		return
	}

	matched, err := s.skills.Filter(ctx, filters)
	if err != nil {
		s.internalError(c, "filter skills", err)
		return
	}
	s.telemetry.TrackSkillsViewed(strings.Join(filters.Categories, ","), len(matched))
	c.JSON(http.StatusOK, gin.H{"skills": matched, "count": len(matched)})
}

func (s *Server) handleGetSkill(c *gin.Context) {
	skill, category, err := s.skills.SkillByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, skills.ErrSkillNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}
	if err != nil {
		s.internalError(c, "load skill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"skill": skill,
		"category": gin.H{
			"id":   category.ID,
			"name": category.Name,
		},
	})
}

// handleSearchSkills scores skills against one or more queries.
// Multiple queries are separated by commas and their scores are summed.
func (s *Server) handleSearchSkills(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	queries := splitParam(query)
	var results []skills.SearchResult
	var err error
	multi := len(queries) > 1
	if multi {
		results, err = s.skills.SearchMultiQuery(c.Request.Context(), queries, limit)
	} else {
		results, err = s.skills.SearchSemantic(c.Request.Context(), query, limit)
	}
	if err != nil {
		s.internalError(c, "search skills", err)
		return
	}

	s.telemetry.TrackSkillSearchPerformed(query, len(results), multi)
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (s *Server) handleSkillStats(c *gin.Context) {
	stats, err := s.skills.Statistics(c.Request.Context())
	if err != nil {
		s.internalError(c, "compute skill stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleListRoles returns the role catalog. ?group_by=company groups
// roles by employer; ?recent=N returns the N most recent roles.
func (s *Server) handleListRoles(c *gin.Context) {
	if c.Query("group_by") == "company" {
		groups := s.roles.RolesByCompany()
		s.telemetry.TrackRolesViewed(len(s.roles.Roles()))
		c.JSON(http.StatusOK, gin.H{"companies": groups})
		return
	}

	if raw := c.Query("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recent"})
			return
		}
		recent := s.roles.RecentRoles(n)
		s.telemetry.TrackRolesViewed(len(recent))
		c.JSON(http.StatusOK, gin.H{"roles": recent, "count": len(recent)})
		return
	}

	all := s.roles.Roles()
	s.telemetry.TrackRolesViewed(len(all))
	c.JSON(http.StatusOK, gin.H{
		"roles":    all,
		"count":    len(all),
		"metadata": s.roles.DatasetMetadata(),
	})
}

func (s *Server) handleGetRole(c *gin.Context) {
	role, err := s.roles.RoleByID(c.Param("id"))
	if errors.Is(err, roles.ErrRoleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	if err != nil {
		s.internalError(c, "load role", err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// roleSearchResult is one semantic match, condensed to one chunk per
// role.
type roleSearchResult struct {
	RoleID  string  `json:"role_id"`
	Company string  `json:"company"`
	Title   string  `json:"title"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Display string  `json:"display_score"`
}

// handleSearchRoles runs embedding similarity search over the
// experience chunks.
func (s *Server) handleSearchRoles(c *gin.Context) {
	if s.embedder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "semantic search is not enabled"})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	topK := 0
	if raw := c.Query("top_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top_k"})
			return
		}
		topK = v
	}

	ctx := c.Request.Context()
	embeddings, err := s.roles.Embeddings(ctx)
	if err != nil {
		s.internalError(c, "load embeddings", err)
		return
	}

	scores, err := similarity.SearchByText(ctx, query, embeddings, s.embedder, topK, similarity.DefaultThreshold)
	if err != nil {
		s.internalError(c, "search roles", err)
		return
	}

	top := similarity.TopChunkPerRole(scores)
	results := make([]roleSearchResult, 0, len(top))
	for _, score := range top {
		results = append(results, roleSearchResult{
			RoleID:  score.Chunk.Metadata.RoleID,
			Company: score.Chunk.Metadata.Company,
			Title:   score.Chunk.Metadata.Title,
			Text:    score.Chunk.Text,
			Score:   score.Score,
			Display: similarity.FormatScore(score.Score),
		})
	}

	s.telemetry.TrackRoleSearchPerformed(len(results))
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// handleChat relays a visitor question to the assistant, threading
// conversation history through the store when one is configured.
func (s *Server) handleChat(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat assistant is not enabled"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	conversationID := req.ConversationID
	var history []llm.Message
	if s.store != nil {
		if conversationID == "" {
			conv, err := s.store.CreateConversation()
			if err != nil {
				s.internalError(c, "create conversation", err)
				return
			}
			conversationID = conv.ID
		} else {
			if _, err := s.store.GetConversation(conversationID); err != nil {
				if errors.Is(err, db.ErrConversationNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
					return
				}
				s.internalError(c, "load conversation", err)
				return
			}
			stored, err := s.store.RecentHistory(conversationID)
			if err != nil {
				s.internalError(c, "load history", err)
				return
			}
			for _, msg := range stored {
				history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
			}
		}
	}

	started := time.Now()
	reply, err := s.assistant.Answer(c.Request.Context(), req.Message, history)
	if err != nil {
		s.telemetry.TrackChatError(chatErrorType(err))
		log.Errorf("chat failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Sorry, I encountered an error. Please try asking in a different way.",
		})
		return
	}

	if s.store != nil {
		if err := s.store.AppendMessage(conversationID, "user", req.Message); err != nil {
			log.Errorf("persist user message: %v", err)
		}
		if err := s.store.AppendMessage(conversationID, "assistant", reply.Text); err != nil {
			log.Errorf("persist assistant message: %v", err)
		}
	}

	s.telemetry.TrackChatMessageHandled(reply.SkillContextUsed, reply.Usage.PromptTokens, reply.Usage.CompletionTokens, time.Since(started).Milliseconds())
	c.JSON(http.StatusOK, gin.H{
		"conversation_id":    conversationID,
		"reply":              reply.Text,
		"model":              reply.Model,
		"skill_context_used": reply.SkillContextUsed,
	})
}

func (s *Server) handleVisitorStats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking is not enabled"})
		return
	}
	stats, err := s.store.GetVisitorStats()
	if err != nil {
		s.internalError(c, "load visitor stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// internalError logs the cause and returns a generic 500.
func (s *Server) internalError(c *gin.Context, action string, err error) {
	log.Errorf("%s: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// splitParam splits a comma-separated query parameter into trimmed
// non-empty parts.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isZeroFilters reports whether no filter criteria were supplied.
func isZeroFilters(f skills.Filters) bool {
	return len(f.Categories) == 0 &&
		len(f.Proficiency) == 0 &&
		len(f.Technologies) == 0 &&
		len(f.Companies) == 0 &&
		f.YearsExperience == nil &&
		f.DateRange == nil
}

// chatErrorType buckets chat failures for telemetry.
func chatErrorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "llm_error"
	}
}
