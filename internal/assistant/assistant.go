// Package assistant answers visitor questions about the portfolio,
// grounding every response in the role catalog and skill inventory.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mraso/portfolio/internal/llm"
	"github.com/mraso/portfolio/internal/log"
	"github.com/mraso/portfolio/internal/roles"
	"github.com/mraso/portfolio/internal/skills"
)

// ErrEmptyResponse is returned when the model produces no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// defaultSkillContextLimit bounds how many skill matches are attached
// to a skill-related question.
const defaultSkillContextLimit = 5

// Config configures the assistant.
type Config struct {
	// OwnerName appears in the persona preamble
	OwnerName string
	// Model overrides the provider default
	Model string
	// MaxTokens caps response length (provider default if zero)
	MaxTokens int
	// SkillContextLimit bounds attached skill matches (default 5)
	SkillContextLimit int
}

// Assistant assembles grounded prompts and relays them to an LLM
// provider.
type Assistant struct {
	provider llm.Provider
	skills   *skills.Repository
	roles    *roles.Repository
	cfg      Config
}

// Reply is a completed chat exchange.
type Reply struct {
	Text             string
	Model            string
	SkillContextUsed bool
	Usage            llm.Usage
}

// New creates an assistant. Zero-value config fields fall back to
// defaults.
func New(provider llm.Provider, skillRepo *skills.Repository, roleRepo *roles.Repository, cfg Config) *Assistant {
	if cfg.OwnerName == "" {
		cfg.OwnerName = "the portfolio owner"
	}
	if cfg.SkillContextLimit <= 0 {
		cfg.SkillContextLimit = defaultSkillContextLimit
	}
	return &Assistant{
		provider: provider,
		skills:   skillRepo,
		roles:    roleRepo,
		cfg:      cfg,
	}
}

// Answer responds to a visitor question. History carries the earlier
// turns of the conversation, oldest first.
func (a *Assistant) Answer(ctx context.Context, question string, history []llm.Message) (*Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("question is empty")
	}

	systemPrompt, skillContextUsed := a.buildSystemPrompt(ctx, question)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.NewSystemMessage(systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, llm.NewUserMessage(question))

	resp, err := a.provider.ChatSync(ctx, messages, llm.ChatOptions{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Reply{
		Text:             text,
		Model:            resp.Model,
		SkillContextUsed: skillContextUsed,
		Usage:            resp.Usage,
	}, nil
}

// buildSystemPrompt assembles the persona preamble plus the grounding
// context. Skill context is attached only for skill-related questions;
// a failed skill search degrades to answering without it.
func (a *Assistant) buildSystemPrompt(ctx context.Context, question string) (string, bool) {
	var skillContext string
	if skills.IsSkillQuery(question) {
		results, err := a.skills.SearchSemantic(ctx, question, a.cfg.SkillContextLimit)
		if err != nil {
			log.Errorf("skill search failed, answering without skill context: %v", err)
		} else if len(results) > 0 {
			skillContext = skills.BuildSkillContext(results)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful and professional AI assistant for %s's portfolio. ", a.cfg.OwnerName)
	b.WriteString("Your goal is to answer questions based *only* on the provided context about their skills, experience, and projects. ")
	b.WriteString("Do not invent information. If a question cannot be answered from the context, politely state that the information is not in the portfolio. ")
	b.WriteString("Keep your answers concise and relevant.\n\n")
	b.WriteString("--- PORTFOLIO CONTEXT ---\n")
	b.WriteString(a.roles.PortfolioText())
	if skillContext != "" {
		b.WriteString("\n")
		b.WriteString(skillContext)
	}

	return b.String(), skillContext != ""
}
