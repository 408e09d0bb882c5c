package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConversationNotFound is returned when a conversation ID is unknown.
var ErrConversationNotFound = errors.New("conversation not found")

// maxHistoryMessages bounds how much history a single conversation
// carries into the prompt.
const maxHistoryMessages = 20

// Conversation is one chat session with the assistant.
type Conversation struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatMessage is one turn within a conversation.
type ChatMessage struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	ConversationID string `gorm:"index;not null"`
	Role           string `gorm:"not null"` // "user" or "assistant"
	Content        string `gorm:"not null"`
	CreatedAt      time.Time
}

// CreateConversation starts a new chat session.
func (db *DB) CreateConversation() (*Conversation, error) {
	conv := &Conversation{ID: uuid.New().String()}
	if err := db.Create(conv).Error; err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// GetConversation looks up a conversation by ID.
func (db *DB) GetConversation(id string) (*Conversation, error) {
	var conv Conversation
	err := db.First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

// AppendMessage records one turn of a conversation.
func (db *DB) AppendMessage(conversationID, role, content string) error {
	return db.Transaction(func(tx *DB) error {
		var conv Conversation
		err := tx.First(&conv, "id = ?", conversationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		if err != nil {
			return fmt.Errorf("get conversation: %w", err)
		}

		msg := ChatMessage{
			ConversationID: conversationID,
			Role:           role,
			Content:        content,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("append message: %w", err)
		}

		return tx.Model(&conv).Update("updated_at", time.Now()).Error
	})
}

// ConversationMessages returns a conversation's turns, oldest first.
func (db *DB) ConversationMessages(conversationID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := db.Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// RecentHistory returns the most recent turns of a conversation, oldest
// first, capped at maxHistoryMessages.
func (db *DB) RecentHistory(conversationID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := db.Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Limit(maxHistoryMessages).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}

	// Reverse back to chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
