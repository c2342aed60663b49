package repositories

import (
	"FamCare/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MessageRepository persists conversations, messages, and their attachments.
// Message lists are append-heavy and are read straight from the store.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// GetOrCreateConversation returns the doctor-family thread, creating it on
// first contact.
func (r *MessageRepository) GetOrCreateConversation(ctx context.Context, doctorID int64, familyID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Where(models.Conversation{DoctorID: doctorID, FamilyID: familyID}).
		FirstOrCreate(&conversation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create conversation: %w", err)
	}
	return &conversation, nil
}

func (r *MessageRepository) GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).
		Preload("Family").
		First(&conversation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conversation, nil
}

func (r *MessageRepository) GetConversationsByDoctor(ctx context.Context, doctorID int64) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Preload("Family").
		Where("doctor_id = ?", doctorID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor conversations: %w", err)
	}
	return conversations, nil
}

func (r *MessageRepository) GetConversationsByFamily(ctx context.Context, familyID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).
		Where("family_id = ?", familyID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get family conversations: %w", err)
	}
	return conversations, nil
}

// CreateMessage appends a message (with any attachments) and bumps the
// conversation's last-message timestamp in one transaction.
func (r *MessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		now := time.Now()
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", now).Error; err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}
		return nil
	})
}

func (r *MessageRepository) GetMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Attachments").
		Where("conversation_id = ?", conversationID).
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// MarkMessagesRead marks every unread message in the conversation not sent by
// the reader. IsRead and ReadAt are always set together.
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, conversationID uint, readerID int64) error {
	now := time.Now()
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// SearchMessages performs a keyword search over a conversation, delegated to
// the store's text matching.
func (r *MessageRepository) SearchMessages(ctx context.Context, conversationID uint, keyword string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ? AND LOWER(content) LIKE LOWER(?)", conversationID, "%"+keyword+"%").
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return messages, nil
}

// CountUnread counts the reader's unread messages in a conversation.
func (r *MessageRepository) CountUnread(ctx context.Context, conversationID uint, readerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
