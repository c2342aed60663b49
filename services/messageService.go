package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"fmt"
)

type MessageService struct {
	messageRepo      *repositories.MessageRepository
	familyRepo       *repositories.FamilyRepository
	notificationRepo *repositories.NotificationRepository
}

func NewMessageService(messageRepo *repositories.MessageRepository, familyRepo *repositories.FamilyRepository, notificationRepo *repositories.NotificationRepository) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		familyRepo:       familyRepo,
		notificationRepo: notificationRepo,
	}
}

// StartConversation opens (or returns) the thread between a doctor and a family.
func (s *MessageService) StartConversation(ctx context.Context, doctorID int64, familyID uint) (*models.Conversation, error) {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, fmt.Errorf("%w: family %d", ErrNotFound, familyID)
	}
	return s.messageRepo.GetOrCreateConversation(ctx, doctorID, familyID)
}

func (s *MessageService) GetConversationsForUser(ctx context.Context, userID int64, role string) ([]models.Conversation, error) {
	if role == models.RoleDoctor {
		return s.messageRepo.GetConversationsByDoctor(ctx, userID)
	}
	family, err := s.familyRepo.GetByHeadID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, nil
	}
	return s.messageRepo.GetConversationsByFamily(ctx, family.ID)
}

// SendMessage appends a message to the conversation. The sender must be a
// participant; the other side is notified.
func (s *MessageService) SendMessage(ctx context.Context, message *models.Message, actorID int64, actorRole string) error {
	if message.Content == "" && len(message.Attachments) == 0 {
		return errors.New("message must have content or an attachment")
	}

	conversation, recipientID, _, err := s.resolveParticipants(ctx, message.ConversationID, actorID, actorRole)
	if err != nil {
		return err
	}

	message.SenderID = actorID
	if err := s.messageRepo.CreateMessage(ctx, message); err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  recipientID,
		Type:    "NEW_MESSAGE",
		Content: fmt.Sprintf("New message in conversation %d", conversation.ID),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		// The message itself is committed; a failed notification is not fatal.
		return nil
	}
	return nil
}

// GetMessages returns the conversation's messages and marks the other side's
// messages as read for the fetching participant. An admin reading a thread
// leaves the participants' unread state untouched.
func (s *MessageService) GetMessages(ctx context.Context, conversationID uint, actorID int64, actorRole string) ([]models.Message, error) {
	_, _, participant, err := s.resolveParticipants(ctx, conversationID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if participant {
		if err := s.messageRepo.MarkMessagesRead(ctx, conversationID, actorID); err != nil {
			return nil, err
		}
	}
	return s.messageRepo.GetMessages(ctx, conversationID)
}

// SearchMessages performs a keyword search within a conversation the actor
// participates in.
func (s *MessageService) SearchMessages(ctx context.Context, conversationID uint, keyword string, actorID int64, actorRole string) ([]models.Message, error) {
	if _, _, _, err := s.resolveParticipants(ctx, conversationID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.messageRepo.SearchMessages(ctx, conversationID, keyword)
}

func (s *MessageService) CountUnread(ctx context.Context, conversationID uint, actorID int64) (int64, error) {
	return s.messageRepo.CountUnread(ctx, conversationID, actorID)
}

// resolveParticipants loads the conversation, verifies that the actor may
// access it, and returns the other participant's user ID. The boolean reports
// whether the actor is one of the two participants; admins may read a thread
// without being one.
func (s *MessageService) resolveParticipants(ctx context.Context, conversationID uint, actorID int64, actorRole string) (*models.Conversation, int64, bool, error) {
	conversation, err := s.messageRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, 0, false, err
	}
	if conversation == nil {
		return nil, 0, false, ErrNotFound
	}

	family, err := s.familyRepo.GetByID(ctx, conversation.FamilyID)
	if err != nil {
		return nil, 0, false, err
	}
	if family == nil {
		return nil, 0, false, fmt.Errorf("%w: family %d", ErrNotFound, conversation.FamilyID)
	}

	switch actorID {
	case conversation.DoctorID:
		return conversation, family.HeadID, true, nil
	case family.HeadID:
		return conversation, conversation.DoctorID, true, nil
	}
	if actorRole == models.RoleAdmin {
		return conversation, family.HeadID, false, nil
	}
	return nil, 0, false, ErrForbidden
}
