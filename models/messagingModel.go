package models

import (
	"time"
)

// Conversation is a doctor-family chat thread
type Conversation struct {
	ID            uint       `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID      int64      `gorm:"not null;index;column:doctor_id;uniqueIndex:idx_doctor_family" json:"doctor_id"`
	FamilyID      uint       `gorm:"not null;index;column:family_id;uniqueIndex:idx_doctor_family" json:"family_id"`
	LastMessageAt *time.Time `gorm:"column:last_message_at" json:"last_message_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Doctor        User       `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Family        Family     `gorm:"foreignKey:FamilyID;references:ID" json:"-"`
	Messages      []Message  `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "conversation"
}

// Message is a chat message. IsRead implies ReadAt is set.
type Message struct {
	ID             uint                `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	ConversationID uint                `gorm:"not null;index;column:conversation_id" json:"conversation_id"`
	SenderID       int64               `gorm:"not null;index;column:sender_id" json:"sender_id"`
	Content        string              `gorm:"type:text;not null;column:content" json:"content"`
	IsRead         bool                `gorm:"not null;default:false;column:is_read" json:"is_read"`
	ReadAt         *time.Time          `gorm:"column:read_at" json:"read_at"`
	CreatedAt      time.Time           `gorm:"autoCreateTime;column:created_at;index" json:"created_at"`
	Conversation   Conversation        `gorm:"foreignKey:ConversationID;references:ID" json:"-"`
	Sender         User                `gorm:"foreignKey:SenderID;references:ID" json:"-"`
	Attachments    []MessageAttachment `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

func (Message) TableName() string {
	return "message"
}

// MessageAttachment is a file attached to a message. The file itself lives in
// external storage; only the hosted URL and metadata are kept here.
type MessageAttachment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	MessageID  uint      `gorm:"not null;index;column:message_id" json:"message_id"`
	FileName   string    `gorm:"size:255;not null;column:file_name" json:"file_name"`
	FileType   string    `gorm:"size:100;column:file_type" json:"file_type"`
	FileSize   int64     `gorm:"column:file_size" json:"file_size"`
	URL        string    `gorm:"size:512;not null;column:url" json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime;column:uploaded_at" json:"uploaded_at"`
	Message    Message   `gorm:"foreignKey:MessageID;references:ID" json:"-"`
}

func (MessageAttachment) TableName() string {
	return "message_attachment"
}

// Notification is an in-app notification for a user
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	UserID    int64     `gorm:"not null;index;column:user_id" json:"user_id"`
	Type      string    `gorm:"size:50;not null;column:type" json:"type"`
	Content   string    `gorm:"type:text;column:content" json:"content"`
	IsRead    bool      `gorm:"not null;default:false;column:is_read" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at;index" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Notification) TableName() string {
	return "notification"
}
