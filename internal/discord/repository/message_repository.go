package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	discorddomain "lifelog-backend/internal/discord/domain"
)

// messageNonKeyColumns are the columns an upsert may rewrite. The natural
// key columns are deliberately absent.
var messageNonKeyColumns = []string{
	"guild_id", "author_id", "author_username", "content",
	"attachments", "posted_at", "fetched_at", "updated_at",
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Upsert inserts the message or, when (user_id, channel_id, message_id)
// already exists, replaces its non-key fields.
func (r *messageRepository) Upsert(msg *discorddomain.Message) error {
	now := time.Now()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "channel_id"}, {Name: "message_id"},
		},
		DoUpdates: clause.AssignmentColumns(messageNonKeyColumns),
	}).Create(msg).Error
}

func (r *messageRepository) FindByKey(userID, channelID, messageID string) (*discorddomain.Message, error) {
	var msg discorddomain.Message
	err := r.db.Where("user_id = ? AND channel_id = ? AND message_id = ?", userID, channelID, messageID).First(&msg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListByUser(userID string, limit, offset int) ([]discorddomain.Message, int64, error) {
	var total int64
	if err := r.db.Model(&discorddomain.Message{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []discorddomain.Message
	err := r.db.Where("user_id = ?", userID).
		Order("posted_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
