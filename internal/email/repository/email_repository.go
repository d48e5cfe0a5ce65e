package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	emaildomain "lifelog-backend/internal/email/domain"
)

var emailNonKeyColumns = []string{
	"thread_id", "subject", "from", "to", "cc", "snippet",
	"body_text", "body_html", "labels", "date", "fetched_at", "updated_at",
}

type emailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// Upsert inserts the email or, when (user_id, gmail_id) already exists,
// replaces its non-key fields.
func (r *emailRepository) Upsert(email *emaildomain.Email) error {
	now := time.Now()
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	email.CreatedAt = now
	email.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "gmail_id"},
		},
		DoUpdates: clause.AssignmentColumns(emailNonKeyColumns),
	}).Create(email).Error
}

func (r *emailRepository) FindByKey(userID, gmailID string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("user_id = ? AND gmail_id = ?", userID, gmailID).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) ListByUser(userID string, limit, offset int) ([]emaildomain.Email, int64, error) {
	var total int64
	if err := r.db.Model(&emaildomain.Email{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emails []emaildomain.Email
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&emails).Error
	if err != nil {
		return nil, 0, err
	}
	return emails, total, nil
}
