package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// ContactRepository stores contact-form submissions.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a contact repository.
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact message.
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// MarkRelayed records when the message was forwarded to the owner.
func (r *ContactRepository) MarkRelayed(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("relayed_at", at).Error
}

// List returns contact messages, newest first.
func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]*models.ContactMessage, int64, error) {
	var messages []*models.ContactMessage
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
