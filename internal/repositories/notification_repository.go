package repositories

import (
	"errors"

	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	ListAndMarkRead(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateNotification inserts a notification. A duplicate dispatch id means the
// queue redelivered an event we already materialized, so it is not an error.
func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	err := r.db.Create(notification).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// ListAndMarkRead retrieves non-deleted notifications for the recipient,
// newest first, paginated, and flags every currently-unread row for that
// recipient as read in the same call. The mark is deliberately not scoped to
// the page being returned.
func (r *postgresNotificationRepository) ListAndMarkRead(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	q := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_deleted = ?", recipientID, false)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ? AND is_deleted = ?", recipientID, false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.MarkAllAsRead(recipientID); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// GetUnreadCount retrieves the number of unread, non-deleted notifications
func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND is_deleted = ?", recipientID, false, false).
		Count(&count).Error
	return count, err
}

// MarkAllAsRead flags every unread notification for the recipient as read.
// The deletion flag is never touched here.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
