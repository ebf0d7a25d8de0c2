package repositories

import (
	"testing"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, n models.Notification) models.Notification {
	t.Helper()
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestListAndMarkReadFlagsEveryUnreadRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	for i := 0; i < 15; i++ {
		seedNotification(t, db, models.Notification{
			Type:        models.NotificationTypeLike,
			RecipientID: 1,
			DispatchID:  string(rune('a' + i)),
		})
	}

	notifications, total, err := repo.ListAndMarkRead(1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, notifications, 10)

	// Every row is flagged read, not just the returned page
	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", 1, false).Count(&unread).Error)
	assert.Equal(t, int64(0), unread)
}

func TestListAndMarkReadSkipsDeletedRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "kept"})
	deleted := seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "gone", IsDeleted: true})

	notifications, total, err := repo.ListAndMarkRead(1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
	assert.Equal(t, "kept", notifications[0].DispatchID)

	// Read paths never touch the deletion flag
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, deleted.ID).Error)
	assert.True(t, reloaded.IsDeleted)
}

func TestUnreadCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "a"})
	seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "b", IsRead: true})
	seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "c", IsDeleted: true})
	seedNotification(t, db, models.Notification{RecipientID: 2, DispatchID: "d"})

	count, err := repo.GetUnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAllAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedNotification(t, db, models.Notification{RecipientID: 1, DispatchID: "a"})
	seedNotification(t, db, models.Notification{RecipientID: 2, DispatchID: "b"})

	require.NoError(t, repo.MarkAllAsRead(1))

	count, err := repo.GetUnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other recipients are untouched
	count, err = repo.GetUnreadCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateNotificationDedupesByDispatchID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	first := &models.Notification{RecipientID: 1, DispatchID: "evt-1", Message: "a liked your upload"}
	require.NoError(t, repo.CreateNotification(first))

	// A queue redelivery of the same event is dropped silently
	redelivered := &models.Notification{RecipientID: 1, DispatchID: "evt-1", Message: "a liked your upload"}
	require.NoError(t, repo.CreateNotification(redelivered))

	var total int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}
