package services

import (
	"sync"
	"testing"

	"github.com/circlio/backend/internal/messaging"
	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// capturePublisher records published events instead of sending them anywhere
type capturePublisher struct {
	mu            sync.Mutex
	likeEvents    []messaging.UploadLikedEvent
	messageEvents []messaging.MessageSentEvent
	failNext      bool
}

func (p *capturePublisher) PublishUploadLiked(event messaging.UploadLikedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext {
		p.failNext = false
		return assert.AnError
	}
	p.likeEvents = append(p.likeEvents, event)
	return nil
}

func (p *capturePublisher) PublishMessageSent(event messaging.MessageSentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messageEvents = append(p.messageEvents, event)
	return nil
}

func newLikeFixture(t *testing.T) (*gorm.DB, *LikeService, *capturePublisher) {
	db := testutil.NewTestDB(t)
	publisher := &capturePublisher{}
	service := NewLikeService(
		repositories.NewPostgresUploadRepository(db),
		repositories.NewPostgresUserRepository(db),
		publisher,
	)
	return db, service, publisher
}

func createUpload(t *testing.T, db *gorm.DB, ownerID uint) *models.ProfileUpload {
	t.Helper()
	upload := &models.ProfileUpload{UserID: ownerID, ImageURL: "https://cdn.example.com/a.jpg"}
	require.NoError(t, db.Create(upload).Error)
	return upload
}

func TestToggleLikeThenUnlike(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	upload := createUpload(t, db, owner.ID)

	result, err := service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)

	// Second toggle returns to the original state
	result, err = service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)

	var rows int64
	require.NoError(t, db.Model(&models.ProfileUploadLike{}).Where("upload_id = ?", upload.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestToggleCounterMatchesAssociationRows(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	upload := createUpload(t, db, owner.ID)

	const n = 7
	for i := 0; i < n; i++ {
		liker := testutil.CreateUser(t, db, string(rune('a'+i)))
		result, err := service.Toggle(liker.ID, upload.ID)
		require.NoError(t, err)
		assert.True(t, result.Liked)
	}

	var reloaded models.ProfileUpload
	require.NoError(t, db.First(&reloaded, upload.ID).Error)
	assert.Equal(t, int64(n), reloaded.LikeCount)

	var rows int64
	require.NoError(t, db.Model(&models.ProfileUploadLike{}).Where("upload_id = ?", upload.ID).Count(&rows).Error)
	assert.Equal(t, int64(n), rows)
}

func TestConcurrentDistinctLikersLoseNoUpdates(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	upload := createUpload(t, db, owner.ID)

	const n = 8
	likers := make([]*models.User, n)
	for i := 0; i < n; i++ {
		likers[i] = testutil.CreateUser(t, db, string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			result, err := service.Toggle(userID, upload.ID)
			if err != nil {
				errs <- err
				return
			}
			if !result.Liked {
				errs <- assert.AnError
			}
		}(likers[i].ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var reloaded models.ProfileUpload
	require.NoError(t, db.First(&reloaded, upload.ID).Error)
	assert.Equal(t, int64(n), reloaded.LikeCount)

	var rows int64
	require.NoError(t, db.Model(&models.ProfileUploadLike{}).Where("upload_id = ?", upload.ID).Count(&rows).Error)
	assert.Equal(t, int64(n), rows)
}

func TestToggleUploadNotFound(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	liker := testutil.CreateUser(t, db, "liker")

	_, err := service.Toggle(liker.ID, 9999)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestToggleSoftDeletedUploadNotFound(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	upload := createUpload(t, db, owner.ID)

	require.NoError(t, db.Delete(&models.ProfileUpload{}, upload.ID).Error)

	_, err := service.Toggle(liker.ID, upload.ID)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestToggleNotifiesUploadOwner(t *testing.T) {
	db, service, publisher := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	upload := createUpload(t, db, owner.ID)

	_, err := service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)

	require.Len(t, publisher.likeEvents, 1)
	event := publisher.likeEvents[0]
	assert.Equal(t, liker.ID, event.ActorID)
	assert.Equal(t, owner.ID, event.RecipientID)
	assert.Equal(t, upload.ID, event.UploadID)
	assert.NotEmpty(t, event.DispatchID)

	// Unliking must not notify
	_, err = service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.Len(t, publisher.likeEvents, 1)
}

func TestToggleSelfLikeDoesNotNotify(t *testing.T) {
	db, service, publisher := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	upload := createUpload(t, db, owner.ID)

	_, err := service.Toggle(owner.ID, upload.ID)
	require.NoError(t, err)
	assert.Empty(t, publisher.likeEvents)
}

func TestTogglePublishFailureDoesNotFailLike(t *testing.T) {
	db, service, publisher := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	upload := createUpload(t, db, owner.ID)

	publisher.failNext = true
	result, err := service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)
}

func TestStatus(t *testing.T) {
	db, service, _ := newLikeFixture(t)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	upload := createUpload(t, db, owner.ID)

	liked, count, err := service.Status(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	_, err = service.Toggle(liker.ID, upload.ID)
	require.NoError(t, err)

	liked, count, err = service.Status(liker.ID, upload.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}
