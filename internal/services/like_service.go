package services

import (
	"errors"
	"log"
	"time"

	"github.com/circlio/backend/internal/messaging"
	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

// LikeService flips like state on profile uploads and keeps the cached
// like_count consistent with the association rows
type LikeService struct {
	uploadRepo repositories.UploadRepository
	userRepo   repositories.UserRepository
	publisher  messaging.Publisher
}

// NewLikeService creates a new LikeService. publisher may be nil, in which
// case like notifications are skipped.
func NewLikeService(uploadRepo repositories.UploadRepository, userRepo repositories.UserRepository, publisher messaging.Publisher) *LikeService {
	return &LikeService{
		uploadRepo: uploadRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// Toggle likes the upload if the caller has not liked it, unlikes otherwise.
// On a fresh like of someone else's upload a notification event is enqueued;
// enqueue failures are logged and swallowed, they never fail the like itself.
func (s *LikeService) Toggle(userID, uploadID uint) (*models.ToggleLikeResult, error) {
	upload, err := s.uploadRepo.GetUploadByID(uploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}

	liked, err := s.uploadRepo.ToggleLike(uploadID, userID)
	if err != nil {
		return nil, err
	}

	// Re-read for the post-toggle counter value
	upload, err = s.uploadRepo.GetUploadByID(uploadID)
	if err != nil {
		return nil, err
	}

	if liked && upload.UserID != userID {
		s.notifyLiked(userID, upload)
	}

	return &models.ToggleLikeResult{Liked: liked, LikeCount: upload.LikeCount}, nil
}

// Status reports whether the caller currently likes the upload, with the counter
func (s *LikeService) Status(userID, uploadID uint) (bool, int64, error) {
	upload, err := s.uploadRepo.GetUploadByID(uploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrUploadNotFound
		}
		return false, 0, err
	}

	liked, err := s.uploadRepo.HasUserLiked(uploadID, userID)
	if err != nil {
		return false, 0, err
	}
	return liked, upload.LikeCount, nil
}

func (s *LikeService) notifyLiked(actorID uint, upload *models.ProfileUpload) {
	if s.publisher == nil {
		return
	}

	actorName := ""
	if actor, err := s.userRepo.GetUserByID(actorID); err == nil {
		actorName = actor.Name
	}

	event := messaging.UploadLikedEvent{
		DispatchID:  uuid.NewString(),
		ActorID:     actorID,
		RecipientID: upload.UserID,
		UploadID:    upload.ID,
		ActorName:   actorName,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.PublishUploadLiked(event); err != nil {
		log.Printf("Failed to enqueue like notification for upload %d: %v", upload.ID, err)
	}
}
