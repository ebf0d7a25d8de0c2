package repositories

import (
	"errors"

	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// UploadRepository defines the interface for profile upload and like data operations
type UploadRepository interface {
	CreateUpload(upload *models.ProfileUpload) error
	GetUploadByID(id uint) (*models.ProfileUpload, error)
	ToggleLike(uploadID, userID uint) (bool, error)
	HasUserLiked(uploadID, userID uint) (bool, error)
	ListLikers(uploadID uint, page, limit int) ([]models.ProfileUploadLike, int64, error)
	ListLikedByUser(userID uint, page, limit int) ([]models.ProfileUpload, int64, error)
}

// PostgresUploadRepository implements UploadRepository for PostgreSQL
type PostgresUploadRepository struct {
	db *gorm.DB
}

// NewPostgresUploadRepository creates a new PostgresUploadRepository
func NewPostgresUploadRepository(db *gorm.DB) *PostgresUploadRepository {
	return &PostgresUploadRepository{db: db}
}

// CreateUpload creates a new profile upload
func (r *PostgresUploadRepository) CreateUpload(upload *models.ProfileUpload) error {
	return r.db.Create(upload).Error
}

// GetUploadByID retrieves an upload by ID; soft-deleted uploads are not found
func (r *PostgresUploadRepository) GetUploadByID(id uint) (*models.ProfileUpload, error) {
	var upload models.ProfileUpload
	if err := r.db.Preload("User").First(&upload, id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// ToggleLike flips the like state of (uploadID, userID) and keeps the cached
// like_count in step with the association rows. Row mutation and counter
// mutation run in one transaction so neither can land without the other. A
// concurrent toggle losing the insert race hits the (upload_id, user_id)
// unique index; that is reported as liked=true, not as a failure, since the
// winning insert already incremented the counter.
func (r *PostgresUploadRepository) ToggleLike(uploadID, userID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProfileUploadLike
		err := tx.Where("upload_id = ? AND user_id = ?", uploadID, userID).First(&existing).Error

		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.ProfileUpload{}).Where("id = ?", uploadID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.ProfileUploadLike{UploadID: uploadID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked = true
				return nil
			}
			return err
		}
		if err := tx.Model(&models.ProfileUpload{}).Where("id = ?", uploadID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// HasUserLiked checks if a user currently likes an upload
func (r *PostgresUploadRepository) HasUserLiked(uploadID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProfileUploadLike{}).
		Where("upload_id = ? AND user_id = ?", uploadID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListLikers retrieves the like rows for an upload with their users, newest first, paginated
func (r *PostgresUploadRepository) ListLikers(uploadID uint, page, limit int) ([]models.ProfileUploadLike, int64, error) {
	var likes []models.ProfileUploadLike
	var total int64

	if err := r.db.Model(&models.ProfileUploadLike{}).Where("upload_id = ?", uploadID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("upload_id = ?", uploadID).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&likes).Error

	return likes, total, err
}

// ListLikedByUser retrieves the uploads a user has liked, most recently liked first, paginated
func (r *PostgresUploadRepository) ListLikedByUser(userID uint, page, limit int) ([]models.ProfileUpload, int64, error) {
	var uploads []models.ProfileUpload
	var total int64

	base := r.db.Model(&models.ProfileUpload{}).
		Joins("JOIN profile_upload_likes pul ON pul.upload_id = profile_uploads.id AND pul.user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.
		Joins("JOIN profile_upload_likes pul ON pul.upload_id = profile_uploads.id AND pul.user_id = ?", userID).
		Preload("User").
		Order("pul.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&uploads).Error

	return uploads, total, err
}
