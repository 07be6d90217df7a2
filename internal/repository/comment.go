package repository

import (
	"context"
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// GetByPostAndID resolves a comment scoped to its post; an ID belonging
	// to another post is not found.
	GetByPostAndID(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db   *gorm.DB
	rlog *observability.RepoLogger
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, rlog: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		r.rlog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "create", comment.ID)
	return nil
}

func (r *commentRepository) GetByPostAndID(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	defer observability.TrackQuery("get", "comments")()
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("comment", commentID)
		}
		r.rlog.LogError(ctx, err, "get")
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("update", "comments")()
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		r.rlog.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "update", comment.ID)
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "comments")()
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		r.rlog.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "delete", id)
	return nil
}

// ListByPost returns comments oldest first, the order they appear under a
// post.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	defer observability.TrackQuery("list_by_post", "comments")()
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		r.rlog.LogError(ctx, err, "list_by_post")
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
