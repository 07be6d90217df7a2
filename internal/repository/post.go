// Package repository provides data access layer implementations for the
// application.
package repository

import (
	"context"
	"errors"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/observability"

	"gorm.io/gorm"
)

// commentCountSelect annotates each post row with its comment count.
const commentCountSelect = "posts.*, (SELECT count(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository defines the interface for post data operations.
//
// The ListVisible/CountVisible pair applies the public visibility filter
// (published, category published or absent, publication date not in the
// future). ListByAuthor intentionally applies no visibility filter: the
// profile feed shows every post the user authored.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id uint) error

	ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, error)
	CountVisible(ctx context.Context, now time.Time) (int64, error)
	ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, error)
	CountByCategory(ctx context.Context, categoryID uint, now time.Time) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db   *gorm.DB
	rlog *observability.RepoLogger
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, rlog: observability.NewRepoLogger("posts")}
}

// visibleScope narrows a posts query to publicly visible rows.
func visibleScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR posts.category_id IN (SELECT id FROM categories WHERE is_published = ?)", true)
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.rlog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "create", post.ID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		r.rlog.LogError(ctx, err, "get")
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		r.rlog.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "update", post.ID)
	return nil
}

// Delete removes the post and its comments in one transaction. The cascade
// is performed here so it holds on every backing store, not just ones that
// enforce the FK constraint.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		r.rlog.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "delete", id)
	return nil
}

func (r *postRepository) listPage(ctx context.Context, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(scope).
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		r.rlog.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) count(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(scope).Count(&n).Error
	if err != nil {
		r.rlog.LogError(ctx, err, "count")
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *postRepository) ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list_visible", "posts")()
	return r.listPage(ctx, visibleScope(now), limit, offset)
}

func (r *postRepository) CountVisible(ctx context.Context, now time.Time) (int64, error) {
	defer observability.TrackQuery("count_visible", "posts")()
	return r.count(ctx, visibleScope(now))
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list_by_category", "posts")()
	scope := func(db *gorm.DB) *gorm.DB {
		return visibleScope(now)(db).Where("posts.category_id = ?", categoryID)
	}
	return r.listPage(ctx, scope, limit, offset)
}

func (r *postRepository) CountByCategory(ctx context.Context, categoryID uint, now time.Time) (int64, error) {
	defer observability.TrackQuery("count_by_category", "posts")()
	scope := func(db *gorm.DB) *gorm.DB {
		return visibleScope(now)(db).Where("posts.category_id = ?", categoryID)
	}
	return r.count(ctx, scope)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list_by_author", "posts")()
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ?", authorID)
	}
	return r.listPage(ctx, scope, limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	defer observability.TrackQuery("count_by_author", "posts")()
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ?", authorID)
	}
	return r.count(ctx, scope)
}
