package repository

import (
	"context"
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/observability"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// GetPublishedBySlug only resolves published categories; hidden ones
	// behave as if they do not exist.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListPublished(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

// LocationRepository defines the interface for location data operations.
type LocationRepository interface {
	List(ctx context.Context) ([]*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
}

type categoryRepository struct {
	db   *gorm.DB
	rlog *observability.RepoLogger
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db, rlog: observability.NewRepoLogger("categories")}
}

func (r *categoryRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	defer observability.TrackQuery("get_by_slug", "categories")()
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("category", slug)
		}
		r.rlog.LogError(ctx, err, "get_by_slug")
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) ListPublished(ctx context.Context) ([]*models.Category, error) {
	defer observability.TrackQuery("list_published", "categories")()
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("title ASC").
		Find(&categories).Error
	if err != nil {
		r.rlog.LogError(ctx, err, "list_published")
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer observability.TrackQuery("create", "categories")()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		r.rlog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "create", category.ID)
	return nil
}

type locationRepository struct {
	db   *gorm.DB
	rlog *observability.RepoLogger
}

// NewLocationRepository creates a new location repository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db, rlog: observability.NewRepoLogger("locations")}
}

func (r *locationRepository) List(ctx context.Context) ([]*models.Location, error) {
	defer observability.TrackQuery("list", "locations")()
	var locations []*models.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	if err != nil {
		r.rlog.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	defer observability.TrackQuery("create", "locations")()
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		r.rlog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "create", location.ID)
	return nil
}
