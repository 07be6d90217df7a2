package service

import (
	"context"
	"time"

	"blogicum/internal/models"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	listVisibleFn    func(context.Context, time.Time, int, int) ([]*models.Post, error)
	countVisibleFn   func(context.Context, time.Time) (int64, error)
	listByCategoryFn func(context.Context, uint, time.Time, int, int) ([]*models.Post, error)
	countByCatFn     func(context.Context, uint, time.Time) (int64, error)
	listByAuthorFn   func(context.Context, uint, int, int) ([]*models.Post, error)
	countByAuthorFn  func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, error) {
	return s.listVisibleFn(ctx, now, limit, offset)
}
func (s *postRepoStub) CountVisible(ctx context.Context, now time.Time) (int64, error) {
	return s.countVisibleFn(ctx, now)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, error) {
	return s.listByCategoryFn(ctx, categoryID, now, limit, offset)
}
func (s *postRepoStub) CountByCategory(ctx context.Context, categoryID uint, now time.Time) (int64, error) {
	return s.countByCatFn(ctx, categoryID, now)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listVisibleFn: func(_ context.Context, _ time.Time, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countVisibleFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		listByCategoryFn: func(_ context.Context, _ uint, _ time.Time, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countByCatFn:   func(_ context.Context, _ uint, _ time.Time) (int64, error) { return 0, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countByAuthorFn: func(_ context.Context, _ uint) (int64, error) {
			return 0, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getFn        func(context.Context, uint, uint) (*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByPostAndID(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.getFn(ctx, postID, commentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getFn: func(_ context.Context, _, _ uint) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	getBySlugFn func(context.Context, string) (*models.Category, error)
	listFn      func(context.Context) ([]*models.Category, error)
	createFn    func(context.Context, *models.Category) error
}

func (s *categoryRepoStub) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) ListPublished(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{Slug: slug, IsPublished: true}, nil
		},
		listFn:   func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
	}
}

// locationRepoStub is a stub for repository.LocationRepository.
type locationRepoStub struct {
	listFn   func(context.Context) ([]*models.Location, error)
	createFn func(context.Context, *models.Location) error
}

func (s *locationRepoStub) List(ctx context.Context) ([]*models.Location, error) {
	return s.listFn(ctx)
}
func (s *locationRepoStub) Create(ctx context.Context, location *models.Location) error {
	return s.createFn(ctx, location)
}

func noopLocationRepo() *locationRepoStub {
	return &locationRepoStub{
		listFn:   func(_ context.Context) ([]*models.Location, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.Location) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

func neverStaff(_ context.Context, _ uint) (bool, error) { return false, nil }
func alwaysStaff(_ context.Context, _ uint) (bool, error) { return true, nil }
