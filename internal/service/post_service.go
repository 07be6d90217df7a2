package service

import (
	"context"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

// PostService implements the post listings, the detail view, and the
// owner-gated mutations.
type PostService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	pageSize     int
	isStaff      func(ctx context.Context, userID uint) (bool, error)
	now          func() time.Time
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	IsPublished bool
	ImageURL    string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	IsPublished bool
	ImageURL    string
}

// NewPostService constructs a PostService. isStaff resolves whether a user
// holds staff rights; it is injected so the service stays decoupled from
// the user storage.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	pageSize int,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		pageSize:     pageSize,
		isStaff:      isStaff,
		now:          time.Now,
	}
}

// Feed returns one page of the public home listing, newest first.
func (s *PostService) Feed(ctx context.Context, rawPage string) (*Page, error) {
	now := s.now()
	total, err := s.postRepo.CountVisible(ctx, now)
	if err != nil {
		return nil, err
	}
	number, pages := clampPage(rawPage, total, s.pageSize)
	posts, err := s.postRepo.ListVisible(ctx, now, s.pageSize, (number-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Posts: posts, Number: number, TotalPages: pages, TotalCount: total}, nil
}

// CategoryFeed returns the category plus one page of its visible posts.
// Unknown and unpublished slugs both come back as not found.
func (s *PostService) CategoryFeed(ctx context.Context, slug, rawPage string) (*models.Category, *Page, error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	total, err := s.postRepo.CountByCategory(ctx, category.ID, now)
	if err != nil {
		return nil, nil, err
	}
	number, pages := clampPage(rawPage, total, s.pageSize)
	posts, err := s.postRepo.ListByCategory(ctx, category.ID, now, s.pageSize, (number-1)*s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	return category, &Page{Posts: posts, Number: number, TotalPages: pages, TotalCount: total}, nil
}

// ProfileFeed returns the profile owner plus one page of everything they
// authored. Drafts and scheduled posts are listed for every visitor; the
// detail view is where visibility is enforced.
func (s *PostService) ProfileFeed(ctx context.Context, username, rawPage string) (*models.User, *Page, error) {
	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.postRepo.CountByAuthor(ctx, owner.ID)
	if err != nil {
		return nil, nil, err
	}
	number, pages := clampPage(rawPage, total, s.pageSize)
	posts, err := s.postRepo.ListByAuthor(ctx, owner.ID, s.pageSize, (number-1)*s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	return owner, &Page{Posts: posts, Number: number, TotalPages: pages, TotalCount: total}, nil
}

// GetPost returns the post with its comments for the detail view. Hidden
// posts are not found for anyone but their author.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, []*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if !post.ViewableBy(viewerID, s.now()) {
		return nil, nil, models.NewNotFoundError("post", postID)
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// GetPostAny fetches a post without the visibility gate. Edit and delete
// views resolve their target with it; ownership is checked at mutation
// time.
func (s *PostService) GetPostAny(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     in.PubDate,
		IsPublished: in.IsPublished,
		AuthorID:    in.AuthorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		ImageURL:    in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost rewrites a post's editable fields. Only the author may edit;
// staff rights do not extend to editing.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(in.UserID) {
		return nil, models.NewForbiddenError("only the author can edit this post")
	}
	post.Title = in.Title
	post.Text = in.Text
	post.PubDate = in.PubDate
	post.CategoryID = in.CategoryID
	post.LocationID = in.LocationID
	post.IsPublished = in.IsPublished
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post and its comments. The author may always
// delete; staff may delete anyone's post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(userID) {
		staff, err := s.isStaff(ctx, userID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("only the author or staff can delete this post")
		}
	}
	return s.postRepo.Delete(ctx, postID)
}

// Categories lists the published categories for the post form.
func (s *PostService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListPublished(ctx)
}

// Locations lists all locations for the post form.
func (s *PostService) Locations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.List(ctx)
}
