package service

import (
	"context"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

// CommentService implements comment creation and the owner-gated comment
// mutations.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isStaff     func(ctx context.Context, userID uint) (bool, error)
}

type EditCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

// NewCommentService constructs a CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isStaff:     isStaff,
	}
}

// AddComment attaches a comment to an existing post. The post's
// visibility is not checked here: the detail view is where visibility is
// enforced, and hidden posts stay reachable through their author's
// profile feed.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment resolves a comment within its post for the edit/delete
// confirmation views.
func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.commentRepo.GetByPostAndID(ctx, postID, commentID)
}

// EditComment rewrites a comment's text. Only the author may edit; staff
// rights do not extend to editing.
func (s *CommentService) EditComment(ctx context.Context, in EditCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByPostAndID(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if !comment.OwnedBy(in.UserID) {
		return nil, models.NewForbiddenError("only the author can edit this comment")
	}
	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. The author may always delete; staff
// may delete anyone's comment.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByPostAndID(ctx, in.PostID, in.CommentID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(in.UserID) {
		staff, err := s.isStaff(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("only the author or staff can delete this comment")
		}
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}
