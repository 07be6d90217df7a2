package server

import (
	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment attaches a comment to the post and returns to its detail
// page. An invalid submission also returns there, with nothing persisted.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil || form.Validate() != nil {
		return redirectToPost(c, postID)
	}

	_, err = s.commentService.AddComment(c.UserContext(), postID, currentUserID(c), form.Text)
	if err != nil {
		return err
	}
	return redirectToPost(c, postID)
}

// EditCommentPage renders the pre-filled comment form for its author.
// Anyone else lands on the post detail page.
func (s *Server) EditCommentPage(c *fiber.Ctx) error {
	postID, commentID, err := parseCommentIDs(c)
	if err != nil {
		return err
	}
	comment, err := s.commentService.GetComment(c.UserContext(), postID, commentID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(currentUserID(c)) {
		return redirectToPost(c, postID)
	}
	return s.render(c, "blog/comment_form", fiber.Map{
		"Comment": comment,
		"Form":    forms.CommentForm{Text: comment.Text},
	})
}

// EditComment rewrites the comment text for its author and returns to the
// post detail page. Ownership is checked before validation so a non-owner
// gets the silent redirect, never form feedback.
func (s *Server) EditComment(c *fiber.Ctx) error {
	postID, commentID, err := parseCommentIDs(c)
	if err != nil {
		return err
	}
	comment, err := s.commentService.GetComment(c.UserContext(), postID, commentID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(currentUserID(c)) {
		return redirectToPost(c, postID)
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return redirectToPost(c, postID)
	}
	if verr := form.Validate(); verr != nil {
		return c.Status(fiber.StatusBadRequest).Render("blog/comment_form", s.withCommon(c, fiber.Map{
			"Comment": comment,
			"Form":    form,
			"Errors":  forms.FieldErrors(verr),
		}))
	}

	_, err = s.commentService.EditComment(c.UserContext(), service.EditCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
		Text:      form.Text,
	})
	if models.IsForbidden(err) {
		return redirectToPost(c, postID)
	}
	if err != nil {
		return err
	}
	return redirectToPost(c, postID)
}

// DeleteCommentPage renders the delete confirmation.
func (s *Server) DeleteCommentPage(c *fiber.Ctx) error {
	postID, commentID, err := parseCommentIDs(c)
	if err != nil {
		return err
	}
	comment, err := s.commentService.GetComment(c.UserContext(), postID, commentID)
	if err != nil {
		return err
	}
	return s.render(c, "blog/comment_confirm_delete", fiber.Map{
		"Comment": comment,
	})
}

// DeleteComment removes the comment (owner or staff) and returns to the
// post detail page. Anyone else is bounced there with nothing removed.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, commentID, err := parseCommentIDs(c)
	if err != nil {
		return err
	}
	err = s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
	})
	if models.IsForbidden(err) {
		return redirectToPost(c, postID)
	}
	if err != nil {
		return err
	}
	return redirectToPost(c, postID)
}

func parseCommentIDs(c *fiber.Ctx) (postID, commentID uint, err error) {
	postID, err = parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	commentID, err = parseID(c, "commentId")
	if err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}
