package server

import (
	"io"

	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index renders the home feed: visible posts, newest first, paginated.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.postService.Feed(c.UserContext(), c.Query("page"))
	if err != nil {
		return err
	}
	observability.PageRenders.WithLabelValues("index").Inc()
	return s.render(c, "blog/index", fiber.Map{
		"Page": page,
	})
}

// CategoryPosts renders the visible posts of one published category.
func (s *Server) CategoryPosts(c *fiber.Ctx) error {
	category, page, err := s.postService.CategoryFeed(c.UserContext(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return err
	}
	observability.PageRenders.WithLabelValues("category").Inc()
	return s.render(c, "blog/category", fiber.Map{
		"Category": category,
		"Page":     page,
	})
}

// PostDetail renders a post with its comments and the comment form.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, comments, err := s.postService.GetPost(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return err
	}
	observability.PageRenders.WithLabelValues("detail").Inc()
	return s.render(c, "blog/detail", fiber.Map{
		"Post":     post,
		"Comments": comments,
	})
}

// CreatePostPage renders the empty post form.
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return s.renderPostForm(c, forms.PostForm{IsPublished: true}, nil, "/posts/create/")
}

// CreatePost validates the submitted form and persists a new post owned
// by the signed-in user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	form, imageURL, errs := s.parsePostForm(c)
	if len(errs) > 0 {
		return s.renderPostForm(c, form, errs, "/posts/create/")
	}

	userID := currentUserID(c)
	_, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:    userID,
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDateTime(),
		CategoryID:  optionalID(form.CategoryID),
		LocationID:  optionalID(form.LocationID),
		IsPublished: form.IsPublished,
		ImageURL:    imageURL,
	})
	if err != nil {
		return err
	}

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return redirectToProfile(c, user.Username)
}

// EditPostPage renders the pre-filled edit form. A visitor who is not the
// author is sent to the detail page instead of an error.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPostAny(c.UserContext(), postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(currentUserID(c)) {
		return redirectToPost(c, postID)
	}
	form := forms.PostForm{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate.Format("2006-01-02T15:04"),
		IsPublished: post.IsPublished,
	}
	if post.CategoryID != nil {
		form.CategoryID = *post.CategoryID
	}
	if post.LocationID != nil {
		form.LocationID = *post.LocationID
	}
	return s.renderPostForm(c, form, nil, c.Path())
}

// EditPost applies the submitted form to the post. Non-owners are
// redirected to the detail page with nothing changed. The ownership check
// comes before validation so a non-owner never sees form feedback and
// never gets an upload written on their behalf.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPostAny(c.UserContext(), postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(currentUserID(c)) {
		return redirectToPost(c, postID)
	}
	form, imageURL, errs := s.parsePostForm(c)
	if len(errs) > 0 {
		return s.renderPostForm(c, form, errs, c.Path())
	}

	_, err = s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		PostID:      postID,
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDateTime(),
		CategoryID:  optionalID(form.CategoryID),
		LocationID:  optionalID(form.LocationID),
		IsPublished: form.IsPublished,
		ImageURL:    imageURL,
	})
	if models.IsForbidden(err) {
		return redirectToPost(c, postID)
	}
	if err != nil {
		return err
	}
	return redirectToPost(c, postID)
}

// DeletePostPage renders the delete confirmation. The ownership check
// happens on submit; the confirmation itself is not gated.
func (s *Server) DeletePostPage(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPostAny(c.UserContext(), postID)
	if err != nil {
		return err
	}
	return s.render(c, "blog/post_confirm_delete", fiber.Map{
		"Post": post,
	})
}

// DeletePost removes the post (owner or staff) and redirects to the home
// feed. Anyone else is bounced to the detail page.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	err = s.postService.DeletePost(c.UserContext(), currentUserID(c), postID)
	if models.IsForbidden(err) {
		return redirectToPost(c, postID)
	}
	if err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// parsePostForm reads the post form fields and the optional image upload.
// Validation failures come back in the error map keyed by field.
func (s *Server) parsePostForm(c *fiber.Ctx) (forms.PostForm, string, map[string]string) {
	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return form, "", map[string]string{"__all__": "malformed form submission"}
	}
	if err := form.Validate(); err != nil {
		return form, "", forms.FieldErrors(err)
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return form, "", map[string]string{"Image": "could not read upload"}
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return form, "", map[string]string{"Image": "could not read upload"}
		}
		imageURL, err = s.imageService.Save(content)
		if err != nil {
			return form, "", map[string]string{"Image": err.Error()}
		}
	}
	return form, imageURL, nil
}

// renderPostForm renders the create/edit form with the category and
// location choices loaded.
func (s *Server) renderPostForm(c *fiber.Ctx, form forms.PostForm, errs map[string]string, action string) error {
	categories, err := s.postService.Categories(c.UserContext())
	if err != nil {
		return err
	}
	locations, err := s.postService.Locations(c.UserContext())
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if len(errs) > 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).Render("blog/post_form", s.withCommon(c, fiber.Map{
		"Form":       form,
		"Errors":     errs,
		"Action":     action,
		"Categories": categories,
		"Locations":  locations,
	}))
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
