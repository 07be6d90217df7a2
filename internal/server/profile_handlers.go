package server

import (
	"errors"

	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Profile renders a user's page with everything they authored, drafts and
// scheduled posts included. Visibility is enforced on the detail view,
// not here.
func (s *Server) Profile(c *fiber.Ctx) error {
	owner, page, err := s.postService.ProfileFeed(c.UserContext(), c.Params("username"), c.Query("page"))
	if err != nil {
		return err
	}
	observability.PageRenders.WithLabelValues("profile").Inc()
	return s.render(c, "blog/profile", fiber.Map{
		"Owner": owner,
		"Page":  page,
	})
}

// EditProfilePage renders the profile form pre-filled with the signed-in
// user's data. The target account always comes from the session.
func (s *Server) EditProfilePage(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	form := forms.ProfileForm{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	return s.render(c, "blog/profile_form", fiber.Map{
		"Form": form,
	})
}

// EditProfile applies the form to the signed-in user's own account and
// redirects to the updated profile page.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	var form forms.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderProfileForm(c, form, map[string]string{"__all__": "malformed form submission"})
	}
	if err := form.Validate(); err != nil {
		return s.renderProfileForm(c, form, forms.FieldErrors(err))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		var appErr *models.AppError
		if models.IsDuplicate(err) && errors.As(err, &appErr) {
			return s.renderProfileForm(c, form, map[string]string{appErr.Field: appErr.Message})
		}
		return err
	}
	return redirectToProfile(c, user.Username)
}

func (s *Server) renderProfileForm(c *fiber.Ctx, form forms.ProfileForm, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).Render("blog/profile_form", s.withCommon(c, fiber.Map{
		"Form":   form,
		"Errors": errs,
	}))
}
