package server

import (
	"fmt"

	"blogicum/internal/models"

	"github.com/gofiber/fiber/v2"
)

const csrfContextKey = "csrf_token"

// currentUserID returns the authenticated user's ID, or zero for an
// anonymous visitor.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// parseID extracts a route parameter by name as a positive uint. Malformed
// IDs answer with the 404 page, same as a missing record.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("resource", c.Params(param))
	}
	return uint(id), nil
}

// withCommon injects the bindings every template expects: the signed-in
// user (if any) and the CSRF token for forms.
func (s *Server) withCommon(c *fiber.Ctx, bind fiber.Map) fiber.Map {
	if bind == nil {
		bind = fiber.Map{}
	}
	if uid := currentUserID(c); uid != 0 {
		if user, err := s.userService.GetByID(c.UserContext(), uid); err == nil {
			bind["CurrentUser"] = user
		}
	}
	if token, ok := c.Locals(csrfContextKey).(string); ok {
		bind["CSRFToken"] = token
	}
	return bind
}

// render wraps c.Render with the common bindings applied.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	return c.Render(name, s.withCommon(c, bind))
}

// redirectToPost sends the browser to a post's detail page.
func redirectToPost(c *fiber.Ctx, postID uint) error {
	return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
}

// redirectToProfile sends the browser to a user's profile page.
func redirectToProfile(c *fiber.Ctx, username string) error {
	return c.Redirect("/profile/"+username+"/", fiber.StatusFound)
}
