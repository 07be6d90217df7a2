package server

import (
	"errors"
	"time"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginPage renders the login form.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "registration/login", fiber.Map{
		"Form": forms.LoginForm{},
	})
}

// Login checks the credentials and opens a session cookie.
func (s *Server) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderLogin(c, form, map[string]string{"__all__": "malformed form submission"})
	}
	if err := form.Validate(); err != nil {
		return s.renderLogin(c, form, forms.FieldErrors(err))
	}

	user, err := s.userService.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			return s.renderLogin(c, form, map[string]string{"__all__": appErr.Message})
		}
		return err
	}

	token, err := middleware.IssueSession(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	s.setSessionCookie(c, token)
	return redirectToProfile(c, user.Username)
}

// Logout revokes the current session token and clears the cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	middleware.RevokeCurrentSession(c)
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

// RegistrationPage renders the sign-up form.
func (s *Server) RegistrationPage(c *fiber.Ctx) error {
	return s.render(c, "registration/registration_form", fiber.Map{
		"Form": forms.RegistrationForm{},
	})
}

// Register creates the account and sends the new user to the login page.
func (s *Server) Register(c *fiber.Ctx) error {
	var form forms.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderRegistration(c, form, map[string]string{"__all__": "malformed form submission"})
	}
	if err := form.Validate(); err != nil {
		return s.renderRegistration(c, form, forms.FieldErrors(err))
	}

	_, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password1,
	})
	if err != nil {
		var appErr *models.AppError
		if models.IsDuplicate(err) && errors.As(err, &appErr) {
			return s.renderRegistration(c, form, map[string]string{appErr.Field: appErr.Message})
		}
		return err
	}
	return c.Redirect("/auth/login/", fiber.StatusFound)
}

func (s *Server) renderLogin(c *fiber.Ctx, form forms.LoginForm, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).Render("registration/login", s.withCommon(c, fiber.Map{
		"Form":   form,
		"Errors": errs,
	}))
}

func (s *Server) renderRegistration(c *fiber.Ctx, form forms.RegistrationForm, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).Render("registration/registration_form", s.withCommon(c, fiber.Map{
		"Form":   form,
		"Errors": errs,
	}))
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(middleware.SessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.IsProduction(),
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.IsProduction(),
		Path:     "/",
	})
}
