package server

import "github.com/gofiber/fiber/v2"

// AboutPage renders the static about page.
func (s *Server) AboutPage(c *fiber.Ctx) error {
	return s.render(c, "pages/about", fiber.Map{})
}

// RulesPage renders the static rules page.
func (s *Server) RulesPage(c *fiber.Ctx) error {
	return s.render(c, "pages/rules", fiber.Map{})
}
