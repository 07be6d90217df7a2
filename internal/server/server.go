// Package server contains the HTTP handlers and routing for the
// application's server-rendered pages.
package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"blogicum/internal/cache"
	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

//go:embed templates
var templatesFS embed.FS

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	categoryRepo   repository.CategoryRepository
	locationRepo   repository.LocationRepository
	postService    *service.PostService
	commentService *service.CommentService
	userService    *service.UserService
	imageService   *service.ImageService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and no Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	prom := middleware.InitMetrics("blogicum-web")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		categoryRepo:   categoryRepo,
		locationRepo:   locationRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.postService = service.NewPostService(
		postRepo, commentRepo, categoryRepo, locationRepo, userRepo,
		cfg.PostsPerPage, server.userService.IsStaff,
	)
	server.commentService = service.NewCommentService(commentRepo, postRepo, server.userService.IsStaff)
	server.imageService = service.NewImageService(cfg)

	return server, nil
}

// Shutdown releases server resources: the Redis connection and the
// database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return fmt.Errorf("redis close: %w", err)
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("database handle: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("database close: %w", err)
		}
	}
	return nil
}

// NewApp builds the Fiber application: template engine, middleware, and
// routes.
func (s *Server) NewApp() *fiber.App {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("templates missing from binary: %v", err))
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/base",
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders the site-styled error pages. Not-found errors get
// the 404 page; everything else the 500 page.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if models.IsNotFound(err) {
		code = fiber.StatusNotFound
	}

	switch code {
	case fiber.StatusNotFound:
		return c.Status(fiber.StatusNotFound).Render("pages/404", fiber.Map{})
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			"path", c.Path(), "error", err.Error())
		return c.Status(code).Render("pages/500", fiber.Map{})
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Tracing spans per request
	app.Use(middleware.TracingMiddleware())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Session resolution runs on every request so templates can show the
	// signed-in user.
	app.Use(middleware.SessionAuth())

	if s.config.Env != "test" {
		// Global rate limiting (100 requests per minute per IP)
		app.Use(limiter.New(limiter.Config{
			Max:        100,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later.")
			},
		}))

		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:csrf_token",
			CookieName:     "blogicum_csrf",
			CookieSameSite: "Lax",
			ContextKey:     csrfContextKey,
			Expiration:     1 * time.Hour,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return c.Status(fiber.StatusForbidden).Render("pages/403csrf", fiber.Map{})
			},
		}))
	}
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images
	app.Static("/media", s.config.MediaDir)

	// Static pages
	app.Get("/pages/about/", s.AboutPage)
	app.Get("/pages/rules/", s.RulesPage)

	// Auth
	auth := app.Group("/auth")
	auth.Get("/login/", s.LoginPage)
	auth.Post("/login/", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/logout/", s.Logout)
	auth.Post("/logout/", s.Logout)
	auth.Get("/registration/", s.RegistrationPage)
	auth.Post("/registration/", middleware.RateLimit(s.redis, 3, 10*time.Minute, "registration"), s.Register)

	// Profiles
	app.Get("/profile/edit/", middleware.RequireLogin(), s.EditProfilePage)
	app.Post("/profile/edit/", middleware.RequireLogin(), s.EditProfile)
	app.Get("/profile/:username/", s.Profile)

	// Category listing
	app.Get("/category/:slug/", s.CategoryPosts)

	// Posts. Specific routes go before the generic /:id/ ones.
	app.Get("/posts/create/", middleware.RequireLogin(), s.CreatePostPage)
	app.Post("/posts/create/", middleware.RequireLogin(), s.CreatePost)
	app.Get("/posts/:id/edit/", middleware.RequireLogin(), s.EditPostPage)
	app.Post("/posts/:id/edit/", middleware.RequireLogin(), s.EditPost)
	app.Get("/posts/:id/delete/", middleware.RequireLogin(), s.DeletePostPage)
	app.Post("/posts/:id/delete/", middleware.RequireLogin(), s.DeletePost)
	app.Post("/posts/:id/comment/", middleware.RequireLogin(), s.AddComment)
	app.Get("/posts/:id/edit_comment/:commentId/", middleware.RequireLogin(), s.EditCommentPage)
	app.Post("/posts/:id/edit_comment/:commentId/", middleware.RequireLogin(), s.EditComment)
	app.Get("/posts/:id/delete_comment/:commentId/", middleware.RequireLogin(), s.DeleteCommentPage)
	app.Post("/posts/:id/delete_comment/:commentId/", middleware.RequireLogin(), s.DeleteComment)
	app.Get("/posts/:id/", s.PostDetail)

	// Home feed
	app.Get("/", s.Index)
}
