package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/middleware"
	"blogicum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	srv *Server
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Env:           "test",
		Port:          "0",
		SessionSecret: "test-secret-test-secret-test-secret",
		PostsPerPage:  10,
		MediaDir:      t.TempDir(),
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	return &testEnv{app: srv.NewApp(), db: db, srv: srv}
}

func (e *testEnv) createUser(t *testing.T, username string, staff bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsStaff:      staff,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCategory(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: "Category " + slug, Slug: slug, IsPublished: published}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

func (e *testEnv) createPost(t *testing.T, author *models.User, category *models.Category, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "A post",
		Text:        "Some text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    author.ID,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func (e *testEnv) createComment(t *testing.T, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, e.db.Create(comment).Error)
	return comment
}

// get issues a GET request, optionally authenticated as the given user.
func (e *testEnv) get(t *testing.T, path string, as *models.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.authenticate(t, req, as)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postForm issues a form POST, optionally authenticated as the given user.
func (e *testEnv) postForm(t *testing.T, path string, form url.Values, as *models.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	e.authenticate(t, req, as)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) authenticate(t *testing.T, req *http.Request, as *models.User) {
	t.Helper()
	if as == nil {
		return
	}
	token, err := middleware.IssueSession(as.ID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}
