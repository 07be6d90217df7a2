package seed

import (
	"os"
	"path/filepath"
	"testing"

	"blogicum/internal/database"
	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.Contains(t, user.Email, "@example.com")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	staff, err := f.CreateUser(func(u *models.User) { u.IsStaff = true })
	require.NoError(t, err)
	assert.True(t, staff.IsStaff)
}

func TestFactoryCreatePost(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	author, err := f.CreateUser()
	require.NoError(t, err)
	category, err := f.CreateCategory()
	require.NoError(t, err)

	post, err := f.CreatePost(author, category, 30)
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.CategoryID)
	assert.Equal(t, category.ID, *post.CategoryID)

	uncategorized, err := f.CreatePost(author, nil, 30)
	require.NoError(t, err)
	assert.Nil(t, uncategorized.CategoryID)
}

func TestCategoriesIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Categories(db))
	require.NoError(t, Categories(db))

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.EqualValues(t, len(BuiltInCategories), count)

	var locations int64
	db.Model(&models.Location{}).Count(&locations)
	assert.EqualValues(t, len(BuiltInLocations), locations)
}

func TestSeedPopulates(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, NumPosts: 12, MaxDays: 30}))

	var users, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 12, posts)

	// re-run with clean starts over
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 3, MaxDays: 30, ShouldClean: true}))
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 2, users)
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yml")
	content := `presets:
  - name: tiny
    users: 2
    posts: 5
    max_days: 14
    clean: true
  - name: demo
    users: 20
    posts: 80
    max_days: 90
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	preset, err := LoadPreset(path, "tiny")
	require.NoError(t, err)
	opts := preset.Options()
	assert.Equal(t, 2, opts.NumUsers)
	assert.Equal(t, 5, opts.NumPosts)
	assert.Equal(t, 14, opts.MaxDays)
	assert.True(t, opts.ShouldClean)

	_, err = LoadPreset(path, "missing")
	assert.Error(t, err)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "nope.yml"), "tiny")
	assert.Error(t, err)
}
