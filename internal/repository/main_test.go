package repository

import (
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
}

func publishedCategory(title, slug string) *models.Category {
	return &models.Category{Title: title, Slug: slug, IsPublished: true}
}

func postAt(author *models.User, category *models.Category, pubDate time.Time, published bool) *models.Post {
	p := &models.Post{
		Title:       "Post",
		Text:        "Text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    author.ID,
	}
	if category != nil {
		p.CategoryID = &category.ID
	}
	return p
}
