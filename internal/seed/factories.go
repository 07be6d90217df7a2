// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"blogicum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		PasswordHash: string(hashed),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory constructs and persists a published category.
func (f *Factory) CreateCategory(overrides ...func(*models.Category)) (*models.Category, error) {
	title := gofakeit.BuzzWord()
	category := &models.Category{
		Title:       capitalize(title),
		Slug:        fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.ToLower(title), " ", "-"), gofakeit.Number(100, 999)),
		Description: gofakeit.Sentence(12),
		IsPublished: true,
	}

	for _, override := range overrides {
		override(category)
	}

	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateLocation constructs and persists a location tag.
func (f *Factory) CreateLocation(overrides ...func(*models.Location)) (*models.Location, error) {
	location := &models.Location{Name: gofakeit.City()}

	for _, override := range overrides {
		override(location)
	}

	if err := f.db.Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// CreatePost constructs and persists a sample post for the given author.
// Publication dates are spread over the past maxDays days, with a small
// share scheduled into the future and a small share left as drafts, so a
// seeded feed exercises the visibility rules.
func (f *Factory) CreatePost(author *models.User, category *models.Category, maxDays int, overrides ...func(*models.Post)) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Text:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
		AuthorID:    author.ID,
		IsPublished: f.rand.Float32() >= 0.1,
		PubDate:     f.spreadPubDate(maxDays),
	}
	if category != nil {
		post.CategoryID = &category.ID
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on the provided
// post authored by the provided user.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(10),
		AuthorID: author.ID,
		PostID:   post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (f *Factory) spreadPubDate(maxDays int) time.Time {
	// roughly one in ten posts is scheduled ahead
	if f.rand.Float32() < 0.1 {
		return time.Now().Add(time.Duration(f.rand.Intn(14*24)+1) * time.Hour)
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
