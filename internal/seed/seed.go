package seed

import (
	"fmt"
	"log"

	"blogicum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	ShouldClean bool
}

// BuiltInCategory is a permanent category available on every install.
type BuiltInCategory struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInCategories defines the permanent categories.
var BuiltInCategories = []BuiltInCategory{
	{Title: "Travel", Slug: "travel", Description: "Trips, places, and routes."},
	{Title: "Food", Slug: "food", Description: "Cooking, recipes, and restaurants."},
	{Title: "Technology", Slug: "technology", Description: "Software, hardware, and everything between."},
	{Title: "Books", Slug: "books", Description: "Reading lists and reviews."},
	{Title: "Music", Slug: "music", Description: "Albums, concerts, and discovery."},
	{Title: "Daily Life", Slug: "daily-life", Description: "Notes from the everyday."},
}

// BuiltInLocations defines the default location tags.
var BuiltInLocations = []string{
	"The Hague", "Lisbon", "Tbilisi", "Montevideo", "Reykjavik", "Tashkent",
}

// Categories upserts the permanent built-in categories and locations.
// Safe to run repeatedly.
func Categories(db *gorm.DB) error {
	for _, item := range BuiltInCategories {
		category := models.Category{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
			IsPublished: true,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "is_published"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed built-in category %s: %w", item.Slug, err)
		}
	}

	for _, name := range BuiltInLocations {
		var location models.Location
		err := db.Where(models.Location{Name: name}).FirstOrCreate(&location).Error
		if err != nil {
			return fmt.Errorf("seed built-in location %s: %w", name, err)
		}
	}
	return nil
}

// Seed populates the database with generated users, posts, and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	if err := Categories(db); err != nil {
		return err
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("no users created, cannot seed posts")
	}
	log.Printf("✓ %d users created", len(users))

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rand.Intn(len(users))]
		var category *models.Category
		// leave a few posts uncategorized
		if len(categories) > 0 && factory.rand.Float32() >= 0.1 {
			category = &categories[factory.rand.Intn(len(categories))]
		}
		post, err := factory.CreatePost(author, category, opts.MaxDays)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("✓ %d posts created", len(posts))

	commentCount := 0
	for _, post := range posts {
		for i := 0; i < factory.rand.Intn(6); i++ {
			author := users[factory.rand.Intn(len(users))]
			if _, err := factory.CreateComment(author, post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("✓ %d comments created", commentCount)

	log.Println("🎉 Database seeding completed successfully!")
	log.Println("📧 All seeded users have the password: password123")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")

	// Delete in order that respects foreign key constraints.
	for _, table := range []string{"comments", "posts", "categories", "locations", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
