// Command main runs the database seeder.
package main

import (
	"flag"
	"log"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	maxDays := flag.Int("max-days", 90, "Spread publication dates over this many past days")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	presetFile := flag.String("preset-file", "seed_presets.yml", "Path to the preset file")
	preset := flag.String("preset", "", "Apply a named preset from the preset file (overrides other flags)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	}

	if *preset != "" {
		p, err := seed.LoadPreset(*presetFile, *preset)
		if err != nil {
			log.Fatalf("❌ Preset loading failed: %v", err)
		}
		log.Printf("Applying preset: %s (ignoring other flags)\n", p.Name)
		opts = p.Options()
	} else {
		log.Printf("Target: %d users, %d posts, clean=%v\n", opts.NumUsers, opts.NumPosts, opts.ShouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
