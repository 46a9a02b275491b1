// Command main runs the database seeder for Aptify.
package main

import (
	"flag"
	"log"

	"aptify/internal/config"
	"aptify/internal/database"
	"aptify/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numCourses := flag.Int("courses", 20, "Number of courses to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d courses, clean=%v\n", *numUsers, *numCourses, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{NumUsers: *numUsers, NumCourses: *numCourses}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
