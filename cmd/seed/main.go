package main

import (
	"fmt"
	"log"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/screenings"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"screenings",
		"movies",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds movies and a screening schedule for the next week
func (s *Seeder) SeedAll() error {
	catalog := []movies.Movie{
		{Title: "Interstellar", Genre: "Sci-Fi", DurationMinutes: 169, Description: "A team of explorers travel through a wormhole in space."},
		{Title: "The Grand Budapest Hotel", Genre: "Comedy", DurationMinutes: 99, Description: "The adventures of a legendary concierge and his lobby boy."},
		{Title: "Parasite", Genre: "Thriller", DurationMinutes: 132, Description: "A poor family schemes to become employed by a wealthy household."},
		{Title: "Spirited Away", Genre: "Animation", DurationMinutes: 125, Description: "A young girl wanders into a world ruled by spirits."},
	}

	db := s.db.GetPostgreSQL()
	if err := db.Create(&catalog).Error; err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}
	fmt.Printf("  • Seeded %d movies\n", len(catalog))

	// Three showtimes per movie per day for the next 7 days
	showtimes := []int{14, 18, 21}
	prices := []decimal.Decimal{
		decimal.NewFromFloat(9.50),
		decimal.NewFromFloat(12.00),
		decimal.NewFromFloat(14.50),
	}

	var schedule []screenings.Screening
	today := time.Now().Truncate(24 * time.Hour)
	for day := 0; day < 7; day++ {
		for _, movie := range catalog {
			for i, hour := range showtimes {
				start := today.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
				schedule = append(schedule, screenings.Screening{
					MovieID:    movie.ID,
					StartTime:  start,
					TotalSeats: 120,
					Price:      prices[i],
				})
			}
		}
	}

	if err := db.Create(&schedule).Error; err != nil {
		return fmt.Errorf("failed to seed screenings: %w", err)
	}
	fmt.Printf("  • Seeded %d screenings\n", len(schedule))

	return nil
}
