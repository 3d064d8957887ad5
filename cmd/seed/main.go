package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/database"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Jamie",
	"Avery", "Quinn", "Charlie", "Dakota", "Emerson", "Finley", "Harper", "Kai",
}

var interestPool = []string{
	"hiking", "cooking", "photography", "yoga", "travel", "reading",
	"climbing", "running", "cinema", "live music", "board games", "coffee",
}

var prompts = []string{
	"A perfect Sunday looks like",
	"My most controversial opinion is",
	"You should not go out with me if",
}

// Seed coordinates cluster around central London so distances land
// inside typical search radii.
const (
	baseLat = 51.5074
	baseLng = -0.1278
)

func main() {
	count := flag.Int("count", 50, "number of fake users to create")
	seed := flag.Int64("seed", 42, "rng seed, fixed for reproducible data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}

	var interests []models.Interest
	for _, name := range interestPool {
		row := models.Interest{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&row).Error; err != nil {
			log.Fatalf("interest %q: %v", name, err)
		}
		interests = append(interests, row)
	}

	now := time.Now()
	created := 0
	for i := 0; i < *count; i++ {
		name := firstNames[rng.Intn(len(firstNames))]
		email := fmt.Sprintf("%s%d@example.com", name, i)

		age := 21 + rng.Intn(25)
		dob := now.AddDate(-age, 0, -rng.Intn(300))
		gender := domain.GenderMan
		if rng.Intn(2) == 1 {
			gender = domain.GenderWoman
		}
		lat := baseLat + (rng.Float64()-0.5)*0.6
		lng := baseLng + (rng.Float64()-0.5)*0.6
		lastActive := now.AddDate(0, 0, -rng.Intn(20))

		u := models.User{
			Email:        email,
			PasswordHash: string(hash),
			DisplayName:  fmt.Sprintf("%s %c.", name, 'A'+rune(rng.Intn(26))),
			DateOfBirth:  &dob,
			Gender:       gender,
			Bio:          "Mostly here for the dog photos and good coffee recommendations.",
			Location:     "London",
			Latitude:     &lat,
			Longitude:    &lng,
			MaxDistance:  10 + rng.Intn(40),
			LastActive:   lastActive,
			IsVerified:   rng.Intn(3) == 0,
			IsPremium:    rng.Intn(5) == 0,
			IsActive:     true,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("skip %s: %v", email, err)
			continue
		}

		nPhotos := 1 + rng.Intn(4)
		for p := 0; p < nPhotos; p++ {
			photo := models.Photo{
				UserID:   u.ID,
				URL:      fmt.Sprintf("https://cdn.example.com/photos/%d-%d.jpg", u.ID, p),
				Position: p,
			}
			if err := db.Create(&photo).Error; err != nil {
				log.Printf("photo for %s: %v", email, err)
			}
		}

		picks := rng.Perm(len(interests))[:2+rng.Intn(4)]
		var mine []models.Interest
		for _, idx := range picks {
			mine = append(mine, interests[idx])
		}
		if err := db.Model(&u).Association("Interests").Replace(mine); err != nil {
			log.Printf("interests for %s: %v", email, err)
		}

		nPrompts := rng.Intn(len(prompts) + 1)
		for p := 0; p < nPrompts; p++ {
			answer := models.PromptAnswer{
				UserID:   u.ID,
				Question: prompts[p],
				Answer:   "Ask me and find out.",
			}
			if err := db.Create(&answer).Error; err != nil {
				log.Printf("prompt for %s: %v", email, err)
			}
		}
		created++
	}
	log.Printf("seeded %d users (password: password123)", created)
}
