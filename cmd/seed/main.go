package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/etczermerivil/Rgb-bnb/internal/adapters/auth"
	"github.com/etczermerivil/Rgb-bnb/internal/adapters/observability"
	"github.com/etczermerivil/Rgb-bnb/internal/domain"
	"github.com/etczermerivil/Rgb-bnb/internal/shared"
	mysqlrepo "github.com/etczermerivil/Rgb-bnb/internal/storage/mysql"
)

// seedSpot is one demo listing plus the content hung off it.
type seedSpot struct {
	owner   int // index into demoUsers
	spot    domain.Spot
	images  []domain.SpotImage
	reviews []struct {
		user  int
		stars int
		text  string
	}
}

var demoUsers = []domain.User{
	{FirstName: "Demo", LastName: "Lition", Email: "demo@user.io", Username: "Demo-lition"},
	{FirstName: "Fake", LastName: "User", Email: "user1@user.io", Username: "FakeUser1"},
	{FirstName: "Second", LastName: "Fake", Email: "user2@user.io", Username: "FakeUser2"},
	{FirstName: "Third", LastName: "Fake", Email: "user3@user.io", Username: "FakeUser3"},
}

func demoSpots() []seedSpot {
	return []seedSpot{
		{
			owner: 0,
			spot: domain.Spot{
				Address: "123 Disney Lane", City: "San Francisco", State: "California", Country: "United States",
				Lat: 37.7645358, Lng: -122.4730327,
				Name: "App Academy", Description: "Place where web developers are created", Price: 123,
			},
			images: []domain.SpotImage{
				{URL: "https://images.demo.rgbbnb.dev/spots/1/main.jpg", Preview: true},
				{URL: "https://images.demo.rgbbnb.dev/spots/1/kitchen.jpg"},
			},
			reviews: []struct {
				user  int
				stars int
				text  string
			}{
				{user: 1, stars: 5, text: "This was an awesome spot!"},
				{user: 2, stars: 4, text: "Great location, a bit noisy at night."},
			},
		},
		{
			owner: 1,
			spot: domain.Spot{
				Address: "456 Ocean Ave", City: "Santa Cruz", State: "California", Country: "United States",
				Lat: 36.9741171, Lng: -122.0307963,
				Name: "Surf Shack", Description: "Two blocks from the beach", Price: 210,
			},
			images: []domain.SpotImage{
				{URL: "https://images.demo.rgbbnb.dev/spots/2/deck.jpg", Preview: true},
			},
			reviews: []struct {
				user  int
				stars int
				text  string
			}{
				{user: 3, stars: 5, text: "Woke up to the sound of waves."},
			},
		},
		{
			owner: 2,
			spot: domain.Spot{
				Address: "789 Alpine Rd", City: "Truckee", State: "California", Country: "United States",
				Lat: 39.327962, Lng: -120.183253,
				Name: "Ski Cabin", Description: "A-frame near the lifts, sleeps six", Price: 340,
			},
			images: []domain.SpotImage{
				{URL: "https://images.demo.rgbbnb.dev/spots/3/front.jpg", Preview: true},
				{URL: "https://images.demo.rgbbnb.dev/spots/3/loft.jpg"},
			},
		},
	}
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	tokens := auth.New(cfg.JWTSecret, cfg.TokenTTL)

	// users first, everything else hangs off their ids
	userIDs := make([]int64, len(demoUsers))
	for i, u := range demoUsers {
		hash, err := tokens.HashPassword("password")
		if err != nil {
			log.Fatal().Err(err).Msg("hash password failed")
		}
		u.HashedPassword = hash
		created, err := repo.CreateUser(ctx, u)
		if err != nil {
			log.Fatal().Str("username", u.Username).Err(err).Msg("seed user failed")
		}
		userIDs[i] = created.ID
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i, s := range demoSpots() {
		i, s := i, s

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := seedOne(ctx, repo, userIDs, s); err != nil {
				log.Warn().Int("seed", i).Err(err).Msg("seed spot failed")
				return
			}
			log.Info().Str("name", s.spot.Name).Msg("seed ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func seedOne(ctx context.Context, repo *mysqlrepo.Repo, userIDs []int64, s seedSpot) error {
	s.spot.OwnerID = userIDs[s.owner]
	spot, err := repo.CreateSpot(ctx, s.spot)
	if err != nil {
		return fmt.Errorf("create spot: %w", err)
	}
	for _, img := range s.images {
		img.SpotID = spot.ID
		if _, err := repo.AddSpotImage(ctx, img); err != nil {
			return fmt.Errorf("add image: %w", err)
		}
	}
	for _, rv := range s.reviews {
		_, err := repo.CreateReview(ctx, domain.Review{
			SpotID: spot.ID, UserID: userIDs[rv.user], Review: rv.text, Stars: rv.stars,
		})
		if err != nil {
			return fmt.Errorf("create review: %w", err)
		}
	}
	// one future booking per spot so availability has something to collide with
	start := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	_, err = repo.CreateBooking(ctx, domain.Booking{
		SpotID: spot.ID, UserID: userIDs[(s.owner+1)%len(userIDs)],
		StartDate: start, EndDate: start.AddDate(0, 0, 4),
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}
