// Command seed loads a development catalog into an empty database:
// four movies, four cinemas and five showtimes per cinema.  It is
// idempotent only in the sense that rerunning it duplicates rows, so
// run it against a fresh schema.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/nmalhotra/cinebook/internal/config"
	"github.com/nmalhotra/cinebook/internal/database"
	"github.com/nmalhotra/cinebook/internal/model"
	"github.com/nmalhotra/cinebook/internal/repository"
)

type cinemaSeed struct {
	name      string
	location  string
	distance  string
	rating    float64
	amenities []string
}

type showtimeSeed struct {
	time   string
	format string
	price  uint32
	avail  uint32
	total  uint32
}

var movieSeeds = []struct {
	title, category, description string
}{
	{"Blockbuster Hero", "Action", "A reluctant stuntman becomes the hero he always played."},
	{"Shadow Guardian", "Superhero", "A vigilante protects the city from a syndicate of thieves."},
	{"Love Story", "Romance", "Two strangers keep missing each other across three decades."},
	{"Future Worlds", "Sci-Fi", "Colonists discover their new planet is already inhabited."},
}

var cinemaSeeds = []cinemaSeed{
	{"PVR Cinemas - Select City Walk", "Saket, New Delhi", "2.5 km", 4.6, []string{"IMAX", "Dolby Atmos", "Parking", "Food Court"}},
	{"INOX - Nehru Place", "Nehru Place, New Delhi", "3.2 km", 4.4, []string{"4DX", "Dolby Vision", "Parking", "Cafe"}},
	{"Cinepolis - DLF Mall", "Noida, Uttar Pradesh", "5.8 km", 4.5, []string{"IMAX", "VIP Lounge", "Parking", "Restaurant"}},
	{"Miraj Cinemas - Lajpat Nagar", "Lajpat Nagar, New Delhi", "4.1 km", 4.3, []string{"Dolby Atmos", "Parking", "Food Court", "Wheelchair Access"}},
}

var showtimeSeeds = []showtimeSeed{
	{"10:00 AM", model.Format2D, 250, 45, 50},
	{"1:30 PM", model.Format2D, 300, 38, 50},
	{"4:00 PM", model.Format3D, 450, 42, 50},
	{"7:30 PM", model.Format2D, 350, 15, 50},
	{"10:30 PM", model.Format3D, 400, 48, 50},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	movies := repository.NewMovieRepo(db)
	for _, s := range movieSeeds {
		category, description := s.category, s.description
		m := &model.Movie{Title: s.title, Category: &category, Description: &description}
		if err := movies.Create(ctx, m); err != nil {
			log.Fatalf("seed movie %q: %v", s.title, err)
		}
		log.Printf("movie %d: %s", m.ID, m.Title)
	}

	const insCinema = `INSERT INTO cinemas (name, location, distance, rating, amenities)
	                   VALUES (?, ?, ?, ?, ?)`
	const insShowtime = `INSERT INTO showtimes (cinema_id, show_time, format, price, available_seats, total_seats)
	                     VALUES (?, ?, ?, ?, ?, ?)`

	for _, cs := range cinemaSeeds {
		res, err := db.ExecContext(ctx, insCinema,
			cs.name, cs.location, cs.distance, cs.rating, repository.JoinAmenities(cs.amenities))
		if err != nil {
			log.Fatalf("seed cinema %q: %v", cs.name, err)
		}
		cinemaID, err := res.LastInsertId()
		if err != nil {
			log.Fatalf("seed cinema %q: %v", cs.name, err)
		}
		for _, ss := range showtimeSeeds {
			if _, err := db.ExecContext(ctx, insShowtime,
				cinemaID, ss.time, ss.format, ss.price, ss.avail, ss.total); err != nil {
				log.Fatalf("seed showtime %s at cinema %d: %v", ss.time, cinemaID, err)
			}
		}
		log.Printf("cinema %d: %s (%d showtimes)", cinemaID, cs.name, len(showtimeSeeds))
	}

	log.Println("seed complete")
}
