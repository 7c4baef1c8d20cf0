package main

import (
	"context"
	"flag"
	"time"

	"aptchat/internal/config"
	"aptchat/internal/model"
	"aptchat/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
)

var locations = []string{
	"Koregaon Park, Pune",
	"Baner, Pune",
	"Hinjewadi, Pune",
	"Andheri West, Mumbai",
	"Bandra, Mumbai",
	"Powai, Mumbai",
	"Whitefield, Bangalore",
	"Koramangala, Bangalore",
	"Indiranagar, Bangalore",
	"Dwarka, Delhi",
	"Saket, Delhi",
}

var amenityPool = []string{
	"Swimming Pool",
	"Gym",
	"Parking",
	"Clubhouse",
	"Garden",
	"Security",
	"Power Backup",
	"Lift",
}

func main() {
	count := flag.Int("count", 50, "number of apartments to generate")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := repository.NewApartmentRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()
	inserted := 0
	for i := 0; i < *count; i++ {
		a := randomApartment()
		if err := repo.InsertApartment(ctx, a); err != nil {
			log.WithError(err).Warn("insert failed")
			continue
		}
		inserted++
	}

	log.WithField("inserted", inserted).Info("Seeding complete")
}

func randomApartment() *model.Apartment {
	bedrooms := gofakeit.Number(1, 4)

	// Area and price loosely track bedroom count to keep sort queries plausible
	area := float64(gofakeit.Number(bedrooms*350, bedrooms*700))
	price := float64(gofakeit.Number(bedrooms*8000, bedrooms*30000))

	nAmenities := gofakeit.Number(0, 5)
	amenities := make(model.StringArray, 0, nAmenities)
	seen := map[string]bool{}
	for len(amenities) < nAmenities {
		a := gofakeit.RandomString(amenityPool)
		if !seen[a] {
			seen[a] = true
			amenities = append(amenities, a)
		}
	}

	return &model.Apartment{
		Bedrooms:  bedrooms,
		Location:  gofakeit.RandomString(locations),
		Price:     price,
		AreaSqft:  area,
		Amenities: amenities,
	}
}
