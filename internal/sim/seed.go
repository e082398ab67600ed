package sim

import (
	"math"
	"time"

	"smartwaste-backend/internal/model"
)

// cityBounds is the bounding box (minLat, maxLat, minLon, maxLon) for each
// simulated city. Kept as an ordered slice so seeding is deterministic for
// a fixed seed.
var cityBounds = []struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
}{
	{"Kolkata", 22.50, 22.65, 88.30, 88.45},
	{"Asansol", 23.65, 23.75, 86.90, 87.00},
	{"Siliguri", 26.65, 26.75, 88.35, 88.45},
	{"Durgapur", 23.45, 23.55, 87.25, 87.35},
	{"Kharagpur", 22.30, 22.40, 87.25, 87.35},
}

const binsPerCity = 10

// SeedBins generates the initial simulated bin set: ten bins per city,
// placed uniformly inside the city's bounding box with fill levels in
// [min_fill_level, 100].
func (s *Simulator) SeedBins(defaultCapacity int, now time.Time) []model.Bin {
	s.mu.Lock()
	defer s.mu.Unlock()

	bins := make([]model.Bin, 0, len(cityBounds)*binsPerCity)
	for _, city := range cityBounds {
		for i := 0; i < binsPerCity; i++ {
			lat := round4(city.minLat + s.rng.Float64()*(city.maxLat-city.minLat))
			lon := round4(city.minLon + s.rng.Float64()*(city.maxLon-city.minLon))
			fill := s.cfg.MinFillLevel + s.rng.Intn(101-s.cfg.MinFillLevel)

			bins = append(bins, model.Bin{
				City:        city.name,
				Lat:         lat,
				Lon:         lon,
				Capacity:    defaultCapacity,
				FillLevel:   fill,
				LastUpdated: now,
			})
		}
	}
	return bins
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
