// Package sim provides the simulated fill-level dynamics: the stochastic
// perturbation applied on bin reads and the initial bin seeding.
package sim

import (
	"math/rand"
	"sync"
	"time"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/model"
)

// Simulator perturbs bin fill levels using a single seeded randomness
// source, so tests can pin outcomes by fixing the seed.
type Simulator struct {
	cfg config.SimulationConfig
	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

// New creates a Simulator. A zero seed in the config falls back to the
// current time.
func New(cfg config.SimulationConfig) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Enabled reports whether the simulation is active for this deployment.
func (s *Simulator) Enabled() bool {
	return s.cfg.Enabled
}

// Perturb adjusts each bin's fill level in place with the configured
// probability, by a uniform delta in [-5, 15] clamped to
// [min_fill_level, capacity], and refreshes LastUpdated on the bins it
// touched. It returns the changed bins so the caller can persist them.
func (s *Simulator) Perturb(bins []model.Bin, now time.Time) []model.Bin {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []model.Bin
	for i := range bins {
		if s.rng.Float64() >= s.cfg.PerturbProbability {
			continue
		}
		delta := s.rng.Intn(21) - 5

		level := bins[i].FillLevel + delta
		if level < s.cfg.MinFillLevel {
			level = s.cfg.MinFillLevel
		}
		if level > bins[i].Capacity {
			level = bins[i].Capacity
		}
		if level == bins[i].FillLevel {
			continue
		}

		bins[i].FillLevel = level
		bins[i].LastUpdated = now
		changed = append(changed, bins[i])
	}
	return changed
}
