package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/status"
)

// ErrNotFound is returned when an operation references a bin or request
// that does not exist. Handlers translate it to a 404.
var ErrNotFound = errors.New("record not found")

// Statistics is the aggregate view over the current bin set.
type Statistics struct {
	Total                   int64   `json:"total"`
	Critical                int64   `json:"critical"`
	Warning                 int64   `json:"warning"`
	Good                    int64   `json:"good"`
	AverageFillLevel        float64 `json:"average_fill_level"`
	PendingMaintenanceCount int64   `json:"pending_maintenance_count"`
}

// MaintenanceView is a maintenance request joined with the identity fields
// of its bin.
type MaintenanceView struct {
	model.MaintenanceRequest
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Store defines the interface for all database operations.
type Store interface {
	ListBins(ctx context.Context) ([]model.Bin, error)
	GetBin(ctx context.Context, id int64) (model.Bin, error)
	CreateBin(ctx context.Context, bin *model.Bin) error
	DeleteBin(ctx context.Context, id int64) error
	SaveFillLevels(ctx context.Context, bins []model.Bin) error
	CountBins(ctx context.Context) (int64, error)

	CreateMaintenance(ctx context.Context, req *model.MaintenanceRequest) error
	ListMaintenance(ctx context.Context) ([]MaintenanceView, error)

	Statistics(ctx context.Context, pol status.Policy) (Statistics, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// ListBins returns all bins in ascending id order.
func (s *gormStore) ListBins(ctx context.Context) ([]model.Bin, error) {
	var bins []model.Bin
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&bins).Error; err != nil {
		return nil, fmt.Errorf("list bins: %w", err)
	}
	return bins, nil
}

func (s *gormStore) GetBin(ctx context.Context, id int64) (model.Bin, error) {
	var bin model.Bin
	err := s.db.WithContext(ctx).First(&bin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bin{}, ErrNotFound
	}
	if err != nil {
		return model.Bin{}, fmt.Errorf("get bin %d: %w", id, err)
	}
	return bin, nil
}

func (s *gormStore) CreateBin(ctx context.Context, bin *model.Bin) error {
	if err := s.db.WithContext(ctx).Create(bin).Error; err != nil {
		return fmt.Errorf("create bin: %w", err)
	}
	return nil
}

// DeleteBin removes a bin and all of its maintenance requests in a single
// transaction, so a failure can never leave orphaned requests behind.
func (s *gormStore) DeleteBin(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bin_id = ?", id).Delete(&model.MaintenanceRequest{}).Error; err != nil {
			return fmt.Errorf("delete maintenance requests for bin %d: %w", id, err)
		}
		res := tx.Delete(&model.Bin{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete bin %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SaveFillLevels persists new fill levels for the given bins as one atomic
// unit, keeping the store consistent with what a perturbing read returned.
func (s *gormStore) SaveFillLevels(ctx context.Context, bins []model.Bin) error {
	if len(bins) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bins {
			err := tx.Model(&model.Bin{}).Where("id = ?", b.ID).Updates(map[string]any{
				"fill_level":   b.FillLevel,
				"last_updated": b.LastUpdated,
			}).Error
			if err != nil {
				return fmt.Errorf("update fill level for bin %d: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (s *gormStore) CountBins(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Bin{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bins: %w", err)
	}
	return count, nil
}

// CreateMaintenance inserts a request after verifying, inside the same
// transaction, that its bin still exists.
func (s *gormStore) CreateMaintenance(ctx context.Context, req *model.MaintenanceRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bin model.Bin
		err := tx.First(&bin, req.BinID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("look up bin %d: %w", req.BinID, err)
		}
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("create maintenance request for bin %d: %w", req.BinID, err)
		}
		return nil
	})
}

// ListMaintenance returns all requests joined with their bin's identity
// fields, newest-requested first.
func (s *gormStore) ListMaintenance(ctx context.Context) ([]MaintenanceView, error) {
	var views []MaintenanceView
	err := s.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Select("maintenance_requests.*, bins.city AS city, bins.lat AS lat, bins.lon AS lon").
		Joins("JOIN bins ON bins.id = maintenance_requests.bin_id").
		Order("maintenance_requests.requested_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	return views, nil
}

// Statistics aggregates the current bin set. An empty registry yields zero
// counts and a zero average, not an error.
func (s *gormStore) Statistics(ctx context.Context, pol status.Policy) (Statistics, error) {
	var stats Statistics

	var bins []model.Bin
	if err := s.db.WithContext(ctx).Find(&bins).Error; err != nil {
		return Statistics{}, fmt.Errorf("statistics: load bins: %w", err)
	}

	var fillSum int64
	for _, b := range bins {
		fillSum += int64(b.FillLevel)
		switch pol.Compute(b.FillLevel, b.Capacity) {
		case status.Critical:
			stats.Critical++
		case status.Warning:
			stats.Warning++
		default:
			stats.Good++
		}
	}
	stats.Total = int64(len(bins))
	if stats.Total > 0 {
		mean := float64(fillSum) / float64(stats.Total)
		stats.AverageFillLevel = math.Round(mean*10) / 10
	}

	err := s.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Where("status = ?", model.MaintenancePending).
		Count(&stats.PendingMaintenanceCount).Error
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: count pending requests: %w", err)
	}

	return stats, nil
}
