package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/status"
)

var testDBCounter atomic.Int64

// newTestStore opens a fresh in-memory SQLite database with migrations
// applied. Each test gets its own database.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Bin{}, &model.MaintenanceRequest{}))
	return NewGormStore(db), db
}

func makeBin(city string, fill int) model.Bin {
	return model.Bin{
		City:        city,
		Lat:         22.57,
		Lon:         88.36,
		Capacity:    100,
		FillLevel:   fill,
		LastUpdated: time.Now().UTC(),
	}
}

func TestCreateAndListBins(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, fill := range []int{95, 60, 30} {
		bin := makeBin("Kolkata", fill)
		require.NoError(t, s.CreateBin(ctx, &bin))
		assert.NotZero(t, bin.ID)
	}

	bins, err := s.ListBins(ctx)
	require.NoError(t, err)
	require.Len(t, bins, 3)

	// Stable ascending id order.
	for i := 1; i < len(bins); i++ {
		assert.Greater(t, bins[i].ID, bins[i-1].ID)
	}
	assert.Equal(t, 95, bins[0].FillLevel)
}

func TestGetBinNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetBin(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBinCascades(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	doomed := makeBin("Kolkata", 90)
	require.NoError(t, s.CreateBin(ctx, &doomed))
	survivor := makeBin("Siliguri", 40)
	require.NoError(t, s.CreateBin(ctx, &survivor))

	for i := 0; i < 2; i++ {
		req := model.MaintenanceRequest{
			BinID:       doomed.ID,
			Type:        "collection",
			Status:      model.MaintenancePending,
			RequestedAt: time.Now().UTC(),
		}
		require.NoError(t, s.CreateMaintenance(ctx, &req))
	}
	other := model.MaintenanceRequest{
		BinID:       survivor.ID,
		Type:        "pickup",
		Status:      model.MaintenancePending,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateMaintenance(ctx, &other))

	require.NoError(t, s.DeleteBin(ctx, doomed.ID))

	// Exactly the bin and its two requests are gone.
	var binCount, reqCount int64
	require.NoError(t, db.Model(&model.Bin{}).Count(&binCount).Error)
	require.NoError(t, db.Model(&model.MaintenanceRequest{}).Count(&reqCount).Error)
	assert.Equal(t, int64(1), binCount)
	assert.Equal(t, int64(1), reqCount)

	views, err := s.ListMaintenance(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, survivor.ID, views[0].BinID)
}

func TestDeleteBinNotFoundLeavesStoreUnchanged(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	bin := makeBin("Durgapur", 50)
	require.NoError(t, s.CreateBin(ctx, &bin))

	err := s.DeleteBin(ctx, bin.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Bin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateMaintenanceMissingBin(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	req := model.MaintenanceRequest{
		BinID:       999,
		Type:        "collection",
		Status:      model.MaintenancePending,
		RequestedAt: time.Now().UTC(),
	}
	err := s.CreateMaintenance(ctx, &req)
	assert.ErrorIs(t, err, ErrNotFound)

	// No orphan request may be left behind.
	var count int64
	require.NoError(t, db.Model(&model.MaintenanceRequest{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListMaintenanceJoinsAndOrdersNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	bin := makeBin("Asansol", 85)
	bin.Lat, bin.Lon = 23.68, 86.95
	require.NoError(t, s.CreateBin(ctx, &bin))

	older := model.MaintenanceRequest{
		BinID:       bin.ID,
		Type:        "collection",
		Status:      model.MaintenancePending,
		RequestedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, s.CreateMaintenance(ctx, &older))
	newer := model.MaintenanceRequest{
		BinID:       bin.ID,
		Type:        "pickup",
		Status:      model.MaintenancePending,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateMaintenance(ctx, &newer))

	views, err := s.ListMaintenance(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, older.ID, views[1].ID)
	assert.Equal(t, "Asansol", views[0].City)
	assert.InDelta(t, 23.68, views[0].Lat, 1e-9)
	assert.InDelta(t, 86.95, views[0].Lon, 1e-9)
}

func TestStatisticsEmptyRegistry(t *testing.T) {
	s, _ := newTestStore(t)

	stats, err := s.Statistics(context.Background(), status.DefaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, int64(0), stats.Critical)
	assert.Equal(t, int64(0), stats.Warning)
	assert.Equal(t, int64(0), stats.Good)
	assert.Equal(t, 0.0, stats.AverageFillLevel)
	assert.Equal(t, int64(0), stats.PendingMaintenanceCount)
}

func TestStatistics(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	fills := []int{95, 75, 30}
	var first model.Bin
	for i, fill := range fills {
		bin := makeBin("Kharagpur", fill)
		require.NoError(t, s.CreateBin(ctx, &bin))
		if i == 0 {
			first = bin
		}
	}
	req := model.MaintenanceRequest{
		BinID:       first.ID,
		Type:        "collection",
		Status:      model.MaintenancePending,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateMaintenance(ctx, &req))

	stats, err := s.Statistics(ctx, status.DefaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Critical)
	assert.Equal(t, int64(1), stats.Warning)
	assert.Equal(t, int64(1), stats.Good)
	assert.InDelta(t, 66.7, stats.AverageFillLevel, 1e-9)
	assert.Equal(t, int64(1), stats.PendingMaintenanceCount)
}

func TestSaveFillLevels(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	bin := makeBin("Kolkata", 20)
	require.NoError(t, s.CreateBin(ctx, &bin))

	updated := bin
	updated.FillLevel = 55
	updated.LastUpdated = time.Now().UTC().Add(time.Minute)
	require.NoError(t, s.SaveFillLevels(ctx, []model.Bin{updated}))

	got, err := s.GetBin(ctx, bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, got.FillLevel)
	assert.True(t, got.LastUpdated.After(bin.LastUpdated))
}
