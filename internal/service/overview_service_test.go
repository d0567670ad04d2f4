package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/internal/service"
)

func newOverviewService(t *testing.T) (*service.OverviewService, *gorm.DB, uint) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db, "trader@example.com")
	svc := service.NewOverviewService(
		repository.NewTradeRepository(db),
		repository.NewMetricsRepository(db),
	)
	return svc, db, user.ID
}

func TestOverviewEmptyStore(t *testing.T) {
	svc, _, userID := newOverviewService(t)

	overview, err := svc.GetOverview(userID)
	require.NoError(t, err)

	assert.Equal(t, "0.00", overview.TotalPnL)
	assert.Zero(t, overview.OpenTrades)
	assert.Zero(t, overview.ClosedTrades)
	assert.Zero(t, overview.WinRate)
	assert.NotNil(t, overview.RecentTrades, "empty store serializes as [], not null")
	assert.Empty(t, overview.RecentTrades)
	assert.Nil(t, overview.Metrics)
}

func TestOverviewAggregatesRecentWindow(t *testing.T) {
	svc, db, userID := newOverviewService(t)

	base := time.Date(2026, 8, 28, 9, 15, 0, 0, time.UTC)
	seed := []struct {
		pnl    float64
		status models.TradeStatus
	}{
		{120.50, models.TradeStatusClosed},
		{-45.25, models.TradeStatusClosed},
		{0, models.TradeStatusOpen},
		{310.10, models.TradeStatusClosed},
		{0, models.TradeStatusCancelled},
	}
	for i, s := range seed {
		require.NoError(t, db.Create(&models.Trade{
			UserID: userID, Symbol: "NIFTY", TradeType: models.TradeTypeBuy,
			EntryPrice: 19500, Quantity: 1, Status: s.status, PnL: s.pnl,
			EntryTime: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	overview, err := svc.GetOverview(userID)
	require.NoError(t, err)

	assert.Equal(t, "385.35", overview.TotalPnL)
	assert.Equal(t, 1, overview.OpenTrades)
	assert.Equal(t, 3, overview.ClosedTrades)
	assert.Len(t, overview.RecentTrades, 5)
	// Newest first
	assert.Equal(t, models.TradeStatusCancelled, overview.RecentTrades[0].Status)
}

func TestOverviewWindowCapsAtTenTrades(t *testing.T) {
	svc, db, userID := newOverviewService(t)

	base := time.Date(2026, 8, 28, 9, 15, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		require.NoError(t, db.Create(&models.Trade{
			UserID: userID, Symbol: "BANKNIFTY", TradeType: models.TradeTypeSell,
			EntryPrice: 45000, Quantity: 1, Status: models.TradeStatusClosed,
			PnL: 10, EntryTime: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	overview, err := svc.GetOverview(userID)
	require.NoError(t, err)

	assert.Len(t, overview.RecentTrades, 10)
	assert.Equal(t, 10, overview.ClosedTrades)
	// Only the windowed trades contribute to the sum
	assert.Equal(t, "100.00", overview.TotalPnL)
}

func TestOverviewReadsTodaysMetricsRow(t *testing.T) {
	svc, db, userID := newOverviewService(t)

	today := time.Now().Format("2006-01-02")
	require.NoError(t, db.Create(&models.PerformanceMetrics{
		UserID: userID, Date: today, TotalTrades: 8, WinningTrades: 5, LosingTrades: 3,
		TotalPnL: 420.69, WinRate: 62.5,
	}).Error)
	// A stale row from another day is ignored
	require.NoError(t, db.Create(&models.PerformanceMetrics{
		UserID: userID, Date: "2020-01-01", TotalTrades: 2, WinningTrades: 0, LosingTrades: 2,
		TotalPnL: -50, WinRate: 0,
	}).Error)

	overview, err := svc.GetOverview(userID)
	require.NoError(t, err)

	assert.Equal(t, 62.5, overview.WinRate)
	require.NotNil(t, overview.Metrics)
	assert.Equal(t, today, overview.Metrics.Date)
	assert.Equal(t, 8, overview.Metrics.TotalTrades)
}
