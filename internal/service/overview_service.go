package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
)

// recentTradeWindow is how many trades the overview derives its stats from
const recentTradeWindow = 10

// OverviewService computes the derived, non-persisted dashboard numbers
type OverviewService struct {
	tradeRepo   *repository.TradeRepository
	metricsRepo *repository.MetricsRepository
	now         func() time.Time
}

// NewOverviewService creates a new OverviewService
func NewOverviewService(tradeRepo *repository.TradeRepository, metricsRepo *repository.MetricsRepository) *OverviewService {
	return &OverviewService{
		tradeRepo:   tradeRepo,
		metricsRepo: metricsRepo,
		now:         time.Now,
	}
}

// Overview is the derived dashboard summary. TotalPnL, OpenTrades and
// ClosedTrades come from the recent-trade window; WinRate is read from
// today's metrics row, not recomputed from trades.
type Overview struct {
	TotalPnL     string                     `json:"total_pnl"`
	OpenTrades   int                        `json:"open_trades"`
	ClosedTrades int                        `json:"closed_trades"`
	WinRate      float64                    `json:"win_rate"`
	RecentTrades []models.Trade             `json:"recent_trades"`
	Metrics      *models.PerformanceMetrics `json:"metrics"`
}

// GetOverview builds the overview for a user
func (s *OverviewService) GetOverview(userID uint) (*Overview, error) {
	trades, err := s.tradeRepo.GetRecentByUserID(userID, recentTradeWindow)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	metrics, err := s.metricsRepo.GetByUserIDAndDate(userID, today)
	if err != nil {
		return nil, err
	}

	totalPnL := decimal.Zero
	openCount := 0
	closedCount := 0
	for i := range trades {
		totalPnL = totalPnL.Add(decimal.NewFromFloat(trades[i].PnL))
		if trades[i].IsOpen() {
			openCount++
		} else if trades[i].Status == models.TradeStatusClosed {
			closedCount++
		}
	}

	winRate := 0.0
	if metrics != nil {
		winRate = metrics.WinRate
	}

	if trades == nil {
		trades = []models.Trade{}
	}

	return &Overview{
		TotalPnL:     totalPnL.StringFixed(2),
		OpenTrades:   openCount,
		ClosedTrades: closedCount,
		WinRate:      winRate,
		RecentTrades: trades,
		Metrics:      metrics,
	}, nil
}

// GetPerformanceHistory returns the daily metrics rows for a user, newest
// date first. Rows are written by the hosted aggregation job.
func (s *OverviewService) GetPerformanceHistory(userID uint) ([]models.PerformanceMetrics, error) {
	return s.metricsRepo.GetByUserID(userID)
}
